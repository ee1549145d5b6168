// Copyright 2016 The Gofluid Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package accum

import (
	"testing"

	"github.com/cpmech/gofluid/fluidref"
	"github.com/cpmech/gofluid/network"
	"github.com/cpmech/gosl/chk"
)

func heliumTable() *fluidref.Table {
	return fluidref.NewTable(fluidref.Species{Name: "helium", MW: 0.004, Gas: true, R0: 0.16, P0: 100, C: 5e-4})
}

func gasConfig() GasConfig {
	return GasConfig{
		GasMaxConductance: 1e-3,
		GasMinConductance: 1e-6,
		MaxForcePressureRate: 50,
	}
}

func newTestAccumGas(tst *testing.T, cfg Config, gcfg GasConfig, gasPressure float64) *AccumulatorGas {
	liqTable := waterTable()
	gasTable := heliumTable()
	input := Input{LiquidFluid: fluidref.NewFluid(liqTable, "water", 5, 300)}
	gasFluid := fluidref.NewFluid(gasTable, "helium", 1, 300)
	gasFluid.SetPressure(gasPressure)
	gasInput := GasInput{GasFluidInput: gasFluid}

	gasNode := fluidref.NewGasNode(gasPressure, fluidref.NewFluid(gasTable, "helium", 50, 300))
	liquidNode := fluidref.NewNode(150, fluidref.NewFluid(liqTable, "water", 100, 300))

	var g AccumulatorGas
	if err := g.Init("ACCUM_GAS", cfg, input, gcfg, gasInput, []network.Node{gasNode, liquidNode}); err != nil {
		tst.Fatalf("Init failed: %v", err)
	}
	return &g
}

func tickGas(g *AccumulatorGas, pGas, pLiquid, dt float64) {
	g.PotentialVector()[pressurizerPort] = pGas
	g.PotentialVector()[liquidPort] = pLiquid
	g.Step(dt)
	g.ComputeFlows(dt)
	g.TransportFlows(dt)
}

func TestAccumGasConfigValidation(tst *testing.T) {
	chk.PrintTitle("AccumulatorGas: config validation rejects bad gas fields")
	cfg := baseConfig()
	gcfg := gasConfig()
	gcfg.GasMinConductance = 0
	liqTable := waterTable()
	gasTable := heliumTable()
	input := Input{LiquidFluid: fluidref.NewFluid(liqTable, "water", 5, 300)}
	gasInput := GasInput{GasFluidInput: fluidref.NewFluid(gasTable, "helium", 1, 300)}
	gasNode := fluidref.NewGasNode(150, fluidref.NewFluid(gasTable, "helium", 50, 300))
	liquidNode := fluidref.NewNode(150, fluidref.NewFluid(liqTable, "water", 100, 300))
	var g AccumulatorGas
	if err := g.Init("ACCUM_GAS", cfg, input, gcfg, gasInput, []network.Node{gasNode, liquidNode}); err == nil {
		tst.Fatalf("expected InvalidConfig for GasMinConductance < eps")
	}
}

func TestAccumGasPortRules(tst *testing.T) {
	chk.PrintTitle("AccumulatorGas: port 0 must be a real gas-phase node")
	cfg := baseConfig()
	gcfg := gasConfig()
	liqTable := waterTable()
	gasTable := heliumTable()
	input := Input{LiquidFluid: fluidref.NewFluid(liqTable, "water", 5, 300)}
	gasInput := GasInput{GasFluidInput: fluidref.NewFluid(gasTable, "helium", 1, 300)}
	ground := fluidref.NewGround()
	liquidNode := fluidref.NewNode(150, fluidref.NewFluid(liqTable, "water", 100, 300))
	var g AccumulatorGas
	if err := g.Init("ACCUM_GAS", cfg, input, gcfg, gasInput, []network.Node{ground, liquidNode}); err == nil {
		tst.Fatalf("expected port rule failure when port 0 is ground")
	}
}

func TestAccumGasConductanceFloor(tst *testing.T) {
	chk.PrintTitle("AccumulatorGas: gas conductance never drops below GasMinConductance")
	cfg := baseConfig()
	gcfg := gasConfig()
	g := newTestAccumGas(tst, cfg, gcfg, 175)

	tickGas(g, 175, 175, 1.0)

	if g.GasEffectiveConductance() < gcfg.GasMinConductance-1e-15 {
		tst.Fatalf("expected gas conductance >= %v, got %v", gcfg.GasMinConductance, g.GasEffectiveConductance())
	}
}

func TestAccumGasPressureEdit(tst *testing.T) {
	chk.PrintTitle("AccumulatorGas: pressure edit ramps toward target and holds bellows")
	cfg := baseConfig()
	cfg.EditHoldTime = 100
	gcfg := gasConfig()
	g := newTestAccumGas(tst, cfg, gcfg, 175)
	g.SetEditGasPressure(250, 10)

	pos0 := g.BellowsPosition()
	for i := 0; i < 20; i++ {
		tickGas(g, 175, 175, 1.0)
	}
	chk.Float64(tst, "gasPressure", 1e-6, g.GasFluid().Pressure(), 250)
	chk.Float64(tst, "bellowsPosition held", 1e-12, g.BellowsPosition(), pos0)
}

// S4-analogue: bellows rupture latches the position target (tick 3) and
// then the pressure target (tick 6); the fault is expected to still be
// active until both are latched and to clear on the tick the second one
// latches.
func TestAccumGasBellowsRupture(tst *testing.T) {
	chk.PrintTitle("AccumulatorGas: bellows rupture latches both targets")
	cfg := baseConfig()
	gcfg := gasConfig()
	g := newTestAccumGas(tst, cfg, gcfg, 175)
	g.SetMalfBellowsRupture(true, 1.0, 0.2, 400, 40)

	for i := 0; i < 20 && g.BellowsRuptureActive(); i++ {
		tickGas(g, 175, 175, 1.0)
	}
	chk.Float64(tst, "bellowsPosition", 1e-6, g.BellowsPosition(), 1.0)
	chk.Float64(tst, "gasPressure", 1e-6, g.GasFluid().Pressure(), 400)
	if g.BellowsRuptureActive() {
		tst.Fatalf("expected rupture fault to clear once both targets latch")
	}
}
