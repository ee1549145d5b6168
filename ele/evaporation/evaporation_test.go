// Copyright 2016 The Gofluid Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package evaporation

import (
	"testing"

	"github.com/cpmech/gofluid/ele/accum"
	"github.com/cpmech/gofluid/fluidref"
	"github.com/cpmech/gofluid/network"
	"github.com/cpmech/gosl/chk"
)

func waterTable() *fluidref.Table {
	return fluidref.NewTable(
		fluidref.Species{Name: "waterLiquid", MW: 0.018015, R0: 1000, P0: 100, C: 2e-4},
		fluidref.Species{Name: "waterVapor", MW: 0.018015, Gas: true, R0: 1, P0: 100, C: 1e-3,
			Psat: curveFunc(func(t float64) float64 { return 0.01 * t }),
			Hvap: curveFunc(func(t float64) float64 { return 2257000 - 2000*t }),
		},
	)
}

type curveFunc func(float64) float64

func (f curveFunc) Get(x float64) float64 { return f(x) }

func evapConfig() Config {
	return Config{
		EvaporationCoeff: 1e-5,
		PoolMassExponent: 0.5,
		Blockage: 0,
		GasSpecies: "waterVapor",
		LiquidSpecies: "waterLiquid",
		GroundDeltaP: 5,
	}
}

func accumConfig() accum.Config {
	return accum.Config{
		MaxConductance: 1e-3,
		MinConductivityScale: 0.01,
		AccumVolume: 0.01,
		MinChamberVolPct: 5,
		MinDeadBandVolPct: 10,
		ForceBellowsMaxRate: 0.5,
		EditHoldTime: 1,
		MinTemperature: 250,
		MaxTemperature: 400,
		MaxPressure: 500,
		SpringCoeff0: 150,
		SpringCoeff1: 50,
		SpringCoeff2: 0,
		FillModePressureThreshold: 0,
		EffCondScaleOneWayRate: 0,
		InitialBellowsPosition: 0.5,
	}
}

func newTestAccumulator(tst *testing.T, table *fluidref.Table) *accum.Base {
	input := accum.Input{LiquidFluid: fluidref.NewFluid(table, "waterLiquid", 5, 300)}
	ground := fluidref.NewGround()
	node := fluidref.NewNode(150, fluidref.NewFluid(table, "waterLiquid", 100, 300))
	var b accum.Base
	if err := b.Init("POOL-ACCUM", accumConfig(), input, []network.Node{ground, node}); err != nil {
		tst.Fatalf("accumulator Init failed: %v", err)
	}
	return &b
}

func TestEvapConfigValidation(tst *testing.T) {
	chk.PrintTitle("Evaporation: config validation rejects mismatched species")
	table := waterTable()
	cfg := evapConfig()
	cfg.LiquidSpecies = "waterVapor" // not a liquid-phase species
	input := Input{Properties: table, Accumulator: nil, EvapFluid: fluidref.NewFluid(table, "waterVapor", 0, 300)}
	ground := fluidref.NewGround()
	gasNode := fluidref.NewGasNode(100, fluidref.NewFluid(table, "waterVapor", 1, 300))
	var l Link
	if err := l.Init("EVAP", cfg, input, []network.Node{ground, gasNode}); err == nil {
		tst.Fatalf("expected InvalidConfig for LiquidSpecies not liquid-phase")
	}
}

func TestEvapPortRuleRequiresAccumulator(tst *testing.T) {
	chk.PrintTitle("Evaporation: non-ground liquid port requires an accumulator")
	table := waterTable()
	cfg := evapConfig()
	input := Input{Properties: table, Accumulator: nil, EvapFluid: fluidref.NewFluid(table, "waterVapor", 0, 300)}
	liquidNode := fluidref.NewNode(150, fluidref.NewFluid(table, "waterLiquid", 100, 300))
	gasNode := fluidref.NewGasNode(100, fluidref.NewFluid(table, "waterVapor", 1, 300))
	var l Link
	if err := l.Init("EVAP", cfg, input, []network.Node{liquidNode, gasNode}); err == nil {
		tst.Fatalf("expected InvalidConfig when liquid port is non-ground with nil Accumulator")
	}
}

// TestEvapDrivesMassToGas checks that a sub-saturated gas node (pressure
// below the saturation curve at its temperature) draws evaporation mass
// from the pool into the gas node, and that the accumulator's spring
// coefficients get retargeted to the gas total pressure.
func TestEvapDrivesMassToGas(tst *testing.T) {
	chk.PrintTitle("Evaporation: sub-saturated gas node drives mass from the pool")
	table := waterTable()
	pool := newTestAccumulator(tst, table)

	cfg := evapConfig()
	input := Input{Properties: table, Accumulator: pool, EvapFluid: fluidref.NewFluid(table, "waterVapor", 0, 300)}
	liquidNode := fluidref.NewNode(150, fluidref.NewFluid(table, "waterLiquid", 100, 300))
	gasNode := fluidref.NewGasNode(1, fluidref.NewFluid(table, "waterVapor", 1, 300))
	var l Link
	if err := l.Init("EVAP", cfg, input, []network.Node{liquidNode, gasNode}); err != nil {
		tst.Fatalf("Init failed: %v", err)
	}

	l.PotentialVector()[gasPort] = 1
	if err := l.Step(1.0); err != nil {
		tst.Fatalf("Step failed: %v", err)
	}
	if l.deltaP <= 0 {
		tst.Fatalf("expected positive saturation deficit, got %v", l.deltaP)
	}
	chk.Float64(tst, "springCoeff0", 1e-12, pool.SpringCoeff0, 1)
	if err := l.ComputeFlows(1.0); err != nil {
		tst.Fatalf("ComputeFlows failed: %v", err)
	}
	if err := l.TransportFlows(1.0); err != nil {
		tst.Fatalf("TransportFlows failed: %v", err)
	}
	if l.MassRate() <= 0 {
		tst.Fatalf("expected positive evaporation mass rate, got %v", l.MassRate())
	}
	if gasNode.InMassRate() <= 0 {
		tst.Fatalf("expected gas node to receive inflow mass")
	}
}

func TestEvapGroundGasUsesFixedDeltaP(tst *testing.T) {
	chk.PrintTitle("Evaporation: ground gas port falls back to GroundDeltaP")
	table := waterTable()
	pool := newTestAccumulator(tst, table)
	cfg := evapConfig()
	input := Input{Properties: table, Accumulator: pool, EvapFluid: fluidref.NewFluid(table, "waterVapor", 0, 300)}
	liquidGround := fluidref.NewGround()
	gasGround := fluidref.NewGround()
	var l Link
	if err := l.Init("EVAP", cfg, input, []network.Node{liquidGround, gasGround}); err != nil {
		tst.Fatalf("Init failed: %v", err)
	}
	if err := l.Step(1.0); err != nil {
		tst.Fatalf("Step failed: %v", err)
	}
	chk.Float64(tst, "deltaP", 1e-12, l.deltaP, cfg.GroundDeltaP)
}
