// Copyright 2016 The Gofluid Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heater

import (
	"testing"

	"github.com/cpmech/gofluid/fluidref"
	"github.com/cpmech/gofluid/network"
	"github.com/cpmech/gosl/chk"
)

func newTestHeater(tst *testing.T, cfg Config) (*Link, *fluidref.Node, *fluidref.Node) {
	table := fluidref.NewTable(fluidref.Species{Name: "water", MW: 0.018015, R0: 1000, P0: 100, C: 2e-4})
	n0 := fluidref.NewNode(150, fluidref.NewFluid(table, "water", 10, 300))
	n1 := fluidref.NewNode(150, fluidref.NewFluid(table, "water", 10, 300))
	var l Link
	if err := l.Init("HTR", cfg, []network.Node{n0, n1}); err != nil {
		tst.Fatalf("Init failed: %v", err)
	}
	return &l, n0, n1
}

func TestHeaterConfigValidation(tst *testing.T) {
	chk.PrintTitle("Heater: config validation rejects out-of-range efficiency")
	cfg := Config{HeaterPower: 100, Efficiency: 1.5, Blockage: 0}
	var l Link
	if err := l.Init("HTR", cfg, []network.Node{fluidref.NewGround(), fluidref.NewGround()}); err == nil {
		tst.Fatalf("expected InvalidConfig for Efficiency > 1")
	}
}

func TestHeaterAcceptsGroundPorts(tst *testing.T) {
	chk.PrintTitle("Heater: accepts ground on either port")
	cfg := Config{HeaterPower: 100, Efficiency: 1, Blockage: 0}
	var l Link
	if err := l.Init("HTR", cfg, []network.Node{fluidref.NewGround(), fluidref.NewGround()}); err != nil {
		tst.Fatalf("Init failed: %v", err)
	}
}

func TestHeaterDepositsOppositeSignHeat(tst *testing.T) {
	chk.PrintTitle("Heater: deposits heatFlux with opposite sign on the two ports")
	cfg := Config{HeaterPower: 200, Efficiency: 0.8, Blockage: 0.1}
	l, n0, n1 := newTestHeater(tst, cfg)

	if err := l.Step(1.0); err != nil {
		tst.Fatalf("Step failed: %v", err)
	}
	chk.Float64(tst, "heatFlux", 1e-9, l.HeatFlux(), 200*0.8*0.9)

	if err := l.ComputeFlows(1.0); err != nil {
		tst.Fatalf("ComputeFlows failed: %v", err)
	}
	if l.PortDirections()[0] != network.DirNone || l.PortDirections()[1] != network.DirNone {
		tst.Fatalf("expected both port directions NONE")
	}

	if err := l.TransportFlows(1.0); err != nil {
		tst.Fatalf("TransportFlows failed: %v", err)
	}
	chk.Float64(tst, "n0 heat", 1e-9, n0.HeatRate(), -l.HeatFlux())
	chk.Float64(tst, "n1 heat", 1e-9, n1.HeatRate(), l.HeatFlux())
}

func TestHeaterNeverUpdatesAdmittance(tst *testing.T) {
	chk.PrintTitle("Heater: admittance matrix stays zero every pass")
	cfg := Config{HeaterPower: 50, Efficiency: 1, Blockage: 0}
	l, _, _ := newTestHeater(tst, cfg)
	if err := l.Step(1.0); err != nil {
		tst.Fatalf("Step failed: %v", err)
	}
	for i, v := range l.AdmittanceMatrix() {
		if v != 0 {
			tst.Fatalf("expected admittance[%d] == 0, got %v", i, v)
		}
	}
	if l.AdmittanceUpdate() {
		tst.Fatalf("expected AdmittanceUpdate to stay false")
	}
}
