// Copyright 2016 The Gofluid Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package heater implements the heater link: a two-port, heat-only
// auxiliary that never participates in the admittance solve.
package heater

import "github.com/cpmech/gofluid/network"

const (
	portA = 0
	portB = 1
)

// Config holds the immutable-after-init parameters.
type Config struct {
	HeaterPower float64 // W
	Efficiency float64 // 0..1
	Blockage float64 // 0..1
}

func (c *Config) validate(link string) error {
	if c.HeaterPower < 0 {
		return network.ErrConfig(link, "HeaterPower must be >= 0, got %g", c.HeaterPower)
	}
	if c.Efficiency < 0 || c.Efficiency > 1 {
		return network.ErrConfig(link, "Efficiency must be in [0,1], got %g", c.Efficiency)
	}
	if c.Blockage < 0 || c.Blockage > 1 {
		return network.ErrConfig(link, "Blockage must be in [0,1], got %g", c.Blockage)
	}
	return nil
}

// Link is a two-port, heat-only link: it never writes a non-zero
// admittance or source term and moves no mass, only heat.
type Link struct {
	network.Base
	name string
	Config
	heatFlux float64
}

// Init validates cfg and binds the two ports.
func (o *Link) Init(name string, cfg Config, nodes []network.Node) error {
	if err := cfg.validate(name); err != nil {
		return err
	}
	if len(nodes) != 2 {
		return network.ErrConfig(name, "heater needs exactly 2 ports, got %d", len(nodes))
	}
	o.InitBase(nodes)
	o.name = name
	o.Config = cfg
	return nil
}

// CheckSpecificPortRules implements network.Link: a heater accepts any
// node, including ground, on either port.
func (o *Link) CheckSpecificPortRules(port int, node network.Node) error { return nil }

// Restart implements network.Link: no scratch enums to reset.
func (o *Link) Restart() {}

// Step implements network.Link: the admittance and source contribution
// stay zero every pass; only heatFlux is (re)computed.
func (o *Link) Step(dt float64) error {
	o.ClearAdmittanceUpdate()
	o.heatFlux = o.HeaterPower * o.Efficiency * (1 - o.Blockage)
	o.SetSource(portA, 0)
	o.SetSource(portB, 0)
	return nil
}

// ComputeFlows implements network.Link: port directions are always NONE.
func (o *Link) ComputeFlows(dt float64) error {
	o.SetDir(portA, network.DirNone)
	o.SetDir(portB, network.DirNone)
	return nil
}

// TransportFlows implements network.Link: deposits heatFlux on both
// ports with opposite sign, never touching mass.
func (o *Link) TransportFlows(dt float64) error {
	o.Node(portA).CollectHeatFlux(-o.heatFlux)
	o.Node(portB).CollectHeatFlux(o.heatFlux)
	return nil
}

// HeatFlux exposes the most recent computed heat flux for inspection.
func (o *Link) HeatFlux() float64 { return o.heatFlux }

func init() {
	network.SetAllocator("heater", func() network.Link { return new(Link) })
}
