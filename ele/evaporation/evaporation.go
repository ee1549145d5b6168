// Copyright 2016 The Gofluid Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package evaporation implements the evaporation link: a two-port device
// that moves mass from a liquid pool node into a gas node at a rate driven
// by the saturation deficit at the gas node, and optionally drives an
// accumulator's spring law to the gas total pressure so the two stay in
// equilibrium.
package evaporation

import (
	"math"

	"github.com/cpmech/gofluid/ele/accum"
	"github.com/cpmech/gofluid/network"
)

const eps = 1e-12

const (
	liquidPort = 0
	gasPort = 1
)

// Config holds the immutable-after-init parameters.
type Config struct {
	EvaporationCoeff float64 // k
	PoolMassExponent float64 // alpha, in (-10,10)
	Blockage float64 // 0..1
	GasSpecies string // evaporating species as seen from the gas side
	LiquidSpecies string // same species as seen from the liquid side
	GroundDeltaP float64 // ΔP to use when port 1 (gas) is ground
}

func (c *Config) validate(link string, props network.Properties) error {
	if c.EvaporationCoeff < 0 {
		return network.ErrConfig(link, "EvaporationCoeff must be >= 0, got %g", c.EvaporationCoeff)
	}
	if c.PoolMassExponent <= -10 || c.PoolMassExponent >= 10 {
		return network.ErrConfig(link, "PoolMassExponent must be in (-10,10), got %g", c.PoolMassExponent)
	}
	if c.Blockage < 0 || c.Blockage > 1 {
		return network.ErrConfig(link, "Blockage must be in [0,1], got %g", c.Blockage)
	}
	if c.GasSpecies == "" || c.LiquidSpecies == "" {
		return network.ErrConfig(link, "GasSpecies and LiquidSpecies must both be set")
	}
	if props.Phase(c.GasSpecies) != network.PhaseGas {
		return network.ErrConfig(link, "GasSpecies %q must be a gas-phase species", c.GasSpecies)
	}
	if props.Phase(c.LiquidSpecies) != network.PhaseLiquid {
		return network.ErrConfig(link, "LiquidSpecies %q must be a liquid-phase species", c.LiquidSpecies)
	}
	mwGas, mwLiq := props.MWeight(c.GasSpecies), props.MWeight(c.LiquidSpecies)
	if math.Abs(mwGas-mwLiq) > 1e-9 {
		return network.ErrConfig(link, "GasSpecies and LiquidSpecies must share the same molecular weight, got %g vs %g", mwGas, mwLiq)
	}
	return nil
}

// Input bundles Init's non-config arguments.
type Input struct {
	Properties network.Properties
	Accumulator *accum.Base // non-owning; nil if this link isn't driving one
	EvapFluid network.Fluid
}

func (in *Input) validate(link string) error {
	if in.Properties == nil {
		return network.ErrConfig(link, "Properties input must be non-nil")
	}
	if in.EvapFluid == nil {
		return network.ErrConfig(link, "EvapFluid input must be non-nil")
	}
	return nil
}

// Link is the evaporation link between a liquid pool and a gas node.
type Link struct {
	network.Base
	name string
	Config
	properties network.Properties
	accumulator *accum.Base
	evapFluid network.Fluid

	deltaP float64
	massRate float64
	power float64
}

// Init validates cfg/input and binds the two ports.
func (o *Link) Init(name string, cfg Config, input Input, nodes []network.Node) error {
	if err := input.validate(name); err != nil {
		return err
	}
	if err := cfg.validate(name, input.Properties); err != nil {
		return err
	}
	if len(nodes) != 2 {
		return network.ErrConfig(name, "evaporation link needs exactly 2 ports, got %d", len(nodes))
	}
	if !nodes[liquidPort].IsGround() && input.Accumulator == nil {
		return network.ErrConfig(name, "a non-ground liquid port requires a non-nil Accumulator")
	}
	for port, node := range nodes {
		if err := o.checkPortRule(port, node); err != nil {
			return err
		}
	}

	o.InitBase(nodes)
	o.name = name
	o.Config = cfg
	o.properties = input.Properties
	o.accumulator = input.Accumulator
	o.evapFluid = input.EvapFluid
	return nil
}

func (o *Link) checkPortRule(port int, node network.Node) error {
	switch port {
	case liquidPort:
		if !node.IsGround() && phaseOf(node) != network.PhaseLiquid {
			return network.ErrConfig(o.linkName(), "port 0 must be ground or a liquid-phase node")
		}
	case gasPort:
		if !node.IsGround() && phaseOf(node) != network.PhaseGas {
			return network.ErrConfig(o.linkName(), "port 1 must be ground or a gas-phase node")
		}
	}
	return nil
}

type phaseDetector interface {
	DominantPhase() network.Phase
}

func phaseOf(node network.Node) network.Phase {
	if pd, ok := node.(phaseDetector); ok {
		return pd.DominantPhase()
	}
	return network.PhaseLiquid
}

func (o *Link) linkName() string {
	if o.name == "" {
		return "evaporation"
	}
	return o.name
}

// CheckSpecificPortRules implements network.Link.
func (o *Link) CheckSpecificPortRules(port int, node network.Node) error {
	return o.checkPortRule(port, node)
}

// Restart implements network.Link: evaporation holds no scratch enums.
func (o *Link) Restart() {}

// Step implements network.Link.
func (o *Link) Step(dt float64) error {
	o.ClearAdmittanceUpdate()

	mwGas := o.properties.MWeight(o.GasSpecies)
	mwLiq := o.properties.MWeight(o.LiquidSpecies)
	gasNode := o.Node(gasPort)

	var tGas, pGasTotal float64
	if gasNode.IsGround() {
		o.deltaP = o.GroundDeltaP
	} else {
		content := gasNode.Content()
		tGas = content.Temperature()
		chiGas := content.MoleFraction(o.GasSpecies)
		pGasTotal = o.PotentialVector()[gasPort]
		pSat := o.properties.ForSpecies(o.GasSpecies).SaturationPressure(tGas)
		o.deltaP = pSat - pGasTotal*chiGas
	}

	mPool := 0.0
	liquidNode := o.Node(liquidPort)
	if !liquidNode.IsGround() && o.accumulator != nil {
		mPool = o.accumulator.UsableMass()
		o.accumulator.SetSpringCoeffs(pGasTotal, 1e-6, 0)
	}

	massRate := 0.0
	if o.deltaP > 0 && mPool > 0 {
		massRate = o.deltaP * o.EvaporationCoeff * math.Pow(mPool, o.PoolMassExponent)
	}
	massRate *= 1 - o.Blockage
	if dt > eps && mwLiq > eps {
		limit := mPool / dt * mwGas / mwLiq
		if massRate > limit {
			massRate = limit
		}
	}
	o.massRate = massRate

	tForPower := tGas
	if gasNode.IsGround() {
		tForPower = o.evapFluid.Temperature()
	}
	o.power = o.properties.ForSpecies(o.GasSpecies).HeatOfVaporization(tForPower) * massRate

	if mwGas > eps {
		o.SetSource(liquidPort, -massRate/mwGas)
		o.SetSource(gasPort, massRate/mwGas)
	}
	return nil
}

// ComputeFlows implements network.Link: tags port direction from the
// sign of the evaporation mass rate (always liquid->gas, never negative).
func (o *Link) ComputeFlows(dt float64) error {
	if o.massRate > 0 {
		o.SetDir(liquidPort, network.DirSink)
		o.SetDir(gasPort, network.DirSource)
		o.Node(gasPort).ScheduleOutflux(o.massRate / o.properties.MWeight(o.GasSpecies))
	} else {
		o.SetDir(liquidPort, network.DirNone)
		o.SetDir(gasPort, network.DirNone)
	}
	return nil
}

// TransportFlows implements network.Link.
func (o *Link) TransportFlows(dt float64) error {
	if o.massRate <= eps {
		return nil
	}
	gasNode := o.Node(gasPort)
	liquidNode := o.Node(liquidPort)

	if !gasNode.IsGround() {
		o.evapFluid.SetTemperature(gasNode.Outflow().Temperature())
		gasNode.CollectInflux(o.massRate, o.evapFluid)
		gasNode.CollectHeatFlux(-o.power)
	}

	mwGas := o.properties.MWeight(o.GasSpecies)
	mwLiq := o.properties.MWeight(o.LiquidSpecies)
	if !liquidNode.IsGround() && mwGas > eps {
		liquidNode.CollectOutflux(o.massRate * mwLiq / mwGas)
		liquidNode.CollectHeatFlux(o.power)
	}
	return nil
}

// MassRate exposes the most recent evaporation mass rate for inspection.
func (o *Link) MassRate() float64 { return o.massRate }

// Power exposes the most recent heat-of-evaporation power for inspection.
func (o *Link) Power() float64 { return o.power }

func init() {
	network.SetAllocator("evaporation", func() network.Link { return new(Link) })
}
