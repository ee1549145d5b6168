// Copyright 2016 The Gofluid Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package accum

import (
	"github.com/cpmech/gofluid/network"
)

// GasConfig holds the extra immutable-after-init parameters AccumulatorGas
// adds over Config.
type GasConfig struct {
	GasMaxConductance float64 // m^2
	GasMinConductance float64 // m^2, floor: gas side never fully closes
	MaxForcePressureRate float64 // kPa/s
}

// GasInput bundles AccumulatorGas's extra Init argument: the internally
// owned gas chamber fluid.
type GasInput struct {
	GasFluidInput network.Fluid
}

func (c *GasConfig) validate(link string) error {
	if c.GasMaxConductance < 0 {
		return network.ErrConfig(link, "GasMaxConductance must be >= 0, got %g", c.GasMaxConductance)
	}
	if c.GasMinConductance < eps {
		return network.ErrConfig(link, "GasMinConductance must be >= eps, got %g", c.GasMinConductance)
	}
	if c.MaxForcePressureRate <= 0 {
		return network.ErrConfig(link, "MaxForcePressureRate must be > 0, got %g", c.MaxForcePressureRate)
	}
	return nil
}

func (in *GasInput) validate(link string) error {
	if in.GasFluidInput == nil {
		return network.ErrConfig(link, "GasFluidInput must be non-nil")
	}
	return nil
}

// AccumulatorGas layers an active gas pressurizer chamber onto Base: port 0
// stops being a passive spring reservoir and becomes a real node in the
// admittance solve, with its own conductance, pressure edit and rupture
// fault state machine.
type AccumulatorGas struct {
	Base
	GasConfig
	gasFluid network.Fluid

	gasCapacitance float64
	gasEffectiveConductance float64
	gasFlux float64

	editPressureFlag bool
	editPressureValue float64
	editPressureRate float64
	editHoldTimer float64 // own timer, distinct from Base.editHoldTimer (bellows edit)
	editHoldPressure float64

	ruptureFlag bool
	rupturePos float64
	rupturePosRate float64
	rupturePressure float64
	rupturePressureRate float64
	pressureMalfSet bool
}

// Init validates both the base and gas config/input blocks and wires the
// gas pressurizer in place of the default spring-only one before handing
// off to Base.Init.
func (g *AccumulatorGas) Init(name string, cfg Config, input Input, gasCfg GasConfig, gasInput GasInput, nodes []network.Node) error {
	if err := gasCfg.validate(name); err != nil {
		return err
	}
	if err := gasInput.validate(name); err != nil {
		return err
	}
	if len(nodes) > pressurizerPort {
		if err := g.CheckSpecificPortRules(pressurizerPort, nodes[pressurizerPort]); err != nil {
			return err
		}
	}
	g.GasConfig = gasCfg
	g.gasFluid = gasInput.GasFluidInput
	g.pressurizer = &gasPressurizer{g: g}
	if err := g.Base.Init(name, cfg, input, nodes); err != nil {
		return err
	}
	g.gasEffectiveConductance = gasCfg.GasMinConductance
	return nil
}

// CheckSpecificPortRules overrides Base: AccumulatorGas's port 0 must be a
// real gas-phase node, never ground.
func (g *AccumulatorGas) CheckSpecificPortRules(port int, node network.Node) error {
	if port == pressurizerPort {
		if node.IsGround() {
			return network.ErrConfig(g.linkName(), "AccumulatorGas port 0 must not be ground")
		}
		if phaseOf(node) != network.PhaseGas {
			return network.ErrConfig(g.linkName(), "AccumulatorGas port 0 must be a gas-phase node")
		}
		return nil
	}
	return g.Base.CheckSpecificPortRules(port, node)
}

// GasFluid exposes the internally-owned gas chamber fluid for inspection.
func (g *AccumulatorGas) GasFluid() network.Fluid { return g.gasFluid }

func (g *AccumulatorGas) GasEffectiveConductance() float64 { return g.gasEffectiveConductance }
func (g *AccumulatorGas) GasCapacitance() float64 { return g.gasCapacitance }

// ComputeFlows overrides Base to additionally derive the gas-side flux
// through port 0.
func (g *AccumulatorGas) ComputeFlows(dt float64) error {
	if err := g.Base.ComputeFlows(dt); err != nil {
		return err
	}
	pNode := g.PotentialVector()[pressurizerPort]
	a0 := g.AdmittanceMatrix()[pressurizerPort*g.NumPorts()+pressurizerPort]
	pGas := g.gasFluid.Pressure()
	g.gasFlux = a0 * (pNode - pGas)

	switch {
	case g.gasFlux > eps:
		g.SetDir(pressurizerPort, network.DirSource)
		g.Node(pressurizerPort).ScheduleOutflux(g.gasFlux)
	case g.gasFlux < -eps:
		g.SetDir(pressurizerPort, network.DirSink)
	default:
		g.SetDir(pressurizerPort, network.DirNone)
	}
	return nil
}

// TransportFlows overrides Base to update the pressure-edit / rupture
// derived flags before running the shared dispatch, then to deliver the
// gas-side mass exchange with port 0's node.
func (g *AccumulatorGas) TransportFlows(dt float64) error {
	g.updateEditAndRuptureFlags()
	if err := g.Base.TransportFlows(dt); err != nil {
		return err
	}

	gasMassRate := g.gasFlux * g.gasFluid.MWeight()
	if absF(gasMassRate) > 100*eps {
		node := g.Node(pressurizerPort)
		if gasMassRate > 0 {
			node.CollectOutflux(gasMassRate)
		} else {
			node.CollectInflux(-gasMassRate, g.gasFluid)
		}
	}
	return nil
}

// updateEditAndRuptureFlags implements the simultaneous-edit bookkeeping
// and bellows-override arbitration, run once per tick ahead of the
// shared dispatch.
func (g *AccumulatorGas) updateEditAndRuptureFlags() {
	switch {
	case g.editPressureFlag && g.editBellowsFlag:
		g.simultaneousEditsInProgress = true
	case !g.editPressureFlag && !g.editBellowsFlag:
		g.simultaneousEditsInProgress = false
	}

	switch {
	case g.ruptureFlag:
		g.pressurizerOrideBellowsFlag = true
	case g.editPressureFlag && !g.editBellowsFlag:
		g.pressurizerOrideBellowsFlag = !g.editsAreReactive || g.simultaneousEditsInProgress
	case !g.editBellowsFlag:
		g.pressurizerOrideBellowsFlag = false
	}
}

func absF(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// gasPressurizer implements Pressurizer for AccumulatorGas: a real gas
// chamber with its own capacitance, conductance and edit/fault state
// machine.
type gasPressurizer struct {
	g *AccumulatorGas
}

// Capacitance implements 's capacitance combination rule.
func (p *gasPressurizer) Capacitance(springCap, dt float64) float64 {
	g := p.g
	rhoGas := g.gasFluid.Density()
	mwGas := g.gasFluid.MWeight()
	pGas := maxF(g.gasFluid.Pressure(), eps)
	if rhoGas <= eps || mwGas <= eps {
		g.gasCapacitance = 0
		return springCap
	}
	g.gasCapacitance = g.PressurizerVolume() * rhoGas / mwGas / pGas

	rhoLiq := g.LiquidFluid().Density()
	mwLiq := g.LiquidFluid().MWeight()
	if rhoLiq <= eps || mwLiq <= eps {
		return springCap
	}
	liqCap := g.gasCapacitance * rhoLiq * mwGas / (rhoGas * mwLiq)
	if g.hasSpring() {
		return minF(liqCap, springCap)
	}
	return liqCap
}

// BuildAdmittanceAndSource implements 's buildGasConductance /
// buildGasPotential, writing the port-0 half of the 2x2 admittance block.
func (p *gasPressurizer) BuildAdmittanceAndSource(dt float64) {
	g := p.g
	prev := g.gasEffectiveConductance
	g.gasEffectiveConductance = computeConductance(g.gasCapacitance, g.GasMaxConductance, prev, g.GasMinConductance, dt)
	g.SetAdmittance(pressurizerPort, pressurizerPort, g.gasEffectiveConductance)
	g.SetSource(pressurizerPort, g.gasFluid.Pressure()*g.gasEffectiveConductance)
}

// Pressure returns the gas chamber's current pressure, the pressurizer
// side's contribution to internalPressure.
func (p *gasPressurizer) Pressure() float64 { return p.g.gasFluid.Pressure() }

// OrideBellows implements 's rupture fault and pressure-edit bellows
// hold; both run instead of the normal mode dispatch.
func (p *gasPressurizer) OrideBellows(dt float64) bool {
	g := p.g
	if g.ruptureFlag {
		posDone := g.rampRupturePosition(dt)
		pressDone := g.rampRupturePressure(dt)
		if posDone && pressDone {
			g.ruptureFlag = false
			g.pressurizerOrideBellowsFlag = false
		}
		return true
	}
	if g.editsAreReactive && !g.simultaneousEditsInProgress {
		g.updateTemperatureFromFlow(dt)
	}
	return true
}

func (g *AccumulatorGas) rampRupturePosition(dt float64) bool {
	target := g.rupturePos
	rate := g.rupturePosRate
	newPos, done := rampValue(g.bellowsPosition, &target, &rate, dt, 0, 1, 0, g.ForceBellowsMaxRate)
	g.setBellowsPositionUpdatingTemperature(newPos, dt)
	if done {
		g.bellowsMalfSet = true
	}
	return done
}

func (g *AccumulatorGas) rampRupturePressure(dt float64) bool {
	target := g.rupturePressure
	rate := g.rupturePressureRate
	cur := g.gasFluid.Pressure()
	newP, done := rampValue(cur, &target, &rate, dt, eps, g.MaxPressure, 0, rate)
	g.gasFluid.SetPressure(clampF(newP, eps, g.MaxPressure))
	if done {
		g.pressureMalfSet = true
	}
	return done
}

// EditTemperature implements Pressurizer: a forced liquid temperature
// change leaves the gas state, including any captured hold pressure,
// unchanged.
func (p *gasPressurizer) EditTemperature(newTemp float64) {}

// UpdateFluid implements 's per-tick gas chamber update: forced hold,
// pressure-edit ramp, or nominal physics, in that priority order.
func (p *gasPressurizer) UpdateFluid(dt float64) {
	g := p.g
	switch {
	case g.ruptureFlag:
		return
	case g.editPressureFlag:
		g.rampGasPressureEdit(dt)
	case g.simultaneousEditsInProgress || (g.editBellowsFlag && !g.editsAreReactive):
		g.gasFluid.SetPressure(g.editHoldPressure)
	default:
		g.nominalGasUpdate(dt)
	}
}

func (g *AccumulatorGas) rampGasPressureEdit(dt float64) {
	target := g.editPressureValue
	rate := g.editPressureRate
	cur := g.gasFluid.Pressure()
	newP, done := rampValue(cur, &target, &rate, dt, eps, g.MaxPressure, 0, g.MaxForcePressureRate)
	g.gasFluid.SetPressure(newP)
	if !done {
		return
	}
	if g.editHoldTimer <= 0 {
		g.editHoldTimer = g.EditHoldTime
	}
	if g.editHoldTimer > 0 {
		g.editHoldTimer -= dt
	}
	if g.editHoldTimer <= 0 {
		g.editPressureFlag = false
		g.editHoldPressure = g.PotentialVector()[liquidPort]
	}
}

// nominalGasUpdate implements bullet 4: flow-driven mass exchange
// plus an equation-of-state pressure update.
func (g *AccumulatorGas) nominalGasUpdate(dt float64) {
	massRate := g.gasFlux * g.gasFluid.MWeight()
	if g.gasFlux > eps {
		node := g.Node(pressurizerPort)
		if !node.IsGround() {
			g.gasFluid.SetTemperature(node.Outflow().Temperature())
		}
	}
	mass := g.gasFluid.Mass() + massRate*dt
	if mass < eps {
		mass = eps
	}
	g.gasFluid.SetMass(mass)

	vol := maxF(g.PressurizerVolume(), eps)
	rho := mass / vol
	p := g.gasFluid.ComputePressure(g.gasFluid.Temperature(), rho)
	g.gasFluid.SetPressure(clampF(p, eps, g.MaxPressure))
}

// ResetEditFlagsAndTimers implements Pressurizer.
func (p *gasPressurizer) ResetEditFlagsAndTimers() {
	g := p.g
	g.editPressureFlag = false
	g.editHoldTimer = 0
	g.ruptureFlag = false
	g.pressureMalfSet = false
}
