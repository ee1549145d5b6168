// Copyright 2016 The Gofluid Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package accum

import (
	"math"

	"github.com/cpmech/gofluid/network"
)

const liquidPort = 1
const pressurizerPort = 0

// Base implements AccumulatorBase: bellows state, chamber volumes,
// effective conductance, capacitance and the edit/fault state machine
// that overrides nominal physics. AccumulatorGas embeds Base and swaps in
// a gas Pressurizer.
type Base struct {
	network.Base

	name string
	Config
	pressurizer Pressurizer
	initOK bool

	// derived (immutable after Init)
	minChamberVol float64
	maxChamberVol float64
	minDeadBandVol float64
	activeVolRange float64
	totalVolume float64
	fullDeadbandVol float64
	deadbandRange float64

	// checkpointed state
	bellowsPosition float64
	liquidVolume float64
	pressurizerVolume float64
	effectiveConductance float64
	effCondScale float64
	liqCapacitance float64
	springCapacitance float64
	springPressure float64
	liquidPressureReading float64
	liquidFluid network.Fluid
	accelPressureHead float64
	liquidHousingQ float64

	editBellowsFlag bool
	editBellowsPosition float64
	editBellowsRate float64
	editHoldTimer float64
	editTemperatureFlag bool
	editTemperatureValue float64
	holdAccumFlag bool
	holdTemperatureFlag bool
	pressurizerOrideBellowsFlag bool
	bellowsStuck bool
	bellowsMalfSet bool
	malfBellowsStickFlag bool
	malfBellowsStickToPosFlag bool
	malfBellowsStickToPosValue float64
	malfBellowsStickToPosRate float64
	editsAreReactive bool
	simultaneousEditsInProgress bool

	fillMode FillMode
	bellowsZone BellowsZone

	// solver-facing scratch, recomputed every tick
	Flux float64
	FlowRate float64
	VolFlowRate float64
	Power float64

	internalPressure float64
}

// Init validates cfg/input and sets up all derived and initial state.
// nodes[0] is the pressurizer-or-ground port, nodes[1] the liquid port.
func (o *Base) Init(name string, cfg Config, input Input, nodes []network.Node) error {
	if err := cfg.validate(name); err != nil {
		return err
	}
	if err := input.validate(name); err != nil {
		return err
	}
	if len(nodes) != 2 {
		return network.ErrConfig(name, "accumulator needs exactly 2 ports, got %d", len(nodes))
	}
	for port, node := range nodes {
		if err := o.checkPortRule(port, node); err != nil {
			return err
		}
	}

	o.InitBase(nodes)
	o.name = name
	o.Config = cfg
	o.liquidFluid = input.LiquidFluid
	if o.pressurizer == nil {
		o.pressurizer = &springPressurizer{base: o}
	}

	o.minChamberVol = cfg.AccumVolume * cfg.MinChamberVolPct / 100
	o.maxChamberVol = cfg.AccumVolume
	o.minDeadBandVol = cfg.AccumVolume * cfg.MinDeadBandVolPct / 100
	o.activeVolRange = o.maxChamberVol - o.minChamberVol
	o.totalVolume = cfg.AccumVolume + o.minChamberVol
	o.fullDeadbandVol = o.maxChamberVol - (o.minDeadBandVol - o.minChamberVol)
	o.deadbandRange = o.minDeadBandVol - o.minChamberVol

	o.bellowsPosition = cfg.InitialBellowsPosition
	o.liquidVolume = o.minChamberVol + o.bellowsPosition*o.activeVolRange
	if rho := o.liquidFluid.Density(); rho > eps {
		o.liquidFluid.SetMass(o.liquidVolume * rho)
	}
	o.updatePressurizerVolume()
	o.effCondScale = 1
	o.effectiveConductance = cfg.MaxConductance
	o.fillMode = FillEqualized
	o.bellowsZone = ZoneMiddle

	o.initOK = true
	return nil
}

func (o *Base) checkPortRule(port int, node network.Node) error {
	switch port {
	case pressurizerPort:
		if !node.IsGround() && phaseOf(node) != network.PhaseGas {
			return network.ErrConfig(o.linkName(), "port 0 must be ground or a gas-phase node")
		}
	case liquidPort:
		if node.IsGround() {
			return network.ErrConfig(o.linkName(), "port 1 must not be the ground node")
		}
		if phaseOf(node) != network.PhaseLiquid {
			return network.ErrConfig(o.linkName(), "port 1 must be a liquid-phase node")
		}
	}
	return nil
}

// phaseDetector lets a node optionally advertise the dominant phase of
// its content without the core depending on a full fluid-properties
// lookup at port-binding time.
type phaseDetector interface {
	DominantPhase() network.Phase
}

func phaseOf(node network.Node) network.Phase {
	if pd, ok := node.(phaseDetector); ok {
		return pd.DominantPhase()
	}
	return network.PhaseLiquid
}

func (o *Base) linkName() string {
	if o.name == "" {
		return "accum"
	}
	return o.name
}

// CheckSpecificPortRules implements network.Link.
func (o *Base) CheckSpecificPortRules(port int, node network.Node) error {
	return o.checkPortRule(port, node)
}

// Restart implements network.Link: resets only the non-checkpointed
// scratch enums.
func (o *Base) Restart() {
	o.fillMode = FillEqualized
	o.bellowsZone = ZoneMiddle
}

// SetAccelPressureHead sets the externally-driven acceleration pressure
// head (e.g. from vehicle dynamics).
func (o *Base) SetAccelPressureHead(v float64) { o.accelPressureHead = v }

// SetLiquidHousingHeat sets the externally-driven heat injection rate
// (W) into the liquid chamber housing.
func (o *Base) SetLiquidHousingHeat(v float64) { o.liquidHousingQ = v }

// LiquidFluid exposes the internally-owned liquid fluid for inspection.
func (o *Base) LiquidFluid() network.Fluid { return o.liquidFluid }

func (o *Base) BellowsPosition() float64 { return o.bellowsPosition }
func (o *Base) LiquidVolume() float64 { return o.liquidVolume }
func (o *Base) PressurizerVolume() float64 { return o.pressurizerVolume }
func (o *Base) EffectiveConductance() float64 { return o.effectiveConductance }
func (o *Base) EffCondScale() float64 { return o.effCondScale }
func (o *Base) FillMode() FillMode { return o.fillMode }
func (o *Base) BellowsZone() BellowsZone { return o.bellowsZone }
func (o *Base) InternalPressure() float64 { return o.internalPressure }
func (o *Base) BellowsStuck() bool { return o.bellowsStuck }

// UsableMass is the liquid mass above the minimum chamber volume: the
// part that can actually be extracted (glossary "usable mass").
func (o *Base) UsableMass() float64 {
	rho := o.liquidFluid.Density()
	usableVol := o.liquidVolume - o.minChamberVol
	if usableVol < 0 {
		usableVol = 0
	}
	return usableVol * rho
}

// SetSpringCoeffs overwrites the quadratic spring pressure coefficients;
// used by EvaporationLink to drive the accumulator's equilibrium pressure
// as liquid is added to or removed from the bellows.
func (o *Base) SetSpringCoeffs(c0, c1, c2 float64) {
	o.SpringCoeff0, o.SpringCoeff1, o.SpringCoeff2 = c0, c1, c2
}

// updatePressurizerVolume applies the piecewise rule that defeats
// round-off at the stops.
func (o *Base) updatePressurizerVolume() {
	switch {
	case o.liquidVolume >= o.maxChamberVol:
		o.pressurizerVolume = o.minChamberVol
	case o.liquidVolume <= o.minChamberVol:
		o.pressurizerVolume = o.maxChamberVol
	default:
		o.pressurizerVolume = clampF(o.totalVolume-o.liquidVolume, o.minChamberVol, o.maxChamberVol)
	}
}

func (o *Base) classifyZone() BellowsZone {
	switch {
	case o.liquidVolume <= o.minChamberVol:
		return ZoneEmpty
	case o.liquidVolume >= o.maxChamberVol:
		return ZoneFull
	case o.liquidVolume < o.minDeadBandVol:
		return ZoneEmptyDeadband
	case o.liquidVolume > o.fullDeadbandVol:
		return ZoneFullDeadband
	default:
		return ZoneMiddle
	}
}

func (o *Base) classifyFillMode(pOutside, pInside float64) FillMode {
	t := o.FillModePressureThreshold
	switch {
	case pOutside-pInside > t:
		return FillFilling
	case pInside-pOutside > t:
		return FillDraining
	default:
		return FillEqualized
	}
}

// updateSpringPressure evaluates the quadratic spring pressure-volume
// curve at the current bellows position.
func (o *Base) updateSpringPressure() {
	x := o.bellowsPosition
	o.springPressure = o.SpringCoeff0 + o.SpringCoeff1*x + o.SpringCoeff2*x*x
}

// hasSpring reports whether any spring coefficient is positive. This is
// a signed test, not a magnitude test: a negative-only coefficient set
// still counts as "no spring" and lets the gas-derived capacitance pass
// through unclamped.
func (o *Base) hasSpring() bool {
	return o.SpringCoeff0 > eps || o.SpringCoeff1 > eps || o.SpringCoeff2 > eps
}

// updateSpringCapacitance linearizes the spring's pressure-volume slope
// at the current bellows position into an equivalent capacitance.
func (o *Base) updateSpringCapacitance() {
	x := o.bellowsPosition
	pSlope := 2*x*o.SpringCoeff2 + o.SpringCoeff1 + o.accelPressureHead/maxF(x, eps)
	if pSlope > eps {
		rho := o.liquidFluid.Density()
		mw := o.liquidFluid.MWeight()
		if mw > eps {
			o.springCapacitance = (1 / pSlope) * o.activeVolRange * rho / mw
			return
		}
	}
	o.springCapacitance = 0
}

// computeConductance implements the shared conductance-from-capacitance
// formula used by both the liquid and gas sides.
func computeConductance(capacitance, maxCond, prevCond, minCond, dt float64) float64 {
	if dt > eps && maxCond >= minCond {
		return clampF(capacitance/dt, minCond, maxCond)
	}
	return prevCond
}

// updateEffCondScale implements the dead-band stability controller
//: the central mechanism that ramps the liquid-side effective
// conductance to zero near a hard stop and reopens it away from one.
func (o *Base) updateEffCondScale(dt float64) {
	if o.deadbandRange <= 0 {
		network.Warn("%s: deadbandRange <= 0, aborting effCondScale update", o.linkName())
		return
	}

	pOutside := o.PotentialVector()[liquidPort]
	pInside := o.internalPressure
	o.fillMode = o.classifyFillMode(pOutside, pInside)
	o.bellowsZone = o.classifyZone()

	switch {
	case o.bellowsStuck:
		o.effCondScale = 0

	case o.bellowsZone == ZoneMiddle || o.pressurizerOrideBellowsFlag || o.editBellowsFlag:
		o.effCondScale = 1

	case o.FillModePressureThreshold > eps && o.fillMode != FillEqualized:
		o.updateEffCondScaleOneWay(dt)

	default:
		o.updateEffCondScaleLegacy()
	}
}

func (o *Base) updateEffCondScaleOneWay(dt float64) {
	switch {
	case o.fillMode == FillFilling && o.bellowsZone == ZoneFullDeadband:
		o.effCondScale = clampF((o.pressurizerVolume-o.minChamberVol)/o.deadbandRange, 0, 1)
	case o.fillMode == FillFilling && o.bellowsZone == ZoneFull:
		o.effCondScale = 0
	case o.fillMode == FillFilling:
		o.rampEffCondScaleOpen(dt)
	case o.fillMode == FillDraining && o.bellowsZone == ZoneEmptyDeadband:
		o.effCondScale = clampF((o.liquidVolume-o.minChamberVol)/o.deadbandRange, 0, 1)
	case o.fillMode == FillDraining && o.bellowsZone == ZoneEmpty:
		o.effCondScale = 0
	case o.fillMode == FillDraining:
		o.rampEffCondScaleOpen(dt)
	}
}

// rampEffCondScaleOpen ramps effCondScale to 1 at effCondScaleOneWayRate.
// open question: the source clamps the rate against 1/dt, which
// disables rate limiting at small dt; this is preserved exactly rather
// than "fixed", per the documented open question.
func (o *Base) rampEffCondScaleOpen(dt float64) {
	target := 1.0
	rate := o.EffCondScaleOneWayRate
	oneWayTargetScaleHighRateLimit := math.Inf(1)
	if dt > eps {
		oneWayTargetScaleHighRateLimit = 1 / dt
	}
	newScale, _ := rampValue(o.effCondScale, &target, &rate, dt, 0, 1, 0, oneWayTargetScaleHighRateLimit)
	o.effCondScale = newScale
}

func (o *Base) updateEffCondScaleLegacy() {
	switch {
	case o.bellowsZone == ZoneEmptyDeadband:
		o.effCondScale = clampF((o.liquidVolume-o.minChamberVol)/o.deadbandRange, 0, 1)
	case o.bellowsZone == ZoneFullDeadband:
		o.effCondScale = clampF((o.pressurizerVolume-o.minChamberVol)/o.deadbandRange, 0, 1)
	case (o.bellowsZone == ZoneEmpty && o.fillMode == FillFilling) || (o.bellowsZone == ZoneFull && o.fillMode == FillDraining):
		o.effCondScale = o.MinConductivityScale
	default:
		o.effCondScale = 0
	}
}

// Step implements network.Link: updates capacitance, effective
// conductance, and writes the admittance/source contribution.
func (o *Base) Step(dt float64) error {
	o.ClearAdmittanceUpdate()

	o.updateSpringPressure()
	o.updateSpringCapacitance()
	o.liqCapacitance = o.pressurizer.Capacitance(o.springCapacitance, dt)

	o.internalPressure = clampF(o.springPressure+o.accelPressureHead+o.pressurizer.Pressure(), eps, o.MaxPressure)

	o.updateEffCondScale(dt)
	prevCond := o.effectiveConductance
	cond := computeConductance(o.liqCapacitance, o.MaxConductance, prevCond, 0, dt)
	o.effectiveConductance = clampF(o.effCondScale*cond, 0, o.MaxConductance)

	o.SetAdmittance(liquidPort, liquidPort, clampF(o.effectiveConductance, 0, o.MaxConductance))
	o.SetSource(liquidPort, o.internalPressure*o.AdmittanceMatrix()[liquidPort*o.NumPorts()+liquidPort])

	o.pressurizer.BuildAdmittanceAndSource(dt)
	return nil
}

// ComputeFlows implements network.Link: derives the molar flux to the
// liquid port from the solved potential vector and tags port direction.
func (o *Base) ComputeFlows(dt float64) error {
	pNode := o.PotentialVector()[liquidPort]
	a3 := o.AdmittanceMatrix()[liquidPort*o.NumPorts()+liquidPort]
	o.Flux = a3 * (pNode - o.internalPressure)

	switch {
	case o.Flux > eps:
		o.SetDir(liquidPort, network.DirSource)
		o.Node(liquidPort).ScheduleOutflux(o.Flux)
	case o.Flux < -eps:
		o.SetDir(liquidPort, network.DirSink)
	default:
		o.SetDir(liquidPort, network.DirNone)
	}
	return nil
}

// TransportFlows implements network.Link: temperature edit, mode
// dispatch, transport to nodes, pressurizer fluid, pressure finalization,
// strictly in that order.
func (o *Base) TransportFlows(dt float64) error {
	o.bellowsStuck = false

	node := o.Node(liquidPort)
	var mw, rho float64
	if o.Flux > 0 {
		mw = node.Outflow().MWeight()
		rho = node.Outflow().Density()
	} else {
		mw = o.liquidFluid.MWeight()
		rho = o.liquidFluid.Density()
	}
	o.FlowRate = o.Flux * mw
	if rho > eps {
		o.VolFlowRate = o.FlowRate / rho
	} else {
		o.VolFlowRate = 0
	}

	if o.editTemperatureFlag {
		o.applyTemperatureEdit()
	}

	o.dispatchMode(dt)

	if math.Abs(o.FlowRate) > 100*eps {
		if o.FlowRate > 0 {
			node.CollectOutflux(o.FlowRate)
		} else {
			node.CollectInflux(-o.FlowRate, o.liquidFluid)
		}
	}

	o.pressurizer.UpdateFluid(dt)

	o.internalPressure = clampF(o.springPressure+o.accelPressureHead+o.pressurizer.Pressure(), eps, o.MaxPressure)
	o.liquidPressureReading = o.PotentialVector()[liquidPort]
	return nil
}

func (o *Base) applyTemperatureEdit() {
	t := clampF(o.editTemperatureValue, o.MinTemperature, o.MaxTemperature)
	o.liquidFluid.SetTemperature(t)
	rho := o.liquidFluid.Density()
	if rho > eps {
		o.liquidFluid.SetMass(o.liquidVolume * rho)
	}
	o.pressurizer.EditTemperature(t)
	o.editTemperatureFlag = false
}

// dispatchMode runs the mutually-exclusive priority list: pressurizer
// override, stuck malfunction, stick-to-position malfunction, bellows
// edit, then nominal physics.
func (o *Base) dispatchMode(dt float64) {
	switch {
	case o.pressurizerOrideBellowsFlag:
		if o.pressurizer.OrideBellows(dt) {
			return
		}
		o.nominalUpdate(dt)

	case o.malfBellowsStickFlag:
		o.bellowsStuck = true

	case o.malfBellowsStickToPosFlag:
		o.stickToPosUpdate(dt)

	case o.editBellowsFlag:
		o.bellowsEditUpdate(dt)

	default:
		if !o.holdAccumFlag {
			o.nominalUpdate(dt)
		}
	}
}

func (o *Base) stickToPosUpdate(dt float64) {
	target := o.malfBellowsStickToPosValue
	rate := o.malfBellowsStickToPosRate
	newPos, done := rampValue(o.bellowsPosition, &target, &rate, dt, 0, 1, 0, o.ForceBellowsMaxRate)
	o.setBellowsPositionHoldingTemperature(newPos, dt)
	if done {
		o.bellowsStuck = true
		o.bellowsMalfSet = true
	}
}

func (o *Base) bellowsEditUpdate(dt float64) {
	target := o.editBellowsPosition
	rate := o.editBellowsRate
	newPos, done := rampValue(o.bellowsPosition, &target, &rate, dt, 0, 1, 0, o.ForceBellowsMaxRate)

	reactiveTemp := o.editsAreReactive && !o.simultaneousEditsInProgress
	if reactiveTemp {
		o.setBellowsPositionUpdatingTemperature(newPos, dt)
	} else {
		o.setBellowsPositionHoldingTemperature(newPos, dt)
	}

	if done {
		if o.editHoldTimer <= 0 {
			o.editHoldTimer = o.EditHoldTime
		}
		if o.editHoldTimer > 0 {
			o.editHoldTimer -= dt
		}
		if o.editHoldTimer <= 0 {
			o.editBellowsFlag = false
		}
	}
}

// setBellowsPositionHoldingTemperature moves the bellows to newPos and
// back-calculates mass at the current (held) temperature so mass changes
// but temperature and density do not.
func (o *Base) setBellowsPositionHoldingTemperature(newPos float64, dt float64) {
	o.bellowsPosition = clampF(newPos, 0, 1)
	o.liquidVolume = o.minChamberVol + o.bellowsPosition*o.activeVolRange
	rho := o.liquidFluid.Density()
	if rho > eps {
		o.liquidFluid.SetMass(o.liquidVolume * rho)
	}
	o.updatePressurizerVolume()
}

// setBellowsPositionUpdatingTemperature moves the bellows to newPos,
// updating temperature from flow enthalpy as the nominal path would,
// then derives mass/volume consistently.
func (o *Base) setBellowsPositionUpdatingTemperature(newPos float64, dt float64) {
	o.updateTemperatureFromFlow(dt)
	o.bellowsPosition = clampF(newPos, 0, 1)
	o.liquidVolume = o.minChamberVol + o.bellowsPosition*o.activeVolRange
	rho := o.liquidFluid.Density()
	if rho > eps {
		o.liquidFluid.SetMass(o.liquidVolume * rho)
	}
	o.updatePressurizerVolume()
}

// nominalUpdate is the dispatch priority list's final "nominal" branch:
// temperature from flow enthalpy + housing heat, mass from flow, then
// liquid volume / pressurizer volume / bellows position all follow.
func (o *Base) nominalUpdate(dt float64) {
	o.updateTemperatureFromFlow(dt)

	mass := o.liquidFluid.Mass() + o.FlowRate*dt
	if mass < eps {
		mass = eps
	}
	o.liquidFluid.SetMass(mass)

	rho := o.liquidFluid.Density()
	if rho > eps {
		o.liquidVolume = clampF(mass/rho, o.minChamberVol, o.maxChamberVol)
	}
	o.updatePressurizerVolume()
	o.bellowsPosition = clampF((o.liquidVolume-o.minChamberVol)/o.activeVolRange, 0, 1)
}

func (o *Base) updateTemperatureFromFlow(dt float64) {
	if o.holdTemperatureFlag {
		return
	}
	node := o.Node(liquidPort)
	hIn := 0.0
	if o.Flux > 0 {
		hIn = node.Outflow().SpecificEnthalpy()
	} else {
		hIn = o.liquidFluid.SpecificEnthalpy()
	}
	mass := o.liquidFluid.Mass()
	if mass <= eps {
		return
	}
	dH := (hIn-o.liquidFluid.SpecificEnthalpy())*o.FlowRate*dt + o.liquidHousingQ*dt
	newH := o.liquidFluid.SpecificEnthalpy() + dH/mass
	newT := o.liquidFluid.ComputeTemperature(newH)
	o.liquidFluid.SetTemperature(clampF(newT, o.MinTemperature, o.MaxTemperature))
}
