// Copyright 2016 The Gofluid Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package network defines the contracts shared between the core link
// components (accumulators, evaporation, heater, membrane) and the
// external network solver that owns nodes, the admittance matrix
// assembly and the linear potential solve.
package network

// PortDir classifies the flow direction a link has assigned to one of its
// ports during ComputeFlows, so the node integrator knows whether to treat
// the port as injecting into or withdrawing from the node.
type PortDir int

const (
	DirNone PortDir = iota
	DirSource
	DirSink
)

func (d PortDir) String() string {
	switch d {
	case DirSource:
		return "SOURCE"
	case DirSink:
		return "SINK"
	default:
		return "NONE"
	}
}

// Phase tags a fluid species as liquid or gas for port-rule checking.
type Phase int

const (
	PhaseLiquid Phase = iota
	PhaseGas
)

// Fluid is the per-node or per-link internal fluid content: temperature,
// mass, composition and the handful of equation-of-state calls the core
// needs. It is implemented by the external fluid property library.
type Fluid interface {
	Temperature() float64
	Pressure() float64
	Density() float64
	MWeight() float64
	SpecificEnthalpy() float64
	MoleFraction(species string) float64
	MassFraction(species string) float64

	Mass() float64
	SetMass(mass float64)
	SetTemperature(t float64)
	SetPressure(p float64)
	SetMassAndMassFractions(mass float64, fractions map[string]float64)

	ComputeTemperature(enthalpy float64) float64
	ComputePressure(t, rho float64) float64
}

// Properties is the process-wide, read-only-after-load fluid property
// registry: molecular weights and phase tags
// keyed by species name, plus a per-species handle onto its saturation
// and heat-of-vaporization curves.
type Properties interface {
	MWeight(species string) float64
	Phase(species string) Phase
	ForSpecies(species string) SpeciesProperties
}

// SpeciesProperties is the saturation-pressure and heat-of-vaporization
// curve for one species, as used by EvaporationLink and SelectiveMembrane.
type SpeciesProperties interface {
	SaturationPressure(t float64) float64
	HeatOfVaporization(t float64) float64
}

// Node is the external solver's control volume: a scalar potential
// (pressure) plus a fluid content object, and the handful of collection
// methods links use to deposit mass and heat during TransportFlows.
type Node interface {
	IsGround() bool
	Potential() float64
	Content() Fluid
	Outflow() Fluid
	ScheduleOutflux(flux float64)
	CollectInflux(massRate float64, sample Fluid)
	CollectOutflux(massRate float64)
	CollectHeatFlux(watts float64)
}

// Link is the contract every core component satisfies so the solver can
// treat accumulators, evaporation links, heaters and membranes uniformly.
//
// A tick is the strict sequence Step -> (external linear solve) ->
// ComputeFlows -> TransportFlows, run once per link, in that order, for
// every link in the network.
type Link interface {
	NumPorts() int

	// AdmittanceMatrix, SourceVector and PotentialVector are flattened
	// row-major numPorts x numPorts (admittance) or numPorts (source,
	// potential) arrays. The solver writes PotentialVector after solving;
	// the link writes the other two during Step.
	AdmittanceMatrix() []float64
	SourceVector() []float64
	PotentialVector() []float64
	PortDirections() []PortDir

	// AdmittanceUpdate reports whether AdmittanceMatrix changed since the
	// last Step, so the solver can skip refactorization when it did not.
	AdmittanceUpdate() bool

	Step(dt float64) error
	ComputeFlows(dt float64) error
	TransportFlows(dt float64) error

	// Restart resets only the non-checkpointed scratch enums (fill mode,
	// bellows zone, ...); checkpointed state is restored by the caller.
	Restart()

	// CheckSpecificPortRules validates that node is an acceptable binding
	// for port, e.g. "port 1 must be a non-ground liquid-phase node".
	CheckSpecificPortRules(port int, node Node) error
}

// Base implements the bookkeeping shared by every Link: port storage and
// the admittance/source/potential arrays. Embed it and call InitBase from
// the concrete link's Init.
type Base struct {
	numPorts int
	nodes []Node
	a []float64
	s []float64
	p []float64
	dirs []PortDir
	admitDiff bool
}

// InitBase allocates the per-port arrays. Must be called once, before the
// first Step.
func (o *Base) InitBase(nodes []Node) {
	o.numPorts = len(nodes)
	o.nodes = nodes
	o.a = make([]float64, o.numPorts*o.numPorts)
	o.s = make([]float64, o.numPorts)
	o.p = make([]float64, o.numPorts)
	o.dirs = make([]PortDir, o.numPorts)
}

func (o *Base) NumPorts() int { return o.numPorts }
func (o *Base) AdmittanceMatrix() []float64 { return o.a }
func (o *Base) SourceVector() []float64 { return o.s }
func (o *Base) PotentialVector() []float64 { return o.p }
func (o *Base) PortDirections() []PortDir { return o.dirs }
func (o *Base) AdmittanceUpdate() bool { return o.admitDiff }
func (o *Base) Node(port int) Node { return o.nodes[port] }

// SetAdmittance writes a[port0*numPorts+port1], raising AdmittanceUpdate
// when the value actually changed.
func (o *Base) SetAdmittance(port0, port1 int, value float64) {
	idx := port0*o.numPorts + port1
	if o.a[idx] != value {
		o.admitDiff = true
	}
	o.a[idx] = value
}

// ClearAdmittanceUpdate is called by the concrete link at the start of
// each Step, before re-deriving the admittance terms.
func (o *Base) ClearAdmittanceUpdate() { o.admitDiff = false }

func (o *Base) SetSource(port int, value float64) { o.s[port] = value }
func (o *Base) SetDir(port int, dir PortDir) { o.dirs[port] = dir }
