// Copyright 2016 The Gofluid Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package membrane implements the selective membrane link: a bulk
// conductive path between two internal ports plus a cross-membrane
// species transfer to an external vent port, driven by the partial
// pressure differential of one tracked species.
package membrane

import "github.com/cpmech/gofluid/network"

const eps = 1e-12

const (
	port0 = 0
	port1 = 1
	vent = 2
)

// Config holds the immutable-after-init parameters.
//
// VentSpecies names the single tracked species on both the internal
// (ports 0/1) and external (vent) sides: unlike EvaporationLink, this
// link does not support the internal and external sides carrying the
// species under different names, so the "internal/external types equal
// MW" config rule collapses to "one species, looked up once" and there
// is nothing left to cross-check.
type Config struct {
	Conductance float64 // bulk conductance between port 0 and port 1
	AbsorptionCoeff float64
	MembraneDegradeMalf float64 // 0..1
	VentSpecies string // the species whose partial pressure drives membrane transfer
}

func (c *Config) validate(link string, props network.Properties) error {
	if c.Conductance < 0 {
		return network.ErrConfig(link, "Conductance must be >= 0, got %g", c.Conductance)
	}
	if c.AbsorptionCoeff < 0 {
		return network.ErrConfig(link, "AbsorptionCoeff must be >= 0, got %g", c.AbsorptionCoeff)
	}
	if c.MembraneDegradeMalf < 0 || c.MembraneDegradeMalf > 1 {
		return network.ErrConfig(link, "MembraneDegradeMalf must be in [0,1], got %g", c.MembraneDegradeMalf)
	}
	if c.VentSpecies == "" {
		return network.ErrConfig(link, "VentSpecies must be set")
	}
	return nil
}

// Input bundles Init's non-config arguments.
type Input struct {
	Properties network.Properties
	VentFluid network.Fluid // pure single-species sample used to move the tracked species to/from the vent
}

func (in *Input) validate(link string) error {
	if in.Properties == nil {
		return network.ErrConfig(link, "Properties input must be non-nil")
	}
	if in.VentFluid == nil {
		return network.ErrConfig(link, "VentFluid input must be non-nil")
	}
	return nil
}

// Link is the selective membrane: a bulk conductive path between ports 0
// and 1 plus a saturation-driven species transfer to the vent at port 2.
type Link struct {
	network.Base
	name string
	Config
	properties network.Properties
	ventFluid network.Fluid

	bulkFlux float64
	bulkFlowRate float64
	membraneRate float64
	phaseChangeHeat float64
	upstreamPort int
	downstreamPort int
}

// Init validates cfg/input and binds the three ports.
func (o *Link) Init(name string, cfg Config, input Input, nodes []network.Node) error {
	if err := input.validate(name); err != nil {
		return err
	}
	if err := cfg.validate(name, input.Properties); err != nil {
		return err
	}
	if len(nodes) != 3 {
		return network.ErrConfig(name, "membrane needs exactly 3 ports, got %d", len(nodes))
	}
	if err := o.checkPortRule(port0, nodes[port0]); err != nil {
		return err
	}
	if err := o.checkPortRule(port1, nodes[port1]); err != nil {
		return err
	}
	if nodes[vent].IsGround() {
		return network.ErrConfig(name, "port 2 (vent) must not be ground")
	}
	if phaseOf(nodes[port0]) != phaseOf(nodes[port1]) {
		return network.ErrConfig(name, "port 0 and port 1 must be the same phase")
	}

	o.InitBase(nodes)
	o.name = name
	o.Config = cfg
	o.properties = input.Properties
	o.ventFluid = input.VentFluid
	o.upstreamPort = port0
	o.downstreamPort = port1
	return nil
}

func (o *Link) checkPortRule(port int, node network.Node) error {
	if node.IsGround() {
		return network.ErrConfig(o.linkName(), "ports 0 and 1 must not be ground")
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
		return "membrane"
	}
	return o.name
}

// CheckSpecificPortRules implements network.Link. The vent represents a
// real external environment with its own composition and temperature, so
// it must not be the ground sentinel either.
func (o *Link) CheckSpecificPortRules(port int, node network.Node) error {
	if port == vent {
		if node.IsGround() {
			return network.ErrConfig(o.linkName(), "port 2 (vent) must not be ground")
		}
		return nil
	}
	return o.checkPortRule(port, node)
}

// Restart implements network.Link: no scratch enums beyond the
// per-tick-recomputed upstream/downstream assignment.
func (o *Link) Restart() {}

// Step implements network.Link.
func (o *Link) Step(dt float64) error {
	o.ClearAdmittanceUpdate()

	g := o.Conductance
	o.SetAdmittance(port0, port0, g)
	o.SetAdmittance(port1, port1, g)
	o.SetAdmittance(port0, port1, -g)
	o.SetAdmittance(port1, port0, -g)

	p0 := o.PotentialVector()[port0]
	p1 := o.PotentialVector()[port1]
	o.bulkFlux = g * (p0 - p1)
	if o.bulkFlux >= 0 {
		o.upstreamPort, o.downstreamPort = port0, port1
	} else {
		o.upstreamPort, o.downstreamPort = port1, port0
	}

	up := o.Node(o.upstreamPort)
	down := o.Node(o.downstreamPort)
	ventNode := o.Node(vent)

	upContent := up.Content()
	downContent := down.Content()
	ventContent := ventNode.Content()

	chiUp := upContent.MoleFraction(o.VentSpecies)
	chiDown := downContent.MoleFraction(o.VentSpecies)
	chiVent := ventContent.MoleFraction(o.VentSpecies)

	ppUp := o.PotentialVector()[o.upstreamPort] * chiUp
	ppDown := o.PotentialVector()[o.downstreamPort] * chiDown
	ppExt := ventNode.Potential() * chiVent

	tUp := upContent.Temperature()
	tVent := ventContent.Temperature()
	sat := o.properties.ForSpecies(o.VentSpecies)
	pSatUp := sat.SaturationPressure(tUp)
	pSatVent := sat.SaturationPressure(tVent)

	deltaUp := ppUp - ppExt
	deltaDown := ppDown - ppExt

	o.bulkFlowRate = o.bulkFlux * upContent.MWeight()

	o.membraneRate = 0
	sameSign := (deltaUp > 0 && deltaDown > 0) || (deltaUp < 0 && deltaDown < 0) || deltaUp == 0 || deltaDown == 0
	if sameSign {
		switch {
		case deltaUp > 0:
			limit := 0.99 * absF(o.bulkFlowRate) * chiUp
			o.membraneRate = minF(deltaUp*o.AbsorptionCoeff, limit)
		case deltaDown < 0:
			o.membraneRate = maxF(deltaDown*o.AbsorptionCoeff, -1e6)
		}
	}
	o.membraneRate *= 1 - o.MembraneDegradeMalf

	isUpSaturated := ppUp >= pSatUp
	isExtSaturated := ppExt >= pSatVent
	phaseChangeHeat := 0.0
	if isUpSaturated != isExtSaturated {
		tSource := tUp
		if !isUpSaturated {
			tSource = tVent
		}
		l := sat.HeatOfVaporization(tSource)
		phaseChangeHeat = l * o.membraneRate
		if isUpSaturated {
			phaseChangeHeat = -phaseChangeHeat
		}
	}
	o.phaseChangeHeat = phaseChangeHeat

	mw := o.properties.MWeight(o.VentSpecies)
	membraneFlux := 0.0
	if mw > eps {
		membraneFlux = o.membraneRate / mw
	}
	o.SetSource(port0, 0)
	o.SetSource(port1, 0)
	o.SetSource(o.upstreamPort, -membraneFlux)
	o.SetSource(vent, membraneFlux)
	return nil
}

func absF(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// ComputeFlows implements network.Link: tags direction on all three
// ports from the bulk and membrane flow signs.
func (o *Link) ComputeFlows(dt float64) error {
	switch {
	case o.bulkFlux > 0:
		o.SetDir(port0, network.DirSink)
		o.SetDir(port1, network.DirSource)
	case o.bulkFlux < 0:
		o.SetDir(port0, network.DirSource)
		o.SetDir(port1, network.DirSink)
	default:
		o.SetDir(port0, network.DirNone)
		o.SetDir(port1, network.DirNone)
	}
	if o.membraneRate > 0 {
		o.SetDir(vent, network.DirSource)
	} else if o.membraneRate < 0 {
		o.SetDir(vent, network.DirSink)
	} else {
		o.SetDir(vent, network.DirNone)
	}
	return nil
}

// TransportFlows implements network.Link.
func (o *Link) TransportFlows(dt float64) error {
	if absF(o.bulkFlowRate) > 100*eps {
		up := o.Node(o.upstreamPort)
		down := o.Node(o.downstreamPort)
		if o.bulkFlowRate > 0 {
			up.CollectOutflux(o.bulkFlowRate)
			down.CollectInflux(o.bulkFlowRate, up.Outflow())
		} else {
			down.CollectOutflux(-o.bulkFlowRate)
			up.CollectInflux(-o.bulkFlowRate, down.Outflow())
		}
	}

	if absF(o.membraneRate) > 100*eps {
		up := o.Node(o.upstreamPort)
		ventNode := o.Node(vent)
		if o.membraneRate > 0 {
			o.ventFluid.SetTemperature(up.Outflow().Temperature())
			up.CollectOutflux(o.membraneRate)
			ventNode.CollectInflux(o.membraneRate, o.ventFluid)
		} else {
			o.ventFluid.SetTemperature(ventNode.Outflow().Temperature())
			ventNode.CollectOutflux(-o.membraneRate)
			up.CollectInflux(-o.membraneRate, o.ventFluid)
		}
	}

	o.Node(o.downstreamPort).CollectHeatFlux(o.phaseChangeHeat)
	return nil
}

// MembraneRate and BulkFlowRate expose the most recent computed rates for
// inspection.
func (o *Link) MembraneRate() float64 { return o.membraneRate }
func (o *Link) BulkFlowRate() float64 { return o.bulkFlowRate }

func init() {
	network.SetAllocator("membrane", func() network.Link { return new(Link) })
}
