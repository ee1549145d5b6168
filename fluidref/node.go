// Copyright 2016 The Gofluid Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fluidref

import "github.com/cpmech/gofluid/network"

// Node is a minimal network.Node: a pressure potential, a fluid content,
// and additive inflow/outflow/heat accumulators a node integrator would
// drain at the end of a tick. It is not thread-safe; a parallel solver
// would need an atomic or reduction-safe accumulator per node instead.
type Node struct {
	ground bool
	pressure float64
	content *Fluid
	outflow *Fluid
	phase network.Phase

	scheduledOutflux float64
	inMassRate float64
	inSample network.Fluid
	outMassRate float64
	heatRateW float64
}

// NewNode creates a non-ground liquid-phase node with the given potential
// and content. Outflow defaults to the content itself (a well-mixed node).
func NewNode(pressure float64, content *Fluid) *Node {
	return &Node{pressure: pressure, content: content, outflow: content, phase: network.PhaseLiquid}
}

// NewGasNode creates a non-ground gas-phase node, for ports that
// network.Link implementations restrict to gas (e.g. an accumulator's
// pressurizer port).
func NewGasNode(pressure float64, content *Fluid) *Node {
	return &Node{pressure: pressure, content: content, outflow: content, phase: network.PhaseGas}
}

// NewGround creates the distinguished ground/vacuum node.
func NewGround() *Node {
	return &Node{ground: true}
}

func (n *Node) IsGround() bool { return n.ground }

// DominantPhase satisfies the optional phase-detection capability core
// links use for port-rule checking.
func (n *Node) DominantPhase() network.Phase { return n.phase }

func (n *Node) Potential() float64 {
	if n.ground {
		return 0
	}
	return n.pressure
}

func (n *Node) SetPotential(p float64) { n.pressure = p }

func (n *Node) Content() network.Fluid { return n.content }
func (n *Node) Outflow() network.Fluid { return n.outflow }

// Fluid exposes the concrete content for tests that need fluidref-specific
// accessors (mass, composition) beyond the network.Fluid interface.
func (n *Node) Fluid() *Fluid { return n.content }

func (n *Node) SetOutflow(f *Fluid) { n.outflow = f }

func (n *Node) ScheduleOutflux(flux float64) { n.scheduledOutflux = flux }
func (n *Node) ScheduledOutflux() float64 { return n.scheduledOutflux }

func (n *Node) CollectInflux(massRate float64, sample network.Fluid) {
	n.inMassRate += massRate
	n.inSample = sample
}

func (n *Node) CollectOutflux(massRate float64) { n.outMassRate += massRate }

func (n *Node) CollectHeatFlux(watts float64) { n.heatRateW += watts }

// InMassRate, OutMassRate and HeatRate let tests observe what was
// deposited during TransportFlows before the (absent, in this reference
// package) node integrator would consume them.
func (n *Node) InMassRate() float64 { return n.inMassRate }
func (n *Node) OutMassRate() float64 { return n.outMassRate }
func (n *Node) HeatRate() float64 { return n.heatRateW }

// ResetAccumulators mimics the node integrator's end-of-tick drain.
func (n *Node) ResetAccumulators() {
	n.inMassRate, n.outMassRate, n.heatRateW, n.scheduledOutflux = 0, 0, 0, 0
	n.inSample = nil
}
