// Copyright 2016 The Gofluid Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package accum

// Pressurizer is the small capability set AccumulatorBase delegates to so
// that a gas chamber can be layered on top of a spring without the base
// class knowing about gas physics. AccumulatorBase itself plays the Spring-only
// role; AccumulatorGas supplies the Gas role.
type Pressurizer interface {
	// Capacitance combines springCap (already computed by the base) with
	// whatever pressurizer-specific capacitance exists, returning the
	// final liqCapacitance.
	Capacitance(springCap, dt float64) float64

	// BuildAdmittanceAndSource writes a[0] (port0<->port0) and s[0] for
	// the pressurizer side of the 2x2 block. Spring-only: both
	// stay zero.
	BuildAdmittanceAndSource(dt float64)

	// Pressure returns the pressurizer's contribution to the internal
	// liquid pressure: zero for spring-only, the gas pressure for
	// AccumulatorGas.
	Pressure() float64

	// OrideBellows runs instead of the normal mode dispatch when the base
	// reports pressurizerOrideBellowsFlag or a pressurizer-owned fault is
	// active (e.g. bellows rupture). Returns true if it handled the pass
	// (base then skips its own mode dispatch for this tick).
	OrideBellows(dt float64) bool

	// EditTemperature notifies the pressurizer that the internal liquid
	// temperature was just forced to a new value, so gas-side quantities
	// that depend on it (e.g. captured hold pressures) can be kept
	// consistent.
	EditTemperature(newTemp float64)

	// UpdateFluid advances the pressurizer-specific internal fluid state
	// for one TransportFlows pass.
	UpdateFluid(dt float64)

	// ResetEditFlagsAndTimers clears any pressurizer-owned edit/fault
	// state; called from Base.ResetEditFlagsAndTimers.
	ResetEditFlagsAndTimers()
}

// springPressurizer is the default Pressurizer: a mechanical spring (or
// no pressurizer at all when all spring coefficients are zero). It holds
// no state of its own; everything it needs lives on the owning Base.
type springPressurizer struct {
	base *Base
}

func (p *springPressurizer) Capacitance(springCap, dt float64) float64 { return springCap }

func (p *springPressurizer) BuildAdmittanceAndSource(dt float64) {
	p.base.SetAdmittance(0, 0, 0)
	p.base.SetSource(0, 0)
}

func (p *springPressurizer) Pressure() float64 { return 0 }

func (p *springPressurizer) OrideBellows(dt float64) bool { return false }

func (p *springPressurizer) EditTemperature(newTemp float64) {}

func (p *springPressurizer) UpdateFluid(dt float64) {}

func (p *springPressurizer) ResetEditFlagsAndTimers() {}
