// Copyright 2016 The Gofluid Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package accum

// SetEditGasPressure commands the gas chamber to a target pressure at a
// given rate, capped by MaxForcePressureRate, and overrides bellows motion
// while it runs per the state machine.
func (g *AccumulatorGas) SetEditGasPressure(target, rate float64) {
	g.editPressureFlag = true
	g.editPressureValue = target
	g.editPressureRate = rate
	g.editHoldTimer = 0
}

// ClearEditGasPressure cancels an in-progress gas pressure edit.
func (g *AccumulatorGas) ClearEditGasPressure() {
	g.editPressureFlag = false
	g.editHoldTimer = 0
}

// EditGasPressureActive reports whether a gas pressure edit is in effect.
func (g *AccumulatorGas) EditGasPressureActive() bool { return g.editPressureFlag }

// SetMalfBellowsRupture injects the bellows rupture fault: bellows ramps
// to pos at posRate and gas pressure ramps to pressure at pressureRate,
// overriding every other mode until both targets are latched.
func (g *AccumulatorGas) SetMalfBellowsRupture(flag bool, pos, posRate, pressure, pressureRate float64) {
	g.ruptureFlag = flag
	g.rupturePos = pos
	g.rupturePosRate = posRate
	g.rupturePressure = pressure
	g.rupturePressureRate = pressureRate
	if !flag {
		g.bellowsMalfSet = false
		g.pressureMalfSet = false
		g.pressurizerOrideBellowsFlag = false
	}
}

// BellowsRuptureActive reports whether the rupture fault is still running
// (has not yet latched both targets).
func (g *AccumulatorGas) BellowsRuptureActive() bool { return g.ruptureFlag }

// PressureMalfSet reports whether the rupture's pressure ramp has reached
// its target.
func (g *AccumulatorGas) PressureMalfSet() bool { return g.pressureMalfSet }
