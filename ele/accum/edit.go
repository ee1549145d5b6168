// Copyright 2016 The Gofluid Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package accum

// SetEditBellowsPosition commands the bellows to a target position at a
// given rate, taking priority over nominal flow-driven motion until it
// completes and the post-completion hold timer (EditHoldTime) expires.
func (o *Base) SetEditBellowsPosition(target, rate float64) {
	o.editBellowsFlag = true
	o.editBellowsPosition = target
	o.editBellowsRate = rate
	o.editHoldTimer = 0
}

// ClearEditBellowsPosition cancels an in-progress bellows position edit.
func (o *Base) ClearEditBellowsPosition() {
	o.editBellowsFlag = false
	o.editHoldTimer = 0
}

// EditBellowsActive reports whether a bellows position edit is in effect.
func (o *Base) EditBellowsActive() bool { return o.editBellowsFlag }

// SetEditsAreReactive controls whether an in-progress bellows edit lets
// temperature respond to flow (true) or holds temperature fixed while the
// bellows moves (false, the default).
func (o *Base) SetEditsAreReactive(v bool) { o.editsAreReactive = v }

// SetSimultaneousEditsInProgress flags that another edit (e.g. a gas
// pressure edit on AccumulatorGas) is running concurrently with a bellows
// edit this tick, forcing the non-reactive (temperature-holding) path
// regardless of editsAreReactive.
func (o *Base) SetSimultaneousEditsInProgress(v bool) { o.simultaneousEditsInProgress = v }

// SetEditTemperature forces the internal liquid temperature to newTemp on
// the next TransportFlows pass.
func (o *Base) SetEditTemperature(newTemp float64) {
	o.editTemperatureFlag = true
	o.editTemperatureValue = newTemp
}

// SetHoldAccumulator freezes bellowsPosition against nominal flow-driven
// motion (lower priority than any active edit or malfunction).
func (o *Base) SetHoldAccumulator(v bool) { o.holdAccumFlag = v }

// SetHoldTemperature freezes the internal liquid temperature against
// flow-driven updates.
func (o *Base) SetHoldTemperature(v bool) { o.holdTemperatureFlag = v }

// SetPressurizerOrideBellows lets the pressurizer (gas side) take over
// bellows motion for the tick, ahead of every other mode.
func (o *Base) SetPressurizerOrideBellows(v bool) { o.pressurizerOrideBellowsFlag = v }

// SetMalfBellowsStick freezes the bellows in place immediately, zeroing
// effCondScale until cleared.
func (o *Base) SetMalfBellowsStick(v bool) {
	o.malfBellowsStickFlag = v
	if v {
		o.bellowsStuck = true
	}
}

// SetMalfBellowsStickToPos ramps the bellows to pos at rate and then
// sticks it there, same as SetMalfBellowsStick once it arrives.
func (o *Base) SetMalfBellowsStickToPos(flag bool, pos, rate float64) {
	o.malfBellowsStickToPosFlag = flag
	o.malfBellowsStickToPosValue = pos
	o.malfBellowsStickToPosRate = rate
	if !flag {
		o.bellowsMalfSet = false
	}
}

// BellowsMalfSet reports whether a stick-to-position malfunction has
// reached its target and is now holding.
func (o *Base) BellowsMalfSet() bool { return o.bellowsMalfSet }

// ResetEditFlagsAndTimers clears every edit/fault flag this Base owns and
// delegates to the pressurizer for its own state (called from a full
// accumulator reset, distinct from Restart).
func (o *Base) ResetEditFlagsAndTimers() {
	o.editBellowsFlag = false
	o.editHoldTimer = 0
	o.editTemperatureFlag = false
	o.holdAccumFlag = false
	o.holdTemperatureFlag = false
	o.pressurizerOrideBellowsFlag = false
	o.bellowsStuck = false
	o.malfBellowsStickFlag = false
	o.malfBellowsStickToPosFlag = false
	o.bellowsMalfSet = false
	o.simultaneousEditsInProgress = false
	o.pressurizer.ResetEditFlagsAndTimers()
}
