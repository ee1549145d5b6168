// Copyright 2016 The Gofluid Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package accum

// FillMode classifies which way the pressure differential across the
// bellows is pushing it.
type FillMode int

const (
	FillEqualized FillMode = iota
	FillFilling
	FillDraining
)

func (m FillMode) String() string {
	switch m {
	case FillFilling:
		return "FILLING"
	case FillDraining:
		return "DRAINING"
	default:
		return "EQUALIZED"
	}
}

// BellowsZone classifies where the bellows sits relative to its hard
// stops and their surrounding dead bands.
type BellowsZone int

const (
	ZoneEmpty BellowsZone = iota
	ZoneEmptyDeadband
	ZoneMiddle
	ZoneFullDeadband
	ZoneFull
)

func (z BellowsZone) String() string {
	switch z {
	case ZoneEmpty:
		return "EMPTY"
	case ZoneEmptyDeadband:
		return "EMPTY_DEADBAND"
	case ZoneFullDeadband:
		return "FULL_DEADBAND"
	case ZoneFull:
		return "FULL"
	default:
		return "MIDDLE"
	}
}

// rampValue ramps current toward target at rate*dt without overshoot.
// target and rate are themselves clamped in place to their declared
// bounds so the caller can observe the clamping; returns the new
// current value and whether it landed exactly on target. Completion uses
// exact equality, safe only because both current and target pass through
// the same min/max clamp on the final step.
func rampValue(current float64, target, rate *float64, dt, targetLow, targetHigh, rateLow, rateHigh float64) (newCurrent float64, done bool) {
	*target = clampF(*target, targetLow, targetHigh)
	*rate = clampF(*rate, rateLow, rateHigh)
	step := *rate * dt
	switch {
	case current < *target:
		newCurrent = minF(current+step, *target)
	case current > *target:
		newCurrent = maxF(current-step, *target)
	default:
		newCurrent = current
	}
	return newCurrent, newCurrent == *target
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
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
