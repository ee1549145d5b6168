// Copyright 2016 The Gofluid Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package accum implements the accumulator link: a two-chamber device
// separated by a movable bellows that couples a liquid chamber to a
// pressurizer (spring, gas, or both), and the dead-band conductance
// feedback loop that keeps the coupling stable at the bellows travel
// limits.
package accum

import (
	"github.com/cpmech/gofluid/network"
)

const eps = 1e-12

// Config holds the immutable-after-init parameters of an accumulator.
type Config struct {
	MaxConductance float64 // m^2
	MinConductivityScale float64 // -, 0<x<=1
	AccumVolume float64 // m^3
	MinChamberVolPct float64 // %, 0<x<50
	MinDeadBandVolPct float64 // %, >MinChamberVolPct, <50
	ForceBellowsMaxRate float64 // 1/s
	EditHoldTime float64 // s
	MinTemperature float64 // K
	MaxTemperature float64 // K
	MaxPressure float64 // kPa
	SpringCoeff0 float64 // kPa
	SpringCoeff1 float64 // kPa
	SpringCoeff2 float64 // kPa
	FillModePressureThreshold float64 // kPa
	EffCondScaleOneWayRate float64 // 1/s
	InitialBellowsPosition float64 // 0..1
}

// Input bundles the non-config arguments to Init: the fresh internal
// liquid fluid sample the accumulator will own from here on, already composed over the liquid port's species list.
type Input struct {
	LiquidFluid network.Fluid
}

// validate checks every rule in 's config table; failure is always an
// InvalidConfigError, never a RuntimeWarning.
func (c *Config) validate(link string) error {
	if c.MaxConductance < 0 {
		return network.ErrConfig(link, "MaxConductance must be >= 0, got %g", c.MaxConductance)
	}
	if c.MinConductivityScale < eps || c.MinConductivityScale > 1 {
		return network.ErrConfig(link, "MinConductivityScale must be in [eps,1], got %g", c.MinConductivityScale)
	}
	if c.AccumVolume <= eps {
		return network.ErrConfig(link, "AccumVolume must be > eps, got %g", c.AccumVolume)
	}
	if c.MinChamberVolPct <= 0 || c.MinChamberVolPct >= 50 {
		return network.ErrConfig(link, "MinChamberVolPct must be in (0,50), got %g", c.MinChamberVolPct)
	}
	if c.MinDeadBandVolPct <= c.MinChamberVolPct || c.MinDeadBandVolPct >= 50 {
		return network.ErrConfig(link, "MinDeadBandVolPct must be in (MinChamberVolPct,50), got %g", c.MinDeadBandVolPct)
	}
	if c.ForceBellowsMaxRate <= 0 {
		return network.ErrConfig(link, "ForceBellowsMaxRate must be > 0, got %g", c.ForceBellowsMaxRate)
	}
	if c.EditHoldTime < 0 {
		return network.ErrConfig(link, "EditHoldTime must be >= 0, got %g", c.EditHoldTime)
	}
	if c.MinTemperature <= 0 {
		return network.ErrConfig(link, "MinTemperature must be > 0, got %g", c.MinTemperature)
	}
	if c.MaxTemperature <= c.MinTemperature {
		return network.ErrConfig(link, "MaxTemperature must be > MinTemperature, got %g <= %g", c.MaxTemperature, c.MinTemperature)
	}
	if c.MaxPressure < eps {
		return network.ErrConfig(link, "MaxPressure must be >= eps, got %g", c.MaxPressure)
	}
	if c.FillModePressureThreshold > eps && c.EffCondScaleOneWayRate < eps {
		return network.ErrConfig(link, "FillModePressureThreshold > eps requires EffCondScaleOneWayRate >= eps")
	}
	if c.InitialBellowsPosition < 0 || c.InitialBellowsPosition > 1 {
		return network.ErrConfig(link, "InitialBellowsPosition must be in [0,1], got %g", c.InitialBellowsPosition)
	}
	return nil
}

func (in *Input) validate(link string) error {
	if in.LiquidFluid == nil {
		return network.ErrConfig(link, "LiquidFluid input must be non-nil")
	}
	return nil
}
