// Copyright 2016 The Gofluid Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package propfit implements closed-form curve fits for fluid properties
// that are too cheap, or too awkward as tables, to look up: saturation
// temperature from pressure, and heat of vaporization from temperature.
// Both validate their domain entirely at Init so the hot path never
// re-checks it.
package propfit

import (
	"math"

	"github.com/cpmech/gofluid/network"
	"github.com/cpmech/gosl/chk"
)

const eps = 1e-12

// SaturationTemperatureFit reverses the quadratic
// c*y^2 + b*y + a = log10(p)
// for y = Tc/Tsat, returning the negative root. Domain is [minP, maxP].
type SaturationTemperatureFit struct {
	a, b, c float64
	tc float64
	minP, maxP float64
}

// Init validates the fit coefficients against the declared pressure
// range: the radicand must stay non-negative and the resulting Tsat must
// stay positive at both endpoints.
func (o *SaturationTemperatureFit) Init(a, b, c, criticalTemperature, minP, maxP float64) error {
	if math.Abs(c) < eps {
		return chk.Err("SaturationTemperatureFit.Init: |c|=%g too small", math.Abs(c))
	}
	if minP <= 0 || maxP <= minP {
		return chk.Err("SaturationTemperatureFit.Init: invalid pressure range [%g,%g]", minP, maxP)
	}
	if criticalTemperature <= 0 {
		return chk.Err("SaturationTemperatureFit.Init: criticalTemperature must be > 0, got %g", criticalTemperature)
	}
	o.a, o.b, o.c, o.tc = a, b, c, criticalTemperature
	o.minP, o.maxP = minP, maxP

	for _, p := range []float64{minP, maxP} {
		t, err := o.solve(p)
		if err != nil {
			return chk.Err("SaturationTemperatureFit.Init: %v at p=%g", err, p)
		}
		if t <= 0 {
			return chk.Err("SaturationTemperatureFit.Init: non-positive Tsat=%g at p=%g", t, p)
		}
	}
	return nil
}

func (o *SaturationTemperatureFit) solve(p float64) (float64, error) {
	radicand := o.b*o.b - 4*o.c*(o.a-math.Log10(p))
	if radicand < 0 {
		return 0, chk.Err("negative radicand %g", radicand)
	}
	y := (-o.b - math.Sqrt(radicand)) / (2 * o.c)
	if y == 0 {
		return 0, chk.Err("y=Tc/Tsat evaluated to 0")
	}
	return o.tc / y, nil
}

// Get clamps p to [minP, maxP] and returns the saturation temperature.
func (o *SaturationTemperatureFit) Get(p float64) float64 {
	p = clamp(p, o.minP, o.maxP)
	t, _ := o.solve(p)
	return t
}

// GetExceptional fails with OutOfRange instead of clamping.
func (o *SaturationTemperatureFit) GetExceptional(p float64) (float64, error) {
	if p < o.minP || p > o.maxP {
		return 0, network.ErrOutOfRange("SaturationTemperatureFit", p, o.minP, o.maxP)
	}
	t, err := o.solve(p)
	if err != nil {
		return 0, err
	}
	return t, nil
}

// HeatOfVaporizationFit evaluates L = A * exp(-alpha*Tr) * (1-Tr)^beta for
// reduced temperature Tr = T/Tc.
type HeatOfVaporizationFit struct {
	amp, alpha, beta, tc float64
	minT, maxT float64
}

// Init rejects exponents whose magnitude would make the curve numerically
// unusable (|alpha| or |beta| > 50).
func (o *HeatOfVaporizationFit) Init(amplitude, alpha, beta, criticalTemperature, minT, maxT float64) error {
	if math.Abs(alpha) > 50 {
		return chk.Err("HeatOfVaporizationFit.Init: |alpha|=%g > 50", math.Abs(alpha))
	}
	if math.Abs(beta) > 50 {
		return chk.Err("HeatOfVaporizationFit.Init: |beta|=%g > 50", math.Abs(beta))
	}
	if criticalTemperature <= 0 {
		return chk.Err("HeatOfVaporizationFit.Init: criticalTemperature must be > 0, got %g", criticalTemperature)
	}
	if minT <= 0 || maxT <= minT {
		return chk.Err("HeatOfVaporizationFit.Init: invalid temperature range [%g,%g]", minT, maxT)
	}
	o.amp, o.alpha, o.beta, o.tc = amplitude, alpha, beta, criticalTemperature
	o.minT, o.maxT = minT, maxT
	return nil
}

func (o *HeatOfVaporizationFit) eval(t float64) float64 {
	tr := t / o.tc
	base := 1 - tr
	var pw float64
	if base <= 0 {
		pw = 0
	} else {
		pw = math.Pow(base, o.beta)
	}
	return o.amp * math.Exp(-o.alpha*tr) * pw
}

// Get clamps t to [minT, maxT].
func (o *HeatOfVaporizationFit) Get(t float64) float64 {
	t = clamp(t, o.minT, o.maxT)
	return o.eval(t)
}

// GetExceptional fails with OutOfRange instead of clamping.
func (o *HeatOfVaporizationFit) GetExceptional(t float64) (float64, error) {
	if t < o.minT || t > o.maxT {
		return 0, network.ErrOutOfRange("HeatOfVaporizationFit", t, o.minT, o.maxT)
	}
	return o.eval(t), nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
