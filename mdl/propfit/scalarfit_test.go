// Copyright 2016 The Gofluid Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package propfit

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

// water-like Antoine-style coefficients tuned so the domain [1,600] kPa
// produces a positive, finite Tsat at both endpoints.
func waterTsatFit(tst *testing.T) *SaturationTemperatureFit {
	var fit SaturationTemperatureFit
	err := fit.Init(5.0, -1.5, -0.3, 647.0, 1.0, 600.0)
	if err != nil {
		tst.Fatalf("Init failed: %v", err)
	}
	return &fit
}

func TestSaturationTemperatureFitEndpoints(tst *testing.T) {
	chk.PrintTitle("SaturationTemperatureFit: domain endpoints finite and positive")
	fit := waterTsatFit(tst)
	tMin := fit.Get(1.0)
	tMax := fit.Get(600.0)
	if tMin <= 0 || math.IsNaN(tMin) || math.IsInf(tMin, 0) {
		tst.Fatalf("Tsat(minP) invalid: %v", tMin)
	}
	if tMax <= 0 || math.IsNaN(tMax) || math.IsInf(tMax, 0) {
		tst.Fatalf("Tsat(maxP) invalid: %v", tMax)
	}
}

func TestSaturationTemperatureFitRejectsTinyC(tst *testing.T) {
	chk.PrintTitle("SaturationTemperatureFit: Init rejects |c| < eps")
	var fit SaturationTemperatureFit
	if err := fit.Init(5.0, -1.5, 0, 647.0, 1.0, 600.0); err == nil {
		tst.Fatalf("expected error for c=0")
	}
}

func TestSaturationTemperatureFitGetExceptional(tst *testing.T) {
	chk.PrintTitle("SaturationTemperatureFit: GetExceptional rejects out of range")
	fit := waterTsatFit(tst)
	if _, err := fit.GetExceptional(1000); err == nil {
		tst.Fatalf("expected OutOfRange")
	}
}

func TestHeatOfVaporizationFitBasic(tst *testing.T) {
	chk.PrintTitle("HeatOfVaporizationFit: basic evaluation and clamping")
	var fit HeatOfVaporizationFit
	err := fit.Init(2260.0, 0.38, 0.35, 647.0, 280.0, 640.0)
	if err != nil {
		tst.Fatalf("Init failed: %v", err)
	}
	l1 := fit.Get(373.0)
	if l1 <= 0 {
		tst.Fatalf("expected positive heat of vaporization, got %v", l1)
	}
	lNearCrit := fit.Get(646.9)
	if lNearCrit < 0 || lNearCrit > l1 {
		tst.Fatalf("expected heat of vaporization to vanish near Tc, got %v vs %v", lNearCrit, l1)
	}
}

func TestHeatOfVaporizationFitRejectsLargeExponents(tst *testing.T) {
	chk.PrintTitle("HeatOfVaporizationFit: Init rejects |alpha| or |beta| > 50")
	var fit HeatOfVaporizationFit
	if err := fit.Init(1, 51, 0.3, 647.0, 280, 640); err == nil {
		tst.Fatalf("expected error for alpha=51")
	}
	if err := fit.Init(1, 0.3, 51, 647.0, 280, 640); err == nil {
		tst.Fatalf("expected error for beta=51")
	}
}
