// Copyright 2016 The Gofluid Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package interp

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func sampleBiTable(tst *testing.T) *BiTable {
	x := []float64{0, 1, 2}
	y := []float64{0, 10, 20, 30}
	z := [][]float64{
		{0, 1, 2, 3},
		{10, 11, 12, 13},
		{20, 21, 22, 23},
	}
	var bt BiTable
	if err := bt.Init(x, y, z, 0, 2, 0, 30); err != nil {
		tst.Fatalf("Init failed: %v", err)
	}
	return &bt
}

func TestBiTableCorners(tst *testing.T) {
	chk.PrintTitle("BiTable: corners and midpoints")
	bt := sampleBiTable(tst)
	chk.Float64(tst, "corner(0,0)", 1e-12, bt.Get(0, 0), 0)
	chk.Float64(tst, "corner(2,30)", 1e-12, bt.Get(2, 30), 23)
	chk.Float64(tst, "mid(1,15)", 1e-12, bt.Get(1, 15), 11.5)
	chk.Float64(tst, "mid(0.5,5)", 1e-12, bt.Get(0.5, 5), 5.5)
}

func TestBiTableDescendingAxisInvariance(tst *testing.T) {
	chk.PrintTitle("BiTable: descending axis flip produces identical evaluations")
	xAsc := []float64{0, 1, 2}
	yAsc := []float64{0, 10, 20}
	zAsc := [][]float64{{0, 1, 2}, {10, 11, 12}, {20, 21, 22}}
	var asc BiTable
	if err := asc.Init(xAsc, yAsc, zAsc, 0, 2, 0, 20); err != nil {
		tst.Fatalf("asc Init failed: %v", err)
	}

	xDesc := []float64{2, 1, 0}
	yDesc := []float64{20, 10, 0}
	zDesc := [][]float64{{22, 21, 20}, {12, 11, 10}, {2, 1, 0}}
	var desc BiTable
	if err := desc.Init(xDesc, yDesc, zDesc, 0, 2, 0, 20); err != nil {
		tst.Fatalf("desc Init failed: %v", err)
	}

	for _, xy := range [][2]float64{{0.3, 4}, {1.5, 12}, {2, 20}} {
		a := asc.Get(xy[0], xy[1])
		d := desc.Get(xy[0], xy[1])
		chk.Float64(tst, "flip-invariance", 1e-12, d, a)
	}
}

func TestBiTableReverseRoundTrip(tst *testing.T) {
	chk.PrintTitle("BiTableReverse: round-trip against BiTable")
	x := []float64{0, 1, 2}
	y := []float64{0, 10, 20, 30}
	z := [][]float64{
		{0, 5, 9, 12},
		{2, 8, 15, 19},
		{3, 10, 18, 25},
	}
	var fwd BiTable
	if err := fwd.Init(x, y, z, 0, 2, 0, 30); err != nil {
		tst.Fatalf("Init failed: %v", err)
	}
	var rev BiTableReverse
	if err := rev.Init(x, y, z, 0, 2, 0, 30); err != nil {
		tst.Fatalf("Init failed: %v", err)
	}

	for _, xy := range [][2]float64{{0.4, 7}, {1.2, 15}, {1.9, 22}} {
		zVal := fwd.Get(xy[0], xy[1])
		yBack, ok := rev.Evaluate(xy[0], zVal)
		if !ok {
			tst.Fatalf("expected a bracket for x=%v z=%v", xy[0], zVal)
		}
		zBack := fwd.Get(xy[0], yBack)
		if math.Abs(zBack-zVal) > 1e-6 {
			tst.Fatalf("round-trip mismatch: z=%v zBack=%v (y=%v yBack=%v)", zVal, zBack, xy[1], yBack)
		}
	}
}

func TestBiTableReverseStableOnRepeat(tst *testing.T) {
	chk.PrintTitle("BiTableReverse: stable root on repeated calls from cached index")
	x := []float64{0, 1}
	y := []float64{0, 10, 20}
	// non-monotone along y at fixed x so multiple y could satisfy z=5
	z := [][]float64{
		{0, 10, 0},
		{0, 10, 0},
	}
	var rev BiTableReverse
	if err := rev.Init(x, y, z, 0, 1, 0, 20); err != nil {
		tst.Fatalf("Init failed: %v", err)
	}
	y1, _ := rev.Evaluate(0.5, 5)
	y2, _ := rev.Evaluate(0.5, 5)
	chk.Float64(tst, "repeat-stable", 1e-12, y2, y1)
}
