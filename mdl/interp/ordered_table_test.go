// Copyright 2016 The Gofluid Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package interp

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func TestOrderedTableLinear(tst *testing.T) {
	chk.PrintTitle("OrderedTable: linear ramp")
	var tab OrderedTable
	x := []float64{0, 1, 2, 3, 4}
	z := []float64{0, 10, 20, 30, 40}
	err := tab.Init(x, z, 0, 4)
	if err != nil {
		tst.Fatalf("Init failed: %v", err)
	}
	chk.Float64(tst, "get(1.5)", 1e-12, tab.Get(1.5), 15)
	chk.Float64(tst, "get(-5) clamps", 1e-12, tab.Get(-5), 0)
	chk.Float64(tst, "get(99) clamps", 1e-12, tab.Get(99), 40)
}

func TestOrderedTableDescendingFlips(tst *testing.T) {
	chk.PrintTitle("OrderedTable: descending axis normalizes to ascending")
	var asc, desc OrderedTable
	asc.Init([]float64{0, 1, 2, 3}, []float64{0, 1, 4, 9}, 0, 3)
	desc.Init([]float64{3, 2, 1, 0}, []float64{9, 4, 1, 0}, 0, 3)
	for _, x := range []float64{0, 0.5, 1.7, 2.99, 3} {
		a, d := asc.Get(x), desc.Get(x)
		chk.Float64(tst, "flip-invariance", 1e-12, d, a)
	}
}

func TestOrderedTableGetExceptional(tst *testing.T) {
	chk.PrintTitle("OrderedTable: GetExceptional rejects out-of-range")
	var tab OrderedTable
	tab.Init([]float64{0, 1}, []float64{0, 1}, 0, 1)
	if _, err := tab.GetExceptional(2); err == nil {
		tst.Fatalf("expected OutOfRange error")
	}
	if _, err := tab.GetExceptional(0.5); err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
}

func TestOrderedTableInitRejectsDegenerateAxis(tst *testing.T) {
	chk.PrintTitle("OrderedTable: Init rejects short/plateau axis")
	var tab OrderedTable
	if err := tab.Init([]float64{0}, []float64{0}, 0, 0); err == nil {
		tst.Fatalf("expected error for n<2")
	}
	if err := tab.Init([]float64{0, 0, 1}, []float64{0, 1, 2}, 0, 1); err == nil {
		tst.Fatalf("expected error for plateau axis")
	}
	if err := tab.Init([]float64{0, 1, 2}, []float64{0, 1, 2}, -1, 1); err == nil {
		tst.Fatalf("expected error for range outside table")
	}
}
