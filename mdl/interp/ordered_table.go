// Copyright 2016 The Gofluid Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package interp implements the 1-D and 2-D table-lookup and
// reverse-lookup interpolators for tabulated property data such as
// saturation curves.
package interp

import (
	"github.com/cpmech/gofluid/network"
	"github.com/cpmech/gosl/chk"
)

// tinyAxisSpacing is the minimum admissible gap between neighbouring axis
// points; anything smaller is treated as a degenerate (non-monotone) axis.
const tinyAxisSpacing = 1e-12

// OrderedTable is a 1-D linear interpolator over a monotone axis, with a
// cached last index so repeated evaluations near the previous point are
// O(1) instead of a fresh binary search.
type OrderedTable struct {
	x, z []float64
	minX, maxX float64
	last int
	ready bool
}

// Init validates and stores copies of the table. x must be strictly
// monotone; if descending, the stored copies of x and z are flipped to
// ascending (the caller's slices are not modified), and evaluation always
// assumes ascending order thereafter.
func (o *OrderedTable) Init(x, z []float64, minX, maxX float64) error {
	n := len(x)
	if n < 2 {
		return chk.Err("OrderedTable.Init: need at least 2 points, got %d", n)
	}
	if len(z) != n {
		return chk.Err("OrderedTable.Init: len(z)=%d != len(x)=%d", len(z), n)
	}

	descending := x[1] < x[0]
	for i := 0; i < n-1; i++ {
		d := x[i+1] - x[i]
		if descending {
			d = -d
		}
		if d < tinyAxisSpacing {
			return chk.Err("OrderedTable.Init: x axis is not strictly monotone ascending (or descending) at i=%d", i)
		}
	}

	xc := make([]float64, n)
	zc := make([]float64, n)
	copy(xc, x)
	copy(zc, z)
	if descending {
		for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
			xc[i], xc[j] = xc[j], xc[i]
			zc[i], zc[j] = zc[j], zc[i]
		}
	}

	if minX < xc[0] || maxX > xc[n-1] {
		return chk.Err("OrderedTable.Init: range [%g, %g] not covered by table [%g, %g]", minX, maxX, xc[0], xc[n-1])
	}
	if minX >= maxX {
		return chk.Err("OrderedTable.Init: minX=%g must be < maxX=%g", minX, maxX)
	}

	o.x, o.z = xc, zc
	o.minX, o.maxX = minX, maxX
	o.last = 0
	o.ready = true
	return nil
}

// Get clamps x to [minX, maxX] then evaluates.
func (o *OrderedTable) Get(x float64) float64 {
	if x < o.minX {
		x = o.minX
	} else if x > o.maxX {
		x = o.maxX
	}
	return o.evaluate(x)
}

// GetExceptional fails with OutOfRange instead of clamping.
func (o *OrderedTable) GetExceptional(x float64) (float64, error) {
	if x < o.minX || x > o.maxX {
		return 0, network.ErrOutOfRange("OrderedTable", x, o.minX, o.maxX)
	}
	return o.evaluate(x), nil
}

func (o *OrderedTable) evaluate(x float64) float64 {
	if !o.ready {
		return 0
	}
	n := len(o.x)
	i := o.last
	if i < 0 {
		i = 0
	}
	if i > n-2 {
		i = n - 2
	}
	for i > 0 && x < o.x[i] {
		i--
	}
	for i < n-2 && x > o.x[i+1] {
		i++
	}
	o.last = i
	frac := (x - o.x[i]) / (o.x[i+1] - o.x[i])
	return o.z[i] + frac*(o.z[i+1]-o.z[i])
}
