// Copyright 2016 The Gofluid Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package interp

import "math"

// BiTableReverse shares BiTable's storage and axis normalization but
// inverts the lookup: given (x, z) it solves for y such that the forward
// table value at (x, y) equals z.
//
// Multi-valued tables are handled by a documented, non-canonical policy:
// the first bracket found while walking along y in the direction implied
// by the initial endpoint residuals wins. Do not "improve" this; it is
// deterministic, not canonical.
type BiTableReverse struct {
	BiTable
}

// Evaluate returns y and whether a bracketing interval containing z was
// found along the search. When none is found, it falls back to the y
// scale point that minimizes |z - z*(x,y)|.
func (o *BiTableReverse) Evaluate(x, z float64) (y float64, bracketed bool) {
	n := len(o.y)
	i := bracket(o.x, x, o.li)
	o.li = i
	xFrac := (x - o.x[i]) / (o.x[i+1] - o.x[i])

	j := o.lj
	if j < 0 {
		j = 0
	}
	if j > n-2 {
		j = n - 2
	}
	zTail := o.z[i][j] + xFrac*(o.z[i+1][j]-o.z[i][j])
	zHead := o.z[i][j+1] + xFrac*(o.z[i+1][j+1]-o.z[i][j+1])

	if between(z, zTail, zHead) {
		o.lj = j
		if zTail == zHead {
			return 0.5 * (o.y[j] + o.y[j+1]), true
		}
		return o.y[j] + (o.y[j+1]-o.y[j])*(z-zTail)/(zHead-zTail), true
	}

	// walk toward whichever endpoint is closer to z: up (toward the head)
	// when |z-zHead| < |z-zTail|, otherwise down (toward the tail).
	dir := 1
	if math.Abs(z-zHead) >= math.Abs(z-zTail) {
		dir = -1
	}

	wrapped := false
	for step := 0; step < n-1; step++ {
		jn := j + dir
		if jn < 0 {
			if wrapped {
				break
			}
			wrapped = true
			jn = n - 2
		} else if jn > n-2 {
			if wrapped {
				break
			}
			wrapped = true
			jn = 0
		}
		j = jn
		zTail = o.z[i][j] + xFrac*(o.z[i+1][j]-o.z[i][j])
		zHead = o.z[i][j+1] + xFrac*(o.z[i+1][j+1]-o.z[i][j+1])
		if between(z, zTail, zHead) {
			o.lj = j
			if zTail == zHead {
				return 0.5 * (o.y[j] + o.y[j+1]), true
			}
			return o.y[j] + (o.y[j+1]-o.y[j])*(z-zTail)/(zHead-zTail), true
		}
	}

	// no bracket found anywhere: return the scale point minimizing |z - z*|
	bestK, bestDiff := 0, math.Inf(1)
	for k := 0; k < n; k++ {
		zk := o.z[i][k] + xFrac*(o.z[i+1][k]-o.z[i][k])
		d := math.Abs(z - zk)
		if d < bestDiff {
			bestDiff = d
			bestK = k
		}
	}
	return o.y[bestK], false
}

// between is an order-independent "z lies in [lo,hi]" test, since zTail
// may be above or below zHead depending on the table's shape.
func between(z, a, b float64) bool {
	lo, hi := a, b
	if lo > hi {
		lo, hi = hi, lo
	}
	return z >= lo && z <= hi
}
