// Copyright 2016 The Gofluid Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package interp

import (
	"github.com/cpmech/gofluid/network"
	"github.com/cpmech/gosl/chk"
)

// BiTable is a 2-D bilinear interpolator over two independent monotone
// axes, with cached (i,j) indices. z is stored as rows over x, z[i][j]
// corresponding to (x[i], y[j]).
type BiTable struct {
	x, y []float64
	z [][]float64 // [m][n]
	minX, maxX float64
	minY, maxY float64
	li, lj int
}

// Init validates each axis independently (same rules as OrderedTable) and
// flips/transposes a descending axis to ascending.
func (o *BiTable) Init(x, y []float64, z [][]float64, minX, maxX, minY, maxY float64) error {
	m, n := len(x), len(y)
	if m < 2 || n < 2 {
		return chk.Err("BiTable.Init: need at least 2x2 points, got %dx%d", m, n)
	}
	if len(z) != m {
		return chk.Err("BiTable.Init: len(z)=%d != len(x)=%d", len(z), m)
	}
	for i := range z {
		if len(z[i]) != n {
			return chk.Err("BiTable.Init: len(z[%d])=%d != len(y)=%d", i, len(z[i]), n)
		}
	}

	xc := append([]float64(nil), x...)
	yc := append([]float64(nil), y...)
	zc := make([][]float64, m)
	for i := range zc {
		zc[i] = append([]float64(nil), z[i]...)
	}

	if err := checkMonotone("BiTable.Init x", xc); err != nil {
		return err
	}
	if err := checkMonotone("BiTable.Init y", yc); err != nil {
		return err
	}

	if xc[1] < xc[0] {
		reverseF(xc)
		reverseRows(zc)
	}
	if yc[1] < yc[0] {
		reverseF(yc)
		reverseCols(zc)
	}

	if minX < xc[0] || maxX > xc[m-1] || minX >= maxX {
		return chk.Err("BiTable.Init: x range [%g,%g] not covered by [%g,%g]", minX, maxX, xc[0], xc[m-1])
	}
	if minY < yc[0] || maxY > yc[n-1] || minY >= maxY {
		return chk.Err("BiTable.Init: y range [%g,%g] not covered by [%g,%g]", minY, maxY, yc[0], yc[n-1])
	}

	o.x, o.y, o.z = xc, yc, zc
	o.minX, o.maxX, o.minY, o.maxY = minX, maxX, minY, maxY
	o.li, o.lj = 0, 0
	return nil
}

func checkMonotone(tag string, v []float64) error {
	descending := v[1] < v[0]
	for i := 0; i < len(v)-1; i++ {
		d := v[i+1] - v[i]
		if descending {
			d = -d
		}
		if d < tinyAxisSpacing {
			return chk.Err("%s: axis is not strictly monotone at i=%d", tag, i)
		}
	}
	return nil
}

func reverseF(v []float64) {
	for i, j := 0, len(v)-1; i < j; i, j = i+1, j-1 {
		v[i], v[j] = v[j], v[i]
	}
}

func reverseRows(z [][]float64) {
	for i, j := 0, len(z)-1; i < j; i, j = i+1, j-1 {
		z[i], z[j] = z[j], z[i]
	}
}

func reverseCols(z [][]float64) {
	for _, row := range z {
		reverseF(row)
	}
}

// bracket walks the cached index i so that axis[i] <= v <= axis[i+1].
func bracket(axis []float64, v float64, i int) int {
	n := len(axis)
	if i < 0 {
		i = 0
	}
	if i > n-2 {
		i = n - 2
	}
	for i > 0 && v < axis[i] {
		i--
	}
	for i < n-2 && v > axis[i+1] {
		i++
	}
	return i
}

func lerp(lo, hi, x0, x1, x float64) float64 {
	return lo + (hi-lo)*(x-x0)/(x1-x0)
}

// Get clamps (x,y) to the table domain then evaluates.
func (o *BiTable) Get(x, y float64) float64 {
	x = clamp(x, o.minX, o.maxX)
	y = clamp(y, o.minY, o.maxY)
	z, _, _ := o.evaluate(x, y)
	return z
}

// GetExceptional fails with OutOfRange instead of clamping.
func (o *BiTable) GetExceptional(x, y float64) (float64, error) {
	if x < o.minX || x > o.maxX {
		return 0, network.ErrOutOfRange("BiTable.x", x, o.minX, o.maxX)
	}
	if y < o.minY || y > o.maxY {
		return 0, network.ErrOutOfRange("BiTable.y", y, o.minY, o.maxY)
	}
	z, _, _ := o.evaluate(x, y)
	return z, nil
}

// evaluate implements z = ((y(j+1)-y)*zTail + (y-y(j))*zHead) / (y(j+1)-y(j))
// where zTail, zHead are the x-interpolation of the two bracketing rows.
func (o *BiTable) evaluate(x, y float64) (z float64, i, j int) {
	i = bracket(o.x, x, o.li)
	j = bracket(o.y, y, o.lj)
	o.li, o.lj = i, j
	zTail := lerp(o.z[i][j], o.z[i+1][j], o.x[i], o.x[i+1], x)
	zHead := lerp(o.z[i][j+1], o.z[i+1][j+1], o.x[i], o.x[i+1], x)
	z = lerp(zTail, zHead, o.y[j], o.y[j+1], y)
	return
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
