// Copyright 2016 The Gofluid Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package accum

import "github.com/cpmech/gofluid/network"

func init() {
	network.SetAllocator("accumulator", func() network.Link { return new(Base) })
	network.SetAllocator("accumulatorGas", func() network.Link { return new(AccumulatorGas) })
}
