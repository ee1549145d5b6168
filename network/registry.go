// Copyright 2016 The Gofluid Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package network

import "github.com/cpmech/gosl/chk"

// AllocatorType builds a new, uninitialized Link of one concrete kind
// (accumulator, evaporation link, heater, membrane, ...). The returned
// Link still needs its own package-specific Init called before it can
// take part in a tick.
type AllocatorType func() Link

var allocators = make(map[string]AllocatorType)

// SetAllocator registers the constructor for a link type name. Link
// packages call this from an init() so a network builder can assemble a
// configuration-driven network without importing every concrete link
// package by name.
func SetAllocator(linkType string, fcn AllocatorType) {
	if _, ok := allocators[linkType]; ok {
		chk.Panic("cannot set allocator for link type %q because it is already registered", linkType)
	}
	allocators[linkType] = fcn
}

// GetAllocator returns the registered constructor for linkType.
func GetAllocator(linkType string) AllocatorType {
	if fcn, ok := allocators[linkType]; ok {
		return fcn
	}
	chk.Panic("cannot get allocator for link type %q: not registered", linkType)
	return nil
}

// New builds a new, uninitialized Link of the named type via its
// registered allocator.
func New(linkType string) Link {
	fcn := GetAllocator(linkType)
	ele := fcn()
	if ele == nil {
		chk.Panic("allocator for link type %q returned nil", linkType)
	}
	return ele
}
