// Copyright 2016 The Gofluid Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package network

import (
	"log"

	"github.com/cpmech/gosl/io"
)

// InvalidConfigError is returned by a link's Init when a configuration or
// input constraint is violated. It is non-recoverable for that link;
// the network build must fail loudly, naming the link and the failed rule.
type InvalidConfigError struct {
	Link string
	Rule string
}

func (e *InvalidConfigError) Error() string {
	return io.Sf("%s: invalid config: %s", e.Link, e.Rule)
}

// ErrConfig builds an InvalidConfigError, formatting Rule like chk.Err.
func ErrConfig(link, format string, args ...interface{}) error {
	return &InvalidConfigError{Link: link, Rule: io.Sf(format, args...)}
}

// OutOfRangeError is returned by GetExceptional on a table or curve fit
// when the queried point lies outside the valid domain.
type OutOfRangeError struct {
	What string
	Value float64
	Lo float64
	Hi float64
}

func (e *OutOfRangeError) Error() string {
	return io.Sf("%s: %g not in [%g, %g]", e.What, e.Value, e.Lo, e.Hi)
}

// ErrOutOfRange builds an OutOfRangeError.
func ErrOutOfRange(what string, value, lo, hi float64) error {
	return &OutOfRangeError{What: what, Value: value, Lo: lo, Hi: hi}
}

// Warn logs a RuntimeWarning: the affected sub-update is skipped and
// the last good value retained, but the link keeps stepping. Never use
// this for Init failures; those must be hard errors (see ErrConfig).
func Warn(format string, args ...interface{}) {
	log.Println("WARNING:", io.Sf(format, args...))
}
