// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package circular

import (
	"github.com/grailbio/windower/interval"
)

// Signal is a read-only measurement over a circular genome.
type Signal interface {
	// Extract returns the values covered by w on a genome of length
	// genomeLength.  The result may alias the signal's storage and must not be
	// modified.
	Extract(w interval.Window, genomeLength int) []float64
	// Len returns the number of stored values.
	Len() int
	// Map returns a copy of the signal with fn applied to every value.
	Map(fn func(float64) float64) Signal
}

// floorDiv returns floor(a / b) for b > 0.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}

// clamp limits [start, end) to [0, n), the way slicing a numpy array does.
func clamp(start, end, n int) (int, int) {
	if start < 0 {
		start = 0
	}
	if end > n {
		end = n
	}
	if start > end {
		start = end
	}
	return start, end
}
