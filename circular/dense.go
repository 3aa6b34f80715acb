// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package circular

import (
	"github.com/grailbio/windower/interval"
)

// Dense holds one value per base.  Dense[i] is the value at (1-based)
// position i+1.
type Dense []float64

// Len implements Signal.
func (d Dense) Len() int { return len(d) }

// Map implements Signal.
func (d Dense) Map(fn func(float64) float64) Signal {
	out := make(Dense, len(d))
	for i, v := range d {
		out[i] = fn(v)
	}
	return out
}

// Extract implements Signal.
//
// The window is converted to the 0-based interval [Start-1, End).  A start
// outside [0, genomeLength) moves the interval by whole genome lengths until
// the start falls inside; for windows produced by package interval that is
// at most one genome length.  If the interval then extends past
// genomeLength, the result is d[start:genomeLength] followed by
// d[0:end-genomeLength]; otherwise it is d[start:end].
//
// For example, with d = {1, 2, 3, 4, 5, 6} and genomeLength = 6, window
// [-1, 2] yields {5, 6, 1, 2} and window [6, 8] yields {6, 1, 2}.
func (d Dense) Extract(w interval.Window, genomeLength int) []float64 {
	start, end := w.Start-1, w.End
	if start < 0 || start >= genomeLength {
		shift := floorDiv(start, genomeLength) * genomeLength
		start -= shift
		end -= shift
	}
	if end > genomeLength {
		tailStart, tailEnd := clamp(start, genomeLength, len(d))
		headStart, headEnd := clamp(0, end-genomeLength, len(d))
		out := make([]float64, 0, (tailEnd-tailStart)+(headEnd-headStart))
		out = append(out, d[tailStart:tailEnd]...)
		return append(out, d[headStart:headEnd]...)
	}
	start, end = clamp(start, end, len(d))
	return d[start:end]
}
