// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package interval

import (
	"fmt"
	"math/rand"

	"github.com/grailbio/base/errors"
)

// Window is a 1-based interval with an inclusive end.  Start may be < 1 and
// End may exceed the genome length.
type Window struct {
	Start, End int
}

// Len returns the number of bases covered by w.
func (w Window) Len() int {
	return w.End - w.Start + 1
}

// String implements fmt.Stringer.
func (w Window) String() string {
	return fmt.Sprintf("[%d %d]", w.Start, w.End)
}

// end returns the coordinate of w's end on the given side.
func (w Window) end(side Side) int {
	if side == Low {
		return w.Start
	}
	return w.End
}

// Discretize splits w into bins contiguous windows, in the five-prime to
// three-prime direction of strand.  All bins but the last have length
// w.Len()/bins (rounded down); the last bin (in coordinate order) absorbs the
// remainder, so the bins partition w exactly.
//
// An error is returned if bins < 1 or bins > w.Len().
func Discretize(w Window, strand Strand, bins int) ([]Window, error) {
	length := w.Len()
	if bins < 1 || bins > length {
		return nil, errors.E(errors.Invalid,
			fmt.Sprintf("interval.Discretize: cannot split window %v of length %d into %d bins", w, length, bins))
	}
	binSize := length / bins
	out := make([]Window, bins)
	start := w.Start
	for i := range out {
		out[i] = Window{start, start + binSize - 1}
		start += binSize
	}
	out[bins-1].End = w.End
	if strand.FivePrimeSide() == High {
		for i, j := 0, bins-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out, nil
}

// AddWindow returns the window of the given size immediately adjacent to w,
// on its five-prime side if fivePrime is true and on its three-prime side
// otherwise.  The result never overlaps w.
func AddWindow(w Window, size int, strand Strand, fivePrime bool) Window {
	if strand.side(fivePrime) == Low {
		return Window{w.Start - size, w.Start - 1}
	}
	return Window{w.End + 1, w.End + size}
}

// RandomWindow returns a window of the given length starting at a uniformly
// chosen position in [0, genomeLength].  The window may wrap past the end of
// the genome.
func RandomWindow(rng *rand.Rand, length, genomeLength int) Window {
	start := rng.Intn(genomeLength + 1)
	return Window{start, start + length - 1}
}
