// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package circular

import (
	"fmt"
	"sort"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/windower/interval"
)

// Sparse holds values at irregularly spaced positions.  Pos contains 0-based
// positions in strictly increasing order, and Val[i] is the value at Pos[i].
type Sparse struct {
	Pos []int
	Val []float64
}

// NewSparse checks that pos is strictly increasing and matches val in length.
func NewSparse(pos []int, val []float64) (Sparse, error) {
	if len(pos) != len(val) {
		return Sparse{}, errors.E(errors.Invalid,
			fmt.Sprintf("circular.NewSparse: %d positions but %d values", len(pos), len(val)))
	}
	for i := 1; i < len(pos); i++ {
		if pos[i] <= pos[i-1] {
			return Sparse{}, errors.E(errors.Invalid,
				fmt.Sprintf("circular.NewSparse: position %d at index %d does not follow %d", pos[i], i, pos[i-1]))
		}
	}
	return Sparse{Pos: pos, Val: val}, nil
}

// Len implements Signal.
func (s Sparse) Len() int { return len(s.Pos) }

// Map implements Signal.  Positions are shared with s.
func (s Sparse) Map(fn func(float64) float64) Signal {
	val := make([]float64, len(s.Val))
	for i, v := range s.Val {
		val[i] = fn(v)
	}
	return Sparse{Pos: s.Pos, Val: val}
}

// bounds returns the index range of the stored positions covered by w.  If
// lo > hi, the window wraps past the last stored position and covers
// [lo, Len()) followed by [0, hi).
//
// The window is converted to the 0-based [Start-1, End).  A start below 1 is
// moved up by genomeLength, and an end past the last stored position is moved
// down by genomeLength; the two ends are then located by bisection.
func (s Sparse) bounds(w interval.Window, genomeLength int) (lo, hi int) {
	if len(s.Pos) == 0 {
		return 0, 0
	}
	start, end := w.Start-1, w.End
	if start > end {
		start, end = end, start
	}
	if start < 1 {
		start += genomeLength
	}
	if end > s.Pos[len(s.Pos)-1] {
		end -= genomeLength
	}
	return sort.SearchInts(s.Pos, start), sort.SearchInts(s.Pos, end)
}

// Extract implements Signal.
//
// For example, with positions {0, 1, 5, 35, 55, 99}, values {1, 2, 3, 4, 5,
// 6} and genomeLength = 100, window [98, 102] yields {6, 1, 2}, window
// [37, 55] yields nothing and window [37, 56] yields {5}.
func (s Sparse) Extract(w interval.Window, genomeLength int) []float64 {
	lo, hi := s.bounds(w, genomeLength)
	if lo <= hi {
		return s.Val[lo:hi]
	}
	out := make([]float64, 0, len(s.Val)-lo+hi)
	out = append(out, s.Val[lo:]...)
	return append(out, s.Val[:hi]...)
}

// ExtractPositions is like Extract, but also returns the 0-based position of
// each returned value.
func (s Sparse) ExtractPositions(w interval.Window, genomeLength int) ([]int, []float64) {
	lo, hi := s.bounds(w, genomeLength)
	if lo <= hi {
		return s.Pos[lo:hi], s.Val[lo:hi]
	}
	pos := make([]int, 0, len(s.Pos)-lo+hi)
	pos = append(pos, s.Pos[lo:]...)
	pos = append(pos, s.Pos[:hi]...)
	val := make([]float64, 0, len(s.Val)-lo+hi)
	val = append(val, s.Val[lo:]...)
	return pos, append(val, s.Val[:hi]...)
}
