// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package interval_test

import (
	"math/rand"
	"testing"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
	"github.com/grailbio/windower/interval"
)

func TestDiscretize(t *testing.T) {
	tests := []struct {
		w      interval.Window
		strand interval.Strand
		bins   int
		want   []interval.Window
	}{
		{interval.Window{1, 10}, interval.Plus, 2, []interval.Window{{1, 5}, {6, 10}}},
		{interval.Window{1, 10}, interval.Minus, 2, []interval.Window{{6, 10}, {1, 5}}},
		{interval.Window{1, 10}, interval.Unspecified, 2, []interval.Window{{1, 5}, {6, 10}}},
		{interval.Window{1, 9}, interval.Plus, 2, []interval.Window{{1, 4}, {5, 9}}},
		{interval.Window{1, 3}, interval.Plus, 3, []interval.Window{{1, 1}, {2, 2}, {3, 3}}},
		{interval.Window{1, 11}, interval.Plus, 2, []interval.Window{{1, 5}, {6, 11}}},
		{interval.Window{-4, 5}, interval.Plus, 1, []interval.Window{{-4, 5}}},
		{interval.Window{95, 104}, interval.Minus, 3, []interval.Window{{101, 104}, {98, 100}, {95, 97}}},
	}
	for _, tt := range tests {
		got, err := interval.Discretize(tt.w, tt.strand, tt.bins)
		assert.NoError(t, err)
		expect.EQ(t, got, tt.want, "window %v strand %v bins %d", tt.w, tt.strand, tt.bins)
	}
}

func TestDiscretizeTooManyBins(t *testing.T) {
	_, err := interval.Discretize(interval.Window{1, 3}, interval.Plus, 4)
	expect.True(t, errors.Is(errors.Invalid, err))
	_, err = interval.Discretize(interval.Window{1, 3}, interval.Plus, 0)
	expect.True(t, errors.Is(errors.Invalid, err))
}

func TestDiscretizePartition(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for iter := 0; iter < 500; iter++ {
		start := rng.Intn(200) - 100
		w := interval.Window{start, start + rng.Intn(300)}
		bins := rng.Intn(w.Len()) + 1
		plus, err := interval.Discretize(w, interval.Plus, bins)
		assert.NoError(t, err)
		minus, err := interval.Discretize(w, interval.Minus, bins)
		assert.NoError(t, err)
		assert.EQ(t, len(plus), bins)

		total := 0
		next := w.Start
		for i, b := range plus {
			assert.EQ(t, b.Start, next)
			assert.True(t, b.End >= b.Start)
			total += b.Len()
			next = b.End + 1
			assert.EQ(t, minus[bins-1-i], b)
		}
		assert.EQ(t, total, w.Len())
		assert.EQ(t, next, w.End+1)
	}
}

func TestAddWindow(t *testing.T) {
	w := interval.Window{50, 70}
	expect.EQ(t, interval.AddWindow(w, 20, interval.Plus, true), interval.Window{30, 49})
	expect.EQ(t, interval.AddWindow(w, 20, interval.Minus, true), interval.Window{71, 90})
	expect.EQ(t, interval.AddWindow(w, 20, interval.Plus, false), interval.Window{71, 90})
	expect.EQ(t, interval.AddWindow(w, 20, interval.Minus, false), interval.Window{30, 49})
	expect.EQ(t, interval.AddWindow(w, 20, interval.Unspecified, true), interval.Window{30, 49})
	// Flanks may cross the origin; resolving them is the extractor's job.
	expect.EQ(t, interval.AddWindow(interval.Window{1, 10}, 5, interval.Plus, true), interval.Window{-4, 0})
}

func TestRandomWindow(t *testing.T) {
	rng := rand.New(rand.NewSource(0))
	for i := 0; i < 1000; i++ {
		w := interval.RandomWindow(rng, 30, 400)
		expect.EQ(t, w.Len(), 30)
		expect.True(t, w.Start >= 0 && w.Start <= 400)
	}
}

func TestStrandSides(t *testing.T) {
	expect.EQ(t, interval.Plus.FivePrimeSide(), interval.Low)
	expect.EQ(t, interval.Plus.ThreePrimeSide(), interval.High)
	expect.EQ(t, interval.Unspecified.FivePrimeSide(), interval.Low)
	expect.EQ(t, interval.Minus.FivePrimeSide(), interval.High)
	expect.EQ(t, interval.Minus.ThreePrimeSide(), interval.Low)
}

func TestParseStrand(t *testing.T) {
	for _, tt := range []struct {
		in   string
		want interval.Strand
	}{
		{"+", interval.Plus},
		{"-", interval.Minus},
		{".", interval.Unspecified},
		{"", interval.Unspecified},
	} {
		got, err := interval.ParseStrand(tt.in)
		assert.NoError(t, err)
		expect.EQ(t, got, tt.want)
	}
	_, err := interval.ParseStrand("?")
	expect.True(t, errors.Is(errors.Precondition, err))
}
