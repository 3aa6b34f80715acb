// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package interval_test

import (
	"testing"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
	"github.com/grailbio/windower/interval"
)

type feature struct {
	span   interval.Window
	strand interval.Strand
}

func (f feature) Span() interval.Window   { return f.span }
func (f feature) Strand() interval.Strand { return f.strand }

func TestAnchorWindow(t *testing.T) {
	plus := feature{interval.Window{100, 201}, interval.Plus}
	minus := feature{interval.Window{100, 201}, interval.Minus}
	tests := []struct {
		f                 feature
		fivePad, threePad int
		policy            interval.CenterPolicy
		want              interval.Window
	}{
		{plus, 0, 0, interval.Identity, interval.Window{100, 201}},
		{plus, 10, 20, interval.Identity, interval.Window{90, 221}},
		{minus, 10, 20, interval.Identity, interval.Window{80, 211}},
		{plus, 0, 0, interval.Median, interval.Window{150, 150}},
		{minus, 5, 0, interval.Median, interval.Window{150, 155}},
		{plus, 0, 0, interval.FivePrime, interval.Window{100, 100}},
		{minus, 0, 0, interval.FivePrime, interval.Window{201, 201}},
		{plus, 0, 0, interval.ThreePrime, interval.Window{201, 201}},
		{minus, 0, 0, interval.ThreePrime, interval.Window{100, 100}},
		{plus, 50, 10, interval.FivePrime, interval.Window{50, 110}},
		{minus, 50, 10, interval.FivePrime, interval.Window{191, 251}},
		{feature{interval.Window{1, 4}, interval.Unspecified}, 3, 0, interval.Identity, interval.Window{-2, 4}},
	}
	for _, tt := range tests {
		got := interval.AnchorWindow(tt.f, tt.fivePad, tt.threePad, tt.policy)
		expect.EQ(t, got, tt.want, "feature %v policy %v", tt.f, tt.policy)
	}
}

func TestParseCenterPolicy(t *testing.T) {
	for _, name := range []string{"identity", "median", "fiveprime", "threeprime"} {
		p, err := interval.ParseCenterPolicy(name)
		assert.NoError(t, err)
		expect.EQ(t, p.String(), name)
	}
	_, err := interval.ParseCenterPolicy("middle")
	expect.True(t, errors.Is(errors.NotSupported, err))
}
