// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package windower

import (
	"fmt"
	"math"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/windower/interval"
	"github.com/grailbio/windower/summary"
)

// EColiGenomeLength is the length of the E. coli K-12 MG1655 chromosome.
const EColiGenomeLength = 4639676

// Opts controls a scan.  A Windower keeps its own copy, so changing an Opts
// after New has no effect.
type Opts struct {
	// Number of bins the primary window is split into.
	WindowBins int
	// Length and bin count of the flank on the five-prime side of each primary
	// window.  No flank is emitted when FarUpstream is 0.
	FarUpstream     int
	FarUpstreamBins int
	// Length and bin count of the flank on the three-prime side.
	FarDownstream     int
	FarDownstreamBins int
	GenomeLength      int
	Stat              summary.Statistic
	// Name selects the label columns of each row: start, end, startend or
	// center for sliding scans, and fiveprime, threeprime, startend,
	// startendstrand, comments or center for feature scans.
	Name string

	// Numeric signal pre-processing.  Non-finite values are replaced by 0
	// unless KeepNonFinite, negative values are replaced by 0 unless
	// KeepNegative, and when ConvertLogical is nonzero every value becomes 1
	// if it exceeds ConvertLogical and 0 otherwise.
	KeepNonFinite  bool
	KeepNegative   bool
	ConvertLogical float64

	// Feature-anchored scans only.
	Upstream   int
	Downstream int
	Center     interval.CenterPolicy
	// Distributions is the number of random windows summarized per feature
	// for the background distribution.
	Distributions int
	Seed          int64

	// PlotDist collects the primary window values of a sliding scan.
	PlotDist bool
}

// DefaultOpts are the defaults of the bio-windower command.
var DefaultOpts = Opts{
	WindowBins:        1,
	FarUpstreamBins:   1,
	FarDownstreamBins: 1,
	GenomeLength:      EColiGenomeLength,
	Stat:              summary.Statistic{Kind: summary.Mean},
	Name:              "startend",
	Center:            interval.Identity,
	Seed:              1,
}

func (o *Opts) validate() error {
	if o.GenomeLength < 1 {
		return errors.E(errors.Invalid, fmt.Sprintf("windower: genome length %d must be positive", o.GenomeLength))
	}
	if o.WindowBins < 1 || o.FarUpstreamBins < 1 || o.FarDownstreamBins < 1 {
		return errors.E(errors.Invalid, fmt.Sprintf("windower: bin counts (%d, %d, %d) must be positive",
			o.FarUpstreamBins, o.WindowBins, o.FarDownstreamBins))
	}
	if o.FarUpstream < 0 || o.FarDownstream < 0 || o.Upstream < 0 || o.Downstream < 0 {
		return errors.E(errors.Invalid, "windower: flank and padding lengths must not be negative")
	}
	if o.Distributions < 0 {
		return errors.E(errors.Invalid, fmt.Sprintf("windower: distributions %d must not be negative", o.Distributions))
	}
	return nil
}

// preprocess returns the transform applied to numeric signals, or nil if
// there is nothing to do.
func (o *Opts) preprocess() func(float64) float64 {
	if o.KeepNonFinite && o.KeepNegative && o.ConvertLogical == 0 {
		return nil
	}
	return func(v float64) float64 {
		if !o.KeepNonFinite && (math.IsNaN(v) || math.IsInf(v, 0)) {
			v = 0
		}
		if !o.KeepNegative && v < 0 {
			v = 0
		}
		if o.ConvertLogical != 0 {
			if v > o.ConvertLogical {
				return 1
			}
			return 0
		}
		return v
	}
}
