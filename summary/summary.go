// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package summary reduces the values or bases covered by a window to a
// single number.
package summary

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/grailbio/base/errors"
	"gonum.org/v1/gonum/stat"
)

// Kind identifies a summary statistic.
type Kind int

const (
	// Mean is the arithmetic mean of the window values.
	Mean Kind = iota
	// Median is the median of the window values.
	Median
	// Density is the number of values in the window.
	Density
	// Cutoff is 1 if any window value exceeds Statistic.Threshold and 0
	// otherwise.
	Cutoff
	// MotifCount is the number of non-overlapping matches of
	// Statistic.Motif in the window sequence.
	MotifCount
	// BaseContent is the fraction of the window sequence made of
	// Statistic.Bases.
	BaseContent
)

var kindNames = [...]string{
	Mean:        "mean",
	Median:      "median",
	Density:     "density",
	Cutoff:      "cutoff",
	MotifCount:  "motif",
	BaseContent: "basecontent",
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Statistic is a summary statistic.  Only the fields used by Kind are set.
type Statistic struct {
	Kind Kind
	// Threshold is used by Cutoff.
	Threshold float64
	// Motif is used by MotifCount.
	Motif *regexp.Regexp
	// Bases is used by BaseContent.  All entries should have the same
	// length.
	Bases []string
}

// Genomic reports whether s summarizes a sequence rather than numeric values.
func (s Statistic) Genomic() bool {
	return s.Kind == MotifCount || s.Kind == BaseContent
}

// String implements fmt.Stringer.
func (s Statistic) String() string {
	switch s.Kind {
	case Cutoff:
		return fmt.Sprintf("cutoff(%g)", s.Threshold)
	case MotifCount:
		return fmt.Sprintf("motif(%s)", s.Motif)
	case BaseContent:
		return fmt.Sprintf("basecontent(%s)", strings.Join(s.Bases, ";"))
	}
	return s.Kind.String()
}

// Coverage is what a window covers: numeric values, or bases when IsSeq is
// true.
type Coverage struct {
	Values []float64
	Seq    string
	IsSeq  bool
}

// Eval computes s over c.  The mean and median of an empty window are NaN.
func (s Statistic) Eval(c Coverage) (float64, error) {
	if s.Genomic() != c.IsSeq {
		what := "numeric values"
		if c.IsSeq {
			what = "a sequence"
		}
		return 0, errors.E(errors.NotSupported,
			fmt.Sprintf("summary: statistic %v cannot summarize %s", s, what))
	}
	switch s.Kind {
	case Mean:
		if len(c.Values) == 0 {
			return math.NaN(), nil
		}
		return stat.Mean(c.Values, nil), nil
	case Median:
		return median(c.Values), nil
	case Density:
		return float64(len(c.Values)), nil
	case Cutoff:
		for _, v := range c.Values {
			if v > s.Threshold {
				return 1, nil
			}
		}
		return 0, nil
	case MotifCount:
		return float64(len(s.Motif.FindAllStringIndex(c.Seq, -1))), nil
	case BaseContent:
		return baseContent(c.Seq, s.Bases), nil
	}
	return 0, errors.E(errors.NotSupported, fmt.Sprintf("summary: unknown statistic %v", s.Kind))
}

func median(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return math.NaN()
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// baseContent counts the non-overlapping occurrences of each of bases in seq
// and divides by the number of base-sized units in seq.
func baseContent(seq string, bases []string) float64 {
	if len(bases) == 0 || len(bases[0]) == 0 {
		return math.NaN()
	}
	units := len(seq) / len(bases[0])
	if units == 0 {
		return math.NaN()
	}
	total := 0
	for _, b := range bases {
		total += strings.Count(seq, b)
	}
	return float64(total) / float64(units)
}

// Parse builds a Statistic from its command-line name: "mean", "median",
// "density", a number (the Cutoff threshold), or "genomic".  A genomic
// statistic is described by feature, either {"motif", regexp} or
// {"basecontent", "b1;b2;..."}.
func Parse(name string, feature []string) (Statistic, error) {
	switch name {
	case "mean":
		return Statistic{Kind: Mean}, nil
	case "median":
		return Statistic{Kind: Median}, nil
	case "density":
		return Statistic{Kind: Density}, nil
	case "genomic":
		return parseGenomic(feature)
	}
	t, err := strconv.ParseFloat(name, 64)
	if err != nil {
		return Statistic{}, errors.E(errors.NotSupported, fmt.Sprintf("summary: cannot interpret %q as a statistic or cutoff", name))
	}
	return Statistic{Kind: Cutoff, Threshold: t}, nil
}

func parseGenomic(feature []string) (Statistic, error) {
	if len(feature) != 2 {
		return Statistic{}, errors.E(errors.NotSupported,
			fmt.Sprintf("summary: a genomic statistic needs a feature type and argument, got %q", feature))
	}
	switch feature[0] {
	case "motif":
		re, err := regexp.Compile(feature[1])
		if err != nil {
			return Statistic{}, errors.E(errors.Invalid, err, fmt.Sprintf("summary: bad motif %q", feature[1]))
		}
		return Statistic{Kind: MotifCount, Motif: re}, nil
	case "basecontent":
		bases := strings.Split(feature[1], ";")
		for _, b := range bases {
			if b == "" {
				return Statistic{}, errors.E(errors.Invalid, fmt.Sprintf("summary: empty base in %q", feature[1]))
			}
		}
		return Statistic{Kind: BaseContent, Bases: bases}, nil
	}
	return Statistic{}, errors.E(errors.NotSupported, fmt.Sprintf("summary: unknown genomic feature %q", feature[0]))
}
