// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package interval

import (
	"fmt"

	"github.com/grailbio/base/errors"
)

// Feature is the part of an annotation record needed to anchor a window on
// it.  Span is 1-based with an inclusive end.
type Feature interface {
	Span() Window
	Strand() Strand
}

// CenterPolicy determines which part of a feature an anchor window is built
// around.
type CenterPolicy int

const (
	// Identity anchors on the whole feature.
	Identity CenterPolicy = iota
	// Median anchors on the single base halfway between the feature ends.
	Median
	// FivePrime anchors on the five-prime base of the feature.
	FivePrime
	// ThreePrime anchors on the three-prime base of the feature.
	ThreePrime
)

var centerPolicyNames = map[string]CenterPolicy{
	"identity":   Identity,
	"median":     Median,
	"fiveprime":  FivePrime,
	"threeprime": ThreePrime,
}

// ParseCenterPolicy converts "identity", "median", "fiveprime" or
// "threeprime" to a CenterPolicy.
func ParseCenterPolicy(name string) (CenterPolicy, error) {
	if p, ok := centerPolicyNames[name]; ok {
		return p, nil
	}
	return Identity, errors.E(errors.NotSupported, fmt.Sprintf("interval.ParseCenterPolicy: unknown center metric %q", name))
}

// String implements fmt.Stringer.
func (p CenterPolicy) String() string {
	for name, v := range centerPolicyNames {
		if v == p {
			return name
		}
	}
	return fmt.Sprintf("CenterPolicy(%d)", int(p))
}

// center returns the unpadded anchor of f under policy p.
func (p CenterPolicy) center(f Feature) Window {
	span := f.Span()
	strand := f.Strand()
	switch p {
	case Median:
		// Division truncates toward zero, like int() of a float median.
		m := (span.Start + span.End) / 2
		return Window{m, m}
	case FivePrime:
		c := span.end(strand.side(true))
		return Window{c, c}
	case ThreePrime:
		c := span.end(strand.side(false))
		return Window{c, c}
	}
	return span
}

// AnchorWindow returns the window centered on f according to policy, padded
// by fivePad bases in the five-prime direction and threePad bases in the
// three-prime direction of f's strand.
func AnchorWindow(f Feature, fivePad, threePad int, policy CenterPolicy) Window {
	w := policy.center(f)
	lowPad, highPad := fivePad, threePad
	if f.Strand().FivePrimeSide() == High {
		lowPad, highPad = threePad, fivePad
	}
	return Window{w.Start - lowPad, w.End + highPad}
}
