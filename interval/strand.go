// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package interval

import (
	"fmt"

	"github.com/grailbio/base/errors"
)

// Strand is the orientation of a window or feature.
type Strand byte

const (
	// Unspecified is used for unstranded features ('.' in GFF).  It is oriented
	// like Plus.
	Unspecified Strand = '.'
	// Plus is the forward strand.
	Plus Strand = '+'
	// Minus is the reverse strand.
	Minus Strand = '-'
)

// ParseStrand converts a GFF strand column to a Strand.  An empty string is
// treated as Unspecified.
func ParseStrand(s string) (Strand, error) {
	switch s {
	case "+":
		return Plus, nil
	case "-":
		return Minus, nil
	case ".", "":
		return Unspecified, nil
	}
	return Unspecified, errors.E(errors.Precondition, fmt.Sprintf("interval.ParseStrand: unknown strand %q", s))
}

// String implements fmt.Stringer.
func (s Strand) String() string {
	return string(s)
}

// Side identifies a physical end of a window in coordinate order.
type Side int

const (
	// Low is the end with the smaller coordinate.
	Low Side = iota
	// High is the end with the larger coordinate.
	High
)

// side returns the physical side holding the five-prime (fivePrime == true)
// or three-prime end of a window on strand s.  Every orientation-dependent
// function in this package goes through here.
func (s Strand) side(fivePrime bool) Side {
	if (s == Minus) == fivePrime {
		return High
	}
	return Low
}

// FivePrimeSide returns the physical side of the five-prime end.
func (s Strand) FivePrimeSide() Side { return s.side(true) }

// ThreePrimeSide returns the physical side of the three-prime end.
func (s Strand) ThreePrimeSide() Side { return s.side(false) }
