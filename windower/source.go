// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package windower

import (
	"fmt"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/windower/circular"
	"github.com/grailbio/windower/encoding/fasta"
	"github.com/grailbio/windower/encoding/signal"
	"github.com/grailbio/windower/interval"
	"github.com/grailbio/windower/summary"
)

// Source is what a scan summarizes: a numeric signal or a genome sequence.
type Source interface {
	// cover returns what w covers on a genome of the given length.
	cover(w interval.Window, genomeLength int) (summary.Coverage, error)
	// withValues returns the source with fn applied to its numeric values.
	withValues(fn func(float64) float64) Source
	isSeq() bool
}

type numericSource struct {
	sig circular.Signal
}

// NumericSource returns a Source backed by a dense or sparse signal.
func NumericSource(sig circular.Signal) Source {
	return numericSource{sig}
}

func (s numericSource) cover(w interval.Window, genomeLength int) (summary.Coverage, error) {
	return summary.Coverage{Values: s.sig.Extract(w, genomeLength)}, nil
}

func (s numericSource) withValues(fn func(float64) float64) Source {
	return numericSource{s.sig.Map(fn)}
}

func (numericSource) isSeq() bool { return false }

type sequenceSource struct {
	fa      fasta.Fasta
	seqName string
}

// SequenceSource returns a Source backed by the circular sequence seqName of
// fa.  An empty seqName selects the first sequence.
func SequenceSource(fa fasta.Fasta, seqName string) (Source, error) {
	if seqName == "" {
		names := fa.SeqNames()
		if len(names) == 0 {
			return nil, errors.E(errors.NotExist, "windower: FASTA has no sequences")
		}
		seqName = names[0]
	}
	if _, err := fa.Len(seqName); err != nil {
		return nil, errors.E(errors.NotExist, err, fmt.Sprintf("windower: sequence %s", seqName))
	}
	return sequenceSource{fa, seqName}, nil
}

// Sequences are never reverse-complemented, whatever the strand of the
// window.
func (s sequenceSource) cover(w interval.Window, _ int) (summary.Coverage, error) {
	seq, err := s.fa.PullSeq(s.seqName, w.Start-1, w.End, true, false)
	if err != nil {
		return summary.Coverage{}, err
	}
	return summary.Coverage{Seq: seq, IsSeq: true}, nil
}

func (s sequenceSource) withValues(func(float64) float64) Source { return s }

func (sequenceSource) isSeq() bool { return true }

// NewSource wraps loaded input data.  seqName is only used for sequence
// data.
func NewSource(d signal.Data, seqName string) (Source, error) {
	if d.IsSeq() {
		return SequenceSource(d.Fasta, seqName)
	}
	return NumericSource(d.Signal), nil
}
