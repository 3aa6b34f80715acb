// Package fasta contains code for parsing FASTA files and pulling
// subsequences out of circular chromosomes.  FASTA files consist of a number
// of named sequences that may be interrupted by newlines.  For example:
//
// >chr7
// ACGTAC
// GAGGAC
// GCG
// >chr8
// ACGT
//
// Note: Sequence names are defined to be the stretch of characters excluding
// spaces immediately after '>'.  Any text appear after a space are ignored.
// For example, '>chr1 A viral sequence' becomes 'chr1'.
package fasta

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"
)

const (
	bufferInitSize = 1024 * 1024 * 300 // 300 MB
)

// Fasta represents FASTA-formatted data, consisting of a set of named
// sequences.  All sequences are held in memory.
type Fasta interface {
	// Get returns a substring of the given sequence name at the given
	// coordinates, which are treated as a 0-based half-open interval
	// [start, end).
	Get(seqName string, start, end uint64) (string, error)

	// PullSeq returns the upper-cased bases of the given sequence in the
	// 0-based half-open interval [start, end).  If circular is true, the
	// interval may cross the origin: a start outside [0, Len) is remapped
	// modulo the sequence length, the end moving by the same offset, and an
	// end past Len continues at the beginning of the sequence.  If revComp is true, the reverse complement is returned.
	PullSeq(seqName string, start, end int, circular, revComp bool) (string, error)

	// Len returns the length of the given sequence.
	Len(seqName string) (uint64, error)

	// SeqNames returns the names of all sequences, in the order of appearance in
	// the FASTA file.
	SeqNames() []string
}

type fasta struct {
	seqs     map[string]string
	seqNames []string
}

// New creates a new Fasta that holds all the FASTA data from the given reader
// in memory.
func New(r io.Reader) (Fasta, error) {
	f := &fasta{seqs: make(map[string]string)}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(nil, bufferInitSize)
	var seqName string
	var seq strings.Builder
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' { // Start a new sequence.
			if seqName != "" { // We need to store the previous sequence first.
				f.add(seqName, seq.String())
				seq.Reset()
			}
			seqName = strings.Split(line[1:], " ")[0]
			if seqName == "" {
				return nil, errors.Errorf("malformed FASTA file: empty sequence name")
			}
		} else {
			if seqName == "" {
				return nil, errors.Errorf("malformed FASTA file: missing initial header")
			}
			seq.WriteString(line)
		}
	}
	if scanner.Err() != nil {
		return nil, errors.Wrap(scanner.Err(), "couldn't read FASTA data")
	}
	if seqName == "" {
		return nil, errors.Errorf("empty FASTA file")
	}
	f.add(seqName, seq.String())
	return f, nil
}

func (f *fasta) add(seqName, seq string) {
	if _, ok := f.seqs[seqName]; !ok {
		f.seqNames = append(f.seqNames, seqName)
	}
	f.seqs[seqName] = seq
}

// Get implements Fasta.Get().
func (f *fasta) Get(seqName string, start, end uint64) (string, error) {
	s, err := f.lookup(seqName)
	if err != nil {
		return "", err
	}
	if end <= start {
		return "", errors.Errorf("start must be less than end")
	}
	if end > uint64(len(s)) {
		return "", errors.Errorf("invalid query range %d - %d for sequence %s with length %d",
			start, end, seqName, len(s))
	}
	return s[start:end], nil
}

// Len implements Fasta.Len().
func (f *fasta) Len(seqName string) (uint64, error) {
	s, err := f.lookup(seqName)
	if err != nil {
		return 0, err
	}
	return uint64(len(s)), nil
}

// SeqNames implements Fasta.SeqNames().
func (f *fasta) SeqNames() []string {
	return f.seqNames
}
