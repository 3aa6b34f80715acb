package fasta

import (
	"fmt"
	"strings"

	"github.com/grailbio/base/errors"
)

// complementTable maps each base accepted by reverse complementation to its
// complement.  Zero entries are rejected.
var complementTable = [256]byte{
	'A': 'T', 'T': 'A', 'G': 'C', 'C': 'G', 'N': 'N', '-': '-',
}

func (f *fasta) lookup(seqName string) (string, error) {
	s, ok := f.seqs[seqName]
	if !ok {
		return "", errors.E(errors.NotExist, fmt.Sprintf("sequence not found: %s", seqName))
	}
	return s, nil
}

// PullSeq implements Fasta.PullSeq().
func (f *fasta) PullSeq(seqName string, start, end int, circular, revComp bool) (string, error) {
	s, err := f.lookup(seqName)
	if err != nil {
		return "", err
	}
	n := len(s)
	if start < 0 || start >= n {
		if !circular || n == 0 {
			return "", errors.E(errors.Invalid,
				fmt.Sprintf("start %d is outside sequence %s of length %d", start, seqName, n))
		}
		shift := floorDiv(start, n) * n
		start, end = start-shift, end-shift
	}
	var seq string
	switch {
	case end <= start:
	case end > n:
		if !circular {
			return "", errors.E(errors.Invalid,
				fmt.Sprintf("end %d is outside sequence %s of length %d", end, seqName, n))
		}
		head := end - n
		if head > n {
			head = n
		}
		seq = s[start:n] + s[:head]
	default:
		if seq, err = f.Get(seqName, uint64(start), uint64(end)); err != nil {
			return "", err
		}
	}
	seq = strings.ToUpper(seq)
	if revComp {
		return ReverseComplement(seq)
	}
	return seq, nil
}

// floorDiv returns a/b rounded toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// ReverseComplement returns the reverse complement of an upper-case sequence
// made of A, C, G, T, N and '-'.  Any other byte is an error.
func ReverseComplement(seq string) (string, error) {
	n := len(seq)
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		c := complementTable[seq[i]]
		if c == 0 {
			return "", errors.E(errors.Invalid, fmt.Sprintf("cannot complement base %q in %q", seq[i], seq))
		}
		out[n-1-i] = c
	}
	return string(out), nil
}
