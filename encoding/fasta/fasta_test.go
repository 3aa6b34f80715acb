package fasta_test

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
	"github.com/grailbio/windower/encoding/fasta"
)

var fastaData string

func init() {
	fastaData = ">seq1\n" + "ACGTA\nCGTAC\nGT\n" + ">seq2 A viral sequence\n" + "acgt\n" + "ACGT\n" + ">seq3\r\nAGN-\r\n"
}

func newTestFasta(t *testing.T) fasta.Fasta {
	fa, err := fasta.New(strings.NewReader(fastaData))
	assert.NoError(t, err)
	return fa
}

func TestGet(t *testing.T) {
	tests := []struct {
		seq   string
		start uint64
		end   uint64
		want  string
		err   error
	}{
		{"seq1", 1, 2, "C", nil},
		{"seq1", 1, 6, "CGTAC", nil},
		{"seq1", 0, 12, "ACGTACGTACGT", nil},
		{"seq1", 10, 12, "GT", nil},
		{"seq2", 0, 8, "acgtACGT", nil},
		{"seq2", 2, 5, "gtA", nil},
		{"seq0", 0, 1, "", fmt.Errorf("sequence not found: seq0")},
		{"seq1", 10, 13, "", fmt.Errorf("invalid query range")},
		{"seq1", 4, 3, "", fmt.Errorf("start must be less than end")},
	}
	fa := newTestFasta(t)
	for _, tt := range tests {
		got, err := fa.Get(tt.seq, tt.start, tt.end)
		if (err == nil && tt.err != nil) || (err != nil && tt.err == nil) {
			t.Errorf("unexpected error: want %v, got %v", tt.err, err)
		}
		if got != tt.want {
			t.Errorf("unexpected sequence: want %s, got %s", tt.want, got)
		}
	}
}

func TestLength(t *testing.T) {
	tests := []struct {
		seq  string
		want uint64
		err  error
	}{
		{"seq1", 12, nil},
		{"seq2", 8, nil},
		{"seq3", 4, nil},
		{"seq0", 0, fmt.Errorf("sequence not found: seq0")},
	}
	fa := newTestFasta(t)
	for _, tt := range tests {
		got, err := fa.Len(tt.seq)
		if (err == nil && tt.err != nil) || (err != nil && tt.err == nil) {
			t.Errorf("unexpected error: want %v, got %v", tt.err, err)
		}
		if got != tt.want {
			t.Errorf("unexpected length: want %v, got %v", tt.want, got)
		}
	}
}

func TestSeqNames(t *testing.T) {
	fa := newTestFasta(t)
	want := []string{"seq1", "seq2", "seq3"}
	if got := fa.SeqNames(); !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestMalformed(t *testing.T) {
	for _, data := range []string{"", "ACGT\n>seq1\nACGT\n", ">\nACGT\n"} {
		_, err := fasta.New(strings.NewReader(data))
		expect.NotNil(t, err, "data %q", data)
	}
}

func TestPullSeq(t *testing.T) {
	tests := []struct {
		seq        string
		start, end int
		circular   bool
		revComp    bool
		want       string
	}{
		{"seq1", 0, 4, false, false, "ACGT"},
		{"seq1", 10, 12, false, false, "GT"},
		{"seq2", 0, 8, false, false, "ACGTACGT"},
		{"seq2", 1, 3, false, true, "CG"},
		{"seq1", 10, 14, true, false, "GTAC"},
		{"seq1", -2, 2, true, false, "GTAC"},
		{"seq1", 12, 14, true, false, "AC"},
		{"seq1", -2, 2, true, true, "GTAC"},
		{"seq3", 0, 4, false, true, "-NCT"},
		{"seq1", 3, 3, false, false, ""},
		{"seq1", -26, -22, true, false, "GTAC"},
		{"seq1", 25, 27, true, false, "CG"},
		{"seq1", -30, -20, true, false, "GTACGTACGT"},
		{"seq2", 17, 19, true, true, "CG"},
	}
	fa := newTestFasta(t)
	for _, tt := range tests {
		got, err := fa.PullSeq(tt.seq, tt.start, tt.end, tt.circular, tt.revComp)
		assert.NoError(t, err, "seq %s [%d, %d)", tt.seq, tt.start, tt.end)
		expect.EQ(t, got, tt.want, "seq %s [%d, %d) circular=%v rc=%v", tt.seq, tt.start, tt.end, tt.circular, tt.revComp)
	}
}

func TestPullSeqErrors(t *testing.T) {
	fa := newTestFasta(t)
	_, err := fa.PullSeq("seq1", -1, 2, false, false)
	expect.True(t, errors.Is(errors.Invalid, err))
	_, err = fa.PullSeq("seq1", 12, 13, false, false)
	expect.True(t, errors.Is(errors.Invalid, err))
	_, err = fa.PullSeq("seq1", 10, 13, false, false)
	expect.True(t, errors.Is(errors.Invalid, err))
	_, err = fa.PullSeq("seq1", 25, 27, false, false)
	expect.True(t, errors.Is(errors.Invalid, err))
	_, err = fa.PullSeq("chrX", 0, 1, true, false)
	expect.True(t, errors.Is(errors.NotExist, err))
}

func TestReverseComplement(t *testing.T) {
	for _, tt := range []struct{ in, want string }{
		{"AGTC", "GACT"},
		{"AGNT", "ANCT"},
		{"AG-T", "A-CT"},
		{"", ""},
	} {
		got, err := fasta.ReverseComplement(tt.in)
		assert.NoError(t, err)
		expect.EQ(t, got, tt.want)
	}
	_, err := fasta.ReverseComplement("ACGR")
	expect.True(t, errors.Is(errors.Invalid, err))
}
