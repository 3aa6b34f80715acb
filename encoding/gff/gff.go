// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package gff reads feature annotations in the nine-column GFF format.
// Lines starting with '#' are ignored.
package gff

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/shlex"
	"github.com/grailbio/base/compress"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/tsv"
	"github.com/grailbio/windower/interval"
)

// Record is one feature line.  Start and End are 1-based and inclusive.
type Record struct {
	Seqid      string
	Source     string
	Type       string
	Start      int
	End        int
	Score      string // "." when absent
	Direction  interval.Strand
	Phase      string
	Attributes string
}

// rawRecord mirrors the columns of a GFF line.
type rawRecord struct {
	Seqid      string
	Source     string
	Type       string
	Start      int
	End        int
	Score      string
	Strand     string
	Phase      string
	Attributes string
}

// Span implements interval.Feature.
func (r Record) Span() interval.Window {
	return interval.Window{Start: r.Start, End: r.End}
}

// Strand implements interval.Feature.
func (r Record) Strand() interval.Strand {
	return r.Direction
}

// Attrs parses r.Attributes.  See ParseAttributes.
func (r Record) Attrs() (map[string]string, error) {
	return ParseAttributes(r.Attributes)
}

// ParseAttributes splits a GFF attribute column into key/value pairs.  The
// column is split on ';', and each piece is split into words with shell-like
// quoting, so `gene_name "thr L"` yields key gene_name and value "thr L".  A
// piece that is a single key=value word is split at the '='.  A key with no
// value maps to "".
func ParseAttributes(s string) (map[string]string, error) {
	attrs := map[string]string{}
	for _, piece := range strings.Split(s, ";") {
		words, err := shlex.Split(piece)
		if err != nil {
			return nil, errors.E(errors.Invalid, err, fmt.Sprintf("gff: attribute %q", piece))
		}
		switch len(words) {
		case 0:
			continue
		case 1:
			if i := strings.IndexByte(words[0], '='); i > 0 {
				attrs[words[0][:i]] = words[0][i+1:]
				continue
			}
			attrs[words[0]] = ""
		case 2:
			attrs[words[0]] = words[1]
		default:
			attrs[words[0]] = ""
		}
	}
	return attrs, nil
}

// Read parses all records in r.  name is used in error messages.
func Read(r io.Reader, name string) ([]Record, error) {
	scanner := tsv.NewReader(bufio.NewReaderSize(r, 64<<10))
	scanner.Comment = '#'
	scanner.LazyQuotes = true
	var (
		records []Record
		raw     rawRecord
	)
	for {
		if err := scanner.Read(&raw); err != nil {
			if err == io.EOF {
				break
			}
			return nil, errors.E(errors.Invalid, err, fmt.Sprintf("gff: %s: record %d", name, len(records)+1))
		}
		strand, err := interval.ParseStrand(raw.Strand)
		if err != nil {
			return nil, errors.E(errors.Precondition, err, fmt.Sprintf("gff: %s: record %d", name, len(records)+1))
		}
		if raw.End < raw.Start {
			return nil, errors.E(errors.Invalid,
				fmt.Sprintf("gff: %s: record %d: end %d precedes start %d", name, len(records)+1, raw.End, raw.Start))
		}
		records = append(records, Record{
			Seqid:      raw.Seqid,
			Source:     raw.Source,
			Type:       raw.Type,
			Start:      raw.Start,
			End:        raw.End,
			Score:      raw.Score,
			Direction:  strand,
			Phase:      raw.Phase,
			Attributes: raw.Attributes,
		})
	}
	return records, nil
}

// ReadFile reads the GFF file at path, which may be compressed.
func ReadFile(ctx context.Context, path string) (records []Record, err error) {
	in, err := file.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := in.Close(ctx); cerr != nil && err == nil {
			err = cerr
		}
	}()
	var inr io.Reader = in.Reader(ctx)
	if u := compress.NewReaderPath(inr, in.Name()); u != nil {
		inr = u
	}
	return Read(inr, path)
}
