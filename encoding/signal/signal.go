// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package signal loads per-base measurements and genome sequences for
// windowing.  The format is chosen by file extension:
//
//   .gr                    two whitespace-separated columns, 0-based position and value
//   .bed                   columns chrom, start, end, name, score; uncovered bases are NaN
//   .fa, .fasta, .fna      FASTA; windows cover the bases of one entry
//   .npy                   1-D per-base values, or an N x 2 array of positions and values
//
// Any of these may be followed by ".gz".
package signal

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/grailbio/base/log"
	"github.com/grailbio/windower/circular"
	"github.com/grailbio/windower/encoding/fasta"
	"github.com/klauspost/compress/gzip"
)

// Format is an input file format.
type Format int

const (
	// GR is a sparse two-column text format.
	GR Format = iota
	// BED is an interval format with a score column, expanded to one value
	// per base.
	BED
	// FASTA holds sequences.
	FASTA
	// NPY is a numpy array.
	NPY
)

var formatNames = [...]string{GR: "gr", BED: "bed", FASTA: "fasta", NPY: "npy"}

// String implements fmt.Stringer.
func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return fmt.Sprintf("Format(%d)", int(f))
	}
	return formatNames[f]
}

// DetermineFormat returns the format of path based on its extension.  A
// trailing ".gz" is ignored.
func DetermineFormat(path string) (Format, error) {
	name := strings.ToLower(path)
	if fileio.DetermineType(name) == fileio.Gzip {
		name = strings.TrimSuffix(name, filepath.Ext(name))
	}
	switch filepath.Ext(name) {
	case ".gr":
		return GR, nil
	case ".bed":
		return BED, nil
	case ".fa", ".fasta", ".fna":
		return FASTA, nil
	case ".npy":
		return NPY, nil
	}
	return GR, errors.E(errors.NotSupported, fmt.Sprintf("signal: %s: file type not supported", path))
}

// Data is a loaded input.  Exactly one of Signal and Fasta is set.
type Data struct {
	Signal circular.Signal
	Fasta  fasta.Fasta
}

// IsSeq reports whether d holds sequences.
func (d Data) IsSeq() bool {
	return d.Fasta != nil
}

// Read parses r, whose format is determined from path as in
// DetermineFormat.  r must already be decompressed.  genomeLength is the
// number of values allocated for BED input.
func Read(r io.Reader, path string, genomeLength int) (Data, error) {
	format, err := DetermineFormat(path)
	if err != nil {
		return Data{}, err
	}
	var d Data
	switch format {
	case GR:
		d.Signal, err = readGR(r, path)
	case BED:
		d.Signal, err = readBED(r, path, genomeLength)
	case FASTA:
		d.Fasta, err = fasta.New(r)
		if err != nil {
			err = errors.E(errors.Invalid, err, fmt.Sprintf("signal: %s", path))
		}
	case NPY:
		d.Signal, err = readNPY(r, path)
	}
	if err != nil {
		return Data{}, err
	}
	if d.Signal != nil {
		log.Debug.Printf("signal: %s: loaded %d %s values", path, d.Signal.Len(), format)
	}
	return d, nil
}

// Load opens path, decompressing it if it ends in ".gz", and reads it as in
// Read.
func Load(ctx context.Context, path string, genomeLength int) (d Data, err error) {
	if _, err = DetermineFormat(path); err != nil {
		return
	}
	var in file.File
	if in, err = file.Open(ctx, path); err != nil {
		return
	}
	defer func() {
		if cerr := in.Close(ctx); cerr != nil && err == nil {
			err = cerr
		}
	}()
	reader := io.Reader(in.Reader(ctx))
	switch fileio.DetermineType(path) {
	case fileio.Gzip:
		var gz *gzip.Reader
		if gz, err = gzip.NewReader(reader); err != nil {
			return
		}
		defer gz.Close()
		reader = gz
	}
	return Read(reader, path, genomeLength)
}
