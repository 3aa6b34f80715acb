// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package windower

import (
	"context"
	"hash"
	"io"
	"math"
	"os"
	"strconv"

	"blainsmith.com/go/seahash"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/tsv"
	"github.com/grailbio/hts/bgzf"
	"gonum.org/v1/gonum/stat"
)

// FormatValue formats a summary value in scientific notation with four
// fractional digits, e.g. "1.2500e+00".  NaN and infinities are written as
// "nan", "inf" and "-inf".
func FormatValue(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	return strconv.FormatFloat(v, 'e', 4, 64)
}

func writeRow(tw *tsv.Writer, labels []string, values []float64) {
	for _, l := range labels {
		tw.WriteString(l)
	}
	for _, v := range values {
		tw.WriteString(FormatValue(v))
	}
}

// Output is a destination for scan results.  Paths ending in ".gz" are BGZF
// compressed, and an empty path or "-" writes to standard output.
type Output struct {
	ctx  context.Context
	f    file.File
	bgzf *bgzf.Writer
	hash hash.Hash64
	w    io.Writer
}

// CreateOutput opens path for writing.  If checksum is true, a seahash
// digest of the uncompressed bytes is kept; see Sum.
func CreateOutput(ctx context.Context, path string, checksum bool) (*Output, error) {
	o := &Output{ctx: ctx}
	if path == "" || path == "-" {
		o.w = os.Stdout
	} else {
		f, err := file.Create(ctx, path)
		if err != nil {
			return nil, err
		}
		o.f = f
		o.w = f.Writer(ctx)
		if fileio.DetermineType(path) == fileio.Gzip {
			o.bgzf = bgzf.NewWriter(o.w, 1)
			o.w = o.bgzf
		}
	}
	if checksum {
		o.hash = seahash.New()
		o.w = io.MultiWriter(o.w, o.hash)
	}
	return o, nil
}

// Writer returns the writer rows should go to.
func (o *Output) Writer() io.Writer {
	return o.w
}

// Sum returns the digest of everything written so far, or 0 if the output
// was created without a checksum.
func (o *Output) Sum() uint64 {
	if o.hash == nil {
		return 0
	}
	return o.hash.Sum64()
}

// Close flushes and closes the output.
func (o *Output) Close() (err error) {
	if o.bgzf != nil {
		err = o.bgzf.Close()
	}
	if o.f != nil {
		file.CloseAndReport(o.ctx, o.f, &err)
	}
	return
}

// WriteDistributions writes d as a TSV with a "set" column ("actual" or
// "random") and a "value" column, and logs the mean of each set.
func WriteDistributions(out io.Writer, d *Distributions) error {
	tw := tsv.NewWriter(out)
	tw.WriteString("set")
	tw.WriteString("value")
	if err := tw.EndLine(); err != nil {
		return err
	}
	for _, set := range []struct {
		name   string
		values []float64
	}{{"actual", d.Actual}, {"random", d.Random}} {
		for _, v := range set.values {
			tw.WriteString(set.name)
			tw.WriteString(FormatValue(v))
			if err := tw.EndLine(); err != nil {
				return err
			}
		}
		if len(set.values) > 0 {
			log.Printf("windower: %s distribution: %d values, mean %s",
				set.name, len(set.values), FormatValue(stat.Mean(set.values, nil)))
		}
	}
	return tw.Flush()
}
