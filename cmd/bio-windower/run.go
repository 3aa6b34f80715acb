// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/grailbio/base/log"
	"github.com/grailbio/windower/encoding/gff"
	"github.com/grailbio/windower/encoding/signal"
	"github.com/grailbio/windower/windower"
)

// runOpts are the options that don't affect the computed values.
type runOpts struct {
	out      string
	seqName  string
	checksum bool
}

func (f commonFlags) run() runOpts {
	return runOpts{out: *f.out, seqName: *f.seqName, checksum: *f.checksum}
}

// distributionsPrefix returns the path prefix of the value distributions of
// a scan written to out.
func distributionsPrefix(out string) string {
	if out == "" || out == "-" {
		return "out_distributions"
	}
	dir, base := filepath.Split(out)
	return dir + strings.SplitN(base, ".", 2)[0] + "_distributions"
}

func newWindower(ctx context.Context, opts windower.Opts, r runOpts, inputPath string) (*windower.Windower, error) {
	data, err := signal.Load(ctx, inputPath, opts.GenomeLength)
	if err != nil {
		return nil, err
	}
	source, err := windower.NewSource(data, r.seqName)
	if err != nil {
		return nil, err
	}
	return windower.New(opts, source)
}

// scan writes the rows produced by fn to r.out, then the distributions fn
// returns, if any.
func scan(ctx context.Context, r runOpts, fn func(w *windower.Output) (*windower.Distributions, error)) (err error) {
	out, err := windower.CreateOutput(ctx, r.out, r.checksum)
	if err != nil {
		return err
	}
	dist, err := fn(out)
	if cerr := out.Close(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}
	if r.checksum {
		log.Printf("output checksum: %016x", out.Sum())
	}
	if dist == nil {
		return nil
	}
	prefix := distributionsPrefix(r.out)
	distOut, err := windower.CreateOutput(ctx, prefix+".tsv", false)
	if err != nil {
		return err
	}
	err = windower.WriteDistributions(distOut.Writer(), dist)
	if cerr := distOut.Close(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}
	log.Printf("distributions written to %s.tsv", prefix)
	if err := windower.PlotDistributions(ctx, prefix+".png", dist); err != nil {
		log.Error.Printf("%s.png: %v", prefix, err)
	}
	return nil
}

func runSliding(ctx context.Context, opts windower.Opts, r runOpts, inputPath string, size, slideBy int) error {
	w, err := newWindower(ctx, opts, r, inputPath)
	if err != nil {
		return err
	}
	return scan(ctx, r, func(out *windower.Output) (*windower.Distributions, error) {
		return w.Sliding(out.Writer(), size, slideBy)
	})
}

func runGFFWindow(ctx context.Context, opts windower.Opts, r runOpts, inputPath, gffPath string) error {
	w, err := newWindower(ctx, opts, r, inputPath)
	if err != nil {
		return err
	}
	records, err := gff.ReadFile(ctx, gffPath)
	if err != nil {
		return err
	}
	log.Printf("%s: read %d features", gffPath, len(records))
	features := make([]windower.Feature, len(records))
	for i := range records {
		features[i] = records[i]
	}
	return scan(ctx, r, func(out *windower.Output) (*windower.Distributions, error) {
		return w.Features(out.Writer(), features)
	})
}
