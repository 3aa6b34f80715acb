// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/testutil"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
	"github.com/grailbio/windower/summary"
	"github.com/klauspost/compress/gzip"
)

func parseCommon(t *testing.T, args ...string) commonFlags {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	f := addCommonFlags(fs)
	assert.NoError(t, fs.Parse(args))
	return f
}

func TestCommonFlags(t *testing.T) {
	opts, err := parseCommon(t).opts()
	assert.NoError(t, err)
	expect.EQ(t, opts.GenomeLength, 4639676)
	expect.EQ(t, opts.Name, "startend")
	expect.EQ(t, opts.Stat.Kind, summary.Mean)

	opts, err = parseCommon(t, "-summary-stat", "genomic", "-genomic-feature", "basecontent G;C",
		"-no-truncate", "-convert-logical", "0.5", "-window-bins", "3").opts()
	assert.NoError(t, err)
	expect.EQ(t, opts.Stat.Kind, summary.BaseContent)
	expect.EQ(t, opts.Stat.Bases, []string{"G", "C"})
	expect.True(t, opts.KeepNegative)
	expect.False(t, opts.KeepNonFinite)
	expect.EQ(t, opts.ConvertLogical, 0.5)
	expect.EQ(t, opts.WindowBins, 3)

	opts, err = parseCommon(t, "-summary-stat", "2").opts()
	assert.NoError(t, err)
	expect.EQ(t, opts.Stat.Kind, summary.Cutoff)

	_, err = parseCommon(t, "-summary-stat", "mode").opts()
	expect.True(t, errors.Is(errors.NotSupported, err), "err: %v", err)
}

func readGzip(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	gz, err := gzip.NewReader(f)
	if err != nil {
		return "", err
	}
	data, err := ioutil.ReadAll(gz)
	return string(data), err
}

func TestDistributionsPrefix(t *testing.T) {
	expect.EQ(t, distributionsPrefix(""), "out_distributions")
	expect.EQ(t, distributionsPrefix("-"), "out_distributions")
	expect.EQ(t, distributionsPrefix("/a.b/res.tsv.gz"), "/a.b/res_distributions")
}

func TestRunSliding(t *testing.T) {
	tmpdir, cleanup := testutil.TempDir(t, "", "")
	defer testutil.NoCleanupOnError(t, cleanup, tmpdir)
	ctx := vcontext.Background()

	input := filepath.Join(tmpdir, "cov.gr")
	assert.NoError(t, ioutil.WriteFile(input, []byte("0\t1\n1\t2\n2\t-3\n3\t4\n"), 0644))
	opts, err := parseCommon(t, "-genome-length", "4", "-name", "start").opts()
	assert.NoError(t, err)
	opts.PlotDist = true
	out := filepath.Join(tmpdir, "res.tsv")
	assert.NoError(t, runSliding(ctx, opts, runOpts{out: out, checksum: true}, input, 2, 2))

	got, err := ioutil.ReadFile(out)
	assert.NoError(t, err)
	// Values are 1, 2, 0 and 4 after truncation.  The first window starts at
	// the origin, so it covers the wrapped-around range of the sparse signal.
	expect.EQ(t, string(got), "Start\twindow_0\n0\t1.5000e+00\n2\t2.0000e+00\n")
	dist, err := ioutil.ReadFile(filepath.Join(tmpdir, "res_distributions.tsv"))
	assert.NoError(t, err)
	expect.EQ(t, string(dist), "set\tvalue\nactual\t1.5000e+00\nactual\t2.0000e+00\n")
	_, err = os.Stat(filepath.Join(tmpdir, "res_distributions.png"))
	expect.NoError(t, err)
}

func TestRunGFFWindow(t *testing.T) {
	tmpdir, cleanup := testutil.TempDir(t, "", "")
	defer testutil.NoCleanupOnError(t, cleanup, tmpdir)
	ctx := vcontext.Background()

	input := filepath.Join(tmpdir, "genome.fa")
	assert.NoError(t, ioutil.WriteFile(input, []byte(">chr\nGATCAAGATC\n"), 0644))
	gffPath := filepath.Join(tmpdir, "genes.gff")
	assert.NoError(t, ioutil.WriteFile(gffPath, []byte(
		"##gff-version 3\n"+
			"chr\ttest\tgene\t1\t4\t.\t+\t.\tGene a; Synonym b1\n"+
			"chr\ttest\tgene\t5\t10\t.\t-\t.\tGene b; Synonym b2\n"), 0644))
	opts, err := parseCommon(t, "-genome-length", "10", "-name", "comments",
		"-summary-stat", "genomic", "-genomic-feature", "motif GATC").opts()
	assert.NoError(t, err)
	out := filepath.Join(tmpdir, "res.tsv.gz")
	assert.NoError(t, runGFFWindow(ctx, opts, runOpts{out: out}, input, gffPath))

	data, err := readGzip(out)
	assert.NoError(t, err)
	expect.EQ(t, data, "Gene\tbnumber\twindow_0\na\tb1\t1.0000e+00\nb\tb2\t1.0000e+00\n")

	// Numeric statistics cannot summarize a sequence.
	opts, err = parseCommon(t, "-genome-length", "10").opts()
	assert.NoError(t, err)
	err = runGFFWindow(ctx, opts, runOpts{out: out}, input, gffPath)
	expect.True(t, errors.Is(errors.NotSupported, err), "err: %v", err)
}
