// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/windower/interval"
	"github.com/grailbio/windower/summary"
	"github.com/grailbio/windower/windower"
	"v.io/x/lib/cmdline"
)

// commonFlags are shared by all subcommands.
type commonFlags struct {
	windowBins        *int
	farUpstream       *int
	farUpstreamBins   *int
	farDownstream     *int
	farDownstreamBins *int
	genomeLength      *int
	summaryStat       *string
	genomicFeature    *string
	out               *string
	noTruncate        *bool
	noFinite          *bool
	convertLogical    *float64
	name              *string
	seqName           *string
	checksum          *bool
}

func addCommonFlags(fs *flag.FlagSet) commonFlags {
	d := windower.DefaultOpts
	return commonFlags{
		windowBins:        fs.Int("window-bins", d.WindowBins, "Number of bins to break each window into"),
		farUpstream:       fs.Int("far-upstream", d.FarUpstream, "Number of bases upstream of each window to summarize; 0 disables"),
		farUpstreamBins:   fs.Int("far-upstream-bins", d.FarUpstreamBins, "Number of bins to split the upstream region into"),
		farDownstream:     fs.Int("far-downstream", d.FarDownstream, "Number of bases downstream of each window to summarize; 0 disables"),
		farDownstreamBins: fs.Int("far-downstream-bins", d.FarDownstreamBins, "Number of bins to split the downstream region into"),
		genomeLength:      fs.Int("genome-length", d.GenomeLength, "Length of the circular genome"),
		summaryStat: fs.String("summary-stat", "mean", `Summary statistic of each window:
  mean     mean of the signal
  median   median of the signal
  density  number of data points
  <number> 1 if any data point is over the number, 0 otherwise
  genomic  sequence statistic given by -genomic-feature`),
		genomicFeature: fs.String("genomic-feature", "", `Sequence statistic for "-summary-stat genomic":
  "motif <regexp>"          number of matches of the regexp
  "basecontent <b1;b2;...>" fraction of the window made of the given bases`),
		out:            fs.String("o", "", "Output TSV path; .gz paths are BGZF-compressed.  Default is stdout"),
		noTruncate:     fs.Bool("no-truncate", false, "Don't truncate values below zero to zero"),
		noFinite:       fs.Bool("no-finite", false, "Don't replace non-finite values with zero"),
		convertLogical: fs.Float64("convert-logical", 0, "If nonzero, replace every value by 1 if it is above this cutoff and 0 otherwise"),
		name:           fs.String("name", d.Name, "Label columns of each row; see the subcommand help"),
		seqName:        fs.String("seq-name", "", "FASTA sequence to use.  Default is the first one"),
		checksum:       fs.Bool("checksum", false, "Log a seahash checksum of the output"),
	}
}

func (f commonFlags) opts() (windower.Opts, error) {
	o := windower.DefaultOpts
	o.WindowBins = *f.windowBins
	o.FarUpstream = *f.farUpstream
	o.FarUpstreamBins = *f.farUpstreamBins
	o.FarDownstream = *f.farDownstream
	o.FarDownstreamBins = *f.farDownstreamBins
	o.GenomeLength = *f.genomeLength
	o.Name = *f.name
	o.KeepNegative = *f.noTruncate
	o.KeepNonFinite = *f.noFinite
	o.ConvertLogical = *f.convertLogical
	var feature []string
	if *f.genomicFeature != "" {
		feature = strings.Fields(*f.genomicFeature)
	}
	var err error
	if o.Stat, err = summary.Parse(*f.summaryStat, feature); err != nil {
		return o, err
	}
	return o, nil
}

func newCmdSliding() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "sliding",
		Short:    "Summarize a sliding window over the whole genome",
		ArgsName: "input size slide_by",
		Long: `
Windows of "size" bases start at the first base of the genome and every
"slide_by" bases after it.  -name is one of start, end, startend or center.`,
	}
	common := addCommonFlags(&cmd.Flags)
	plotDist := cmd.Flags.Bool("plot-dist", false, "Also write the distribution of the window values to <output>_distributions.{tsv,png}")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 3 {
			return fmt.Errorf("sliding takes input, size and slide_by arguments, but got %v", argv)
		}
		size, err := strconv.Atoi(argv[1])
		if err != nil {
			return fmt.Errorf("sliding: size: %v", err)
		}
		slideBy, err := strconv.Atoi(argv[2])
		if err != nil {
			return fmt.Errorf("sliding: slide_by: %v", err)
		}
		opts, err := common.opts()
		if err != nil {
			return err
		}
		opts.PlotDist = *plotDist
		return runSliding(vcontext.Background(), opts, common.run(), argv[0], size, slideBy)
	})
	return cmd
}

func newCmdGFFWindow() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "gff_window",
		Short:    "Summarize windows anchored on GFF features",
		ArgsName: "input gff",
		Long: `
Each feature of the GFF file defines one window.  -center-metric picks the
part of the feature the window is built around, and -upstream and -downstream
pad it in the feature's five-prime and three-prime directions.  -name is one
of fiveprime, threeprime, startend, startendstrand, comments (Gene and
Synonym attributes) or center.`,
	}
	common := addCommonFlags(&cmd.Flags)
	centerMetric := cmd.Flags.String("center-metric", interval.Identity.String(), "Part of each feature the window is built around: identity, median, fiveprime or threeprime")
	upstream := cmd.Flags.Int("upstream", 0, "Number of bases to pad each window with in the five-prime direction")
	downstream := cmd.Flags.Int("downstream", 0, "Number of bases to pad each window with in the three-prime direction")
	distributions := cmd.Flags.Int("distributions", 0, "Number of random windows to summarize per feature; the values go to <output>_distributions.{tsv,png}")
	seed := cmd.Flags.Int64("seed", windower.DefaultOpts.Seed, "Random seed for -distributions")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 2 {
			return fmt.Errorf("gff_window takes input and gff arguments, but got %v", argv)
		}
		opts, err := common.opts()
		if err != nil {
			return err
		}
		if opts.Center, err = interval.ParseCenterPolicy(*centerMetric); err != nil {
			return err
		}
		opts.Upstream = *upstream
		opts.Downstream = *downstream
		opts.Distributions = *distributions
		opts.Seed = *seed
		return runGFFWindow(vcontext.Background(), opts, common.run(), argv[0], argv[1])
	})
	return cmd
}

func main() {
	cmdline.HideGlobalFlagsExcept()
	cmdline.Main(
		&cmdline.Command{
			Name:     "bio-windower",
			Short:    "Summarize a signal over windows of a circular genome",
			LookPath: false,
			Children: []*cmdline.Command{
				newCmdSliding(),
				newCmdGFFWindow(),
			},
		})
}
