// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package windower summarizes a signal over windows of a circular genome and
// writes one TSV row per window.
//
// A scan either slides a fixed-size window along the genome (Sliding) or
// anchors one window on each of a list of features (Features).  Every primary
// window may be split into bins and flanked by an upstream and a downstream
// region, each with its own bins.  A row holds the label columns followed by
// the summary of every upstream bin, window bin and downstream bin, in
// five-prime to three-prime order.
package windower

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/tsv"
	"github.com/grailbio/windower/interval"
)

// Windower runs scans over one source.
type Windower struct {
	opts   Opts
	source Source
}

// New checks opts and prepares source for scanning.  Numeric signals are
// pre-processed here, once.
func New(opts Opts, source Source) (*Windower, error) {
	w := &Windower{opts: opts}
	if err := w.opts.validate(); err != nil {
		return nil, err
	}
	if w.opts.Stat.Genomic() != source.isSeq() {
		if source.isSeq() {
			return nil, errors.E(errors.NotSupported,
				fmt.Sprintf("windower: statistic %v cannot summarize a sequence", w.opts.Stat))
		}
		return nil, errors.E(errors.NotSupported,
			fmt.Sprintf("windower: statistic %v needs a sequence input", w.opts.Stat))
	}
	if fn := w.opts.preprocess(); fn != nil && !source.isSeq() {
		source = source.withValues(fn)
	}
	w.source = source
	return w, nil
}

// Distributions holds the values collected for background comparison.
// Actual holds the summary of every primary window bin, and Random the
// summary of every random window.
type Distributions struct {
	Actual []float64
	Random []float64
}

// layout is the set of windows summarized for one row.
type layout struct {
	upstream, window, downstream []interval.Window
}

// split returns bins windows covering w in five-prime to three-prime order.
// A single bin is w itself.
func split(w interval.Window, strand interval.Strand, bins int) ([]interval.Window, error) {
	if bins == 1 {
		return []interval.Window{w}, nil
	}
	return interval.Discretize(w, strand, bins)
}

func (w *Windower) layout(primary interval.Window, strand interval.Strand) (l layout, err error) {
	o := &w.opts
	if o.FarUpstream > 0 {
		up := interval.AddWindow(primary, o.FarUpstream, strand, true)
		if l.upstream, err = split(up, strand, o.FarUpstreamBins); err != nil {
			return
		}
	}
	if l.window, err = split(primary, strand, o.WindowBins); err != nil {
		return
	}
	if o.FarDownstream > 0 {
		down := interval.AddWindow(primary, o.FarDownstream, strand, false)
		if l.downstream, err = split(down, strand, o.FarDownstreamBins); err != nil {
			return
		}
	}
	return
}

// checkBins fails if a window of the given length cannot hold the configured
// number of primary bins, or if a flank cannot hold its bins.
func (w *Windower) checkBins(primary interval.Window) error {
	o := &w.opts
	check := func(what string, length, bins int) error {
		if bins > 1 && bins > length {
			return errors.E(errors.Invalid,
				fmt.Sprintf("windower: %s window of length %d cannot be split into %d bins", what, length, bins))
		}
		return nil
	}
	if err := check(fmt.Sprintf("primary %v", primary), primary.Len(), o.WindowBins); err != nil {
		return err
	}
	if o.FarUpstream > 0 {
		if err := check("upstream", o.FarUpstream, o.FarUpstreamBins); err != nil {
			return err
		}
	}
	if o.FarDownstream > 0 {
		return check("downstream", o.FarDownstream, o.FarDownstreamBins)
	}
	return nil
}

func (w *Windower) header(labels []string) []string {
	o := &w.opts
	cols := append([]string(nil), labels...)
	if o.FarUpstream > 0 {
		for i := 0; i < o.FarUpstreamBins; i++ {
			cols = append(cols, fmt.Sprintf("upstream_window_%d", i))
		}
	}
	for i := 0; i < o.WindowBins; i++ {
		cols = append(cols, fmt.Sprintf("window_%d", i))
	}
	if o.FarDownstream > 0 {
		for i := 0; i < o.FarDownstreamBins; i++ {
			cols = append(cols, fmt.Sprintf("downstream_window_%d", i))
		}
	}
	return cols
}

// summarize evaluates the statistic over win.
func (w *Windower) summarize(win interval.Window) (float64, error) {
	c, err := w.source.cover(win, w.opts.GenomeLength)
	if err != nil {
		return 0, err
	}
	return w.opts.Stat.Eval(c)
}

// row computes the values of one row.  The primary window values are also
// appended to dist, when not nil.
func (w *Windower) row(l layout, dist *Distributions) ([]float64, error) {
	values := make([]float64, 0, len(l.upstream)+len(l.window)+len(l.downstream))
	for _, bin := range l.upstream {
		v, err := w.summarize(bin)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	for _, bin := range l.window {
		v, err := w.summarize(bin)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
		if dist != nil {
			dist.Actual = append(dist.Actual, v)
		}
	}
	for _, bin := range l.downstream {
		v, err := w.summarize(bin)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

// Sliding writes the header and one row per window of size bases, starting
// every slideBy bases from the first base of the genome.  Windows are on
// the plus strand.  The returned Distributions is nil unless Opts.PlotDist is
// set.
func (w *Windower) Sliding(out io.Writer, size, slideBy int) (*Distributions, error) {
	label, err := lookupSlidingLabel(w.opts.Name)
	if err != nil {
		return nil, err
	}
	scanner, err := interval.SlidingBounds(size, w.opts.GenomeLength, slideBy)
	if err != nil {
		return nil, err
	}
	// All sliding windows have the same length.
	if err := w.checkBins(interval.Window{Start: 1, End: scanner.Size()}); err != nil {
		return nil, err
	}
	var dist *Distributions
	if w.opts.PlotDist {
		dist = &Distributions{}
	}
	tw := tsv.NewWriter(out)
	writeRow(tw, w.header(label.columns), nil)
	if err := tw.EndLine(); err != nil {
		return nil, err
	}
	nRows := 0
	for scanner.Scan() {
		primary := scanner.Window()
		l, err := w.layout(primary, interval.Plus)
		if err != nil {
			return nil, err
		}
		values, err := w.row(l, dist)
		if err != nil {
			return nil, err
		}
		writeRow(tw, label.fn(primary), values)
		if err := tw.EndLine(); err != nil {
			return nil, err
		}
		nRows++
	}
	if err := tw.Flush(); err != nil {
		return nil, err
	}
	log.Debug.Printf("windower: wrote %d sliding windows of size %d", nRows, scanner.Size())
	return dist, nil
}

// Features writes the header and one row per feature, in order.  Each primary
// window is built by interval.AnchorWindow with Opts.Upstream and
// Opts.Downstream padding.  When Opts.Distributions is positive, that many
// random windows of the primary window's length are summarized per feature.
// The returned Distributions is nil unless Opts.Distributions is positive.
func (w *Windower) Features(out io.Writer, features []Feature) (*Distributions, error) {
	o := &w.opts
	label, err := lookupFeatureLabel(o.Name)
	if err != nil {
		return nil, err
	}
	primaries := make([]interval.Window, len(features))
	for i, f := range features {
		primaries[i] = interval.AnchorWindow(f, o.Upstream, o.Downstream, o.Center)
		if err := w.checkBins(primaries[i]); err != nil {
			return nil, err
		}
	}
	var (
		dist *Distributions
		rng  *rand.Rand
	)
	if o.Distributions > 0 {
		dist = &Distributions{}
		rng = rand.New(rand.NewSource(o.Seed))
	}
	tw := tsv.NewWriter(out)
	writeRow(tw, w.header(label.columns), nil)
	if err := tw.EndLine(); err != nil {
		return nil, err
	}
	for i, f := range features {
		labels, err := label.fn(f)
		if err != nil {
			return nil, err
		}
		primary := primaries[i]
		for j := 0; j < o.Distributions; j++ {
			v, err := w.summarize(interval.RandomWindow(rng, primary.Len(), o.GenomeLength))
			if err != nil {
				return nil, err
			}
			dist.Random = append(dist.Random, v)
		}
		l, err := w.layout(primary, f.Strand())
		if err != nil {
			return nil, err
		}
		values, err := w.row(l, dist)
		if err != nil {
			return nil, err
		}
		writeRow(tw, labels, values)
		if err := tw.EndLine(); err != nil {
			return nil, err
		}
	}
	if err := tw.Flush(); err != nil {
		return nil, err
	}
	log.Debug.Printf("windower: wrote %d feature windows", len(features))
	return dist, nil
}
