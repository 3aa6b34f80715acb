// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package windower

import (
	"context"
	"image/color"
	"math"
	"path/filepath"
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	_ "gonum.org/v1/plot/vg/vgimg"
)

const histogramBins = 50

var (
	actualColor = color.RGBA{R: 220, A: 160}
	randomColor = color.RGBA{B: 220, A: 160}
)

// PlotDistributions draws a normalized histogram of the finite values of each
// set of d and saves it to path.  The image format is taken from the
// extension of path, e.g. ".png".
func PlotDistributions(ctx context.Context, path string, d *Distributions) (err error) {
	p := plot.New()
	p.Title.Text = "Window value distributions"
	p.X.Label.Text = "value"
	p.Y.Label.Text = "density"
	n := 0
	for _, set := range []struct {
		name   string
		values []float64
		color  color.Color
	}{{"actual", d.Actual, actualColor}, {"random", d.Random, randomColor}} {
		values := finite(set.values)
		if len(values) == 0 {
			continue
		}
		h, err := plotter.NewHist(plotter.Values(values), histogramBins)
		if err != nil {
			return errors.E(errors.Invalid, err, "windower: "+set.name+" histogram")
		}
		h.Normalize(1)
		h.FillColor = set.color
		p.Add(h)
		p.Legend.Add(set.name, h)
		n++
	}
	if n == 0 {
		return errors.E(errors.Invalid, "windower: no values to plot")
	}
	format := strings.TrimPrefix(filepath.Ext(path), ".")
	wt, err := p.WriterTo(6*vg.Inch, 4*vg.Inch, format)
	if err != nil {
		return err
	}
	out, err := file.Create(ctx, path)
	if err != nil {
		return err
	}
	defer file.CloseAndReport(ctx, out, &err)
	_, err = wt.WriteTo(out.Writer(ctx))
	return
}

// finite returns the finite values of vs.
func finite(vs []float64) []float64 {
	out := make([]float64, 0, len(vs))
	for _, v := range vs {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out = append(out, v)
		}
	}
	return out
}
