// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package windower_test

import (
	"bytes"
	"io/ioutil"
	"math"
	"os"
	"path/filepath"
	"testing"

	"blainsmith.com/go/seahash"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/testutil"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
	"github.com/grailbio/windower/windower"
	"github.com/klauspost/compress/gzip"
)

func TestFormatValue(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{0, "0.0000e+00"},
		{1.5, "1.5000e+00"},
		{-0.000123456, "-1.2346e-04"},
		{12345678, "1.2346e+07"},
		{1e100, "1.0000e+100"},
		{math.NaN(), "nan"},
		{math.Inf(1), "inf"},
		{math.Inf(-1), "-inf"},
	}
	for _, tt := range tests {
		expect.EQ(t, windower.FormatValue(tt.v), tt.want)
	}
}

func TestWriteDistributions(t *testing.T) {
	var buf bytes.Buffer
	err := windower.WriteDistributions(&buf, &windower.Distributions{
		Actual: []float64{1, 2},
		Random: []float64{0.5},
	})
	assert.NoError(t, err)
	expect.EQ(t, buf.String(), lines(
		"set\tvalue",
		"actual\t1.0000e+00",
		"actual\t2.0000e+00",
		"random\t5.0000e-01"))
}

func TestOutput(t *testing.T) {
	tmpdir, cleanup := testutil.TempDir(t, "", "")
	defer testutil.NoCleanupOnError(t, cleanup, tmpdir)
	ctx := vcontext.Background()
	content := []byte(lines("Start\tEnd\twindow_0", "0\t2\t1.5000e+00"))

	plain := filepath.Join(tmpdir, "out.tsv")
	out, err := windower.CreateOutput(ctx, plain, true)
	assert.NoError(t, err)
	_, err = out.Writer().Write(content)
	assert.NoError(t, err)
	assert.NoError(t, out.Close())
	expect.EQ(t, out.Sum(), seahash.Sum64(content))
	got, err := ioutil.ReadFile(plain)
	assert.NoError(t, err)
	expect.EQ(t, string(got), string(content))

	compressed := filepath.Join(tmpdir, "out.tsv.gz")
	out, err = windower.CreateOutput(ctx, compressed, false)
	assert.NoError(t, err)
	_, err = out.Writer().Write(content)
	assert.NoError(t, err)
	assert.NoError(t, out.Close())
	expect.EQ(t, out.Sum(), uint64(0))
	f, err := os.Open(compressed)
	assert.NoError(t, err)
	defer f.Close()
	gz, err := gzip.NewReader(f)
	assert.NoError(t, err)
	got, err = ioutil.ReadAll(gz)
	assert.NoError(t, err)
	expect.EQ(t, string(got), string(content))
}

func TestPlotDistributions(t *testing.T) {
	tmpdir, cleanup := testutil.TempDir(t, "", "")
	defer testutil.NoCleanupOnError(t, cleanup, tmpdir)
	ctx := vcontext.Background()

	path := filepath.Join(tmpdir, "dist.png")
	err := windower.PlotDistributions(ctx, path, &windower.Distributions{
		Actual: []float64{1, 2, 2, 3, math.NaN()},
		Random: []float64{0, 1, 1, 4},
	})
	assert.NoError(t, err)
	info, err := os.Stat(path)
	assert.NoError(t, err)
	expect.True(t, info.Size() > 0)

	err = windower.PlotDistributions(ctx, filepath.Join(tmpdir, "empty.png"), &windower.Distributions{
		Actual: []float64{math.NaN()},
	})
	expect.NotNil(t, err)
}
