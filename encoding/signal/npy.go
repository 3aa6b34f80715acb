// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package signal

import (
	"fmt"
	"io"
	"math"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/windower/circular"
	"github.com/sbinet/npyio"
)

// readNPYValues reads the array data of r as float64, whatever its numeric
// dtype.
func readNPYValues(r *npyio.Reader, path string) ([]float64, error) {
	dtype := r.Header.Descr.Type
	if len(dtype) < 2 {
		return nil, errors.E(errors.Invalid, fmt.Sprintf("signal: %s: bad dtype %q", path, dtype))
	}
	var (
		out []float64
		err error
	)
	// Skip the byte-order character.
	switch dtype[1:] {
	case "f8":
		err = r.Read(&out)
	case "f4":
		var v []float32
		if err = r.Read(&v); err == nil {
			out = make([]float64, len(v))
			for i, x := range v {
				out[i] = float64(x)
			}
		}
	case "i8":
		var v []int64
		if err = r.Read(&v); err == nil {
			out = make([]float64, len(v))
			for i, x := range v {
				out[i] = float64(x)
			}
		}
	case "i4":
		var v []int32
		if err = r.Read(&v); err == nil {
			out = make([]float64, len(v))
			for i, x := range v {
				out[i] = float64(x)
			}
		}
	case "b1":
		var v []bool
		if err = r.Read(&v); err == nil {
			out = make([]float64, len(v))
			for i, x := range v {
				if x {
					out[i] = 1
				}
			}
		}
	default:
		return nil, errors.E(errors.NotSupported, fmt.Sprintf("signal: %s: unsupported dtype %q", path, dtype))
	}
	if err != nil {
		return nil, errors.E(errors.Invalid, err, fmt.Sprintf("signal: %s", path))
	}
	return out, nil
}

// readNPY reads a 1-D array as a Dense signal and an N x 2 array of
// (position, value) rows as a Sparse signal.
func readNPY(r io.Reader, path string) (circular.Signal, error) {
	npy, err := npyio.NewReader(r)
	if err != nil {
		return nil, errors.E(errors.Invalid, err, fmt.Sprintf("signal: %s", path))
	}
	shape := npy.Header.Descr.Shape
	switch {
	case len(shape) == 1:
		values, err := readNPYValues(npy, path)
		if err != nil {
			return nil, err
		}
		return circular.Dense(values), nil
	case len(shape) == 2 && shape[1] == 2:
		values, err := readNPYValues(npy, path)
		if err != nil {
			return nil, err
		}
		n := shape[0]
		if len(values) != 2*n {
			return nil, errors.E(errors.Invalid, fmt.Sprintf("signal: %s: expected %d values, got %d", path, 2*n, len(values)))
		}
		pos := make([]int, n)
		val := make([]float64, n)
		for i := 0; i < n; i++ {
			var p float64
			if npy.Header.Descr.Fortran {
				p, val[i] = values[i], values[n+i]
			} else {
				p, val[i] = values[2*i], values[2*i+1]
			}
			if p != math.Trunc(p) {
				return nil, errors.E(errors.Invalid, fmt.Sprintf("signal: %s: row %d: position %v is not an integer", path, i, p))
			}
			pos[i] = int(p)
		}
		sparse, err := circular.NewSparse(pos, val)
		if err != nil {
			return nil, errors.E(errors.Invalid, err, fmt.Sprintf("signal: %s", path))
		}
		return sparse, nil
	}
	return nil, errors.E(errors.NotSupported, fmt.Sprintf("signal: %s: unsupported array shape %v", path, shape))
}
