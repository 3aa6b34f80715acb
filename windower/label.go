// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package windower

import (
	"fmt"
	"strconv"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/windower/interval"
)

// Feature is an annotation a window can be anchored on.  gff.Record
// implements it.
type Feature interface {
	interval.Feature
	// Attrs returns the parsed attribute column.
	Attrs() (map[string]string, error)
}

// Label columns hold 0-based coordinates: a window or feature [s, e] is
// reported as Start = s-1 and End = e.

type slidingLabel struct {
	columns []string
	fn      func(w interval.Window) []string
}

// center returns the 0-based base in the middle of [start, end].
func center(start, end int) string {
	return strconv.Itoa(int(float64(start+end)/2 - 1))
}

var slidingLabels = map[string]slidingLabel{
	"start": {[]string{"Start"}, func(w interval.Window) []string {
		return []string{strconv.Itoa(w.Start - 1)}
	}},
	"end": {[]string{"End"}, func(w interval.Window) []string {
		return []string{strconv.Itoa(w.End)}
	}},
	"startend": {[]string{"Start", "End"}, func(w interval.Window) []string {
		return []string{strconv.Itoa(w.Start - 1), strconv.Itoa(w.End)}
	}},
	"center": {[]string{"Center"}, func(w interval.Window) []string {
		return []string{center(w.Start, w.End)}
	}},
}

type featureLabel struct {
	columns []string
	fn      func(f Feature) ([]string, error)
}

var featureLabels = map[string]featureLabel{
	"fiveprime": {[]string{"FiveprimeBase"}, func(f Feature) ([]string, error) {
		span := f.Span()
		if f.Strand().FivePrimeSide() == interval.High {
			return []string{strconv.Itoa(span.End - 1)}, nil
		}
		return []string{strconv.Itoa(span.Start - 1)}, nil
	}},
	"threeprime": {[]string{"ThreeprimeBase"}, func(f Feature) ([]string, error) {
		span := f.Span()
		if f.Strand().ThreePrimeSide() == interval.High {
			return []string{strconv.Itoa(span.End - 1)}, nil
		}
		return []string{strconv.Itoa(span.Start - 1)}, nil
	}},
	"startend": {[]string{"Start", "End"}, func(f Feature) ([]string, error) {
		span := f.Span()
		return []string{strconv.Itoa(span.Start - 1), strconv.Itoa(span.End)}, nil
	}},
	"startendstrand": {[]string{"Start", "End", "Strand"}, func(f Feature) ([]string, error) {
		span := f.Span()
		return []string{strconv.Itoa(span.Start - 1), strconv.Itoa(span.End), f.Strand().String()}, nil
	}},
	"comments": {[]string{"Gene", "bnumber"}, func(f Feature) ([]string, error) {
		attrs, err := f.Attrs()
		if err != nil {
			return nil, err
		}
		out := make([]string, 2)
		for i, key := range [...]string{"Gene", "Synonym"} {
			v, ok := attrs[key]
			if !ok {
				return nil, errors.E(errors.NotExist, fmt.Sprintf("windower: feature %v has no %s attribute", f.Span(), key))
			}
			out[i] = v
		}
		return out, nil
	}},
	"center": {[]string{"Center"}, func(f Feature) ([]string, error) {
		span := f.Span()
		return []string{center(span.Start, span.End)}, nil
	}},
}

func lookupSlidingLabel(name string) (slidingLabel, error) {
	if l, ok := slidingLabels[name]; ok {
		return l, nil
	}
	return slidingLabel{}, errors.E(errors.NotSupported, fmt.Sprintf("windower: name %q is not supported for sliding windows", name))
}

func lookupFeatureLabel(name string) (featureLabel, error) {
	if l, ok := featureLabels[name]; ok {
		return l, nil
	}
	return featureLabel{}, errors.E(errors.NotSupported, fmt.Sprintf("windower: name %q is not supported for feature windows", name))
}
