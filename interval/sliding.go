// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package interval

import (
	"fmt"

	"github.com/grailbio/base/errors"
)

// SlidingScanner generates the windows of a sliding scan.  Its usage is
// similar to bufio.Scanner:
//
//   s, err := interval.SlidingBounds(100, genomeLength, 50)
//   ...
//   for s.Scan() {
//     w := s.Window()
//     ...
//   }
//
// Windows are produced in increasing start order and are not clipped to the
// genome; the last few windows usually extend past genomeLength.  Once Scan
// returns false the scanner is exhausted and it cannot be rewound.
type SlidingScanner struct {
	size, length, slideBy int
	next                  int
	cur                   Window
	exhausted             bool
}

// SlidingBounds returns a scanner over the windows (v, v+size-1), for v = 1,
// 1+slideBy, 1+2*slideBy, ... while v <= length.
func SlidingBounds(size, length, slideBy int) (*SlidingScanner, error) {
	if size < 1 || slideBy < 1 {
		return nil, errors.E(errors.Invalid,
			fmt.Sprintf("interval.SlidingBounds: size (%d) and slide (%d) must be positive", size, slideBy))
	}
	return &SlidingScanner{size: size, length: length, slideBy: slideBy, next: 1}, nil
}

// Scan advances to the next window.  It returns false when there are no more
// windows, and keeps returning false afterwards.
func (s *SlidingScanner) Scan() bool {
	if s.exhausted {
		return false
	}
	if s.next > s.length {
		s.exhausted = true
		return false
	}
	s.cur = Window{s.next, s.next + s.size - 1}
	s.next += s.slideBy
	return true
}

// Window returns the window produced by the last successful Scan call.
func (s *SlidingScanner) Window() Window {
	return s.cur
}

// Exhausted reports whether the scanner has produced its last window and a
// Scan call has returned false.
func (s *SlidingScanner) Exhausted() bool {
	return s.exhausted
}

// Size returns the length of every window produced by s.
func (s *SlidingScanner) Size() int {
	return s.size
}
