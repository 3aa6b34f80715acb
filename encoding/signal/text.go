// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package signal

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
	gunsafe "github.com/grailbio/base/unsafe"
	"github.com/grailbio/windower/circular"
)

// getTokens identifies up to the first len(tokens) tokens from curLine,
// returning the number of tokens saved.  Any (group of) characters <= ' ' is
// treated as a delimiter.
func getTokens(tokens [][]byte, curLine []byte) int {
	posEnd := 0
	lineLen := len(curLine)
	for tokenIdx := range tokens {
		pos := posEnd
		for ; pos != lineLen; pos++ {
			if curLine[pos] > ' ' {
				break
			}
		}
		if pos == lineLen {
			return tokenIdx
		}
		posEnd = pos
		for ; posEnd != lineLen; posEnd++ {
			if curLine[posEnd] <= ' ' {
				break
			}
		}
		tokens[tokenIdx] = curLine[pos:posEnd]
	}
	return len(tokens)
}

// skipLine reports whether a text line carries no data.
func skipLine(nToken int, first []byte) bool {
	if nToken == 0 || first[0] == '#' {
		return true
	}
	s := gunsafe.BytesToString(first)
	return s == "track" || s == "browser"
}

func lineError(path string, lineIdx int, format string, args ...interface{}) error {
	return errors.E(errors.Invalid, fmt.Sprintf("signal: %s:%d: ", path, lineIdx)+fmt.Sprintf(format, args...))
}

// parsePosition parses a 0-based position, which numpy-written files may
// print as a float such as "12.0".
func parsePosition(token []byte) (int, error) {
	s := gunsafe.BytesToString(token)
	if pos, err := strconv.Atoi(s); err == nil {
		return pos, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("position %v is not an integer", f)
	}
	return int(f), nil
}

// readGR parses position/value pairs into a Sparse signal.
func readGR(r io.Reader, path string) (circular.Signal, error) {
	scanner := bufio.NewScanner(r)
	var (
		tokens  [2][]byte
		pos     []int
		val     []float64
		lineIdx int
	)
	for scanner.Scan() {
		lineIdx++
		curLine := scanner.Bytes()
		nToken := getTokens(tokens[:], curLine)
		if skipLine(nToken, tokens[0]) {
			continue
		}
		if nToken != 2 {
			return nil, lineError(path, lineIdx, "expected position and value columns")
		}
		p, err := parsePosition(tokens[0])
		if err != nil {
			return nil, lineError(path, lineIdx, "%v", err)
		}
		v, err := strconv.ParseFloat(gunsafe.BytesToString(tokens[1]), 64)
		if err != nil {
			return nil, lineError(path, lineIdx, "%v", err)
		}
		if n := len(pos); n > 0 && p <= pos[n-1] {
			return nil, lineError(path, lineIdx, "position %d does not follow %d", p, pos[n-1])
		}
		pos = append(pos, p)
		val = append(val, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.E(err, fmt.Sprintf("signal: %s", path))
	}
	sparse, err := circular.NewSparse(pos, val)
	if err != nil {
		return nil, err
	}
	return sparse, nil
}

// readBED expands the score column of a BED file into one value per base of
// a genome of the given length.  Bases not covered by any interval are NaN;
// later intervals overwrite earlier ones, and interval ends beyond the genome
// are clipped.
func readBED(r io.Reader, path string, genomeLength int) (circular.Signal, error) {
	if genomeLength < 1 {
		return nil, errors.E(errors.Invalid, fmt.Sprintf("signal: %s: genome length %d", path, genomeLength))
	}
	data := make(circular.Dense, genomeLength)
	for i := range data {
		data[i] = math.NaN()
	}
	scanner := bufio.NewScanner(r)
	var (
		tokens   [5][]byte
		lineIdx  int
		totBases int
	)
	for scanner.Scan() {
		lineIdx++
		nToken := getTokens(tokens[:], scanner.Bytes())
		if skipLine(nToken, tokens[0]) {
			continue
		}
		if nToken != 5 {
			return nil, lineError(path, lineIdx, "has fewer tokens than expected")
		}
		start, err := strconv.Atoi(gunsafe.BytesToString(tokens[1]))
		if err != nil {
			return nil, lineError(path, lineIdx, "%v", err)
		}
		end, err := strconv.Atoi(gunsafe.BytesToString(tokens[2]))
		if err != nil {
			return nil, lineError(path, lineIdx, "%v", err)
		}
		if start < 0 || end < start {
			return nil, lineError(path, lineIdx, "invalid coordinate pair %d %d", start, end)
		}
		score, err := strconv.ParseFloat(gunsafe.BytesToString(tokens[4]), 64)
		if err != nil {
			return nil, lineError(path, lineIdx, "%v", err)
		}
		if end > genomeLength {
			end = genomeLength
		}
		for i := start; i < end; i++ {
			data[i] = score
		}
		if end > start {
			totBases += end - start
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.E(err, fmt.Sprintf("signal: %s", path))
	}
	log.Printf("signal: %s: BED loaded, %d base(s) covered", path, totBases)
	return data, nil
}
