// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package circular resolves genomic windows against per-base signals on a
// circular chromosome.  A window (see package interval) may extend below
// position 1 or past the genome length; the signals in this package treat the
// genome as tiling infinitely in both directions when extracting it.
//
// Two representations are provided.  Dense stores one value per base and is
// indexed directly.  Sparse stores sorted (position, value) pairs for
// irregularly covered genomes and is searched by bisection.  The two use
// slightly different corrections at the origin and are intentionally kept
// that way; unifying them would change results near position 1.
package circular
