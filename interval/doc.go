// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

/*Package interval implements window arithmetic on circular genomes.
  All windows handled here use 1-based coordinates with inclusive ends, which
  is what GFF files use.  A window may extend below position 1 or above the
  genome length; such a window wraps around the origin, and it is up to the
  consumer (see package circular) to resolve it against the genome length.

  Orientation-dependent operations (flanking, centering, binning) consult the
  strand of the window: on the minus strand, the five-prime end of a window is
  its highest coordinate.
*/
package interval
