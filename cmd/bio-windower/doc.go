// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

/*
bio-windower computes a summary statistic of a per-base signal over windows
of a circular genome, and writes one TSV row per window.

The signal is a .gr, .bed or .npy file, or a FASTA file when a sequence
statistic ("-summary-stat genomic") is requested.  Windows either slide along
the whole genome, or are anchored on the features of a GFF file.  Each window
can be split into bins, and flanked by upstream and downstream regions with
their own bins.  All coordinates in the output are 0-based.

Sample usage:
bio-windower sliding -window-bins 4 -o coverage.tsv.gz coverage.npy 500 250

bio-windower gff_window \
    -center-metric fiveprime -upstream 200 -downstream 100 \
    -name comments -summary-stat genomic -genomic-feature "basecontent A;T" \
    genome.fa genes.gff
*/
package main
