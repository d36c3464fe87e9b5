// Package golden compares computed pixel-map files against reference
// ("golden") files line by line.
//
// The comparison is purely textual. The first three lines of each file (the
// magic, dimensions and max value of a comment-free header) are skipped and
// the remaining lines are compared positionally after trimming surrounding
// whitespace. Line numbers in reports are 1-based, so the first compared line
// is line 4. For ASCII files written one sample per line this makes line N
// correspond to sample N-4.
//
// Comparison stops after a configurable number of mismatches; in that case
// the true total is unknown and the report says so.
//
// A regression suite is an ordered list of (actual, reference) pairs, either
// built in code or loaded from a YAML file with LoadSuite:
//
//	limit: 5
//	pairs:
//	  - actual: out/cross_result.pgm
//	    reference: golden/cross_sobel.pgm
package golden
