// Package report builds the four academic-standing report documents
// from the roster, the aggregated grade history, and the standing
// classifier. Builders produce structured multi-sheet documents and
// never touch the filesystem; persistence is a Sink concern.
package report
