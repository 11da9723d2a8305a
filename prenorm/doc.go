// Package prenorm removes per-scan calibration bias before outlier
// scoring.
//
// Repeat scans of the same sample differ by detector gain and offset
// even when the underlying spectrum is identical. Normalize fits an
// affine transform a + b·row to the master row by least squares and
// replaces each row with its fitted curve, so that subsequent deviation
// scores measure genuine curve-shape disagreement rather than
// calibration differences.
package prenorm
