// Package scan defines the data model for repeated X-ray absorption
// measurements: a Scan holds one measurement trace (an energy grid plus
// one or more named channels), a Group collects repeated scans of the
// same sample with a designated master scan, and a Matrix arranges one
// channel of a group row-wise for statistical processing.
//
// A Matrix keeps the scan uid of every row alongside the data, so that
// downstream filtering and classification can always report results by
// scan identity rather than by transient row position.
package scan
