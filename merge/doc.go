// Package merge turns a group of repeated scans into one consensus
// spectrum per channel.
//
// Reject drives the full pipeline: the group is aligned onto the master
// energy grid, each channel is arranged into a row-wise matrix and
// prenormalized against the master scan, and three outlier-rejection
// strategies (trimmed-fit density classification, modified chi-square,
// and their staged combination) label every scan. For each strategy the
// inlier scans are averaged column-wise from the original, untouched
// data, and the inlier/outlier partition is reported by scan uid along
// with raw scores and the normalized matrix for external diagnostics.
//
// Channels are processed independently: a failure in one channel is
// recorded against that channel and does not discard results already
// computed for the others.
package merge
