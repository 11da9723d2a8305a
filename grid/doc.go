// Package grid resamples repeated scans onto a common energy grid.
//
// Repeated scans of the same sample are acquired with independently
// generated energy axes, so their samples do not line up column-wise.
// Align interpolates every scan in a group onto the master scan's grid
// using piecewise-linear interpolation with boundary clamping, after
// which the group can be arranged into a rectangular matrix for
// statistical processing.
//
// Alignment is idempotent: aligning an already-aligned group reproduces
// it exactly, because interpolating a curve onto its own grid returns
// the original samples.
package grid
