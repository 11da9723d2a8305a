// Package calib estimates the relative energy shift between repeated
// spectra of the same sample.
//
// Monochromator drift between repeat scans shows up as a small rigid
// shift of the whole spectrum along the energy axis. ComputeShift
// measures that shift by FFT cross-correlation of the mean-removed
// spectra with parabolic sub-sample refinement of the correlation peak,
// and Apply resamples a spectrum back onto the reference position.
package calib
