package calib

import (
	"errors"
	"fmt"
	"math/cmplx"

	algofft "github.com/cwbudde/algo-fft"

	"github.com/matthewcarbone/iss-xas-tools/grid"
	"github.com/matthewcarbone/iss-xas-tools/robust"
)

// Errors returned by shift estimation.
var (
	ErrLengthMismatch = errors.New("calib: spectra and energy grid lengths differ")
	ErrFlatSignal     = errors.New("calib: spectrum has zero variance, no correlation peak")
)

// ComputeShift estimates the energy shift of spec relative to ref, both
// sampled on the same strictly ascending energy grid. The returned
// shift Δ is positive when spec is displaced toward higher energy, so
// that spec(e + Δ) ≈ ref(e).
//
// The shift is found as the peak of the circular cross-correlation of
// the mean-removed spectra, computed via FFT and refined to sub-sample
// precision by parabolic interpolation, then converted to energy units
// with the median grid step.
func ComputeShift(energy, ref, spec []float64) (float64, error) {
	err := grid.Validate(energy)
	if err != nil {
		return 0, err
	}

	n := len(energy)
	if len(ref) != n || len(spec) != n {
		return 0, fmt.Errorf("%w: grid %d, ref %d, spec %d", ErrLengthMismatch, n, len(ref), len(spec))
	}

	refAC, ok1 := removeMean(ref)
	specAC, ok2 := removeMean(spec)

	if !ok1 || !ok2 {
		return 0, ErrFlatSignal
	}

	// Zero-padding to 2n avoids wrap-around between genuine lags.
	fftSize := nextPowerOf2(2 * n)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return 0, fmt.Errorf("calib: failed to create FFT plan: %w", err)
	}

	refFreq := make([]complex128, fftSize)
	if err := plan.Forward(refFreq, padComplex(refAC, fftSize)); err != nil {
		return 0, fmt.Errorf("calib: forward FFT failed: %w", err)
	}

	specFreq := make([]complex128, fftSize)
	if err := plan.Forward(specFreq, padComplex(specAC, fftSize)); err != nil {
		return 0, fmt.Errorf("calib: forward FFT failed: %w", err)
	}

	// Cross-spectrum: ref × conj(spec); its inverse transform is the
	// circular cross-correlation corr[m] = Σ ref[i+m]·spec[i].
	crossFreq := make([]complex128, fftSize)
	for i := range crossFreq {
		crossFreq[i] = refFreq[i] * cmplx.Conj(specFreq[i])
	}

	corrTime := make([]complex128, fftSize)
	if err := plan.Inverse(corrTime, crossFreq); err != nil {
		return 0, fmt.Errorf("calib: inverse FFT failed: %w", err)
	}

	corr := make([]float64, fftSize)
	for i, c := range corrTime {
		corr[i] = real(c)
	}

	// Peak search restricted to lags |m| < n.
	peak := 0
	for m := 1 - n; m < n; m++ {
		idx := (m + fftSize) % fftSize
		if corr[idx] > corr[(peak+fftSize)%fftSize] {
			peak = m
		}
	}

	lag := float64(peak) + parabolicOffset(
		corr[(peak-1+fftSize)%fftSize],
		corr[(peak+fftSize)%fftSize],
		corr[(peak+1+fftSize)%fftSize],
	)

	// spec[i] = ref[i−d] puts the correlation peak at lag −d, so the
	// displacement toward higher energy is the negated lag.
	return -lag * medianStep(energy), nil
}

// Apply resamples values back by shift: the returned curve evaluates
// the input spectrum at energy + shift, undoing a displacement measured
// by ComputeShift against the reference.
func Apply(energy, values []float64, shift float64) ([]float64, error) {
	query := make([]float64, len(energy))
	for i, e := range energy {
		query[i] = e + shift
	}

	return grid.Interp(query, energy, values)
}

// removeMean returns values with their mean subtracted; ok is false
// when the input has zero variance.
func removeMean(values []float64) ([]float64, bool) {
	var sum float64
	for _, v := range values {
		sum += v
	}

	mean := sum / float64(len(values))

	out := make([]float64, len(values))
	flat := true
	for i, v := range values {
		out[i] = v - mean
		if out[i] != 0 {
			flat = false
		}
	}

	return out, !flat
}

// padComplex zero-pads values to fftSize as a complex slice.
func padComplex(values []float64, fftSize int) []complex128 {
	padded := make([]complex128, fftSize)
	for i, v := range values {
		padded[i] = complex(v, 0)
	}

	return padded
}

// parabolicOffset refines a discrete peak position by fitting a
// parabola through the peak and its neighbors; the result lies in
// (−0.5, 0.5) samples.
func parabolicOffset(left, center, right float64) float64 {
	denom := left - 2*center + right
	if denom == 0 {
		return 0
	}

	offset := 0.5 * (left - right) / denom
	if offset <= -0.5 || offset >= 0.5 {
		return 0
	}

	return offset
}

// medianStep returns the median spacing of a strictly ascending grid.
func medianStep(energy []float64) float64 {
	steps := make([]float64, len(energy)-1)
	for i := range steps {
		steps[i] = energy[i+1] - energy[i]
	}

	return robust.Median(steps)
}

func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}

	p := 1
	for p < n {
		p *= 2
	}

	return p
}
