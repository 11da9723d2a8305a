package calib

import (
	"errors"
	"math"
	"testing"

	"github.com/matthewcarbone/iss-xas-tools/grid"
)

// gaussianPeak samples a Gaussian absorption-like feature centered at
// center on the given grid.
func gaussianPeak(energy []float64, center, width float64) []float64 {
	out := make([]float64, len(energy))
	for i, e := range energy {
		d := (e - center) / width
		out[i] = math.Exp(-d * d)
	}

	return out
}

func testGrid(n int, start, step float64) []float64 {
	energy := make([]float64, n)
	for i := range energy {
		energy[i] = start + float64(i)*step
	}

	return energy
}

func TestComputeShiftZeroForIdenticalSpectra(t *testing.T) {
	energy := testGrid(256, 7000, 0.5)
	ref := gaussianPeak(energy, 7064, 8)

	shift, err := ComputeShift(energy, ref, ref)
	if err != nil {
		t.Fatal(err)
	}

	if math.Abs(shift) > 1e-6 {
		t.Errorf("shift = %g, want 0", shift)
	}
}

func TestComputeShiftRecoversKnownShift(t *testing.T) {
	energy := testGrid(256, 7000, 0.5)

	tests := []struct {
		name  string
		shift float64
	}{
		{"positive whole samples", 3},
		{"negative whole samples", -2},
		{"sub-sample", 1.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref := gaussianPeak(energy, 7064, 8)
			spec := gaussianPeak(energy, 7064+tt.shift, 8)

			got, err := ComputeShift(energy, ref, spec)
			if err != nil {
				t.Fatal(err)
			}

			if math.Abs(got-tt.shift) > 0.1 {
				t.Errorf("shift = %g, want %g", got, tt.shift)
			}
		})
	}
}

func TestComputeShiftApplyRoundTrip(t *testing.T) {
	energy := testGrid(256, 7000, 0.5)
	ref := gaussianPeak(energy, 7064, 8)
	spec := gaussianPeak(energy, 7066, 8)

	shift, err := ComputeShift(energy, ref, spec)
	if err != nil {
		t.Fatal(err)
	}

	corrected, err := Apply(energy, spec, shift)
	if err != nil {
		t.Fatal(err)
	}

	// Away from the clamped edges the corrected spectrum matches the
	// reference closely.
	for i := 20; i < len(energy)-20; i++ {
		if math.Abs(corrected[i]-ref[i]) > 0.02 {
			t.Fatalf("corrected[%d] = %g, ref = %g", i, corrected[i], ref[i])
		}
	}
}

func TestComputeShiftErrors(t *testing.T) {
	energy := testGrid(64, 7000, 0.5)
	ref := gaussianPeak(energy, 7010, 2)
	flat := make([]float64, len(energy))

	if _, err := ComputeShift(energy, ref, flat); !errors.Is(err, ErrFlatSignal) {
		t.Errorf("flat spectrum error = %v, want ErrFlatSignal", err)
	}

	if _, err := ComputeShift(energy[:10], ref, ref); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("length mismatch error = %v, want ErrLengthMismatch", err)
	}

	if _, err := ComputeShift([]float64{1}, []float64{1}, []float64{1}); !errors.Is(err, grid.ErrTooFewPoints) {
		t.Errorf("short grid error = %v, want ErrTooFewPoints", err)
	}
}
