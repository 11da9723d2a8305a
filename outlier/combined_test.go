package outlier

import (
	"errors"
	"math"
	"testing"

	"github.com/matthewcarbone/iss-xas-tools/robust"
)

func noisyFamily(rows, cols int) [][]float64 {
	data := make([][]float64, rows)
	for i := range data {
		row := make([]float64, cols)
		for j := range row {
			row[j] = math.Sin(float64(j)/7) + 0.01*float64(i)*math.Cos(float64(j)/9)
		}

		data[i] = row
	}

	return data
}

func TestRejectChiSquareLabels(t *testing.T) {
	data := noisyFamily(10, 50)

	deviant := make([]float64, 50)
	for j := range deviant {
		deviant[j] = math.Sin(float64(j)/7) + 1.5*math.Sin(float64(j)/2)
	}

	data = append(data, deviant)

	labels, scores, err := RejectChiSquare(data, robust.DefaultChiSquareThreshold)
	if err != nil {
		t.Fatal(err)
	}

	if len(scores) != len(labels) {
		t.Fatalf("scores/labels length mismatch: %d vs %d", len(scores), len(labels))
	}

	for i := 0; i < 10; i++ {
		if labels[i] != Inlier {
			t.Errorf("in-band row %d labeled %d (score %g)", i, labels[i], scores[i])
		}
	}

	if labels[10] != Outlier {
		t.Errorf("deviant row labeled %d (score %g)", labels[10], scores[10])
	}
}

func TestCombinedFlagsDeviant(t *testing.T) {
	data := noisyFamily(10, 50)

	deviant := make([]float64, 50)
	for j := range deviant {
		deviant[j] = math.Sin(float64(j)/7) + 1.5*math.Sin(float64(j)/2)
	}

	data = append(data, deviant)

	labels, err := Combined(NewLOF(), data, robust.DefaultChiSquareThreshold)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 10; i++ {
		if labels[i] != Inlier {
			t.Errorf("in-band row %d labeled %d", i, labels[i])
		}
	}

	if labels[10] != Outlier {
		t.Error("deviant row not flagged")
	}
}

func TestCombinedSingleRowFallback(t *testing.T) {
	// One row survives its own chi-square pass trivially, but a single
	// survivor cannot fit a density model: the fallback labels it an
	// inlier rather than failing.
	labels, err := Combined(NewLOF(), [][]float64{{1, 2, 3}}, robust.DefaultChiSquareThreshold)
	if err != nil {
		t.Fatal(err)
	}

	if len(labels) != 1 || labels[0] != Inlier {
		t.Errorf("labels = %v, want [1]", labels)
	}
}

func TestCombinedFlagsDeviantAgainstIdenticalConsensus(t *testing.T) {
	// Identical consensus rows collapse the chi-square scale to zero;
	// the prefilter still removes the deviant and the density model,
	// fitted on the consensus, keeps it excluded.
	row := []float64{1, 2, 3}
	data := [][]float64{row, row, row, row, {9, 9, 9}}

	labels, err := Combined(NewLOF(), data, robust.DefaultChiSquareThreshold)
	if err != nil {
		t.Fatal(err)
	}

	want := []int{Inlier, Inlier, Inlier, Inlier, Outlier}
	for i, label := range labels {
		if label != want[i] {
			t.Errorf("labels = %v, want %v", labels, want)
			break
		}
	}
}

func TestCombinedPropagatesDegenerateError(t *testing.T) {
	// Disjoint glitches leave no consensus row behind a zero MAD.
	data := [][]float64{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}

	_, err := Combined(NewLOF(), data, robust.DefaultChiSquareThreshold)
	if !errors.Is(err, robust.ErrDegenerateDistribution) {
		t.Errorf("error = %v, want ErrDegenerateDistribution", err)
	}
}

func TestCombinedDefault(t *testing.T) {
	data := noisyFamily(6, 30)

	labels, err := CombinedDefault(data)
	if err != nil {
		t.Fatal(err)
	}

	for i, label := range labels {
		if label != Inlier {
			t.Errorf("in-band row %d labeled %d", i, label)
		}
	}
}
