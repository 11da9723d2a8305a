package outlier

import "errors"

// Row labels produced by all classifiers.
const (
	Inlier  = 1
	Outlier = -1
)

// Errors returned by detectors and classifiers.
var (
	ErrInsufficientData = errors.New("outlier: need at least 2 rows to fit")
	ErrNotFitted        = errors.New("outlier: detector has not been fitted")
	ErrDimension        = errors.New("outlier: row length differs from fitted data")
)

// Detector is a novelty-detection model with a two-phase fit/predict
// capability. Fit learns the density of the training rows; Predict
// labels arbitrary rows of the same width against that density with
// Inlier or Outlier. The fit and predict sets need not coincide.
type Detector interface {
	Fit(data [][]float64) error
	Predict(data [][]float64) ([]int, error)
}

// allInliers returns an Inlier label for every one of n rows.
func allInliers(n int) []int {
	labels := make([]int, n)
	for i := range labels {
		labels[i] = Inlier
	}

	return labels
}
