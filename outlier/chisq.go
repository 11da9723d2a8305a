package outlier

import "github.com/matthewcarbone/iss-xas-tools/robust"

// RejectChiSquare labels every row of data by thresholding its modified
// chi-square score: Outlier where the score exceeds threshold, Inlier
// otherwise. The raw scores are returned alongside the labels.
func RejectChiSquare(data [][]float64, threshold float64) ([]int, []float64, error) {
	scores, err := robust.ChiSquare(data)
	if err != nil {
		return nil, nil, err
	}

	labels := make([]int, len(scores))
	for i, s := range scores {
		if s > threshold {
			labels[i] = Outlier
		} else {
			labels[i] = Inlier
		}
	}

	return labels, scores, nil
}
