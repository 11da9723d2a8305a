package outlier

import "github.com/matthewcarbone/iss-xas-tools/robust"

// Combined runs the staged chi-square → density classification: rows
// flagged by the chi-square pass are removed, the detector is fitted
// directly on the survivors (no additional trimming), and every
// original row is labeled by the fitted model.
//
// When fewer than 2 rows survive the chi-square pass the density model
// cannot be fitted and every row is labeled an inlier.
func Combined(det Detector, data [][]float64, threshold float64) ([]int, error) {
	labels, _, err := RejectChiSquare(data, threshold)
	if err != nil {
		return nil, err
	}

	reduced := make([][]float64, 0, len(data))
	for i, label := range labels {
		if label > 0 {
			reduced = append(reduced, data[i])
		}
	}

	if len(reduced) < 2 {
		return allInliers(len(data)), nil
	}

	err = det.Fit(reduced)
	if err != nil {
		return nil, err
	}

	return det.Predict(data)
}

// CombinedDefault runs Combined with a fresh LOF detector and the
// default chi-square threshold.
func CombinedDefault(data [][]float64) ([]int, error) {
	return Combined(NewLOF(), data, robust.DefaultChiSquareThreshold)
}
