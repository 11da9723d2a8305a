package robust

import (
	"fmt"
	"math"
)

// ChiSquare computes the modified chi-square score of every row:
//
//	ξ_ij = (data[i][j] − median_j) / MAD
//	score_i = (1/cols) · Σ_j ξ_ij²
//
// median_j is the per-column median and MAD is the median absolute
// deviation of all entries from their column medians, scaled by
// 1/0.67449 so that ξ approximates a z-score under normality.
//
// A zero MAD means the bulk of the matrix sits exactly on the column
// medians. Rows matching the medians everywhere score 0; rows with any
// remaining deviation are unboundedly significant against a collapsed
// scale and score +Inf, so any finite threshold flags them. Only when
// no row matches the medians (zero MAD without a consensus) does
// ChiSquare return ErrDegenerateDistribution.
func ChiSquare(data [][]float64) ([]float64, error) {
	if err := validate(data); err != nil {
		return nil, err
	}

	med := ColumnMedians(data)
	cols := len(data[0])

	absDev := make([]float64, 0, len(data)*cols)
	for _, row := range data {
		for j, v := range row {
			absDev = append(absDev, math.Abs(v-med[j]))
		}
	}

	mad := Median(absDev) / madScale

	scores := make([]float64, len(data))

	if mad == 0 {
		consensus := false
		for i := range data {
			for j := 0; j < cols; j++ {
				if absDev[i*cols+j] != 0 {
					scores[i] = math.Inf(1)
					break
				}
			}

			if scores[i] == 0 {
				consensus = true
			}
		}

		if !consensus {
			return nil, fmt.Errorf("%w: zero MAD with no row on the column medians", ErrDegenerateDistribution)
		}

		return scores, nil
	}

	for i, row := range data {
		var sum float64
		for j, v := range row {
			ksi := (v - med[j]) / mad
			sum += ksi * ksi
		}

		scores[i] = sum / float64(cols)
	}

	return scores, nil
}
