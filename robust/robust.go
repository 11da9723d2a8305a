package robust

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// Default tuning constants. Empirically calibrated on beamline scan
// groups; override per call when a group behaves differently.
const (
	DefaultTrimFraction       = 0.2
	DefaultDeviationThreshold = 25.0
	DefaultChiSquareThreshold = 30.0
)

// madScale converts a median absolute deviation to a standard-deviation
// equivalent under normality (1/Φ⁻¹(3/4)).
const madScale = 0.67449

// Errors returned by scoring functions.
var (
	ErrNoData                 = errors.New("robust: empty data matrix")
	ErrRaggedData             = errors.New("robust: rows have differing lengths")
	ErrDegenerateDistribution = errors.New("robust: zero spread where a score requires division")
	ErrTrimFraction           = errors.New("robust: trim fraction must be in [0, 1)")
)

// validate checks that data is a non-empty rectangular matrix.
func validate(data [][]float64) error {
	if len(data) == 0 || len(data[0]) == 0 {
		return ErrNoData
	}

	cols := len(data[0])
	for i, row := range data {
		if len(row) != cols {
			return fmt.Errorf("%w: row 0 has %d, row %d has %d", ErrRaggedData, cols, i, len(row))
		}
	}

	return nil
}

// Median returns the median of values. The input is not modified.
// Returns NaN for an empty slice.
func Median(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return math.NaN()
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	if n%2 == 1 {
		return sorted[n/2]
	}

	return 0.5 * (sorted[n/2-1] + sorted[n/2])
}

// Quantile returns the q-quantile of values using linear interpolation
// between order statistics. q is clamped to [0, 1]. The input is not
// modified. Returns NaN for an empty slice.
func Quantile(values []float64, q float64) float64 {
	n := len(values)
	if n == 0 {
		return math.NaN()
	}

	if q < 0 {
		q = 0
	}

	if q > 1 {
		q = 1
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	h := q * float64(n-1)
	lo := int(math.Floor(h))
	if lo >= n-1 {
		return sorted[n-1]
	}

	frac := h - float64(lo)

	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

// ColumnMedians returns the per-column medians of data.
func ColumnMedians(data [][]float64) []float64 {
	cols := len(data[0])
	med := make([]float64, cols)
	column := make([]float64, len(data))

	for j := 0; j < cols; j++ {
		for i, row := range data {
			column[i] = row[j]
		}

		med[j] = Median(column)
	}

	return med
}

// TrimColumns sorts each column independently and discards the lowest
// and highest cut values, returning the surviving order statistics as a
// (rows−2·cut)×cols matrix. cut = floor(fracPerTail·rows). The rows of
// the result are per-column order statistics, not original scans.
func TrimColumns(data [][]float64, fracPerTail float64) [][]float64 {
	rows := len(data)
	cols := len(data[0])
	cut := int(fracPerTail * float64(rows))

	if 2*cut >= rows {
		cut = (rows - 1) / 2
	}

	kept := rows - 2*cut
	out := make([][]float64, kept)
	for i := range out {
		out[i] = make([]float64, cols)
	}

	column := make([]float64, rows)
	for j := 0; j < cols; j++ {
		for i, row := range data {
			column[i] = row[j]
		}

		sort.Float64s(column)

		for i := 0; i < kept; i++ {
			out[i][j] = column[cut+i]
		}
	}

	return out
}

// TrimmedDeviation scores every row of data by its mean squared
// standardized deviation from the per-column trimmed mean:
//
//	score_i = (1/cols) · Σ_j ((data[i][j] − mean_j) / std_j)²
//
// where mean_j and std_j are computed per column after discarding the
// lowest and highest trimFraction/2 of values. outliers[i] is true when
// score_i exceeds threshold. Rows trimmed out of the statistics are
// still scored.
//
// A column with zero trimmed spread contributes 0 only when the row
// value matches the trimmed mean exactly; any nonzero deviation against
// zero spread returns ErrDegenerateDistribution.
func TrimmedDeviation(data [][]float64, trimFraction, threshold float64) (scores []float64, outliers []bool, err error) {
	if err := validate(data); err != nil {
		return nil, nil, err
	}

	if trimFraction < 0 || trimFraction >= 1 {
		return nil, nil, fmt.Errorf("%w: got %g", ErrTrimFraction, trimFraction)
	}

	trimmed := TrimColumns(data, trimFraction/2)
	cols := len(data[0])

	mean := make([]float64, cols)
	std := make([]float64, cols)
	nt := float64(len(trimmed))

	for j := 0; j < cols; j++ {
		var sum float64
		for _, row := range trimmed {
			sum += row[j]
		}

		mean[j] = sum / nt

		var sq float64
		for _, row := range trimmed {
			d := row[j] - mean[j]
			sq += d * d
		}

		std[j] = math.Sqrt(sq / nt)
	}

	scores = make([]float64, len(data))
	outliers = make([]bool, len(data))

	for i, row := range data {
		var sum float64
		for j, v := range row {
			d := v - mean[j]
			if std[j] == 0 {
				if d != 0 {
					return nil, nil, fmt.Errorf("%w: column %d has zero trimmed std", ErrDegenerateDistribution, j)
				}

				continue
			}

			z := d / std[j]
			sum += z * z
		}

		scores[i] = sum / float64(cols)
		outliers[i] = scores[i] > threshold
	}

	return scores, outliers, nil
}
