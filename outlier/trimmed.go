package outlier

import (
	"github.com/matthewcarbone/iss-xas-tools/robust"
)

// DefaultTrimFraction is the fraction of the data removed before the
// density model is fitted in trimmed-fit mode.
const DefaultTrimFraction = 0.4

// TrimMethod selects how training data is trimmed before fitting.
type TrimMethod int

const (
	// TrimValues sorts each column independently and discards its
	// extreme values, training on the surviving order statistics.
	TrimValues TrimMethod = iota

	// TrimRows ranks whole rows by mean squared deviation from the
	// per-column median and discards those above the (1 − fraction)
	// quantile, training on the surviving original rows.
	TrimRows
)

// Classifier fits a density Detector on a trimmed subset of the data
// and predicts on the full, untrimmed set. Training on the trimmed
// consensus keeps gross outliers out of the model while every original
// row still receives a label.
type Classifier struct {
	det      Detector
	fraction float64
	method   TrimMethod
}

// ClassifierOption mutates a Classifier.
type ClassifierOption func(*Classifier)

// WithTrimFraction sets the fraction of the data trimmed before fitting.
func WithTrimFraction(fraction float64) ClassifierOption {
	return func(c *Classifier) {
		if fraction >= 0 && fraction < 1 {
			c.fraction = fraction
		}
	}
}

// WithTrimMethod selects value-based or row-based trimming.
func WithTrimMethod(method TrimMethod) ClassifierOption {
	return func(c *Classifier) {
		c.method = method
	}
}

// NewClassifier wraps det in trimmed-fit mode with default tuning.
func NewClassifier(det Detector, opts ...ClassifierOption) *Classifier {
	c := &Classifier{
		det:      det,
		fraction: DefaultTrimFraction,
		method:   TrimValues,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	return c
}

// trimRowsByMedianDistance keeps the rows whose mean squared deviation
// from the per-column median lies at or below the (1 − fraction)
// quantile of all row distances.
func trimRowsByMedianDistance(data [][]float64, fraction float64) [][]float64 {
	med := robust.ColumnMedians(data)

	dist := make([]float64, len(data))
	for i, row := range data {
		var sum float64
		for j, v := range row {
			d := v - med[j]
			sum += d * d
		}

		dist[i] = sum / float64(len(row))
	}

	cutoff := robust.Quantile(dist, 1-fraction)

	kept := make([][]float64, 0, len(data))
	for i, row := range data {
		if dist[i] <= cutoff {
			kept = append(kept, row)
		}
	}

	return kept
}

// Classify fits the wrapped detector on the trimmed data and labels
// every original row. When fewer than 2 rows survive the trim the
// density model cannot be fitted and every row is labeled an inlier.
func (c *Classifier) Classify(data [][]float64) ([]int, error) {
	if len(data) == 0 {
		return nil, robust.ErrNoData
	}

	var training [][]float64

	switch c.method {
	case TrimRows:
		training = trimRowsByMedianDistance(data, c.fraction)
	default:
		training = robust.TrimColumns(data, c.fraction/2)
	}

	if len(training) < 2 {
		return allInliers(len(data)), nil
	}

	err := c.det.Fit(training)
	if err != nil {
		return nil, err
	}

	return c.det.Predict(data)
}
