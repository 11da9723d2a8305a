package outlier

import (
	"fmt"
	"math"
	"sort"
)

// Default LOF tuning.
const (
	DefaultNeighbors = 20
	DefaultLOFOffset = 1.5
)

// lrdEpsilon keeps reachability densities finite when a query point
// coincides with its training neighbors.
const lrdEpsilon = 1e-10

// LOF is a local outlier factor detector usable for novelty detection:
// after fitting on a clean training set it can score previously unseen
// rows. A row's factor is the ratio of the average local reachability
// density of its k nearest training neighbors to its own; factors near
// 1 indicate consensus density, factors above the offset indicate an
// isolated row.
type LOF struct {
	neighbors int
	offset    float64

	train [][]float64
	kdist []float64
	lrd   []float64
	k     int
}

// LOFOption mutates a LOF before fitting.
type LOFOption func(*LOF)

// WithNeighbors sets the number of nearest neighbors considered.
// The effective count is capped at one less than the training size.
func WithNeighbors(k int) LOFOption {
	return func(l *LOF) {
		if k > 0 {
			l.neighbors = k
		}
	}
}

// WithOffset sets the factor threshold above which a row is labeled an
// outlier.
func WithOffset(offset float64) LOFOption {
	return func(l *LOF) {
		if offset > 0 {
			l.offset = offset
		}
	}
}

// NewLOF creates a LOF detector with default tuning.
func NewLOF(opts ...LOFOption) *LOF {
	l := &LOF{
		neighbors: DefaultNeighbors,
		offset:    DefaultLOFOffset,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}

	return l
}

// euclidean returns the Euclidean distance between two rows.
func euclidean(a, b []float64) float64 {
	var sum float64
	for i, v := range a {
		d := v - b[i]
		sum += d * d
	}

	return math.Sqrt(sum)
}

// nearest returns the indices of the k training rows closest to row,
// sorted by ascending distance, excluding the training index skip
// (pass -1 to consider all rows).
func (l *LOF) nearest(row []float64, k, skip int) ([]int, []float64) {
	idx := make([]int, 0, len(l.train))
	dist := make([]float64, len(l.train))

	for i, t := range l.train {
		if i == skip {
			continue
		}

		idx = append(idx, i)
		dist[i] = euclidean(row, t)
	}

	sort.Slice(idx, func(a, b int) bool { return dist[idx[a]] < dist[idx[b]] })

	if k < len(idx) {
		idx = idx[:k]
	}

	dists := make([]float64, len(idx))
	for i, j := range idx {
		dists[i] = dist[j]
	}

	return idx, dists
}

// Fit learns the local reachability density of every training row.
// Requires at least 2 rows of equal length.
func (l *LOF) Fit(data [][]float64) error {
	if len(data) < 2 {
		return fmt.Errorf("%w: got %d", ErrInsufficientData, len(data))
	}

	cols := len(data[0])
	l.train = make([][]float64, len(data))
	for i, row := range data {
		if len(row) != cols {
			return fmt.Errorf("%w: row %d has %d values, row 0 has %d", ErrDimension, i, len(row), cols)
		}

		l.train[i] = append([]float64(nil), row...)
	}

	n := len(l.train)
	l.k = l.neighbors
	if l.k > n-1 {
		l.k = n - 1
	}

	// k-distance of every training row.
	neighborIdx := make([][]int, n)
	neighborDist := make([][]float64, n)
	l.kdist = make([]float64, n)

	for i, row := range l.train {
		idx, dists := l.nearest(row, l.k, i)
		neighborIdx[i] = idx
		neighborDist[i] = dists
		l.kdist[i] = dists[len(dists)-1]
	}

	// Local reachability density from the neighbors' k-distances.
	l.lrd = make([]float64, n)
	for i := range l.train {
		var reach float64
		for j, nb := range neighborIdx[i] {
			reach += math.Max(l.kdist[nb], neighborDist[i][j])
		}

		l.lrd[i] = 1 / (reach/float64(len(neighborIdx[i])) + lrdEpsilon)
	}

	return nil
}

// Factors returns the local outlier factor of every row measured
// against the fitted training set.
func (l *LOF) Factors(data [][]float64) ([]float64, error) {
	if l.train == nil {
		return nil, ErrNotFitted
	}

	cols := len(l.train[0])
	factors := make([]float64, len(data))

	for i, row := range data {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has %d values, fitted on %d", ErrDimension, i, len(row), cols)
		}

		idx, dists := l.nearest(row, l.k, -1)

		var reach, nbLRD float64
		for j, nb := range idx {
			reach += math.Max(l.kdist[nb], dists[j])
			nbLRD += l.lrd[nb]
		}

		kf := float64(len(idx))
		lrd := 1 / (reach/kf + lrdEpsilon)
		factors[i] = nbLRD / kf / lrd
	}

	return factors, nil
}

// Predict labels every row of data: Outlier where its local outlier
// factor exceeds the offset, Inlier otherwise.
func (l *LOF) Predict(data [][]float64) ([]int, error) {
	factors, err := l.Factors(data)
	if err != nil {
		return nil, err
	}

	labels := make([]int, len(factors))
	for i, f := range factors {
		if f > l.offset {
			labels[i] = Outlier
		} else {
			labels[i] = Inlier
		}
	}

	return labels, nil
}
