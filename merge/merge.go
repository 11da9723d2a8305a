package merge

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"

	"github.com/matthewcarbone/iss-xas-tools/grid"
	"github.com/matthewcarbone/iss-xas-tools/outlier"
	"github.com/matthewcarbone/iss-xas-tools/prenorm"
	"github.com/matthewcarbone/iss-xas-tools/scan"
)

// Method identifies an outlier-rejection strategy.
type Method string

// Rejection strategies run by Reject.
const (
	MethodTrimmedDensity Method = "trimmed_density"
	MethodChiSquare      Method = "chi_square"
	MethodCombined       Method = "combined"
)

// Methods lists all strategies in a stable order.
var Methods = []Method{MethodTrimmedDensity, MethodChiSquare, MethodCombined}

// MethodResult holds the outcome of one rejection strategy on one
// channel. Average is the column-wise mean of the inlier rows of the
// original (pre-normalization) data; Scores is nil for strategies that
// do not produce a per-row score.
type MethodResult struct {
	Method   Method
	Average  []float64
	Inliers  []string
	Outliers []string
	Labels   []int
	Scores   []float64
}

// ChannelResult holds all strategy outcomes for one channel, plus the
// normalized matrix handed to the classifiers for external diagnostics.
type ChannelResult struct {
	Channel    string
	Grid       []float64
	UIDs       []string
	Normalized *scan.Matrix
	Methods    map[Method]*MethodResult
}

// Result maps channels to their outcomes. Channels that failed carry an
// entry in Errors instead; results of other channels are unaffected.
type Result struct {
	Grid     []float64
	Channels map[string]*ChannelResult
	Errors   map[string]error
}

// Reject aligns the group, classifies every scan per channel with all
// rejection strategies, and averages the inliers of each strategy.
//
// Group-level problems (empty group, invalid master grid, bad scan
// grids) fail immediately. Channel-level problems are collected in
// Result.Errors under the channel name and leave other channels intact.
func Reject(g *scan.Group, channels []string, opts ...Option) (*Result, error) {
	cfg := ApplyOptions(opts...)

	aligned, err := grid.Align(g)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Grid:     aligned.MasterScan().Energy,
		Channels: make(map[string]*ChannelResult, len(channels)),
		Errors:   make(map[string]error),
	}

	for _, ch := range channels {
		chRes, err := rejectChannel(aligned, ch, cfg)
		if err != nil {
			res.Errors[ch] = fmt.Errorf("channel %q: %w", ch, err)
			continue
		}

		res.Channels[ch] = chRes
	}

	return res, nil
}

// rejectChannel runs all strategies on a single channel of an aligned
// group.
func rejectChannel(aligned *scan.Group, channel string, cfg Config) (*ChannelResult, error) {
	m, err := aligned.Matrix(channel)
	if err != nil {
		return nil, err
	}

	norm, err := prenorm.Normalize(m, aligned.Master)
	if err != nil {
		return nil, err
	}

	chRes := &ChannelResult{
		Channel:    channel,
		Grid:       m.Grid,
		UIDs:       m.UIDs,
		Normalized: norm,
		Methods:    make(map[Method]*MethodResult, len(Methods)),
	}

	lofOpts := []outlier.LOFOption{
		outlier.WithNeighbors(cfg.Neighbors),
		outlier.WithOffset(cfg.LOFOffset),
	}

	density := outlier.NewClassifier(outlier.NewLOF(lofOpts...),
		outlier.WithTrimFraction(cfg.TrimFraction),
		outlier.WithTrimMethod(cfg.TrimMethod),
	)

	labels, err := density.Classify(norm.Data)
	if err != nil {
		return nil, err
	}

	chRes.Methods[MethodTrimmedDensity] = methodResult(MethodTrimmedDensity, m, labels, nil)

	labels, scores, err := outlier.RejectChiSquare(norm.Data, cfg.ChiSquareThreshold)
	if err != nil {
		return nil, err
	}

	chRes.Methods[MethodChiSquare] = methodResult(MethodChiSquare, m, labels, scores)

	labels, err = outlier.Combined(outlier.NewLOF(lofOpts...), norm.Data, cfg.ChiSquareThreshold)
	if err != nil {
		return nil, err
	}

	chRes.Methods[MethodCombined] = methodResult(MethodCombined, m, labels, nil)

	return chRes, nil
}

// methodResult partitions the scan uids by label and averages the
// inlier rows of the original matrix.
func methodResult(method Method, m *scan.Matrix, labels []int, scores []float64) *MethodResult {
	r := &MethodResult{
		Method: method,
		Labels: labels,
		Scores: scores,
	}

	keep := make([]bool, len(labels))
	for i, label := range labels {
		if label > 0 {
			keep[i] = true
		} else {
			r.Outliers = append(r.Outliers, m.UIDs[i])
		}
	}

	sub := m.Select(keep)
	r.Inliers = sub.UIDs
	r.Average = averageRows(sub.Data, m.NumCols())

	return r
}

// averageRows returns the column-wise mean of rows, or nil when there
// are no rows to average.
func averageRows(rows [][]float64, cols int) []float64 {
	if len(rows) == 0 {
		return nil
	}

	avg := make([]float64, cols)
	for _, row := range rows {
		vecmath.AddBlockInPlace(avg, row)
	}

	vecmath.ScaleBlock(avg, avg, 1/float64(len(rows)))

	return avg
}
