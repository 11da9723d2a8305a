package merge

import (
	"fmt"

	"github.com/matthewcarbone/iss-xas-tools/grid"
	"github.com/matthewcarbone/iss-xas-tools/prenorm"
	"github.com/matthewcarbone/iss-xas-tools/robust"
	"github.com/matthewcarbone/iss-xas-tools/scan"
)

// SimpleChannel holds the trimmed-deviation outcome for one channel.
type SimpleChannel struct {
	Average  []float64
	Scores   []float64
	Inliers  []string
	Outliers []string
}

// SimpleResult maps channels to their trimmed-deviation outcomes.
type SimpleResult struct {
	Grid     []float64
	Channels map[string]*SimpleChannel
	Errors   map[string]error
}

// Simple averages a scan group per channel using only the trimmed
// deviation score: rows whose mean squared standardized deviation from
// the per-column trimmed mean exceeds threshold are excluded from the
// average. This is the lightweight alternative to Reject for routine
// merging where a density fit is not warranted.
//
// Scoring runs on the prenormalized matrix; averaging uses the original
// values, as in Reject.
func Simple(g *scan.Group, channels []string, trimFraction, threshold float64) (*SimpleResult, error) {
	aligned, err := grid.Align(g)
	if err != nil {
		return nil, err
	}

	res := &SimpleResult{
		Grid:     aligned.MasterScan().Energy,
		Channels: make(map[string]*SimpleChannel, len(channels)),
		Errors:   make(map[string]error),
	}

	for _, ch := range channels {
		chRes, err := simpleChannel(aligned, ch, trimFraction, threshold)
		if err != nil {
			res.Errors[ch] = fmt.Errorf("channel %q: %w", ch, err)
			continue
		}

		res.Channels[ch] = chRes
	}

	return res, nil
}

// simpleChannel scores and averages a single channel.
func simpleChannel(aligned *scan.Group, channel string, trimFraction, threshold float64) (*SimpleChannel, error) {
	m, err := aligned.Matrix(channel)
	if err != nil {
		return nil, err
	}

	norm, err := prenorm.Normalize(m, aligned.Master)
	if err != nil {
		return nil, err
	}

	scores, outliers, err := robust.TrimmedDeviation(norm.Data, trimFraction, threshold)
	if err != nil {
		return nil, err
	}

	chRes := &SimpleChannel{Scores: scores}

	keep := make([]bool, len(outliers))
	for i, out := range outliers {
		if out {
			chRes.Outliers = append(chRes.Outliers, m.UIDs[i])
		} else {
			keep[i] = true
		}
	}

	sub := m.Select(keep)
	chRes.Inliers = sub.UIDs
	chRes.Average = averageRows(sub.Data, m.NumCols())

	return chRes, nil
}
