package grid

import (
	"errors"
	"fmt"
	"sort"

	"github.com/matthewcarbone/iss-xas-tools/scan"
)

// Errors returned by alignment functions.
var (
	ErrTooFewPoints = errors.New("grid: energy grid needs at least 2 points")
	ErrNotAscending = errors.New("grid: energy grid is not strictly ascending")
)

// Validate checks that x is a usable interpolation grid: at least two
// points, strictly ascending.
func Validate(x []float64) error {
	if len(x) < 2 {
		return fmt.Errorf("%w: got %d", ErrTooFewPoints, len(x))
	}

	for i := 1; i < len(x); i++ {
		if x[i] <= x[i-1] {
			return fmt.Errorf("%w: x[%d]=%g, x[%d]=%g", ErrNotAscending, i-1, x[i-1], i, x[i])
		}
	}

	return nil
}

// Interp evaluates the piecewise-linear curve through (x, y) at every
// point of xq and returns the interpolated values. Query points outside
// [x[0], x[len(x)-1]] are clamped to the boundary values. Query points
// that coincide with a knot return the knot value exactly.
//
// x must be strictly ascending with at least 2 points, and y must have
// the same length as x.
func Interp(xq, x, y []float64) ([]float64, error) {
	err := Validate(x)
	if err != nil {
		return nil, err
	}

	if len(y) != len(x) {
		return nil, fmt.Errorf("%w: %d values for %d grid points",
			scan.ErrLengthMismatch, len(y), len(x))
	}

	out := make([]float64, len(xq))
	for i, q := range xq {
		out[i] = interpAt(q, x, y)
	}

	return out, nil
}

// interpAt evaluates a single query point against a validated grid.
func interpAt(q float64, x, y []float64) float64 {
	n := len(x)

	if q <= x[0] {
		return y[0]
	}

	if q >= x[n-1] {
		return y[n-1]
	}

	// Index of the first knot >= q; q lies in (x[j-1], x[j]].
	j := sort.SearchFloat64s(x, q)
	if x[j] == q {
		return y[j]
	}

	t := (q - x[j-1]) / (x[j] - x[j-1])

	return y[j-1] + t*(y[j]-y[j-1])
}

// Align resamples every scan of the group onto the master scan's energy
// grid and returns a new group; the input group is not modified. All
// channels of each scan are interpolated; the master scan is copied
// unchanged.
func Align(g *scan.Group) (*scan.Group, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}

	master := g.MasterScan().Energy

	err := Validate(master)
	if err != nil {
		return nil, fmt.Errorf("master scan %s: %w", g.MasterScan().UID, err)
	}

	out := &scan.Group{
		Scans:  make([]*scan.Scan, len(g.Scans)),
		Master: g.Master,
	}

	for i, s := range g.Scans {
		if i == g.Master {
			out.Scans[i] = s.Clone()
			continue
		}

		if err := Validate(s.Energy); err != nil {
			return nil, fmt.Errorf("scan %s: %w", s.UID, err)
		}

		aligned := &scan.Scan{
			UID:      s.UID,
			Time:     s.Time,
			Energy:   append([]float64(nil), master...),
			Channels: make(map[string][]float64, len(s.Channels)),
		}

		for name, values := range s.Channels {
			resampled, err := Interp(master, s.Energy, values)
			if err != nil {
				return nil, fmt.Errorf("scan %s channel %q: %w", s.UID, name, err)
			}

			aligned.Channels[name] = resampled
		}

		out.Scans[i] = aligned
	}

	return out, nil
}
