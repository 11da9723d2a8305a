package scan

import "fmt"

// Matrix arranges one channel of a scan group row-wise: row i holds the
// channel values of scan i on the shared energy grid, and UIDs[i] names
// the scan that produced it.
type Matrix struct {
	Channel string
	Grid    []float64
	UIDs    []string
	Data    [][]float64
}

// Matrix extracts the named channel from an aligned group. Every scan
// must expose the channel on a grid of the master's length.
func (g *Group) Matrix(channel string) (*Matrix, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}

	grid := g.MasterScan().Energy

	m := &Matrix{
		Channel: channel,
		Grid:    grid,
		UIDs:    g.UIDs(),
		Data:    make([][]float64, len(g.Scans)),
	}

	for i, s := range g.Scans {
		values, err := s.Channel(channel)
		if err != nil {
			return nil, err
		}

		if len(values) != len(grid) {
			return nil, fmt.Errorf("%w: channel %q of scan %s has %d points, master grid has %d",
				ErrLengthMismatch, channel, s.UID, len(values), len(grid))
		}

		m.Data[i] = values
	}

	return m, nil
}

// NumRows returns the number of scans in the matrix.
func (m *Matrix) NumRows() int {
	return len(m.Data)
}

// NumCols returns the grid length.
func (m *Matrix) NumCols() int {
	return len(m.Grid)
}

// Clone returns a deep copy of the matrix. Row data is copied, so the
// clone can be transformed without aliasing the original.
func (m *Matrix) Clone() *Matrix {
	out := &Matrix{
		Channel: m.Channel,
		Grid:    append([]float64(nil), m.Grid...),
		UIDs:    append([]string(nil), m.UIDs...),
		Data:    make([][]float64, len(m.Data)),
	}
	for i, row := range m.Data {
		out.Data[i] = append([]float64(nil), row...)
	}

	return out
}

// Select returns a new matrix containing only the rows for which
// keep[i] is true, preserving order and uid association.
func (m *Matrix) Select(keep []bool) *Matrix {
	out := &Matrix{
		Channel: m.Channel,
		Grid:    m.Grid,
	}
	for i, row := range m.Data {
		if i < len(keep) && keep[i] {
			out.UIDs = append(out.UIDs, m.UIDs[i])
			out.Data = append(out.Data, row)
		}
	}

	return out
}
