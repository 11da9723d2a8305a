package prenorm

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-vecmath"

	"github.com/matthewcarbone/iss-xas-tools/scan"
)

// ErrMasterRow indicates a master row index outside the matrix.
var ErrMasterRow = errors.New("prenorm: master row index out of range")

// FitAffine solves the ordinary least-squares problem for scalars (a, b)
// minimizing the squared error of a + b·row against ref over all points:
//
//	b = (n·Σ(r·m) − Σr·Σm) / (n·Σr² − (Σr)²)
//	a = (Σm − b·Σr) / n
//
// ok is false when row has zero variance, in which case the system is
// ill-conditioned and no fit is returned.
func FitAffine(row, ref []float64) (a, b float64, ok bool) {
	n := float64(len(row))
	if n == 0 || len(row) != len(ref) {
		return 0, 0, false
	}

	var sr, sm, srr, srm float64
	for i, r := range row {
		sr += r
		sm += ref[i]
		srr += r * r
		srm += r * ref[i]
	}

	det := n*srr - sr*sr
	if det == 0 {
		return 0, 0, false
	}

	b = (n*srm - sr*sm) / det
	a = (sm - b*sr) / n

	return a, b, true
}

// Normalize returns a new matrix in which every row except the master
// has been replaced by its affine least-squares fit to the master row.
// The master row and the input matrix are left untouched.
//
// Rows with zero variance cannot be fitted and pass through unchanged.
func Normalize(m *scan.Matrix, master int) (*scan.Matrix, error) {
	if master < 0 || master >= m.NumRows() {
		return nil, fmt.Errorf("%w: %d with %d rows", ErrMasterRow, master, m.NumRows())
	}

	out := m.Clone()
	ref := m.Data[master]

	for i, row := range m.Data {
		if i == master {
			continue
		}

		a, b, ok := FitAffine(row, ref)
		if !ok {
			continue
		}

		fitted := out.Data[i]
		vecmath.ScaleBlock(fitted, row, b)
		for j := range fitted {
			fitted[j] += a
		}
	}

	return out, nil
}
