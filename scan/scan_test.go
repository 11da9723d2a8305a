package scan

import (
	"errors"
	"testing"
)

func testScan(uid string, energy []float64, channels map[string][]float64) *Scan {
	return &Scan{UID: uid, Energy: energy, Channels: channels}
}

func TestGroupValidate(t *testing.T) {
	good := testScan("a", []float64{1, 2, 3}, map[string][]float64{
		"mut": {0.1, 0.2, 0.3},
	})

	tests := []struct {
		name    string
		group   Group
		wantErr error
	}{
		{"valid", Group{Scans: []*Scan{good}, Master: 0}, nil},
		{"empty", Group{}, ErrEmptyGroup},
		{"master negative", Group{Scans: []*Scan{good}, Master: -1}, ErrMasterIndex},
		{"master too large", Group{Scans: []*Scan{good}, Master: 1}, ErrMasterIndex},
		{
			"ragged channel",
			Group{Scans: []*Scan{testScan("b", []float64{1, 2, 3}, map[string][]float64{
				"mut": {0.1, 0.2},
			})}},
			ErrLengthMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.group.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestScanChannelMissing(t *testing.T) {
	s := testScan("a", []float64{1, 2}, map[string][]float64{"mut": {1, 2}})

	if _, err := s.Channel("muf"); !errors.Is(err, ErrMissingChannel) {
		t.Errorf("Channel(muf) error = %v, want ErrMissingChannel", err)
	}

	values, err := s.Channel("mut")
	if err != nil {
		t.Fatal(err)
	}

	if len(values) != 2 {
		t.Errorf("len = %d, want 2", len(values))
	}
}

func TestScanCloneIndependent(t *testing.T) {
	s := testScan("a", []float64{1, 2}, map[string][]float64{"mut": {1, 2}})
	c := s.Clone()

	c.Energy[0] = 99
	c.Channels["mut"][0] = 99

	if s.Energy[0] != 1 || s.Channels["mut"][0] != 1 {
		t.Error("Clone aliases the original scan")
	}
}

func TestGroupMatrix(t *testing.T) {
	g := &Group{
		Scans: []*Scan{
			testScan("u1", []float64{1, 2, 3}, map[string][]float64{"mut": {10, 11, 12}}),
			testScan("u2", []float64{1, 2, 3}, map[string][]float64{"mut": {20, 21, 22}}),
		},
	}

	m, err := g.Matrix("mut")
	if err != nil {
		t.Fatal(err)
	}

	if m.NumRows() != 2 || m.NumCols() != 3 {
		t.Fatalf("shape = %dx%d, want 2x3", m.NumRows(), m.NumCols())
	}

	if m.UIDs[0] != "u1" || m.UIDs[1] != "u2" {
		t.Errorf("UIDs = %v", m.UIDs)
	}

	if m.Data[1][2] != 22 {
		t.Errorf("Data[1][2] = %g, want 22", m.Data[1][2])
	}
}

func TestGroupMatrixMissingChannel(t *testing.T) {
	g := &Group{
		Scans: []*Scan{
			testScan("u1", []float64{1, 2}, map[string][]float64{"mut": {1, 2}}),
			testScan("u2", []float64{1, 2}, map[string][]float64{"muf": {1, 2}}),
		},
	}

	if _, err := g.Matrix("mut"); !errors.Is(err, ErrMissingChannel) {
		t.Errorf("Matrix error = %v, want ErrMissingChannel", err)
	}
}

func TestMatrixSelect(t *testing.T) {
	m := &Matrix{
		Channel: "mut",
		Grid:    []float64{1, 2},
		UIDs:    []string{"a", "b", "c"},
		Data:    [][]float64{{1, 1}, {2, 2}, {3, 3}},
	}

	sel := m.Select([]bool{true, false, true})

	if len(sel.Data) != 2 {
		t.Fatalf("kept %d rows, want 2", len(sel.Data))
	}

	if sel.UIDs[0] != "a" || sel.UIDs[1] != "c" {
		t.Errorf("UIDs = %v, want [a c]", sel.UIDs)
	}

	if sel.Data[1][0] != 3 {
		t.Errorf("Data[1][0] = %g, want 3", sel.Data[1][0])
	}
}

func TestMatrixCloneIndependent(t *testing.T) {
	m := &Matrix{
		Channel: "mut",
		Grid:    []float64{1, 2},
		UIDs:    []string{"a"},
		Data:    [][]float64{{5, 6}},
	}

	c := m.Clone()
	c.Data[0][0] = 99

	if m.Data[0][0] != 5 {
		t.Error("Clone aliases the original matrix")
	}
}
