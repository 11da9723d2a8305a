package scan

import (
	"errors"
	"fmt"
	"time"
)

// Errors returned by scan group validation.
var (
	ErrEmptyGroup     = errors.New("scan: group contains no scans")
	ErrMissingChannel = errors.New("scan: channel not present on scan")
	ErrLengthMismatch = errors.New("scan: channel length differs from energy grid")
	ErrMasterIndex    = errors.New("scan: master index out of range")
)

// Scan is a single measurement trace: an energy grid and one or more
// named channels of the same length. UID identifies the scan across
// filtering and reordering; Time is optional acquisition metadata.
type Scan struct {
	UID      string
	Time     time.Time
	Energy   []float64
	Channels map[string][]float64
}

// Channel returns the named channel values.
func (s *Scan) Channel(name string) ([]float64, error) {
	values, ok := s.Channels[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q on scan %s", ErrMissingChannel, name, s.UID)
	}

	return values, nil
}

// Validate checks that every channel has the same length as the energy grid.
func (s *Scan) Validate() error {
	for name, values := range s.Channels {
		if len(values) != len(s.Energy) {
			return fmt.Errorf("%w: channel %q has %d points, grid has %d (scan %s)",
				ErrLengthMismatch, name, len(values), len(s.Energy), s.UID)
		}
	}

	return nil
}

// Clone returns a deep copy of the scan.
func (s *Scan) Clone() *Scan {
	out := &Scan{
		UID:      s.UID,
		Time:     s.Time,
		Energy:   append([]float64(nil), s.Energy...),
		Channels: make(map[string][]float64, len(s.Channels)),
	}
	for name, values := range s.Channels {
		out.Channels[name] = append([]float64(nil), values...)
	}

	return out
}

// Group is an ordered collection of repeated scans of the same sample.
// Master designates the scan whose energy grid is the reference for
// alignment and whose row anchors prenormalization.
type Group struct {
	Scans  []*Scan
	Master int
}

// NewGroup builds a group with the given master index and validates it.
func NewGroup(scans []*Scan, master int) (*Group, error) {
	g := &Group{Scans: scans, Master: master}

	err := g.Validate()
	if err != nil {
		return nil, err
	}

	return g, nil
}

// Validate checks the group invariants: non-empty, master in range, and
// every scan internally consistent.
func (g *Group) Validate() error {
	if len(g.Scans) == 0 {
		return ErrEmptyGroup
	}

	if g.Master < 0 || g.Master >= len(g.Scans) {
		return fmt.Errorf("%w: %d with %d scans", ErrMasterIndex, g.Master, len(g.Scans))
	}

	for _, s := range g.Scans {
		if err := s.Validate(); err != nil {
			return err
		}
	}

	return nil
}

// UIDs returns the scan uids in group order.
func (g *Group) UIDs() []string {
	uids := make([]string, len(g.Scans))
	for i, s := range g.Scans {
		uids[i] = s.UID
	}

	return uids
}

// MasterScan returns the designated master scan.
func (g *Group) MasterScan() *Scan {
	return g.Scans[g.Master]
}
