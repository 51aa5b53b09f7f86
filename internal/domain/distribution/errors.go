package distribution

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidRoster  = errors.New("invalid roster")
	ErrMalformedOrder = errors.New("malformed order")
)

// InvalidRosterError rejects a roster that cannot receive the run's units.
type InvalidRosterError struct {
	Reason string
}

func (e *InvalidRosterError) Error() string { return "invalid roster: " + e.Reason }

func (e *InvalidRosterError) Unwrap() error { return ErrInvalidRoster }

// MalformedOrderError rejects an order entry before the pile pool is built.
type MalformedOrderError struct {
	OrderCode string
	Size      string
	Count     int
	Reason    string
}

func (e *MalformedOrderError) Error() string {
	return fmt.Sprintf("malformed order %q (size %q, count %d): %s", e.OrderCode, e.Size, e.Count, e.Reason)
}

func (e *MalformedOrderError) Unwrap() error { return ErrMalformedOrder }

// ShortfallWarning flags a worker that received fewer units than its quota.
// It only appears when upstream unit accounting was wrong; the run still completes.
type ShortfallWarning struct {
	Worker   string `json:"worker"`
	Target   int    `json:"target"`
	Assigned int    `json:"assigned"`
}

func (w ShortfallWarning) Missing() int { return w.Target - w.Assigned }

func (w ShortfallWarning) String() string {
	return fmt.Sprintf("allocation shortfall for %s: assigned %d of %d", w.Worker, w.Assigned, w.Target)
}
