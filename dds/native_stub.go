//go:build !dds

package dds

import (
	"bridgesim/deal"
)

// NativeSolver is unavailable in builds without the dds tag.
type NativeSolver struct{}

// NewNativeSolver reports the native library as unavailable. Callers
// surface this once at simulation start rather than per trial.
func NewNativeSolver() (*NativeSolver, error) {
	return nil, ErrUnavailable
}

// Solve always fails in builds without the dds tag.
func (s *NativeSolver) Solve(deal.Board) (Table, error) {
	return Table{}, ErrUnavailable
}

// SolveLeads always fails in builds without the dds tag.
func (s *NativeSolver) SolveLeads(deal.Board, deal.Strain, deal.Seat) (map[deal.Card]int, error) {
	return nil, ErrUnavailable
}
