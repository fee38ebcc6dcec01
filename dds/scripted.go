package dds

import (
	"sync"

	"bridgesim/deal"
)

// ScriptedSolver is an in-memory deterministic solver for tests and demo
// runs. It delegates to caller-supplied functions and counts calls, so a
// test can assert the oracle was consulted exactly once per acceptance.
type ScriptedSolver struct {
	fn      func(deal.Board) (Table, error)
	leadsFn func(deal.Board, deal.Strain, deal.Seat) (map[deal.Card]int, error)

	mu    sync.Mutex
	calls int
}

// NewScriptedSolver builds a solver around fn.
func NewScriptedSolver(fn func(deal.Board) (Table, error)) *ScriptedSolver {
	return &ScriptedSolver{fn: fn}
}

// WithLeads adds a lead-solving function and returns the same solver.
func (s *ScriptedSolver) WithLeads(fn func(deal.Board, deal.Strain, deal.Seat) (map[deal.Card]int, error)) *ScriptedSolver {
	s.leadsFn = fn
	return s
}

// Solve runs the scripted function and records the call.
func (s *ScriptedSolver) Solve(b deal.Board) (Table, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	return s.fn(b)
}

// SolveLeads runs the scripted lead function, or derives a flat answer
// from the table when none was supplied: every card in the leader's hand
// yields the table's trick count.
func (s *ScriptedSolver) SolveLeads(b deal.Board, strain deal.Strain, declarer deal.Seat) (map[deal.Card]int, error) {
	if s.leadsFn != nil {
		return s.leadsFn(b, strain, declarer)
	}
	table, err := s.Solve(b)
	if err != nil {
		return nil, err
	}
	out := map[deal.Card]int{}
	for _, c := range b.Hand(declarer.LHO()).Cards() {
		out[c] = table.Tricks(strain, declarer)
	}
	return out, nil
}

// Calls returns how many times Solve ran.
func (s *ScriptedSolver) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// FixedSolver returns a solver that answers every board with the same
// table.
func FixedSolver(t Table) *ScriptedSolver {
	return NewScriptedSolver(func(deal.Board) (Table, error) {
		return t, nil
	})
}

// HeuristicSolver returns a crude deterministic estimator used by demo
// runs when the native library is absent: tricks scale with the declaring
// side's combined points, plus a length bonus for an eight-card or longer
// trump fit. Not double-dummy accurate, only plausible.
func HeuristicSolver() *ScriptedSolver {
	return NewScriptedSolver(func(b deal.Board) (Table, error) {
		var t Table
		for _, strain := range deal.Strains {
			for _, declarer := range deal.Seats {
				side := b.Hand(declarer).HCP() + b.Hand(declarer.Partner()).HCP()
				tricks := side * 13 / 40
				if strain != deal.NoTrump {
					fit := b.Hand(declarer).SuitLength(deal.Suit(strain)) +
						b.Hand(declarer.Partner()).SuitLength(deal.Suit(strain))
					if fit >= 8 {
						tricks += fit - 7
					}
				}
				if tricks > 13 {
					tricks = 13
				}
				t[strain][declarer] = tricks
			}
		}
		return t, nil
	})
}
