// Package dds is the port to the double-dummy solver: the table type the
// core consumes, the holdings encoding the native library expects, and the
// solver implementations. The simulation engine depends only on the Solver
// interface, never on how a solver is loaded.
package dds

import (
	"errors"

	"bridgesim/deal"
)

// Table holds the double-dummy result of one board: the maximum tricks
// for declarer in every strain for every declaring seat, solved with all
// four hands visible.
type Table [5][4]int

// Tricks returns declarer's makeable tricks in the strain.
func (t Table) Tricks(strain deal.Strain, declarer deal.Seat) int {
	return t[strain][declarer]
}

// Valid reports whether every cell is a legal trick count. A solver
// returning an invalid table for a validated board violates its contract.
func (t Table) Valid() bool {
	for _, row := range t {
		for _, tricks := range row {
			if tricks < 0 || tricks > 13 {
				return false
			}
		}
	}
	return true
}

// BestStrain returns the strain in which the declarer makes the most
// tricks, and that trick count. Ties go to the earlier strain in solver
// order (spades highest, no-trump last).
func (t Table) BestStrain(declarer deal.Seat) (deal.Strain, int) {
	best := deal.StrainSpades
	tricks := t[deal.StrainSpades][declarer]
	for _, strain := range deal.Strains[1:] {
		if t[strain][declarer] > tricks {
			best, tricks = strain, t[strain][declarer]
		}
	}
	return best, tricks
}

// Solver computes the full double-dummy table for a board in one call.
// Implementations must not mutate the board and must not retain a
// reference to it past the call, so boards can be solved concurrently.
type Solver interface {
	Solve(deal.Board) (Table, error)
}

// LeadSolver computes declarer's tricks against each distinct opening
// lead from the hand left of declarer. Touching cards are collapsed to a
// single representative by the solver.
type LeadSolver interface {
	SolveLeads(b deal.Board, strain deal.Strain, declarer deal.Seat) (map[deal.Card]int, error)
}

// ErrUnavailable is returned when the native solver library was not
// compiled in or failed to initialise.
var ErrUnavailable = errors.New("dds: native solver unavailable (build with -tags dds)")
