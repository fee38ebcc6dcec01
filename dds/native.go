//go:build dds

package dds

/*
#cgo LDFLAGS: -ldds
#include <dll.h>
*/
import "C"

import (
	"sync"

	"bridgesim/deal"
)

var nativeInit sync.Once

// NativeSolver solves boards through the dds C library. Safe for
// concurrent use: the library manages its own thread pool and each call
// owns its argument structs.
type NativeSolver struct{}

// NewNativeSolver initialises the dds library once and returns a solver.
func NewNativeSolver() (*NativeSolver, error) {
	nativeInit.Do(func() {
		// 0 lets the library size its thread pool from the machine.
		C.SetMaxThreads(0)
	})
	return &NativeSolver{}, nil
}

// Solve computes the full 5x4 table in a single CalcDDtable call, the
// library's shared-search entry point for all strains and declarers.
func (s *NativeSolver) Solve(b deal.Board) (Table, error) {
	var tableDeal C.struct_ddTableDeal
	holdings := Holdings(b)
	for seat := 0; seat < 4; seat++ {
		for suit := 0; suit < 4; suit++ {
			tableDeal.cards[seat][suit] = C.uint(holdings[seat][suit])
		}
	}

	var results C.struct_ddTableResults
	status := int(C.CalcDDtable(tableDeal, &results))
	if status != 1 {
		return Table{}, &StatusError{Code: status}
	}

	var t Table
	for strain := 0; strain < 5; strain++ {
		for declarer := 0; declarer < 4; declarer++ {
			t[strain][declarer] = int(results.resTable[strain][declarer])
		}
	}
	return t, nil
}

// SolveLeads solves the board once per distinct opening lead with the
// leader to play, returning declarer's tricks for each returned card.
func (s *NativeSolver) SolveLeads(b deal.Board, strain deal.Strain, declarer deal.Seat) (map[deal.Card]int, error) {
	var dl C.struct_deal
	dl.trump = C.int(strain)
	dl.first = C.int(declarer.LHO())
	for i := 0; i < 3; i++ {
		dl.currentTrickSuit[i] = 0
		dl.currentTrickRank[i] = 0
	}
	holdings := Holdings(b)
	for seat := 0; seat < 4; seat++ {
		for suit := 0; suit < 4; suit++ {
			dl.remainCards[seat][suit] = C.uint(holdings[seat][suit])
		}
	}

	var fut C.struct_futureTricks
	status := int(C.SolveBoard(dl, targetMaxTricks, solutionsAllLeads, modeAuto, &fut, 0))
	if status != 1 {
		return nil, &StatusError{Code: status}
	}

	out := make(map[deal.Card]int, int(fut.cards))
	for i := 0; i < int(fut.cards); i++ {
		c := deal.Card{
			Rank: deal.Rank(fut.rank[i]),
			Suit: deal.Suit(fut.suit[i]),
		}
		// score is the tricks won by the side on lead.
		out[c] = 13 - int(fut.score[i])
	}
	return out, nil
}
