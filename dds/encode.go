package dds

import (
	"fmt"

	"bridgesim/deal"
)

// Solve parameters, as the native SolveBoard call defines them.
const (
	targetMaxTricks   = -1 // find the maximum number of tricks
	solutionsBest     = 1  // one optimal card
	solutionsAllLeads = 3  // every distinct card, touching cards merged
	modeAuto          = 1
)

// Holdings encodes a board the way the native library's remainCards field
// expects it: one 16-bit mask per seat and suit, bit r set when the card
// of rank r is held (ranks run 2..14, the two lowest bits stay zero).
func Holdings(b deal.Board) [4][4]uint16 {
	var out [4][4]uint16
	for _, seat := range deal.Seats {
		for _, c := range b.Hand(seat).Cards() {
			out[seat][c.Suit] |= 1 << c.Rank
		}
	}
	return out
}

// statusText maps native SolveBoard return codes to their meanings.
var statusText = map[int]string{
	1:   "no fault",
	-1:  "unknown fault",
	-2:  "zero cards",
	-3:  "target > tricks left",
	-4:  "duplicated cards",
	-5:  "target < -1",
	-7:  "target > 13",
	-8:  "solutions < 1",
	-9:  "solutions > 3",
	-10: "> 52 cards",
	-11: "quality issue",
	-12: "invalid current trick",
	-13: "card played in current trick is also remaining",
	-14: "wrong number of remaining cards in a hand",
	-15: "thread index out of range",
}

// StatusError is a non-ok return code from the native solver. Codes
// describing a malformed board are per-trial failures; the engine discards
// the trial and keeps generating.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	text, ok := statusText[e.Code]
	if !ok {
		text = "unrecognised status"
	}
	return fmt.Sprintf("dds: solve failed with status %d (%s)", e.Code, text)
}
