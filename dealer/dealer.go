// Package dealer generates uniformly random bridge boards, optionally
// conditioned on pre-fixed cards and filtered by caller constraints.
package dealer

import (
	"errors"
	"fmt"
	"math/rand"

	"bridgesim/deal"
)

// Predicate accepts or rejects a fully-formed board. It must be total,
// pure and side-effect free; the engine treats it as a black box.
type Predicate func(deal.Board) bool

// HandFilter accepts or rejects a single completed hand. Filters allow a
// board to be rejected before the remaining hands are assembled; they must
// be implied by the full predicate so only performance changes, never the
// distribution over accepted boards.
type HandFilter func(deal.Hand) bool

// ErrInvalidLayout reports pre-fixed cards that cannot start a deal.
var ErrInvalidLayout = errors.New("dealer: invalid layout")

// Layout holds the pre-fixed portion of a deal: the cards already assigned
// to seats and the residual deck still to be distributed. Validated once
// at construction so generation can never fail mid-shuffle.
type Layout struct {
	fixed    [4]deal.Hand
	need     [4]int
	residual []deal.Card
}

// NewLayout builds a layout from partial hands per seat. Seats absent from
// the map are dealt all 13 cards. Duplicated cards anywhere across the
// fixed hands are a configuration error.
func NewLayout(fixed map[deal.Seat]deal.Hand) (*Layout, error) {
	l := &Layout{}
	var seen [4][15]bool
	for seat, h := range fixed {
		if seat > deal.West {
			return nil, fmt.Errorf("%w: unknown seat %d", ErrInvalidLayout, seat)
		}
		for _, c := range h.Cards() {
			if seen[c.Suit][c.Rank] {
				return nil, fmt.Errorf("%w: card %s fixed twice", ErrInvalidLayout, c)
			}
			seen[c.Suit][c.Rank] = true
		}
		l.fixed[seat] = h
	}
	for seat := range l.need {
		l.need[seat] = 13 - l.fixed[seat].Len()
	}
	for _, c := range deal.Deck() {
		if !seen[c.Suit][c.Rank] {
			l.residual = append(l.residual, c)
		}
	}
	return l, nil
}

// Need returns the number of cards still owed to the seat.
func (l *Layout) Need(s deal.Seat) int {
	return l.need[s]
}

// Fixed returns the pre-fixed cards of the seat.
func (l *Layout) Fixed(s deal.Seat) deal.Hand {
	return l.fixed[s]
}

// Residual returns a copy of the undealt portion of the deck.
func (l *Layout) Residual() []deal.Card {
	out := make([]deal.Card, len(l.residual))
	copy(out, l.residual)
	return out
}

// Deal produces one board with every residual card placed uniformly at
// random: the residual deck is shuffled (Fisher-Yates) and sliced into
// contiguous per-seat blocks in seat order, so each permutation maps to
// exactly one board consistent with the fixed cards. Entropy comes only
// from rng; a fixed seed reproduces the sequence of boards.
func (l *Layout) Deal(rng *rand.Rand) deal.Board {
	b, _ := l.DealFiltered(rng, [4]HandFilter{})
	return b
}

// DealFiltered deals like Deal but applies per-seat filters to each hand
// as soon as its block is sliced, allowing early rejection. Returns
// ok=false when a filter rejects; the board value is then zero.
func (l *Layout) DealFiltered(rng *rand.Rand, filters [4]HandFilter) (deal.Board, bool) {
	shuffled := make([]deal.Card, len(l.residual))
	copy(shuffled, l.residual)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	var hands [4]deal.Hand
	offset := 0
	for _, seat := range deal.Seats {
		cards := append(l.fixed[seat].Cards(), shuffled[offset:offset+l.need[seat]]...)
		offset += l.need[seat]

		h, err := deal.NewHand(cards)
		if err != nil {
			// Unreachable: the layout was validated at construction.
			panic(fmt.Sprintf("dealer: %v", err))
		}
		hands[seat] = h

		if f := filters[seat]; f != nil && !f(h) {
			return deal.Board{}, false
		}
	}

	b, err := deal.NewBoard(hands[deal.North], hands[deal.East], hands[deal.South], hands[deal.West])
	if err != nil {
		panic(fmt.Sprintf("dealer: %v", err))
	}
	return b, true
}
