package deal

import (
	"fmt"
	"strings"
)

// Vulnerability of a board. Reporting metadata only; the generation,
// predicate and oracle contracts never read it.
type Vulnerability uint8

const (
	NoneVul Vulnerability = iota
	NSVul
	EWVul
	BothVul
)

func (v Vulnerability) String() string {
	switch v {
	case NoneVul:
		return "None"
	case NSVul:
		return "NS"
	case EWVul:
		return "EW"
	case BothVul:
		return "Both"
	}
	return "?"
}

// Board is a full deal: four pairwise-disjoint 13-card hands covering the
// 52-card deck. Immutable once constructed.
type Board struct {
	hands [4]Hand

	// Optional table context, attached for reporting.
	Dealer Seat
	Vul    Vulnerability
}

// NewBoard builds a board from four hands, validating that together they
// form an exact partition of the deck.
func NewBoard(north, east, south, west Hand) (Board, error) {
	hands := [4]Hand{north, east, south, west}
	var seen [4][15]bool
	total := 0
	for seat, h := range hands {
		if h.Len() != 13 {
			return Board{}, fmt.Errorf("%w: %s holds %d cards", ErrInvalidBoard, Seat(seat), h.Len())
		}
		for _, c := range h.cards {
			if seen[c.Suit][c.Rank] {
				return Board{}, fmt.Errorf("%w: card %s dealt twice", ErrInvalidBoard, c)
			}
			seen[c.Suit][c.Rank] = true
			total++
		}
	}
	if total != 52 {
		return Board{}, fmt.Errorf("%w: %d cards dealt", ErrInvalidBoard, total)
	}
	return Board{hands: hands}, nil
}

// ParseBoard parses four dotted hand strings in seat order N, E, S, W.
func ParseBoard(hands [4]string) (Board, error) {
	var parsed [4]Hand
	for i, s := range hands {
		h, err := ParseHand(s)
		if err != nil {
			return Board{}, fmt.Errorf("%s hand: %w", Seat(i), err)
		}
		parsed[i] = h
	}
	return NewBoard(parsed[0], parsed[1], parsed[2], parsed[3])
}

// Hand returns the hand held by the seat.
func (b Board) Hand(s Seat) Hand {
	return b.hands[s]
}

// North returns the north hand.
func (b Board) North() Hand { return b.hands[North] }

// East returns the east hand.
func (b Board) East() Hand { return b.hands[East] }

// South returns the south hand.
func (b Board) South() Hand { return b.hands[South] }

// West returns the west hand.
func (b Board) West() Hand { return b.hands[West] }

// String renders the four hands one per line, prefixed by the seat letter.
func (b Board) String() string {
	var out strings.Builder
	for _, seat := range Seats {
		if seat > North {
			out.WriteByte('\n')
		}
		out.WriteString(seat.String())
		out.WriteByte(':')
		out.WriteString(b.hands[seat].String())
	}
	return out.String()
}
