package deal

import (
	"fmt"
	"strings"
)

// Hand is a set of up to 13 unique cards. Partial hands occur while a
// layout is being specified; a Hand inside a Board always holds exactly 13.
// Derived attributes (points, shape, holdings) are computed on demand.
type Hand struct {
	cards []Card
}

// NewHand builds a hand from the given cards. It rejects duplicates and
// hands of more than 13 cards.
func NewHand(cards []Card) (Hand, error) {
	if len(cards) > 13 {
		return Hand{}, fmt.Errorf("%w: %d cards", ErrInvalidHand, len(cards))
	}
	var seen [4][15]bool
	for _, c := range cards {
		if seen[c.Suit][c.Rank] {
			return Hand{}, fmt.Errorf("%w: duplicated card %s", ErrInvalidHand, c)
		}
		seen[c.Suit][c.Rank] = true
	}
	h := Hand{cards: make([]Card, len(cards))}
	copy(h.cards, cards)
	return h, nil
}

// ParseHand parses a dotted hand string "spades.hearts.diamonds.clubs",
// e.g. "AQ32.K4.T987.J52". Empty suits are allowed ("AKQJT98765432...").
func ParseHand(s string) (Hand, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 4 {
		return Hand{}, fmt.Errorf("%w: %q is not dotted into four suits", ErrInvalidHand, s)
	}
	cards := make([]Card, 0, 13)
	for suit, holding := range parts {
		for i := 0; i < len(holding); i++ {
			rank, err := parseRank(holding[i])
			if err != nil {
				return Hand{}, err
			}
			cards = append(cards, Card{Rank: rank, Suit: Suit(suit)})
		}
	}
	return NewHand(cards)
}

// Len returns the number of cards held.
func (h Hand) Len() int {
	return len(h.cards)
}

// Cards returns a copy of the cards in hand order.
func (h Hand) Cards() []Card {
	out := make([]Card, len(h.cards))
	copy(out, h.cards)
	return out
}

// Has reports whether the hand contains the card.
func (h Hand) Has(c Card) bool {
	for _, held := range h.cards {
		if held == c {
			return true
		}
	}
	return false
}

// HCP returns the hand's Milton high-card point count.
func (h Hand) HCP() int {
	points := 0
	for _, c := range h.cards {
		points += c.HCP()
	}
	return points
}

// Shape returns the suit lengths in the order spades, hearts, diamonds, clubs.
func (h Hand) Shape() [4]int {
	var shape [4]int
	for _, c := range h.cards {
		shape[c.Suit]++
	}
	return shape
}

// SuitLength returns the number of cards held in the suit.
func (h Hand) SuitLength(s Suit) int {
	n := 0
	for _, c := range h.cards {
		if c.Suit == s {
			n++
		}
	}
	return n
}

// SuitHolding returns the cards of one suit in hand order.
func (h Hand) SuitHolding(s Suit) []Card {
	out := make([]Card, 0, 13)
	for _, c := range h.cards {
		if c.Suit == s {
			out = append(out, c)
		}
	}
	return out
}

// Keycards counts the aces plus the king of trumps. With trump == NoTrump
// only aces are counted, as plain Blackwood would.
func (h Hand) Keycards(trump Strain) int {
	n := 0
	for _, c := range h.cards {
		if c.Rank == Ace {
			n++
		}
	}
	if trump != NoTrump && h.Has(Card{Rank: King, Suit: Suit(trump)}) {
		n++
	}
	return n
}

// String renders the hand with suit symbols, suits separated by two spaces:
// "♠A732  ♥J984  ♦A9  ♣AK7".
func (h Hand) String() string {
	var b strings.Builder
	for suit := Spades; suit <= Clubs; suit++ {
		if suit > Spades {
			b.WriteString("  ")
		}
		b.WriteString(suit.Symbol())
		for _, c := range h.cards {
			if c.Suit == suit {
				b.WriteString(c.Rank.String())
			}
		}
	}
	return b.String()
}
