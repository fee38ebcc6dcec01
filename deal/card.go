// Package deal provides the card, hand and board value types for bridge
// simulations. All types are immutable once constructed; accessors return
// copies rather than internal state.
package deal

import (
	"errors"
	"fmt"
)

// Suit of a card. Ordering matches the double-dummy solver convention.
type Suit uint8

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

var suitLetters = [4]string{"S", "H", "D", "C"}
var suitSymbols = [4]string{"♠", "♥", "♦", "♣"}

func (s Suit) String() string {
	if s > Clubs {
		return "?"
	}
	return suitLetters[s]
}

// Symbol returns the suit's card symbol (♠ ♥ ♦ ♣).
func (s Suit) Symbol() string {
	if s > Clubs {
		return "?"
	}
	return suitSymbols[s]
}

// Strain of a contract: the four suits plus no-trump. Values match the
// double-dummy solver's trump encoding.
type Strain uint8

const (
	StrainSpades Strain = iota
	StrainHearts
	StrainDiamonds
	StrainClubs
	NoTrump
)

// Strains lists all five strains in solver order.
var Strains = [5]Strain{StrainSpades, StrainHearts, StrainDiamonds, StrainClubs, NoTrump}

func (s Strain) String() string {
	if s == NoTrump {
		return "NT"
	}
	if s > NoTrump {
		return "?"
	}
	return suitLetters[s]
}

// Minor reports whether the strain is clubs or diamonds.
func (s Strain) Minor() bool {
	return s == StrainClubs || s == StrainDiamonds
}

// ParseStrain parses "S", "H", "D", "C" or "NT".
func ParseStrain(s string) (Strain, error) {
	switch s {
	case "S":
		return StrainSpades, nil
	case "H":
		return StrainHearts, nil
	case "D":
		return StrainDiamonds, nil
	case "C":
		return StrainClubs, nil
	case "NT":
		return NoTrump, nil
	}
	return 0, fmt.Errorf("%w: strain %q", ErrInvalidCard, s)
}

// Seat at the table, in solver order.
type Seat uint8

const (
	North Seat = iota
	East
	South
	West
)

// Seats lists all four seats in dealing order.
var Seats = [4]Seat{North, East, South, West}

var seatLetters = [4]string{"N", "E", "S", "W"}

func (s Seat) String() string {
	if s > West {
		return "?"
	}
	return seatLetters[s]
}

// LHO returns the seat to the left, the opening leader when s declares.
func (s Seat) LHO() Seat {
	return (s + 1) % 4
}

// Partner returns the seat across the table.
func (s Seat) Partner() Seat {
	return (s + 2) % 4
}

// ParseSeat parses "N", "E", "S" or "W".
func ParseSeat(s string) (Seat, error) {
	for i, l := range seatLetters {
		if s == l {
			return Seat(i), nil
		}
	}
	return 0, fmt.Errorf("%w: seat %q", ErrInvalidCard, s)
}

// Rank of a card. Spot cards carry their face value, honours continue the
// sequence jack=11 through ace=14.
type Rank uint8

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

const rankLetters = "23456789TJQKA"

func (r Rank) String() string {
	if r < Two || r > Ace {
		return "?"
	}
	return string(rankLetters[r-Two])
}

// HCP returns the Milton point count of the rank: A=4 K=3 Q=2 J=1.
func (r Rank) HCP() int {
	if r >= Jack {
		return int(r - Ten)
	}
	return 0
}

var (
	// ErrInvalidCard reports an unparseable card, rank, suit, seat or strain.
	ErrInvalidCard = errors.New("deal: invalid card")
	// ErrInvalidHand reports a hand with duplicated cards or more than 13.
	ErrInvalidHand = errors.New("deal: invalid hand")
	// ErrInvalidBoard reports four hands that do not partition the deck.
	ErrInvalidBoard = errors.New("deal: invalid board")
)

// Card is a single playing card, compared by value.
type Card struct {
	Rank Rank
	Suit Suit
}

func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// HCP returns the card's Milton point count.
func (c Card) HCP() int {
	return c.Rank.HCP()
}

// ParseCard parses a two-character card string in rank-suit order, e.g. "AS".
func ParseCard(s string) (Card, error) {
	if len(s) != 2 {
		return Card{}, fmt.Errorf("%w: %q", ErrInvalidCard, s)
	}
	rank, err := parseRank(s[0])
	if err != nil {
		return Card{}, err
	}
	suit, err := parseSuit(s[1])
	if err != nil {
		return Card{}, err
	}
	return Card{Rank: rank, Suit: suit}, nil
}

func parseRank(b byte) (Rank, error) {
	for i := 0; i < len(rankLetters); i++ {
		if rankLetters[i] == b {
			return Rank(i) + Two, nil
		}
	}
	return 0, fmt.Errorf("%w: rank %q", ErrInvalidCard, string(b))
}

func parseSuit(b byte) (Suit, error) {
	for i, l := range suitLetters {
		if l[0] == b {
			return Suit(i), nil
		}
	}
	return 0, fmt.Errorf("%w: suit %q", ErrInvalidCard, string(b))
}

// Deck returns the 52 cards of a standard deck in canonical order:
// suit-major (spades first), ranks ascending from two to ace within a suit.
func Deck() []Card {
	deck := make([]Card, 0, 52)
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			deck = append(deck, Card{Rank: rank, Suit: suit})
		}
	}
	return deck
}
