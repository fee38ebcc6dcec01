package deal

import (
	"testing"
)

func TestParseHand(t *testing.T) {
	h, err := ParseHand("A732.J984.A9.AK7")
	if err != nil {
		t.Fatalf("ParseHand failed: %v", err)
	}
	if h.Len() != 13 {
		t.Fatalf("hand has %d cards, want 13", h.Len())
	}
	if got := h.HCP(); got != 16 {
		t.Errorf("HCP = %d, want 16", got)
	}
	if got := h.Shape(); got != [4]int{4, 4, 2, 3} {
		t.Errorf("Shape = %v, want [4 4 2 3]", got)
	}
	if want := "♠A732  ♥J984  ♦A9  ♣AK7"; h.String() != want {
		t.Errorf("String = %q, want %q", h.String(), want)
	}
}

func TestParseHandPartial(t *testing.T) {
	h, err := ParseHand("AK.Q..")
	if err != nil {
		t.Fatalf("ParseHand failed: %v", err)
	}
	if h.Len() != 3 {
		t.Errorf("partial hand has %d cards, want 3", h.Len())
	}

	empty, err := ParseHand("...")
	if err != nil {
		t.Fatalf("ParseHand of empty hand failed: %v", err)
	}
	if empty.Len() != 0 {
		t.Errorf("empty hand has %d cards", empty.Len())
	}
}

func TestParseHandInvalid(t *testing.T) {
	for _, in := range []string{"AA...", "AKQJT98765432AKQ...", "AK.Q.", "A1..."} {
		if _, err := ParseHand(in); err == nil {
			t.Errorf("ParseHand(%q) should fail", in)
		}
	}
}

func TestNewHandDuplicate(t *testing.T) {
	as := Card{Rank: Ace, Suit: Spades}
	if _, err := NewHand([]Card{as, as}); err == nil {
		t.Error("duplicate card should be rejected")
	}
}

func TestHandAccessors(t *testing.T) {
	h, err := ParseHand("KT98654.K653.5.9")
	if err != nil {
		t.Fatalf("ParseHand failed: %v", err)
	}

	if got := h.SuitLength(Spades); got != 7 {
		t.Errorf("SuitLength(Spades) = %d, want 7", got)
	}
	spades := h.SuitHolding(Spades)
	if len(spades) != 7 || spades[0].String() != "KS" {
		t.Errorf("SuitHolding(Spades) = %v", spades)
	}
	if !h.Has(Card{Rank: Five, Suit: Diamonds}) {
		t.Error("Has(5D) = false, want true")
	}
	if h.Has(Card{Rank: Ace, Suit: Spades}) {
		t.Error("Has(AS) = true, want false")
	}

	// Cards must return a copy, not the internal slice.
	cards := h.Cards()
	cards[0] = Card{Rank: Two, Suit: Clubs}
	if !h.Has(Card{Rank: King, Suit: Spades}) {
		t.Error("mutating Cards() result changed the hand")
	}
}

func TestKeycards(t *testing.T) {
	h, err := ParseHand("A732.KQ84.A9.A74")
	if err != nil {
		t.Fatalf("ParseHand failed: %v", err)
	}

	tests := []struct {
		trump Strain
		want  int
	}{
		{NoTrump, 3},
		{StrainHearts, 4},
		{StrainSpades, 3},
	}
	for _, tt := range tests {
		if got := h.Keycards(tt.trump); got != tt.want {
			t.Errorf("Keycards(%v) = %d, want %d", tt.trump, got, tt.want)
		}
	}
}
