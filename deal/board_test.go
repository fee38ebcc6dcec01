package deal

import (
	"testing"
)

var boardStrings = [4]string{
	"A732.J984.A9.AK7",
	"KT98654.K653.5.9",
	"Q.2.KQ843.QJT652",
	"J.AQT7.JT762.843",
}

func TestParseBoard(t *testing.T) {
	b, err := ParseBoard(boardStrings)
	if err != nil {
		t.Fatalf("ParseBoard failed: %v", err)
	}

	points := 0
	for _, seat := range Seats {
		h := b.Hand(seat)
		if h.Len() != 13 {
			t.Errorf("%v holds %d cards, want 13", seat, h.Len())
		}
		points += h.HCP()
	}
	if points != 40 {
		t.Errorf("board HCP = %d, want 40", points)
	}

	want := "N:♠A732  ♥J984  ♦A9  ♣AK7\n" +
		"E:♠KT98654  ♥K653  ♦5  ♣9\n" +
		"S:♠Q  ♥2  ♦KQ843  ♣QJT652\n" +
		"W:♠J  ♥AQT7  ♦JT762  ♣843"
	if b.String() != want {
		t.Errorf("Board.String() =\n%q\nwant\n%q", b.String(), want)
	}
}

func TestParseBoardDuplicateCard(t *testing.T) {
	dup := boardStrings
	dup[1] = "AT98654.K653.5.9" // ace of spades dealt twice
	if _, err := ParseBoard(dup); err == nil {
		t.Error("duplicated card across hands should be rejected")
	}
}

func TestNewBoardWrongCounts(t *testing.T) {
	short, err := ParseHand("A732.J984.A9.AK")
	if err != nil {
		t.Fatalf("ParseHand failed: %v", err)
	}
	full, err := ParseHand("KT98654.K653.5.9")
	if err != nil {
		t.Fatalf("ParseHand failed: %v", err)
	}
	if _, err := NewBoard(short, full, full, full); err == nil {
		t.Error("12-card hand should be rejected")
	}
}

func TestBoardSuitTotals(t *testing.T) {
	b, err := ParseBoard(boardStrings)
	if err != nil {
		t.Fatalf("ParseBoard failed: %v", err)
	}
	for suit := Spades; suit <= Clubs; suit++ {
		total := 0
		for _, seat := range Seats {
			total += b.Hand(seat).SuitLength(suit)
		}
		if total != 13 {
			t.Errorf("suit %v totals %d cards, want 13", suit, total)
		}
	}
}
