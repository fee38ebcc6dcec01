package analysis

import (
	"testing"

	"github.com/stretchr/testify/require"

	"bridgesim/contract"
	"bridgesim/deal"
	"bridgesim/dds"
	"bridgesim/simulation"
)

// Board 18 from Easter Teams 2022, dealt three ways so East declares the
// same cards with rotated defences.
var (
	board1 = [4]string{
		"K976542..953.532",
		"A.AQ64.AKQ62.AK6",
		"Q8.9875.JT74.Q98",
		"JT3.KJT32.8.JT74",
	}
	board2 = [4]string{
		"Q8.9875.JT74.Q98",
		"JT3.KJT32.8.JT74",
		"K976542..953.532",
		"A.AQ64.AKQ62.AK6",
	}
	board3 = [4]string{
		"K976542..953.532",
		"JT3.KJT32.8.JT74",
		"Q8.9875.JT74.Q98",
		"A.AQ64.AKQ62.AK6",
	}
)

func mustBoard(t *testing.T, hands [4]string) deal.Board {
	t.Helper()
	b, err := deal.ParseBoard(hands)
	require.NoError(t, err)
	return b
}

func mustContract(t *testing.T, s string) contract.Contract {
	t.Helper()
	c, err := contract.Parse(s, false)
	require.NoError(t, err)
	return c
}

// minorTable fills East's minor-suit rows with the given trick count.
func minorTable(tricks int) dds.Table {
	var tab dds.Table
	tab[deal.StrainClubs][deal.East] = tricks
	tab[deal.StrainDiamonds][deal.East] = tricks
	return tab
}

func TestContractStudy(t *testing.T) {
	records := []simulation.TrialRecord{
		{Board: mustBoard(t, board1), Tricks: minorTable(11)},
		{Board: mustBoard(t, board2), Tricks: minorTable(12)},
	}
	contracts := []contract.Contract{mustContract(t, "6C"), mustContract(t, "6D")}

	study, err := NewContractStudy(records, deal.East, contracts)
	require.NoError(t, err)

	// Down one on the first layout, making on the second.
	require.Equal(t, []int{-50, 920}, study.Scores(0))
	require.Equal(t, []int{-50, 920}, study.Scores(1))
	require.Equal(t, []float64{0.5, 0.5}, study.MadeRates())
	require.Equal(t, [][]float64{{0, 0}, {0, 0}}, study.IMPMatrix())
}

func TestContractStudyIMPSwing(t *testing.T) {
	// A game contract against a part-score in the same strain: the swing
	// is the game bonus when both make, the set difference when neither.
	records := []simulation.TrialRecord{
		{Board: mustBoard(t, board1), Tricks: minorTable(11)},
		{Board: mustBoard(t, board2), Tricks: minorTable(8)},
	}
	contracts := []contract.Contract{mustContract(t, "5C"), mustContract(t, "3C")}
	study, err := NewContractStudy(records, deal.East, contracts)
	require.NoError(t, err)

	require.Equal(t, []int{400, -150}, study.Scores(0))
	require.Equal(t, []int{150, -50}, study.Scores(1))
	require.Equal(t, []float64{0.5, 0.5}, study.MadeRates())

	m := study.IMPMatrix()
	// +6 IMPs for the made game, -3 for the extra undertricks: average +1.5.
	require.Equal(t, 1.5, m[0][1])
	require.Equal(t, -1.5, m[1][0])
	require.Equal(t, 0.0, m[0][0])
}

func TestContractStudyEmpty(t *testing.T) {
	_, err := NewContractStudy(nil, deal.East, []contract.Contract{mustContract(t, "6C")})
	require.ErrorIs(t, err, ErrNoTrials)
	_, err = NewContractStudy([]simulation.TrialRecord{{}}, deal.East, nil)
	require.ErrorIs(t, err, ErrNoTrials)
}

// scriptedLeads answers each board with declarer's tricks per distinct
// lead from South's hand Q8.9875.JT74.Q98, touching cards collapsed.
func scriptedLeads(t *testing.T) dds.LeadSolver {
	t.Helper()
	b1, b3 := mustBoard(t, board1), mustBoard(t, board3)

	leadTricks := func(clubTricks, otherTricks int) map[deal.Card]int {
		m := map[deal.Card]int{}
		for _, s := range []string{"QS", "8S", "9H", "5H", "JD", "7D", "4D"} {
			c, err := deal.ParseCard(s)
			require.NoError(t, err)
			m[c] = otherTricks
		}
		for _, s := range []string{"QC", "9C"} {
			c, err := deal.ParseCard(s)
			require.NoError(t, err)
			m[c] = clubTricks
		}
		return m
	}

	return dds.NewScriptedSolver(nil).WithLeads(
		func(b deal.Board, strain deal.Strain, declarer deal.Seat) (map[deal.Card]int, error) {
			require.Equal(t, deal.NoTrump, strain)
			require.Equal(t, deal.East, declarer)
			switch b.String() {
			case b1.String():
				// Only a club lead concedes the thirteenth trick.
				return leadTricks(13, 12), nil
			case b3.String():
				return leadTricks(13, 13), nil
			}
			t.Fatalf("unexpected board:\n%s", b)
			return nil, nil
		})
}

func TestLeadStudy(t *testing.T) {
	boards := []deal.Board{mustBoard(t, board1), mustBoard(t, board3)}
	study, err := NewLeadStudy(boards, deal.East, mustContract(t, "6NT"), scriptedLeads(t))
	require.NoError(t, err)

	leads := study.Leads()
	var names []string
	for _, lead := range leads {
		names = append(names, lead.String())
	}
	require.Equal(t, []string{"QS", "8S", "9H", "5H", "JD", "7D", "4D", "QC", "9C"}, names)

	// The contract always makes, so every defender score is negative and
	// no lead ever beats it.
	for i := range leads {
		want := []int{-990, -1020}
		if leads[i].Suit == deal.Clubs {
			want = []int{-1020, -1020}
		}
		require.Equal(t, want, study.Scores(i), "lead %s", leads[i])
	}
	for _, rate := range study.BeatRates() {
		require.Zero(t, rate)
	}

	// A non-club lead saves an overtrick on the first board, half the
	// time in IMPs; club leads are a wash against each other.
	m := study.IMPMatrix()
	for i := range leads {
		for j := range leads {
			want := 0.0
			switch {
			case leads[i].Suit != deal.Clubs && leads[j].Suit == deal.Clubs:
				want = 0.5
			case leads[i].Suit == deal.Clubs && leads[j].Suit != deal.Clubs:
				want = -0.5
			}
			require.Equal(t, want, m[i][j], "IMPs of %s over %s", leads[i], leads[j])
		}
	}
}

func TestLeadStudyBeatRates(t *testing.T) {
	b := mustBoard(t, board1)
	solver := dds.NewScriptedSolver(nil).WithLeads(
		func(deal.Board, deal.Strain, deal.Seat) (map[deal.Card]int, error) {
			qs, _ := deal.ParseCard("QS")
			qc, _ := deal.ParseCard("QC")
			return map[deal.Card]int{qs: 11, qc: 12}, nil
		})

	study, err := NewLeadStudy([]deal.Board{b}, deal.East, mustContract(t, "6NT"), solver)
	require.NoError(t, err)
	require.Equal(t, []float64{1, 0}, study.BeatRates())
	// Beating the slam versus letting it make is a huge swing.
	require.Equal(t, 14.0, study.IMPMatrix()[0][1])
}

func TestLeadStudyEmpty(t *testing.T) {
	_, err := NewLeadStudy(nil, deal.East, mustContract(t, "6NT"), dds.NewScriptedSolver(nil))
	require.ErrorIs(t, err, ErrNoTrials)
}
