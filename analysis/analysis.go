// Package analysis turns solved trials into decisions: comparing candidate
// contracts on a board, or candidate opening leads against a contract.
// Scores are from the declaring side's view for contracts and from the
// defender's view for leads; pairwise comparisons are in average IMPs.
package analysis

import (
	"errors"
	"fmt"
	"sort"

	"bridgesim/contract"
	"bridgesim/deal"
	"bridgesim/dds"
	"bridgesim/simulation"
)

// ErrNoTrials is returned when a study is built over zero trials or zero
// candidates.
var ErrNoTrials = errors.New("analysis: no trials or no candidates")

// ContractStudy compares candidate contracts played by one declarer over
// a set of solved trials. Scores come straight from each trial's
// double-dummy table, so no further solver calls are needed.
type ContractStudy struct {
	declarer  deal.Seat
	contracts []contract.Contract
	scores    [][]int // [contract][trial]
}

// NewContractStudy scores every candidate contract on every trial. Each
// score is the declaring side's result with the table's trick count in
// the contract's strain.
func NewContractStudy(records []simulation.TrialRecord, declarer deal.Seat, contracts []contract.Contract) (*ContractStudy, error) {
	if len(records) == 0 || len(contracts) == 0 {
		return nil, ErrNoTrials
	}
	s := &ContractStudy{
		declarer:  declarer,
		contracts: contracts,
		scores:    make([][]int, len(contracts)),
	}
	for i, c := range contracts {
		s.scores[i] = make([]int, len(records))
		for j, rec := range records {
			s.scores[i][j] = c.Score(rec.Tricks.Tricks(c.Strain, declarer))
		}
	}
	return s, nil
}

// Contracts returns the candidates in study order.
func (s *ContractStudy) Contracts() []contract.Contract {
	return s.contracts
}

// Scores returns the per-trial scores of the i-th candidate.
func (s *ContractStudy) Scores(i int) []int {
	return s.scores[i]
}

// MadeRates returns, per candidate, the fraction of trials on which the
// contract made.
func (s *ContractStudy) MadeRates() []float64 {
	rates := make([]float64, len(s.contracts))
	for i := range s.contracts {
		rates[i] = plusRate(s.scores[i])
	}
	return rates
}

// IMPMatrix returns the antisymmetric matrix of average IMP gains: entry
// [i][j] is what bidding candidate i gains per trial over candidate j.
func (s *ContractStudy) IMPMatrix() [][]float64 {
	return impMatrix(s.scores)
}

// LeadStudy compares the defender's opening leads against one contract
// over a set of boards sharing the leader's hand. Each board costs one
// lead solve; the candidate leads are those the first board admits, with
// touching cards already collapsed by the solver.
type LeadStudy struct {
	contract contract.Contract
	leads    []deal.Card
	scores   [][]int // [lead][board]
}

// NewLeadStudy solves every board for all opening leads and scores each
// from the defender's view: positive when the lead beats the contract.
func NewLeadStudy(boards []deal.Board, declarer deal.Seat, c contract.Contract, solver dds.LeadSolver) (*LeadStudy, error) {
	if len(boards) == 0 {
		return nil, ErrNoTrials
	}
	tricks := make([]map[deal.Card]int, len(boards))
	for i, b := range boards {
		m, err := solver.SolveLeads(b, c.Strain, declarer)
		if err != nil {
			return nil, fmt.Errorf("analysis: solving leads on board %d: %w", i, err)
		}
		tricks[i] = m
	}

	leads := make([]deal.Card, 0, len(tricks[0]))
	for lead := range tricks[0] {
		leads = append(leads, lead)
	}
	sort.Slice(leads, func(i, j int) bool {
		if leads[i].Suit != leads[j].Suit {
			return leads[i].Suit < leads[j].Suit
		}
		return leads[i].Rank > leads[j].Rank
	})

	s := &LeadStudy{contract: c, leads: leads, scores: make([][]int, len(leads))}
	for i, lead := range leads {
		s.scores[i] = make([]int, len(boards))
		for j := range boards {
			n, ok := tricks[j][lead]
			if !ok {
				return nil, fmt.Errorf("analysis: board %d admits no %s lead", j, lead)
			}
			s.scores[i][j] = -c.Score(n)
		}
	}
	return s, nil
}

// Leads returns the candidate cards, highest first within each suit.
func (s *LeadStudy) Leads() []deal.Card {
	return s.leads
}

// Scores returns the per-board defender scores of the i-th lead.
func (s *LeadStudy) Scores(i int) []int {
	return s.scores[i]
}

// BeatRates returns, per lead, the fraction of boards on which the lead
// defeated the contract.
func (s *LeadStudy) BeatRates() []float64 {
	rates := make([]float64, len(s.leads))
	for i := range s.leads {
		rates[i] = plusRate(s.scores[i])
	}
	return rates
}

// IMPMatrix returns the antisymmetric matrix of average IMP gains: entry
// [i][j] is what choosing lead i gains per board over lead j.
func (s *LeadStudy) IMPMatrix() [][]float64 {
	return impMatrix(s.scores)
}

// plusRate is the fraction of non-negative scores.
func plusRate(scores []int) float64 {
	plus := 0
	for _, sc := range scores {
		if sc >= 0 {
			plus++
		}
	}
	return float64(plus) / float64(len(scores))
}

// meanIMPs averages the per-trial IMP swing of taking scores a over b.
func meanIMPs(a, b []int) float64 {
	total := 0
	for i := range a {
		total += contract.IMPs(a[i] - b[i])
	}
	return float64(total) / float64(len(a))
}

func impMatrix(scores [][]int) [][]float64 {
	m := make([][]float64, len(scores))
	for i := range scores {
		m[i] = make([]float64, len(scores))
		for j := range scores {
			m[i][j] = meanIMPs(scores[i], scores[j])
		}
	}
	return m
}
