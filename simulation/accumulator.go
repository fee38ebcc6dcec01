package simulation

import (
	"fmt"
	"sort"

	"bridgesim/deal"
	"bridgesim/dds"
)

// TrialRecord is one accepted board together with its double-dummy table.
// Records are transient: folded into the accumulator and dropped unless
// the run retains them.
type TrialRecord struct {
	Board  deal.Board
	Tricks dds.Table
}

// Classifier buckets each accepted trial under a string key for a
// frequency table, e.g. "best strain for South". Registered before the
// run starts; the classify function must be pure.
type Classifier struct {
	Name     string
	Classify func(TrialRecord) string
}

// BestStrainClassifier tallies the strain in which the seat takes the
// most tricks.
func BestStrainClassifier(declarer deal.Seat) Classifier {
	return Classifier{
		Name: fmt.Sprintf("best strain %s", declarer),
		Classify: func(rec TrialRecord) string {
			strain, _ := rec.Tricks.BestStrain(declarer)
			return strain.String()
		},
	}
}

// ShapeClassifier tallies the seat's sorted suit distribution.
func ShapeClassifier(seat deal.Seat) Classifier {
	return Classifier{
		Name: fmt.Sprintf("shape %s", seat),
		Classify: func(rec TrialRecord) string {
			shape := rec.Board.Hand(seat).Shape()
			sort.Sort(sort.Reverse(sort.IntSlice(shape[:])))
			return fmt.Sprintf("%d-%d-%d-%d", shape[0], shape[1], shape[2], shape[3])
		},
	}
}

// Accumulator aggregates trials incrementally: per-classifier frequency
// tables, the trial count and running trick sums for every strain and
// declarer. Folding is commutative, so trials may arrive in any order and
// per-worker accumulators merge into the same final aggregate. Not safe
// for concurrent use; workers own private accumulators and merge after
// joining.
type Accumulator struct {
	classifiers []Classifier
	counts      []map[string]uint64
	trials      uint64
	trickSums   [5][4]uint64
}

// NewAccumulator registers the classifiers and returns an empty aggregate.
func NewAccumulator(classifiers []Classifier) *Accumulator {
	a := &Accumulator{
		classifiers: classifiers,
		counts:      make([]map[string]uint64, len(classifiers)),
	}
	for i := range a.counts {
		a.counts[i] = map[string]uint64{}
	}
	return a
}

// Fold adds one accepted trial to the aggregate.
func (a *Accumulator) Fold(rec TrialRecord) {
	a.trials++
	for i, c := range a.classifiers {
		a.counts[i][c.Classify(rec)]++
	}
	for _, strain := range deal.Strains {
		for _, seat := range deal.Seats {
			a.trickSums[strain][seat] += uint64(rec.Tricks.Tricks(strain, seat))
		}
	}
}

// Merge folds another accumulator with the same registration into this
// one. The other accumulator is left untouched.
func (a *Accumulator) Merge(other *Accumulator) {
	a.trials += other.trials
	for i := range a.counts {
		for key, n := range other.counts[i] {
			a.counts[i][key] += n
		}
	}
	for strain := range a.trickSums {
		for seat := range a.trickSums[strain] {
			a.trickSums[strain][seat] += other.trickSums[strain][seat]
		}
	}
}

// Trials returns the number of folded trials.
func (a *Accumulator) Trials() uint64 {
	return a.trials
}

// Frequencies returns a copy of the named classifier's frequency table.
func (a *Accumulator) Frequencies(name string) map[string]uint64 {
	for i, c := range a.classifiers {
		if c.Name == name {
			out := make(map[string]uint64, len(a.counts[i]))
			for key, n := range a.counts[i] {
				out[key] = n
			}
			return out
		}
	}
	return nil
}

// Mode returns the most frequent key of the named classifier. Ties break
// to the lexicographically smallest key so the answer is deterministic.
func (a *Accumulator) Mode(name string) (string, uint64) {
	var bestKey string
	var bestCount uint64
	for key, n := range a.Frequencies(name) {
		if n > bestCount || (n == bestCount && (bestKey == "" || key < bestKey)) {
			bestKey, bestCount = key, n
		}
	}
	return bestKey, bestCount
}

// MeanTricks returns the average makeable tricks in the strain for the
// declarer over all folded trials.
func (a *Accumulator) MeanTricks(strain deal.Strain, declarer deal.Seat) float64 {
	if a.trials == 0 {
		return 0
	}
	return float64(a.trickSums[strain][declarer]) / float64(a.trials)
}
