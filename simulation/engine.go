// Package simulation drives constrained deal generation through a
// double-dummy solver and aggregates the results: generate, filter,
// solve, fold, repeated until a target number of accepted trials or an
// attempt budget is exhausted.
package simulation

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	log "github.com/sirupsen/logrus"

	"bridgesim/deal"
	"bridgesim/dealer"
	"bridgesim/dds"
)

// State of a simulation engine. Serial runs expose every per-trial phase;
// parallel runs expose the phase some worker last entered.
type State uint32

const (
	Idle State = iota
	Generating
	Filtering
	Solving
	Accumulating
	Done
	Failed
	Cancelled
)

var stateNames = [...]string{"idle", "generating", "filtering", "solving", "accumulating", "done", "failed", "cancelled"}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

var (
	// ErrBudgetExhausted reports that the attempt cap was reached before
	// the target number of accepted trials. The partial result is still
	// returned; callers opt in by inspecting it.
	ErrBudgetExhausted = errors.New("simulation: attempt budget exhausted")
	// ErrCancelled reports that the context was cancelled between trials.
	ErrCancelled = errors.New("simulation: cancelled")
	// ErrConfig reports an invalid configuration, rejected before any
	// generation attempt.
	ErrConfig = errors.New("simulation: invalid configuration")
)

// DefaultAttemptFactor scales the target trial count into the default
// attempt cap when the caller does not set one.
const DefaultAttemptFactor = 1000

// Config describes one simulation run.
type Config struct {
	// Target is the number of accepted trials to collect.
	Target int
	// MaxAttempts caps total generation attempts, accepted or not.
	// Zero means DefaultAttemptFactor * Target.
	MaxAttempts int
	// Seed makes runs reproducible. Zero draws a seed from the clock.
	Seed int64
	// Workers runs trials on a pool; values below 2 run serially. The
	// accepted-board sequence is reproducible per (Seed, Workers) pair.
	Workers int
	// Fixed pre-assigns cards to seats before generation.
	Fixed map[deal.Seat]deal.Hand
	// Accept is the deal predicate. Nil accepts every board.
	Accept dealer.Predicate
	// Filters optionally reject a single seat's hand early. They must be
	// implied by Accept.
	Filters map[deal.Seat]dealer.HandFilter
	// Classifiers are registered with the accumulator before the run.
	Classifiers []Classifier
	// RetainRecords keeps every accepted TrialRecord on the result
	// instead of dropping them after folding.
	RetainRecords bool
	// Solver is the double-dummy oracle. Construct it before the run so
	// initialisation failures surface once, not per trial.
	Solver dds.Solver
}

// Result is the outcome of a run. On budget exhaustion or cancellation it
// carries the partial aggregate alongside the error.
type Result struct {
	Stats         *Accumulator
	Records       []TrialRecord
	Attempts      uint64
	Accepted      uint64
	SolveFailures uint64
	Seed          int64
	Elapsed       time.Duration
}

// Engine runs one configured simulation. Construct with New; a zero
// Engine is not usable.
type Engine struct {
	cfg         Config
	layout      *dealer.Layout
	filters     [4]dealer.HandFilter
	maxAttempts int

	state         atomic.Uint32
	attempts      atomic.Uint64
	accepted      atomic.Uint64
	solveFailures atomic.Uint64
}

// New validates the configuration and prepares an engine. Every
// configuration error fails here, before any generation attempt.
func New(cfg Config) (*Engine, error) {
	if cfg.Solver == nil {
		return nil, fmt.Errorf("%w: no solver", ErrConfig)
	}
	if cfg.Target < 1 {
		return nil, fmt.Errorf("%w: target %d", ErrConfig, cfg.Target)
	}
	maxAttempts := cfg.MaxAttempts
	if maxAttempts == 0 {
		maxAttempts = cfg.Target * DefaultAttemptFactor
	}
	if maxAttempts < cfg.Target {
		return nil, fmt.Errorf("%w: attempt cap %d below target %d", ErrConfig, maxAttempts, cfg.Target)
	}

	seen := map[string]bool{}
	for _, c := range cfg.Classifiers {
		if c.Name == "" || c.Classify == nil {
			return nil, fmt.Errorf("%w: classifier with empty name or nil function", ErrConfig)
		}
		if seen[c.Name] {
			return nil, fmt.Errorf("%w: duplicate classifier %q", ErrConfig, c.Name)
		}
		seen[c.Name] = true
	}

	layout, err := dealer.NewLayout(cfg.Fixed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}

	e := &Engine{cfg: cfg, layout: layout, maxAttempts: maxAttempts}
	for seat, f := range cfg.Filters {
		if seat > deal.West {
			return nil, fmt.Errorf("%w: filter for unknown seat %d", ErrConfig, seat)
		}
		e.filters[seat] = f
	}
	return e, nil
}

// State returns the engine's current phase.
func (e *Engine) State() State {
	return State(e.state.Load())
}

// Run executes the simulation until the target is met, the attempt budget
// is exhausted, the context is cancelled, or the oracle fails fatally.
// Per-trial solver errors consume an attempt and generation continues.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	seed := e.cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	workers := e.cfg.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > e.cfg.Target {
		workers = e.cfg.Target
	}

	log.Debugf("simulation: target=%d cap=%d workers=%d seed=%d",
		e.cfg.Target, e.maxAttempts, workers, seed)

	// Each worker owns an independently seeded source derived from the
	// master seed and a static share of the target and the attempt
	// budget, so a (seed, workers) pair reproduces the same trials.
	master := rand.New(rand.NewSource(seed))
	seeds := make([]int64, workers)
	for i := range seeds {
		seeds[i] = master.Int63()
	}

	accs := make([]*Accumulator, workers)
	records := make([][]TrialRecord, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			accs[w] = NewAccumulator(e.cfg.Classifiers)
			errs[w] = e.runShare(ctx,
				rand.New(rand.NewSource(seeds[w])),
				share(e.cfg.Target, workers, w),
				share(e.maxAttempts, workers, w),
				accs[w], &records[w])
		}(w)
	}
	wg.Wait()

	result := &Result{
		Stats:         accs[0],
		Attempts:      e.attempts.Load(),
		Accepted:      e.accepted.Load(),
		SolveFailures: e.solveFailures.Load(),
		Seed:          seed,
		Elapsed:       time.Since(start),
	}
	for w := 1; w < workers; w++ {
		result.Stats.Merge(accs[w])
	}
	if e.cfg.RetainRecords {
		for w := 0; w < workers; w++ {
			result.Records = append(result.Records, records[w]...)
		}
	}

	err := resolveErrors(errs)
	switch {
	case err == nil:
		e.state.Store(uint32(Done))
	case errors.Is(err, ErrCancelled):
		e.state.Store(uint32(Cancelled))
	default:
		e.state.Store(uint32(Failed))
	}

	log.Debugf("simulation: finished state=%s attempts=%d accepted=%d solve_failures=%d elapsed=%s",
		e.State(), result.Attempts, result.Accepted, result.SolveFailures, result.Elapsed)
	return result, err
}

// runShare is one worker's generate-filter-solve-fold loop over its share
// of the target and attempt budget.
func (e *Engine) runShare(ctx context.Context, rng *rand.Rand, target, budget int, acc *Accumulator, records *[]TrialRecord) error {
	accepted, attempts := 0, 0
	for accepted < target {
		select {
		case <-ctx.Done():
			return ErrCancelled
		default:
		}
		if attempts >= budget {
			return ErrBudgetExhausted
		}

		e.state.Store(uint32(Generating))
		attempts++
		e.attempts.Add(1)
		if attempts%100000 == 0 {
			log.Debugf("simulation: worker progress attempts=%d accepted=%d/%d", attempts, accepted, target)
		}

		b, ok := e.layout.DealFiltered(rng, e.filters)
		if !ok {
			continue
		}

		e.state.Store(uint32(Filtering))
		if e.cfg.Accept != nil && !e.cfg.Accept(b) {
			continue
		}

		e.state.Store(uint32(Solving))
		table, err := e.cfg.Solver.Solve(b)
		if err != nil {
			// Per-trial failure: the trial is discarded but the attempt
			// above already counted against the cap.
			e.solveFailures.Add(1)
			log.Debugf("simulation: solve failed, discarding trial: %v", err)
			continue
		}
		if !table.Valid() {
			return fmt.Errorf("simulation: oracle returned an invalid table for a valid board")
		}

		e.state.Store(uint32(Accumulating))
		accepted++
		e.accepted.Add(1)
		rec := TrialRecord{Board: b, Tricks: table}
		acc.Fold(rec)
		if e.cfg.RetainRecords {
			*records = append(*records, rec)
		}
	}
	return nil
}

// share splits n as evenly as possible over workers; shares sum to n.
func share(n, workers, w int) int {
	s := n / workers
	if w < n%workers {
		s++
	}
	return s
}

// resolveErrors picks the run's overall error: a fatal oracle error wins,
// then cancellation, then budget exhaustion.
func resolveErrors(errs []error) error {
	var budget, cancelled error
	for _, err := range errs {
		switch {
		case err == nil:
		case errors.Is(err, ErrBudgetExhausted):
			budget = err
		case errors.Is(err, ErrCancelled):
			cancelled = err
		default:
			return err
		}
	}
	if cancelled != nil {
		return cancelled
	}
	return budget
}
