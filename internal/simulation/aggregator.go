package simulation

import (
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
	"league-odds/internal/league"
)

// Defaults match the original deployment: 4 workers running 4000 runs each.
const (
	DefaultRuns    = 16000
	DefaultWorkers = 4
)

// Result is the aggregate over all simulation runs for one forecast request.
type Result struct {
	SuccessPercent float64 `json:"success_percent"`
	AverageWins    float64 `json:"average_wins"`
	Successes      int     `json:"successes"`
	Runs           int     `json:"runs"`
}

// Aggregator fans independent season replays out over a fixed pool of
// workers and folds the per-worker tallies into a success probability and a
// conditional average win count.
type Aggregator struct {
	Runs    int
	Workers int

	seed int64
}

// NewAggregator creates an aggregator with the default run and worker counts.
func NewAggregator() *Aggregator {
	return &Aggregator{Runs: DefaultRuns, Workers: DefaultWorkers}
}

// SetSeed fixes the base seed that per-worker random sources derive from.
// Zero (the default) means fresh entropy per call.
func (a *Aggregator) SetSeed(seed int64) {
	a.seed = seed
}

// partial is one worker's local tally, combined exactly once after the pool
// drains. winSum accumulates wins for successful runs only.
type partial struct {
	successes int
	winSum    int
}

// Calculate estimates the probability that target finishes the season at or
// above targetRank, given the standings snapshot and the remaining fixtures.
// The snapshot and fixture list are shared read-only across workers; each
// worker owns its runner and random source, so runs never share mutable
// state.
func (a *Aggregator) Calculate(target string, targetRank int, table *league.Table, fixtures []league.Match) (Result, error) {
	if targetRank < 1 {
		return Result{}, fmt.Errorf("target rank must be a positive integer, got %d", targetRank)
	}
	if !table.Has(target) {
		return Result{}, fmt.Errorf("%w: %s", ErrUnknownTarget, target)
	}

	runs := a.Runs
	if runs <= 0 {
		runs = DefaultRuns
	}
	workers := a.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if workers > runs {
		workers = runs
	}

	baseSeed := a.seed
	if baseSeed == 0 {
		baseSeed = time.Now().UnixNano()
	}

	batch := runs / workers
	extra := runs % workers
	partials := make([]partial, workers)

	var g errgroup.Group
	for i := 0; i < workers; i++ {
		worker := i
		size := batch
		if worker < extra {
			size++
		}
		g.Go(func() error {
			runner := NewRunner()
			runner.SetSeed(baseSeed + int64(worker))

			var p partial
			for j := 0; j < size; j++ {
				out, err := runner.Run(target, table, fixtures)
				if err != nil {
					return err
				}
				if out.Rank <= targetRank {
					p.successes++
					p.winSum += out.Wins
				}
			}
			partials[worker] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	var successes, winSum int
	for _, p := range partials {
		successes += p.successes
		winSum += p.winSum
	}

	result := Result{
		Successes:      successes,
		Runs:           runs,
		SuccessPercent: float64(successes) / float64(runs) * 100.0,
	}
	// Guarded: zero successful runs yields the sentinel 0, never a division fault.
	if successes > 0 {
		result.AverageWins = float64(winSum) / float64(successes)
	}
	return result, nil
}
