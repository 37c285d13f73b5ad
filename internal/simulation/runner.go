package simulation

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"league-odds/internal/league"
)

// ErrUnknownTarget signals a forecast request for a team absent from the
// standings snapshot.
var ErrUnknownTarget = errors.New("target team not in standings")

// Outcome is the result of one simulated season for the target team.
type Outcome struct {
	Rank int
	Wins int
}

// Runner replays the remaining season once per call, starting from a private
// clone of the standings snapshot.
type Runner struct {
	sampler *Sampler
	rng     *rand.Rand
}

// NewRunner creates a runner with an entropy-seeded random source.
func NewRunner() *Runner {
	return &Runner{
		sampler: NewSampler(),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// SetSeed replaces the random source with a seeded one for reproducible runs.
func (r *Runner) SetSeed(seed int64) {
	r.rng = rand.New(rand.NewSource(seed))
}

// Run samples a score for every remaining fixture, applies each result to a
// working copy of the table, and returns the target team's final rank and
// simulated win count. The source table and fixture list are never mutated.
func (r *Runner) Run(target string, table *league.Table, fixtures []league.Match) (Outcome, error) {
	if !table.Has(target) {
		return Outcome{}, fmt.Errorf("%w: %s", ErrUnknownTarget, target)
	}

	sim := table.Clone()
	for _, m := range fixtures {
		homeGoals := r.sampler.Goals(Home, r.rng)
		awayGoals := r.sampler.Goals(Away, r.rng)
		if err := sim.Apply(m, homeGoals, awayGoals); err != nil {
			return Outcome{}, fmt.Errorf("season replay: %w", err)
		}
	}

	rank, wins, err := sim.FinalRank(target)
	if err != nil {
		return Outcome{}, fmt.Errorf("season replay: %w", err)
	}
	return Outcome{Rank: rank, Wins: wins}, nil
}
