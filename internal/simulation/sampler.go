package simulation

import "math/rand"

// Side selects which goal distribution a sample is drawn from.
type Side int

const (
	Home Side = iota
	Away
)

// Scoring-frequency weights for 0 through 7 goals per side, derived from
// historical English top-flight results:
// https://fivethirtyeight.com/features/in-126-years-english-football-has-seen-13475-nil-nil-draws/
var (
	homeWeights = [8]float64{18.8, 30.3, 24.8, 14.3, 7.0, 3.1, 1.2, 0.5}
	awayWeights = [8]float64{33.8, 36.2, 19.3, 7.4, 2.3, 0.7, 0.2, 0.1}
)

// Sampler draws goal counts from the fixed home/away distributions. It holds
// no random state of its own; callers pass the rng so runs stay reproducible
// under a fixed seed.
type Sampler struct {
	home [8]float64 // cumulative probabilities
	away [8]float64
}

// NewSampler precomputes the cumulative distributions.
func NewSampler() *Sampler {
	return &Sampler{
		home: cumulative(homeWeights),
		away: cumulative(awayWeights),
	}
}

func cumulative(weights [8]float64) [8]float64 {
	total := 0.0
	for _, w := range weights {
		total += w
	}

	var out [8]float64
	running := 0.0
	for i, w := range weights {
		running += w
		out[i] = running / total
	}
	// Guard against float drift so the last bucket always catches.
	out[len(out)-1] = 1.0
	return out
}

// Goals samples a goal count in [0,7] for the given side.
func (s *Sampler) Goals(side Side, rng *rand.Rand) int {
	dist := s.home
	if side == Away {
		dist = s.away
	}

	r := rng.Float64()
	for goals, limit := range dist {
		if r < limit {
			return goals
		}
	}
	return len(dist) - 1
}
