package sim

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// DefaultRewardStdDev is the standard deviation of reward noise (variance 1).
const DefaultRewardStdDev = 1.0

// RewardModel turns an arm's hidden true mean into a stochastic observed reward.
// Implementations consume randomness but never touch policy state.
type RewardModel interface {
	Sample(trueMean float64) (float64, error)
}

// GaussianReward draws rewards from Normal(trueMean, stdDev).
type GaussianReward struct {
	stdDev float64
	rng    *rand.Rand
}

// NewGaussianReward creates a Gaussian reward model drawing from rng.
func NewGaussianReward(stdDev float64, rng *rand.Rand) (*GaussianReward, error) {
	if rng == nil {
		return nil, fmt.Errorf("%w: reward model requires a random source", ErrConfiguration)
	}
	if !(stdDev > 0) || math.IsInf(stdDev, 0) {
		return nil, fmt.Errorf("%w: reward stddev must be positive and finite, got %v", ErrConfiguration, stdDev)
	}
	return &GaussianReward{stdDev: stdDev, rng: rng}, nil
}

// StdDev returns the configured noise standard deviation.
func (g *GaussianReward) StdDev() float64 { return g.stdDev }

// Sample implements RewardModel.
func (g *GaussianReward) Sample(trueMean float64) (float64, error) {
	d := distuv.Normal{Mu: trueMean, Sigma: g.stdDev, Src: g.rng}
	v := d.Rand()
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: normal(%v, %v) produced %v", ErrSampling, trueMean, g.stdDev, v)
	}
	return v, nil
}
