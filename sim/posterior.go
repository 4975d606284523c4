package sim

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// PosteriorSamplingPolicy is Thompson sampling over per-arm Beta posteriors.
//
// Each selection draws one sample from every arm's Beta(Alpha, Beta) and
// picks the largest (lowest index on ties). Rewards update the posteriors
// through BetaArm.Observe.
type PosteriorSamplingPolicy struct {
	arms        []BetaArm
	samples     []float64
	totalReward float64
	// draw returns one Beta(alpha, beta) variate.
	draw func(alpha, beta float64) float64
}

// NewPosteriorSamplingPolicy creates a sampling policy with Beta(1, 1) priors.
// Panics on numArms < 1 or a nil rng.
func NewPosteriorSamplingPolicy(numArms int, rng *rand.Rand) *PosteriorSamplingPolicy {
	if numArms < 1 {
		panic(fmt.Sprintf("NewPosteriorSamplingPolicy: numArms must be >= 1, got %d", numArms))
	}
	if rng == nil {
		panic("NewPosteriorSamplingPolicy: nil rng")
	}
	arms := make([]BetaArm, numArms)
	for i := range arms {
		arms[i] = NewBetaArm()
	}
	return &PosteriorSamplingPolicy{
		arms:    arms,
		samples: make([]float64, numArms),
		draw: func(alpha, beta float64) float64 {
			return distuv.Beta{Alpha: alpha, Beta: beta, Src: rng}.Rand()
		},
	}
}

// Name implements BanditPolicy.
func (p *PosteriorSamplingPolicy) Name() string { return "ThompsonSampling" }

// String renders the policy.
func (p *PosteriorSamplingPolicy) String() string { return "ThompsonSampling()" }

// NumArms implements BanditPolicy.
func (p *PosteriorSamplingPolicy) NumArms() int { return len(p.arms) }

// Arms returns a copy of the per-arm posteriors.
func (p *PosteriorSamplingPolicy) Arms() []BetaArm {
	out := make([]BetaArm, len(p.arms))
	copy(out, p.arms)
	return out
}

// CumulativeReward implements BanditPolicy.
func (p *PosteriorSamplingPolicy) CumulativeReward() float64 { return p.totalReward }

// Select implements BanditPolicy. Returns ErrSampling if any posterior draw is NaN.
func (p *PosteriorSamplingPolicy) Select() (int, error) {
	for i, arm := range p.arms {
		p.samples[i] = p.draw(arm.Alpha, arm.Beta)
	}
	if hasNaN(p.samples) {
		return 0, fmt.Errorf("%w: beta posterior draw returned NaN (samples=%v)", ErrSampling, p.samples)
	}
	return argmax(p.samples), nil
}

// Update implements BanditPolicy.
func (p *PosteriorSamplingPolicy) Update(arm int, reward float64) {
	checkArm("PosteriorSamplingPolicy", arm, len(p.arms))
	p.arms[arm].Observe(reward)
	p.totalReward += reward
}
