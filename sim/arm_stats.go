package sim

import "math"

// GreedyArm holds the running estimate a greedy policy keeps per arm.
// EstimatedMean is always the arithmetic mean of the Pulls rewards observed so far.
type GreedyArm struct {
	Pulls         int
	EstimatedMean float64
}

// Observe folds one reward into the estimate: newMean = ((n-1)*oldMean + reward) / n,
// where n is the post-increment pull count.
func (a *GreedyArm) Observe(reward float64) {
	a.Pulls++
	n := float64(a.Pulls)
	a.EstimatedMean = ((n-1)*a.EstimatedMean + reward) / n
}

// BetaArm holds the Beta(Alpha, Beta) posterior a sampling policy keeps per arm.
// Both weights start at 1 (uniform prior) and never decrease.
type BetaArm struct {
	Alpha float64 // success weight
	Beta  float64 // failure weight
}

// NewBetaArm returns the uniform Beta(1, 1) prior.
func NewBetaArm() BetaArm {
	return BetaArm{Alpha: 1, Beta: 1}
}

// Observe adds a real-valued reward as evidence: non-negative rewards add their
// value to Alpha, negative rewards add their magnitude to Beta. Reward magnitude
// acts as evidence strength, generalizing Beta-Bernoulli updating to Gaussian
// rewards that may be negative or exceed 1.
func (a *BetaArm) Observe(reward float64) {
	if reward >= 0 {
		a.Alpha += reward
	} else {
		a.Beta += math.Abs(reward)
	}
}

// Mean returns the posterior mean Alpha / (Alpha + Beta).
func (a BetaArm) Mean() float64 {
	return a.Alpha / (a.Alpha + a.Beta)
}
