package sim

import (
	"fmt"
	"math/rand/v2"
)

// Exploration schedules for DecayingGreedyPolicy.
const (
	// ScheduleDecaying sets epsilon = 1/t before every selection.
	ScheduleDecaying = "decaying"
	// ScheduleFixed keeps epsilon constant for the whole run.
	ScheduleFixed = "fixed"
)

// DecayingGreedyPolicy is epsilon-greedy selection with a decaying exploration rate.
//
// Before each selection the trial counter t is incremented and, under the
// default schedule, epsilon is reset to 1/t: trial 1 is always exploratory
// and exploration probability shrinks as 1/t afterwards. With probability
// epsilon an arm is drawn uniformly at random; otherwise the arm with the
// highest estimated mean is chosen (lowest index on ties).
type DecayingGreedyPolicy struct {
	arms        []GreedyArm
	schedule    string
	epsilon     float64
	trial       int
	totalReward float64
	rng         *rand.Rand
}

// NewDecayingGreedyPolicy creates a greedy policy on the 1/t schedule.
func NewDecayingGreedyPolicy(numArms int, rng *rand.Rand) *DecayingGreedyPolicy {
	return NewEpsilonGreedyPolicy(numArms, GreedyConfig{Schedule: ScheduleDecaying}, rng)
}

// NewEpsilonGreedyPolicy creates a greedy policy with the given exploration schedule.
// An empty schedule means ScheduleDecaying. Panics on numArms < 1, a nil rng or
// an unknown schedule; ExperimentConfig.Validate rejects those first.
func NewEpsilonGreedyPolicy(numArms int, cfg GreedyConfig, rng *rand.Rand) *DecayingGreedyPolicy {
	if numArms < 1 {
		panic(fmt.Sprintf("NewEpsilonGreedyPolicy: numArms must be >= 1, got %d", numArms))
	}
	if rng == nil {
		panic("NewEpsilonGreedyPolicy: nil rng")
	}
	p := &DecayingGreedyPolicy{
		arms:     make([]GreedyArm, numArms),
		schedule: cfg.Schedule,
		epsilon:  1.0,
		rng:      rng,
	}
	switch cfg.Schedule {
	case "", ScheduleDecaying:
		p.schedule = ScheduleDecaying
	case ScheduleFixed:
		if cfg.Epsilon == nil {
			panic("NewEpsilonGreedyPolicy: fixed schedule requires epsilon")
		}
		p.epsilon = *cfg.Epsilon
	default:
		panic(fmt.Sprintf("NewEpsilonGreedyPolicy: unknown schedule %q", cfg.Schedule))
	}
	return p
}

// Name implements BanditPolicy.
func (p *DecayingGreedyPolicy) Name() string { return "EpsilonGreedy" }

// String renders the policy with its current exploration rate.
func (p *DecayingGreedyPolicy) String() string {
	return fmt.Sprintf("EpsilonGreedy(epsilon=%v)", p.epsilon)
}

// NumArms implements BanditPolicy.
func (p *DecayingGreedyPolicy) NumArms() int { return len(p.arms) }

// Epsilon returns the exploration rate used by the most recent selection.
func (p *DecayingGreedyPolicy) Epsilon() float64 { return p.epsilon }

// Trial returns the number of selections made so far.
func (p *DecayingGreedyPolicy) Trial() int { return p.trial }

// Schedule returns the exploration schedule name.
func (p *DecayingGreedyPolicy) Schedule() string { return p.schedule }

// Arms returns a copy of the per-arm statistics.
func (p *DecayingGreedyPolicy) Arms() []GreedyArm {
	out := make([]GreedyArm, len(p.arms))
	copy(out, p.arms)
	return out
}

// CumulativeReward implements BanditPolicy.
func (p *DecayingGreedyPolicy) CumulativeReward() float64 { return p.totalReward }

// Select implements BanditPolicy. Never fails.
func (p *DecayingGreedyPolicy) Select() (int, error) {
	p.trial++
	if p.schedule == ScheduleDecaying {
		p.epsilon = 1 / float64(p.trial)
	}
	if p.rng.Float64() < p.epsilon {
		return p.rng.IntN(len(p.arms)), nil
	}
	return p.greedyArm(), nil
}

// greedyArm returns the arm with the highest estimated mean (lowest index on ties).
func (p *DecayingGreedyPolicy) greedyArm() int {
	best := 0
	for i := 1; i < len(p.arms); i++ {
		if p.arms[i].EstimatedMean > p.arms[best].EstimatedMean {
			best = i
		}
	}
	return best
}

// Update implements BanditPolicy.
func (p *DecayingGreedyPolicy) Update(arm int, reward float64) {
	checkArm("DecayingGreedyPolicy", arm, len(p.arms))
	p.arms[arm].Observe(reward)
	p.totalReward += reward
}
