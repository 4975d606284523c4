// Package trace provides trial-by-trial recording for bandit experiments.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// TrialRecord captures the outcome of a single trial.
// Records are value types: once appended to a ResultLog they are never mutated.
type TrialRecord struct {
	Trial            int     // 1-based trial index
	Arm              int     // zero-based index of the chosen arm
	Reward           float64 // observed reward
	CumulativeReward float64 // policy's cumulative reward after this trial
}
