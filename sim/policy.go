package sim

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// BanditPolicy chooses arms and learns from the rewards they return.
// A policy owns its arm statistics exclusively; instances never share state.
type BanditPolicy interface {
	// Name returns the display name used in reports (e.g. "EpsilonGreedy").
	Name() string
	// NumArms returns K, the number of arms the policy chooses among.
	NumArms() int
	// Select returns the zero-based index of the arm to pull next.
	Select() (int, error)
	// Update folds the reward observed for arm into the policy's statistics.
	Update(arm int, reward float64)
	// CumulativeReward returns the sum of all rewards passed to Update.
	CumulativeReward() float64
}

// Algorithm names accepted by NewPolicy and the CLI.
const (
	AlgorithmEpsilonGreedy    = "epsilon-greedy"
	AlgorithmThompsonSampling = "thompson-sampling"
)

// validAlgorithms is the set of recognized algorithm names.
var validAlgorithms = map[string]bool{
	AlgorithmEpsilonGreedy:    true,
	AlgorithmThompsonSampling: true,
}

// IsValidAlgorithm returns true if name is a recognized algorithm.
func IsValidAlgorithm(name string) bool { return validAlgorithms[name] }

// ValidAlgorithmNames returns the recognized algorithm names, sorted.
func ValidAlgorithmNames() []string {
	names := make([]string, 0, len(validAlgorithms))
	for name := range validAlgorithms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewPolicy creates a policy by algorithm name.
// Valid names: "epsilon-greedy", "thompson-sampling".
// Callers validate inputs first (ExperimentConfig.Validate); an unknown name panics.
func NewPolicy(name string, numArms int, greedy GreedyConfig, rng *rand.Rand) BanditPolicy {
	switch name {
	case AlgorithmEpsilonGreedy:
		return NewEpsilonGreedyPolicy(numArms, greedy, rng)
	case AlgorithmThompsonSampling:
		return NewPosteriorSamplingPolicy(numArms, rng)
	default:
		panic(fmt.Sprintf("unknown algorithm %q; valid algorithms: %v", name, ValidAlgorithmNames()))
	}
}

// argmax returns the index of the largest value, lowest index on ties.
// values must be non-empty and NaN-free.
func argmax(values []float64) int {
	return floats.MaxIdx(values)
}

// checkArm panics on an arm index outside [0, numArms).
func checkArm(policy string, arm, numArms int) {
	if arm < 0 || arm >= numArms {
		panic(fmt.Sprintf("%s.Update: arm %d out of range [0, %d)", policy, arm, numArms))
	}
}

// hasNaN reports whether any value is NaN.
func hasNaN(values []float64) bool {
	for _, v := range values {
		if math.IsNaN(v) {
			return true
		}
	}
	return false
}
