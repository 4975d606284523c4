package sim

import (
	"bytes"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults for the comparison experiment.
const (
	DefaultSeed   = 42
	DefaultTrials = 20000
)

// DefaultTrueMeans is the default problem instance.
var DefaultTrueMeans = []float64{1, 2, 3, 4}

// GreedyConfig configures the exploration schedule of DecayingGreedyPolicy.
// Nil Epsilon means "not set in YAML".
type GreedyConfig struct {
	Schedule string   `yaml:"schedule"` // "decaying" (default) or "fixed"
	Epsilon  *float64 `yaml:"epsilon"`  // required by "fixed"; must lie in [0, 1]
}

// ExperimentConfig holds everything needed to reproduce an experiment.
// Loadable from a YAML file via LoadExperimentConfig.
type ExperimentConfig struct {
	Seed         int64        `yaml:"seed"`
	Trials       int          `yaml:"trials"`
	TrueMeans    []float64    `yaml:"true_means"`
	RewardStdDev float64      `yaml:"reward_stddev"`
	Algorithms   []string     `yaml:"algorithms"`
	Greedy       GreedyConfig `yaml:"greedy"`
}

// DefaultExperimentConfig returns the comparison experiment: means [1, 2, 3, 4],
// 20000 trials, unit-variance rewards, both algorithms.
func DefaultExperimentConfig() *ExperimentConfig {
	means := make([]float64, len(DefaultTrueMeans))
	copy(means, DefaultTrueMeans)
	return &ExperimentConfig{
		Seed:         DefaultSeed,
		Trials:       DefaultTrials,
		TrueMeans:    means,
		RewardStdDev: DefaultRewardStdDev,
		Algorithms:   []string{AlgorithmEpsilonGreedy, AlgorithmThompsonSampling},
		Greedy:       GreedyConfig{Schedule: ScheduleDecaying},
	}
}

// LoadExperimentConfig reads a YAML experiment file. Fields absent from the
// file keep their DefaultExperimentConfig values. Unknown fields are errors.
func LoadExperimentConfig(path string) (*ExperimentConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading experiment config: %w", err)
	}
	cfg := DefaultExperimentConfig()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil {
		return nil, fmt.Errorf("parsing experiment config: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration before any trial runs.
// Every error wraps ErrConfiguration.
func (c *ExperimentConfig) Validate() error {
	if err := ValidateProblem(c.TrueMeans, c.Trials); err != nil {
		return err
	}
	if !(c.RewardStdDev > 0) || math.IsInf(c.RewardStdDev, 0) {
		return fmt.Errorf("%w: reward_stddev must be positive and finite, got %v", ErrConfiguration, c.RewardStdDev)
	}
	if len(c.Algorithms) == 0 {
		return fmt.Errorf("%w: no algorithms selected", ErrConfiguration)
	}
	seen := make(map[string]bool, len(c.Algorithms))
	for _, name := range c.Algorithms {
		if !IsValidAlgorithm(name) {
			return fmt.Errorf("%w: unknown algorithm %q; valid algorithms: %v", ErrConfiguration, name, ValidAlgorithmNames())
		}
		if seen[name] {
			return fmt.Errorf("%w: algorithm %q listed twice", ErrConfiguration, name)
		}
		seen[name] = true
	}
	return c.Greedy.Validate()
}

// Validate checks the schedule name and epsilon range.
func (g GreedyConfig) Validate() error {
	switch g.Schedule {
	case "", ScheduleDecaying:
	case ScheduleFixed:
		if g.Epsilon == nil {
			return fmt.Errorf("%w: greedy schedule %q requires epsilon", ErrConfiguration, ScheduleFixed)
		}
	default:
		return fmt.Errorf("%w: unknown greedy schedule %q", ErrConfiguration, g.Schedule)
	}
	if g.Epsilon != nil && (*g.Epsilon < 0 || *g.Epsilon > 1 || math.IsNaN(*g.Epsilon)) {
		return fmt.Errorf("%w: epsilon must be in [0, 1], got %v", ErrConfiguration, *g.Epsilon)
	}
	return nil
}

// ValidateProblem checks a problem instance: at least one arm, finite means,
// a positive trial count.
func ValidateProblem(trueMeans []float64, trials int) error {
	if len(trueMeans) == 0 {
		return fmt.Errorf("%w: zero arms", ErrConfiguration)
	}
	for i, m := range trueMeans {
		if math.IsNaN(m) || math.IsInf(m, 0) {
			return fmt.Errorf("%w: true mean of arm %d is not finite (%v)", ErrConfiguration, i, m)
		}
	}
	if trials <= 0 {
		return fmt.Errorf("%w: trials must be positive, got %d", ErrConfiguration, trials)
	}
	return nil
}
