package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/bandit-sim/sim/trace"
)

// ExperimentRunner drives one policy for a fixed number of trials against a
// fixed problem instance.
//
// Each trial: arm = Policy.Select(); reward = Rewards.Sample(TrueMeans[arm]);
// Policy.Update(arm, reward); append TrialRecord. Trials are strictly
// sequential because every selection depends on the previous update.
type ExperimentRunner struct {
	Policy    BanditPolicy
	Rewards   RewardModel
	TrueMeans []float64
	Trials    int
}

// NewExperimentRunner creates a runner. Inputs are validated by Run.
func NewExperimentRunner(policy BanditPolicy, rewards RewardModel, trueMeans []float64, trials int) *ExperimentRunner {
	return &ExperimentRunner{Policy: policy, Rewards: rewards, TrueMeans: trueMeans, Trials: trials}
}

// Validate checks the runner's inputs. Every error wraps ErrConfiguration.
func (r *ExperimentRunner) Validate() error {
	if r.Policy == nil {
		return fmt.Errorf("%w: nil policy", ErrConfiguration)
	}
	if r.Rewards == nil {
		return fmt.Errorf("%w: nil reward model", ErrConfiguration)
	}
	if err := ValidateProblem(r.TrueMeans, r.Trials); err != nil {
		return err
	}
	if k := r.Policy.NumArms(); k != len(r.TrueMeans) {
		return fmt.Errorf("%w: policy %s has %d arms but %d true means were given",
			ErrConfiguration, r.Policy.Name(), k, len(r.TrueMeans))
	}
	return nil
}

// Run executes all trials and returns the complete ResultLog.
// Errors surface immediately; no partial log is returned on failure.
// Postcondition: log.Len() == Trials.
func (r *ExperimentRunner) Run() (*trace.ResultLog, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	log := trace.NewResultLog(r.Policy.Name(), r.TrueMeans, r.Trials)
	logrus.Debugf("Starting %s experiment: run=%s arms=%d trials=%d", r.Policy.Name(), log.RunID, len(r.TrueMeans), r.Trials)

	for trial := 1; trial <= r.Trials; trial++ {
		arm, err := r.Policy.Select()
		if err != nil {
			return nil, fmt.Errorf("trial %d: selecting arm: %w", trial, err)
		}
		if arm < 0 || arm >= len(r.TrueMeans) {
			return nil, fmt.Errorf("trial %d: %s selected arm %d out of range [0, %d)", trial, r.Policy.Name(), arm, len(r.TrueMeans))
		}
		reward, err := r.Rewards.Sample(r.TrueMeans[arm])
		if err != nil {
			return nil, fmt.Errorf("trial %d: sampling reward for arm %d: %w", trial, arm, err)
		}
		r.Policy.Update(arm, reward)
		log.Append(trace.TrialRecord{
			Trial:            trial,
			Arm:              arm,
			Reward:           reward,
			CumulativeReward: r.Policy.CumulativeReward(),
		})
	}

	logrus.Debugf("Finished %s experiment: run=%s cumulative_reward=%.4f", r.Policy.Name(), log.RunID, log.CumulativeReward())
	return log, nil
}

// RunExperiment builds the named algorithm and a Gaussian reward model from cfg,
// drawing both from isolated rng streams, and runs it.
func RunExperiment(cfg *ExperimentConfig, algorithm string, rng *PartitionedRNG) (*trace.ResultLog, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !IsValidAlgorithm(algorithm) {
		return nil, fmt.Errorf("%w: unknown algorithm %q; valid algorithms: %v", ErrConfiguration, algorithm, ValidAlgorithmNames())
	}
	rewards, err := NewGaussianReward(cfg.RewardStdDev, rng.ForSubsystem(SubsystemFor(SubsystemReward, algorithm)))
	if err != nil {
		return nil, err
	}
	policy := NewPolicy(algorithm, len(cfg.TrueMeans), cfg.Greedy, rng.ForSubsystem(SubsystemFor(SubsystemPolicy, algorithm)))
	return NewExperimentRunner(policy, rewards, cfg.TrueMeans, cfg.Trials).Run()
}

// RunAll runs every algorithm in cfg.Algorithms, in order, one after another.
// Randomness derives from cfg.Seed. Fails on the first error.
func RunAll(cfg *ExperimentConfig) ([]*trace.ResultLog, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	rng := NewPartitionedRNG(NewSimulationKey(cfg.Seed))
	logs := make([]*trace.ResultLog, 0, len(cfg.Algorithms))
	for _, algorithm := range cfg.Algorithms {
		log, err := RunExperiment(cfg, algorithm, rng)
		if err != nil {
			return nil, fmt.Errorf("running %s: %w", algorithm, err)
		}
		logs = append(logs, log)
	}
	return logs, nil
}
