// Package sim provides the multi-armed bandit policy engine.
//
// # Reading Guide
//
// Start with these files:
//   - policy.go: the BanditPolicy interface and the NewPolicy factory
//   - greedy.go, posterior.go: the two selection strategies
//   - runner.go: the trial loop producing a trace.ResultLog
//
// # Architecture
//
// The engine only produces data; consumers live in sub-packages:
//   - sim/trace/: TrialRecord, ResultLog and summaries (pure data)
//   - sim/report/: CSV export, summary logging, plot series, metrics textfile
//
// All randomness flows through a PartitionedRNG created once from the
// experiment seed. Each algorithm draws its decisions and its rewards from
// its own streams, so results are reproducible per algorithm.
//
// # Key Interfaces
//   - BanditPolicy: select an arm, update after observing a reward
//   - RewardModel: turn an arm's true mean into an observed reward
package sim
