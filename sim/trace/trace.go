package trace

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/floats"
)

// ErrNoData is returned by averages over a log that holds no trials.
var ErrNoData = errors.New("no trials recorded")

// ResultLog is the ordered, append-only record of one experiment run.
// It is the only artifact handed to reporting collaborators.
type ResultLog struct {
	RunID     string    // unique per run; metadata only, never part of the numeric contract
	Algorithm string    // display name of the policy that produced the log
	TrueMeans []float64 // true arm means the run was played against
	records   []TrialRecord
}

// NewResultLog creates an empty log. trueMeans is copied.
// capacity is a sizing hint for the expected trial count.
func NewResultLog(algorithm string, trueMeans []float64, capacity int) *ResultLog {
	means := make([]float64, len(trueMeans))
	copy(means, trueMeans)
	if capacity < 0 {
		capacity = 0
	}
	return &ResultLog{
		RunID:     uuid.NewString(),
		Algorithm: algorithm,
		TrueMeans: means,
		records:   make([]TrialRecord, 0, capacity),
	}
}

// Append adds the next trial. Trial indices must be contiguous starting at 1;
// anything else is a programming error in the caller and panics.
func (l *ResultLog) Append(r TrialRecord) {
	if want := len(l.records) + 1; r.Trial != want {
		panic(fmt.Sprintf("trace: out-of-order trial %d, want %d", r.Trial, want))
	}
	l.records = append(l.records, r)
}

// Len returns the number of recorded trials.
func (l *ResultLog) Len() int { return len(l.records) }

// Records returns a copy of the recorded trials in trial order.
func (l *ResultLog) Records() []TrialRecord {
	out := make([]TrialRecord, len(l.records))
	copy(out, l.records)
	return out
}

// At returns the record at zero-based position i.
func (l *ResultLog) At(i int) TrialRecord { return l.records[i] }

// CumulativeReward returns the cumulative reward after the last trial, or 0 for an empty log.
func (l *ResultLog) CumulativeReward() float64 {
	if len(l.records) == 0 {
		return 0
	}
	return l.records[len(l.records)-1].CumulativeReward
}

// CumulativeRewards returns the per-trial cumulative reward series.
func (l *ResultLog) CumulativeRewards() []float64 {
	out := make([]float64, len(l.records))
	for i, r := range l.records {
		out[i] = r.CumulativeReward
	}
	return out
}

// AverageReward returns CumulativeReward / trials.
func (l *ResultLog) AverageReward() (float64, error) {
	if len(l.records) == 0 {
		return 0, fmt.Errorf("average reward of %q: %w", l.Algorithm, ErrNoData)
	}
	return l.CumulativeReward() / float64(len(l.records)), nil
}

// BestMean returns max(TrueMeans), or 0 when the log carries no means.
func (l *ResultLog) BestMean() float64 {
	if len(l.TrueMeans) == 0 {
		return 0
	}
	return floats.Max(l.TrueMeans)
}

// TotalRegret returns trials*max(TrueMeans) - CumulativeReward: regret against
// always pulling the single best arm. Observed rewards are noisy, so a single
// run can yield a negative value.
func (l *ResultLog) TotalRegret() float64 {
	return float64(len(l.records))*l.BestMean() - l.CumulativeReward()
}

// PseudoRegret returns Σ (max(TrueMeans) - TrueMeans[arm_i]) over all trials:
// the expected regret of the arms actually chosen. Never negative.
func (l *ResultLog) PseudoRegret() float64 {
	if len(l.TrueMeans) == 0 {
		return 0
	}
	best := l.BestMean()
	regret := 0.0
	for _, r := range l.records {
		regret += best - l.TrueMeans[r.Arm]
	}
	return regret
}
