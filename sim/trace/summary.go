package trace

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ArmSummary aggregates the observed rewards of a single arm.
type ArmSummary struct {
	Arm          int
	TrueMean     float64
	Pulls        int
	MeanReward   float64
	StdDevReward float64 // sample standard deviation; 0 with fewer than two pulls
}

// TraceSummary aggregates statistics from a ResultLog.
type TraceSummary struct {
	Algorithm        string
	Trials           int
	CumulativeReward float64
	AverageReward    float64
	TotalRegret      float64
	PseudoRegret     float64
	BestArm          int     // index of the arm with the highest true mean (lowest index on ties)
	BestArmFraction  float64 // share of trials spent on BestArm
	Arms             []ArmSummary
}

// Summarize computes aggregate statistics from a ResultLog.
// Safe for nil or empty logs (returns zero-value fields).
func Summarize(l *ResultLog) *TraceSummary {
	summary := &TraceSummary{}
	if l == nil {
		return summary
	}
	summary.Algorithm = l.Algorithm
	summary.Trials = l.Len()
	summary.CumulativeReward = l.CumulativeReward()
	summary.TotalRegret = l.TotalRegret()
	summary.PseudoRegret = l.PseudoRegret()
	if avg, err := l.AverageReward(); err == nil {
		summary.AverageReward = avg
	}

	if len(l.TrueMeans) == 0 {
		return summary
	}

	rewards := make([][]float64, len(l.TrueMeans))
	for _, r := range l.records {
		rewards[r.Arm] = append(rewards[r.Arm], r.Reward)
	}

	summary.Arms = make([]ArmSummary, len(l.TrueMeans))
	for arm, obs := range rewards {
		as := ArmSummary{Arm: arm, TrueMean: l.TrueMeans[arm], Pulls: len(obs)}
		switch {
		case len(obs) >= 2:
			as.MeanReward, as.StdDevReward = stat.MeanStdDev(obs, nil)
		case len(obs) == 1:
			as.MeanReward = obs[0]
		}
		summary.Arms[arm] = as
	}

	summary.BestArm = floats.MaxIdx(l.TrueMeans)
	if summary.Trials > 0 {
		summary.BestArmFraction = float64(summary.Arms[summary.BestArm].Pulls) / float64(summary.Trials)
	}
	return summary
}
