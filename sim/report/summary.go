package report

import (
	"github.com/sirupsen/logrus"

	"github.com/inference-sim/bandit-sim/sim/trace"
)

// LogSummary logs the average reward and total regret of log at info level,
// and the per-arm breakdown at debug level.
// Returns trace.ErrNoData for an empty log.
func LogSummary(log *trace.ResultLog) error {
	avg, err := log.AverageReward()
	if err != nil {
		return err
	}
	logrus.Infof("%s - Average Reward: %.4f", log.Algorithm, avg)
	logrus.Infof("%s - Total Regret: %.4f", log.Algorithm, log.TotalRegret())

	summary := trace.Summarize(log)
	logrus.Debugf("%s - Pseudo Regret: %.4f, best arm %d chosen in %.2f%% of trials",
		log.Algorithm, summary.PseudoRegret, summary.BestArm, 100*summary.BestArmFraction)
	for _, arm := range summary.Arms {
		logrus.WithFields(logrus.Fields{
			"algorithm": log.Algorithm,
			"arm":       arm.Arm,
			"true_mean": arm.TrueMean,
			"pulls":     arm.Pulls,
		}).Debugf("observed mean %.4f (stddev %.4f)", arm.MeanReward, arm.StdDevReward)
	}
	return nil
}
