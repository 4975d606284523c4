package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/inference-sim/bandit-sim/sim"
	"github.com/inference-sim/bandit-sim/sim/report"
)

var seriesPath string // Cumulative series CSV, relative to --output-dir

// compareCmd runs every configured algorithm on the same problem and writes
// per-algorithm results plus a side-by-side cumulative series.
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Run epsilon-greedy and Thompson sampling on the same problem and compare them",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		if err := runCompare(cmd); err != nil {
			logrus.Fatalf("Comparison failed: %v", err)
		}
	},
}

// runCompare executes `bandit-sim compare`.
func runCompare(cmd *cobra.Command) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	logrus.Infof("Comparing %v: arms=%d trials=%d seed=%d", cfg.Algorithms, len(cfg.TrueMeans), cfg.Trials, cfg.Seed)

	logs, err := sim.RunAll(cfg)
	if err != nil {
		return err
	}
	for i, log := range logs {
		if err := writeReport(log, filepath.Join(outputDir, resultsFileName(cfg.Algorithms[i]))); err != nil {
			return err
		}
	}

	series := filepath.Join(outputDir, seriesPath)
	if err := report.SaveSeriesCSV(series, logs...); err != nil {
		return fmt.Errorf("saving cumulative series: %w", err)
	}
	logrus.Infof("Cumulative series written to %s", series)

	if metricsPath != "" {
		if err := report.WriteMetricsTextfile(metricsPath, logs...); err != nil {
			return err
		}
		logrus.Infof("Metrics written to %s", metricsPath)
	}
	return nil
}
