package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/inference-sim/bandit-sim/sim"
	"github.com/inference-sim/bandit-sim/sim/report"
	"github.com/inference-sim/bandit-sim/sim/trace"
)

var (
	// Experiment flags shared by run and compare
	seed             int64     // Seed for all experiment randomness
	trials           int       // Number of trials per algorithm
	trueMeans        []float64 // True mean reward of each arm
	rewardStdDev     float64   // Standard deviation of reward noise
	logLevel         string    // Log verbosity level
	configPath       string    // Optional experiment YAML
	presetName       string    // Optional named problem from defaults.yaml
	defaultsFilePath string    // Path to defaults.yaml
	greedySchedule   string    // Greedy exploration schedule
	greedyEpsilon    float64   // Greedy epsilon for the fixed schedule

	// run-only flags
	algorithm   string // Algorithm to run
	resultsPath string // Per-trial CSV output

	// Output flags shared by run and compare
	outputDir   string // Directory for CSV artifacts
	metricsPath string // Optional Prometheus textfile
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "bandit-sim",
	Short: "Multi-armed bandit policy simulator",
}

// runCmd runs a single algorithm using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one bandit algorithm and report its results",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		if err := runSingle(cmd); err != nil {
			logrus.Fatalf("Experiment failed: %v", err)
		}
	},
}

// setupLogging applies --log to the global logger.
func setupLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// resolveConfig builds the experiment configuration. Precedence, lowest first:
// built-in defaults, --config file, --preset, explicitly set flags.
func resolveConfig(cmd *cobra.Command) (*sim.ExperimentConfig, error) {
	cfg := sim.DefaultExperimentConfig()
	if configPath != "" {
		loaded, err := sim.LoadExperimentConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if presetName != "" {
		problem, err := GetProblem(presetName, defaultsFilePath)
		if err != nil {
			return nil, err
		}
		cfg.TrueMeans = problem.TrueMeans
		if problem.Trials > 0 {
			cfg.Trials = problem.Trials
		}
		if problem.RewardStdDev > 0 {
			cfg.RewardStdDev = problem.RewardStdDev
		}
		logrus.Debugf("Using preset %q: %s", presetName, problem.Description)
	}

	// Flags override file values only when explicitly passed.
	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("trials") {
		cfg.Trials = trials
	}
	if flags.Changed("means") {
		cfg.TrueMeans = trueMeans
	}
	if flags.Changed("reward-stddev") {
		cfg.RewardStdDev = rewardStdDev
	}
	if flags.Changed("greedy-schedule") {
		cfg.Greedy.Schedule = greedySchedule
	}
	if flags.Changed("epsilon") {
		eps := greedyEpsilon
		cfg.Greedy.Epsilon = &eps
	}
	if flags.Lookup("algorithm") != nil && (flags.Changed("algorithm") || configPath == "") {
		cfg.Algorithms = []string{algorithm}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resultsFileName maps an algorithm name to its default CSV name,
// e.g. "epsilon-greedy" -> "epsilon_greedy_results.csv".
func resultsFileName(algorithm string) string {
	return strings.ReplaceAll(algorithm, "-", "_") + "_results.csv"
}

// runSingle executes `bandit-sim run`.
func runSingle(cmd *cobra.Command) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	logrus.Infof("Starting %s: arms=%d trials=%d seed=%d", strings.Join(cfg.Algorithms, ","), len(cfg.TrueMeans), cfg.Trials, cfg.Seed)

	logs, err := sim.RunAll(cfg)
	if err != nil {
		return err
	}
	for i, log := range logs {
		path := resultsPath
		if path == "" || len(logs) > 1 {
			path = filepath.Join(outputDir, resultsFileName(cfg.Algorithms[i]))
		}
		if err := writeReport(log, path); err != nil {
			return err
		}
	}
	if metricsPath != "" {
		if err := report.WriteMetricsTextfile(metricsPath, logs...); err != nil {
			return err
		}
	}
	logrus.Info("Experiment complete.")
	return nil
}

// writeReport saves the per-trial CSV for log and logs its summary.
func writeReport(log *trace.ResultLog, path string) error {
	if err := report.SaveResultsCSV(path, log); err != nil {
		return fmt.Errorf("saving %s results: %w", log.Algorithm, err)
	}
	logrus.Debugf("Wrote %d %s records to %s", log.Len(), log.Algorithm, path)
	return report.LogSummary(log)
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// addExperimentFlags registers the flags shared by run and compare on cmd.
func addExperimentFlags(cmd *cobra.Command) {
	cmd.Flags().Int64Var(&seed, "seed", sim.DefaultSeed, "Seed for all experiment randomness")
	cmd.Flags().IntVar(&trials, "trials", sim.DefaultTrials, "Number of trials per algorithm")
	cmd.Flags().Float64SliceVar(&trueMeans, "means", sim.DefaultTrueMeans, "Comma-separated true mean reward of each arm")
	cmd.Flags().Float64Var(&rewardStdDev, "reward-stddev", sim.DefaultRewardStdDev, "Standard deviation of Gaussian reward noise")
	cmd.Flags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")
	cmd.Flags().StringVar(&configPath, "config", "", "Experiment YAML file (flags override its values)")
	cmd.Flags().StringVar(&presetName, "preset", "", "Named problem from the defaults file")
	cmd.Flags().StringVar(&defaultsFilePath, "defaults", "defaults.yaml", "Path to the defaults file with preset problems")
	cmd.Flags().StringVar(&greedySchedule, "greedy-schedule", sim.ScheduleDecaying, "Greedy exploration schedule (decaying, fixed)")
	cmd.Flags().Float64Var(&greedyEpsilon, "epsilon", 0.1, "Greedy exploration rate for the fixed schedule")
	cmd.Flags().StringVar(&outputDir, "output-dir", ".", "Directory for CSV artifacts")
	cmd.Flags().StringVar(&metricsPath, "metrics-file", "", "Write final metrics in Prometheus text format to this file")
}

// init sets up CLI flags and subcommands
func init() {
	addExperimentFlags(runCmd)
	runCmd.Flags().StringVar(&algorithm, "algorithm", sim.AlgorithmEpsilonGreedy, fmt.Sprintf("Algorithm to run %v", sim.ValidAlgorithmNames()))
	runCmd.Flags().StringVar(&resultsPath, "results", "", "Per-trial CSV output (default <output-dir>/<algorithm>_results.csv)")

	addExperimentFlags(compareCmd)
	compareCmd.Flags().StringVar(&seriesPath, "series", "cumulative_series.csv", "Cumulative reward/regret series CSV, relative to --output-dir")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(presetsCmd)
}
