package cmd

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newCompareTestCmd registers the compare flags on a fresh command and parses args.
func newCompareTestCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	c := &cobra.Command{Use: "compare"}
	addExperimentFlags(c)
	c.Flags().StringVar(&seriesPath, "series", "cumulative_series.csv", "")
	require.NoError(t, c.ParseFlags(args))
	return c
}

func TestRunCompare_WritesAllArtifacts(t *testing.T) {
	// GIVEN a short comparison into a temp dir with metrics enabled
	dir := t.TempDir()
	metrics := filepath.Join(dir, "bandit.prom")
	c := newCompareTestCmd(t, "--trials", "100", "--output-dir", dir, "--metrics-file", metrics)

	// WHEN compared
	require.NoError(t, runCompare(c))

	// THEN each algorithm has its results CSV
	assert.Equal(t, 101, countLines(t, filepath.Join(dir, "epsilon_greedy_results.csv")))
	assert.Equal(t, 101, countLines(t, filepath.Join(dir, "thompson_sampling_results.csv")))

	// AND the series CSV holds both curves side by side
	f, err := os.Open(filepath.Join(dir, "cumulative_series.csv"))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 101)
	assert.Equal(t, []string{
		"Trial",
		"EpsilonGreedy Reward", "EpsilonGreedy Regret",
		"ThompsonSampling Reward", "ThompsonSampling Regret",
	}, rows[0])
	assert.Equal(t, "100", rows[100][0])

	// AND the metrics textfile covers both algorithms
	data, err := os.ReadFile(metrics)
	require.NoError(t, err)
	assert.Contains(t, string(data), `bandit_trials{algorithm="EpsilonGreedy"} 100`)
	assert.Contains(t, string(data), `bandit_trials{algorithm="ThompsonSampling"} 100`)
}

func TestRunCompare_NoMetricsFlag_NoMetricsFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, runCompare(newCompareTestCmd(t, "--trials", "20", "--output-dir", dir)))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{
		"cumulative_series.csv", "epsilon_greedy_results.csv", "thompson_sampling_results.csv",
	}, names)
}

func TestRunCompare_MissingOutputDir_Errors(t *testing.T) {
	c := newCompareTestCmd(t, "--trials", "20", "--output-dir", filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, runCompare(c))
}
