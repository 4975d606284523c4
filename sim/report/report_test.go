package report

import (
	"bytes"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/bandit-sim/sim/trace"
)

// makeLog builds a log over means from (arm, reward) pairs.
func makeLog(algorithm string, means []float64, pulls ...[2]float64) *trace.ResultLog {
	l := trace.NewResultLog(algorithm, means, len(pulls))
	cum := 0.0
	for i, p := range pulls {
		cum += p[1]
		l.Append(trace.TrialRecord{Trial: i + 1, Arm: int(p[0]), Reward: p[1], CumulativeReward: cum})
	}
	return l
}

func TestWriteResultsCSV_HeaderAndRows(t *testing.T) {
	// GIVEN a three-trial log
	l := makeLog("EpsilonGreedy", []float64{1, 2}, [2]float64{0, 1.25}, [2]float64{1, -0.5}, [2]float64{1, 2})

	// WHEN written as CSV
	var buf bytes.Buffer
	require.NoError(t, WriteResultsCSV(&buf, l))

	// THEN header plus one row per trial
	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"ArmIndex", "Reward", "Algorithm"}, rows[0])
	assert.Equal(t, []string{"0", "1.25", "EpsilonGreedy"}, rows[1])
	assert.Equal(t, []string{"1", "-0.5", "EpsilonGreedy"}, rows[2])
}

func TestWriteResultsCSV_EmptyLogWritesHeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteResultsCSV(&buf, trace.NewResultLog("x", []float64{1}, 0)))
	assert.Equal(t, "ArmIndex,Reward,Algorithm\n", buf.String())
}

func TestSaveResultsCSV_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")
	l := makeLog("ThompsonSampling", []float64{1}, [2]float64{0, 1})
	require.NoError(t, SaveResultsCSV(path, l))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "ArmIndex,Reward,Algorithm\n0,1,ThompsonSampling\n", string(data))
}

func TestSaveResultsCSV_BadPath(t *testing.T) {
	err := SaveResultsCSV(filepath.Join(t.TempDir(), "missing", "results.csv"), makeLog("x", []float64{1}))
	assert.Error(t, err)
}

func TestCumulativeSeries_Regret(t *testing.T) {
	// GIVEN max(trueMeans) = 3
	l := makeLog("alg", []float64{1, 3}, [2]float64{0, 1}, [2]float64{1, 3}, [2]float64{1, 2})

	s := CumulativeSeries(l)

	assert.Equal(t, []float64{1, 4, 6}, s.CumulativeReward)
	// regret[i] = 3*(i+1) - cumulative[i]
	assert.Equal(t, []float64{2, 2, 3}, s.CumulativeRegret)
	assert.Equal(t, "alg", s.Algorithm)
}

func TestWriteSeriesCSV_SideBySide(t *testing.T) {
	a := CumulativeSeries(makeLog("A", []float64{1}, [2]float64{0, 1}, [2]float64{0, 2}))
	b := CumulativeSeries(makeLog("B", []float64{1}, [2]float64{0, 0}, [2]float64{0, 1}))

	var buf bytes.Buffer
	require.NoError(t, WriteSeriesCSV(&buf, a, b))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Trial", "A Reward", "A Regret", "B Reward", "B Regret"}, rows[0])
	assert.Equal(t, []string{"2", "3", "-1", "1", "1"}, rows[2])
}

func TestWriteSeriesCSV_LengthMismatch(t *testing.T) {
	a := CumulativeSeries(makeLog("A", []float64{1}, [2]float64{0, 1}))
	b := CumulativeSeries(makeLog("B", []float64{1}, [2]float64{0, 1}, [2]float64{0, 1}))
	var buf bytes.Buffer
	assert.Error(t, WriteSeriesCSV(&buf, a, b))
	assert.Error(t, WriteSeriesCSV(&buf))
}

func TestSaveSeriesCSV_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "series.csv")
	require.NoError(t, SaveSeriesCSV(path, makeLog("A", []float64{2}, [2]float64{0, 2})))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Trial,A Reward,A Regret\n1,2,0\n", string(data))
}

func TestLogSummary_LogsAverageAndRegret(t *testing.T) {
	// GIVEN a captured global logger
	hook := logtest.NewGlobal()
	defer hook.Reset()
	logrus.SetLevel(logrus.InfoLevel)

	l := makeLog("ThompsonSampling", []float64{1, 4}, [2]float64{1, 4}, [2]float64{1, 2})

	// WHEN summarized
	require.NoError(t, LogSummary(l))

	// THEN both scalar summaries are logged at info
	var messages []string
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.InfoLevel {
			messages = append(messages, e.Message)
		}
	}
	assert.Equal(t, []string{
		"ThompsonSampling - Average Reward: 3.0000",
		"ThompsonSampling - Total Regret: 2.0000",
	}, messages)
}

func TestLogSummary_EmptyLogIsNoData(t *testing.T) {
	hook := logtest.NewGlobal()
	defer hook.Reset()

	err := LogSummary(trace.NewResultLog("x", []float64{1}, 0))
	assert.True(t, errors.Is(err, trace.ErrNoData))
	assert.Empty(t, hook.AllEntries(), "nothing may be logged for an empty log")
}

func TestExperimentMetrics_Observe(t *testing.T) {
	// GIVEN two logs
	m := NewExperimentMetrics()
	a := makeLog("EpsilonGreedy", []float64{1, 2}, [2]float64{0, 1}, [2]float64{1, 2}, [2]float64{1, 3})
	b := makeLog("ThompsonSampling", []float64{1, 2}, [2]float64{1, 2})

	// WHEN observed
	require.NoError(t, m.Observe(a))
	require.NoError(t, m.Observe(b))

	// THEN gauges reflect the final state of each run
	assert.Equal(t, 3.0, testutil.ToFloat64(m.trials.WithLabelValues("EpsilonGreedy")))
	assert.Equal(t, 6.0, testutil.ToFloat64(m.cumulativeReward.WithLabelValues("EpsilonGreedy")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.averageReward.WithLabelValues("EpsilonGreedy")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.totalRegret.WithLabelValues("EpsilonGreedy")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.pseudoRegret.WithLabelValues("EpsilonGreedy")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.armPulls.WithLabelValues("EpsilonGreedy", "1")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.armPulls.WithLabelValues("ThompsonSampling", "0")))
	assert.Equal(t, 4, testutil.CollectAndCount(m.armPulls))
}

func TestExperimentMetrics_ObserveEmptyLog(t *testing.T) {
	err := NewExperimentMetrics().Observe(trace.NewResultLog("x", []float64{1}, 0))
	assert.True(t, errors.Is(err, trace.ErrNoData))
}

func TestWriteMetricsTextfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bandit.prom")
	l := makeLog("EpsilonGreedy", []float64{1, 2}, [2]float64{1, 2})
	require.NoError(t, WriteMetricsTextfile(path, l))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "# TYPE bandit_average_reward gauge")
	assert.Contains(t, text, `bandit_average_reward{algorithm="EpsilonGreedy"} 2`)
	assert.True(t, strings.Contains(text, `bandit_arm_pulls{algorithm="EpsilonGreedy",arm="1"} 1`))
}
