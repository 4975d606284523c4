package report

import (
	"fmt"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/inference-sim/bandit-sim/sim/trace"
)

const metricsNamespace = "bandit"

// ExperimentMetrics holds the final-state gauges of one or more experiment runs.
type ExperimentMetrics struct {
	registry         *prometheus.Registry
	trials           *prometheus.GaugeVec
	cumulativeReward *prometheus.GaugeVec
	averageReward    *prometheus.GaugeVec
	totalRegret      *prometheus.GaugeVec
	pseudoRegret     *prometheus.GaugeVec
	armPulls         *prometheus.GaugeVec
}

// NewExperimentMetrics creates the gauges on a private registry.
func NewExperimentMetrics() *ExperimentMetrics {
	gauge := func(name, help string, labels ...string) *prometheus.GaugeVec {
		return prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      name,
			Help:      help,
		}, labels)
	}
	m := &ExperimentMetrics{
		registry:         prometheus.NewRegistry(),
		trials:           gauge("trials", "Number of trials played.", "algorithm"),
		cumulativeReward: gauge("cumulative_reward", "Sum of observed rewards.", "algorithm"),
		averageReward:    gauge("average_reward", "Cumulative reward divided by trials.", "algorithm"),
		totalRegret:      gauge("total_regret", "Trials times best true mean minus cumulative reward.", "algorithm"),
		pseudoRegret:     gauge("pseudo_regret", "Sum of best true mean minus true mean of each chosen arm.", "algorithm"),
		armPulls:         gauge("arm_pulls", "Number of times each arm was chosen.", "algorithm", "arm"),
	}
	m.registry.MustRegister(m.trials, m.cumulativeReward, m.averageReward, m.totalRegret, m.pseudoRegret, m.armPulls)
	return m
}

// Registry exposes the underlying registry for gathering.
func (m *ExperimentMetrics) Registry() *prometheus.Registry { return m.registry }

// Observe sets every gauge from the final state of log.
// Returns trace.ErrNoData for an empty log.
func (m *ExperimentMetrics) Observe(log *trace.ResultLog) error {
	avg, err := log.AverageReward()
	if err != nil {
		return err
	}
	summary := trace.Summarize(log)
	alg := log.Algorithm
	m.trials.WithLabelValues(alg).Set(float64(summary.Trials))
	m.cumulativeReward.WithLabelValues(alg).Set(summary.CumulativeReward)
	m.averageReward.WithLabelValues(alg).Set(avg)
	m.totalRegret.WithLabelValues(alg).Set(summary.TotalRegret)
	m.pseudoRegret.WithLabelValues(alg).Set(summary.PseudoRegret)
	for _, arm := range summary.Arms {
		m.armPulls.WithLabelValues(alg, strconv.Itoa(arm.Arm)).Set(float64(arm.Pulls))
	}
	return nil
}

// WriteTextfile writes the gauges in Prometheus text format to path,
// suitable for node-exporter's textfile collector.
func (m *ExperimentMetrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}

// WriteMetricsTextfile observes every log and writes the snapshot to path.
func WriteMetricsTextfile(path string, logs ...*trace.ResultLog) error {
	m := NewExperimentMetrics()
	for _, l := range logs {
		if err := m.Observe(l); err != nil {
			return err
		}
	}
	return m.WriteTextfile(path)
}
