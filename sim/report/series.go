package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/inference-sim/bandit-sim/sim/trace"
)

// Series holds the per-trial curves a plotting tool needs for one algorithm.
type Series struct {
	Algorithm        string
	CumulativeReward []float64
	CumulativeRegret []float64 // regret[i] = max(trueMeans)*(i+1) - CumulativeReward[i]
}

// CumulativeSeries derives the reward and regret curves from log.
func CumulativeSeries(log *trace.ResultLog) Series {
	rewards := log.CumulativeRewards()
	best := log.BestMean()
	regret := make([]float64, len(rewards))
	for i, r := range rewards {
		regret[i] = best*float64(i+1) - r
	}
	return Series{Algorithm: log.Algorithm, CumulativeReward: rewards, CumulativeRegret: regret}
}

// WriteSeriesCSV writes the series side by side, one row per trial:
// Trial, <alg> Reward, <alg> Regret, ... All series must have the same length.
func WriteSeriesCSV(w io.Writer, series ...Series) error {
	if len(series) == 0 {
		return fmt.Errorf("no series to write")
	}
	n := len(series[0].CumulativeReward)
	header := []string{"Trial"}
	for _, s := range series {
		if len(s.CumulativeReward) != n || len(s.CumulativeRegret) != n {
			return fmt.Errorf("series %q has %d points, want %d", s.Algorithm, len(s.CumulativeReward), n)
		}
		header = append(header, s.Algorithm+" Reward", s.Algorithm+" Regret")
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	row := make([]string, len(header))
	for i := 0; i < n; i++ {
		row[0] = strconv.Itoa(i + 1)
		for j, s := range series {
			row[1+2*j] = strconv.FormatFloat(s.CumulativeReward[i], 'f', -1, 64)
			row[2+2*j] = strconv.FormatFloat(s.CumulativeRegret[i], 'f', -1, 64)
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("writing CSV row %d: %w", i+1, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// SaveSeriesCSV writes the cumulative series of every log to path.
func SaveSeriesCSV(path string, logs ...*trace.ResultLog) error {
	series := make([]Series, len(logs))
	for i, l := range logs {
		series[i] = CumulativeSeries(l)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating series file: %w", err)
	}
	if err := WriteSeriesCSV(file, series...); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}
