// Package report turns ResultLogs into artifacts: per-trial CSV records,
// logged summaries, cumulative reward/regret series and a metrics textfile.
// Nothing here feeds back into the engine.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/inference-sim/bandit-sim/sim/trace"
)

// resultColumns is the header of the per-trial results file.
var resultColumns = []string{"ArmIndex", "Reward", "Algorithm"}

// WriteResultsCSV writes one row per trial: chosen arm, reward, algorithm name.
func WriteResultsCSV(w io.Writer, log *trace.ResultLog) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(resultColumns); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for i := 0; i < log.Len(); i++ {
		r := log.At(i)
		row := []string{
			strconv.Itoa(r.Arm),
			strconv.FormatFloat(r.Reward, 'f', -1, 64),
			log.Algorithm,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("writing CSV row %d: %w", r.Trial, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// SaveResultsCSV writes the per-trial results of log to path.
func SaveResultsCSV(path string, log *trace.ResultLog) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating results file: %w", err)
	}
	if err := WriteResultsCSV(file, log); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}
