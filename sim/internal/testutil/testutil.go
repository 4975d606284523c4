// Package testutil provides shared test infrastructure for the bandit engine.
// It consolidates assertion helpers and fixture writers used across
// the sim/ test packages.
package testutil

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}

// WriteTempFile writes content to name inside a per-test temp dir and returns its path.
func WriteTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// ConstantRewards is a RewardModel stub that returns trueMean + Offset with no noise.
type ConstantRewards struct {
	Offset float64
}

// Sample returns trueMean + Offset.
func (c ConstantRewards) Sample(trueMean float64) (float64, error) {
	return trueMean + c.Offset, nil
}
