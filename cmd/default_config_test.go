package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sim "github.com/inference-sim/bandit-sim/sim"
)

var repoDefaults = filepath.Join("..", "defaults.yaml")

func TestGetProblem_FourArmsMatchesExperimentDefaults(t *testing.T) {
	// GIVEN the shipped defaults.yaml
	// WHEN the four-arms preset is loaded
	p, err := GetProblem("four-arms", repoDefaults)
	require.NoError(t, err)

	// THEN it is the default comparison problem
	assert.Equal(t, sim.DefaultTrueMeans, p.TrueMeans)
	assert.Equal(t, sim.DefaultTrials, p.Trials)
}

func TestDefaultsConfig_EveryPresetIsValid(t *testing.T) {
	cfg, err := loadDefaultsConfig(repoDefaults)
	require.NoError(t, err)
	require.NotEmpty(t, cfg.Problems)
	for _, name := range cfg.ProblemNames() {
		p := cfg.Problems[name]
		assert.NoError(t, sim.ValidateProblem(p.TrueMeans, p.Trials), "preset %s", name)
		assert.NotEmpty(t, p.Description, "preset %s", name)
	}
}

func TestLoadDefaultsConfig_UnknownField_Errors(t *testing.T) {
	path := writeFile(t, "defaults.yaml", `
version: "1"
problems:
  p:
    true_means: [1]
    trails: 10
`)
	_, err := loadDefaultsConfig(path)
	assert.Error(t, err, "typo'd field must be rejected")
}

func TestLoadDefaultsConfig_MissingFile_Errors(t *testing.T) {
	_, err := loadDefaultsConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestListPresets_SortedOneLineEach(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, listPresets(&buf, repoDefaults))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "close-arms"))
	assert.True(t, strings.HasPrefix(lines[1], "four-arms"))
	assert.Contains(t, lines[1], "means=[1 2 3 4]")
	assert.True(t, strings.HasPrefix(lines[3], "noisy-ten-arms"))
}
