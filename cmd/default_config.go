package cmd

import (
	"bytes"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Problem describes a preset problem instance in defaults.yaml.
// Zero Trials or RewardStdDev means "keep the experiment default".
type Problem struct {
	Description  string    `yaml:"description"`
	TrueMeans    []float64 `yaml:"true_means"`
	Trials       int       `yaml:"trials"`
	RewardStdDev float64   `yaml:"reward_stddev"`
}

// Config represents the full defaults.yaml structure.
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
type Config struct {
	Version  string             `yaml:"version"`
	Problems map[string]Problem `yaml:"problems"`
}

// loadDefaultsConfig parses defaults.yaml into a Config struct.
// Uses strict field checking: typos must cause errors.
func loadDefaultsConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading defaults file %s: %w", path, err)
	}
	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing defaults YAML: %w", err)
	}
	return cfg, nil
}

// GetProblem returns the named preset problem from the defaults file.
func GetProblem(name, defaultsFilePath string) (Problem, error) {
	cfg, err := loadDefaultsConfig(defaultsFilePath)
	if err != nil {
		return Problem{}, err
	}
	problem, ok := cfg.Problems[name]
	if !ok {
		return Problem{}, fmt.Errorf("unknown preset %q; available presets: %v", name, cfg.ProblemNames())
	}
	return problem, nil
}

// ProblemNames returns the preset names, sorted.
func (c Config) ProblemNames() []string {
	names := make([]string, 0, len(c.Problems))
	for name := range c.Problems {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
