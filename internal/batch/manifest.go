// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package batch runs a manifest of conversions through the driver, one job
// at a time, and can save the outcome as a YAML report.
package batch

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"
)

// Job names one conversion in a manifest.
type Job struct {
	Input      string `yaml:"input"`
	Output     string `yaml:"output"`
	TargetMIME string `yaml:"target_mime,omitempty"`
}

// Defaults carries manifest-level settings applied when the corresponding
// flag is not set on the command line. Timeout uses time.ParseDuration
// syntax ("90s", "2m").
type Defaults struct {
	Tool    string `yaml:"tool,omitempty"`
	Timeout string `yaml:"timeout,omitempty"`
}

// ParseTimeout returns the default timeout, or zero when unset.
func (d Defaults) ParseTimeout() (time.Duration, error) {
	if d.Timeout == "" {
		return 0, nil
	}
	t, err := time.ParseDuration(d.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid defaults.timeout %q: %w", d.Timeout, err)
	}
	return t, nil
}

// Manifest is the on-disk list of conversion jobs.
type Manifest struct {
	Defaults Defaults `yaml:"defaults,omitempty"`
	Jobs     []Job    `yaml:"jobs"`
}

// ReadManifest loads and validates a manifest file.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	if len(m.Jobs) == 0 {
		return nil, fmt.Errorf("manifest %s contains no jobs", path)
	}
	if _, err := m.Defaults.ParseTimeout(); err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}
	for i, j := range m.Jobs {
		if j.Input == "" || j.Output == "" {
			return nil, fmt.Errorf("manifest %s: job %d is missing input or output", path, i+1)
		}
	}
	return &m, nil
}

// JobOutcome records how one manifest job ended.
type JobOutcome struct {
	Input    string        `yaml:"input"`
	Output   string        `yaml:"output"`
	Status   string        `yaml:"status"`
	ExitCode int           `yaml:"exit_code"`
	Duration time.Duration `yaml:"duration,omitempty"`
	Error    string        `yaml:"error,omitempty"`
}

// Summary counts job outcomes for a run.
type Summary struct {
	Converted int `yaml:"converted"`
	Skipped   int `yaml:"skipped"`
	Failed    int `yaml:"failed"`
}

// Total returns the total number of jobs processed.
func (s Summary) Total() int {
	return s.Converted + s.Skipped + s.Failed
}

// HasFailures reports whether any job failed.
func (s Summary) HasFailures() bool {
	return s.Failed > 0
}

// Report is the on-disk record of a batch run.
type Report struct {
	Manifest  string       `yaml:"manifest"`
	Jobs      []JobOutcome `yaml:"jobs"`
	Summary   Summary      `yaml:"summary"`
	Timestamp time.Time    `yaml:"timestamp"`
}

// WriteReport saves a batch report to a YAML file.
func WriteReport(path string, r Report) error {
	data, err := yaml.Marshal(&r)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadReport loads a previously written batch report.
func ReadReport(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading report: %w", err)
	}
	var r Report
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parsing report %s: %w", path, err)
	}
	return &r, nil
}
