// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report writes a machine-readable YAML summary of a conversion run.
package report

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/convert-engine/pkg/types"
)

// Report is the YAML document written after a run.
type Report struct {
	StartedAt  time.Time           `yaml:"started_at"`
	FinishedAt time.Time           `yaml:"finished_at"`
	Job        types.ConversionJob `yaml:"job"`
	Total      int                 `yaml:"total"`
	Succeeded  int                 `yaml:"succeeded"`
	Failures   []types.Failure     `yaml:"failures,omitempty"`
}

// New builds a Report from a finished run.
func New(startedAt, finishedAt time.Time, job types.ConversionJob, result types.RunResult) Report {
	return Report{
		StartedAt:  startedAt.UTC(),
		FinishedAt: finishedAt.UTC(),
		Job:        job,
		Total:      result.Total,
		Succeeded:  result.Succeeded(),
		Failures:   result.Failures,
	}
}

// Write marshals the report and writes it to path.
func Write(path string, r Report) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report %s: %w", path, err)
	}
	return nil
}
