// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ConversionJob describes one batch conversion run. It is immutable once
// the run starts.
type ConversionJob struct {
	// Roots are the directories walked recursively for input files.
	Roots []string `json:"roots" yaml:"roots"`

	// Source is the format whose extension set selects input files.
	Source Format `json:"source" yaml:"source"`

	// Target is the format inputs are converted to.
	Target Format `json:"target" yaml:"target"`

	// Workers caps concurrent conversions (default 4 when zero).
	Workers int `json:"workers" yaml:"workers"`
}

// FileTask is one unit of conversion work: a single discovered input file
// plus its position in the discovered list. Each task is consumed exactly
// once by the dispatcher.
type FileTask struct {
	InputPath string
	Index     int
	Total     int
}

// Failure records one file that could not be converted.
type Failure struct {
	Path   string `json:"path" yaml:"path"`
	Reason string `json:"reason" yaml:"reason"`
}

// Outcome is the result of one completed FileTask. Percent reflects the
// run's overall completion at the moment this outcome was observed; it is
// monotonically non-decreasing in observation order.
type Outcome struct {
	Percent int
	Message string

	// Failure is nil on success.
	Failure *Failure

	// Outputs lists the files created by a successful conversion.
	Outputs []string
}

// RunResult is the final aggregate of a run: every failure across all
// tasks, finalized once each discovered file has produced an outcome.
type RunResult struct {
	// Total is the number of files discovered for the run.
	Total int `json:"total" yaml:"total"`

	// Failures collects the failed files in completion order.
	Failures []Failure `json:"failures,omitempty" yaml:"failures,omitempty"`
}

// Succeeded returns the number of files converted without error.
func (r RunResult) Succeeded() int {
	return r.Total - len(r.Failures)
}

// HasFailures reports whether any file failed conversion.
func (r RunResult) HasFailures() bool {
	return len(r.Failures) > 0
}

// NoFiles reports whether the run discovered nothing to convert, a
// condition reported distinctly from a run with failures.
func (r RunResult) NoFiles() bool {
	return r.Total == 0
}
