package types

import "time"

// ConvertConfig holds settings for the conversion stage.
type ConvertConfig struct {
	// Workers is the maximum number of concurrent conversions (default 4).
	Workers int `json:"workers" yaml:"workers"`

	// DPI is the resolution for PDF page rendering and image-to-PDF
	// embedding (default 300).
	DPI int `json:"dpi" yaml:"dpi"`
}

// OfficeConfig holds settings for the external office-suite converter used
// for spreadsheet-to-PDF conversion.
type OfficeConfig struct {
	// ExecutablePath locates the soffice binary. Empty means resolve
	// "soffice" from PATH. The path is validated once at startup.
	ExecutablePath string `json:"executable_path,omitempty" yaml:"executable_path,omitempty"`

	// Timeout bounds a single conversion invocation (default 2m). A hung
	// external process is killed when the deadline passes.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// HistoryConfig holds settings for the run-history store.
type HistoryConfig struct {
	// Dir is the directory containing the history database. Empty
	// disables recording.
	Dir string `json:"dir,omitempty" yaml:"dir,omitempty"`

	// MaxResults is the default maximum number of runs listed (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// EngineConfig groups all stage configurations.
type EngineConfig struct {
	Convert ConvertConfig `json:"convert" yaml:"convert"`
	Office  OfficeConfig  `json:"office" yaml:"office"`
	History HistoryConfig `json:"history" yaml:"history"`
}
