// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared configuration and result types for the
// file-mime-converter CLI.
package types

import "time"

// ConversionStatus indicates the outcome of a single conversion run.
type ConversionStatus string

const (
	ConversionDone    ConversionStatus = "converted"
	ConversionSkipped ConversionStatus = "skipped"
	ConversionFailed  ConversionStatus = "failed"
)

// ConversionRecord is one journal entry: the inputs and outcome of a single
// driver run.
type ConversionRecord struct {
	// ID is assigned by the journal on insert.
	ID int64 `json:"id" yaml:"id"`

	// StartedAt is when the driver began the run.
	StartedAt time.Time `json:"started_at" yaml:"started_at"`

	// InputPath and OutputPath are the resolved absolute paths.
	InputPath  string `json:"input_path" yaml:"input_path"`
	OutputPath string `json:"output_path" yaml:"output_path"`

	// Format is the format flag handed to the external tool (the output
	// path's extension without its leading dot).
	Format string `json:"format" yaml:"format"`

	// TargetMIME is the resolved MIME type, explicit or inferred.
	TargetMIME string `json:"target_mime,omitempty" yaml:"target_mime,omitempty"`

	// Tool is the external binary name or path used for the run.
	Tool string `json:"tool" yaml:"tool"`

	// Status is the run outcome.
	Status ConversionStatus `json:"status" yaml:"status"`

	// ExitCode is the child process exit code; -1 when no process ran.
	ExitCode int `json:"exit_code" yaml:"exit_code"`

	// Duration is the wall-clock time of the run.
	Duration time.Duration `json:"duration" yaml:"duration"`

	// Error is the failure message, empty on success.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}
