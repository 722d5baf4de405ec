// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"errors"
	"fmt"
)

// Sentinel errors for failures detected before any process is spawned.
var (
	// ErrInputNotFound reports a missing or non-regular input file.
	ErrInputNotFound = errors.New("input file not found")

	// ErrFormatUnresolved reports that no target format could be inferred
	// from the output extension and none was supplied explicitly.
	ErrFormatUnresolved = errors.New("target format unresolved")

	// ErrToolNotFound reports that the external binary could not be
	// resolved to an executable.
	ErrToolNotFound = errors.New("conversion tool not found")
)

// ToolError reports that the external tool ran but did not succeed: either
// it exited non-zero or it was cancelled. The captured streams are carried
// verbatim for diagnostics.
type ToolError struct {
	Tool     string
	ExitCode int
	Stdout   []byte
	Stderr   []byte
	Err      error // non-nil when the run was cancelled or timed out
}

func (e *ToolError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v (stderr: %s)", e.Tool, e.Err, e.Stderr)
	}
	return fmt.Sprintf("%s exited with code %d (stdout: %s; stderr: %s)",
		e.Tool, e.ExitCode, e.Stdout, e.Stderr)
}

func (e *ToolError) Unwrap() error { return e.Err }

// UnexpectedError wraps any failure outside the known categories. Convert
// never lets such a failure escape untyped.
type UnexpectedError struct {
	Err error
}

func (e *UnexpectedError) Error() string {
	return fmt.Sprintf("unexpected error: %v", e.Err)
}

func (e *UnexpectedError) Unwrap() error { return e.Err }
