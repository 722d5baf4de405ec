// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package toolexec runs external binaries with captured output streams.
package toolexec

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"
)

// Result holds the outcome of a completed child process.
type Result struct {
	// ExitCode is the process exit status. Zero means success.
	ExitCode int

	// Stdout and Stderr are the fully drained output streams.
	Stdout []byte
	Stderr []byte

	// Duration is the wall-clock time from start to termination.
	Duration time.Duration
}

// Executor abstracts binary lookup and execution for testing.
type Executor interface {
	// LookPath resolves a bare command name through the executable search
	// path. Absolute and relative paths are returned as-is by callers.
	LookPath(file string) (string, error)

	// Run executes name with args, blocking until the process exits or ctx
	// is done. Both output streams are captured in full. A non-zero exit
	// is reported through Result.ExitCode, not through error; error is
	// reserved for failures to start or cancellation.
	Run(ctx context.Context, name string, args []string) (Result, error)
}

// OSExecutor is the production Executor backed by os/exec.
type OSExecutor struct{}

func (OSExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (OSExecutor) Run(ctx context.Context, name string, args []string) (Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	res := Result{
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		Duration: time.Since(start),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// The process ran and exited non-zero; a cancelled context
			// surfaces here too after the kill, so report ctx.Err then.
			if ctxErr := ctx.Err(); ctxErr != nil {
				res.ExitCode = exitErr.ExitCode()
				return res, ctxErr
			}
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		// Start failure: binary missing, permission denied, or the
		// context expired before the process could begin.
		res.ExitCode = -1
		if ctxErr := ctx.Err(); ctxErr != nil {
			return res, ctxErr
		}
		return res, err
	}

	return res, nil
}
