// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert drives a single document conversion through an external
// binary (unoconv or a compatible front end). The driver validates the
// input, resolves the target format, builds the tool invocation, and
// interprets the child process outcome. The document transformation itself
// is fully delegated to the tool.
package convert

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ShadowStrikeHQ/file-mime-converter/internal/toolexec"
	"github.com/ShadowStrikeHQ/file-mime-converter/pkg/types"
)

// Request names one conversion: an existing input file, a destination path
// whose extension selects the output format, and an optional explicit MIME
// override used when the extension alone cannot be resolved.
type Request struct {
	InputPath  string
	OutputPath string
	TargetMIME string
}

// Result describes a completed (or attempted) conversion run.
type Result struct {
	// InputPath and OutputPath are the canonical absolute paths handed to
	// the tool.
	InputPath  string
	OutputPath string

	// Format is the format flag passed to the tool.
	Format string

	// TargetMIME is the resolved MIME type, explicit or inferred. May be
	// empty when an explicit override was not given and the run failed
	// before inference.
	TargetMIME string

	// Tool is the resolved tool path.
	Tool string

	// ExitCode is the child exit status; -1 when no process was spawned.
	ExitCode int

	// Duration is the child process wall-clock time.
	Duration time.Duration
}

// Driver executes conversions through an injected executor.
type Driver struct {
	exec    toolexec.Executor
	tool    string
	timeout time.Duration
	log     *slog.Logger
}

// NewDriver creates a Driver using cfg.Path as the external tool (default
// "unoconv") and cfg.Timeout as the per-run bound (zero disables it).
func NewDriver(exec toolexec.Executor, cfg types.ToolConfig, log *slog.Logger) *Driver {
	tool := cfg.Path
	if tool == "" {
		tool = DefaultTool
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Driver{
		exec:    exec,
		tool:    tool,
		timeout: cfg.Timeout,
		log:     log,
	}
}

// Convert runs the full pipeline for one request. Failures are returned as
// one of the package's typed errors (ErrInputNotFound, ErrFormatUnresolved,
// ErrToolNotFound, *ToolError) or *UnexpectedError; Convert never panics.
// Validation failures return before any process is spawned.
func (d *Driver) Convert(ctx context.Context, req Request) (res Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &UnexpectedError{Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	res.ExitCode = -1

	info, statErr := os.Stat(req.InputPath)
	if statErr != nil || !info.Mode().IsRegular() {
		d.log.Error("input file not found", "path", req.InputPath)
		return res, fmt.Errorf("%w: %s", ErrInputNotFound, req.InputPath)
	}

	// An explicit MIME override bypasses inference entirely; without one
	// the output extension must map to a known type.
	res.TargetMIME = req.TargetMIME
	if res.TargetMIME == "" {
		res.TargetMIME = InferMIME(req.OutputPath)
		if res.TargetMIME == "" {
			d.log.Error("cannot infer target MIME type from output extension",
				"output", req.OutputPath, "extension", FormatFlag(req.OutputPath))
			return res, fmt.Errorf("%w: output %s", ErrFormatUnresolved, req.OutputPath)
		}
		d.log.Info("inferred target MIME type", "mime", res.TargetMIME)
	}

	absIn, absErr := filepath.Abs(req.InputPath)
	if absErr != nil {
		return res, &UnexpectedError{Err: absErr}
	}
	absOut, absErr := filepath.Abs(req.OutputPath)
	if absErr != nil {
		return res, &UnexpectedError{Err: absErr}
	}
	res.InputPath = absIn
	res.OutputPath = absOut

	// The tool's format flag is always the output extension, never the
	// MIME string.
	res.Format = FormatFlag(absOut)

	tool, lookErr := resolveTool(d.exec, d.tool)
	if lookErr != nil {
		d.log.Error("conversion tool not found on PATH", "tool", d.tool, "err", lookErr)
		return res, fmt.Errorf("%w: %s", ErrToolNotFound, d.tool)
	}
	res.Tool = tool

	args := toolArgs(res.Format, absOut, absIn)
	d.log.Info("executing conversion", "command", tool+" "+strings.Join(args, " "))

	runCtx := ctx
	if d.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	out, runErr := d.exec.Run(runCtx, tool, args)
	res.ExitCode = out.ExitCode
	res.Duration = out.Duration

	if runErr != nil {
		if runCtx.Err() != nil {
			d.log.Error("conversion cancelled", "tool", tool, "err", runErr)
			return res, &ToolError{
				Tool:     tool,
				ExitCode: out.ExitCode,
				Stdout:   out.Stdout,
				Stderr:   out.Stderr,
				Err:      runErr,
			}
		}
		// Spawn-time failure: the binary existed at lookup but could not
		// be started (deleted since, not executable).
		d.log.Error("conversion tool failed to start", "tool", tool, "err", runErr)
		return res, fmt.Errorf("%w: %s: %v", ErrToolNotFound, tool, runErr)
	}

	if out.ExitCode != 0 {
		d.log.Error("conversion failed",
			"exit_code", out.ExitCode,
			"stdout", string(out.Stdout),
			"stderr", string(out.Stderr))
		return res, &ToolError{
			Tool:     tool,
			ExitCode: out.ExitCode,
			Stdout:   out.Stdout,
			Stderr:   out.Stderr,
		}
	}

	d.log.Info("conversion successful", "output", absOut, "duration", out.Duration)
	return res, nil
}
