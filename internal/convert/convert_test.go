// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ShadowStrikeHQ/file-mime-converter/internal/toolexec"
	"github.com/ShadowStrikeHQ/file-mime-converter/pkg/types"
)

// mockExecutor records invocations and returns configured responses.
type mockExecutor struct {
	availableBins map[string]bool // bare name -> whether LookPath succeeds
	result        toolexec.Result
	runErr        error

	calls [][]string // recorded as [name, args...]
}

func (m *mockExecutor) LookPath(file string) (string, error) {
	if m.availableBins[file] {
		return "/usr/bin/" + file, nil
	}
	return "", errors.New("not found: " + file)
}

func (m *mockExecutor) Run(ctx context.Context, name string, args []string) (toolexec.Result, error) {
	call := append([]string{name}, args...)
	m.calls = append(m.calls, call)
	if err := ctx.Err(); err != nil {
		return toolexec.Result{ExitCode: -1}, err
	}
	return m.result, m.runErr
}

func writeInput(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte("document body"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newTestDriver(exec toolexec.Executor, tool string) *Driver {
	return NewDriver(exec, types.ToolConfig{Path: tool}, nil)
}

func TestConvertMissingInput(t *testing.T) {
	exec := &mockExecutor{availableBins: map[string]bool{"unoconv": true}}
	d := newTestDriver(exec, "unoconv")

	_, err := d.Convert(context.Background(), Request{
		InputPath:  filepath.Join(t.TempDir(), "missing.docx"),
		OutputPath: "out.pdf",
	})
	if !errors.Is(err, ErrInputNotFound) {
		t.Fatalf("got %v, want ErrInputNotFound", err)
	}
	if len(exec.calls) != 0 {
		t.Errorf("no process should be spawned, got %d invocations", len(exec.calls))
	}
}

func TestConvertDirectoryInput(t *testing.T) {
	exec := &mockExecutor{availableBins: map[string]bool{"unoconv": true}}
	d := newTestDriver(exec, "unoconv")

	_, err := d.Convert(context.Background(), Request{
		InputPath:  t.TempDir(),
		OutputPath: "out.pdf",
	})
	if !errors.Is(err, ErrInputNotFound) {
		t.Fatalf("got %v, want ErrInputNotFound for directory input", err)
	}
	if len(exec.calls) != 0 {
		t.Errorf("no process should be spawned, got %d invocations", len(exec.calls))
	}
}

func TestConvertUnresolvableFormat(t *testing.T) {
	tests := []struct {
		name   string
		output string
	}{
		{"no extension", "report"},
		{"unknown extension", "report.zzz9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := &mockExecutor{availableBins: map[string]bool{"unoconv": true}}
			d := newTestDriver(exec, "unoconv")

			_, err := d.Convert(context.Background(), Request{
				InputPath:  writeInput(t, "report.odt"),
				OutputPath: tt.output,
			})
			if !errors.Is(err, ErrFormatUnresolved) {
				t.Fatalf("got %v, want ErrFormatUnresolved", err)
			}
			if len(exec.calls) != 0 {
				t.Errorf("no process should be spawned, got %d invocations", len(exec.calls))
			}
		})
	}
}

func TestConvertArgumentVector(t *testing.T) {
	exec := &mockExecutor{availableBins: map[string]bool{"unoconv": true}}
	d := newTestDriver(exec, "unoconv")

	input := writeInput(t, "report.odt")
	output := filepath.Join(filepath.Dir(input), "report.pdf")

	res, err := d.Convert(context.Background(), Request{
		InputPath:  input,
		OutputPath: output,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	absIn, _ := filepath.Abs(input)
	absOut, _ := filepath.Abs(output)

	if len(exec.calls) != 1 {
		t.Fatalf("got %d invocations, want 1", len(exec.calls))
	}
	want := []string{"/usr/bin/unoconv", "-f", "pdf", "-o", absOut, absIn}
	got := exec.calls[0]
	if len(got) != len(want) {
		t.Fatalf("got argv %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("argv[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if res.Format != "pdf" {
		t.Errorf("got format %q, want %q", res.Format, "pdf")
	}
	if res.TargetMIME != "application/pdf" {
		t.Errorf("got MIME %q, want %q", res.TargetMIME, "application/pdf")
	}
}

func TestConvertSuccessIgnoresStreams(t *testing.T) {
	exec := &mockExecutor{
		availableBins: map[string]bool{"unoconv": true},
		result: toolexec.Result{
			Stdout: []byte("chatter on stdout"),
			Stderr: []byte("warnings on stderr"),
		},
	}
	d := newTestDriver(exec, "unoconv")

	res, err := d.Convert(context.Background(), Request{
		InputPath:  writeInput(t, "in.odt"),
		OutputPath: "out.pdf",
	})
	if err != nil {
		t.Fatalf("exit code 0 must succeed regardless of streams, got: %v", err)
	}
	if res.ExitCode != 0 {
		t.Errorf("got exit code %d, want 0", res.ExitCode)
	}
}

func TestConvertToolFailure(t *testing.T) {
	exec := &mockExecutor{
		availableBins: map[string]bool{"unoconv": true},
		result: toolexec.Result{
			ExitCode: 2,
			Stdout:   []byte("partial progress"),
			Stderr:   []byte("soffice crashed"),
		},
	}
	d := newTestDriver(exec, "unoconv")

	_, err := d.Convert(context.Background(), Request{
		InputPath:  writeInput(t, "in.odt"),
		OutputPath: "out.pdf",
	})

	var toolErr *ToolError
	if !errors.As(err, &toolErr) {
		t.Fatalf("got %v, want *ToolError", err)
	}
	if toolErr.ExitCode != 2 {
		t.Errorf("got exit code %d, want 2", toolErr.ExitCode)
	}
	if string(toolErr.Stdout) != "partial progress" {
		t.Errorf("stdout not carried verbatim: %q", toolErr.Stdout)
	}
	if string(toolErr.Stderr) != "soffice crashed" {
		t.Errorf("stderr not carried verbatim: %q", toolErr.Stderr)
	}
}

func TestConvertToolNotFound(t *testing.T) {
	exec := &mockExecutor{availableBins: map[string]bool{}}
	d := newTestDriver(exec, "unoconv")

	_, err := d.Convert(context.Background(), Request{
		InputPath:  writeInput(t, "in.odt"),
		OutputPath: "out.pdf",
	})
	if !errors.Is(err, ErrToolNotFound) {
		t.Fatalf("got %v, want ErrToolNotFound", err)
	}
	if len(exec.calls) != 0 {
		t.Errorf("no process should be spawned, got %d invocations", len(exec.calls))
	}
}

func TestConvertToolPathBypassesLookup(t *testing.T) {
	// A tool value containing a path separator is handed to the executor
	// without PATH resolution.
	exec := &mockExecutor{availableBins: map[string]bool{}}
	d := newTestDriver(exec, "/opt/libreoffice/program/unoconv")

	_, err := d.Convert(context.Background(), Request{
		InputPath:  writeInput(t, "in.odt"),
		OutputPath: "out.pdf",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(exec.calls) != 1 {
		t.Fatalf("got %d invocations, want 1", len(exec.calls))
	}
	if exec.calls[0][0] != "/opt/libreoffice/program/unoconv" {
		t.Errorf("got tool %q, want explicit path", exec.calls[0][0])
	}
}

func TestConvertExplicitMIMEBypassesInference(t *testing.T) {
	// An extensionless output with an explicit MIME still runs the tool;
	// the format flag stays extension-derived (here: empty).
	exec := &mockExecutor{availableBins: map[string]bool{"unoconv": true}}
	d := newTestDriver(exec, "unoconv")

	res, err := d.Convert(context.Background(), Request{
		InputPath:  writeInput(t, "in.odt"),
		OutputPath: "plainout",
		TargetMIME: "application/pdf",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(exec.calls) != 1 {
		t.Fatalf("got %d invocations, want 1", len(exec.calls))
	}
	if exec.calls[0][2] != "" {
		t.Errorf("format flag should be the (empty) extension, got %q", exec.calls[0][2])
	}
	if res.TargetMIME != "application/pdf" {
		t.Errorf("explicit MIME should be preserved, got %q", res.TargetMIME)
	}
}

func TestConvertExplicitMIMENeverBecomesFormatFlag(t *testing.T) {
	exec := &mockExecutor{availableBins: map[string]bool{"unoconv": true}}
	d := newTestDriver(exec, "unoconv")

	_, err := d.Convert(context.Background(), Request{
		InputPath:  writeInput(t, "in.odt"),
		OutputPath: "out.pdf",
		TargetMIME: "application/x-custom",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := exec.calls[0][2]; got != "pdf" {
		t.Errorf("format flag must be extension-derived, got %q", got)
	}
}

func TestConvertTimeout(t *testing.T) {
	exec := &mockExecutor{availableBins: map[string]bool{"unoconv": true}}
	// A nanosecond deadline is expired by the time the executor runs.
	d := NewDriver(exec, types.ToolConfig{Path: "unoconv", Timeout: time.Nanosecond}, nil)

	_, err := d.Convert(context.Background(), Request{
		InputPath:  writeInput(t, "in.odt"),
		OutputPath: "out.pdf",
	})

	var toolErr *ToolError
	if !errors.As(err, &toolErr) {
		t.Fatalf("got %v, want *ToolError for timeout", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("timeout error should unwrap to DeadlineExceeded, got %v", err)
	}
}
