// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package batch

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ShadowStrikeHQ/file-mime-converter/internal/convert"
	"github.com/ShadowStrikeHQ/file-mime-converter/pkg/types"
)

// Options adjusts how a batch run treats its jobs.
type Options struct {
	// SkipExisting skips jobs whose output file already exists.
	SkipExisting bool
}

// Run processes every manifest job through the driver sequentially, printing
// a per-job status line to w and returning the full report. Job failures do
// not stop the run.
func Run(ctx context.Context, d *convert.Driver, m *Manifest, opts Options, w io.Writer) Report {
	report := Report{
		Jobs:      make([]JobOutcome, 0, len(m.Jobs)),
		Timestamp: time.Now(),
	}

	for _, job := range m.Jobs {
		outcome := runJob(ctx, d, job, opts, w)
		switch outcome.Status {
		case string(types.ConversionDone):
			report.Summary.Converted++
		case string(types.ConversionSkipped):
			report.Summary.Skipped++
		default:
			report.Summary.Failed++
		}
		report.Jobs = append(report.Jobs, outcome)
	}

	s := report.Summary
	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		s.Converted, s.Skipped, s.Failed, s.Total())
	return report
}

func runJob(ctx context.Context, d *convert.Driver, job Job, opts Options, w io.Writer) JobOutcome {
	outcome := JobOutcome{Input: job.Input, Output: job.Output, ExitCode: -1}

	if opts.SkipExisting {
		if _, err := os.Stat(job.Output); err == nil {
			fmt.Fprintf(w, "skipped: %s (already exists)\n", job.Output)
			outcome.Status = string(types.ConversionSkipped)
			return outcome
		}
	}

	res, err := d.Convert(ctx, convert.Request{
		InputPath:  job.Input,
		OutputPath: job.Output,
		TargetMIME: job.TargetMIME,
	})
	outcome.ExitCode = res.ExitCode
	outcome.Duration = res.Duration

	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", job.Input, err)
		outcome.Status = string(types.ConversionFailed)
		outcome.Error = err.Error()
		return outcome
	}

	fmt.Fprintf(w, "converted: %s\n", res.OutputPath)
	outcome.Status = string(types.ConversionDone)
	outcome.Output = res.OutputPath
	return outcome
}
