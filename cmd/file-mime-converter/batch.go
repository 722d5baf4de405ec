package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ShadowStrikeHQ/file-mime-converter/internal/batch"
	"github.com/ShadowStrikeHQ/file-mime-converter/internal/convert"
	"github.com/ShadowStrikeHQ/file-mime-converter/internal/journal"
	"github.com/ShadowStrikeHQ/file-mime-converter/internal/toolexec"
	"github.com/ShadowStrikeHQ/file-mime-converter/pkg/types"
)

var batchCmd = &cobra.Command{
	Use:   "batch <manifest.yaml>",
	Short: "Run a manifest of conversions sequentially",
	Long: `Batch reads a YAML manifest of conversion jobs and runs them one at a
time through the same pipeline as convert. A manifest looks like:

  defaults:
    tool: /usr/bin/unoconv
    timeout: 2m
  jobs:
    - input: report.odt
      output: report.pdf
    - input: letter.docx
      output: letter.pdf
      target_mime: application/pdf

Job failures do not stop the run; batch exits non-zero if any job failed.`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func runBatch(cmd *cobra.Command, args []string) error {
	m, err := batch.ReadManifest(args[0])
	if err != nil {
		return err
	}

	toolCfg, err := toolConfig(cmd)
	if err != nil {
		return err
	}
	// Manifest defaults sit between config file and flags.
	if m.Defaults.Tool != "" && !cmd.Flags().Changed("tool") {
		toolCfg.Path = m.Defaults.Tool
	}
	if !cmd.Flags().Changed("timeout") {
		if t, err := m.Defaults.ParseTimeout(); err == nil && t > 0 {
			toolCfg.Timeout = t
		}
	}

	skipExisting, _ := cmd.Flags().GetBool("skip-existing")

	driver := convert.NewDriver(toolexec.OSExecutor{}, toolCfg, logger)
	report := batch.Run(cmd.Context(), driver, m, batch.Options{SkipExisting: skipExisting}, os.Stdout)
	report.Manifest = args[0]

	journalBatch(cmd, toolCfg.Path, report)

	if reportPath, _ := cmd.Flags().GetString("report"); reportPath != "" {
		if err := batch.WriteReport(reportPath, report); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Report written to %s\n", reportPath)
	}

	if report.Summary.HasFailures() {
		return fmt.Errorf("%d job(s) failed", report.Summary.Failed)
	}
	return nil
}

// journalBatch records every batch job in the conversion journal. Like the
// convert command, journal trouble is logged and ignored.
func journalBatch(cmd *cobra.Command, tool string, report batch.Report) {
	jCfg := journalConfig(cmd)
	if jCfg.Disabled {
		return
	}

	j, err := journal.Open(jCfg.Path)
	if err != nil {
		logger.Warn("journal unavailable", "err", err)
		return
	}
	defer j.Close()

	for _, job := range report.Jobs {
		rec := types.ConversionRecord{
			StartedAt:  report.Timestamp,
			InputPath:  job.Input,
			OutputPath: job.Output,
			Format:     convert.FormatFlag(job.Output),
			Tool:       tool,
			Status:     types.ConversionStatus(job.Status),
			ExitCode:   job.ExitCode,
			Duration:   job.Duration,
			Error:      job.Error,
		}
		if _, err := j.Append(cmd.Context(), rec); err != nil {
			logger.Warn("could not append journal record", "input", job.Input, "err", err)
			return
		}
	}
}

func init() {
	batchCmd.Flags().String("tool", "", "path or name of the conversion executable (overrides manifest defaults)")
	batchCmd.Flags().Duration("timeout", 0, "maximum duration per job (overrides manifest defaults)")
	batchCmd.Flags().Bool("skip-existing", false, "skip jobs whose output file already exists")
	batchCmd.Flags().Bool("no-journal", false, "do not record this run in the conversion journal")
	batchCmd.Flags().String("report", "", "write a YAML run report to this path")

	rootCmd.AddCommand(batchCmd)
}
