package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ShadowStrikeHQ/file-mime-converter/internal/convert"
	"github.com/ShadowStrikeHQ/file-mime-converter/internal/journal"
	"github.com/ShadowStrikeHQ/file-mime-converter/internal/toolexec"
	"github.com/ShadowStrikeHQ/file-mime-converter/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert <input_file> <output_file>",
	Short: "Convert a single file via the external tool",
	Long: `Convert runs one conversion: the input file must exist, and the output
file's extension selects the target format. When the extension does not map
to a known MIME type, supply --target-mime to proceed anyway.

The tool invocation is always <tool> -f <output-extension> -o <output> <input>.`,
	Args: cobra.ExactArgs(2),
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	toolCfg, err := toolConfig(cmd)
	if err != nil {
		return err
	}
	targetMIME, _ := cmd.Flags().GetString("target-mime")

	driver := convert.NewDriver(toolexec.OSExecutor{}, toolCfg, logger)

	started := time.Now()
	res, convErr := driver.Convert(cmd.Context(), convert.Request{
		InputPath:  args[0],
		OutputPath: args[1],
		TargetMIME: targetMIME,
	})

	appendJournal(cmd, toolCfg, args, started, res, convErr)

	if convErr != nil {
		fmt.Fprintln(os.Stdout, "File conversion failed.")
		return convErr
	}

	fmt.Fprintf(os.Stdout, "File successfully converted to %s\n", res.OutputPath)
	return nil
}

// appendJournal records the run outcome. Journal trouble never fails the
// conversion; it is logged and ignored.
func appendJournal(cmd *cobra.Command, toolCfg types.ToolConfig, args []string, started time.Time, res convert.Result, convErr error) {
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

	rec := types.ConversionRecord{
		StartedAt:  started,
		InputPath:  res.InputPath,
		OutputPath: res.OutputPath,
		Format:     res.Format,
		TargetMIME: res.TargetMIME,
		Tool:       res.Tool,
		Status:     types.ConversionDone,
		ExitCode:   res.ExitCode,
		Duration:   res.Duration,
	}
	// Validation failures never reach path resolution; fall back to the
	// raw arguments so the record still names the request.
	if rec.InputPath == "" {
		rec.InputPath = args[0]
	}
	if rec.OutputPath == "" {
		rec.OutputPath = args[1]
	}
	if rec.Tool == "" {
		rec.Tool = toolCfg.Path
	}
	if convErr != nil {
		rec.Status = types.ConversionFailed
		rec.Error = convErr.Error()
	}

	if _, err := j.Append(cmd.Context(), rec); err != nil {
		logger.Warn("could not append journal record", "err", err)
	}
}

func init() {
	convertCmd.Flags().String("target-mime", "", "explicit target MIME type; used when the output extension cannot be resolved")
	convertCmd.Flags().String("tool", "", "path or name of the conversion executable (default \"unoconv\")")
	convertCmd.Flags().Duration("timeout", 0, "maximum duration for the external tool (0 = no limit)")
	convertCmd.Flags().Bool("no-journal", false, "do not record this run in the conversion journal")

	rootCmd.AddCommand(convertCmd)
}
