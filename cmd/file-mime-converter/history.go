package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ShadowStrikeHQ/file-mime-converter/internal/journal"
	"github.com/ShadowStrikeHQ/file-mime-converter/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect the conversion journal",
	Long: `History reads the local SQLite journal that records every conversion
run: inputs, resolved format, tool, outcome, and duration.`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent conversion records",
	RunE:  runHistoryList,
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	j, err := openJournal(cmd)
	if err != nil {
		return err
	}
	defer j.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	status, _ := cmd.Flags().GetString("status")

	records, err := j.List(cmd.Context(), journal.ListOptions{
		Limit:  limit,
		Status: types.ConversionStatus(status),
	})
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	if len(records) == 0 {
		fmt.Println("No conversions recorded.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-5s  %-20s  %-9s  %-6s  %-35s  %s\n",
		"ID", "Started", "Status", "Format", "Input", "Output")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 110))

	for _, r := range records {
		fmt.Fprintf(os.Stdout, "%-5d  %-20s  %-9s  %-6s  %-35s  %s\n",
			r.ID,
			r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			r.Status,
			r.Format,
			truncate(r.InputPath, 35),
			r.OutputPath)
	}

	fmt.Fprintf(os.Stdout, "\n%d records\n", len(records))
	return nil
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all conversion records",
	RunE: func(cmd *cobra.Command, args []string) error {
		j, err := openJournal(cmd)
		if err != nil {
			return err
		}
		defer j.Close()

		n, err := j.Clear(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("Cleared %d record(s).\n", n)
		return nil
	},
}

func openJournal(cmd *cobra.Command) (*journal.Journal, error) {
	cfg := journalConfig(cmd)
	if cfg.Disabled {
		return nil, fmt.Errorf("journal is disabled in configuration")
	}
	return journal.Open(cfg.Path)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

func init() {
	historyListCmd.Flags().Int("limit", 20, "maximum number of records")
	historyListCmd.Flags().String("status", "", "filter by status: converted, skipped, or failed")
	historyListCmd.Flags().Bool("json", false, "output records as JSON")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyClearCmd)

	rootCmd.AddCommand(historyCmd)
}
