package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ShadowStrikeHQ/file-mime-converter/internal/convert"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List output extensions with known MIME types",
	Long: `Formats prints the built-in extension-to-MIME table. Output files with
one of these extensions need no --target-mime override.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(os.Stdout, "%-8s  %s\n", "Ext", "MIME type")
		for _, f := range convert.KnownFormats() {
			fmt.Fprintf(os.Stdout, "%-8s  %s\n", f[0], f[1])
		}
	},
}

func init() {
	rootCmd.AddCommand(formatsCmd)
}
