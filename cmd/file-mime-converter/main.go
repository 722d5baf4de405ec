// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the file-mime-converter CLI, a thin
// wrapper around an external document-conversion binary (unoconv).
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ShadowStrikeHQ/file-mime-converter/internal/convert"
	"github.com/ShadowStrikeHQ/file-mime-converter/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is built once in PersistentPreRun and shared by all subcommands.
var logger *slog.Logger

// rootCmd is the base command for the file-mime-converter CLI.
var rootCmd = &cobra.Command{
	Use:   "file-mime-converter",
	Short: "Convert documents between formats via an external unoconv binary",
	Long: `file-mime-converter converts files between document formats by shelling
out to an external conversion binary (unoconv, a front end over a headless
LibreOffice/OpenOffice instance). The output file's extension selects the
target format; an explicit MIME type may be supplied when the extension
alone is ambiguous.

The converter itself is treated as a black box: this tool validates the
input, builds the invocation, and interprets the exit code.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = buildLogger(cmd)
	},
}

func buildLogger(cmd *cobra.Command) *slog.Logger {
	level := parseLevel(viper.GetString("log.level"))
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		level = slog.LevelDebug
	}

	format := viper.GetString("log.format")
	if f, _ := cmd.Flags().GetString("log-format"); cmd.Flags().Changed("log-format") {
		format = f
	}

	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	}
	return slog.New(handler)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// toolConfig merges the tool settings: flag > config file/env > default.
func toolConfig(cmd *cobra.Command) (types.ToolConfig, error) {
	cfg := types.ToolConfig{
		Path:    viper.GetString("tool.path"),
		Timeout: viper.GetDuration("tool.timeout"),
	}
	if cfg.Path == "" {
		cfg.Path = convert.DefaultTool
	}

	if cmd.Flags().Changed("tool") {
		cfg.Path, _ = cmd.Flags().GetString("tool")
	}
	if cmd.Flags().Changed("timeout") {
		cfg.Timeout, _ = cmd.Flags().GetDuration("timeout")
	}
	if cfg.Timeout < 0 {
		return cfg, fmt.Errorf("invalid timeout %v: must be zero or positive", cfg.Timeout)
	}
	return cfg, nil
}

// journalConfig merges the journal settings: flag > config file/env.
func journalConfig(cmd *cobra.Command) types.JournalConfig {
	cfg := types.JournalConfig{
		Path:     viper.GetString("journal.path"),
		Disabled: viper.GetBool("journal.disabled"),
	}
	if noJournal, _ := cmd.Flags().GetBool("no-journal"); noJournal {
		cfg.Disabled = true
	}
	return cfg
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./file-mime-converter.yaml or ~/.config/file-mime-converter/config.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().String("log-format", "text", "log output format: text or json")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("file-mime-converter")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "file-mime-converter"))
		}
	}

	viper.SetDefault("tool.path", convert.DefaultTool)
	viper.SetDefault("tool.timeout", 5*time.Minute)
	viper.SetDefault("journal.path", "")
	viper.SetDefault("journal.disabled", false)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")

	viper.SetEnvPrefix("FILE_MIME_CONVERTER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
