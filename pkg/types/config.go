// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ToolConfig holds settings for the external conversion binary.
type ToolConfig struct {
	// Path is the unoconv executable name or path. A bare name is resolved
	// through the executable search path (default "unoconv").
	Path string `json:"path" yaml:"path"`

	// Timeout bounds a single child-process run. Zero disables the bound.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// JournalConfig holds settings for the conversion journal.
type JournalConfig struct {
	// Path is the SQLite database file. Empty selects the default under
	// the user state directory.
	Path string `json:"path" yaml:"path"`

	// Disabled turns off journaling entirely.
	Disabled bool `json:"disabled" yaml:"disabled"`
}

// LogConfig holds logging settings for the CLI.
type LogConfig struct {
	// Level is "debug", "info", "warn", or "error" (default "info").
	Level string `json:"level" yaml:"level"`

	// Format is "text" or "json" (default "text").
	Format string `json:"format" yaml:"format"`
}

// Config groups all settings read from the config file and flags.
type Config struct {
	Tool    ToolConfig    `json:"tool" yaml:"tool"`
	Journal JournalConfig `json:"journal" yaml:"journal"`
	Log     LogConfig     `json:"log" yaml:"log"`
}
