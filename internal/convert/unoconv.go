// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"path/filepath"
	"strings"

	"github.com/ShadowStrikeHQ/file-mime-converter/internal/toolexec"
)

// DefaultTool is the bare command name used when no tool path is configured.
// A bare name is resolved through the executable search path.
const DefaultTool = "unoconv"

// FormatFlag returns the format token handed to the external tool: the
// output path's extension with its leading dot stripped. The explicit MIME
// override never feeds into this value.
func FormatFlag(outputPath string) string {
	return strings.TrimPrefix(filepath.Ext(outputPath), ".")
}

// toolArgs builds the unoconv argument vector for one conversion.
func toolArgs(format, absOutput, absInput string) []string {
	return []string{"-f", format, "-o", absOutput, absInput}
}

// resolveTool turns a configured tool value into something the executor can
// run. Bare names go through LookPath; values containing a path separator
// are trusted as-is, matching how a shell would treat them.
func resolveTool(exec toolexec.Executor, tool string) (string, error) {
	if tool == "" {
		tool = DefaultTool
	}
	if strings.ContainsRune(tool, filepath.Separator) {
		return tool, nil
	}
	resolved, err := exec.LookPath(tool)
	if err != nil {
		return "", err
	}
	return resolved, nil
}
