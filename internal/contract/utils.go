package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/focuslab/focuswatch/schema"
)

// Color variables for console output.
var (
	OscillatingColor = color.New(color.FgRed, color.Bold)   // hunting loop, the bad verdict
	ConvergingColor  = color.New(color.FgYellow)            // still fluctuating
	StableColor      = color.New(color.FgGreen, color.Bold) // flat and settled
	NoDataColor      = color.New(color.FgCyan)              // informational only
)

// GetPlainStatusLabel returns the upper-cased status label used by the text
// report. This is the core logic shared by CSV, JSON and table printing.
func GetPlainStatusLabel(status schema.Status) string {
	return strings.ToUpper(string(status))
}

// GetColorStatusLabel returns a colored status label for console output.
// The stable flag upgrades a converging verdict to the settled color.
func GetColorStatusLabel(status schema.Status, stable bool) string {
	text := GetPlainStatusLabel(status)
	switch status {
	case schema.OscillatingStatus:
		return OscillatingColor.Sprint(text)
	case schema.ConvergingStatus:
		if stable {
			return StableColor.Sprint(text)
		}
		return ConvergingColor.Sprint(text)
	default:
		return NoDataColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. An empty path means stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetHistoryDBFilePath returns the path to the SQLite DB file for run history.
func GetHistoryDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".focuswatch_history.db"
	}
	return filepath.Join(homeDir, ".focuswatch_history.db")
}

// TruncatePath truncates a file path to a maximum width with ellipsis prefix.
// Requires maxWidth > 3 so there is room for both the "..." prefix and at
// least one character of content.
func TruncatePath(path string, maxWidth int) string {
	runes := []rune(path)
	if len(runes) > maxWidth && maxWidth > 3 {
		return "..." + string(runes[len(runes)-maxWidth+3:])
	}
	return path
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
