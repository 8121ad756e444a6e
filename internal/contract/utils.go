package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

// Jump severity label constants.
const (
	SevereValue  = "Severe"
	NotableValue = "Notable"
	MinorValue   = "Minor"
	SmoothValue  = "Smooth"
)

// Color variables for console output.
var (
	SevereColor  = color.New(color.FgRed, color.Bold)     // Discontinuity large enough to distort the chart
	NotableColor = color.New(color.FgMagenta, color.Bold) // Clearly visible jump
	MinorColor   = color.New(color.FgYellow)              // Small but real step
	SmoothColor  = color.New(color.FgCyan)                // Within gradual day-to-day variation
)

// GetPlainLabel returns a plain text severity label for a jump between two
// consecutive values, in percentage points. This is the core logic used for
// CSV, JSON, and table printing.
func GetPlainLabel(jump float64) string {
	switch {
	case jump >= 5:
		return SevereValue
	case jump >= 2:
		return NotableValue
	case jump >= 0.5:
		return MinorValue
	default:
		return SmoothValue
	}
}

// GetColorLabel returns a colored severity label for console output (table).
// It uses GetPlainLabel to determine the string, and then applies the color.
func GetColorLabel(jump float64) string {
	text := GetPlainLabel(jump)

	switch text {
	case SevereValue:
		return SevereColor.Sprint(text)
	case NotableValue:
		return NotableColor.Sprint(text)
	case MinorValue:
		return MinorColor.Sprint(text)
	default: // "Smooth"
		return SmoothColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for report output.
// It falls back to os.Stdout when no path is given.
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

// GetProvenanceDBFilePath returns the path to the SQLite DB file for patch
// provenance storage.
func GetProvenanceDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".vaxseries_history.db"
	}
	return filepath.Join(homeDir, ".vaxseries_history.db")
}

// TruncatePath truncates a file path to a maximum width with ellipsis prefix.
// Requires maxWidth > 3 to ensure there's space for both the "..." prefix and
// at least one character of content.
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
