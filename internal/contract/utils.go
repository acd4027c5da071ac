package contract

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/sweeplab/sweepfit/schema"
)

// Fit status label constants.
const (
	FittedValue = "Fitted" // A complete parameter estimate exists
	UnfitValue  = "Unfit"  // Insufficient usable data for an estimate
)

// Color variables for console output.
var (
	FittedColor = color.New(color.FgGreen)              // FittedColor marks a usable estimate.
	UnfitColor  = color.New(color.FgYellow, color.Bold) // UnfitColor flags traces that need more data.
)

// GetPlainFitLabel returns a plain text status label for a fit result.
// This is the core logic used for CSV, JSON, and table printing.
func GetPlainFitLabel(f schema.FitResult) string {
	if f.Fitted {
		return FittedValue
	}
	return UnfitValue
}

// GetColorFitLabel returns a colored status label for console output (table).
// It uses GetPlainFitLabel to determine the string, and then applies the
// appropriate color.
func GetColorFitLabel(f schema.FitResult) string {
	text := GetPlainFitLabel(f)
	if f.Fitted {
		return FittedColor.Sprint(text)
	}
	return UnfitColor.Sprint(text)
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It writes to os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// ParseBoolString parses yes/no style flag values.
func ParseBoolString(value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "yes", "true", "1", "on":
		return true, nil
	case "no", "false", "0", "off":
		return false, nil
	default:
		return false, fmt.Errorf("expected yes/no/true/false/1/0, got %q", value)
	}
}

// TruncateLabel shortens a label to maxWidth runes, marking the cut with an
// ellipsis so table rows stay within the terminal width. Slicing runes rather
// than bytes keeps multi-byte characters intact.
func TruncateLabel(label string, maxWidth int) string {
	runes := []rune(label)
	if maxWidth <= 0 || len(runes) <= maxWidth {
		return label
	}
	if maxWidth <= 3 {
		return string(runes[:maxWidth])
	}
	return string(runes[:maxWidth-3]) + "..."
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	fmt.Fprintf(os.Stderr, "❌ %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning with an error.
func LogWarn(msg string, err error) {
	fmt.Fprintf(os.Stderr, "⚠️  %s: %v\n", msg, err)
}
