// Package outwriter has output and writer logic for fit reports.
package outwriter

import (
	"os"
	"time"

	"golang.org/x/term"

	"github.com/sweeplab/sweepfit/internal/contract"
	"github.com/sweeplab/sweepfit/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the
// core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteFits prints per-trace fit results using the configured output format.
func (ow *OutWriter) WriteFits(fits []schema.TraceFit, load schema.LoadStats, cfg *contract.Config, duration time.Duration) error {
	return PrintFitResults(fits, load, cfg, duration)
}

// GetMaxTableLabelWidth calculates the maximum width for trace labels in
// table output based on terminal width and table configuration.
func GetMaxTableLabelWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default for narrow terminals and CI
			termWidth = 80
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the fixed numeric columns with table formatting:
	// Trace + Samples + Points + A + B + Status, plus borders and padding.
	baseWidth := 58

	available := termWidth - baseWidth
	if available < 15 {
		return 15
	}
	if available > 60 {
		return 60
	}
	return available
}
