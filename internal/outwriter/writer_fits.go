package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/sweeplab/sweepfit/internal/contract"
	"github.com/sweeplab/sweepfit/schema"
)

// writeWithFile handles the common pattern of opening a file, writing to it,
// and cleaning up. It accepts a writer function that takes an io.Writer and
// returns an error.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	// Only close if it's not stdout
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		fmt.Fprintf(os.Stderr, "💾 %s to %s\n", successMsg, outputFile)
	}
	return nil
}

// writeJSON is a generic JSON encoder that handles indentation consistently.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// fitReport is the JSON envelope for a fit run.
type fitReport struct {
	Load schema.LoadStats  `json:"load"`
	Fits []schema.TraceFit `json:"fits"`
}

// writeJSONResultsForFits marshals the fit rows plus load stats and writes them.
func writeJSONResultsForFits(w io.Writer, fits []schema.TraceFit, load schema.LoadStats) error {
	return writeJSON(w, fitReport{Load: load, Fits: fits})
}

// writeCSVResultsForFits writes the per-trace fit data to a CSV writer.
func writeCSVResultsForFits(w *csv.Writer, fits []schema.TraceFit, fmtFloat func(float64) string) error {
	// 1. Write Header Row
	header := []string{
		"trace",
		"samples",
		"points",
		"model",
		"fitted",
		"amplitude",
		"rate",
		"label",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	// 2. Write Data Rows
	for _, tf := range fits {
		amplitude, rate := "", ""
		if tf.Fit.Fitted {
			amplitude = fmtFloat(tf.Fit.Amplitude)
			rate = fmtFloat(tf.Fit.Rate)
		}
		row := []string{
			strconv.Itoa(tf.TraceID),
			strconv.Itoa(tf.Samples),
			strconv.Itoa(tf.Fit.Points),
			string(tf.Fit.Model),
			strconv.FormatBool(tf.Fit.Fitted),
			amplitude,
			rate,
			tf.Label,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// createFloatFormatter creates the float formatter closure used across
// multiple output types.
func createFloatFormatter(precision int) func(float64) string {
	return func(v float64) string {
		return strconv.FormatFloat(v, 'f', precision, 64)
	}
}
