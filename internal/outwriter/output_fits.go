package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/sweeplab/sweepfit/internal/contract"
	"github.com/sweeplab/sweepfit/internal/parquet"
	"github.com/sweeplab/sweepfit/schema"
)

// PrintFitResults outputs the per-trace fit results, dispatching based on the
// output format configured.
func PrintFitResults(fits []schema.TraceFit, load schema.LoadStats, cfg *contract.Config, duration time.Duration) error {
	fmtFloat := createFloatFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONResultsForFits(fits, load, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVResultsForFits(fits, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := printParquetResultsForFits(fits, cfg); err != nil {
			return fmt.Errorf("error writing parquet output: %w", err)
		}
	default:
		// Default to human-readable table
		if err := printFitTable(fits, load, cfg, fmtFloat, duration); err != nil {
			return fmt.Errorf("error writing fit table output: %w", err)
		}
	}
	return nil
}

// printJSONResultsForFits handles opening the file and calling the JSON writer.
func printJSONResultsForFits(fits []schema.TraceFit, load schema.LoadStats, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSONResultsForFits(w, fits, load)
	}, "Wrote JSON fit results")
}

// printCSVResultsForFits handles opening the file and calling the CSV writer.
func printCSVResultsForFits(fits []schema.TraceFit, cfg *contract.Config, fmtFloat func(float64) string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		return writeCSVResultsForFits(csvWriter, fits, fmtFloat)
	}, "Wrote CSV fit results")
}

// printParquetResultsForFits writes the fit rows to a parquet file.
// Parquet output always needs an explicit file path.
func printParquetResultsForFits(fits []schema.TraceFit, cfg *contract.Config) error {
	if cfg.OutputFile == "" {
		return fmt.Errorf("--output-file is required for parquet output")
	}
	records := parquet.ConvertTraceFits(fits, time.Now())
	if err := parquet.WriteTraceFitsParquet(records, cfg.OutputFile); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "💾 Wrote parquet fit results to %s\n", cfg.OutputFile)
	return nil
}

// printFitTable prints the per-trace fits in a six-column table with a
// colored status column and the legend label.
func printFitTable(fits []schema.TraceFit, load schema.LoadStats, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	table := tablewriter.NewWriter(os.Stdout)

	// --- 1. Define Headers ---
	headers := []string{"Trace", "Samples", "Points", "A", "B", "Status", "Label"}
	table.Header(headers)

	// --- 2. Configure Alignment ---
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	// --- 3. Prepare Data Rows ---
	maxLabel := GetMaxTableLabelWidth(cfg)
	var data [][]string
	for _, tf := range fits {
		amplitude, rate := "-", "-"
		if tf.Fit.Fitted {
			amplitude = fmtFloat(tf.Fit.Amplitude)
			rate = fmtFloat(tf.Fit.Rate)
		}

		status := contract.GetPlainFitLabel(tf.Fit)
		if cfg.UseColors {
			status = contract.GetColorFitLabel(tf.Fit)
		}

		row := []string{
			fmt.Sprintf("%d", tf.TraceID),
			fmt.Sprintf("%d", tf.Samples),
			fmt.Sprintf("%d", tf.Fit.Points),
			amplitude,
			rate,
			status,
			contract.TruncateLabel(tf.Label, maxLabel),
		}
		data = append(data, row)
	}

	// --- 4. Render the table ---
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Printf("Fitted %d traces in %v (model: %s, %d rows loaded, %d skipped)\n",
		len(fits), duration, cfg.Model, load.Loaded, load.Skipped)
	return nil
}
