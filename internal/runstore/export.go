package runstore

import (
	"errors"
	"fmt"

	"github.com/sweeplab/sweepfit/internal/contract"
	"github.com/sweeplab/sweepfit/internal/parquet"
)

// ExecuteRunsExport performs the actual export of run history to Parquet files.
func ExecuteRunsExport(store contract.RunStore, outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get store status: %w", err)
	}

	if status.TotalRuns == 0 {
		return errors.New("no run history found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total fit runs: %d\n", status.TotalRuns)
	fmt.Printf("Total trace fit records: %d\n", status.TableSizes[traceFitsTable])

	// Retrieve all fit runs
	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve runs: %w", err)
	}

	// Retrieve all per-trace fits
	traceFits, err := store.GetAllTraceFits()
	if err != nil {
		return fmt.Errorf("failed to retrieve trace fits: %w", err)
	}

	// Convert to Parquet format
	parquetRuns := parquet.ConvertFitRunRecords(runs)
	parquetTraceFits := parquet.ConvertTraceFitRecords(traceFits)

	// Write fit runs to Parquet
	runsFile := outputFile + ".runs.parquet"
	if err := parquet.WriteFitRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write runs: %w", err)
	}
	fmt.Printf("Exported %d runs to: %s\n", len(parquetRuns), runsFile)

	// Write trace fits to Parquet
	traceFitsFile := outputFile + ".trace_fits.parquet"
	if err := parquet.WriteTraceFitsParquet(parquetTraceFits, traceFitsFile); err != nil {
		return fmt.Errorf("failed to write trace fits: %w", err)
	}
	fmt.Printf("Exported %d trace fit records to: %s\n", len(parquetTraceFits), traceFitsFile)

	fmt.Println("\nExport complete! The Parquet files can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}
