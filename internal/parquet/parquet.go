// Package parquet provides data structures and functions for exporting
// sweepfit fit results to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/sweeplab/sweepfit/schema"
)

// FitRun represents a single recorded pipeline run with metadata.
// This struct maps to the sweepfit_runs database table.
type FitRun struct {
	// RunID is the unique identifier for this run
	RunID int64 `parquet:"run_id,snappy"`

	// StartTime is when the run began
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the run completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// DurationMs is the run duration in milliseconds (nullable)
	DurationMs *int64 `parquet:"duration_ms,optional,snappy"`

	// TracesFitted is the number of traces processed in this run
	TracesFitted int32 `parquet:"traces_fitted,snappy"`

	// ConfigParams contains the JSON-encoded run configuration (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// TraceFit represents one trace's fit outcome within a run.
// This struct maps to the sweepfit_trace_fits database table.
type TraceFit struct {
	// RunID references the parent run
	RunID int64 `parquet:"run_id,snappy"`

	// TraceID is the 1-based trace position in the selected order
	TraceID int32 `parquet:"trace_id,snappy"`

	// FitTime is when this trace was fitted
	FitTime time.Time `parquet:"fit_time,snappy"`

	// Samples is the total sample count of the trace
	Samples int32 `parquet:"samples,snappy"`

	// Points is the number of positive-value samples used by the fit
	Points int32 `parquet:"points,snappy"`

	// Model is the decay model variant (two-param or fixed-rate)
	Model string `parquet:"model,snappy"`

	// Fitted is false when the trace had insufficient usable data
	Fitted bool `parquet:"fitted,snappy"`

	// Amplitude is the estimated A in value = A * exp(-B * phase)
	Amplitude float64 `parquet:"amplitude,snappy"`

	// Rate is the estimated B (1 for the fixed-rate model)
	Rate float64 `parquet:"rate,snappy"`

	// Label is the human-readable legend label for the trace
	Label string `parquet:"label,snappy"`
}

// ConvertTraceFits maps report rows to parquet records. Direct 'fit' command
// exports have no run row, so RunID stays zero.
func ConvertTraceFits(fits []schema.TraceFit, fitTime time.Time) []TraceFit {
	records := make([]TraceFit, len(fits))
	for i, tf := range fits {
		records[i] = TraceFit{
			TraceID:   int32(tf.TraceID),
			FitTime:   fitTime,
			Samples:   int32(tf.Samples),
			Points:    int32(tf.Fit.Points),
			Model:     string(tf.Fit.Model),
			Fitted:    tf.Fit.Fitted,
			Amplitude: tf.Fit.Amplitude,
			Rate:      tf.Fit.Rate,
			Label:     tf.Label,
		}
	}
	return records
}

// ConvertFitRunRecords maps store run records to parquet records.
func ConvertFitRunRecords(runs []schema.FitRunRecord) []FitRun {
	records := make([]FitRun, len(runs))
	for i, r := range runs {
		rec := FitRun{
			RunID:        r.RunID,
			StartTime:    r.StartTime,
			EndTime:      r.EndTime,
			DurationMs:   r.DurationMs,
			TracesFitted: int32(r.TracesFitted),
		}
		if r.ConfigParams != "" {
			params := r.ConfigParams
			rec.ConfigParams = &params
		}
		records[i] = rec
	}
	return records
}

// ConvertTraceFitRecords maps store trace-fit records to parquet records.
func ConvertTraceFitRecords(fits []schema.TraceFitRecord) []TraceFit {
	records := make([]TraceFit, len(fits))
	for i, r := range fits {
		records[i] = TraceFit{
			RunID:     r.RunID,
			TraceID:   int32(r.TraceID),
			FitTime:   r.FitTime,
			Samples:   int32(r.Samples),
			Points:    int32(r.Points),
			Model:     string(r.Model),
			Fitted:    r.Fitted,
			Amplitude: r.Amplitude,
			Rate:      r.Rate,
			Label:     r.Label,
		}
	}
	return records
}

// WriteFitRunsParquet writes a slice of FitRun structs to a Parquet file.
func WriteFitRunsParquet(data []FitRun, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteTraceFitsParquet writes a slice of TraceFit structs to a Parquet file.
func WriteTraceFitsParquet(data []TraceFit, outputPath string) error {
	return writeParquet(data, outputPath)
}

// writeParquet writes records to outputPath using struct schema inference.
// The schema is automatically derived from the record struct tags.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	// Close flushes buffered row groups and the file footer
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}

	return nil
}
