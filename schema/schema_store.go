package schema

import "time"

// FitRunRecord is one recorded pipeline run in the run-history store.
type FitRunRecord struct {
	RunID        int64      `json:"run_id"`
	StartTime    time.Time  `json:"start_time"`
	EndTime      *time.Time `json:"end_time,omitempty"`
	DurationMs   *int64     `json:"duration_ms,omitempty"`
	TracesFitted int        `json:"traces_fitted"`
	ConfigParams string     `json:"config_params,omitempty"` // JSON-encoded run configuration
}

// TraceFitRecord is one per-trace fit row in the run-history store.
type TraceFitRecord struct {
	RunID     int64     `json:"run_id"`
	TraceID   int       `json:"trace_id"`
	FitTime   time.Time `json:"fit_time"`
	Samples   int       `json:"samples"`
	Points    int       `json:"points"`
	Model     Model     `json:"model"`
	Fitted    bool      `json:"fitted"`
	Amplitude float64   `json:"amplitude"`
	Rate      float64   `json:"rate"`
	Label     string    `json:"label"`
}

// StoreStatus summarizes the run-history store for the status subcommand.
type StoreStatus struct {
	Backend     DatabaseBackend  `json:"backend"`
	Connected   bool             `json:"connected"`
	TotalRuns   int64            `json:"total_runs"`
	LastRunID   int64            `json:"last_run_id"`
	LastRunTime time.Time        `json:"last_run_time"`
	TableSizes  map[string]int64 `json:"table_sizes"`
}
