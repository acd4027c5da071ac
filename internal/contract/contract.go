package contract

import (
	"time"

	"github.com/sweeplab/sweepfit/schema"
)

// RunStore persists fit runs and their per-trace results for later export
// and comparison. A nil store or a none-backend store disables tracking.
type RunStore interface {
	// BeginRun creates a new run row and returns its unique ID.
	BeginRun(startTime time.Time, configParams map[string]any) (int64, error)

	// RecordTraceFits persists the per-trace fit rows for a run.
	RecordTraceFits(runID int64, fitTime time.Time, fits []schema.TraceFit) error

	// EndRun updates the run row with completion data.
	EndRun(runID int64, endTime time.Time, tracesFitted int) error

	// GetStatus summarizes the store for the status subcommand.
	GetStatus() (schema.StoreStatus, error)

	// GetAllRuns returns every recorded run, oldest first.
	GetAllRuns() ([]schema.FitRunRecord, error)

	// GetAllTraceFits returns every recorded per-trace fit, oldest run first.
	GetAllTraceFits() ([]schema.TraceFitRecord, error)

	// Clear removes all recorded runs and trace fits.
	Clear() error

	// Close releases the underlying database handle.
	Close() error
}
