// Package runstore persists fit runs and per-trace results across
// sqlite, MySQL and PostgreSQL backends.
package runstore

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver

	"github.com/sweeplab/sweepfit/internal/contract"
	"github.com/sweeplab/sweepfit/schema"
)

// Table names for run tracking.
const (
	runsTable      = "sweepfit_runs"
	traceFitsTable = "sweepfit_trace_fits"
)

// RunStoreImpl implements the contract.RunStore interface on database/sql.
type RunStoreImpl struct {
	db         *sql.DB
	backend    schema.DatabaseBackend
	driverName string
}

var _ contract.RunStore = &RunStoreImpl{} // Compile-time check

// DefaultDBFilePath returns the default SQLite DB file path for run history.
func DefaultDBFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".sweepfit_runs.db"
	}
	return filepath.Join(home, ".sweepfit_runs.db")
}

// NewRunStore creates a new RunStore with the specified backend.
func NewRunStore(backend schema.DatabaseBackend, connStr string) (contract.RunStore, error) {
	var db *sql.DB
	var err error
	var driverName string

	switch backend {
	case schema.SQLiteBackend:
		driverName = "sqlite"
		dbPath := connStr
		if dbPath == "" {
			dbPath = DefaultDBFilePath()
		}
		db, err = sql.Open(driverName, dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite database at %q: %w. Check that the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)

	case schema.MySQLBackend:
		driverName = "mysql"
		db, err = sql.Open(driverName, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open MySQL database: %w. Check connection string format: user:password@tcp(host:port)/dbname", err)
		}

	case schema.PostgreSQLBackend:
		driverName = "pgx"
		db, err = sql.Open(driverName, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open PostgreSQL database: %w. Check connection string format: host=localhost port=5432 user=postgres dbname=mydb", err)
		}

	case schema.NoneBackend:
		// Return a no-op store for disabled tracking
		return &RunStoreImpl{db: nil, backend: backend}, nil

	default:
		return nil, fmt.Errorf("unsupported backend: %s", backend)
	}

	// Ping to verify connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database: %w. Verify the database server is running and accessible", backend, err)
	}

	// Create the table schemas
	if err := createRunTables(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create run tables: %w", err)
	}

	return &RunStoreImpl{
		db:         db,
		backend:    backend,
		driverName: driverName,
	}, nil
}

// createRunTables creates the run tracking tables.
func createRunTables(db *sql.DB, backend schema.DatabaseBackend) error {
	tables := []struct {
		name  string
		query string
	}{
		{runsTable, getCreateRunsQuery(backend)},
		{traceFitsTable, getCreateTraceFitsQuery(backend)},
	}

	for _, table := range tables {
		if _, err := db.Exec(table.query); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table.name, err)
		}
	}

	return nil
}

// getCreateRunsQuery returns the CREATE TABLE query for sweepfit_runs.
func getCreateRunsQuery(backend schema.DatabaseBackend) string {
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT AUTO_INCREMENT PRIMARY KEY,
				start_time DATETIME(6) NOT NULL,
				end_time DATETIME(6),
				duration_ms BIGINT,
				traces_fitted INT,
				config_params TEXT
			);
		`, runsTable)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGSERIAL PRIMARY KEY,
				start_time TIMESTAMPTZ NOT NULL,
				end_time TIMESTAMPTZ,
				duration_ms BIGINT,
				traces_fitted INT,
				config_params TEXT
			);
		`, runsTable)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER PRIMARY KEY AUTOINCREMENT,
				start_time TEXT NOT NULL,
				end_time TEXT,
				duration_ms INTEGER,
				traces_fitted INTEGER,
				config_params TEXT
			);
		`, runsTable)
	}
}

// getCreateTraceFitsQuery returns the CREATE TABLE query for sweepfit_trace_fits.
func getCreateTraceFitsQuery(backend schema.DatabaseBackend) string {
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT NOT NULL,
				trace_id INT NOT NULL,
				fit_time DATETIME(6) NOT NULL,
				samples INT NOT NULL,
				points INT NOT NULL,
				model VARCHAR(32) NOT NULL,
				fitted BOOLEAN NOT NULL,
				amplitude DOUBLE NOT NULL,
				rate DOUBLE NOT NULL,
				label VARCHAR(255) NOT NULL,
				PRIMARY KEY (run_id, trace_id)
			);
		`, traceFitsTable)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT NOT NULL,
				trace_id INT NOT NULL,
				fit_time TIMESTAMPTZ NOT NULL,
				samples INT NOT NULL,
				points INT NOT NULL,
				model TEXT NOT NULL,
				fitted BOOLEAN NOT NULL,
				amplitude DOUBLE PRECISION NOT NULL,
				rate DOUBLE PRECISION NOT NULL,
				label TEXT NOT NULL,
				PRIMARY KEY (run_id, trace_id)
			);
		`, traceFitsTable)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER NOT NULL,
				trace_id INTEGER NOT NULL,
				fit_time TEXT NOT NULL,
				samples INTEGER NOT NULL,
				points INTEGER NOT NULL,
				model TEXT NOT NULL,
				fitted BOOLEAN NOT NULL,
				amplitude REAL NOT NULL,
				rate REAL NOT NULL,
				label TEXT NOT NULL,
				PRIMARY KEY (run_id, trace_id)
			);
		`, traceFitsTable)
	}
}

// formatTime converts a timestamp to the backend's storage representation.
// SQLite stores RFC3339 strings; MySQL and PostgreSQL take native datetimes.
func formatTime(t time.Time, backend schema.DatabaseBackend) any {
	if backend == schema.SQLiteBackend {
		return t.Format(time.RFC3339Nano)
	}
	return t
}

// BeginRun creates a new run row and returns its unique ID.
func (rs *RunStoreImpl) BeginRun(startTime time.Time, configParams map[string]any) (int64, error) {
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return 0, nil
	}

	configJSON, err := json.Marshal(configParams)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal config params: %w", err)
	}

	var runID int64
	switch rs.backend {
	case schema.PostgreSQLBackend:
		query := fmt.Sprintf(`INSERT INTO %s (start_time, config_params) VALUES ($1, $2) RETURNING run_id`, runsTable)
		err = rs.db.QueryRow(query, startTime, string(configJSON)).Scan(&runID)
	default: // SQLite and MySQL
		query := fmt.Sprintf(`INSERT INTO %s (start_time, config_params) VALUES (?, ?)`, runsTable)
		var result sql.Result
		result, err = rs.db.Exec(query, formatTime(startTime, rs.backend), string(configJSON))
		if err != nil {
			return 0, err
		}
		runID, err = result.LastInsertId()
	}

	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}
	return runID, nil
}

// RecordTraceFits persists the per-trace fit rows for a run.
func (rs *RunStoreImpl) RecordTraceFits(runID int64, fitTime time.Time, fits []schema.TraceFit) error {
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return nil
	}

	var query string
	switch rs.backend {
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`
			INSERT INTO %s (run_id, trace_id, fit_time, samples, points, model, fitted, amplitude, rate, label)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`, traceFitsTable)
	default:
		query = fmt.Sprintf(`
			INSERT INTO %s (run_id, trace_id, fit_time, samples, points, model, fitted, amplitude, rate, label)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, traceFitsTable)
	}

	tx, err := rs.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, tf := range fits {
		_, err := tx.Exec(query,
			runID,
			tf.TraceID,
			formatTime(fitTime, rs.backend),
			tf.Samples,
			tf.Fit.Points,
			string(tf.Fit.Model),
			tf.Fit.Fitted,
			tf.Fit.Amplitude,
			tf.Fit.Rate,
			tf.Label,
		)
		if err != nil {
			return fmt.Errorf("failed to insert trace fit %d for run %d: %w", tf.TraceID, runID, err)
		}
	}

	return tx.Commit()
}

// EndRun updates the run row with completion data.
func (rs *RunStoreImpl) EndRun(runID int64, endTime time.Time, tracesFitted int) error {
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return nil
	}

	startTime, err := rs.getRunStartTime(runID)
	if err != nil {
		return err
	}
	durationMs := endTime.Sub(startTime).Milliseconds()

	var query string
	var args []any
	switch rs.backend {
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`UPDATE %s SET end_time = $1, duration_ms = $2, traces_fitted = $3 WHERE run_id = $4`, runsTable)
		args = []any{endTime, durationMs, tracesFitted, runID}
	default:
		query = fmt.Sprintf(`UPDATE %s SET end_time = ?, duration_ms = ?, traces_fitted = ? WHERE run_id = ?`, runsTable)
		args = []any{formatTime(endTime, rs.backend), durationMs, tracesFitted, runID}
	}

	if _, err := rs.db.Exec(query, args...); err != nil {
		return fmt.Errorf("failed to finalize run %d: %w", runID, err)
	}
	return nil
}

// getRunStartTime fetches the start_time of a run, handling the per-backend
// storage formats.
func (rs *RunStoreImpl) getRunStartTime(runID int64) (time.Time, error) {
	var query string
	switch rs.backend {
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`SELECT start_time FROM %s WHERE run_id = $1`, runsTable)
	default:
		query = fmt.Sprintf(`SELECT start_time FROM %s WHERE run_id = ?`, runsTable)
	}

	row := rs.db.QueryRow(query, runID)
	if rs.backend == schema.SQLiteBackend {
		var raw string
		if err := row.Scan(&raw); err != nil {
			return time.Time{}, fmt.Errorf("failed to get start_time for run %d: %w", runID, err)
		}
		t, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to parse start_time: %w", err)
		}
		return t, nil
	}

	var t time.Time
	if err := row.Scan(&t); err != nil {
		return time.Time{}, fmt.Errorf("failed to get start_time for run %d: %w", runID, err)
	}
	return t, nil
}

// GetAllRuns returns every recorded run, oldest first.
func (rs *RunStoreImpl) GetAllRuns() ([]schema.FitRunRecord, error) {
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT run_id, start_time, end_time, duration_ms, traces_fitted, config_params FROM %s ORDER BY run_id`, runsTable)
	rows, err := rs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []schema.FitRunRecord
	for rows.Next() {
		var rec schema.FitRunRecord
		var traces sql.NullInt64
		var params sql.NullString

		if rs.backend == schema.SQLiteBackend {
			var startRaw string
			var endRaw sql.NullString
			var duration sql.NullInt64
			if err := rows.Scan(&rec.RunID, &startRaw, &endRaw, &duration, &traces, &params); err != nil {
				return nil, fmt.Errorf("failed to scan run row: %w", err)
			}
			if rec.StartTime, err = time.Parse(time.RFC3339Nano, startRaw); err != nil {
				return nil, fmt.Errorf("failed to parse start_time: %w", err)
			}
			if endRaw.Valid {
				endTime, err := time.Parse(time.RFC3339Nano, endRaw.String)
				if err != nil {
					return nil, fmt.Errorf("failed to parse end_time: %w", err)
				}
				rec.EndTime = &endTime
			}
			if duration.Valid {
				ms := duration.Int64
				rec.DurationMs = &ms
			}
		} else {
			var endTime sql.NullTime
			var duration sql.NullInt64
			if err := rows.Scan(&rec.RunID, &rec.StartTime, &endTime, &duration, &traces, &params); err != nil {
				return nil, fmt.Errorf("failed to scan run row: %w", err)
			}
			if endTime.Valid {
				t := endTime.Time
				rec.EndTime = &t
			}
			if duration.Valid {
				ms := duration.Int64
				rec.DurationMs = &ms
			}
		}

		if traces.Valid {
			rec.TracesFitted = int(traces.Int64)
		}
		if params.Valid {
			rec.ConfigParams = params.String
		}
		runs = append(runs, rec)
	}

	return runs, rows.Err()
}

// GetAllTraceFits returns every recorded per-trace fit, oldest run first.
func (rs *RunStoreImpl) GetAllTraceFits() ([]schema.TraceFitRecord, error) {
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT run_id, trace_id, fit_time, samples, points, model, fitted, amplitude, rate, label FROM %s ORDER BY run_id, trace_id`, traceFitsTable)
	rows, err := rs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query trace fits: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var fits []schema.TraceFitRecord
	for rows.Next() {
		var rec schema.TraceFitRecord
		var model string

		if rs.backend == schema.SQLiteBackend {
			var fitRaw string
			if err := rows.Scan(&rec.RunID, &rec.TraceID, &fitRaw, &rec.Samples, &rec.Points, &model, &rec.Fitted, &rec.Amplitude, &rec.Rate, &rec.Label); err != nil {
				return nil, fmt.Errorf("failed to scan trace fit row: %w", err)
			}
			if rec.FitTime, err = time.Parse(time.RFC3339Nano, fitRaw); err != nil {
				return nil, fmt.Errorf("failed to parse fit_time: %w", err)
			}
		} else {
			if err := rows.Scan(&rec.RunID, &rec.TraceID, &rec.FitTime, &rec.Samples, &rec.Points, &model, &rec.Fitted, &rec.Amplitude, &rec.Rate, &rec.Label); err != nil {
				return nil, fmt.Errorf("failed to scan trace fit row: %w", err)
			}
		}

		rec.Model = schema.Model(model)
		fits = append(fits, rec)
	}

	return fits, rows.Err()
}

// GetStatus summarizes the store for the status subcommand.
func (rs *RunStoreImpl) GetStatus() (schema.StoreStatus, error) {
	status := schema.StoreStatus{
		Backend:    rs.backend,
		TableSizes: map[string]int64{},
	}
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return status, nil
	}
	status.Connected = true

	for _, table := range []string{runsTable, traceFitsTable} {
		var count int64
		query := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, table)
		if err := rs.db.QueryRow(query).Scan(&count); err != nil {
			return status, fmt.Errorf("failed to count rows in %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}
	status.TotalRuns = status.TableSizes[runsTable]

	if status.TotalRuns > 0 {
		query := fmt.Sprintf(`SELECT run_id, start_time FROM %s ORDER BY run_id DESC LIMIT 1`, runsTable)
		row := rs.db.QueryRow(query)
		if rs.backend == schema.SQLiteBackend {
			var raw string
			if err := row.Scan(&status.LastRunID, &raw); err != nil {
				return status, fmt.Errorf("failed to get last run: %w", err)
			}
			t, err := time.Parse(time.RFC3339Nano, raw)
			if err != nil {
				return status, fmt.Errorf("failed to parse last run time: %w", err)
			}
			status.LastRunTime = t
		} else {
			if err := row.Scan(&status.LastRunID, &status.LastRunTime); err != nil {
				return status, fmt.Errorf("failed to get last run: %w", err)
			}
		}
	}

	return status, nil
}

// Clear removes all recorded runs and trace fits.
func (rs *RunStoreImpl) Clear() error {
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return nil
	}
	for _, table := range []string{traceFitsTable, runsTable} {
		if _, err := rs.db.Exec(fmt.Sprintf(`DELETE FROM %s`, table)); err != nil {
			return fmt.Errorf("failed to clear table %s: %w", table, err)
		}
	}
	return nil
}

// Close releases the underlying database handle.
func (rs *RunStoreImpl) Close() error {
	if rs.db == nil {
		return nil
	}
	return rs.db.Close()
}
