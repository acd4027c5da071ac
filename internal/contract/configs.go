// Package contract has configuration processing and shared interfaces that
// tie the command layer to the pipeline, writers and stores.
package contract

import (
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/sweeplab/sweepfit/schema"
)

// Default values for configuration.
const (
	DefaultEps         = 1e-9 // Boundary tolerance: |phase - 1.0| < eps ends a sweep
	DefaultCurvePoints = 200
	DefaultPrecision   = 4
	DefaultChartWidth  = 1024
	DefaultChartHeight = 640
)

// DefaultWorkers is the default number of concurrent fit workers.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}

// Config holds the runtime configuration for a pipeline run.
// This struct remains the "final, validated" config.
type Config struct {
	LogPath     string // Path to the two-column sweep log
	Model       schema.Model
	MaxTraces   int   // 0 means no subsetting
	Seed        int64 // Negative means non-deterministic subsetting
	Eps         float64
	CurvePoints int
	Workers     int

	Precision  int
	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool

	PlotDir     string
	ChartWidth  int
	ChartHeight int

	StoreBackend   schema.DatabaseBackend
	StoreDBConnect string // Please use env var as this is plaintext
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	LogPathStr string

	Model       string  `mapstructure:"model"`
	MaxTraces   int     `mapstructure:"max-traces"`
	Seed        int64   `mapstructure:"seed"`
	Eps         float64 `mapstructure:"eps"`
	CurvePoints int     `mapstructure:"curve-points"`
	Workers     int     `mapstructure:"workers"`

	Precision  int    `mapstructure:"precision"`
	Output     string `mapstructure:"output"`
	OutputFile string `mapstructure:"output-file"`
	Width      int    `mapstructure:"width"`
	Color      string `mapstructure:"color"`

	PlotDir     string `mapstructure:"plot-dir"`
	ChartWidth  int    `mapstructure:"chart-width"`
	ChartHeight int    `mapstructure:"chart-height"`

	StoreBackend   string `mapstructure:"store-backend"`
	StoreDBConnect string `mapstructure:"store-db-connect"`
}

// Clone returns a copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// NewRand returns the pseudorandom generator for trace subsetting: seeded and
// reproducible when Seed >= 0, time-seeded otherwise.
func (c *Config) NewRand() *rand.Rand {
	if c.Seed >= 0 {
		return rand.New(rand.NewSource(c.Seed))
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// RunParams returns the run configuration as a flat map for run-history
// tracking and report footers.
func (c *Config) RunParams() map[string]any {
	return map[string]any{
		"log_path":   c.LogPath,
		"model":      string(c.Model),
		"max_traces": c.MaxTraces,
		"seed":       c.Seed,
		"eps":        c.Eps,
		"workers":    c.Workers,
	}
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validatePipelineInputs(cfg, input); err != nil {
		return err
	}
	if err := validateStoreInputs(cfg, input); err != nil {
		return err
	}
	if input.LogPathStr != "" {
		if err := ResolveLogPath(cfg, input.LogPathStr); err != nil {
			return err
		}
	}
	return nil
}

// ResolveLogPath checks that the sweep log exists and is a regular file
// before any trace processing begins, then records it on the config.
func ResolveLogPath(cfg *Config, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot read sweep log %q: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("sweep log %q is a directory, expected a CSV file", path)
	}
	cfg.LogPath = path
	return nil
}

// validateSimpleInputs processes and validates the output-facing fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output mode '%s'. must be text, csv, json, parquet", input.Output)
	}

	if input.Precision < 0 || input.Precision > 10 {
		return fmt.Errorf("invalid precision %d. must be between 0 and 10", input.Precision)
	}
	cfg.Precision = input.Precision

	if input.PlotDir == "" {
		return fmt.Errorf("plot-dir must not be empty")
	}
	cfg.PlotDir = input.PlotDir

	if input.ChartWidth <= 0 || input.ChartHeight <= 0 {
		return fmt.Errorf("invalid chart dimensions %dx%d. both must be positive", input.ChartWidth, input.ChartHeight)
	}
	cfg.ChartWidth = input.ChartWidth
	cfg.ChartHeight = input.ChartHeight

	return nil
}

// validatePipelineInputs processes and validates the fields that steer the
// segment/subset/fit pipeline.
func validatePipelineInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.Model = schema.Model(strings.ToLower(input.Model))
	if _, ok := schema.ValidModels[cfg.Model]; !ok {
		return fmt.Errorf("invalid model '%s'. must be two-param or fixed-rate", input.Model)
	}

	if input.MaxTraces < 0 {
		return fmt.Errorf("invalid max-traces %d. must be >= 0 (0 disables subsetting)", input.MaxTraces)
	}
	cfg.MaxTraces = input.MaxTraces
	cfg.Seed = input.Seed

	if input.Eps <= 0 {
		return fmt.Errorf("invalid eps %v. boundary tolerance must be positive", input.Eps)
	}
	cfg.Eps = input.Eps

	if input.CurvePoints < 2 {
		return fmt.Errorf("invalid curve-points %d. overlay needs at least 2 points", input.CurvePoints)
	}
	cfg.CurvePoints = input.CurvePoints

	if input.Workers < 1 {
		return fmt.Errorf("invalid workers %d. must be >= 1", input.Workers)
	}
	cfg.Workers = input.Workers

	return nil
}

// validateStoreInputs processes and validates the run-history store fields.
func validateStoreInputs(cfg *Config, input *ConfigRawInput) error {
	backend := input.StoreBackend
	if backend == "" {
		backend = string(schema.NoneBackend)
	}
	cfg.StoreBackend = schema.DatabaseBackend(strings.ToLower(backend))
	if _, ok := schema.ValidDatabaseBackends[cfg.StoreBackend]; !ok {
		return fmt.Errorf("invalid store backend '%s'. must be sqlite, mysql, postgresql, none", input.StoreBackend)
	}
	cfg.StoreDBConnect = input.StoreDBConnect
	return ValidateDatabaseConnectionString(cfg.StoreBackend, cfg.StoreDBConnect)
}

// ValidateDatabaseConnectionString validates the format of database
// connection strings for the MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}
