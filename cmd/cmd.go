// Package cmd defines the command-line interface for sweepfit.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sweeplab/sweepfit/internal/contract"
	"github.com/sweeplab/sweepfit/schema"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(fitCmd)
	rootCmd.AddCommand(plotCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the runs subcommands to the parent runs command
	runsCmd.AddCommand(runsStatusCmd)
	runsCmd.AddCommand(runsClearCmd)
	runsCmd.AddCommand(runsExportCmd)
	runsCmd.AddCommand(runsMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("model", string(schema.TwoParamModel), "Decay model: two-param or fixed-rate")
	rootCmd.PersistentFlags().IntP("max-traces", "m", 0, "Randomly subsample down to this many traces (0 keeps all)")
	rootCmd.PersistentFlags().Int64("seed", -1, "Seed for the trace subsample (negative = non-deterministic)")
	rootCmd.PersistentFlags().Float64("eps", contract.DefaultEps, "Tolerance for detecting the phase 1.0 trace boundary")
	rootCmd.PersistentFlags().Int("curve-points", contract.DefaultCurvePoints, "Number of points in each fitted overlay curve")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent fit workers")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("plot-dir", ".", "Directory to write chart PNG files into")
	rootCmd.PersistentFlags().Int("chart-width", contract.DefaultChartWidth, "Chart width in pixels")
	rootCmd.PersistentFlags().Int("chart-height", contract.DefaultChartHeight, "Chart height in pixels")
	rootCmd.PersistentFlags().String("store-backend", string(schema.NoneBackend), "Run tracking backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("store-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of runsMigrateCmd to Viper
	runsMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(runsMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding runs migrate flags", err)
	}
}
