package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sweeplab/sweepfit/core"
	"github.com/sweeplab/sweepfit/internal/contract"
)

// plotCmd renders the traces and their fitted overlays to PNG charts.
var plotCmd = &cobra.Command{
	Use:   "plot <sweep-log>",
	Short: "Render traces and fitted curves to PNG charts.",
	Long: `Fit every trace in a sweep log and render two charts: the raw traces
with their fitted overlays on a linear value axis, and the same data on a
logarithmic value axis.

The log chart makes exponential decay visually obvious, because a clean decay
becomes a straight line. Only positive values can appear on the log chart, so
traces without any positive values are omitted there.

Legend labels carry the fitted parameters to three significant figures, for
example "Trace 3 (A=9.87, B=2.04)". Unfit traces are labeled
"(fit: insufficient data)" and still show their raw samples.

Examples:
  # Write sweep_linear.png and sweep_log.png to the current directory
  sweepfit plot sweep.csv

  # Plot a reproducible subsample into a separate directory
  sweepfit plot sweep.csv --max-traces 8 --seed 7 --plot-dir ./charts

  # Larger charts for a report
  sweepfit plot sweep.csv --chart-width 1600 --chart-height 900`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSweepPlot(cfg, runStore); err != nil {
			contract.LogFatal("Cannot plot sweep log", err)
		}
	},
}
