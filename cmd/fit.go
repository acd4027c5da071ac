package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sweeplab/sweepfit/core"
	"github.com/sweeplab/sweepfit/internal/contract"
)

// fitCmd fits the decay model to every trace in a sweep log.
var fitCmd = &cobra.Command{
	Use:   "fit <sweep-log>",
	Short: "Fit an exponential decay to every trace in a sweep log.",
	Long: `Load a two-column sweep log, split it into per-sweep traces, and fit
an exponential decay model to each trace.

Each row of the log holds a phase in [0, 1] and a measured value. A phase of
1.0 marks the end of a sweep; everything between boundaries is one trace. The
two-param model estimates both the amplitude A and the decay rate B in
value = A * exp(-B * phase). The fixed-rate model pins B to 1 and only
estimates A.

Traces without enough positive values are reported as unfit rather than
failing the run.

Examples:
  # Fit every trace with the default two-param model
  sweepfit fit sweep.csv

  # Pin the decay rate and only estimate amplitude
  sweepfit fit sweep.csv --model fixed-rate

  # Reproducible subsample of 10 traces
  sweepfit fit sweep.csv --max-traces 10 --seed 42

  # Export the fit report for tracking
  sweepfit fit sweep.csv --output csv --output-file fits.csv`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSweepFit(cfg, runStore); err != nil {
			contract.LogFatal("Cannot fit sweep log", err)
		}
	},
}
