package core

import (
	"fmt"
	"time"

	"github.com/sweeplab/sweepfit/internal/chartrender"
	"github.com/sweeplab/sweepfit/internal/contract"
	"github.com/sweeplab/sweepfit/internal/outwriter"
	"github.com/sweeplab/sweepfit/schema"
)

// ExecuteSweepFit runs the pipeline over the configured sweep log and prints
// the per-trace fit report. It serves as the main entry point for the 'fit'
// command.
func ExecuteSweepFit(cfg *contract.Config, store contract.RunStore) error {
	start := time.Now()
	result, err := RunPipeline(cfg)
	if err != nil {
		return err
	}
	recordRun(cfg, store, result, start)
	duration := time.Since(start)
	return outwriter.NewOutWriter().WriteFits(result.TraceFits(), result.Load, cfg, duration)
}

// ExecuteSweepPlot runs the pipeline and renders the raw traces with their
// fitted overlays, once on a linear value axis and once on a logarithmic one.
// It serves as the main entry point for the 'plot' command.
func ExecuteSweepPlot(cfg *contract.Config, store contract.RunStore) error {
	start := time.Now()
	result, err := RunPipeline(cfg)
	if err != nil {
		return err
	}
	recordRun(cfg, store, result, start)

	series := make([]chartrender.TraceSeries, len(result.Traces))
	for i := range result.Traces {
		series[i] = chartrender.TraceSeries{
			Label: result.Labels[i],
			Trace: result.Traces[i],
		}
		if result.Fits[i].Fitted {
			phases, values := CurvePoints(result.Fits[i], cfg.CurvePoints)
			series[i].Curve = &chartrender.Curve{Phases: phases, Values: values}
		}
	}

	paths, err := chartrender.RenderSweepCharts(series, chartrender.Options{
		Dir:    cfg.PlotDir,
		Width:  cfg.ChartWidth,
		Height: cfg.ChartHeight,
	})
	if err != nil {
		return err
	}

	for _, p := range paths {
		fmt.Printf("🖼️  Wrote %s\n", p)
	}
	fmt.Printf("Plotted %d traces in %v (skipped %d malformed rows)\n",
		len(result.Traces), time.Since(start), result.Load.Skipped)
	return nil
}

// GetSweepFitResults runs the pipeline and returns the report rows without
// printing. This is the surface used by the MCP handlers.
func GetSweepFitResults(cfg *contract.Config) ([]schema.TraceFit, schema.LoadStats, error) {
	result, err := RunPipeline(cfg)
	if err != nil {
		return nil, schema.LoadStats{}, err
	}
	return result.TraceFits(), result.Load, nil
}

// recordRun persists the run and its per-trace fits when a store is
// configured. Tracking failures are warnings, never fatal: the report or plot
// still goes out.
func recordRun(cfg *contract.Config, store contract.RunStore, result *schema.PipelineResult, start time.Time) {
	if store == nil || cfg.StoreBackend == schema.NoneBackend {
		return
	}

	runID, err := store.BeginRun(start, cfg.RunParams())
	if err != nil {
		contract.LogWarn("Run tracking initialization failed", err)
		return
	}
	if runID == 0 {
		return
	}

	now := time.Now()
	if err := store.RecordTraceFits(runID, now, result.TraceFits()); err != nil {
		contract.LogWarn("Failed to record trace fits", err)
	}
	if err := store.EndRun(runID, now, len(result.Fits)); err != nil {
		contract.LogWarn("Failed to finalize run tracking", err)
	}
}
