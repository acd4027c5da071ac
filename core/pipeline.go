package core

import (
	"sync"

	"github.com/sweeplab/sweepfit/internal/contract"
	"github.com/sweeplab/sweepfit/schema"
)

// RunPipeline executes load -> segment -> (subset) -> fit over the configured
// sweep log and returns the parallel trace, fit and label sequences. Traces
// are labeled in the order ultimately selected for processing.
func RunPipeline(cfg *contract.Config) (*schema.PipelineResult, error) {
	// --- 1. Load ---
	samples, stats, err := LoadSamplesFile(cfg.LogPath)
	if err != nil {
		return nil, err
	}

	// --- 2. Segment ---
	traces := SegmentTraces(samples, cfg.Eps)

	// --- 3. Optional random subsetting for display ---
	if cfg.MaxTraces > 0 && len(traces) > cfg.MaxTraces {
		traces = SubsetTraces(traces, cfg.MaxTraces, cfg.NewRand())
	}

	// --- 4. Fit and label ---
	fits := fitAll(traces, cfg.Model, cfg.Workers)
	labels := make([]string, len(fits))
	for i, f := range fits {
		labels[i] = schema.FormatFitLabel(i+1, f)
	}

	return &schema.PipelineResult{
		Traces: traces,
		Fits:   fits,
		Labels: labels,
		Load:   stats,
	}, nil
}

// fitAll fits every trace under the selected model. Each trace is independent,
// so fits run on a worker pool; every worker writes to a unique index, which
// keeps the result sequence parallel to the trace sequence without locking.
func fitAll(traces []schema.Trace, model schema.Model, workers int) []schema.FitResult {
	fits := make([]schema.FitResult, len(traces))

	if workers <= 1 || len(traces) < 2 {
		for i, t := range traces {
			fits[i] = FitTrace(t, model)
		}
		return fits
	}

	idxCh := make(chan int, len(traces))
	var wg sync.WaitGroup

	for range min(workers, len(traces)) {
		wg.Go(func() {
			for i := range idxCh {
				fits[i] = FitTrace(traces[i], model)
			}
		})
	}

	for i := range traces {
		idxCh <- i
	}
	close(idxCh)
	wg.Wait()

	return fits
}
