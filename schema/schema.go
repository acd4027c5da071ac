// Package schema has configs, models and global variables for all parts of sweepfit.
package schema

import "math"

// Sample is a single (phase, value) measurement from a sweep log.
// Phase is the cyclically-resetting control variable (conceptually in [0, 1]
// within one sweep); Value is the measured quantity at that phase.
type Sample struct {
	Phase float64 `json:"phase"`
	Value float64 `json:"value"`
}

// Trace is one complete sweep's worth of samples, in log order.
// Within a trace, phases are non-decreasing by construction; this is not
// re-validated after segmentation.
type Trace []Sample

// Phases returns the phase column of the trace.
func (t Trace) Phases() []float64 {
	xs := make([]float64, len(t))
	for i, s := range t {
		xs[i] = s.Phase
	}
	return xs
}

// Values returns the value column of the trace.
func (t Trace) Values() []float64 {
	ys := make([]float64, len(t))
	for i, s := range t {
		ys[i] = s.Value
	}
	return ys
}

// LoadStats tallies per-row loader outcomes. Malformed rows are dropped
// silently; callers that care can inspect the counts in bulk.
type LoadStats struct {
	Rows    int `json:"rows"`    // Total rows seen in the input
	Loaded  int `json:"loaded"`  // Rows parsed into samples
	Skipped int `json:"skipped"` // Rows dropped (wrong field count or non-numeric)
}

// FitResult holds the parameter estimate for one trace, or marks the trace
// as unfit when it had too few usable samples. Fitted is the discriminant:
// when false, Amplitude and Rate are meaningless and must not be read.
type FitResult struct {
	Model     Model   `json:"model"`
	Fitted    bool    `json:"fitted"`
	Amplitude float64 `json:"amplitude"` // A in value = A * exp(-B * phase)
	Rate      float64 `json:"rate"`      // B; fixed at 1 for the fixed-rate model
	Points    int     `json:"points"`    // Samples with value > 0 used in the estimate
}

// Eval returns the modeled value A * exp(-B * phase) at the given phase.
// The result is NaN for an unfit result.
func (f FitResult) Eval(phase float64) float64 {
	if !f.Fitted {
		return math.NaN()
	}
	return f.Amplitude * math.Exp(-f.Rate*phase)
}

// TraceFit pairs a trace with its fit result and display label for reporting.
// TraceID is the 1-based position of the trace in the selected order.
type TraceFit struct {
	TraceID int       `json:"trace_id"`
	Samples int       `json:"samples"`
	Fit     FitResult `json:"fit"`
	Label   string    `json:"label"`
}

// PipelineResult is the full output of one load-segment-sample-fit pass.
// Traces, Fits and Labels are parallel sequences in the selected trace order.
type PipelineResult struct {
	Traces []Trace     `json:"-"`
	Fits   []FitResult `json:"fits"`
	Labels []string    `json:"labels"`
	Load   LoadStats   `json:"load"`
}

// TraceFits assembles the per-trace report rows from the parallel sequences.
func (p *PipelineResult) TraceFits() []TraceFit {
	rows := make([]TraceFit, len(p.Traces))
	for i := range p.Traces {
		rows[i] = TraceFit{
			TraceID: i + 1,
			Samples: len(p.Traces[i]),
			Fit:     p.Fits[i],
			Label:   p.Labels[i],
		}
	}
	return rows
}
