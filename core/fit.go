package core

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/sweeplab/sweepfit/schema"
)

// Minimum usable (value > 0) samples per model variant.
const (
	minTwoParamPoints  = 2
	minFixedRatePoints = 1
)

// FitTrace estimates the decay parameters of one trace under the selected
// model variant. The trace is never mutated; the result is either a complete
// estimate or an unfit marker, never a partial fit.
func FitTrace(t schema.Trace, model schema.Model) schema.FitResult {
	if model == schema.FixedRateModel {
		return fitFixedRate(t)
	}
	return fitTwoParam(t)
}

// positiveLogSamples filters the trace to samples with value > 0 and returns
// their phases alongside the natural log of their values. Non-positive values
// are undefined in log-space and are excluded from every fit.
func positiveLogSamples(t schema.Trace) (phases, logValues []float64) {
	for _, s := range t {
		if s.Value > 0 {
			phases = append(phases, s.Phase)
			logValues = append(logValues, math.Log(s.Value))
		}
	}
	return phases, logValues
}

// fitTwoParam estimates value = A * exp(-B * phase) by ordinary least squares
// of ln(value) against phase: ln(value) = c + m*phase, A = exp(c), B = -m.
//
// This is a direct log-linearization, not a nonlinear fit. It weights errors
// in log-space and under-weights large values; fitted parameters depend on
// that weighting, so it must not be replaced with nonlinear least squares.
func fitTwoParam(t schema.Trace) schema.FitResult {
	phases, logValues := positiveLogSamples(t)
	if len(phases) < minTwoParamPoints {
		return schema.FitResult{Model: schema.TwoParamModel}
	}

	intercept, slope := stat.LinearRegression(phases, logValues, nil, false)
	return schema.FitResult{
		Model:     schema.TwoParamModel,
		Fitted:    true,
		Amplitude: math.Exp(intercept),
		Rate:      -slope,
		Points:    len(phases),
	}
}

// fitFixedRate estimates value = A * exp(-phase) with the rate pinned at 1.
// A is exp of the arithmetic mean of (ln(value) + phase) over the usable
// samples, which is the log-space form of averaging value / exp(-phase).
func fitFixedRate(t schema.Trace) schema.FitResult {
	phases, logValues := positiveLogSamples(t)
	if len(phases) < minFixedRatePoints {
		return schema.FitResult{Model: schema.FixedRateModel}
	}

	shifted := make([]float64, len(phases))
	floats.AddTo(shifted, logValues, phases)
	return schema.FitResult{
		Model:     schema.FixedRateModel,
		Fitted:    true,
		Amplitude: math.Exp(stat.Mean(shifted, nil)),
		Rate:      1,
		Points:    len(phases),
	}
}

// CurvePoints densely evaluates the fitted curve at n evenly spaced phases
// across [0, 1] for overlay plotting. It returns nil slices for an unfit
// result; n is clamped to a minimum of 2.
func CurvePoints(f schema.FitResult, n int) (phases, values []float64) {
	if !f.Fitted {
		return nil, nil
	}
	if n < 2 {
		n = 2
	}

	phases = floats.Span(make([]float64, n), 0, 1)
	values = make([]float64, n)
	for i, x := range phases {
		values[i] = f.Eval(x)
	}
	return phases, values
}
