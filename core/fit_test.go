package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sweeplab/sweepfit/schema"
)

// syntheticTrace builds a noiseless decay trace value = a * exp(-b * phase).
func syntheticTrace(a, b float64, n int) schema.Trace {
	trace := make(schema.Trace, n)
	for i := range trace {
		phase := float64(i) / float64(n-1)
		trace[i] = schema.Sample{Phase: phase, Value: a * math.Exp(-b*phase)}
	}
	return trace
}

// TestFitTwoParam tests amplitude and rate recovery for the two-param model.
func TestFitTwoParam(t *testing.T) {
	t.Run("recovers synthetic parameters", func(t *testing.T) {
		trace := syntheticTrace(10.0, 2.5, 40)
		fit := FitTrace(trace, schema.TwoParamModel)
		require.True(t, fit.Fitted)
		assert.Equal(t, 40, fit.Points)
		assert.InEpsilon(t, 10.0, fit.Amplitude, 1e-6)
		assert.InEpsilon(t, 2.5, fit.Rate, 1e-6)
	})

	t.Run("all non-positive values is unfit", func(t *testing.T) {
		trace := schema.Trace{{Phase: 0, Value: 0}, {Phase: 0.5, Value: -1}, {Phase: 1, Value: -2}}
		fit := FitTrace(trace, schema.TwoParamModel)
		assert.False(t, fit.Fitted)
		assert.Equal(t, 0, fit.Points)
	})

	t.Run("single positive sample is unfit", func(t *testing.T) {
		trace := schema.Trace{{Phase: 0, Value: 5}, {Phase: 0.5, Value: -1}}
		fit := FitTrace(trace, schema.TwoParamModel)
		assert.False(t, fit.Fitted)
	})

	t.Run("non-positive values are excluded from the fit", func(t *testing.T) {
		trace := syntheticTrace(10.0, 2.5, 20)
		trace = append(trace, schema.Sample{Phase: 0.5, Value: 0}, schema.Sample{Phase: 0.7, Value: -3})
		fit := FitTrace(trace, schema.TwoParamModel)
		require.True(t, fit.Fitted)
		assert.Equal(t, 20, fit.Points)
		assert.InEpsilon(t, 10.0, fit.Amplitude, 1e-6)
	})
}

// TestFitFixedRate tests amplitude recovery with the rate pinned at 1.
func TestFitFixedRate(t *testing.T) {
	t.Run("recovers synthetic amplitude", func(t *testing.T) {
		trace := syntheticTrace(7.0, 1.0, 25)
		fit := FitTrace(trace, schema.FixedRateModel)
		require.True(t, fit.Fitted)
		assert.InEpsilon(t, 7.0, fit.Amplitude, 1e-6)
		assert.Equal(t, 1.0, fit.Rate)
	})

	t.Run("single positive sample is enough", func(t *testing.T) {
		trace := schema.Trace{{Phase: 0.5, Value: 5 * math.Exp(-0.5)}}
		fit := FitTrace(trace, schema.FixedRateModel)
		require.True(t, fit.Fitted)
		assert.InEpsilon(t, 5.0, fit.Amplitude, 1e-9)
		assert.Equal(t, 1, fit.Points)
	})

	t.Run("all non-positive values is unfit", func(t *testing.T) {
		trace := schema.Trace{{Phase: 0, Value: 0}, {Phase: 1, Value: -4}}
		fit := FitTrace(trace, schema.FixedRateModel)
		assert.False(t, fit.Fitted)
	})

	t.Run("worked example recovers A near 10", func(t *testing.T) {
		trace := schema.Trace{
			{Phase: 0.0, Value: 10.0},
			{Phase: 0.5, Value: 6.07},
			{Phase: 1.0, Value: 3.68},
		}
		fit := FitTrace(trace, schema.FixedRateModel)
		require.True(t, fit.Fitted)
		assert.InDelta(t, 10.0, fit.Amplitude, 0.05)
	})
}

// TestCurvePoints tests dense overlay evaluation.
func TestCurvePoints(t *testing.T) {
	t.Run("unfit result has no curve", func(t *testing.T) {
		phases, values := CurvePoints(schema.FitResult{Model: schema.TwoParamModel}, 200)
		assert.Nil(t, phases)
		assert.Nil(t, values)
	})

	t.Run("curve spans [0,1] with n points", func(t *testing.T) {
		fit := schema.FitResult{Model: schema.TwoParamModel, Fitted: true, Amplitude: 4, Rate: 1.5}
		phases, values := CurvePoints(fit, 200)
		require.Len(t, phases, 200)
		require.Len(t, values, 200)
		assert.Equal(t, 0.0, phases[0])
		assert.Equal(t, 1.0, phases[len(phases)-1])
		assert.InEpsilon(t, 4.0, values[0], 1e-12)
		assert.InEpsilon(t, 4.0*math.Exp(-1.5), values[len(values)-1], 1e-12)
	})

	t.Run("n is clamped to at least two", func(t *testing.T) {
		fit := schema.FitResult{Model: schema.FixedRateModel, Fitted: true, Amplitude: 1, Rate: 1}
		phases, _ := CurvePoints(fit, 0)
		assert.Len(t, phases, 2)
	})
}
