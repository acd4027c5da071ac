package schema

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceColumns(t *testing.T) {
	trace := Trace{
		{Phase: 0.0, Value: 10.0},
		{Phase: 0.5, Value: 6.07},
		{Phase: 1.0, Value: 3.68},
	}
	assert.Equal(t, []float64{0.0, 0.5, 1.0}, trace.Phases())
	assert.Equal(t, []float64{10.0, 6.07, 3.68}, trace.Values())

	var empty Trace
	assert.Empty(t, empty.Phases())
	assert.Empty(t, empty.Values())
}

func TestFitResultEval(t *testing.T) {
	t.Run("fitted result evaluates the model", func(t *testing.T) {
		fit := FitResult{Model: TwoParamModel, Fitted: true, Amplitude: 10, Rate: 2}
		assert.InEpsilon(t, 10.0, fit.Eval(0), 1e-12)
		assert.InEpsilon(t, 10.0*math.Exp(-1), fit.Eval(0.5), 1e-12)
		assert.InEpsilon(t, 10.0*math.Exp(-2), fit.Eval(1), 1e-12)
	})

	t.Run("unfit result is NaN", func(t *testing.T) {
		fit := FitResult{Model: TwoParamModel}
		assert.True(t, math.IsNaN(fit.Eval(0.5)))
	})
}

func TestPipelineResultTraceFits(t *testing.T) {
	result := PipelineResult{
		Traces: []Trace{
			{{Phase: 0, Value: 1}, {Phase: 1, Value: 0.37}},
			{{Phase: 0, Value: -1}},
		},
		Fits: []FitResult{
			{Model: TwoParamModel, Fitted: true, Amplitude: 1, Rate: 1, Points: 2},
			{Model: TwoParamModel},
		},
		Labels: []string{"Trace 1 (A=1, B=1)", "Trace 2 (fit: insufficient data)"},
	}

	rows := result.TraceFits()
	require.Len(t, rows, 2)
	assert.Equal(t, 1, rows[0].TraceID)
	assert.Equal(t, 2, rows[0].Samples)
	assert.True(t, rows[0].Fit.Fitted)
	assert.Equal(t, "Trace 2 (fit: insufficient data)", rows[1].Label)
}
