package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sweeplab/sweepfit/internal/contract"
	"github.com/sweeplab/sweepfit/schema"
)

func fixtureConfig() *contract.Config {
	return &contract.Config{
		LogPath:     "testdata/sweep.csv",
		Model:       schema.TwoParamModel,
		Seed:        -1,
		Eps:         contract.DefaultEps,
		CurvePoints: contract.DefaultCurvePoints,
		Workers:     1,
	}
}

// TestRunPipeline tests the load -> segment -> fit flow end to end.
func TestRunPipeline(t *testing.T) {
	t.Run("fixture segments into three traces", func(t *testing.T) {
		result, err := RunPipeline(fixtureConfig())
		require.NoError(t, err)

		assert.Equal(t, 8, result.Load.Loaded)
		assert.Equal(t, 2, result.Load.Skipped)
		require.Len(t, result.Traces, 3)
		require.Len(t, result.Fits, 3)
		require.Len(t, result.Labels, 3)

		for i, fit := range result.Fits {
			assert.True(t, fit.Fitted, "trace %d should fit", i+1)
		}
		assert.Regexp(t, `^Trace 1 \(A=.+, B=.+\)$`, result.Labels[0])
	})

	t.Run("subsetting with a fixed seed is reproducible", func(t *testing.T) {
		cfg := fixtureConfig()
		cfg.MaxTraces = 2
		cfg.Seed = 42

		first, err := RunPipeline(cfg)
		require.NoError(t, err)
		second, err := RunPipeline(cfg)
		require.NoError(t, err)

		require.Len(t, first.Traces, 2)
		assert.Equal(t, first.Traces, second.Traces)
	})

	t.Run("missing log fails", func(t *testing.T) {
		cfg := fixtureConfig()
		cfg.LogPath = "testdata/missing.csv"
		_, err := RunPipeline(cfg)
		assert.Error(t, err)
	})
}

// TestFitAll tests that worker counts do not change results.
func TestFitAll(t *testing.T) {
	traces := make([]schema.Trace, 9)
	for i := range traces {
		traces[i] = syntheticTrace(float64(i+1), 1.5, 12)
	}

	sequential := fitAll(traces, schema.TwoParamModel, 1)
	parallel := fitAll(traces, schema.TwoParamModel, 4)
	assert.Equal(t, sequential, parallel)

	for i, fit := range sequential {
		require.True(t, fit.Fitted)
		assert.InEpsilon(t, float64(i+1), fit.Amplitude, 1e-6)
	}
}
