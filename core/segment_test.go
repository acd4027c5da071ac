package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sweeplab/sweepfit/schema"
)

func samplesFromPhases(phases ...float64) []schema.Sample {
	samples := make([]schema.Sample, len(phases))
	for i, p := range phases {
		samples[i] = schema.Sample{Phase: p, Value: float64(i + 1)}
	}
	return samples
}

// TestSegmentTraces tests trace boundary detection.
func TestSegmentTraces(t *testing.T) {
	const eps = 1e-9

	t.Run("empty input yields zero traces", func(t *testing.T) {
		traces := SegmentTraces(nil, eps)
		assert.Empty(t, traces)
	})

	t.Run("no boundary yields one trace", func(t *testing.T) {
		samples := samplesFromPhases(0.0, 0.3, 0.6, 0.9)
		traces := SegmentTraces(samples, eps)
		require.Len(t, traces, 1)
		assert.Equal(t, schema.Trace(samples), traces[0])
	})

	t.Run("boundary closes each trace", func(t *testing.T) {
		samples := samplesFromPhases(0.0, 0.5, 1.0, 0.0, 0.5, 1.0)
		traces := SegmentTraces(samples, eps)
		require.Len(t, traces, 2)
		assert.Len(t, traces[0], 3)
		assert.Len(t, traces[1], 3)
	})

	t.Run("trailing partial trace is kept", func(t *testing.T) {
		samples := samplesFromPhases(0.0, 1.0, 0.0, 0.5)
		traces := SegmentTraces(samples, eps)
		require.Len(t, traces, 2)
		assert.Len(t, traces[0], 2)
		assert.Len(t, traces[1], 2)
	})

	t.Run("ending on a boundary leaves no trailing trace", func(t *testing.T) {
		samples := samplesFromPhases(0.0, 0.5, 1.0)
		traces := SegmentTraces(samples, eps)
		require.Len(t, traces, 1)
		assert.Len(t, traces[0], 3)
	})

	t.Run("consecutive boundaries yield single-sample traces", func(t *testing.T) {
		samples := samplesFromPhases(1.0, 1.0, 1.0)
		traces := SegmentTraces(samples, eps)
		require.Len(t, traces, 3)
		for _, tr := range traces {
			assert.Len(t, tr, 1)
		}
	})

	t.Run("phase within eps of one is a boundary", func(t *testing.T) {
		samples := samplesFromPhases(0.0, 1.0+eps/2, 0.0)
		traces := SegmentTraces(samples, eps)
		require.Len(t, traces, 2)
	})

	t.Run("concatenation reproduces the input", func(t *testing.T) {
		samples := samplesFromPhases(0.0, 0.2, 1.0, 1.0, 0.4, 0.7, 1.0, 0.1)
		traces := SegmentTraces(samples, eps)

		var rebuilt []schema.Sample
		for _, tr := range traces {
			rebuilt = append(rebuilt, tr...)
		}
		assert.Equal(t, samples, rebuilt)
	})
}
