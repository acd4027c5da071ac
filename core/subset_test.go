package core

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sweeplab/sweepfit/schema"
)

func makeTraces(n int) []schema.Trace {
	traces := make([]schema.Trace, n)
	for i := range traces {
		traces[i] = schema.Trace{{Phase: 0, Value: float64(i)}}
	}
	return traces
}

// TestSubsetTraces tests random subsetting behavior.
func TestSubsetTraces(t *testing.T) {
	t.Run("limit at or above count returns input unchanged", func(t *testing.T) {
		traces := makeTraces(4)
		assert.Equal(t, traces, SubsetTraces(traces, 4, rand.New(rand.NewSource(1))))
		assert.Equal(t, traces, SubsetTraces(traces, 10, rand.New(rand.NewSource(1))))
	})

	t.Run("zero limit disables subsetting", func(t *testing.T) {
		traces := makeTraces(4)
		assert.Equal(t, traces, SubsetTraces(traces, 0, rand.New(rand.NewSource(1))))
	})

	t.Run("subset has requested size without duplicates", func(t *testing.T) {
		traces := makeTraces(20)
		subset := SubsetTraces(traces, 5, rand.New(rand.NewSource(42)))
		require.Len(t, subset, 5)

		seen := map[float64]bool{}
		for _, tr := range subset {
			v := tr[0].Value
			assert.False(t, seen[v], "trace %v selected twice", v)
			seen[v] = true
		}
	})

	t.Run("fixed seed is reproducible", func(t *testing.T) {
		traces := makeTraces(50)
		first := SubsetTraces(traces, 7, rand.New(rand.NewSource(1234)))
		second := SubsetTraces(traces, 7, rand.New(rand.NewSource(1234)))
		assert.Equal(t, first, second)
	})
}
