package core

import (
	"math/rand"

	"github.com/sweeplab/sweepfit/schema"
)

// SubsetTraces returns traces unchanged (order preserved) when the trace
// count is at most maxTraces or maxTraces is non-positive. Otherwise it draws
// a uniform random subset of size maxTraces without replacement from rng.
// The order of a drawn subset is unspecified; callers must not rely on it.
func SubsetTraces(traces []schema.Trace, maxTraces int, rng *rand.Rand) []schema.Trace {
	if maxTraces <= 0 || len(traces) <= maxTraces {
		return traces
	}

	subset := make([]schema.Trace, 0, maxTraces)
	for _, idx := range rng.Perm(len(traces))[:maxTraces] {
		subset = append(subset, traces[idx])
	}
	return subset
}
