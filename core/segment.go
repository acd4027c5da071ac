package core

import (
	"math"

	"github.com/sweeplab/sweepfit/schema"
)

// SegmentTraces partitions samples into per-sweep traces. A sample whose
// phase is within eps of 1.0 closes the current trace; samples after the last
// boundary form a final trailing trace. Concatenating the returned traces in
// order reproduces the input exactly.
//
// Empty input yields zero traces. Input with no boundary yields a single
// trace holding every sample. Consecutive boundary samples yield
// single-sample traces.
func SegmentTraces(samples []schema.Sample, eps float64) []schema.Trace {
	var traces []schema.Trace
	var current schema.Trace

	for _, s := range samples {
		current = append(current, s)
		if math.Abs(s.Phase-1.0) < eps {
			traces = append(traces, current)
			current = nil
		}
	}

	if len(current) > 0 {
		traces = append(traces, current)
	}

	return traces
}
