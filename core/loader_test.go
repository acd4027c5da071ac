package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sweeplab/sweepfit/schema"
)

// TestLoadSamples tests CSV row parsing and malformed-row skipping.
func TestLoadSamples(t *testing.T) {
	t.Run("well-formed rows load in order", func(t *testing.T) {
		samples, stats, err := LoadSamples(strings.NewReader("0.0,10.0\n0.5,6.07\n1.0,3.68\n"))
		require.NoError(t, err)
		assert.Equal(t, schema.LoadStats{Rows: 3, Loaded: 3, Skipped: 0}, stats)
		require.Len(t, samples, 3)
		assert.Equal(t, schema.Sample{Phase: 0.5, Value: 6.07}, samples[1])
	})

	t.Run("wrong field count is skipped", func(t *testing.T) {
		samples, stats, err := LoadSamples(strings.NewReader("0.0,10.0\n0.5\n0.1,2.0,3.0\n1.0,3.68\n"))
		require.NoError(t, err)
		assert.Equal(t, 4, stats.Rows)
		assert.Equal(t, 2, stats.Loaded)
		assert.Equal(t, 2, stats.Skipped)
		assert.Len(t, samples, 2)
	})

	t.Run("non-numeric fields are skipped", func(t *testing.T) {
		samples, stats, err := LoadSamples(strings.NewReader("phase,value\n0.0,10.0\nabc,1.0\n0.5,xyz\n"))
		require.NoError(t, err)
		assert.Equal(t, 4, stats.Rows)
		assert.Equal(t, 1, stats.Loaded)
		assert.Equal(t, 3, stats.Skipped)
		require.Len(t, samples, 1)
		assert.Equal(t, 10.0, samples[0].Value)
	})

	t.Run("empty input yields no samples", func(t *testing.T) {
		samples, stats, err := LoadSamples(strings.NewReader(""))
		require.NoError(t, err)
		assert.Empty(t, samples)
		assert.Equal(t, schema.LoadStats{}, stats)
	})

	t.Run("whitespace around fields is tolerated", func(t *testing.T) {
		samples, stats, err := LoadSamples(strings.NewReader(" 0.0, 10.0\n\t0.5,6.07\n"))
		require.NoError(t, err)
		assert.Equal(t, 2, stats.Loaded)
		assert.Len(t, samples, 2)
	})
}

// TestLoadSamplesFile tests file-level loading against the fixture.
func TestLoadSamplesFile(t *testing.T) {
	t.Run("fixture", func(t *testing.T) {
		samples, stats, err := LoadSamplesFile("testdata/sweep.csv")
		require.NoError(t, err)
		assert.Equal(t, 10, stats.Rows)
		assert.Equal(t, 8, stats.Loaded)
		assert.Equal(t, 2, stats.Skipped)
		assert.Len(t, samples, 8)
	})

	t.Run("missing file fails", func(t *testing.T) {
		_, _, err := LoadSamplesFile("testdata/does-not-exist.csv")
		assert.Error(t, err)
	})
}
