package core

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sweeplab/sweepfit/internal/runstore"
	"github.com/sweeplab/sweepfit/schema"
)

// TestExecuteSweepFit tests the fit command entry point with file output.
func TestExecuteSweepFit(t *testing.T) {
	cfg := fixtureConfig()
	cfg.Output = schema.JSONOut
	cfg.OutputFile = filepath.Join(t.TempDir(), "fits.json")
	cfg.Precision = 4

	require.NoError(t, ExecuteSweepFit(cfg, nil))

	data, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"fits"`)
	assert.Contains(t, string(data), "Trace 1")
}

// TestExecuteSweepPlot tests the plot command entry point.
func TestExecuteSweepPlot(t *testing.T) {
	cfg := fixtureConfig()
	cfg.PlotDir = t.TempDir()
	cfg.ChartWidth = 640
	cfg.ChartHeight = 400

	require.NoError(t, ExecuteSweepPlot(cfg, nil))

	for _, name := range []string{"sweep_linear.png", "sweep_log.png"} {
		info, err := os.Stat(filepath.Join(cfg.PlotDir, name))
		require.NoError(t, err, "expected %s to be written", name)
		assert.Greater(t, info.Size(), int64(0))
	}
}

// TestGetSweepFitResults tests the MCP-facing surface.
func TestGetSweepFitResults(t *testing.T) {
	fits, load, err := GetSweepFitResults(fixtureConfig())
	require.NoError(t, err)
	assert.Equal(t, 8, load.Loaded)
	require.Len(t, fits, 3)
	assert.Equal(t, 1, fits[0].TraceID)
	assert.Equal(t, 3, fits[0].Samples)
}

// TestRecordRun tests run tracking against a mock store.
func TestRecordRun(t *testing.T) {
	cfg := fixtureConfig()
	cfg.StoreBackend = schema.SQLiteBackend

	result, err := RunPipeline(cfg)
	require.NoError(t, err)

	t.Run("records begin, fits and end", func(t *testing.T) {
		store := &runstore.MockRunStore{}
		store.On("BeginRun", mock.Anything, mock.Anything).Return(int64(7), nil)
		store.On("RecordTraceFits", int64(7), mock.Anything, mock.Anything).Return(nil)
		store.On("EndRun", int64(7), mock.Anything, len(result.Fits)).Return(nil)

		recordRun(cfg, store, result, time.Now())
		store.AssertExpectations(t)
	})

	t.Run("none backend skips the store", func(t *testing.T) {
		noneCfg := fixtureConfig()
		noneCfg.StoreBackend = schema.NoneBackend

		store := &runstore.MockRunStore{}
		recordRun(noneCfg, store, result, time.Now())
		store.AssertNotCalled(t, "BeginRun")
	})
}
