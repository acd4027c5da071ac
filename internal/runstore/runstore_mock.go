package runstore

import (
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/sweeplab/sweepfit/internal/contract"
	"github.com/sweeplab/sweepfit/schema"
)

// MockRunStore is a mock implementation of RunStore for testing.
type MockRunStore struct {
	mock.Mock
}

var _ contract.RunStore = &MockRunStore{} // Compile-time check

// BeginRun implements the RunStore interface.
func (m *MockRunStore) BeginRun(startTime time.Time, configParams map[string]any) (int64, error) {
	args := m.Called(startTime, configParams)
	return args.Get(0).(int64), args.Error(1)
}

// RecordTraceFits implements the RunStore interface.
func (m *MockRunStore) RecordTraceFits(runID int64, fitTime time.Time, fits []schema.TraceFit) error {
	args := m.Called(runID, fitTime, fits)
	return args.Error(0)
}

// EndRun implements the RunStore interface.
func (m *MockRunStore) EndRun(runID int64, endTime time.Time, tracesFitted int) error {
	args := m.Called(runID, endTime, tracesFitted)
	return args.Error(0)
}

// GetStatus implements the RunStore interface.
func (m *MockRunStore) GetStatus() (schema.StoreStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.StoreStatus), args.Error(1)
}

// GetAllRuns implements the RunStore interface.
func (m *MockRunStore) GetAllRuns() ([]schema.FitRunRecord, error) {
	args := m.Called()
	runs, _ := args.Get(0).([]schema.FitRunRecord)
	return runs, args.Error(1)
}

// GetAllTraceFits implements the RunStore interface.
func (m *MockRunStore) GetAllTraceFits() ([]schema.TraceFitRecord, error) {
	args := m.Called()
	fits, _ := args.Get(0).([]schema.TraceFitRecord)
	return fits, args.Error(1)
}

// Clear implements the RunStore interface.
func (m *MockRunStore) Clear() error {
	args := m.Called()
	return args.Error(0)
}

// Close implements the RunStore interface.
func (m *MockRunStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
