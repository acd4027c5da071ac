//go:build database

// Package integration exercises the run store against real database servers.
// These tests need Docker and are gated behind the 'database' build tag:
//
//	go test -tags database ./integration/...
package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/sweeplab/sweepfit/internal/contract"
	"github.com/sweeplab/sweepfit/internal/runstore"
	"github.com/sweeplab/sweepfit/schema"
)

// exerciseStore runs the full store lifecycle against any backend.
func exerciseStore(t *testing.T, store contract.RunStore) {
	t.Helper()

	start := time.Now().UTC().Truncate(time.Millisecond)
	runID, err := store.BeginRun(start, map[string]any{"model": "two-param", "eps": 1e-9})
	require.NoError(t, err)
	require.Greater(t, runID, int64(0))

	fits := []schema.TraceFit{
		{
			TraceID: 1,
			Samples: 3,
			Fit:     schema.FitResult{Model: schema.TwoParamModel, Fitted: true, Amplitude: 10.0, Rate: 1.0, Points: 3},
			Label:   "Trace 1 (A=10, B=1)",
		},
		{
			TraceID: 2,
			Samples: 1,
			Fit:     schema.FitResult{Model: schema.TwoParamModel},
			Label:   "Trace 2 (fit: insufficient data)",
		},
	}
	require.NoError(t, store.RecordTraceFits(runID, start, fits))
	require.NoError(t, store.EndRun(runID, start.Add(200*time.Millisecond), len(fits)))

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, int64(1), status.TotalRuns)
	assert.Equal(t, runID, status.LastRunID)

	runs, err := store.GetAllRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	require.NotNil(t, runs[0].DurationMs)
	assert.Equal(t, int64(200), *runs[0].DurationMs)
	assert.Equal(t, 2, runs[0].TracesFitted)

	records, err := store.GetAllTraceFits()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.True(t, records[0].Fitted)
	assert.False(t, records[1].Fitted)

	require.NoError(t, store.Clear())
	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, int64(0), status.TotalRuns)
}

// TestRunStoreWithMySQL tests the run store against a MySQL server.
func TestRunStoreWithMySQL(t *testing.T) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "sweepfit",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(30 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/sweepfit?parseTime=true", host, port.Port())
	store, err := runstore.NewRunStore(schema.MySQLBackend, connStr)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	exerciseStore(t, store)
}

// TestRunStoreWithPostgres tests the run store against a PostgreSQL server.
func TestRunStoreWithPostgres(t *testing.T) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithStartupTimeout(30 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()
	time.Sleep(5 * time.Second)

	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres sslmode=disable", host, port.Port())
	store, err := runstore.NewRunStore(schema.PostgreSQLBackend, connStr)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	exerciseStore(t, store)
}

// TestMigrateWithPostgres tests schema migrations against a PostgreSQL server.
func TestMigrateWithPostgres(t *testing.T) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithStartupTimeout(30 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()
	time.Sleep(5 * time.Second)

	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres sslmode=disable", host, port.Port())

	// Up to latest, then all the way back down
	require.NoError(t, runstore.MigrateRunStore(schema.PostgreSQLBackend, connStr, -1))
	require.NoError(t, runstore.MigrateRunStore(schema.PostgreSQLBackend, connStr, 0))
}
