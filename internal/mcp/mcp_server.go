// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/sweeplab/sweepfit/internal/contract"
)

// NewMCPServer initializes and configures the Sweepfit MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, store contract.RunStore) *server.MCPServer {
	s := server.NewMCPServer(
		"Sweepfit Analysis Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		store:   store,
	}

	// --- 1. Tool: fit_sweep_log ---
	s.AddTool(mcp.NewTool("fit_sweep_log",
		mcp.WithDescription("Segment a two-column sweep measurement log into traces and fit an exponential decay to each one."),
		mcp.WithString("csv_path", mcp.Description("Path to the sweep log CSV file."), mcp.Required()),
		mcp.WithString("model", mcp.Description("Decay model variant (two-param, fixed-rate). Defaults to 'two-param'."), mcp.Enum("two-param", "fixed-rate")),
		mcp.WithNumber("max_traces", mcp.Description("Randomly subsample down to this many traces (0 keeps all).")),
		mcp.WithNumber("seed", mcp.Description("Seed for the trace subsample (non-negative values are deterministic).")),
		mcp.WithNumber("eps", mcp.Description("Tolerance for detecting phase values at the trace boundary.")),
	), h.handleFitSweepLog)

	// --- 2. Tool: list_fit_runs ---
	s.AddTool(mcp.NewTool("list_fit_runs",
		mcp.WithDescription("List previously recorded fit runs from the run store."),
	), h.handleListFitRuns)

	return s
}

// StartMCPServer starts the Sweepfit MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, store contract.RunStore) error {
	s := NewMCPServer(baseCfg, store)
	return server.ServeStdio(s)
}
