package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/sweeplab/sweepfit/core"
	"github.com/sweeplab/sweepfit/internal/contract"
	"github.com/sweeplab/sweepfit/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	store   contract.RunStore
}

// fitSweepLogReport is the JSON payload returned by the fit_sweep_log tool.
type fitSweepLogReport struct {
	Load schema.LoadStats  `json:"load"`
	Fits []schema.TraceFit `json:"fits"`
}

func (h *toolHandler) handleFitSweepLog(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()

	csvPath := request.GetString("csv_path", "")
	if err := contract.ResolveLogPath(cfg, csvPath); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid csv_path: %v", err)), nil
	}

	if m := request.GetString("model", ""); m != "" {
		model := schema.Model(m)
		if _, ok := schema.ValidModels[model]; !ok {
			return mcp.NewToolResultError(fmt.Sprintf("invalid model '%s': must be two-param or fixed-rate", m)), nil
		}
		cfg.Model = model
	}
	if mt := request.GetInt("max_traces", 0); mt > 0 {
		cfg.MaxTraces = mt
	}
	if s := request.GetInt("seed", -1); s >= 0 {
		cfg.Seed = int64(s)
	}
	if e := request.GetFloat("eps", 0); e > 0 {
		cfg.Eps = e
	}

	fits, load, err := core.GetSweepFitResults(cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("fit failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(fitSweepLogReport{Load: load, Fits: fits}, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleListFitRuns(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if h.store == nil {
		return mcp.NewToolResultError("run tracking is not configured: set a store backend"), nil
	}

	runs, err := h.store.GetAllRuns()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list runs: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(runs, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
