package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/focuslab/focuswatch/core"
	"github.com/focuslab/focuswatch/internal/contract"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.HistoryManager
}

func (h *toolHandler) handleAnalyzeWatchLog(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.LogPath = request.GetString("log_path", "")
	if cfg.LogPath == "" {
		return mcp.NewToolResultError("log_path is required"), nil
	}
	cfg.Strict = request.GetBool("strict", cfg.Strict)
	if p := request.GetInt("precision", cfg.Precision); p != cfg.Precision {
		if p < 0 || p > contract.MaxPrecision {
			return mcp.NewToolResultError(fmt.Sprintf("precision must be between 0 and %d", contract.MaxPrecision)), nil
		}
		cfg.Precision = p
	}

	result, err := core.AnalyzeLog(cfg.LogPath, cfg.Precision, cfg.Strict)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetRecentRuns(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	store := h.mgr.GetRunStore()
	if store == nil {
		return mcp.NewToolResultError("run history is disabled; start the server with --history-backend"), nil
	}

	limit := request.GetInt("limit", 10)
	if limit <= 0 {
		limit = 10
	}

	runs, err := store.GetRecentRuns(limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to retrieve runs: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(runs, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
