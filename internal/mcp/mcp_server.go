// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/focuslab/focuswatch/internal/contract"
)

// NewMCPServer initializes and configures the Focuswatch MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.HistoryManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Focuswatch Analysis Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: analyze_watch_log ---
	s.AddTool(mcp.NewTool("analyze_watch_log",
		mcp.WithDescription("Analyze a camera watch log for focus oscillation. Classifies the focus signal as oscillating, converging or insufficient_data."),
		mcp.WithString("log_path", mcp.Description("Path to the watch log file."), mcp.Required()),
		mcp.WithBoolean("strict", mcp.Description("Fail on malformed focus records instead of skipping them.")),
		mcp.WithNumber("precision", mcp.Description("Decimal places used when rounding focus values (0-6). Defaults to 2.")),
	), h.handleAnalyzeWatchLog)

	// --- 2. Tool: get_recent_runs ---
	s.AddTool(mcp.NewTool("get_recent_runs",
		mcp.WithDescription("Retrieve recent analyze runs from the history store, newest first."),
		mcp.WithNumber("limit", mcp.Description("Maximum number of runs to return. Defaults to 10.")),
	), h.handleGetRecentRuns)

	return s
}

// StartMCPServer starts the Focuswatch MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.HistoryManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
