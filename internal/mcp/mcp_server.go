// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/botspot/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the Botspot MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.VerdictManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Botspot Classification Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: classify_repository ---
	s.AddTool(mcp.NewTool("classify_repository",
		mcp.WithDescription("Analyze a GitHub repository's commit history and produce an AI-authorship verdict."),
		mcp.WithString("repo_url", mcp.Description("GitHub repository URL or owner/name pair."), mcp.Required()),
		mcp.WithBoolean("no_ai", mcp.Description("Skip the AI opinion call and use the deterministic fallback.")),
		mcp.WithString("marker", mcp.Description("Generation marker phrase to scan project files for.")),
		mcp.WithNumber("max_commits", mcp.Description("Maximum number of commits to analyze.")),
	), h.handleClassifyRepository)

	// --- 2. Tool: check_eligibility ---
	s.AddTool(mcp.NewTool("check_eligibility",
		mcp.WithDescription("Check whether a GitHub repository meets the competition eligibility cutoff."),
		mcp.WithString("repo_url", mcp.Description("GitHub repository URL or owner/name pair."), mcp.Required()),
		mcp.WithString("cutoff", mcp.Description("RFC3339 cutoff override (defaults to the competition start date).")),
	), h.handleCheckEligibility)

	// --- 3. Tool: get_verdict_history ---
	s.AddTool(mcp.NewTool("get_verdict_history",
		mcp.WithDescription("List previously stored classification verdicts."),
		mcp.WithNumber("limit", mcp.Description("Maximum number of verdicts to return. Defaults to 20.")),
	), h.handleGetVerdictHistory)

	return s
}

// StartMCPServer starts the Botspot MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.VerdictManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
