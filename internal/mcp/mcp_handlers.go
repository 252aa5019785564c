package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/huangsam/botspot/core"
	"github.com/huangsam/botspot/internal/contract"
	"github.com/huangsam/botspot/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// historyDefaultLimit bounds get_verdict_history when no limit is given.
const historyDefaultLimit = 20

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.VerdictManager
}

func (h *toolHandler) handleClassifyRepository(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()

	owner, name, err := contract.ParseRepoURL(request.GetString("repo_url", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid repository: %v", err)), nil
	}
	cfg.Owner = owner
	cfg.Name = name
	cfg.RepoURL = "https://github.com/" + owner + "/" + name

	if request.GetBool("no_ai", false) {
		cfg.NoAI = true
	}
	if m := request.GetString("marker", ""); m != "" {
		cfg.Marker = m
	}
	if mc := request.GetInt("max_commits", 0); mc > 0 && mc <= contract.DefaultMaxCommits {
		cfg.MaxCommits = mc
	}

	pipeline := core.NewPipeline(cfg, core.NewRepoSource(cfg), core.NewCompletionClient(cfg), h.mgr)
	verdict, err := pipeline.Classify(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("classification failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(verdict, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleCheckEligibility(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()

	owner, name, err := contract.ParseRepoURL(request.GetString("repo_url", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid repository: %v", err)), nil
	}
	cfg.Owner = owner
	cfg.Name = name

	cutoff := cfg.Thresholds.Cutoff
	if c := request.GetString("cutoff", ""); c != "" {
		cutoff, err = time.Parse(time.RFC3339, c)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid cutoff: %v", err)), nil
		}
	}

	repo, err := core.NewRepoSource(cfg).FetchRepository(ctx, owner, name)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("repository lookup failed: %v", err)), nil
	}

	elig := core.CheckEligibility(repo.CreatedAt, cutoff)
	jsonData, _ := json.MarshalIndent(elig, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetVerdictHistory(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if h.mgr == nil {
		return mcp.NewToolResultError("verdict store is not initialized"), nil
	}
	store := h.mgr.GetVerdictStore()
	if store == nil {
		return mcp.NewToolResultError("verdict store is not initialized"), nil
	}

	limit := request.GetInt("limit", historyDefaultLimit)
	if limit <= 0 {
		limit = historyDefaultLimit
	}

	rows, err := store.ListVerdicts(limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("history lookup failed: %v", err)), nil
	}
	if rows == nil {
		rows = []schema.VerdictRow{}
	}

	jsonData, _ := json.MarshalIndent(rows, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
