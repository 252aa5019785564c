package core

import (
	"context"
	"time"

	"github.com/huangsam/botspot/internal/contract"
	"github.com/huangsam/botspot/internal/githubapi"
	"github.com/huangsam/botspot/internal/gitlocal"
	"github.com/huangsam/botspot/internal/llm"
	"github.com/huangsam/botspot/internal/outwriter"
	"github.com/huangsam/botspot/schema"
)

// NewRepoSource selects the commit source backing the configured run.
func NewRepoSource(cfg *contract.Config) contract.RepoSource {
	if cfg.Source == schema.LocalSource {
		return gitlocal.NewSource(cfg)
	}
	return githubapi.NewClient(cfg)
}

// NewCompletionClient returns the AI client, or nil when the AI call is disabled.
func NewCompletionClient(cfg *contract.Config) contract.CompletionClient {
	if cfg.NoAI {
		return nil
	}
	return llm.NewClient(cfg)
}

// ExecuteClassify runs the full classification pipeline and prints the verdict.
// It serves as the main entry point for the 'check' command.
func ExecuteClassify(ctx context.Context, cfg *contract.Config, mgr contract.VerdictManager) error {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	pipeline := NewPipeline(cfg, NewRepoSource(cfg), NewCompletionClient(cfg), mgr)
	verdict, err := pipeline.Classify(ctx)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.NewOutWriter().WriteVerdict(&verdict, cfg, duration)
}
