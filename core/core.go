// Package core implements botspot's decision logic: the commit pattern
// analyzer, the eligibility gate, the AI opinion normalizer and the verdict
// composer, plus the sequential pipeline that strings them together.
package core

import (
	"context"
	"fmt"
	"time"

	"github.com/huangsam/botspot/internal/contract"
	"github.com/huangsam/botspot/schema"
)

// Pipeline runs a full classification for one repository. The core
// components it calls are pure; the collaborators are the only suspension
// points and are invoked sequentially.
type Pipeline struct {
	cfg        *contract.Config
	source     contract.RepoSource
	completion contract.CompletionClient
	mgr        contract.VerdictManager
}

// NewPipeline wires a pipeline from its collaborators. completion may be
// nil when the AI call is disabled; mgr may be nil when persistence is
// disabled.
func NewPipeline(cfg *contract.Config, source contract.RepoSource, completion contract.CompletionClient, mgr contract.VerdictManager) *Pipeline {
	return &Pipeline{cfg: cfg, source: source, completion: completion, mgr: mgr}
}

// Classify fetches repository state, computes signals, gates eligibility,
// obtains an AI opinion (falling back deterministically on any AI failure)
// and composes the final verdict. Repository and commit fetch failures
// abort the run; nothing else can.
func (p *Pipeline) Classify(ctx context.Context) (schema.Verdict, error) {
	repo, err := p.source.FetchRepository(ctx, p.cfg.Owner, p.cfg.Name)
	if err != nil {
		return schema.Verdict{}, fmt.Errorf("repository fetch for %s/%s: %w", p.cfg.Owner, p.cfg.Name, err)
	}

	commits, err := p.source.FetchCommits(ctx, p.cfg.Owner, p.cfg.Name)
	if err != nil {
		return schema.Verdict{}, fmt.Errorf("commit fetch for %s/%s: %w", p.cfg.Owner, p.cfg.Name, err)
	}

	signals := AnalyzeCommits(commits, p.cfg.Thresholds)
	eligibility := CheckEligibility(repo.CreatedAt, p.cfg.Thresholds.Cutoff)

	markerChecked := false
	markerFound := false
	if found, merr := p.source.HasMarker(ctx, p.cfg.Owner, p.cfg.Name, p.cfg.Marker); merr == nil {
		markerChecked = true
		markerFound = found
	} else {
		contract.LogWarn("marker check skipped", merr)
	}

	opinion := p.obtainOpinion(ctx, signals, repo, commits)

	verdict := ComposeVerdict(repo, signals, eligibility, opinion, markerChecked, markerFound, p.cfg.Thresholds)
	verdict.AnalyzedAt = time.Now().UTC()

	if p.mgr != nil {
		if store := p.mgr.GetVerdictStore(); store != nil {
			if _, serr := store.RecordVerdict(verdict); serr != nil {
				contract.LogWarn("verdict not recorded", serr)
			}
		}
	}
	return verdict, nil
}

// obtainOpinion runs the single best-effort AI call. Disabled AI, transport
// failure and malformed payloads all converge on the deterministic fallback.
func (p *Pipeline) obtainOpinion(ctx context.Context, signals schema.Signals, repo schema.Repository, commits []schema.Commit) schema.Opinion {
	if p.cfg.NoAI || p.completion == nil {
		return FallbackOpinion(signals, repo, p.cfg.Thresholds)
	}

	raw, err := p.completion.Complete(ctx, BuildPrompt(signals, repo, commits))
	if err != nil {
		contract.LogWarn("AI call failed, using fallback opinion", err)
		return FallbackOpinion(signals, repo, p.cfg.Thresholds)
	}
	return NormalizeOpinion(raw, signals, repo, p.cfg.Thresholds)
}
