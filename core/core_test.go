package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/huangsam/botspot/internal/contract"
	"github.com/huangsam/botspot/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource is an in-memory RepoSource for pipeline tests.
type fakeSource struct {
	repo       schema.Repository
	commits    []schema.Commit
	marker     bool
	repoErr    error
	commitsErr error
	markerErr  error
}

func (f *fakeSource) FetchRepository(_ context.Context, _, _ string) (schema.Repository, error) {
	return f.repo, f.repoErr
}

func (f *fakeSource) FetchCommits(_ context.Context, _, _ string) ([]schema.Commit, error) {
	return f.commits, f.commitsErr
}

func (f *fakeSource) HasMarker(_ context.Context, _, _, _ string) (bool, error) {
	return f.marker, f.markerErr
}

// fakeCompletion returns canned text or an error.
type fakeCompletion struct {
	text string
	err  error
}

func (f *fakeCompletion) Complete(_ context.Context, _ string) (string, error) {
	return f.text, f.err
}

func testConfig() *contract.Config {
	return &contract.Config{
		Owner:      "octocat",
		Name:       "hello-world",
		RepoURL:    "https://github.com/octocat/hello-world",
		Thresholds: contract.DefaultThresholds(),
	}
}

// TestClassifyEmptyRepo covers the zero-commit, post-cutoff scenario.
func TestClassifyEmptyRepo(t *testing.T) {
	cfg := testConfig()
	cfg.NoAI = true
	source := &fakeSource{
		repo: schema.Repository{
			Owner:     "octocat",
			Name:      "hello-world",
			URL:       cfg.RepoURL,
			CreatedAt: cfg.Thresholds.Cutoff.AddDate(0, 0, 3),
		},
	}

	v, err := NewPipeline(cfg, source, nil, nil).Classify(context.Background())

	require.NoError(t, err)
	assert.True(t, v.Eligible)
	assert.Equal(t, 0, v.Signals.TotalCommits)
	assert.Equal(t, 0, v.Likelihood)
	assert.False(t, v.LikelyAutomated)
	assert.Equal(t, schema.FallbackOpinion, v.Opinion.Source)
	assert.True(t, v.Opinion.IsValid())
}

// TestClassifyBurstRepo covers the all-verified one-minute burst scenario
// on a repository created before the cutoff.
func TestClassifyBurstRepo(t *testing.T) {
	cfg := testConfig()
	cfg.NoAI = true
	base := time.Date(2025, time.June, 1, 2, 0, 0, 0, time.UTC)
	commits := make([]schema.Commit, 20)
	for i := range commits {
		commits[i] = schema.Commit{
			SHA:        "sha",
			AuthoredAt: base.Add(time.Duration(i) * 3 * time.Second),
			Message:    "auto update",
			Verified:   true,
		}
	}
	source := &fakeSource{
		repo: schema.Repository{
			Owner:     "octocat",
			Name:      "hello-world",
			URL:       cfg.RepoURL,
			CreatedAt: cfg.Thresholds.Cutoff.AddDate(0, -6, 0),
		},
		commits: commits,
	}

	v, err := NewPipeline(cfg, source, nil, nil).Classify(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 19, v.Signals.RapidCommitCount)
	assert.Equal(t, 100, v.Signals.VerificationRatio)
	assert.False(t, v.Eligible)
	assert.Equal(t, IneligibleMarker, v.Details[0])
}

// TestClassifyMalformedAIResponse verifies AI garbage degrades to the
// fallback opinion without surfacing any error.
func TestClassifyMalformedAIResponse(t *testing.T) {
	cfg := testConfig()
	base := time.Date(2025, time.December, 1, 12, 0, 0, 0, time.UTC)
	commits := make([]schema.Commit, 40)
	for i := range commits {
		commits[i] = schema.Commit{AuthoredAt: base.Add(time.Duration(i) * 4 * time.Minute), Verified: i < 34}
	}
	source := &fakeSource{
		repo:    schema.Repository{Owner: "octocat", Name: "hello-world", URL: cfg.RepoURL, CreatedAt: cfg.Thresholds.Cutoff.AddDate(0, 1, 0)},
		commits: commits,
	}
	completion := &fakeCompletion{text: "not json at all"}

	v, err := NewPipeline(cfg, source, completion, nil).Classify(context.Background())

	require.NoError(t, err)
	assert.Equal(t, schema.FallbackOpinion, v.Opinion.Source)
	assert.Equal(t, 85, v.Signals.VerificationRatio)
	assert.Equal(t, 39, v.Signals.RapidCommitCount)
	assert.Equal(t, schema.HighConfidence, v.Confidence)
}

// TestClassifyAICallFailure verifies a transport failure also degrades to
// the fallback opinion.
func TestClassifyAICallFailure(t *testing.T) {
	cfg := testConfig()
	source := &fakeSource{
		repo: schema.Repository{Owner: "octocat", Name: "hello-world", URL: cfg.RepoURL, CreatedAt: cfg.Thresholds.Cutoff},
	}
	completion := &fakeCompletion{err: errors.New("status 503")}

	v, err := NewPipeline(cfg, source, completion, nil).Classify(context.Background())

	require.NoError(t, err)
	assert.Equal(t, schema.FallbackOpinion, v.Opinion.Source)
}

// TestClassifyParsedAIResponse verifies a clean AI payload drives the verdict.
func TestClassifyParsedAIResponse(t *testing.T) {
	cfg := testConfig()
	source := &fakeSource{
		repo:   schema.Repository{Owner: "octocat", Name: "hello-world", URL: cfg.RepoURL, CreatedAt: cfg.Thresholds.Cutoff},
		marker: true,
	}
	completion := &fakeCompletion{
		text: `{"summary": "clearly generated", "likelihood": 91, "keyFindings": ["uniform messages"], "recommendations": ["spot check"], "confidence": "high"}`,
	}

	v, err := NewPipeline(cfg, source, completion, nil).Classify(context.Background())

	require.NoError(t, err)
	assert.Equal(t, schema.ParsedOpinion, v.Opinion.Source)
	assert.Equal(t, 91, v.Likelihood)
	assert.True(t, v.LikelyAutomated)
	assert.True(t, v.MarkerChecked)
	assert.True(t, v.MarkerFound)
	assert.Contains(t, v.Details, "Generation marker found in repository files")
}

// TestClassifyFetchFailures verifies repository and commit fetch errors
// abort the run.
func TestClassifyFetchFailures(t *testing.T) {
	cfg := testConfig()
	cfg.NoAI = true

	t.Run("repository fetch", func(t *testing.T) {
		source := &fakeSource{repoErr: contract.ErrCollaborator}

		_, err := NewPipeline(cfg, source, nil, nil).Classify(context.Background())

		require.Error(t, err)
		assert.ErrorIs(t, err, contract.ErrCollaborator)
	})

	t.Run("commit fetch", func(t *testing.T) {
		source := &fakeSource{
			repo:       schema.Repository{CreatedAt: cfg.Thresholds.Cutoff},
			commitsErr: contract.ErrCollaborator,
		}

		_, err := NewPipeline(cfg, source, nil, nil).Classify(context.Background())

		require.Error(t, err)
		assert.ErrorIs(t, err, contract.ErrCollaborator)
	})
}

// TestClassifyMarkerErrorIsNonFatal verifies a marker collaborator failure
// only drops the marker detail.
func TestClassifyMarkerErrorIsNonFatal(t *testing.T) {
	cfg := testConfig()
	cfg.NoAI = true
	source := &fakeSource{
		repo:      schema.Repository{Owner: "octocat", Name: "hello-world", URL: cfg.RepoURL, CreatedAt: cfg.Thresholds.Cutoff},
		markerErr: errors.New("status 500"),
	}

	v, err := NewPipeline(cfg, source, nil, nil).Classify(context.Background())

	require.NoError(t, err)
	assert.False(t, v.MarkerChecked)
	assert.False(t, v.MarkerFound)
}
