// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"

	"github.com/huangsam/botspot/schema"
)

// RepoSource defines the operations needed to read repository state from a
// hosting platform. This allows the core pipeline to be tested without
// network access.
type RepoSource interface {
	// FetchRepository returns repository metadata. The creation timestamp
	// must be a valid instant; sources return an error otherwise.
	FetchRepository(ctx context.Context, owner, name string) (schema.Repository, error)

	// FetchCommits returns up to the configured maximum of most-recent
	// commits, each with timestamp, message and verification flag.
	FetchCommits(ctx context.Context, owner, name string) ([]schema.Commit, error)

	// HasMarker reports whether the marker substring appears in any of the
	// candidate source files. Absence of all candidates yields false, not
	// an error.
	HasMarker(ctx context.Context, owner, name, marker string) (bool, error)
}

// CompletionClient defines a single-shot generative text completion call.
// Failures are absorbed by the opinion normalizer, never retried.
type CompletionClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// VerdictManager defines the interface for accessing the verdict store.
// This allows the persistence layer to be mocked for testing.
type VerdictManager interface {
	GetVerdictStore() VerdictStore
}

// VerdictStore defines the interface for recording classification runs.
type VerdictStore interface {
	// RecordVerdict persists a completed verdict and returns its row ID.
	RecordVerdict(v schema.Verdict) (int64, error)

	// ListVerdicts returns up to limit most-recent stored verdicts as rows.
	ListVerdicts(limit int) ([]schema.VerdictRow, error)

	// GetStatus returns status information about the store.
	GetStatus() (schema.StoreStatus, error)

	// Close closes the underlying connection.
	Close() error
}
