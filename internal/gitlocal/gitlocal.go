// Package gitlocal reads the commit shape botspot analyzes out of a local
// clone, for offline runs and for repositories that are not on GitHub.
package gitlocal

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/huangsam/botspot/internal/contract"
	"github.com/huangsam/botspot/schema"
)

// markerCandidates are the worktree files searched for a generation marker.
var markerCandidates = []string{
	"README.md",
	"package.json",
	"pyproject.toml",
	"go.mod",
	"index.html",
}

// Source implements contract.RepoSource against a local clone. The
// verification flag maps to PGP signature presence on the commit object,
// which is the closest local analogue of the platform's verified badge.
type Source struct {
	path       string
	maxCommits int
}

var _ contract.RepoSource = (*Source)(nil) // Compile-time check

// NewSource builds a local source from validated configuration.
func NewSource(cfg *contract.Config) *Source {
	return &Source{path: cfg.LocalPath, maxCommits: cfg.MaxCommits}
}

// FetchRepository derives repository metadata from the clone. The creation
// timestamp is the author time of the root commit; a repository with no
// commits has no valid creation instant and is rejected.
func (s *Source) FetchRepository(_ context.Context, owner, name string) (schema.Repository, error) {
	repo, err := git.PlainOpen(s.path)
	if err != nil {
		return schema.Repository{}, fmt.Errorf("%w: open repository at %s: %v", contract.ErrCollaborator, s.path, err)
	}

	iter, err := repo.Log(&git.LogOptions{})
	if err != nil {
		return schema.Repository{}, fmt.Errorf("%w: read log at %s: %v", contract.ErrCollaborator, s.path, err)
	}
	defer iter.Close()

	var oldest time.Time
	err = iter.ForEach(func(c *object.Commit) error {
		if oldest.IsZero() || c.Author.When.Before(oldest) {
			oldest = c.Author.When
		}
		return nil
	})
	if err != nil {
		return schema.Repository{}, fmt.Errorf("%w: walk log at %s: %v", contract.ErrCollaborator, s.path, err)
	}
	if oldest.IsZero() {
		return schema.Repository{}, fmt.Errorf("%w: repository at %s has no commits, no creation instant", contract.ErrCollaborator, s.path)
	}

	return schema.Repository{
		Owner:     owner,
		Name:      name,
		URL:       "https://github.com/" + owner + "/" + name,
		CreatedAt: oldest,
	}, nil
}

// FetchCommits walks the log from HEAD, newest first, up to the bound.
func (s *Source) FetchCommits(_ context.Context, _, _ string) ([]schema.Commit, error) {
	repo, err := git.PlainOpen(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: open repository at %s: %v", contract.ErrCollaborator, s.path, err)
	}

	iter, err := repo.Log(&git.LogOptions{})
	if err != nil {
		return nil, fmt.Errorf("%w: read log at %s: %v", contract.ErrCollaborator, s.path, err)
	}
	defer iter.Close()

	commits := make([]schema.Commit, 0, s.maxCommits)
	err = iter.ForEach(func(c *object.Commit) error {
		commits = append(commits, schema.Commit{
			SHA:        c.Hash.String(),
			AuthoredAt: c.Author.When,
			Message:    c.Message,
			Verified:   c.PGPSignature != "",
			Author:     c.Author.Name,
		})
		if len(commits) == s.maxCommits {
			return io.EOF // sentinel understood by the iterator as "stop"
		}
		return nil
	})
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("%w: walk log at %s: %v", contract.ErrCollaborator, s.path, err)
	}
	return commits, nil
}

// HasMarker searches the worktree candidate files for the marker substring.
func (s *Source) HasMarker(_ context.Context, _, _, marker string) (bool, error) {
	needle := strings.ToLower(marker)

	for _, candidate := range markerCandidates {
		data, err := os.ReadFile(filepath.Join(s.path, candidate))
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return false, fmt.Errorf("%w: read %s: %v", contract.ErrCollaborator, candidate, err)
		}
		if strings.Contains(strings.ToLower(string(data)), needle) {
			return true, nil
		}
	}
	return false, nil
}
