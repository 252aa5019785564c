// Package githubapi implements the GitHub REST collaborator: repository
// metadata, bounded commit history and the marker-presence check.
package githubapi

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/huangsam/botspot/internal/contract"
	"github.com/huangsam/botspot/schema"
)

// commitsPerPage is the GitHub API page size for commit listings.
const commitsPerPage = 100

// markerCandidates are the files searched for a generation marker, in
// order. Missing files are skipped; all-missing yields false, not an error.
var markerCandidates = []string{
	"README.md",
	"package.json",
	"pyproject.toml",
	"go.mod",
	"index.html",
}

// Client talks to the GitHub REST API.
type Client struct {
	httpc      *http.Client
	base       string
	token      string
	maxCommits int
}

var _ contract.RepoSource = (*Client)(nil) // Compile-time check

// NewClient builds a GitHub client from validated configuration.
func NewClient(cfg *contract.Config) *Client {
	return &Client{
		httpc:      &http.Client{Timeout: cfg.Timeout},
		base:       strings.TrimSuffix(cfg.GitHubAPIBase, "/"),
		token:      cfg.GitHubToken,
		maxCommits: cfg.MaxCommits,
	}
}

// repoPayload is the subset of the repository response botspot reads.
type repoPayload struct {
	HTMLURL       string `json:"html_url"`
	CreatedAt     string `json:"created_at"`
	Size          int    `json:"size"`
	Language      string `json:"language"`
	DefaultBranch string `json:"default_branch"`
}

// commitPayload is the subset of the commit listing response botspot reads.
type commitPayload struct {
	SHA    string `json:"sha"`
	Commit struct {
		Message string `json:"message"`
		Author  struct {
			Name string `json:"name"`
			Date string `json:"date"`
		} `json:"author"`
		Verification struct {
			Verified bool `json:"verified"`
		} `json:"verification"`
	} `json:"commit"`
	Author struct {
		Login string `json:"login"`
	} `json:"author"`
}

// contentPayload is the subset of the file contents response botspot reads.
type contentPayload struct {
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
}

// FetchRepository returns repository metadata. An unparseable creation
// timestamp is a precondition violation and surfaces as an error.
func (c *Client) FetchRepository(ctx context.Context, owner, name string) (schema.Repository, error) {
	var payload repoPayload
	if err := c.getJSON(ctx, fmt.Sprintf("%s/repos/%s/%s", c.base, owner, name), &payload); err != nil {
		return schema.Repository{}, err
	}

	createdAt, err := time.Parse(time.RFC3339, payload.CreatedAt)
	if err != nil {
		return schema.Repository{}, fmt.Errorf("%w: repository %s/%s has unparseable created_at %q: %v",
			contract.ErrCollaborator, owner, name, payload.CreatedAt, err)
	}

	url := payload.HTMLURL
	if url == "" {
		url = "https://github.com/" + owner + "/" + name
	}
	return schema.Repository{
		Owner:         owner,
		Name:          name,
		URL:           url,
		CreatedAt:     createdAt,
		SizeKB:        payload.Size,
		Language:      payload.Language,
		DefaultBranch: payload.DefaultBranch,
	}, nil
}

// FetchCommits returns up to maxCommits most-recent commits.
func (c *Client) FetchCommits(ctx context.Context, owner, name string) ([]schema.Commit, error) {
	commits := make([]schema.Commit, 0, c.maxCommits)

	for page := 1; len(commits) < c.maxCommits; page++ {
		url := fmt.Sprintf("%s/repos/%s/%s/commits?per_page=%d&page=%d", c.base, owner, name, commitsPerPage, page)
		var payload []commitPayload
		if err := c.getJSON(ctx, url, &payload); err != nil {
			return nil, err
		}

		for _, p := range payload {
			authoredAt, err := time.Parse(time.RFC3339, p.Commit.Author.Date)
			if err != nil {
				// Skip commits with broken timestamps rather than poisoning the scan
				continue
			}
			author := p.Author.Login
			if author == "" {
				author = p.Commit.Author.Name
			}
			commits = append(commits, schema.Commit{
				SHA:        p.SHA,
				AuthoredAt: authoredAt,
				Message:    p.Commit.Message,
				Verified:   p.Commit.Verification.Verified,
				Author:     author,
			})
			if len(commits) == c.maxCommits {
				break
			}
		}

		if len(payload) < commitsPerPage {
			break
		}
	}
	return commits, nil
}

// HasMarker reports whether any candidate file contains the marker
// substring, case-insensitively.
func (c *Client) HasMarker(ctx context.Context, owner, name, marker string) (bool, error) {
	needle := strings.ToLower(marker)

	for _, path := range markerCandidates {
		url := fmt.Sprintf("%s/repos/%s/%s/contents/%s", c.base, owner, name, path)
		var payload contentPayload
		err := c.getJSON(ctx, url, &payload)
		if err != nil {
			if isNotFound(err) {
				continue
			}
			return false, err
		}
		if payload.Encoding != "base64" {
			continue
		}
		decoded, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(payload.Content, "\n", ""))
		if err != nil {
			continue
		}
		if strings.Contains(strings.ToLower(string(decoded)), needle) {
			return true, nil
		}
	}
	return false, nil
}

// statusError carries the HTTP status of a failed collaborator call.
type statusError struct {
	status int
	url    string
	detail string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("GET %s returned status %d: %s", e.url, e.status, e.detail)
}

func (e *statusError) Unwrap() error { return contract.ErrCollaborator }

// isNotFound reports whether an error is a 404 status error.
func isNotFound(err error) bool {
	var se *statusError
	return errors.As(err, &se) && se.status == http.StatusNotFound
}

// getJSON performs one authenticated GET and decodes the response body.
func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: build request: %v", contract.ErrCollaborator, err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", contract.ErrCollaborator, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &statusError{status: resp.StatusCode, url: url, detail: strings.TrimSpace(string(body))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response from %s: %v", contract.ErrCollaborator, url, err)
	}
	return nil
}
