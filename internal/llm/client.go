// Package llm implements the generative-AI completion collaborator. One
// call per classification run, no retries: a failure here is absorbed by
// the opinion fallback, never surfaced to the user.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/huangsam/botspot/internal/contract"
)

// Client calls a Gemini-style generateContent endpoint.
type Client struct {
	httpc *http.Client
	base  string
	key   string
	model string
}

var _ contract.CompletionClient = (*Client)(nil) // Compile-time check

// NewClient builds a completion client from validated configuration.
func NewClient(cfg *contract.Config) *Client {
	return &Client{
		httpc: &http.Client{Timeout: cfg.Timeout},
		base:  strings.TrimSuffix(cfg.CompletionBase, "/"),
		key:   cfg.CompletionKey,
		model: cfg.Model,
	}
}

// generateRequest is the request envelope for generateContent.
type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

// generateResponse is the subset of the response envelope botspot reads.
type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Complete sends the prompt and returns the first candidate's text. Any
// transport failure, non-success status or empty candidate is an error.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("encode completion request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.base, c.model, c.key)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("completion call: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("completion call returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	var payload generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode completion response: %w", err)
	}
	if len(payload.Candidates) == 0 || len(payload.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("completion response has no candidates")
	}

	text := payload.Candidates[0].Content.Parts[0].Text
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("completion response is empty")
	}
	return text, nil
}
