package core

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/huangsam/botspot/internal/contract"
	"github.com/huangsam/botspot/schema"
	"github.com/stretchr/testify/assert"
)

// buildCommits creates n commits spaced apart by gap, starting at base.
func buildCommits(n int, base time.Time, gap time.Duration, verified bool) []schema.Commit {
	commits := make([]schema.Commit, n)
	for i := range n {
		commits[i] = schema.Commit{
			SHA:        fmt.Sprintf("sha%04d", i),
			AuthoredAt: base.Add(time.Duration(i) * gap),
			Message:    fmt.Sprintf("commit %d", i),
			Verified:   verified,
		}
	}
	return commits
}

// TestAnalyzeCommitsEmpty verifies the all-zero bundle for an empty list.
func TestAnalyzeCommitsEmpty(t *testing.T) {
	sig := AnalyzeCommits(nil, contract.DefaultThresholds())

	assert.Equal(t, 0, sig.TotalCommits)
	assert.Equal(t, 0, sig.VerifiedCommits)
	assert.Equal(t, 0, sig.VerificationRatio)
	assert.Equal(t, 0, sig.RapidCommitCount)
	assert.Empty(t, sig.FilePatterns)
	assert.Empty(t, sig.TimePatterns)
}

// TestVerificationRatio tests integer percentage rounding.
func TestVerificationRatio(t *testing.T) {
	base := time.Date(2026, time.January, 5, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		verified int
		total    int
		expected int
	}{
		{name: "all verified", verified: 3, total: 3, expected: 100},
		{name: "none verified", verified: 0, total: 3, expected: 0},
		{name: "one third rounds down", verified: 1, total: 3, expected: 33},
		{name: "two thirds rounds up", verified: 2, total: 3, expected: 67},
		{name: "half", verified: 1, total: 2, expected: 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			commits := buildCommits(tt.total, base, time.Hour, false)
			for i := 0; i < tt.verified; i++ {
				commits[i].Verified = true
			}

			sig := AnalyzeCommits(commits, contract.DefaultThresholds())

			assert.Equal(t, tt.expected, sig.VerificationRatio)
			assert.GreaterOrEqual(t, sig.VerifiedCommits, 0)
			assert.LessOrEqual(t, sig.VerifiedCommits, sig.TotalCommits)
		})
	}
}

// TestRapidCommitCount tests the sorted adjacent-pair scan.
func TestRapidCommitCount(t *testing.T) {
	base := time.Date(2026, time.January, 5, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		gap      time.Duration
		count    int
		expected int
	}{
		{name: "burst under window", gap: time.Minute, count: 20, expected: 19},
		{name: "exactly at window boundary", gap: 5 * time.Minute, count: 10, expected: 0},
		{name: "just under window boundary", gap: 5*time.Minute - time.Second, count: 10, expected: 9},
		{name: "spread out", gap: time.Hour, count: 10, expected: 0},
		{name: "single commit", gap: time.Minute, count: 1, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			commits := buildCommits(tt.count, base, tt.gap, false)

			sig := AnalyzeCommits(commits, contract.DefaultThresholds())

			assert.Equal(t, tt.expected, sig.RapidCommitCount)
			assert.LessOrEqual(t, sig.RapidCommitCount, max(sig.TotalCommits-1, 0))
		})
	}
}

// TestRapidCommitCountOrderIndependent verifies the sort-then-scan makes the
// result invariant under input reordering.
func TestRapidCommitCountOrderIndependent(t *testing.T) {
	base := time.Date(2026, time.January, 5, 12, 0, 0, 0, time.UTC)
	commits := buildCommits(12, base, 2*time.Minute, true)

	// Reverse and interleave copies
	reversed := make([]schema.Commit, len(commits))
	for i, c := range commits {
		reversed[len(commits)-1-i] = c
	}
	shuffled := []schema.Commit{commits[5], commits[0], commits[11], commits[3], commits[8], commits[1], commits[9], commits[2], commits[7], commits[4], commits[10], commits[6]}

	forward := AnalyzeCommits(commits, contract.DefaultThresholds())
	backward := AnalyzeCommits(reversed, contract.DefaultThresholds())
	mixed := AnalyzeCommits(shuffled, contract.DefaultThresholds())

	assert.Equal(t, forward.RapidCommitCount, backward.RapidCommitCount)
	assert.Equal(t, forward.RapidCommitCount, mixed.RapidCommitCount)
	assert.Equal(t, 11, forward.RapidCommitCount)
}

// TestFilePatternFindings covers the message and counter thresholds.
func TestFilePatternFindings(t *testing.T) {
	base := time.Date(2026, time.January, 5, 12, 0, 0, 0, time.UTC)

	t.Run("dependency messages", func(t *testing.T) {
		commits := buildCommits(4, base, time.Hour, false)
		commits[1].Message = "Update package.json scripts"
		commits[2].Message = "Bump Dependencies for security"

		sig := AnalyzeCommits(commits, contract.DefaultThresholds())

		assert.Len(t, sig.FilePatterns, 1)
		assert.Contains(t, sig.FilePatterns[0], "2 commits")
	})

	t.Run("rapid burst threshold is exclusive", func(t *testing.T) {
		// 6 commits one minute apart yields 5 rapid pairs, not above the burst threshold
		atThreshold := AnalyzeCommits(buildCommits(6, base, time.Minute, false), contract.DefaultThresholds())
		aboveThreshold := AnalyzeCommits(buildCommits(7, base, time.Minute, false), contract.DefaultThresholds())

		assert.NotContains(t, strings.Join(atThreshold.FilePatterns, "\n"), "Multiple rapid changes")
		assert.Contains(t, strings.Join(aboveThreshold.FilePatterns, "\n"), "Multiple rapid changes")
	})

	t.Run("high verification rate", func(t *testing.T) {
		sig := AnalyzeCommits(buildCommits(10, base, time.Hour, true), contract.DefaultThresholds())

		assert.Contains(t, strings.Join(sig.FilePatterns, "\n"), "High verification rate")
	})
}

// TestTimePatternFindings covers the frequent-rapid and off-hours thresholds.
func TestTimePatternFindings(t *testing.T) {
	t.Run("frequent rapid commits", func(t *testing.T) {
		base := time.Date(2026, time.January, 5, 12, 0, 0, 0, time.UTC)
		sig := AnalyzeCommits(buildCommits(12, base, time.Minute, false), contract.DefaultThresholds())

		assert.Equal(t, 11, sig.RapidCommitCount)
		assert.Contains(t, strings.Join(sig.TimePatterns, "\n"), "Frequent rapid commits")
	})

	t.Run("off-hours pattern", func(t *testing.T) {
		// All commits at 03:00; fraction 1.0 exceeds the 0.3 threshold
		base := time.Date(2026, time.January, 5, 3, 0, 0, 0, time.UTC)
		sig := AnalyzeCommits(buildCommits(5, base, 10*time.Second, false), contract.DefaultThresholds())

		assert.Contains(t, strings.Join(sig.TimePatterns, "\n"), "off-hours")
	})

	t.Run("daytime commits stay quiet", func(t *testing.T) {
		base := time.Date(2026, time.January, 5, 10, 0, 0, 0, time.UTC)
		sig := AnalyzeCommits(buildCommits(5, base, time.Hour, false), contract.DefaultThresholds())

		assert.NotContains(t, strings.Join(sig.TimePatterns, "\n"), "off-hours")
	})
}
