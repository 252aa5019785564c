package core

import (
	"testing"
	"time"

	"github.com/huangsam/botspot/internal/contract"
	"github.com/huangsam/botspot/schema"
	"github.com/stretchr/testify/assert"
)

func testOpinion(likelihood int) schema.Opinion {
	return schema.Opinion{
		Summary:         "test",
		Likelihood:      likelihood,
		KeyFindings:     []string{"f"},
		Recommendations: []string{"r"},
		Confidence:      schema.MediumConfidence,
		Source:          schema.ParsedOpinion,
	}
}

// TestComposeVerdictLikelyAutomated tests the strict likelihood boundary.
func TestComposeVerdictLikelyAutomated(t *testing.T) {
	th := contract.DefaultThresholds()
	elig := schema.Eligibility{Eligible: true, Reason: "in window"}

	tests := []struct {
		likelihood int
		expected   bool
	}{
		{likelihood: 0, expected: false},
		{likelihood: 70, expected: false},
		{likelihood: 71, expected: true},
		{likelihood: 100, expected: true},
	}

	for _, tt := range tests {
		v := ComposeVerdict(testRepo(), schema.Signals{}, elig, testOpinion(tt.likelihood), false, false, th)

		assert.Equal(t, tt.expected, v.LikelyAutomated, "likelihood %d", tt.likelihood)
		assert.Equal(t, tt.likelihood, v.Likelihood)
	}
}

// TestComposeVerdictDetails verifies detail ordering and the ineligibility marker.
func TestComposeVerdictDetails(t *testing.T) {
	th := contract.DefaultThresholds()
	sig := schema.Signals{TotalCommits: 20, VerifiedCommits: 20, VerificationRatio: 100, RapidCommitCount: 19}

	t.Run("ineligible verdict leads with the marker", func(t *testing.T) {
		elig := schema.Eligibility{Eligible: false, Reason: "created too early"}

		v := ComposeVerdict(testRepo(), sig, elig, testOpinion(50), true, true, th)

		assert.False(t, v.Eligible)
		assert.Equal(t, IneligibleMarker, v.Details[0])
		assert.Equal(t, "created too early", v.Details[len(v.Details)-1])
	})

	t.Run("eligible verdict has no marker", func(t *testing.T) {
		elig := schema.Eligibility{Eligible: true, Reason: "in window"}

		v := ComposeVerdict(testRepo(), sig, elig, testOpinion(50), true, false, th)

		assert.True(t, v.Eligible)
		assert.Contains(t, v.Details[0], "20 of 20 commits verified (100%)")
	})

	t.Run("marker detail only when checked", func(t *testing.T) {
		elig := schema.Eligibility{Eligible: true, Reason: "in window"}

		checked := ComposeVerdict(testRepo(), sig, elig, testOpinion(50), true, true, th)
		unchecked := ComposeVerdict(testRepo(), sig, elig, testOpinion(50), false, false, th)

		assert.Contains(t, checked.Details, "Generation marker found in repository files")
		assert.NotContains(t, unchecked.Details, "Generation marker found in repository files")
		assert.NotContains(t, unchecked.Details, "No generation marker found in repository files")
	})
}

// TestComposeVerdictPassthrough verifies the opinion is the single source
// of truth for score and confidence.
func TestComposeVerdictPassthrough(t *testing.T) {
	th := contract.DefaultThresholds()
	op := testOpinion(88)
	op.Confidence = schema.HighConfidence
	elig := schema.Eligibility{Eligible: true, Reason: "in window"}
	created := time.Date(2025, time.November, 20, 10, 0, 0, 0, time.UTC)

	v := ComposeVerdict(testRepo(), schema.Signals{VerificationRatio: 1}, elig, op, false, false, th)

	assert.Equal(t, 88, v.Likelihood)
	assert.Equal(t, schema.HighConfidence, v.Confidence)
	assert.Equal(t, op, v.Opinion)
	assert.Equal(t, created, v.CreatedAt)
	assert.Equal(t, "https://github.com/octocat/hello-world", v.RepoURL)
}
