// Package schema has configs, models and shared constants for all parts of botspot.
package schema

import "time"

// Commit is a single commit record as reported by the hosting platform.
// It is read-only input to the signal analyzer and is never mutated.
type Commit struct {
	SHA        string    // Content hash identifier
	AuthoredAt time.Time // Author timestamp
	Message    string    // Free-text commit message
	Verified   bool      // Cryptographic signature presence
	Author     string    // Optional author identity (login or name)
}

// Repository is the metadata botspot needs about a remote repository.
type Repository struct {
	Owner         string
	Name          string
	URL           string
	CreatedAt     time.Time // Must be a valid instant; enforced at fetch time
	SizeKB        int
	Language      string
	DefaultBranch string
}

// FullName returns the owner/name pair in the canonical GitHub form.
func (r Repository) FullName() string {
	return r.Owner + "/" + r.Name
}

// Signals is the quantitative signal bundle computed from a commit list.
// It is a pure value object; all downstream logic consumes it read-only.
type Signals struct {
	TotalCommits      int      // Count of input commits
	VerifiedCommits   int      // Count with the verification flag set
	VerificationRatio int      // Verified percentage, rounded half-up; 0 when empty
	RapidCommitCount  int      // Adjacent pairs (sorted by time) under the rapid window
	FilePatterns      []string // Qualitative findings from message/counter thresholds
	TimePatterns      []string // Qualitative findings from temporal thresholds
}

// Eligibility is the competition-window decision for a repository.
type Eligibility struct {
	Eligible bool
	Reason   string
}

// Opinion is a normalized AI assessment. It is always structurally valid:
// likelihood in [0,100], non-empty finding/recommendation lists, and a
// confidence tier from the known set. Source records which path produced it.
type Opinion struct {
	Summary         string         `json:"summary"`
	Likelihood      int            `json:"likelihood"`
	KeyFindings     []string       `json:"keyFindings"`
	Recommendations []string       `json:"recommendations"`
	Confidence      ConfidenceTier `json:"confidence"`
	Source          OpinionSource  `json:"-"`
}

// Verdict is the final, request-scoped result of a classification run.
// It is created once per run and never mutated afterwards.
type Verdict struct {
	RepoURL           string         `json:"repoUrl"`
	Likelihood        int            `json:"likelihood"`
	LikelyAutomated   bool           `json:"likelyAutomated"`
	Eligible          bool           `json:"eligible"`
	MarkerFound       bool           `json:"markerFound"`
	MarkerChecked     bool           `json:"markerChecked"`
	Signals           Signals        `json:"signals"`
	Confidence        ConfidenceTier `json:"confidence"`
	Details           []string       `json:"details"`
	Opinion           Opinion        `json:"opinion"`
	EligibilityReason string         `json:"eligibilityReason"`
	CreatedAt         time.Time      `json:"createdAt"`
	AnalyzedAt        time.Time      `json:"analyzedAt"`
}
