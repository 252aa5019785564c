package schema

import "strings"

// AllFindings returns the file-pattern and time-pattern findings as one
// ordered list, file patterns first.
func (s Signals) AllFindings() []string {
	out := make([]string, 0, len(s.FilePatterns)+len(s.TimePatterns))
	out = append(out, s.FilePatterns...)
	out = append(out, s.TimePatterns...)
	return out
}

// IsValid reports whether the opinion satisfies all structural constraints.
// A normalized opinion always passes; this exists for boundary assertions.
func (o Opinion) IsValid() bool {
	if o.Likelihood < 0 || o.Likelihood > 100 {
		return false
	}
	if len(o.KeyFindings) == 0 || len(o.Recommendations) == 0 {
		return false
	}
	_, ok := ValidConfidenceTiers[o.Confidence]
	return ok
}

// VerdictRow is a flattened verdict used for CSV and Parquet export.
type VerdictRow struct {
	RepoURL           string `parquet:"repo_url,snappy"`
	Likelihood        int32  `parquet:"likelihood,snappy"`
	LikelyAutomated   bool   `parquet:"likely_automated,snappy"`
	Eligible          bool   `parquet:"eligible,snappy"`
	MarkerFound       bool   `parquet:"marker_found,snappy"`
	TotalCommits      int32  `parquet:"total_commits,snappy"`
	VerifiedCommits   int32  `parquet:"verified_commits,snappy"`
	VerificationRatio int32  `parquet:"verification_ratio,snappy"`
	RapidCommitCount  int32  `parquet:"rapid_commit_count,snappy"`
	Confidence        string `parquet:"confidence,snappy"`
	OpinionSource     string `parquet:"opinion_source,snappy"`
	Summary           string `parquet:"summary,snappy"`
	Findings          string `parquet:"findings,snappy"`
	EligibilityReason string `parquet:"eligibility_reason,snappy"`
	CreatedAt         int64  `parquet:"created_at,timestamp,snappy"`
	AnalyzedAt        int64  `parquet:"analyzed_at,timestamp,snappy"`
}

// Row flattens the verdict for tabular export.
func (v Verdict) Row() VerdictRow {
	return VerdictRow{
		RepoURL:           v.RepoURL,
		Likelihood:        int32(v.Likelihood),
		LikelyAutomated:   v.LikelyAutomated,
		Eligible:          v.Eligible,
		MarkerFound:       v.MarkerFound,
		TotalCommits:      int32(v.Signals.TotalCommits),
		VerifiedCommits:   int32(v.Signals.VerifiedCommits),
		VerificationRatio: int32(v.Signals.VerificationRatio),
		RapidCommitCount:  int32(v.Signals.RapidCommitCount),
		Confidence:        string(v.Confidence),
		OpinionSource:     string(v.Opinion.Source),
		Summary:           v.Opinion.Summary,
		Findings:          strings.Join(v.Signals.AllFindings(), "; "),
		EligibilityReason: v.EligibilityReason,
		CreatedAt:         v.CreatedAt.UnixMilli(),
		AnalyzedAt:        v.AnalyzedAt.UnixMilli(),
	}
}
