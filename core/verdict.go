package core

import (
	"fmt"

	"github.com/huangsam/botspot/internal/contract"
	"github.com/huangsam/botspot/schema"
)

// IneligibleMarker is the prominent first detail line when the repository
// falls outside the competition window.
const IneligibleMarker = "⚠️ NOT ELIGIBLE: repository was created before the competition start date"

// ComposeVerdict merges the signal bundle, the eligibility decision, the
// normalized opinion and the optional marker flag into the final verdict.
// The opinion is the single source of truth for the headline likelihood and
// confidence tier; heuristic signals feed it but never override it. Total
// by construction: every input is already valid.
func ComposeVerdict(repo schema.Repository, sig schema.Signals, elig schema.Eligibility, op schema.Opinion, markerChecked, markerFound bool, th contract.Thresholds) schema.Verdict {
	details := make([]string, 0, 8)
	if !elig.Eligible {
		details = append(details, IneligibleMarker)
	}

	details = append(details,
		fmt.Sprintf("%d of %d commits verified (%d%%)", sig.VerifiedCommits, sig.TotalCommits, sig.VerificationRatio),
		fmt.Sprintf("%d rapid commit pairs within %s", sig.RapidCommitCount, th.RapidWindow),
		fmt.Sprintf("AI likelihood score: %d/100 (%s confidence)", op.Likelihood, op.Confidence),
	)
	if markerChecked {
		if markerFound {
			details = append(details, "Generation marker found in repository files")
		} else {
			details = append(details, "No generation marker found in repository files")
		}
	}
	details = append(details,
		fmt.Sprintf("Repository created on %s", repo.CreatedAt.Format(eligibilityDateFormat)),
		elig.Reason,
	)

	return schema.Verdict{
		RepoURL:           repo.URL,
		Likelihood:        op.Likelihood,
		LikelyAutomated:   op.Likelihood > th.LikelyAutomated,
		Eligible:          elig.Eligible,
		MarkerFound:       markerFound,
		MarkerChecked:     markerChecked,
		Signals:           sig,
		Confidence:        op.Confidence,
		Details:           details,
		Opinion:           op,
		EligibilityReason: elig.Reason,
		CreatedAt:         repo.CreatedAt,
	}
}
