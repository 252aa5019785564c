package core

import (
	"fmt"
	"time"

	"github.com/huangsam/botspot/schema"
)

// eligibilityDateFormat is how dates are rendered inside reason strings.
const eligibilityDateFormat = "January 2, 2006"

// CheckEligibility decides the competition-window gate: a repository is
// eligible iff its creation instant is at or after the cutoff (inclusive
// boundary). The caller guarantees createdAt is a parsed, valid instant;
// sources reject unparseable timestamps before this point.
func CheckEligibility(createdAt, cutoff time.Time) schema.Eligibility {
	if createdAt.Before(cutoff) {
		return schema.Eligibility{
			Eligible: false,
			Reason: fmt.Sprintf("Repository was created on %s, before the competition start date of %s",
				createdAt.Format(eligibilityDateFormat), cutoff.Format(eligibilityDateFormat)),
		}
	}
	return schema.Eligibility{
		Eligible: true,
		Reason: fmt.Sprintf("Repository was created on %s, on or after the competition start date of %s",
			createdAt.Format(eligibilityDateFormat), cutoff.Format(eligibilityDateFormat)),
	}
}
