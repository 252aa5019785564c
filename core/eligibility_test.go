package core

import (
	"testing"
	"time"

	"github.com/huangsam/botspot/internal/contract"
	"github.com/stretchr/testify/assert"
)

// TestCheckEligibility exercises the inclusive cutoff boundary.
func TestCheckEligibility(t *testing.T) {
	cutoff := contract.DefaultCutoff

	tests := []struct {
		name     string
		created  time.Time
		eligible bool
	}{
		{name: "exactly at cutoff", created: cutoff, eligible: true},
		{name: "one millisecond before", created: cutoff.Add(-time.Millisecond), eligible: false},
		{name: "one millisecond after", created: cutoff.Add(time.Millisecond), eligible: true},
		{name: "well after cutoff", created: cutoff.AddDate(0, 1, 0), eligible: true},
		{name: "well before cutoff", created: cutoff.AddDate(-1, 0, 0), eligible: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CheckEligibility(tt.created, cutoff)

			assert.Equal(t, tt.eligible, result.Eligible)
			assert.Contains(t, result.Reason, cutoff.Format(eligibilityDateFormat))
			assert.Contains(t, result.Reason, tt.created.Format(eligibilityDateFormat))
		})
	}
}

// TestCheckEligibilityWording verifies the two branches read differently.
func TestCheckEligibilityWording(t *testing.T) {
	cutoff := contract.DefaultCutoff

	eligible := CheckEligibility(cutoff.AddDate(0, 0, 7), cutoff)
	ineligible := CheckEligibility(cutoff.AddDate(0, 0, -7), cutoff)

	assert.NotEqual(t, eligible.Reason, ineligible.Reason)
	assert.Contains(t, eligible.Reason, "on or after")
	assert.Contains(t, ineligible.Reason, "before")
}
