package core

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/huangsam/botspot/internal/contract"
	"github.com/huangsam/botspot/schema"
)

// Off-hours window boundaries (local hour of day). A commit authored at or
// after offHoursStart, or at or before offHoursEnd, counts as off-hours.
const (
	offHoursStart = 22
	offHoursEnd   = 6
)

// AnalyzeCommits turns a raw commit list into the quantitative signal
// bundle. Pure and deterministic: an empty list yields an all-zero bundle
// with no findings, and reordering the input never changes the result
// because timestamps are sorted before the adjacent-pair scan.
func AnalyzeCommits(commits []schema.Commit, th contract.Thresholds) schema.Signals {
	sig := schema.Signals{TotalCommits: len(commits)}
	if len(commits) == 0 {
		return sig
	}

	for _, c := range commits {
		if c.Verified {
			sig.VerifiedCommits++
		}
	}
	sig.VerificationRatio = roundPercent(sig.VerifiedCommits, sig.TotalCommits)

	times := make([]time.Time, len(commits))
	for i, c := range commits {
		times[i] = c.AuthoredAt
	}
	sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })
	for i := 1; i < len(times); i++ {
		if times[i].Sub(times[i-1]) < th.RapidWindow {
			sig.RapidCommitCount++
		}
	}

	sig.FilePatterns = filePatternFindings(commits, sig, th)
	sig.TimePatterns = timePatternFindings(commits, sig, th)
	return sig
}

// filePatternFindings emits qualitative findings from message content and
// the counters already computed.
func filePatternFindings(commits []schema.Commit, sig schema.Signals, th contract.Thresholds) []string {
	var findings []string

	depCommits := 0
	for _, c := range commits {
		msg := strings.ToLower(c.Message)
		if strings.Contains(msg, "package.json") || strings.Contains(msg, "dependencies") {
			depCommits++
		}
	}
	if depCommits > 0 {
		findings = append(findings, fmt.Sprintf("%d commits modify package.json or dependencies", depCommits))
	}

	if sig.RapidCommitCount > th.RapidBurst {
		findings = append(findings, fmt.Sprintf("Multiple rapid changes: %d commit pairs within %s", sig.RapidCommitCount, th.RapidWindow))
	}
	if sig.VerificationRatio > th.HighVerification {
		findings = append(findings, fmt.Sprintf("High verification rate: %d%% of commits are signed", sig.VerificationRatio))
	}
	return findings
}

// timePatternFindings emits qualitative findings from temporal thresholds.
func timePatternFindings(commits []schema.Commit, sig schema.Signals, th contract.Thresholds) []string {
	var findings []string

	if sig.RapidCommitCount > th.RapidFrequent {
		findings = append(findings, fmt.Sprintf("Frequent rapid commits: %d pairs under the %s window", sig.RapidCommitCount, th.RapidWindow))
	}

	offHours := 0
	for _, c := range commits {
		hour := c.AuthoredAt.Hour()
		if hour >= offHoursStart || hour <= offHoursEnd {
			offHours++
		}
	}
	if float64(offHours) > th.OffHoursFraction*float64(sig.TotalCommits) {
		findings = append(findings, fmt.Sprintf("Unusual off-hours pattern: %d of %d commits between %d:00 and 0%d:59", offHours, sig.TotalCommits, offHoursStart, offHoursEnd))
	}
	return findings
}

// roundPercent computes an integer percentage, rounded half-up.
func roundPercent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(float64(part)/float64(total)*100 + 0.5)
}
