package core

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/huangsam/botspot/internal/contract"
	"github.com/huangsam/botspot/schema"
)

// Fallback likelihood weights. The estimate is monotone in both inputs and
// capped at 100: likelihood = min(100, round(0.4*ratio + 5*rapid)).
const (
	fallbackRatioWeight = 0.4
	fallbackRapidWeight = 5.0
)

// requiredOpinionFields are the keys the AI payload must carry to be usable.
var requiredOpinionFields = []string{"summary", "likelihood", "keyFindings", "recommendations", "confidence"}

// NormalizeOpinion turns the raw AI response text into a structurally valid
// opinion. It strips code fences and surrounding commentary, then runs a
// strict parse-then-validate pass; any structural defect at any stage
// resolves to the deterministic fallback. It never fails outward.
func NormalizeOpinion(raw string, sig schema.Signals, repo schema.Repository, th contract.Thresholds) schema.Opinion {
	payload := extractJSONPayload(raw)
	if payload == "" {
		return FallbackOpinion(sig, repo, th)
	}

	var fields map[string]any
	if err := json.Unmarshal([]byte(payload), &fields); err != nil {
		return FallbackOpinion(sig, repo, th)
	}
	for _, key := range requiredOpinionFields {
		if _, ok := fields[key]; !ok {
			return FallbackOpinion(sig, repo, th)
		}
	}

	findings := coerceStringList(fields["keyFindings"])
	recommendations := coerceStringList(fields["recommendations"])
	if len(findings) == 0 || len(recommendations) == 0 {
		return FallbackOpinion(sig, repo, th)
	}

	likelihood, ok := coerceLikelihood(fields["likelihood"])
	if !ok {
		likelihood = heuristicLikelihood(sig)
	}

	confidence := schema.ConfidenceTier(strings.ToLower(fmt.Sprint(fields["confidence"])))
	if _, valid := schema.ValidConfidenceTiers[confidence]; !valid {
		confidence = deriveConfidence(likelihood, th)
	}

	return schema.Opinion{
		Summary:         fmt.Sprint(fields["summary"]),
		Likelihood:      likelihood,
		KeyFindings:     findings,
		Recommendations: recommendations,
		Confidence:      confidence,
		Source:          schema.ParsedOpinion,
	}
}

// FallbackOpinion synthesizes an opinion purely from validated internal
// data. It is total: every classification run ends with a valid opinion
// even when the AI collaborator is down or hallucinating prose.
func FallbackOpinion(sig schema.Signals, repo schema.Repository, th contract.Thresholds) schema.Opinion {
	likelihood := heuristicLikelihood(sig)

	confidence := schema.LowConfidence
	switch {
	case sig.RapidCommitCount >= th.FallbackHighRapid:
		confidence = schema.HighConfidence
	case sig.RapidCommitCount >= th.FallbackMedRapid:
		confidence = schema.MediumConfidence
	}

	return schema.Opinion{
		Summary: fmt.Sprintf("Heuristic assessment of %s based on %d commits: %d%% verified, %d rapid commit pairs.",
			repo.FullName(), sig.TotalCommits, sig.VerificationRatio, sig.RapidCommitCount),
		Likelihood: likelihood,
		KeyFindings: []string{
			fmt.Sprintf("%d of %d commits carry a verified signature (%d%%)", sig.VerifiedCommits, sig.TotalCommits, sig.VerificationRatio),
			fmt.Sprintf("%d commit pairs landed within the rapid window", sig.RapidCommitCount),
			fmt.Sprintf("Repository created on %s", repo.CreatedAt.Format(eligibilityDateFormat)),
		},
		Recommendations: []string{
			"Review the commit history manually to confirm authorship patterns",
			"Inspect repository files for generation markers",
		},
		Confidence: confidence,
		Source:     schema.FallbackOpinion,
	}
}

// BuildPrompt produces the natural-language prompt for the completion call,
// embedding the signal bundle and a sample of recent commit messages. The
// response contract is the five-field JSON object NormalizeOpinion expects.
func BuildPrompt(sig schema.Signals, repo schema.Repository, commits []schema.Commit) string {
	var b strings.Builder
	b.WriteString("You are reviewing a GitHub repository to judge whether its content was primarily produced by an automated or AI-assisted tool.\n\n")
	fmt.Fprintf(&b, "Repository: %s (created %s, language %s)\n", repo.FullName(), repo.CreatedAt.Format(contract.DateTimeFormat), repo.Language)
	fmt.Fprintf(&b, "Total commits analyzed: %d\n", sig.TotalCommits)
	fmt.Fprintf(&b, "Verified (signed) commits: %d (%d%%)\n", sig.VerifiedCommits, sig.VerificationRatio)
	fmt.Fprintf(&b, "Rapid commit pairs (under 5 minutes apart): %d\n", sig.RapidCommitCount)
	for _, f := range sig.AllFindings() {
		fmt.Fprintf(&b, "Finding: %s\n", f)
	}

	b.WriteString("\nRecent commit messages:\n")
	limit := min(len(commits), 20)
	for _, c := range commits[:limit] {
		fmt.Fprintf(&b, "- %s\n", firstLine(c.Message))
	}

	b.WriteString("\nRespond with a single JSON object and nothing else, using exactly these fields:\n")
	b.WriteString(`{"summary": string, "likelihood": integer 0-100, "keyFindings": [string], "recommendations": [string], "confidence": "low"|"medium"|"high"}`)
	return b.String()
}

// extractJSONPayload strips whitespace and markdown fences, then truncates
// to the first '{' .. last '}' span to defend against commentary around the
// JSON object. Returns "" when no such span exists.
func extractJSONPayload(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end < start {
		return ""
	}
	return s[start : end+1]
}

// coerceStringList accepts a list, a scalar, or anything else printable and
// returns a list of strings. Scalars become single-element lists.
func coerceStringList(v any) []string {
	switch val := v.(type) {
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			out = append(out, fmt.Sprint(item))
		}
		return out
	case string:
		if strings.TrimSpace(val) == "" {
			return nil
		}
		return []string{val}
	case nil:
		return nil
	default:
		return []string{fmt.Sprint(val)}
	}
}

// coerceLikelihood converts the likelihood field to a clamped integer.
// The second return is false when the value is not numeric.
func coerceLikelihood(v any) (int, bool) {
	switch val := v.(type) {
	case float64:
		return clampLikelihood(int(math.Round(val))), true
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(val), 64); err == nil {
			return clampLikelihood(int(math.Round(f))), true
		}
		return 0, false
	default:
		return 0, false
	}
}

// deriveConfidence maps a likelihood to a confidence tier via fixed thresholds.
func deriveConfidence(likelihood int, th contract.Thresholds) schema.ConfidenceTier {
	switch {
	case likelihood > th.HighLikelihood:
		return schema.HighConfidence
	case likelihood > th.MediumLikelihood:
		return schema.MediumConfidence
	default:
		return schema.LowConfidence
	}
}

// heuristicLikelihood estimates automation likelihood from the signal
// bundle alone.
func heuristicLikelihood(sig schema.Signals) int {
	est := fallbackRatioWeight*float64(sig.VerificationRatio) + fallbackRapidWeight*float64(sig.RapidCommitCount)
	return clampLikelihood(int(math.Round(est)))
}

// clampLikelihood bounds a likelihood to [0,100].
func clampLikelihood(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// firstLine returns the subject line of a commit message.
func firstLine(msg string) string {
	if idx := strings.IndexByte(msg, '\n'); idx >= 0 {
		return msg[:idx]
	}
	return msg
}
