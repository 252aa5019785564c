package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/botspot/internal/contract"
	"github.com/huangsam/botspot/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteVerdictResult outputs a classification verdict, dispatching based on the output format configured.
func WriteVerdictResult(v *schema.Verdict, cfg *contract.Config, duration time.Duration) error {
	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeVerdictJSON(v, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeVerdictCSV(v, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeVerdictTable(v, cfg, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeVerdictJSON handles opening the file and calling the JSON writer.
func writeVerdictJSON(v *schema.Verdict, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		// Attach label and opinion source alongside the raw verdict
		type JSONVerdict struct {
			Label         string `json:"label"`
			OpinionSource string `json:"opinionSource"`
			*schema.Verdict
		}
		return writeJSON(w, JSONVerdict{
			Label:         contract.GetPlainLabel(v.Likelihood),
			OpinionSource: string(v.Opinion.Source),
			Verdict:       v,
		})
	}, "Wrote JSON")
}

// writeVerdictCSV handles opening the file and calling the CSV writer.
func writeVerdictCSV(v *schema.Verdict, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVWithHeader(w, verdictCSVHeader, func(cw *csv.Writer) error {
			return cw.Write(verdictCSVRecord(v.Row()))
		})
	}, "Wrote CSV")
}

// verdictCSVHeader matches the columns of schema.VerdictRow.
var verdictCSVHeader = []string{
	"repo_url",
	"likelihood",
	"label",
	"likely_automated",
	"eligible",
	"marker_found",
	"total_commits",
	"verified_commits",
	"verification_ratio",
	"rapid_commit_count",
	"confidence",
	"opinion_source",
	"summary",
	"findings",
	"eligibility_reason",
	"created_at",
	"analyzed_at",
}

// verdictCSVRecord renders one VerdictRow as a CSV record.
func verdictCSVRecord(row schema.VerdictRow) []string {
	return []string{
		row.RepoURL,
		strconv.Itoa(int(row.Likelihood)),
		contract.GetPlainLabel(int(row.Likelihood)),
		strconv.FormatBool(row.LikelyAutomated),
		strconv.FormatBool(row.Eligible),
		strconv.FormatBool(row.MarkerFound),
		strconv.Itoa(int(row.TotalCommits)),
		strconv.Itoa(int(row.VerifiedCommits)),
		strconv.Itoa(int(row.VerificationRatio)),
		strconv.Itoa(int(row.RapidCommitCount)),
		row.Confidence,
		row.OpinionSource,
		row.Summary,
		row.Findings,
		row.EligibilityReason,
		time.UnixMilli(row.CreatedAt).UTC().Format(contract.DateTimeFormat),
		time.UnixMilli(row.AnalyzedAt).UTC().Format(contract.DateTimeFormat),
	}
}

// writeVerdictTable generates and writes the human-readable verdict view.
func writeVerdictTable(v *schema.Verdict, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	// 1. Define Headers
	headers := []string{"Repository", "Likelihood", "Label", "Automated", "Eligible", "Confidence"}
	table.Header(headers)

	// 2. Configure Separators/Borders to match a minimal look
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate the single verdict row
	label := contract.GetPlainLabel(v.Likelihood)
	if cfg.UseColors {
		label = contract.GetColorLabel(v.Likelihood)
	}
	row := []string{
		truncateText(v.RepoURL, getMaxTableTextWidth(cfg)),
		strconv.Itoa(v.Likelihood),
		label,
		formatYesNo(v.LikelyAutomated),
		formatYesNo(v.Eligible),
		string(v.Confidence),
	}
	if err := table.Bulk([][]string{row}); err != nil {
		return err
	}

	// 4. Render table, then the detail lines beneath it
	if err := table.Render(); err != nil {
		return err
	}

	if v.Opinion.Summary != "" {
		if _, err := fmt.Fprintf(writer, "\n%s\n", v.Opinion.Summary); err != nil {
			return err
		}
	}
	if len(v.Details) > 0 {
		if _, err := fmt.Fprintln(writer, "\nDetails:"); err != nil {
			return err
		}
		for _, d := range v.Details {
			if _, err := fmt.Fprintf(writer, "  - %s\n", d); err != nil {
				return err
			}
		}
	}
	if len(v.Opinion.Recommendations) > 0 {
		if _, err := fmt.Fprintln(writer, "\nRecommendations:"); err != nil {
			return err
		}
		for _, r := range v.Opinion.Recommendations {
			if _, err := fmt.Fprintf(writer, "  - %s\n", r); err != nil {
				return err
			}
		}
	}
	if _, err := fmt.Fprintf(writer, "\nClassification completed in %v. Opinion source: %s. Store backend: %s\n",
		duration.Round(time.Millisecond), v.Opinion.Source, cfg.StoreBackend); err != nil {
		return err
	}
	return nil
}

// formatYesNo renders a boolean for table cells.
func formatYesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// truncateText shortens long cell values, keeping the tail which carries
// the repository name.
func truncateText(s string, maxWidth int) string {
	if len(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return s[len(s)-maxWidth:]
	}
	return "..." + s[len(s)-(maxWidth-3):]
}
