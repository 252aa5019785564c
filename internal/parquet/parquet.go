// Package parquet provides functions for exporting stored classification
// verdicts to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/botspot/schema"
	"github.com/parquet-go/parquet-go"
)

// WriteVerdictsParquet writes a slice of VerdictRow structs to a Parquet file.
func WriteVerdictsParquet(data []schema.VerdictRow, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the VerdictRow struct tags
	writer := parquet.NewGenericWriter[schema.VerdictRow](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// MockFetchVerdictRows generates sample VerdictRow data for demonstration.
func MockFetchVerdictRows() []schema.VerdictRow {
	now := time.Now()

	return []schema.VerdictRow{
		{
			RepoURL:           "https://github.com/octocat/hello-world",
			Likelihood:        82,
			LikelyAutomated:   true,
			Eligible:          false,
			MarkerFound:       true,
			TotalCommits:      120,
			VerifiedCommits:   115,
			VerificationRatio: 96,
			RapidCommitCount:  14,
			Confidence:        "high",
			OpinionSource:     "parsed",
			Summary:           "Commit metadata is consistent with automated authorship.",
			Findings:          "nearly all commits are verified; bursts of rapid commits",
			EligibilityReason: "repository created after the cutoff",
			CreatedAt:         now.Add(-48 * time.Hour).UnixMilli(),
			AnalyzedAt:        now.Add(-1 * time.Hour).UnixMilli(),
		},
		{
			RepoURL:           "https://github.com/octocat/spoon-knife",
			Likelihood:        23,
			LikelyAutomated:   false,
			Eligible:          true,
			MarkerFound:       false,
			TotalCommits:      340,
			VerifiedCommits:   61,
			VerificationRatio: 18,
			RapidCommitCount:  2,
			Confidence:        "medium",
			OpinionSource:     "fallback",
			Summary:           "Commit history shows organic human activity.",
			Findings:          "low verification ratio; no rapid commit bursts",
			EligibilityReason: "repository created before the cutoff",
			CreatedAt:         now.Add(-24 * 365 * time.Hour).UnixMilli(),
			AnalyzedAt:        now.Add(-10 * time.Minute).UnixMilli(),
		},
	}
}
