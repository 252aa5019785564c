package iocache

import (
	"errors"
	"fmt"

	"github.com/huangsam/botspot/internal/parquet"
)

// exportListLimit bounds how many verdicts a single export pulls.
const exportListLimit = 10000

// ExecuteVerdictExport performs the actual export of verdict data to a Parquet file.
func ExecuteVerdictExport(outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	// Get the verdict store
	store := Manager.GetVerdictStore()
	if store == nil {
		return errors.New("verdict store is not initialized")
	}

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get store status: %w", err)
	}

	if status.TotalVerdicts == 0 {
		return errors.New("no verdict data found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total verdicts: %d\n", status.TotalVerdicts)

	// Retrieve stored verdicts
	rows, err := store.ListVerdicts(exportListLimit)
	if err != nil {
		return fmt.Errorf("failed to retrieve verdicts: %w", err)
	}

	// Write verdicts to Parquet
	if err := parquet.WriteVerdictsParquet(rows, outputFile); err != nil {
		return fmt.Errorf("failed to write verdicts: %w", err)
	}
	fmt.Printf("Exported %d verdicts to: %s\n", len(rows), outputFile)

	return nil
}
