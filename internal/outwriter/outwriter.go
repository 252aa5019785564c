// Package outwriter has output and writer logic.
package outwriter

import (
	"time"

	"github.com/huangsam/botspot/internal/contract"
	"github.com/huangsam/botspot/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteVerdict prints a classification verdict using the configured output format.
func (ow *OutWriter) WriteVerdict(v *schema.Verdict, cfg *contract.Config, duration time.Duration) error {
	return WriteVerdictResult(v, cfg, duration)
}

// WriteHistory prints stored verdict rows using the configured output format.
func (ow *OutWriter) WriteHistory(rows []schema.VerdictRow, cfg *contract.Config) error {
	return WriteHistoryResults(rows, cfg)
}

// WriteStatus prints verdict store status information.
func (ow *OutWriter) WriteStatus(status schema.StoreStatus, cfg *contract.Config) error {
	return WriteStoreStatus(status, cfg)
}
