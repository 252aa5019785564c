package schema

import "time"

// StoreStatus holds status information about the verdict store.
type StoreStatus struct {
	Backend       DatabaseBackend
	Connected     bool
	TotalVerdicts int
	NewestEntry   time.Time
	OldestEntry   time.Time
	Location      string // File path for SQLite, redacted host for servers
}
