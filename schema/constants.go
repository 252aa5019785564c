package schema

// Custom string types for type safety.
type (
	// ConfidenceTier represents the certainty bucket for a likelihood figure.
	ConfidenceTier string

	// OpinionSource represents which path produced a normalized opinion.
	OpinionSource string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for the verdict store.
	DatabaseBackend string

	// CommitSource represents where commit history is read from.
	CommitSource string
)

// All confidence tiers supported.
const (
	LowConfidence    ConfidenceTier = "low"
	MediumConfidence ConfidenceTier = "medium"
	HighConfidence   ConfidenceTier = "high"
)

// All opinion sources supported.
const (
	ParsedOpinion   OpinionSource = "parsed"   // AI response parsed and validated
	FallbackOpinion OpinionSource = "fallback" // Synthesized from the signal bundle
)

// All output modes supported.
const (
	TextOut OutputMode = "text" // default
	CSVOut  OutputMode = "csv"
	JSONOut OutputMode = "json"
)

// All verdict store backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// All commit sources supported.
const (
	GitHubSource CommitSource = "github" // default
	LocalSource  CommitSource = "local"
)

// ValidConfidenceTiers lists all valid confidence tiers.
var ValidConfidenceTiers = map[ConfidenceTier]struct{}{
	LowConfidence:    {},
	MediumConfidence: {},
	HighConfidence:   {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut: {},
	CSVOut:  {},
	JSONOut: {},
}

// ValidDatabaseBackends lists all valid verdict store backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidCommitSources lists all valid commit sources.
var ValidCommitSources = map[CommitSource]struct{}{
	GitHubSource: {},
	LocalSource:  {},
}
