package iocache

import (
	"testing"
	"time"

	"github.com/huangsam/botspot/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleVerdict(repoURL string, likelihood int) schema.Verdict {
	return schema.Verdict{
		RepoURL:         repoURL,
		Likelihood:      likelihood,
		LikelyAutomated: likelihood > 70,
		Eligible:        true,
		MarkerChecked:   true,
		Signals: schema.Signals{
			TotalCommits:      40,
			VerifiedCommits:   30,
			VerificationRatio: 75,
			RapidCommitCount:  6,
		},
		Confidence: schema.MediumConfidence,
		Details:    []string{"30 of 40 commits are verified"},
		Opinion: schema.Opinion{
			Summary:     "Elevated automation indicators",
			Likelihood:  likelihood,
			KeyFindings: []string{"High verification rate"},
			Confidence:  schema.MediumConfidence,
			Source:      schema.ParsedOpinion,
		},
		EligibilityReason: "Repository was created on December 1, 2025, on or after the competition start date of November 1, 2025",
		CreatedAt:         time.Date(2025, 12, 1, 10, 0, 0, 0, time.UTC),
		AnalyzedAt:        time.Date(2026, 1, 15, 9, 30, 0, 0, time.UTC),
	}
}

func TestVerdictStore_NoneBackend(t *testing.T) {
	store, err := NewVerdictStore(schema.NoneBackend, "")
	require.NoError(t, err)
	require.NotNil(t, store)

	// RecordVerdict should return 0 for NoneBackend
	id, err := store.RecordVerdict(sampleVerdict("https://github.com/octocat/hello", 50))
	assert.NoError(t, err)
	assert.Equal(t, int64(0), id)

	// Other operations should not error
	rows, err := store.ListVerdicts(10)
	assert.NoError(t, err)
	assert.Empty(t, rows)

	status, err := store.GetStatus()
	assert.NoError(t, err)
	assert.False(t, status.Connected)
	assert.Equal(t, 0, status.TotalVerdicts)

	err = store.Close()
	assert.NoError(t, err)
}

func TestVerdictStore_SQLite(t *testing.T) {
	// Use in-memory SQLite for testing
	store, err := NewVerdictStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	require.NotNil(t, store)
	defer func() { _ = store.Close() }()

	v := sampleVerdict("https://github.com/octocat/hello", 82)
	id, err := store.RecordVerdict(v)
	require.NoError(t, err)
	assert.Greater(t, id, int64(0))

	rows, err := store.ListVerdicts(10)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, v.RepoURL, row.RepoURL)
	assert.Equal(t, int32(82), row.Likelihood)
	assert.True(t, row.LikelyAutomated)
	assert.True(t, row.Eligible)
	assert.False(t, row.MarkerFound)
	assert.Equal(t, int32(40), row.TotalCommits)
	assert.Equal(t, int32(30), row.VerifiedCommits)
	assert.Equal(t, int32(75), row.VerificationRatio)
	assert.Equal(t, int32(6), row.RapidCommitCount)
	assert.Equal(t, string(schema.MediumConfidence), row.Confidence)
	assert.Equal(t, string(schema.ParsedOpinion), row.OpinionSource)
	assert.Equal(t, v.CreatedAt.UnixMilli(), row.CreatedAt)
	assert.Equal(t, v.AnalyzedAt.UnixMilli(), row.AnalyzedAt)
}

func TestVerdictStore_ListOrderAndLimit(t *testing.T) {
	store, err := NewVerdictStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	urls := []string{
		"https://github.com/acme/alpha",
		"https://github.com/acme/beta",
		"https://github.com/acme/gamma",
	}
	var ids []int64
	for i, url := range urls {
		id, err := store.RecordVerdict(sampleVerdict(url, 40+i*10))
		require.NoError(t, err)
		ids = append(ids, id)
	}

	// IDs should be unique and increasing
	assert.Less(t, ids[0], ids[1])
	assert.Less(t, ids[1], ids[2])

	// Most recent verdict comes first
	rows, err := store.ListVerdicts(2)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "https://github.com/acme/gamma", rows[0].RepoURL)
	assert.Equal(t, "https://github.com/acme/beta", rows[1].RepoURL)
}

func TestVerdictStore_Status(t *testing.T) {
	store, err := NewVerdictStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	// Empty store
	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, schema.SQLiteBackend, status.Backend)
	assert.Equal(t, 0, status.TotalVerdicts)
	assert.True(t, status.NewestEntry.IsZero())

	older := sampleVerdict("https://github.com/acme/alpha", 30)
	older.AnalyzedAt = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := sampleVerdict("https://github.com/acme/beta", 90)
	newer.AnalyzedAt = time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	_, err = store.RecordVerdict(older)
	require.NoError(t, err)
	_, err = store.RecordVerdict(newer)
	require.NoError(t, err)

	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 2, status.TotalVerdicts)
	assert.Equal(t, older.AnalyzedAt, status.OldestEntry.UTC())
	assert.Equal(t, newer.AnalyzedAt, status.NewestEntry.UTC())
}

func TestVerdictStore_SQLiteFile(t *testing.T) {
	dbPath := t.TempDir() + "/verdicts.db"
	store, err := NewVerdictStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)

	_, err = store.RecordVerdict(sampleVerdict("https://github.com/acme/alpha", 55))
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// Reopen and verify persistence
	store, err = NewVerdictStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	rows, err := store.ListVerdicts(10)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestVerdictStore_UnsupportedBackend(t *testing.T) {
	_, err := NewVerdictStore(schema.DatabaseBackend("oracle"), "")
	assert.Error(t, err)
}

func TestClearStore_SQLiteMissingFile(t *testing.T) {
	// Removing a nonexistent file should not error
	err := ClearStore(schema.SQLiteBackend, t.TempDir()+"/missing.db", "")
	assert.NoError(t, err)
}

func TestClearStore_NoneBackend(t *testing.T) {
	assert.NoError(t, ClearStore(schema.NoneBackend, "", ""))
}
