package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matsen/cliprdf/internal/reference"
)

var testBase = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

// setupTestDB creates a test database rebuilt from a JSONL history.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "cache", "history.db")
	jsonlPath := filepath.Join(tmpDir, "history.jsonl")

	entries := []Entry{
		{
			ID: "Tanaka2024",
			Paper: reference.Paper{
				Title: "A Study on Gait Rehabilitation",
				Venue: "Proc. ABC",
				Pages: "12-15",
				Date:  "2024-3",
				Authors: []reference.Author{
					{Given: "Taro", Family: "Tanaka"},
					{Given: "Hanako", Family: "Suzuki"},
				},
				DOI: "10.1000/xyz",
			},
			File:        "/out/A Study on Gait Rehabilitation.rdf",
			ConvertedAt: testBase,
		},
		{
			ID: "Sato2023",
			Paper: reference.Paper{
				Title:   "Sensor Fusion for Prosthetics",
				Venue:   "Journal of Robotics",
				Pages:   "1-8",
				Date:    "2023-9",
				Authors: []reference.Author{{Given: "Jiro", Family: "Sato"}},
			},
			ConvertedAt: testBase.Add(time.Hour),
		},
	}
	require.NoError(t, WriteAll(jsonlPath, entries))

	db, err := OpenDB(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	n, err := db.RebuildFromJSONL(jsonlPath)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	return db
}

func entryIDs(entries []Entry) []string {
	var ids []string
	for _, e := range entries {
		ids = append(ids, e.ID)
	}
	return ids
}

func TestGetByID(t *testing.T) {
	db := setupTestDB(t)

	e, err := db.GetByID("Tanaka2024")
	require.NoError(t, err)
	require.NotNil(t, e)
	assert.Equal(t, "A Study on Gait Rehabilitation", e.Paper.Title)
	require.Len(t, e.Paper.Authors, 2)
	assert.Equal(t, "Suzuki", e.Paper.Authors[1].Family)
	assert.Equal(t, "10.1000/xyz", e.Paper.DOI)
	assert.True(t, e.ConvertedAt.Equal(testBase), "ConvertedAt = %v", e.ConvertedAt)

	missing, err := db.GetByID("nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestListAll_NewestFirst(t *testing.T) {
	db := setupTestDB(t)

	entries, err := db.ListAll(0)
	require.NoError(t, err)
	assert.Equal(t, []string{"Sato2023", "Tanaka2024"}, entryIDs(entries))
	assert.Empty(t, entries[0].Paper.DOI)
	assert.Equal(t, "10.1000/xyz", entries[1].Paper.DOI)

	all, err := db.Search("Proc. ABC", 0)
	require.NoError(t, err)
	assert.Len(t, all, 1, "limit 0 returns every match")

	limited, err := db.ListAll(1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestSearch(t *testing.T) {
	db := setupTestDB(t)

	tests := []struct {
		query string
		want  []string
	}{
		{"Rehabilitation", []string{"Tanaka2024"}},
		{"rehab", []string{"Tanaka2024"}},
		{"Suzuki", []string{"Tanaka2024"}},
		{"Robotics", []string{"Sato2023"}},
		{"Proc. ABC", []string{"Tanaka2024"}},
		{"gait tanaka", []string{"Tanaka2024"}},
		{"AB", []string{"Tanaka2024"}},
		{"of", []string{"Sato2023"}},
		{"", []string{"Sato2023", "Tanaka2024"}},
		{"nothing", nil},
		{"zz", nil},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got, err := db.Search(tt.query, 10)
			require.NoError(t, err)
			assert.Equal(t, tt.want, entryIDs(got))
		})
	}
}

func TestSearch_Japanese(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.Insert(Entry{
		ID: "田中2024",
		Paper: reference.Paper{
			Title:   "歩行リハビリテーションの研究",
			Venue:   "人工知能学会全国大会",
			Pages:   "1-4",
			Date:    "2024-5",
			Authors: []reference.Author{{Family: "田中", Given: "太郎"}, {Family: "鈴木", Given: "花子"}},
		},
		ConvertedAt: testBase.Add(2 * time.Hour),
	}))

	tests := []struct {
		query string
		want  []string
	}{
		{"研究", []string{"田中2024"}},
		{"大会", []string{"田中2024"}},
		{"田中", []string{"田中2024"}},
		{"花子", []string{"田中2024"}},
		{"リハビリ", []string{"田中2024"}},
		{"全国大会", []string{"田中2024"}},
		{"研究 大会", []string{"田中2024"}},
		{"研究 Robotics", nil},
		{"論文", nil},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got, err := db.Search(tt.query, 10)
			require.NoError(t, err)
			assert.Equal(t, tt.want, entryIDs(got))
		})
	}
}

func TestSearch_LikeWildcardsAreLiteral(t *testing.T) {
	db := setupTestDB(t)

	for _, q := range []string{"%", "_", `\`} {
		got, err := db.Search(q, 10)
		require.NoError(t, err)
		assert.Empty(t, got, "query %q", q)
	}
}

func TestInsertReplaces(t *testing.T) {
	db := setupTestDB(t)

	e, err := db.GetByID("Sato2023")
	require.NoError(t, err)
	require.NotNil(t, e)
	e.Paper.Title = "Revised Title"
	require.NoError(t, db.Insert(*e))

	count, err := db.Count()
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	got, err := db.Search("Revised", 10)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	old, err := db.Search("Prosthetics", 10)
	require.NoError(t, err)
	assert.Empty(t, old, "stale index row still matches")
}

func TestRebuild_RecreatesIndex(t *testing.T) {
	tmpDir := t.TempDir()
	jsonlPath := filepath.Join(tmpDir, "history.jsonl")
	require.NoError(t, WriteAll(jsonlPath, []Entry{{
		ID:          "Ito2022",
		Paper:       reference.Paper{Title: "深層学習による解析", Venue: "研究会", Authors: []reference.Author{{Family: "Ito"}}},
		ConvertedAt: testBase,
	}}))

	db, err := OpenDB(filepath.Join(tmpDir, "history.db"))
	require.NoError(t, err)
	defer db.Close()

	// Simulate an index built before the trigram tokenizer.
	_, err = db.db.Exec(`DROP TABLE entries_fts; CREATE VIRTUAL TABLE entries_fts USING fts5(id, title, venue, authors_text)`)
	require.NoError(t, err)

	n, err := db.RebuildFromJSONL(jsonlPath)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	got, err := db.Search("学習による", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ito2022"}, entryIDs(got))
}

func TestPrepareFTSQuery(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"gait", "gait"},
		{"  gait  ", "gait"},
		{"Proc. ABC", `"Proc. ABC"`},
		{`say "hi"`, `"say ""hi"""`},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, prepareFTSQuery(tt.in), "prepareFTSQuery(%q)", tt.in)
	}
}
