package main

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matsen/cliprdf/internal/reference"
	"github.com/matsen/cliprdf/internal/storage"
)

func TestSearchHistory_AuthorFilter(t *testing.T) {
	db, err := storage.OpenDB(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	defer db.Close()

	base := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	papers := []struct {
		id      string
		authors []reference.Author
	}{
		{"Tanaka2024", []reference.Author{{Family: "Tanaka", Given: "Taro"}, {Family: "Suzuki", Given: "Hanako"}}},
		{"Tanaka2024-2", []reference.Author{{Family: "Tanaka", Given: "Jiro"}}},
		{"Sato2024", []reference.Author{{Family: "Sato", Given: "Ken"}}},
	}
	for i, p := range papers {
		require.NoError(t, db.Insert(storage.Entry{
			ID:          p.id,
			Paper:       reference.Paper{Title: "Paper " + p.id, Venue: "Proc. ABC", Authors: p.authors},
			ConvertedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	tests := []struct {
		name    string
		authors []string
		limit   int
		want    []string
	}{
		{"no filter", nil, 10, []string{"Sato2024", "Tanaka2024-2", "Tanaka2024"}},
		{"family", []string{"Tanaka"}, 10, []string{"Tanaka2024-2", "Tanaka2024"}},
		{"family and given", []string{"Tanaka T"}, 10, []string{"Tanaka2024"}},
		{"two authors", []string{"Tanaka", "Suzuki"}, 10, []string{"Tanaka2024"}},
		{"limit after filter", []string{"Tanaka"}, 1, []string{"Tanaka2024-2"}},
		{"blank filter ignored", []string{"  "}, 1, []string{"Sato2024"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := searchHistory(db, "", tt.authors, tt.limit)
			require.NoError(t, err)
			var ids []string
			for _, e := range got {
				ids = append(ids, e.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}
