package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	_ "modernc.org/sqlite"

	"github.com/matsen/cliprdf/internal/reference"
)

// DB wraps a SQLite database connection.
type DB struct {
	db *sql.DB
}

// selectEntryFields contains the standard field list for SELECT queries.
const selectEntryFields = `id, title, venue, pages, date, doi, file, converted_at, authors_json`

// OpenDB opens or creates a SQLite database at the given path.
func OpenDB(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// ftsSchema indexes substrings. The trigram tokenizer matches inside
// unspaced CJK text, which word tokenizers store as a single token.
const ftsSchema = `
	CREATE VIRTUAL TABLE IF NOT EXISTS entries_fts USING fts5(
		id,
		title,
		venue,
		authors_text,
		tokenize = 'trigram'
	);
`

// MinFTSQueryRunes is the shortest term the trigram index can match.
// Shorter terms are searched with LIKE.
const MinFTSQueryRunes = 3

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS entries (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			venue TEXT NOT NULL,
			pages TEXT,
			date TEXT,
			doi TEXT,
			file TEXT,
			converted_at TEXT NOT NULL,
			authors_json TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_entries_converted ON entries(converted_at);
	` + ftsSchema

	_, err := db.Exec(schema)
	return err
}

// RebuildFromJSONL clears the database and rebuilds it from a JSONL file.
func (d *DB) RebuildFromJSONL(jsonlPath string) (int, error) {
	entries, err := ReadAll(jsonlPath)
	if err != nil {
		return 0, fmt.Errorf("reading JSONL: %w", err)
	}

	tx, err := d.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("starting rebuild: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM entries"); err != nil {
		return 0, fmt.Errorf("clearing entries table: %w", err)
	}
	// Recreated rather than cleared so indexes from older schemas pick
	// up the current tokenizer.
	if _, err := tx.Exec("DROP TABLE IF EXISTS entries_fts"); err != nil {
		return 0, fmt.Errorf("dropping entries_fts table: %w", err)
	}
	if _, err := tx.Exec(ftsSchema); err != nil {
		return 0, fmt.Errorf("creating entries_fts table: %w", err)
	}

	for _, e := range entries {
		if err := insertEntry(tx, e); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing rebuild: %w", err)
	}
	return len(entries), nil
}

// Insert adds or replaces one entry.
func (d *DB) Insert(e Entry) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("starting insert: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM entries_fts WHERE id = ?", e.ID); err != nil {
		return fmt.Errorf("clearing fts for %s: %w", e.ID, err)
	}
	if err := insertEntry(tx, e); err != nil {
		return err
	}
	return tx.Commit()
}

func insertEntry(tx *sql.Tx, e Entry) error {
	authorsJSON, err := json.Marshal(e.Paper.Authors)
	if err != nil {
		return fmt.Errorf("marshaling authors for %s: %w", e.ID, err)
	}

	_, err = tx.Exec(`
		INSERT OR REPLACE INTO entries (`+selectEntryFields+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Paper.Title, e.Paper.Venue, e.Paper.Pages, e.Paper.Date,
		nullableStringValue(e.Paper.DOI), nullableStringValue(e.File),
		e.ConvertedAt.UTC().Format(time.RFC3339Nano), string(authorsJSON),
	)
	if err != nil {
		return fmt.Errorf("inserting entry %s: %w", e.ID, err)
	}

	_, err = tx.Exec(`
		INSERT INTO entries_fts (id, title, venue, authors_text)
		VALUES (?, ?, ?, ?)`,
		e.ID, e.Paper.Title, e.Paper.Venue, formatAuthorsText(e.Paper.Authors))
	if err != nil {
		return fmt.Errorf("inserting fts for %s: %w", e.ID, err)
	}
	return nil
}

// formatAuthorsText creates a searchable text representation of authors.
func formatAuthorsText(authors []reference.Author) string {
	names := make([]string, len(authors))
	for i, a := range authors {
		names[i] = a.FullName()
	}
	return strings.Join(names, ", ")
}

// GetByID retrieves an entry by its ID. Returns nil if not found.
func (d *DB) GetByID(id string) (*Entry, error) {
	row := d.db.QueryRow(`SELECT `+selectEntryFields+` FROM entries WHERE id = ?`, id)
	return scanEntry(row)
}

// ListAll returns entries, newest first, optionally limited.
func (d *DB) ListAll(limit int) ([]Entry, error) {
	query := `SELECT ` + selectEntryFields + ` FROM entries ORDER BY converted_at DESC, id`
	var args []interface{}

	if limit > 0 {
		query += " LIMIT ?"
		args = []interface{}{limit}
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// Search performs a full-text search over titles, venues and authors.
// A limit of zero or less returns every match.
func (d *DB) Search(query string, limit int) ([]Entry, error) {
	ftsQuery := prepareFTSQuery(query)
	if ftsQuery == "" {
		return d.ListAll(limit)
	}
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}

	match := `SELECT id FROM entries_fts WHERE entries_fts MATCH ?`
	args := []interface{}{ftsQuery}
	if hasShortTerm(query) {
		match, args = likeMatch(query)
	}

	rows, err := d.db.Query(`
		SELECT `+selectEntryFields+`
		FROM entries
		WHERE id IN (`+match+`)
		ORDER BY converted_at DESC, id
		LIMIT ?`, append(args, limit)...)
	if err != nil {
		return nil, fmt.Errorf("searching: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// hasShortTerm reports whether any word of query is too short for the
// trigram index, e.g. the two-character "研究".
func hasShortTerm(query string) bool {
	for _, w := range strings.Fields(query) {
		if utf8.RuneCountInString(w) < MinFTSQueryRunes {
			return true
		}
	}
	return false
}

// likeMatch builds a substring query requiring every word of query in
// the title, venue or authors.
func likeMatch(query string) (string, []interface{}) {
	var conds []string
	var args []interface{}
	for _, w := range strings.Fields(query) {
		pattern := "%" + likeEscaper.Replace(w) + "%"
		conds = append(conds, `(title LIKE ? ESCAPE '\' OR venue LIKE ? ESCAPE '\' OR authors_text LIKE ? ESCAPE '\')`)
		args = append(args, pattern, pattern, pattern)
	}
	return `SELECT id FROM entries_fts WHERE ` + strings.Join(conds, " AND "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Count returns the total number of entries.
func (d *DB) Count() (int, error) {
	var count int
	err := d.db.QueryRow("SELECT COUNT(*) FROM entries").Scan(&count)
	return count, err
}

// scanner interface for sql.Row and sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(s scanner) (*Entry, error) {
	var e Entry
	var doi, file sql.NullString
	var pages, date sql.NullString
	var convertedAt, authorsJSON string

	err := s.Scan(
		&e.ID, &e.Paper.Title, &e.Paper.Venue, &pages, &date,
		&doi, &file, &convertedAt, &authorsJSON,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	e.Paper.Pages = pages.String
	e.Paper.Date = date.String
	e.Paper.DOI = doi.String
	e.File = file.String

	e.ConvertedAt, err = time.Parse(time.RFC3339Nano, convertedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing timestamp for %s: %w", e.ID, err)
	}
	if err := json.Unmarshal([]byte(authorsJSON), &e.Paper.Authors); err != nil {
		return nil, fmt.Errorf("parsing authors JSON for %s: %w", e.ID, err)
	}

	return &e, nil
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		if e != nil {
			entries = append(entries, *e)
		}
	}
	return entries, rows.Err()
}

// nullableStringValue converts a string to sql.NullString, treating empty as NULL.
func nullableStringValue(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// prepareFTSQuery escapes special characters for FTS5 queries.
func prepareFTSQuery(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}

	// FTS5 uses double quotes for phrase matching
	if strings.ContainsAny(query, "\"*+-:(){}[]^~.") {
		query = strings.ReplaceAll(query, "\"", "\"\"")
		return "\"" + query + "\""
	}

	return query
}
