// Package author matches author filters against parsed citation authors.
package author

import (
	"strings"

	"github.com/matsen/cliprdf/internal/reference"
)

// Query is a parsed author filter.
type Query struct {
	Family string // Required
	Given  string // Optional prefix
}

// ParseQuery parses an author filter written the way citations write
// names, family name first:
//   - "Tanaka"        → family="Tanaka"
//   - "Tanaka Taro"   → family="Tanaka", given="Taro"
//   - "Tanaka, T"     → family="Tanaka", given="T"
//   - "田中　太郎"     → family="田中", given="太郎"
func ParseQuery(input string) Query {
	input = strings.TrimSpace(input)
	if input == "" {
		return Query{}
	}

	if family, given, ok := strings.Cut(input, ","); ok && strings.TrimSpace(family) != "" {
		return Query{Family: strings.TrimSpace(family), Given: strings.TrimSpace(given)}
	}

	// strings.Fields also splits on the ideographic space.
	parts := strings.Fields(input)
	return Query{Family: parts[0], Given: strings.Join(parts[1:], " ")}
}

// IsZero reports whether q filters nothing.
func (q Query) IsZero() bool {
	return q.Family == ""
}

// Matches reports whether q matches a. The family name must match
// exactly, ignoring case; the given name is a case-insensitive prefix.
func (q Query) Matches(a reference.Author) bool {
	if !strings.EqualFold(q.Family, a.Family) {
		return false
	}
	if q.Given == "" {
		return true
	}
	return strings.HasPrefix(strings.ToLower(a.Given), strings.ToLower(q.Given))
}

// MatchesAny reports whether q matches any of authors.
func (q Query) MatchesAny(authors []reference.Author) bool {
	for _, a := range authors {
		if q.Matches(a) {
			return true
		}
	}
	return false
}

// AllMatch reports whether every query matches at least one author.
func AllMatch(queries []Query, authors []reference.Author) bool {
	for _, q := range queries {
		if !q.MatchesAny(authors) {
			return false
		}
	}
	return true
}
