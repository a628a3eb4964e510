// Package citation recovers paper records from free-text citations.
//
// A citation is three or four lines:
//
//	Tanaka Taro, Suzuki Hanako
//	A Study on X
//	Proc. ABC, pp. 12-15, 2024年3月15日
//	DOI: 10.1000/xyz
//
// Separators may be half- or full-width commas, with or without a
// following space, mixed freely within a line.
package citation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/matsen/cliprdf/internal/reference"
)

// ErrMalformedInput is returned when a citation cannot be decomposed.
var ErrMalformedInput = errors.New("malformed citation")

// MinLines is the number of non-empty lines a citation must have.
const MinLines = 3

// DOIPrefix introduces the optional fourth line.
const DOIPrefix = "DOI:"

var (
	// Comma+space is tried first so author tokens lose the space.
	authorSplitter = MustSplitter(`, |， |,|，`)
	// A bare comma wins here: venue tokens keep their leading space so a
	// rejoined venue reads as it was written.
	venueSplitter = MustSplitter(`,|, |，`)

	finalAnd    = regexp.MustCompile(`(^|[,，]\s*|\s+)and\s+`)
	pagesPrefix = regexp.MustCompile(`pp\.\s*`)
	dateReplace = strings.NewReplacer("年", "-", "月", "-")
)

// Parse parses a citation into a Paper. Parsing is all-or-nothing: on
// error the zero Paper is returned.
func Parse(text string) (reference.Paper, error) {
	lines := logicalLines(text)
	if len(lines) < MinLines {
		return reference.Paper{}, fmt.Errorf("%w: need at least %d lines, got %d", ErrMalformedInput, MinLines, len(lines))
	}

	authors, err := parseAuthors(lines[0])
	if err != nil {
		return reference.Paper{}, err
	}

	venue, pages, date, err := parseVenueLine(lines[2])
	if err != nil {
		return reference.Paper{}, err
	}

	var doi string
	if len(lines) > MinLines {
		doi = parseDOI(lines[3])
	}

	return reference.Paper{
		Title:   lines[1],
		Venue:   venue,
		Pages:   pages,
		Date:    date,
		Authors: authors,
		DOI:     doi,
	}, nil
}

// logicalLines returns the trimmed, non-empty lines of text.
func logicalLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// stripFinalAnd removes the "and " before the last author. When no comma
// precedes it, one is inserted so the last author still splits off.
func stripFinalAnd(line string) string {
	matches := finalAnd.FindAllStringSubmatchIndex(line, -1)
	if len(matches) == 0 {
		return line
	}
	m := matches[len(matches)-1]
	lead := line[m[2]:m[3]]
	if lead != "" && !strings.ContainsAny(lead, ",，") {
		lead = ", "
	}
	return line[:m[0]] + lead + line[m[1]:]
}

func parseAuthors(line string) ([]reference.Author, error) {
	tokens := authorSplitter.Split(stripFinalAnd(line))
	if len(tokens) == 0 {
		return nil, fmt.Errorf("%w: no authors", ErrMalformedInput)
	}

	authors := make([]reference.Author, 0, len(tokens))
	for i, tok := range tokens {
		tok = strings.TrimPrefix(tok, " ")
		tok = strings.TrimRight(tok, " \t")
		if tok == "" {
			return nil, fmt.Errorf("%w: empty author at position %d", ErrMalformedInput, i+1)
		}

		parts := strings.Split(tok, " ")
		a := reference.Author{Family: parts[0]}
		if len(parts) == 2 {
			a.Given = parts[1]
		}
		if a.Family == "" {
			return nil, fmt.Errorf("%w: author %q has no family name", ErrMalformedInput, tok)
		}
		authors = append(authors, a)
	}
	return authors, nil
}

func parseVenueLine(line string) (venue, pages, date string, err error) {
	tokens := venueSplitter.Split(line)

	var pagesTok, dateTok string
	switch n := len(tokens); {
	case n == 4:
		venue, pagesTok, dateTok = tokens[0], tokens[1], tokens[3]
	case n == 3:
		venue, pagesTok, dateTok = tokens[0], tokens[1], tokens[2]
	case n > 4:
		// Venue names may contain commas.
		venue = strings.Join(tokens[:n-3], ",")
		pagesTok, dateTok = tokens[n-3], tokens[n-1]
	default:
		return "", "", "", fmt.Errorf("%w: venue line has %d fields, need at least 3", ErrMalformedInput, n)
	}

	venue = strings.TrimSpace(venue)
	if venue == "" {
		return "", "", "", fmt.Errorf("%w: empty venue", ErrMalformedInput)
	}
	return venue, normalizePages(pagesTok), normalizeDate(dateTok), nil
}

// normalizePages removes "pp." markers: " pp. 12-15" -> "12-15".
// Removal repeats because it can join fragments into a new marker
// ("ppp.p." -> "pp.").
func normalizePages(s string) string {
	for strings.Contains(s, "pp.") {
		s = pagesPrefix.ReplaceAllString(s, "")
	}
	return strings.TrimSpace(s)
}

// normalizeDate reduces a date to its year-month prefix:
// "2024年3月15日" -> "2024-3", "2024年3月15日-17日" -> "2024-3",
// "2024-03-15" -> "2024".
func normalizeDate(s string) string {
	s, _, _ = strings.Cut(strings.TrimSpace(s), "-")
	s = strings.ReplaceAll(s, "日", "")
	s = dateReplace.Replace(s)

	var parts []string
	for _, p := range strings.Split(s, "-") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) > 2 {
		parts = parts[:2]
	}
	return strings.Join(parts, "-")
}

func parseDOI(line string) string {
	rest, ok := strings.CutPrefix(line, DOIPrefix)
	if !ok {
		return ""
	}
	return strings.TrimSpace(rest)
}
