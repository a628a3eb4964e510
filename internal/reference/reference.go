// Package reference defines the paper record recovered from a citation.
package reference

import (
	"strconv"
	"strings"
)

// Paper is a conference paper parsed from one citation text block.
type Paper struct {
	Title   string   `json:"title"`
	Venue   string   `json:"venue"` // Conference or journal name
	Pages   string   `json:"pages"` // e.g. "123-130", without "pp."
	Date    string   `json:"date"`  // "-"-joined prefix, e.g. "2024-3"
	Authors []Author `json:"authors"`
	DOI     string   `json:"doi,omitempty"` // Empty when the citation had no DOI line
}

// HasDOI reports whether the citation carried a DOI.
func (p Paper) HasDOI() bool {
	return p.DOI != ""
}

// Year returns the leading year of Date, or 0 if it is not numeric.
func (p Paper) Year() int {
	return datePart(p.Date, 0)
}

// Month returns the month of Date, or 0 if absent.
func (p Paper) Month() int {
	m := datePart(p.Date, 1)
	if m < 1 || m > 12 {
		return 0
	}
	return m
}

func datePart(date string, idx int) int {
	parts := strings.Split(date, "-")
	if idx >= len(parts) {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(parts[idx]))
	if err != nil {
		return 0
	}
	return n
}
