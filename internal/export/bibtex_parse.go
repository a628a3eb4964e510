package export

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/matsen/cliprdf/internal/reference"
)

// BibTeXIndex records the keys and DOIs of an existing .bib file so
// that appended entries are not duplicated.
type BibTeXIndex struct {
	Keys map[string]bool
	DOIs map[string]string // Normalized DOI to citation key
}

var (
	entryStart = regexp.MustCompile(`@\w+\{([^,]+),`)
	doiField   = regexp.MustCompile(`(?i)^\s*doi\s*=\s*[\{"]([^\}"]+)[\}"]`)
)

// NewBibTeXIndex creates an empty BibTeX index.
func NewBibTeXIndex() *BibTeXIndex {
	return &BibTeXIndex{
		Keys: make(map[string]bool),
		DOIs: make(map[string]string),
	}
}

// Contains reports whether p is already in the index. The DOI decides
// when p has one; otherwise the citation key does.
func (idx *BibTeXIndex) Contains(p reference.Paper) bool {
	if p.HasDOI() {
		_, ok := idx.DOIs[normalizeDOI(p.DOI)]
		return ok
	}
	return idx.Keys[CiteKey(p)]
}

// Add records p in the index.
func (idx *BibTeXIndex) Add(p reference.Paper) {
	key := CiteKey(p)
	idx.Keys[key] = true
	if p.HasDOI() {
		idx.DOIs[normalizeDOI(p.DOI)] = key
	}
}

// ParseBibTeXFile builds an index from an existing .bib file. A missing
// file yields an empty index.
func ParseBibTeXFile(path string) (*BibTeXIndex, error) {
	idx := NewBibTeXIndex()

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return idx, nil
		}
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	var key string
	for scanner.Scan() {
		line := scanner.Text()
		if m := entryStart.FindStringSubmatch(line); m != nil {
			key = strings.TrimSpace(m[1])
			idx.Keys[key] = true
		}
		if m := doiField.FindStringSubmatch(line); m != nil && key != "" {
			if doi := normalizeDOI(m[1]); doi != "" {
				idx.DOIs[doi] = key
			}
		}
	}
	return idx, scanner.Err()
}

// NewEntries returns the papers not yet in idx, recording each one so
// duplicates within papers are dropped too.
func (idx *BibTeXIndex) NewEntries(papers []reference.Paper) []reference.Paper {
	var fresh []reference.Paper
	for _, p := range papers {
		if idx.Contains(p) {
			continue
		}
		idx.Add(p)
		fresh = append(fresh, p)
	}
	return fresh
}

// normalizeDOI strips resolver prefixes and lowercases.
func normalizeDOI(doi string) string {
	doi = strings.TrimSpace(doi)
	for _, prefix := range []string{"https://doi.org/", "http://doi.org/", "doi.org/", "DOI:", "doi:"} {
		doi = strings.TrimPrefix(doi, prefix)
	}
	return strings.ToLower(strings.TrimSpace(doi))
}

// AppendToBibFile appends BibTeX content to a file, starting on a new line.
func AppendToBibFile(path, content string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.WriteString("\n" + content)
	return err
}
