// Package pipeline turns raw citation text into written RDF files and
// history entries.
package pipeline

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/matsen/cliprdf/internal/citation"
	"github.com/matsen/cliprdf/internal/export"
	"github.com/matsen/cliprdf/internal/reference"
)

// MaxFileNameBytes caps the UTF-8 length of the title part of a generated
// file name. File systems limit names to 255 bytes; the rest is left for
// " (NN).rdf".
const MaxFileNameBytes = 200

// Result is the outcome of one conversion.
type Result struct {
	Paper          reference.Paper
	Document       string
	Irregularities []citation.Irregularity
}

// Converter parses citation text and renders it.
type Converter struct {
	Builder *export.RDFBuilder
}

// NewConverter returns a Converter rendering with b, or with default
// options when b is nil.
func NewConverter(b *export.RDFBuilder) *Converter {
	if b == nil {
		b = export.NewRDFBuilder(export.RDFOptions{})
	}
	return &Converter{Builder: b}
}

// Convert parses text and builds its RDF document. Irregularities are
// reported even when parsing fails.
func (c *Converter) Convert(text string) (Result, error) {
	res := Result{Irregularities: citation.Inspect(text)}

	p, err := citation.Parse(text)
	if err != nil {
		return res, err
	}
	res.Paper = p
	res.Document = c.Builder.Document(p)
	return res, nil
}

var (
	reservedChars = regexp.MustCompile(`[\\/:*?"<>|]`)
	runsOfSpace   = regexp.MustCompile(`\s+`)
)

// FileName derives a safe .rdf file name from a title.
func FileName(title string) string {
	name := reservedChars.ReplaceAllString(title, "")
	name = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, name)
	name = strings.TrimSpace(runsOfSpace.ReplaceAllString(name, " "))
	name = strings.Trim(name, ".")

	name = strings.TrimSpace(truncateBytes(name, MaxFileNameBytes))
	if name == "" {
		name = "export"
	}
	return name + ".rdf"
}

// truncateBytes cuts s to at most limit bytes on a rune boundary.
func truncateBytes(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := 0
	for i := range s {
		if i > limit {
			break
		}
		cut = i // s[:i] ends on a rune boundary
	}
	return s[:cut]
}

// numbered returns "name (n).rdf" for "name.rdf".
func numbered(fileName string, n int) string {
	base := strings.TrimSuffix(fileName, ".rdf")
	return fmt.Sprintf("%s (%d).rdf", base, n)
}
