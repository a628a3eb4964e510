package export

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/matsen/cliprdf/internal/reference"
)

// ToBibTeX converts a paper to a BibTeX entry.
func ToBibTeX(p reference.Paper) string {
	entryType := determineEntryType(p)
	var b strings.Builder

	b.WriteString(fmt.Sprintf("@%s{%s,\n", entryType, CiteKey(p)))

	if len(p.Authors) > 0 {
		b.WriteString(fmt.Sprintf("  author = {%s},\n", formatAuthors(p.Authors)))
	}

	b.WriteString(fmt.Sprintf("  title = {%s},\n", escapeLatex(p.Title)))

	fieldName := "journal"
	if entryType == "inproceedings" {
		fieldName = "booktitle"
	}
	b.WriteString(fmt.Sprintf("  %s = {%s},\n", fieldName, escapeLatex(p.Venue)))

	if p.Pages != "" {
		// BibTeX ranges use an en dash.
		b.WriteString(fmt.Sprintf("  pages = {%s},\n", strings.Replace(p.Pages, "-", "--", 1)))
	}

	if year := p.Year(); year > 0 {
		b.WriteString(fmt.Sprintf("  year = {%d},\n", year))
	}
	if month := p.Month(); month > 0 {
		b.WriteString(fmt.Sprintf("  month = {%d},\n", month))
	}

	if p.HasDOI() {
		b.WriteString(fmt.Sprintf("  doi = {%s},\n", p.DOI))
	}

	b.WriteString("}\n")

	return b.String()
}

// CiteKey derives a citation key: first family name plus year, e.g.
// "Tanaka2024". Non-letter characters are dropped from the name.
func CiteKey(p reference.Paper) string {
	var b strings.Builder
	if len(p.Authors) > 0 {
		for _, r := range p.Authors[0].Family {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				b.WriteRune(r)
			}
		}
	}
	if b.Len() == 0 {
		b.WriteString("anon")
	}
	if year := p.Year(); year > 0 {
		b.WriteString(fmt.Sprintf("%d", year))
	}
	return b.String()
}

// determineEntryType returns the BibTeX entry type for a paper.
// Citations in this format are mostly conference papers, so anything
// that does not look like a journal is inproceedings.
func determineEntryType(p reference.Paper) string {
	venue := strings.ToLower(p.Venue)

	if strings.Contains(venue, "journal") ||
		strings.Contains(venue, "transactions") ||
		strings.Contains(venue, "学会誌") ||
		strings.Contains(venue, "論文誌") {
		return "article"
	}

	return "inproceedings"
}

// formatAuthors formats authors in BibTeX style: "Family, Given and Family, Given"
func formatAuthors(authors []reference.Author) string {
	var formatted []string
	for _, a := range authors {
		if a.Given != "" {
			formatted = append(formatted, fmt.Sprintf("%s, %s", escapeLatex(a.Family), escapeLatex(a.Given)))
		} else {
			formatted = append(formatted, escapeLatex(a.Family))
		}
	}
	return strings.Join(formatted, " and ")
}

// escapeLatex escapes special LaTeX characters.
func escapeLatex(s string) string {
	replacer := strings.NewReplacer(
		"&", `\&`,
		"%", `\%`,
		"$", `\$`,
		"#", `\#`,
		"_", `\_`,
		"{", `\{`,
		"}", `\}`,
		"~", `\textasciitilde{}`,
		"^", `\textasciicircum{}`,
	)
	return replacer.Replace(s)
}

// ToBibTeXList converts multiple papers to BibTeX, one entry per paper.
func ToBibTeXList(papers []reference.Paper) string {
	var entries []string
	for _, p := range papers {
		entries = append(entries, ToBibTeX(p))
	}
	return strings.Join(entries, "\n")
}
