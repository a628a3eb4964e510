// Package export serializes papers to reference-manager import formats.
package export

import (
	"github.com/matsen/cliprdf/internal/markup"
	"github.com/matsen/cliprdf/internal/reference"
)

// Defaults for RDFOptions.
const (
	DefaultItemID   = "#item_10000"
	DefaultItemType = "conferencePaper"
)

// DefaultSubjects are the dc:subject tags added to every item.
var DefaultSubjects = []string{"Domestic Conference", "Reha"}

// Namespaces declared on the rdf:RDF root, in output order.
var Namespaces = []markup.Attr{
	{Name: "xmlns:rdf", Value: "http://www.w3.org/1999/02/22-rdf-syntax-ns#"},
	{Name: "xmlns:z", Value: "http://www.zotero.org/namespaces/export#"},
	{Name: "xmlns:dcterms", Value: "http://purl.org/dc/terms/"},
	{Name: "xmlns:dc", Value: "http://purl.org/dc/elements/1.1/"},
	{Name: "xmlns:bib", Value: "http://purl.org/net/biblio#"},
	{Name: "xmlns:foaf", Value: "http://xmlns.com/foaf/0.1/"},
}

// RDFOptions configures an RDFBuilder.
type RDFOptions struct {
	Subjects []string // nil means DefaultSubjects; empty means none
	ItemID   string
	ItemType string
	Escape   bool // escape &, <, > in field text
	Indent   string
}

// RDFBuilder maps papers onto Zotero RDF/XML.
type RDFBuilder struct {
	subjects []string
	itemID   string
	itemType string
	escape   bool
	renderer markup.Renderer
}

// NewRDFBuilder returns a builder with defaults filled in.
func NewRDFBuilder(opts RDFOptions) *RDFBuilder {
	b := &RDFBuilder{
		subjects: opts.Subjects,
		itemID:   opts.ItemID,
		itemType: opts.ItemType,
		escape:   opts.Escape,
		renderer: markup.Renderer{Indent: opts.Indent},
	}
	if b.subjects == nil {
		b.subjects = DefaultSubjects
	}
	if b.itemID == "" {
		b.itemID = DefaultItemID
	}
	if b.itemType == "" {
		b.itemType = DefaultItemType
	}
	if b.renderer.Indent == "" {
		b.renderer.Indent = markup.DefaultIndent
	}
	return b
}

// Build returns the rdf:RDF tree for p.
func (b *RDFBuilder) Build(p reference.Paper) *markup.Node {
	desc := markup.Block("rdf:Description").
		WithAttrs(markup.Attr{Name: "rdf:about", Value: markup.EscapeAttr(b.itemID)})

	desc.Append(
		b.leaf("z:itemType", b.itemType),
		markup.Block("dcterms:isPartOf",
			markup.Block("bib:Journal", b.leaf("dc:title", p.Venue)),
		),
		b.authors(p.Authors),
	)
	for _, s := range b.subjects {
		desc.Append(b.leaf("dc:subject", s))
	}
	desc.Append(
		b.leaf("dc:title", p.Title),
		b.leaf("dc:date", p.Date),
	)
	if p.HasDOI() {
		desc.Append(b.leaf("dc:identifier", "DOI "+p.DOI))
	}
	desc.Append(
		b.leaf("dc:description", ""),
		b.leaf("bib:pages", p.Pages),
		markup.Block("bib:presentedAt",
			markup.InlineBlock("bib:Conference", b.leaf("dc:title", p.Venue)),
		),
	)

	return markup.Block("rdf:RDF", desc).WithAttrs(Namespaces...)
}

// Document renders the RDF/XML document for p.
func (b *RDFBuilder) Document(p reference.Paper) string {
	return b.renderer.Render(b.Build(p))
}

func (b *RDFBuilder) authors(authors []reference.Author) *markup.Node {
	seq := markup.Block("rdf:Seq")
	for _, a := range authors {
		seq.Append(markup.Block("rdf:li",
			markup.Block("foaf:Person",
				b.leaf("foaf:surname", a.Family),
				b.leaf("foaf:givenName", a.Given),
			),
		))
	}
	return markup.Block("bib:authors", seq)
}

func (b *RDFBuilder) leaf(name, text string) *markup.Node {
	if b.escape {
		text = markup.Escape(text)
	}
	return markup.Leaf(name, text)
}
