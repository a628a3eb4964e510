package markup

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderLeaf(t *testing.T) {
	assert.Equal(t, "<dc:title>A Study</dc:title>", Render(Leaf("dc:title", "A Study")))
	assert.Equal(t, "<dc:description></dc:description>", Render(Leaf("dc:description", "")))
}

func TestRenderNested(t *testing.T) {
	tree := Block("a",
		Leaf("b", "x"),
		Block("c", Leaf("d", "y")),
	)

	want := `<a>
    <b>x</b>
    <c>
        <d>y</d>
    </c>
</a>`
	assert.Equal(t, want, Render(tree))
}

func TestRenderInlineBlock(t *testing.T) {
	tree := Block("bib:presentedAt",
		InlineBlock("bib:Conference", Leaf("dc:title", "Proc. ABC")),
	)

	want := `<bib:presentedAt>
    <bib:Conference><dc:title>Proc. ABC</dc:title></bib:Conference>
</bib:presentedAt>`
	assert.Equal(t, want, Render(tree))
}

func TestRenderBlockLeaf(t *testing.T) {
	n := &Node{Name: "note", Text: "line one\nline two"}
	assert.Equal(t, "<note>\n    line one\n    line two\n</note>", Render(n))
}

func TestRenderAttributes(t *testing.T) {
	n := Block("rdf:Description", Leaf("x", "1")).
		WithRaw(`xml:lang="ja"`).
		WithAttrs(Attr{Name: "rdf:about", Value: "#item_1"}, Attr{Name: "b", Value: "2"})

	out := Render(n)
	assert.True(t, strings.HasPrefix(out, `<rdf:Description xml:lang="ja" rdf:about="#item_1" b="2">`+"\n"), out)
	assert.True(t, strings.HasSuffix(out, "\n</rdf:Description>"), out)
}

func TestRenderCustomIndent(t *testing.T) {
	r := Renderer{Indent: "\t"}
	assert.Equal(t, "<a>\n\t<b>x</b>\n</a>", r.Render(Block("a", Leaf("b", "x"))))
}

func TestRenderDeterministic(t *testing.T) {
	tree := Block("root", Block("seq", Leaf("li", "1"), Leaf("li", "2")), Leaf("t", "v"))
	assert.Equal(t, Render(tree), Render(tree))
}

func TestRenderIndentationInvariant(t *testing.T) {
	tree := Block("root",
		Block("one",
			Block("two", Leaf("three", "x"), Leaf("three", "y")),
			Leaf("two", "z"),
		),
		Leaf("one", "w"),
	)

	var check func(n *Node)
	check = func(n *Node) {
		if n.Inline || n.IsLeaf() {
			return
		}
		lines := strings.Split(Render(n), "\n")
		require.GreaterOrEqual(t, len(lines), 3)
		for _, line := range lines[1 : len(lines)-1] {
			assert.True(t, strings.HasPrefix(line, DefaultIndent), "line %q of <%s> not indented", line, n.Name)
		}
		assert.False(t, strings.HasPrefix(lines[0], " "))
		assert.False(t, strings.HasPrefix(lines[len(lines)-1], " "))
		for _, c := range n.Children {
			check(c)
		}
	}
	check(tree)
}

func TestComposeRendered(t *testing.T) {
	// Rendering a subtree and placing it under a new parent gives the
	// same text as rendering the combined tree.
	inner := Block("inner", Leaf("leaf", "v"))
	outer := Block("outer", inner)

	innerText := Render(inner)
	composed := "<outer>\n" + Renderer{Indent: DefaultIndent}.indent(innerText) + "\n</outer>"
	assert.Equal(t, Render(outer), composed)
}

func TestEscape(t *testing.T) {
	assert.Equal(t, "A &amp; B &lt;C&gt;", Escape("A & B <C>"))
	assert.Equal(t, "&quot;q&quot; &amp;", EscapeAttr(`"q" &`))
	assert.Equal(t, "田中", Escape("田中"))
}
