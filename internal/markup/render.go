package markup

import (
	"strings"
)

// DefaultIndent is one indentation unit.
const DefaultIndent = "    "

// Renderer renders node trees.
type Renderer struct {
	Indent string
}

// Render renders n with DefaultIndent.
func Render(n *Node) string {
	return Renderer{Indent: DefaultIndent}.Render(n)
}

// Render renders n and its descendants.
//
// Each block node indents its own body by exactly one unit. Children
// arrive already rendered, so nesting depth never has to be threaded
// through the recursion.
func (r Renderer) Render(n *Node) string {
	body := n.Text
	if !n.IsLeaf() {
		parts := make([]string, len(n.Children))
		for i, c := range n.Children {
			parts[i] = r.Render(c)
		}
		body = strings.Join(parts, "\n")
	}

	open := "<" + n.Name + attrString(n) + ">"
	end := "</" + n.Name + ">"
	if n.Inline {
		return open + body + end
	}
	return open + "\n" + r.indent(body) + "\n" + end
}

// indent prefixes every line of s with one unit and trims trailing
// whitespace left by the pass.
func (r Renderer) indent(s string) string {
	var b strings.Builder
	for _, line := range strings.Split(s, "\n") {
		b.WriteString(r.Indent)
		b.WriteString(line)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), " \t\n")
}

func attrString(n *Node) string {
	var b strings.Builder
	if n.Raw != "" {
		b.WriteString(" ")
		b.WriteString(n.Raw)
	}
	for _, a := range n.Attrs {
		b.WriteString(" ")
		b.WriteString(a.Name)
		b.WriteString(`="`)
		b.WriteString(a.Value)
		b.WriteString(`"`)
	}
	return b.String()
}
