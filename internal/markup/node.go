// Package markup builds and renders trees of nested XML-style tags.
//
// Trees are plain data: build a *Node tree, then call Render once.
package markup

// Attr is one name="value" attribute. Value is emitted verbatim.
type Attr struct {
	Name  string
	Value string
}

// Node is a tag with either leaf text or child tags.
type Node struct {
	Name     string
	Raw      string // Raw attribute text, emitted before Attrs
	Attrs    []Attr
	Text     string
	Children []*Node
	// Inline nodes hug their content: <a>text</a>.
	// Block nodes put content on its own indented lines.
	Inline bool
}

// Leaf returns an inline node holding text.
func Leaf(name, text string) *Node {
	return &Node{Name: name, Text: text, Inline: true}
}

// Block returns a block node holding children.
func Block(name string, children ...*Node) *Node {
	return &Node{Name: name, Children: children}
}

// InlineBlock returns an inline node holding children.
func InlineBlock(name string, children ...*Node) *Node {
	return &Node{Name: name, Children: children, Inline: true}
}

// WithAttrs appends attributes and returns n.
func (n *Node) WithAttrs(attrs ...Attr) *Node {
	n.Attrs = append(n.Attrs, attrs...)
	return n
}

// WithRaw sets the raw attribute text and returns n.
func (n *Node) WithRaw(raw string) *Node {
	n.Raw = raw
	return n
}

// Append adds children and returns n.
func (n *Node) Append(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// IsLeaf reports whether n holds text rather than children.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}
