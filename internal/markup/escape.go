package markup

import "strings"

var textEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

var attrEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

// Escape escapes text content. Render never escapes on its own.
func Escape(s string) string {
	return textEscaper.Replace(s)
}

// EscapeAttr escapes an attribute value.
func EscapeAttr(s string) string {
	return attrEscaper.Replace(s)
}
