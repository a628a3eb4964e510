package citation

import (
	"fmt"
	"strings"
)

// Irregularity is punctuation the fixed separator set does not handle.
// Such input still parses, but fields may be split in the wrong place.
type Irregularity struct {
	Line int    // 1-based logical line
	Char string // offending character
	Hint string
}

func (i Irregularity) String() string {
	return fmt.Sprintf("line %d: %q %s", i.Line, i.Char, i.Hint)
}

var irregularChars = []struct {
	char string
	hint string
}{
	{"、", "ideographic comma is not a separator"},
	{"　", "ideographic space does not separate name parts"},
	{"；", "full-width semicolon is not a separator"},
	{";", "semicolon is not a separator"},
}

// Inspect reports irregular punctuation on the author and venue lines.
func Inspect(text string) []Irregularity {
	lines := logicalLines(text)
	var found []Irregularity
	for i, line := range lines {
		if i != 0 && i != 2 {
			continue
		}
		for _, ic := range irregularChars {
			if strings.Contains(line, ic.char) {
				found = append(found, Irregularity{Line: i + 1, Char: ic.char, Hint: ic.hint})
			}
		}
	}
	return found
}
