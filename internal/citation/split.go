package citation

import (
	"fmt"
	"regexp"
)

// Splitter splits text on any of a set of equivalent separators.
type Splitter struct {
	sep  *regexp.Regexp
	full *regexp.Regexp
}

// NewSplitter compiles a separator pattern. Alternations such as `,|，`
// make half- and full-width punctuation split in one pass.
func NewSplitter(pattern string) (*Splitter, error) {
	sep, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compiling separator pattern: %w", err)
	}
	full, err := regexp.Compile(`^(?:` + pattern + `)$`)
	if err != nil {
		return nil, fmt.Errorf("compiling separator pattern: %w", err)
	}
	return &Splitter{sep: sep, full: full}, nil
}

// MustSplitter is like NewSplitter but panics on an invalid pattern.
func MustSplitter(pattern string) *Splitter {
	s, err := NewSplitter(pattern)
	if err != nil {
		panic(err)
	}
	return s
}

// Split returns the tokens between separators, in order. Tokens that are
// themselves a separator are dropped. Empty tokens are kept so that
// positional fields stay aligned; use Fields to drop them.
func (s *Splitter) Split(text string) []string {
	parts := s.sep.Split(text, -1)
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" && s.full.MatchString(p) {
			continue
		}
		tokens = append(tokens, p)
	}
	return tokens
}

// Fields is Split without empty tokens.
func (s *Splitter) Fields(text string) []string {
	tokens := s.Split(text)
	out := tokens[:0]
	for _, t := range tokens {
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
