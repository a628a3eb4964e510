package citation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitterSplit(t *testing.T) {
	s := MustSplitter(`, |， |,|，`)

	tests := []struct {
		name string
		text string
		want []string
	}{
		{"half-width", "a,b,c", []string{"a", "b", "c"}},
		{"full-width", "a，b，c", []string{"a", "b", "c"}},
		{"with spaces", "a, b， c", []string{"a", "b", "c"}},
		{"mixed", "a,b，c, d， e", []string{"a", "b", "c", "d", "e"}},
		{"consecutive separators keep empty token", "a,,b", []string{"a", "", "b"}},
		{"no separator", "abc", []string{"abc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Split(tt.text))
		})
	}
}

func TestSplitterFields(t *testing.T) {
	s := MustSplitter(`,|，`)
	assert.Equal(t, []string{"a", "b", "c"}, s.Fields("a,,b，，c,"))
}

func TestSplitterDropsSeparatorTokens(t *testing.T) {
	s := MustSplitter(`-`)
	assert.NotContains(t, s.Split("x-y--z"), "-")
}

func TestNewSplitterInvalidPattern(t *testing.T) {
	_, err := NewSplitter("(")
	require.Error(t, err)
	assert.Panics(t, func() { MustSplitter("(") })
}
