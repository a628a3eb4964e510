package main

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matsen/cliprdf/internal/citation"
	"github.com/matsen/cliprdf/internal/reference"
)

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"malformed", citation.ErrMalformedInput, ExitDataError},
		{"wrapped malformed", fmt.Errorf("line 3: %w", citation.ErrMalformedInput), ExitDataError},
		{"other", fmt.Errorf("disk full"), ExitError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCodeFor(tt.err))
		})
	}
}

func TestTruncateString(t *testing.T) {
	tests := []struct {
		in     string
		maxLen int
		want   string
	}{
		{"short", 10, "short"},
		{"exactly ten", 11, "exactly ten"},
		{"a longer title here", 10, "a longe..."},
		{"深層学習による歩行解析", 6, "深層学..."},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, truncateString(tt.in, tt.maxLen), "truncateString(%q, %d)", tt.in, tt.maxLen)
	}
}

func TestFormatAuthorsShort(t *testing.T) {
	authors := []reference.Author{
		{Given: "Taro", Family: "Tanaka"},
		{Given: "Hanako", Family: "Suzuki"},
		{Family: "Sato"},
		{Family: "Ito"},
	}
	tests := []struct {
		max  int
		want string
	}{
		{3, "Tanaka, Suzuki, Sato, et al."},
		{4, "Tanaka, Suzuki, Sato, Ito"},
		{1, "Tanaka, et al."},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatAuthorsShort(authors, tt.max), "max=%d", tt.max)
	}
	assert.Empty(t, formatAuthorsShort(nil, 3))
}

func TestReadInput_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "citation.txt")
	want := "Tanaka Taro\nA Study on X\nProc. ABC, pp. 12-15, 2024年3月15日\n"
	require.NoError(t, os.WriteFile(path, []byte(want), 0644))

	got, err := readInput([]string{path})
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
