package author

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/matsen/cliprdf/internal/reference"
)

func TestParseQuery(t *testing.T) {
	tests := []struct {
		input string
		want  Query
	}{
		{"Tanaka", Query{Family: "Tanaka"}},
		{"  Tanaka  ", Query{Family: "Tanaka"}},
		{"Tanaka Taro", Query{Family: "Tanaka", Given: "Taro"}},
		{"Tanaka, T", Query{Family: "Tanaka", Given: "T"}},
		{"田中　太郎", Query{Family: "田中", Given: "太郎"}},
		{"van Rossum Guido", Query{Family: "van", Given: "Rossum Guido"}},
		{"", Query{}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseQuery(tt.input))
		})
	}
}

func TestMatches(t *testing.T) {
	taro := reference.Author{Family: "Tanaka", Given: "Taro"}

	tests := []struct {
		name  string
		query Query
		want  bool
	}{
		{"family only", Query{Family: "Tanaka"}, true},
		{"case-insensitive", Query{Family: "tanaka", Given: "TA"}, true},
		{"given prefix", Query{Family: "Tanaka", Given: "T"}, true},
		{"wrong given", Query{Family: "Tanaka", Given: "Hanako"}, false},
		{"family is not a prefix match", Query{Family: "Tana"}, false},
		{"other family", Query{Family: "Suzuki"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.query.Matches(taro))
		})
	}
}

func TestAllMatch(t *testing.T) {
	authors := []reference.Author{
		{Family: "Tanaka", Given: "Taro"},
		{Family: "Suzuki", Given: "Hanako"},
	}

	assert.True(t, AllMatch([]Query{ParseQuery("Tanaka"), ParseQuery("Suzuki H")}, authors), "two present authors")
	assert.False(t, AllMatch([]Query{ParseQuery("Tanaka"), ParseQuery("Sato")}, authors), "absent author")
	assert.True(t, AllMatch(nil, authors), "no queries")
	assert.True(t, Query{}.IsZero())
	assert.False(t, ParseQuery("Sato").IsZero())
}
