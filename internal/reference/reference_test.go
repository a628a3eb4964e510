package reference

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaperDateParts(t *testing.T) {
	tests := []struct {
		date      string
		wantYear  int
		wantMonth int
	}{
		{"2024-3", 2024, 3},
		{"2024", 2024, 0},
		{"2024-13", 2024, 0},
		{"", 0, 0},
		{"spring", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			p := Paper{Date: tt.date}
			assert.Equal(t, tt.wantYear, p.Year(), "Year()")
			assert.Equal(t, tt.wantMonth, p.Month(), "Month()")
		})
	}
}

func TestAuthorFullName(t *testing.T) {
	assert.Equal(t, "Tanaka Taro", Author{Given: "Taro", Family: "Tanaka"}.FullName())
	assert.Equal(t, "Tanaka", Author{Family: "Tanaka"}.FullName())
}

func TestHasDOI(t *testing.T) {
	assert.False(t, Paper{}.HasDOI())
	assert.True(t, Paper{DOI: "10.1000/xyz"}.HasDOI())
}
