package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseInt(t *testing.T) {
	assert.Equal(t, 5, ParseInt("5", 1))
	assert.Equal(t, 1, ParseInt("", 1))
	assert.Equal(t, 1, ParseInt("abc", 1))
	assert.Equal(t, 1, ParseInt("0", 1))
	assert.Equal(t, 1, ParseInt("-3", 1))
}

func TestRoundToNearest(t *testing.T) {
	tests := []struct {
		n, unit, want int
	}{
		{n: 0, unit: 5, want: 0},
		{n: 2, unit: 5, want: 0},
		{n: 3, unit: 5, want: 5},
		{n: 12, unit: 5, want: 10},
		{n: 13, unit: 5, want: 15},
		{n: 15, unit: 5, want: 15},
		{n: -7, unit: 5, want: 0},
		{n: 7, unit: 0, want: 7},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, RoundToNearest(tt.n, tt.unit), "RoundToNearest(%d, %d)", tt.n, tt.unit)
	}
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 30, Clamp(10, 30, 400))
	assert.Equal(t, 400, Clamp(999, 30, 400))
	assert.Equal(t, 55, Clamp(55, 30, 400))
}

func TestGenerateReference(t *testing.T) {
	pattern := regexp.MustCompile(`^SMQ-\d{8}-[A-Z0-9]+$`)

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		ref := GenerateReference()
		assert.Regexp(t, pattern, ref)
		assert.False(t, seen[ref], "references must not repeat")
		seen[ref] = true
	}
}
