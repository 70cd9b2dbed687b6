package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("   "))
	assert.True(t, IsEmpty("\t\n"))
	assert.False(t, IsEmpty(" a "))
}

func TestSafeTrim(t *testing.T) {
	assert.Equal(t, "Kim", SafeTrim("  Kim\t"))
	assert.Equal(t, "", SafeTrim(""))
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2001-03-09", "March 9, 2001"},
		{" 1999-12-31 ", "December 31, 1999"},
		{"2001-03-09T10:00:00Z", "March 9, 2001"},
		{"", ""},
		{"yesterday", "yesterday"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDate(tt.in), "FormatDate(%q)", tt.in)
	}
}

func TestOrPlaceholder(t *testing.T) {
	assert.Equal(t, Placeholder, OrPlaceholder(""))
	assert.Equal(t, Placeholder, OrPlaceholder("  "))
	assert.Equal(t, "Seoul", OrPlaceholder("Seoul"))
}
