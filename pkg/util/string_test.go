package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTags(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "empty", input: "", expected: []string{}},
		{name: "blank", input: "   ", expected: []string{}},
		{name: "simple", input: "growth, sales", expected: []string{"growth", "sales"}},
		{name: "brackets and quotes", input: `["growth", 'sales']`, expected: []string{"growth", "sales"}},
		{name: "drops empty entries", input: "a,,b, ", expected: []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseTags(tt.input))
		})
	}
}

func TestFormatHashtags(t *testing.T) {
	tests := []struct {
		name     string
		tags     []string
		expected string
	}{
		{name: "mixed prefixes and blanks", tags: []string{"growth", "#Sales", ""}, expected: "#growth #Sales"},
		{name: "nil", tags: nil, expected: ""},
		{name: "trims", tags: []string{"  coffee ", " "}, expected: "#coffee"},
		{name: "already prefixed", tags: []string{"#a", "#b"}, expected: "#a #b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatHashtags(tt.tags))
		})
	}
}

func TestRemoveSpaces(t *testing.T) {
	assert.Equal(t, "RealEstate", RemoveSpaces("Real Estate"))
	assert.Equal(t, "", RemoveSpaces("  "))
}
