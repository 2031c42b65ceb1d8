package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollapseSpaces(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"  Story A  ", "Story A"},
		{"Story\n\tA", "Story A"},
		{"Story A", "Story A"},
		{"a   b    c", "a b c"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, CollapseSpaces(tt.input), "input %q", tt.input)
	}
}

func TestStripFragment(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"https://example.com/page#anchor", "https://example.com/page"},
		{"  https://example.com  ", "https://example.com"},
		{"item?id=1", "item?id=1"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, StripFragment(tt.input), "input %q", tt.input)
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		pageURL  string
		href     string
		expected string
	}{
		{"https://news.ycombinator.com", "item?id=1", "https://news.ycombinator.com/item?id=1"},
		{"https://news.ycombinator.com/news", "item?id=1", "https://news.ycombinator.com/item?id=1"},
		{"https://news.ycombinator.com", "http://a", "http://a"},
		{"https://news.ycombinator.com", "", ""},
		{"not a url at all", "http://a", "http://a"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Resolve(tt.pageURL, tt.href), "href %q against %q", tt.href, tt.pageURL)
	}
}
