package markdown

import (
	"reflect"
	"strings"
	"testing"
)

func TestResolveInline(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Span
	}{
		{
			name:  "Bold and italic",
			input: "**bold** and *italic*",
			expected: []Span{
				{Kind: SpanBold, Text: "bold"},
				{Kind: SpanPlain, Text: " and "},
				{Kind: SpanItalic, Text: "italic"},
			},
		},
		{
			name:  "Inline code",
			input: "run `go vet` first",
			expected: []Span{
				{Kind: SpanPlain, Text: "run "},
				{Kind: SpanInlineCode, Text: "go vet"},
				{Kind: SpanPlain, Text: " first"},
			},
		},
		{
			name:  "Link",
			input: "[Site](https://example.com)",
			expected: []Span{
				{Kind: SpanLink, Text: "Site", URL: "https://example.com"},
			},
		},
		{
			name:  "Link surrounded by text",
			input: "see [docs](https://go.dev) for more",
			expected: []Span{
				{Kind: SpanPlain, Text: "see "},
				{Kind: SpanLink, Text: "docs", URL: "https://go.dev"},
				{Kind: SpanPlain, Text: " for more"},
			},
		},
		{
			name:  "Unterminated bold stays literal",
			input: "**unterminated bold",
			expected: []Span{
				{Kind: SpanPlain, Text: "**unterminated bold"},
			},
		},
		{
			name:  "Unterminated code stays literal",
			input: "a ` b",
			expected: []Span{
				{Kind: SpanPlain, Text: "a ` b"},
			},
		},
		{
			name:  "Bracket without parens stays literal",
			input: "[x] (spaced)",
			expected: []Span{
				{Kind: SpanPlain, Text: "[x] (spaced)"},
			},
		},
		{
			name:  "Bold content is not rescanned",
			input: "**has *star* inside**",
			expected: []Span{
				{Kind: SpanBold, Text: "has *star* inside"},
			},
		},
		{
			name:  "Malformed URL is still a link",
			input: "[bad](not a url)",
			expected: []Span{
				{Kind: SpanLink, Text: "bad", URL: "not a url"},
			},
		},
		{
			name:  "Plain text only",
			input: "nothing fancy here",
			expected: []Span{
				{Kind: SpanPlain, Text: "nothing fancy here"},
			},
		},
		{
			name:     "Empty text",
			input:    "",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spans := ResolveInline(tt.input)
			if !reflect.DeepEqual(spans, tt.expected) {
				t.Errorf("Expected %+v, got %+v", tt.expected, spans)
			}
		})
	}
}

// TestResolveInlineTextConservation checks that concatenating span texts
// reproduces the input with exactly the recognized delimiters removed.
func TestResolveInlineTextConservation(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"**bold** and *italic*", "bold and italic"},
		{"a `b` c", "a b c"},
		{"[Site](https://example.com)", "Site"},
		{"plain", "plain"},
		{"**unterminated", "**unterminated"},
		{"* not emphasis", "* not emphasis"},
		{"mixed **b** `c` *i* [l](u) end", "mixed b c i l end"},
	}

	for _, tt := range tests {
		var sb strings.Builder
		for _, span := range ResolveInline(tt.input) {
			sb.WriteString(span.Text)
		}
		if sb.String() != tt.expected {
			t.Errorf("Input %q: expected %q, got %q", tt.input, tt.expected, sb.String())
		}
	}
}
