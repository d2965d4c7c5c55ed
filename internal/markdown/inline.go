package markdown

import "strings"

// ResolveInline recognizes bold, italic, inline code, and link constructs in a
// block's inline text and returns spans covering the text exactly, in order.
//
// It is a single left-to-right scan: at each position the delimiters are tried
// in priority order (bold, italic, code, link), and a construct whose closing
// delimiter never appears is abandoned, its opening marker kept as literal
// text. There is no nesting; the inner text of a recognized span is not
// rescanned.
func ResolveInline(text string) []Span {
	var spans []Span
	plainStart := 0
	i := 0

	flushPlain := func(end int) {
		if end > plainStart {
			spans = append(spans, Span{Kind: SpanPlain, Text: text[plainStart:end]})
		}
	}

	for i < len(text) {
		switch {
		case strings.HasPrefix(text[i:], "**"):
			if end := strings.Index(text[i+2:], "**"); end > 0 {
				flushPlain(i)
				spans = append(spans, Span{Kind: SpanBold, Text: text[i+2 : i+2+end]})
				i += 2 + end + 2
				plainStart = i
				continue
			}
			i += 2 // no closer: the markers stay literal

		case text[i] == '*':
			if end := strings.IndexByte(text[i+1:], '*'); end > 0 {
				flushPlain(i)
				spans = append(spans, Span{Kind: SpanItalic, Text: text[i+1 : i+1+end]})
				i += 1 + end + 1
				plainStart = i
				continue
			}
			i++

		case text[i] == '`':
			if end := strings.IndexByte(text[i+1:], '`'); end > 0 {
				flushPlain(i)
				spans = append(spans, Span{Kind: SpanInlineCode, Text: text[i+1 : i+1+end]})
				i += 1 + end + 1
				plainStart = i
				continue
			}
			i++

		case text[i] == '[':
			if display, url, length, ok := matchLink(text[i:]); ok {
				flushPlain(i)
				spans = append(spans, Span{Kind: SpanLink, Text: display, URL: url})
				i += length
				plainStart = i
				continue
			}
			i++

		default:
			i++
		}
	}

	flushPlain(len(text))
	return spans
}

// matchLink matches [display](url) at the start of s. The URL is captured as
// written, with no well-formedness check.
func matchLink(s string) (display, url string, length int, ok bool) {
	rb := strings.IndexByte(s, ']')
	if rb <= 1 {
		return "", "", 0, false
	}
	if rb+1 >= len(s) || s[rb+1] != '(' {
		return "", "", 0, false
	}
	end := strings.IndexByte(s[rb+2:], ')')
	if end <= 0 {
		return "", "", 0, false
	}
	display = s[1:rb]
	url = s[rb+2 : rb+2+end]
	return display, url, rb + 2 + end + 1, true
}
