package ui

import (
	"strings"

	"github.com/dfell/chatmark/internal/markdown"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// segment is one styled fragment placed on a surface line.
type segment struct {
	x      int // column, relative to the surface origin
	text   string
	style  tcell.Style
	region markdown.RegionID
}

// surfaceLine is one laid-out terminal line.
type surfaceLine struct {
	segments []segment
}

// MessageSurface lays a styled document out at a fixed width. It is the host
// display side of the engine boundary: it honors font, color, indent, and
// spacing metadata, and maps cells back to region identifiers so the app can
// resolve taps.
type MessageSurface struct {
	width    int
	lines    []surfaceLine
	registry *markdown.RegionRegistry

	// highlightCells maps line index to the columns whose cells draw with
	// the search highlight style. Keyed by the rune's starting column.
	highlightCells map[int]map[int]bool
}

// NewMessageSurface lays out doc at the given width. Width is clamped to a
// small minimum so pathological terminal sizes cannot produce a zero-width
// wrap loop.
func NewMessageSurface(doc *markdown.StyledDocument, registry *markdown.RegionRegistry, width int) *MessageSurface {
	if width < 8 {
		width = 8
	}
	ms := &MessageSurface{width: width, registry: registry}
	ms.layout(doc)
	return ms
}

// Height returns the number of terminal lines the document occupies.
func (ms *MessageSurface) Height() int {
	return len(ms.lines)
}

// Registry returns the region registry this surface was laid out with.
func (ms *MessageSurface) Registry() *markdown.RegionRegistry {
	return ms.registry
}

// DrawLine draws surface line i at screen position (x, y). Out-of-range lines
// draw nothing, which lets callers clip against a viewport without bounds
// bookkeeping. Cells marked by SetHighlights draw with the search highlight
// style over the segment's own style.
func (ms *MessageSurface) DrawLine(s tcell.Screen, i, x, y int) {
	if i < 0 || i >= len(ms.lines) {
		return
	}
	hl := ms.highlightCells[i]
	for _, seg := range ms.lines[i].segments {
		if hl == nil {
			drawText(s, x+seg.x, y, seg.style, seg.text)
			continue
		}
		col := seg.x
		for _, r := range seg.text {
			style := seg.style
			if hl[col] {
				style = style.Foreground(colorSearchHighlight).Bold(true)
			}
			s.SetContent(x+col, y, r, nil, style)
			col += runewidth.RuneWidth(r)
		}
	}
}

// PlainText returns the laid-out text of the surface, lines joined with
// newlines. Rune positions into this string are the coordinate space that
// SetHighlights accepts, so matching against it keeps highlights aligned with
// what the user actually sees.
func (ms *MessageSurface) PlainText() string {
	var sb strings.Builder
	for i, line := range ms.lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		for _, seg := range line.segments {
			sb.WriteString(seg.text)
		}
	}
	return sb.String()
}

// SetHighlights marks the given rune positions of PlainText for emphasis on
// the next draw. Passing an empty slice clears all highlighting.
func (ms *MessageSurface) SetHighlights(positions []int) {
	if len(positions) == 0 {
		ms.highlightCells = nil
		return
	}
	want := make(map[int]bool, len(positions))
	for _, p := range positions {
		want[p] = true
	}
	ms.highlightCells = make(map[int]map[int]bool)
	pos := 0
	for i, line := range ms.lines {
		if i > 0 {
			pos++ // the newline joining lines in PlainText
		}
		for _, seg := range line.segments {
			col := seg.x
			for _, r := range seg.text {
				if want[pos] {
					if ms.highlightCells[i] == nil {
						ms.highlightCells[i] = make(map[int]bool)
					}
					ms.highlightCells[i][col] = true
				}
				pos++
				col += runewidth.RuneWidth(r)
			}
		}
	}
}

// HitTest resolves a surface-relative cell to the region under it, if any.
func (ms *MessageSurface) HitTest(x, y int) (markdown.Region, bool) {
	if y < 0 || y >= len(ms.lines) {
		return markdown.Region{}, false
	}
	for _, seg := range ms.lines[y].segments {
		if seg.region == 0 {
			continue
		}
		w := runewidth.StringWidth(seg.text)
		if x >= seg.x && x < seg.x+w {
			return ms.registry.Resolve(seg.region)
		}
	}
	return markdown.Region{}, false
}

func (ms *MessageSurface) layout(doc *markdown.StyledDocument) {
	for _, block := range doc.Blocks {
		runs := doc.Runs[block.RunStart:block.RunEnd]
		if block.Kind == markdown.BlockCodeBlock {
			ms.layoutCode(runs)
		} else {
			ms.flowRuns(runs, block.Indent, doc.LineSpacing)
		}
		for i := 0; i < block.SpacingAfter; i++ {
			ms.lines = append(ms.lines, surfaceLine{})
		}
	}
	// Trailing spacer lines add nothing below the last block.
	for len(ms.lines) > 0 && len(ms.lines[len(ms.lines)-1].segments) == 0 {
		ms.lines = ms.lines[:len(ms.lines)-1]
	}
}

// layoutCode places code-block runs verbatim, one source line per surface
// line, with no wrapping.
func (ms *MessageSurface) layoutCode(runs []markdown.StyledRun) {
	for _, run := range runs {
		style := styleFor(run)
		text := strings.TrimSuffix(run.Text, "\n")
		if text == "" && run.Text == "" {
			continue
		}
		for _, line := range strings.Split(text, "\n") {
			ms.lines = append(ms.lines, surfaceLine{segments: []segment{
				{x: 0, text: line, style: style, region: run.Region},
			}})
		}
	}
}

// flowRuns word-wraps a block's runs. The first line starts at column zero
// (the marker run, if any, is part of the flow); continuation lines start at
// the block indent, after lineSpacing blank lines.
func (ms *MessageSurface) flowRuns(runs []markdown.StyledRun, indent, lineSpacing int) {
	line := surfaceLine{}
	x := 0

	newline := func() {
		// The space that triggered the wrap stays behind; drop it.
		for n := len(line.segments); n > 0 && line.segments[n-1].text == " "; n = len(line.segments) {
			line.segments = line.segments[:n-1]
		}
		ms.lines = append(ms.lines, line)
		for i := 0; i < lineSpacing; i++ {
			ms.lines = append(ms.lines, surfaceLine{})
		}
		line = surfaceLine{}
		x = indent
	}

	for _, run := range runs {
		style := styleFor(run)
		for _, word := range splitWords(run.Text) {
			w := runewidth.StringWidth(word)
			if x+w > ms.width && x > indent {
				newline()
				if word == " " {
					continue // never start a continuation line with the wrap space
				}
			}
			for w > ms.width-indent {
				// A single word wider than the content column is broken at
				// grapheme boundaries.
				head, tail := splitToWidth(word, ms.width-x)
				if head != "" {
					line.segments = append(line.segments, segment{x: x, text: head, style: style, region: run.Region})
				}
				newline()
				word = tail
				w = runewidth.StringWidth(word)
			}
			if word == "" {
				continue
			}
			line.segments = append(line.segments, segment{x: x, text: word, style: style, region: run.Region})
			x += w
		}
	}
	if len(line.segments) > 0 {
		ms.lines = append(ms.lines, line)
	}
}

// splitWords splits text into words and single-space separators so the wrap
// loop can treat each independently.
func splitWords(text string) []string {
	var words []string
	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] == ' ' {
			if i > start {
				words = append(words, text[start:i])
			}
			words = append(words, " ")
			start = i + 1
		}
	}
	if start < len(text) {
		words = append(words, text[start:])
	}
	return words
}

// splitToWidth breaks s at a grapheme-cluster boundary so the head fits in
// width cells.
func splitToWidth(s string, width int) (head, tail string) {
	if width < 1 {
		width = 1
	}
	g := uniseg.NewGraphemes(s)
	taken := 0
	end := 0
	for g.Next() {
		w := runewidth.StringWidth(g.Str())
		if taken+w > width {
			break
		}
		taken += w
		_, end = g.Positions()
	}
	if end == 0 {
		// First cluster alone exceeds the width; take it anyway to guarantee
		// progress.
		g = uniseg.NewGraphemes(s)
		if g.Next() {
			_, end = g.Positions()
		}
	}
	return s[:end], s[end:]
}
