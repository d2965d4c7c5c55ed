package ui

import (
	"testing"

	"github.com/dfell/chatmark/internal/markdown"
)

func renderSurface(t *testing.T, source string, width int) *MessageSurface {
	t.Helper()
	doc, registry := markdown.Render(source, markdown.Dark())
	return NewMessageSurface(doc, registry, width)
}

func (ms *MessageSurface) lineText(i int) string {
	text := ""
	for _, seg := range ms.lines[i].segments {
		text += seg.text
	}
	return text
}

func TestSurfaceWrapsAtWordBoundaries(t *testing.T) {
	ms := renderSurface(t, "alpha beta gamma delta", 12)

	if ms.Height() != 2 {
		t.Fatalf("Expected 2 lines, got %d", ms.Height())
	}
	if got := ms.lineText(0); got != "alpha beta" {
		t.Errorf("Expected %q, got %q", "alpha beta", got)
	}
	if got := ms.lineText(1); got != "gamma delta" {
		t.Errorf("Expected %q, got %q", "gamma delta", got)
	}
}

func TestSurfaceBreaksOverlongWords(t *testing.T) {
	ms := renderSurface(t, "aaaaaaaaaaaaaaaaaaaa", 8)

	if ms.Height() != 3 {
		t.Fatalf("Expected 3 lines, got %d", ms.Height())
	}
	total := ""
	for i := 0; i < ms.Height(); i++ {
		total += ms.lineText(i)
	}
	if total != "aaaaaaaaaaaaaaaaaaaa" {
		t.Errorf("Expected no characters lost, got %q", total)
	}
}

func TestSurfaceContinuationIndent(t *testing.T) {
	ms := renderSurface(t, "- first second third fourth", 14)

	if ms.Height() < 2 {
		t.Fatalf("Expected a wrapped list item, got %d line(s)", ms.Height())
	}
	cont := ms.lines[1]
	if len(cont.segments) == 0 {
		t.Fatal("Expected segments on the continuation line")
	}
	if cont.segments[0].x != 2 {
		t.Errorf("Expected continuation indent 2, got %d", cont.segments[0].x)
	}
}

func TestSurfaceCodeBlockIsVerbatim(t *testing.T) {
	ms := renderSurface(t, "```go\nif x {\n\treturn\n}\n```", 80)

	// Language label plus three code lines.
	expected := []string{"go", "if x {", "\treturn", "}"}
	if ms.Height() != len(expected) {
		t.Fatalf("Expected %d lines, got %d", len(expected), ms.Height())
	}
	for i, want := range expected {
		if got := ms.lineText(i); got != want {
			t.Errorf("Line %d: expected %q, got %q", i, want, got)
		}
	}
}

func TestSurfaceBlockSpacing(t *testing.T) {
	ms := renderSurface(t, "one\n\ntwo", 80)

	// paragraph, blank spacer, paragraph
	if ms.Height() != 3 {
		t.Fatalf("Expected 3 lines, got %d", ms.Height())
	}
	if len(ms.lines[1].segments) != 0 {
		t.Error("Expected the middle line to be a spacer")
	}
}

func TestSurfaceListItemsGroup(t *testing.T) {
	ms := renderSurface(t, "- a\n- b", 80)

	if ms.Height() != 2 {
		t.Fatalf("Expected adjacent list items with no spacer, got %d lines", ms.Height())
	}
}

func TestSurfacePlainTextJoinsLines(t *testing.T) {
	ms := renderSurface(t, "alpha beta gamma delta", 12)

	want := "alpha beta\ngamma delta"
	if got := ms.PlainText(); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestSurfaceHighlightsMapToCells(t *testing.T) {
	ms := renderSurface(t, "alpha beta gamma delta", 12)

	// Highlight "gamma", runes 11..15 of the plain text. It sits on line 1
	// at columns 0..4.
	ms.SetHighlights([]int{11, 12, 13, 14, 15})

	if ms.highlightCells[0] != nil {
		t.Error("Expected no highlights on line 0")
	}
	for col := 0; col < 5; col++ {
		if !ms.highlightCells[1][col] {
			t.Errorf("Expected column %d of line 1 highlighted", col)
		}
	}
	if ms.highlightCells[1][5] {
		t.Error("Expected the highlight to stop after the match")
	}

	ms.SetHighlights(nil)
	if ms.highlightCells != nil {
		t.Error("Expected SetHighlights(nil) to clear all highlighting")
	}
}

func TestSurfaceHighlightsSkipIndent(t *testing.T) {
	ms := renderSurface(t, "- first second third fourth", 14)

	// "third" starts line 1, drawn at the continuation indent. Plain text is
	// "• first second\nthird fourth": "third" occupies runes 15..19.
	ms.SetHighlights([]int{15, 16, 17, 18, 19})

	if !ms.highlightCells[1][2] {
		t.Error("Expected the highlight to start at the indented column")
	}
	if ms.highlightCells[1][0] {
		t.Error("Expected no highlight in the indent gutter")
	}
}

func TestSurfaceHitTest(t *testing.T) {
	ms := renderSurface(t, "go to [Site](https://example.com) now", 80)

	// Line 0 reads "go to Site now"; the link starts at column 6.
	region, ok := ms.HitTest(6, 0)
	if !ok {
		t.Fatal("Expected a region under the link text")
	}
	if region.Kind != markdown.RegionLink || region.URL != "https://example.com" {
		t.Errorf("Unexpected region: %+v", region)
	}

	if _, ok := ms.HitTest(0, 0); ok {
		t.Error("Expected no region under plain text")
	}
	if _, ok := ms.HitTest(6, 99); ok {
		t.Error("Expected no region off the surface")
	}
}

func TestSurfaceCodeHitTest(t *testing.T) {
	ms := renderSurface(t, "```\nsecret()\n```", 80)

	region, ok := ms.HitTest(2, 0)
	if !ok {
		t.Fatal("Expected a region on the code body")
	}
	if region.Kind != markdown.RegionCodeBlock || region.Code != "secret()\n" {
		t.Errorf("Unexpected region: %+v", region)
	}
}
