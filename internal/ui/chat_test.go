package ui

import (
	"strings"
	"testing"

	"github.com/dfell/chatmark/internal/markdown"
)

func TestChatAppendRendersMessage(t *testing.T) {
	c := NewChatView(markdown.Dark(), 80)
	c.Append(Message{Role: RoleUser, Source: "hello **there**"})

	if len(c.messages) != 1 {
		t.Fatalf("Expected 1 message, got %d", len(c.messages))
	}
	if c.messages[0].surface.Height() == 0 {
		t.Error("Expected the message to have rendered lines")
	}
}

func TestChatStreamingThrottle(t *testing.T) {
	c := NewChatView(markdown.Dark(), 80)
	c.Append(Message{Role: RoleAssistant, Source: ""})

	// Small chunks below the threshold must not re-render.
	c.AppendChunk("hi")
	if c.messages[0].renderedLen != 0 {
		t.Errorf("Expected no re-render below the threshold, rendered at %d", c.messages[0].renderedLen)
	}

	// Crossing the threshold re-renders on the full buffer.
	c.AppendChunk(strings.Repeat("x", streamDelta))
	if c.messages[0].renderedLen != len(c.messages[0].msg.Source) {
		t.Error("Expected a re-render after the threshold is crossed")
	}

	// FlushStream always re-renders the pending tail.
	c.AppendChunk("!")
	c.FlushStream()
	if c.messages[0].renderedLen != len(c.messages[0].msg.Source) {
		t.Error("Expected FlushStream to render the remaining text")
	}
}

func TestChatStreamStartsMessageWhenEmpty(t *testing.T) {
	c := NewChatView(markdown.Dark(), 80)
	c.AppendChunk("orphan chunk")
	if len(c.messages) != 1 {
		t.Fatalf("Expected an implicit message, got %d", len(c.messages))
	}
	if c.messages[0].msg.Role != RoleAssistant {
		t.Errorf("Expected assistant role, got %q", c.messages[0].msg.Role)
	}
}

func TestChatSetThemeRerendersAll(t *testing.T) {
	c := NewChatView(markdown.Dark(), 80)
	c.Append(Message{Role: RoleUser, Source: "plain text"})

	dark := c.messages[0].surface
	c.SetTheme(markdown.Light())
	if c.messages[0].surface == dark {
		t.Error("Expected a fresh surface after a theme change")
	}
}

func TestChatScrollFollowsTail(t *testing.T) {
	c := NewChatView(markdown.Dark(), 40)
	for i := 0; i < 20; i++ {
		c.Append(Message{Role: RoleUser, Source: "line"})
	}
	viewHeight := 10

	// Scrolling up detaches from the tail.
	c.scroll = c.TotalLines() - viewHeight
	c.ScrollBy(-5, viewHeight)
	if c.followTail {
		t.Error("Expected followTail off after scrolling up")
	}

	// Scrolling back to the bottom re-attaches.
	c.ScrollBy(1000, viewHeight)
	if !c.followTail {
		t.Error("Expected followTail on at the bottom")
	}
}

func TestChatHandleClickDispatchesLink(t *testing.T) {
	c := NewChatView(markdown.Dark(), 80)
	var tapped string
	c.OnLinkTapped = func(url string) { tapped = url }
	c.Append(Message{Role: RoleAssistant, Source: "[Site](https://example.com)"})

	// Row 0 is the role header; the link is on row 1 at column 0.
	if !c.HandleClick(0, 1) {
		t.Fatal("Expected the click to land on the link")
	}
	if tapped != "https://example.com" {
		t.Errorf("Expected tapped URL %q, got %q", "https://example.com", tapped)
	}

	if c.HandleClick(0, 0) {
		t.Error("Expected a header click to miss")
	}
}

func TestChatHandleClickDispatchesCode(t *testing.T) {
	c := NewChatView(markdown.Dark(), 80)
	var gotCode, gotLang string
	c.OnCodeTapped = func(code, language string) { gotCode, gotLang = code, language }
	c.Append(Message{Role: RoleAssistant, Source: "```swift\nlet x = 1\n```"})

	// Row 1 is the language label, row 2 the code body.
	if !c.HandleClick(0, 2) {
		t.Fatal("Expected the click to land on the code block")
	}
	if gotCode != "let x = 1\n" || gotLang != "swift" {
		t.Errorf("Unexpected payload: %q %q", gotCode, gotLang)
	}
}

func TestChatSearchMarksMatchedMessages(t *testing.T) {
	c := NewChatView(markdown.Dark(), 80)
	c.Append(Message{Role: RoleUser, Source: "How do goroutines work?"})
	c.Append(Message{Role: RoleAssistant, Source: "Channels synchronize them."})

	state := NewSearchState()
	state.SetMinScore(ScoreThresholdNone)
	for _, ch := range "goroutines" {
		state.InsertChar(ch)
	}

	matches := c.Search(state)
	if len(matches) != 1 || matches[0] != 0 {
		t.Fatalf("Expected only message 0 to match, got %v", matches)
	}
	if c.messages[0].surface.highlightCells == nil {
		t.Error("Expected highlight cells on the matched message")
	}
	if c.messages[1].surface.highlightCells != nil {
		t.Error("Expected no highlight cells on the unmatched message")
	}

	c.ClearHighlights()
	if c.messages[0].surface.highlightCells != nil {
		t.Error("Expected ClearHighlights to remove the marks")
	}
}

func TestChatSearchEmptyQueryMatchesNothing(t *testing.T) {
	c := NewChatView(markdown.Dark(), 80)
	c.Append(Message{Role: RoleUser, Source: "anything"})

	if matches := c.Search(NewSearchState()); matches != nil {
		t.Errorf("Expected no matches for an empty query, got %v", matches)
	}
}

func TestChatSearchMatchesRenderedTextNotMarkup(t *testing.T) {
	c := NewChatView(markdown.Dark(), 80)
	c.Append(Message{Role: RoleUser, Source: "**bold claim**"})

	state := NewSearchState()
	state.SetMinScore(ScoreThresholdNone)
	for _, ch := range "bold claim" {
		state.InsertChar(ch)
	}

	if matches := c.Search(state); len(matches) != 1 {
		t.Fatalf("Expected 1 match, got %v", matches)
	}
	// The asterisks are not rendered, so "bold" starts at rune 0 and the
	// highlight lands on columns 0..3.
	hl := c.messages[0].surface.highlightCells[0]
	if hl == nil || !hl[0] || !hl[3] {
		t.Errorf("Expected the highlight at the start of the rendered line, got %v", hl)
	}
}

func TestChatScrollToMessage(t *testing.T) {
	c := NewChatView(markdown.Dark(), 80)
	c.Append(Message{Role: RoleUser, Source: "first"})
	c.Append(Message{Role: RoleUser, Source: "second"})

	c.ScrollToMessage(1)
	if c.scroll != c.messageHeight(c.messages[0]) {
		t.Errorf("Expected scroll %d, got %d", c.messageHeight(c.messages[0]), c.scroll)
	}
}
