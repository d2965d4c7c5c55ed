package ui

import (
	"github.com/dfell/chatmark/internal/markdown"
	"github.com/gdamore/tcell/v2"
)

// Message roles shown in the transcript header line.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one transcript entry: a role plus its raw markdown source.
type Message struct {
	Role   string
	Source string
}

// renderedMessage pairs a message with the engine output for its current
// source. The registry is replaced wholesale on every re-render; ids never
// survive across renders.
type renderedMessage struct {
	msg         Message
	surface     *MessageSurface
	renderedLen int // source length at last render, for streaming throttle
}

// streamDelta is the minimum growth in characters before a streaming message
// is re-rendered. Rendering is cheap but not free per keystroke-sized chunk.
const streamDelta = 24

// ChatView owns the transcript: it renders each message through the engine,
// lays it out, scrolls, and forwards region taps.
type ChatView struct {
	theme    *markdown.Theme
	width    int
	messages []*renderedMessage

	scroll     int // first visible transcript line
	followTail bool

	// OnLinkTapped and OnCodeTapped receive resolved region payloads when the
	// user clicks inside a rendered document.
	OnLinkTapped func(url string)
	OnCodeTapped func(code, language string)
}

// NewChatView creates an empty transcript rendered with theme at width.
func NewChatView(theme *markdown.Theme, width int) *ChatView {
	return &ChatView{theme: theme, width: width, followTail: true}
}

// Append renders and adds a complete message.
func (c *ChatView) Append(msg Message) {
	rm := &renderedMessage{msg: msg}
	c.render(rm)
	c.messages = append(c.messages, rm)
	if c.followTail {
		c.ScrollToBottom()
	}
}

// AppendChunk grows the newest message by a streamed chunk and re-renders it
// once enough new text has accumulated. The engine is pure, so streaming is
// just re-invoking it on the full buffer and discarding the old output.
func (c *ChatView) AppendChunk(chunk string) {
	if len(c.messages) == 0 {
		c.Append(Message{Role: RoleAssistant})
	}
	rm := c.messages[len(c.messages)-1]
	rm.msg.Source += chunk
	if len(rm.msg.Source)-rm.renderedLen >= streamDelta {
		c.render(rm)
		if c.followTail {
			c.ScrollToBottom()
		}
	}
}

// FlushStream forces a re-render of the newest message regardless of the
// streaming threshold. Call it when a stream completes.
func (c *ChatView) FlushStream() {
	if len(c.messages) == 0 {
		return
	}
	c.render(c.messages[len(c.messages)-1])
	if c.followTail {
		c.ScrollToBottom()
	}
}

// SetTheme re-renders the whole transcript with a new theme.
func (c *ChatView) SetTheme(theme *markdown.Theme) {
	c.theme = theme
	for _, rm := range c.messages {
		c.render(rm)
	}
}

// SetWidth re-lays-out the transcript for a new terminal width.
func (c *ChatView) SetWidth(width int) {
	if width == c.width {
		return
	}
	c.width = width
	for _, rm := range c.messages {
		c.render(rm)
	}
	if c.followTail {
		c.ScrollToBottom()
	}
}

func (c *ChatView) render(rm *renderedMessage) {
	doc, registry := markdown.Render(rm.msg.Source, c.theme)
	rm.surface = NewMessageSurface(doc, registry, c.width)
	rm.renderedLen = len(rm.msg.Source)
}

// Search matches the query against each message's rendered text, marks the
// matching rune positions for highlighting, and returns the indices of the
// matched messages. Matching runs on the laid-out text rather than the
// markdown source so the highlighted cells line up with what the viewer sees.
// An empty query clears all highlights and matches nothing.
func (c *ChatView) Search(state *SearchState) []int {
	if state.Query() == "" {
		c.ClearHighlights()
		return nil
	}
	var matches []int
	for i, rm := range c.messages {
		ok, result := state.MatchMessage(rm.surface.PlainText())
		if ok {
			rm.surface.SetHighlights(result.Positions)
			matches = append(matches, i)
		} else {
			rm.surface.SetHighlights(nil)
		}
	}
	return matches
}

// ClearHighlights removes search highlighting from every message.
func (c *ChatView) ClearHighlights() {
	for _, rm := range c.messages {
		rm.surface.SetHighlights(nil)
	}
}

// messageHeight is the message's surface height plus its header line and the
// separator below it.
func (c *ChatView) messageHeight(rm *renderedMessage) int {
	return rm.surface.Height() + 2
}

// TotalLines returns the height of the whole transcript in terminal lines.
func (c *ChatView) TotalLines() int {
	total := 0
	for _, rm := range c.messages {
		total += c.messageHeight(rm)
	}
	return total
}

// ScrollBy moves the viewport and disables tail-following when the user
// scrolls away from the bottom.
func (c *ChatView) ScrollBy(delta, viewHeight int) {
	max := c.TotalLines() - viewHeight
	if max < 0 {
		max = 0
	}
	c.scroll += delta
	if c.scroll < 0 {
		c.scroll = 0
	}
	if c.scroll > max {
		c.scroll = max
	}
	c.followTail = c.scroll == max
}

// ScrollToBottom snaps the viewport to the transcript tail. The next Draw
// clamps against the actual viewport height.
func (c *ChatView) ScrollToBottom() {
	c.scroll = 1 << 30
	c.followTail = true
}

// ScrollToTop moves the viewport to the first message.
func (c *ChatView) ScrollToTop() {
	c.scroll = 0
	c.followTail = false
}

// ScrollToMessage positions the viewport at the top of message i.
func (c *ChatView) ScrollToMessage(i int) {
	if i < 0 || i >= len(c.messages) {
		return
	}
	line := 0
	for j := 0; j < i; j++ {
		line += c.messageHeight(c.messages[j])
	}
	c.scroll = line
	c.followTail = false
}

// Draw renders the visible slice of the transcript starting at (x, y) with
// the given viewport height. Width was fixed at layout time by SetWidth.
func (c *ChatView) Draw(s tcell.Screen, x, y, height int) {
	max := c.TotalLines() - height
	if max < 0 {
		max = 0
	}
	if c.scroll > max {
		c.scroll = max
	}

	headerStyle := tcell.StyleDefault.Foreground(c.theme.HeadingColor).Bold(true)
	row := -c.scroll
	for _, rm := range c.messages {
		if row >= height {
			break
		}
		if row >= 0 {
			drawText(s, x, y+row, headerStyle, roleLabel(rm.msg.Role))
		}
		row++
		for i := 0; i < rm.surface.Height(); i++ {
			if row >= height {
				break
			}
			if row >= 0 {
				rm.surface.DrawLine(s, i, x, y+row)
			}
			row++
		}
		row++ // separator line
	}
}

// HandleClick resolves a click at viewport-relative (x, y) to a region tap
// and dispatches it. It reports whether the click landed on a region.
func (c *ChatView) HandleClick(x, y int) bool {
	line := y + c.scroll
	for _, rm := range c.messages {
		h := c.messageHeight(rm)
		if line >= h {
			line -= h
			continue
		}
		// Line 0 is the role header, the last line the separator.
		region, ok := rm.surface.HitTest(x, line-1)
		if !ok {
			return false
		}
		switch region.Kind {
		case markdown.RegionLink:
			if c.OnLinkTapped != nil {
				c.OnLinkTapped(region.URL)
			}
		case markdown.RegionCodeBlock:
			if c.OnCodeTapped != nil {
				c.OnCodeTapped(region.Code, region.Language)
			}
		}
		return true
	}
	return false
}

func roleLabel(role string) string {
	switch role {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "Assistant"
	default:
		return role
	}
}
