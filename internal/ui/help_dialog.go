package ui

import (
	"github.com/gdamore/tcell/v2"
)

type HelpDialog struct {
	visible bool
}

func NewHelpDialog() *HelpDialog {
	return &HelpDialog{}
}

func (h *HelpDialog) Show() {
	h.visible = true
}

func (h *HelpDialog) Hide() {
	h.visible = false
}

func (h *HelpDialog) IsVisible() bool {
	return h.visible
}

func (h *HelpDialog) Draw(s tcell.Screen) {
	if !h.visible {
		return
	}

	w, screenHeight := s.Size()
	helpLines := helpContent()

	maxLineWidth := 0
	for _, line := range helpLines {
		if len(line) > maxLineWidth {
			maxLineWidth = len(line)
		}
	}

	dialogWidth := maxLineWidth + 4
	if dialogWidth > w-4 {
		dialogWidth = w - 4
	}
	if dialogWidth < 40 {
		dialogWidth = 40
	}
	dialogHeight := len(helpLines) + 4
	if dialogHeight > screenHeight-2 {
		dialogHeight = screenHeight - 2
	}

	startX := (w - dialogWidth) / 2
	startY := (screenHeight - dialogHeight) / 2
	if startX < 1 {
		startX = 1
	}
	if startY < 1 {
		startY = 1
	}

	dialogStyle := tcell.StyleDefault.Background(tcell.ColorDarkBlue).Foreground(tcell.ColorWhite)
	for y := startY; y < startY+dialogHeight; y++ {
		for x := startX; x < startX+dialogWidth; x++ {
			s.SetContent(x, y, ' ', nil, dialogStyle)
		}
	}

	// Border
	for x := startX; x < startX+dialogWidth; x++ {
		switch x {
		case startX:
			s.SetContent(x, startY, '┌', nil, dialogStyle)
			s.SetContent(x, startY+dialogHeight-1, '└', nil, dialogStyle)
		case startX + dialogWidth - 1:
			s.SetContent(x, startY, '┐', nil, dialogStyle)
			s.SetContent(x, startY+dialogHeight-1, '┘', nil, dialogStyle)
		default:
			s.SetContent(x, startY, '─', nil, dialogStyle)
			s.SetContent(x, startY+dialogHeight-1, '─', nil, dialogStyle)
		}
	}
	for y := startY + 1; y < startY+dialogHeight-1; y++ {
		s.SetContent(startX, y, '│', nil, dialogStyle)
		s.SetContent(startX+dialogWidth-1, y, '│', nil, dialogStyle)
	}

	titleStyle := dialogStyle.Foreground(tcell.ColorYellow).Bold(true)
	title := "Help - Keybindings"
	drawText(s, startX+(dialogWidth-len(title))/2, startY+1, titleStyle, title)

	for i, line := range helpLines {
		y := startY + 3 + i
		if y >= startY+dialogHeight-1 {
			break
		}
		drawText(s, startX+2, y, dialogStyle, line)
	}
}

func (h *HelpDialog) HandleKey(ev *tcell.EventKey) bool {
	if !h.visible {
		return false
	}
	switch {
	case ev.Key() == tcell.KeyEscape:
		h.Hide()
	case ev.Key() == tcell.KeyRune && ev.Rune() == '?':
		h.Hide()
	}
	return true // consume all keys while visible
}

func helpContent() []string {
	return []string{
		"Navigation:",
		"  j / k         Scroll down/up one line",
		"  Ctrl+F / B    Page down/up",
		"  g / G         Go to top/bottom of transcript",
		"",
		"Transcript:",
		"  Click link    Show the resolved URL",
		"  Click code    Show the code block contents",
		"  t             Toggle light/dark theme",
		"",
		"Search:",
		"  /             Enter search mode",
		"  n / N         Jump to next/previous match",
		"  Esc           Leave search mode",
		"",
		"Other:",
		"  ?             Show this help dialog",
		"  q             Quit",
	}
}
