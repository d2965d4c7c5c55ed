package ui

import (
	"github.com/dfell/chatmark/internal/markdown"
	"github.com/gdamore/tcell/v2"
)

// colorSearchHighlight marks search match positions on rendered lines.
var colorSearchHighlight = tcell.NewRGBColor(0xe0, 0xaf, 0x68) // #e0af68

// styleFor converts a styled run's presentation into a tcell style. Family
// and size have no cell-grid equivalent; weight, slant, underline, and the
// color roles carry over directly.
func styleFor(run markdown.StyledRun) tcell.Style {
	style := tcell.StyleDefault.Foreground(run.Foreground)
	if run.Background.Valid() {
		style = style.Background(run.Background)
	}
	if run.Font.Weight == markdown.WeightBold {
		style = style.Bold(true)
	}
	if run.Font.Slant == markdown.SlantItalic {
		style = style.Italic(true)
	}
	if run.Underline {
		style = style.Underline(true)
	}
	return style
}
