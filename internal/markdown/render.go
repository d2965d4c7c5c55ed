package markdown

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// StyledRun is a contiguous piece of text with its resolved presentation.
type StyledRun struct {
	Text string

	Font       FontDescriptor
	Foreground tcell.Color
	Background tcell.Color // zero Color means "no explicit background"
	Underline  bool

	// Region is non-zero only for link text and code-block bodies.
	Region RegionID
}

// BlockLayout carries per-block layout metadata: which runs belong to the
// block, the left indent in cells, and how many blank lines follow it.
type BlockLayout struct {
	Kind         BlockKind
	RunStart     int // index into StyledDocument.Runs, inclusive
	RunEnd       int // exclusive
	Indent       int
	SpacingAfter int
}

// StyledDocument is the fully bound output of one Render call: runs in source
// order plus the block layout that groups them.
type StyledDocument struct {
	Runs   []StyledRun
	Blocks []BlockLayout

	// LineSpacing is the theme's extra blank lines between wrapped lines of
	// the same block.
	LineSpacing int
}

// Text markers emitted ahead of list and quote content.
const (
	bulletMarker = "• "
	quoteMarker  = "▌ "
)

// Render converts markdown source into a styled document and the registry of
// its interactive regions. It is a pure function: it allocates fresh output,
// touches no shared state, performs no I/O, and never fails — malformed
// constructs degrade to plain text. theme must be complete (see
// Theme.Validate); the presets always are.
func Render(source string, theme *Theme) (*StyledDocument, *RegionRegistry) {
	registry := newRegionRegistry()
	doc := &StyledDocument{LineSpacing: theme.LineSpacing}

	for _, block := range Scan(source) {
		start := len(doc.Runs)
		layout := BlockLayout{
			Kind:         block.Kind,
			RunStart:     start,
			SpacingAfter: theme.BlockSpacing,
		}

		switch block.Kind {
		case BlockParagraph, BlockHeading:
			bindSpans(doc, block, theme, registry)

		case BlockUnorderedListItem:
			doc.Runs = append(doc.Runs, StyledRun{
				Text:       bulletMarker,
				Font:       theme.Body,
				Foreground: theme.TextColor,
			})
			bindSpans(doc, block, theme, registry)
			layout.Indent = runewidth.StringWidth(bulletMarker)
			// Consecutive list items group together.
			layout.SpacingAfter = 0

		case BlockOrderedListItem:
			marker := block.Ordinal + ". "
			doc.Runs = append(doc.Runs, StyledRun{
				Text:       marker,
				Font:       theme.Body,
				Foreground: theme.TextColor,
			})
			bindSpans(doc, block, theme, registry)
			layout.Indent = runewidth.StringWidth(marker)
			layout.SpacingAfter = 0

		case BlockBlockquote:
			doc.Runs = append(doc.Runs, StyledRun{
				Text:       quoteMarker,
				Font:       theme.Body,
				Foreground: theme.QuoteBarColor,
				Background: theme.QuoteBackground,
			})
			bindSpans(doc, block, theme, registry)
			layout.Indent = runewidth.StringWidth(quoteMarker)

		case BlockCodeBlock:
			id := registry.registerCodeBlock(block.Code, block.Language)
			if block.Language != "" {
				doc.Runs = append(doc.Runs, StyledRun{
					Text:       block.Language,
					Font:       theme.Code,
					Foreground: theme.TextColor,
					Background: theme.CodeBackground,
				})
			}
			doc.Runs = append(doc.Runs, StyledRun{
				Text:       block.Code,
				Font:       theme.Code,
				Foreground: theme.CodeTextColor,
				Background: theme.CodeBackground,
				Region:     id,
			})
		}

		layout.RunEnd = len(doc.Runs)
		doc.Blocks = append(doc.Blocks, layout)
	}

	return doc, registry
}

// bindSpans resolves the block's inline text and appends one styled run per
// span. Role composition: family and size come from the enclosing block kind,
// weight and slant from the span kind.
func bindSpans(doc *StyledDocument, block Block, theme *Theme, registry *RegionRegistry) {
	base, fg := blockBase(block, theme)
	var bg tcell.Color
	if block.Kind == BlockBlockquote {
		bg = theme.QuoteBackground
	}

	for _, span := range ResolveInline(block.Text) {
		run := StyledRun{
			Text:       span.Text,
			Font:       base,
			Foreground: fg,
			Background: bg,
		}
		switch span.Kind {
		case SpanBold:
			run.Font.Weight = WeightBold
		case SpanItalic:
			run.Font.Slant = SlantItalic
		case SpanInlineCode:
			run.Font.Family = theme.Code.Family
			run.Foreground = theme.CodeTextColor
			run.Background = theme.CodeBackground
		case SpanLink:
			run.Foreground = theme.LinkColor
			run.Underline = true
			run.Region = registry.registerLink(span.URL)
		}
		doc.Runs = append(doc.Runs, run)
	}
}

// blockBase returns the base font and foreground for a block's content runs.
func blockBase(block Block, theme *Theme) (FontDescriptor, tcell.Color) {
	switch block.Kind {
	case BlockHeading:
		return theme.Heading[block.Level-1], theme.HeadingColor
	default:
		return theme.Body, theme.TextColor
	}
}
