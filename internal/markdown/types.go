package markdown

// BlockKind identifies the structural type of a block
type BlockKind int

const (
	BlockParagraph BlockKind = iota
	BlockHeading
	BlockUnorderedListItem
	BlockOrderedListItem
	BlockBlockquote
	BlockCodeBlock
)

// Block is a structural unit of the document. Kind selects which payload
// fields are meaningful.
type Block struct {
	Kind BlockKind

	// Text is the raw inline text for every kind except BlockCodeBlock.
	Text string

	// Level is the heading level (1-6), set only for BlockHeading.
	Level int

	// Ordinal is the literal leading digit run of an ordered list item,
	// preserved verbatim (never renumbered).
	Ordinal string

	// Code and Language are set only for BlockCodeBlock. Code is captured
	// byte-for-byte between the fence lines.
	Code     string
	Language string
}

// SpanKind identifies the inline formatting of a span
type SpanKind int

const (
	SpanPlain SpanKind = iota
	SpanBold
	SpanItalic
	SpanInlineCode
	SpanLink
)

// Span is an inline-formatted run within a block's text. Spans never overlap,
// never nest, and together cover the block's inline text exactly.
type Span struct {
	Kind SpanKind

	// Text is the delimiter-stripped inner text (the display text for links).
	Text string

	// URL is set only for SpanLink. It is recorded as written, with no
	// validation; the host decides whether it can be opened.
	URL string
}
