package markdown

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// FontWeight selects the stroke weight of a font role
type FontWeight int

const (
	WeightRegular FontWeight = iota
	WeightBold
)

// FontSlant selects the slant of a font role
type FontSlant int

const (
	SlantUpright FontSlant = iota
	SlantItalic
)

// FontDescriptor describes the font for one role. Terminal hosts map Weight
// and Slant onto cell attributes and ignore Family/Size; pixel-based hosts use
// all four.
type FontDescriptor struct {
	Family string
	Size   float64
	Weight FontWeight
	Slant  FontSlant
}

func (f FontDescriptor) isZero() bool {
	return f.Family == "" && f.Size == 0 && f.Weight == WeightRegular && f.Slant == SlantUpright
}

// Theme supplies every font, color, and spacing value the renderer needs.
// Themes are immutable after construction and safe to share across concurrent
// Render calls.
type Theme struct {
	// Fonts by role. Heading is indexed by level-1.
	Body    FontDescriptor
	Bold    FontDescriptor
	Italic  FontDescriptor
	Code    FontDescriptor
	Heading [6]FontDescriptor

	// Colors by role.
	TextColor       tcell.Color
	HeadingColor    tcell.Color
	LinkColor       tcell.Color
	CodeTextColor   tcell.Color
	CodeBackground  tcell.Color
	QuoteBackground tcell.Color
	QuoteBarColor   tcell.Color

	// Spacing in line units.
	LineSpacing  int
	BlockSpacing int
}

// TokyoNight palette shared by the dark preset (same palette the rest of the
// UI draws from).
var (
	darkBg    = hexColor("#1a1b26")
	darkFg    = hexColor("#c0caf5")
	darkBlue  = hexColor("#7aa2f7")
	darkCyan  = hexColor("#7dcfff")
	darkGreen = hexColor("#9ece6a")

	lightBg   = hexColor("#e1e2e7")
	lightFg   = hexColor("#3760bf")
	lightText = hexColor("#343b58")
	lightTeal = hexColor("#166775")
)

// hexColor converts a hex literal to a tcell color. Panics on a malformed
// literal, which can only happen with a bad in-package constant.
func hexColor(hex string) tcell.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		panic(fmt.Sprintf("bad palette literal %q: %v", hex, err))
	}
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// blendToward mixes base toward accent by t in Lab space. Used to derive the
// quote and code backgrounds from each preset's base background so they stay
// legible in both presets.
func blendToward(base, accent tcell.Color, t float64) tcell.Color {
	br, bg, bb := base.RGB()
	ar, ag, ab := accent.RGB()
	from := colorful.Color{R: float64(br) / 255, G: float64(bg) / 255, B: float64(bb) / 255}
	to := colorful.Color{R: float64(ar) / 255, G: float64(ag) / 255, B: float64(ab) / 255}
	mixed := from.BlendLab(to, t).Clamped()
	r, g, b := mixed.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func defaultFonts() (body, bold, italic, code FontDescriptor, heading [6]FontDescriptor) {
	body = FontDescriptor{Family: "sans-serif", Size: 15}
	bold = FontDescriptor{Family: "sans-serif", Size: 15, Weight: WeightBold}
	italic = FontDescriptor{Family: "sans-serif", Size: 15, Slant: SlantItalic}
	code = FontDescriptor{Family: "monospace", Size: 14}

	// Sizes non-increasing with level; level 1 is largest.
	sizes := [6]float64{28, 24, 20, 18, 16, 15}
	for i, size := range sizes {
		heading[i] = FontDescriptor{Family: "sans-serif", Size: size, Weight: WeightBold}
	}
	return body, bold, italic, code, heading
}

// Dark returns the dark preset (TokyoNight).
func Dark() *Theme {
	t := &Theme{
		TextColor:       darkFg,
		HeadingColor:    darkBlue,
		LinkColor:       darkCyan,
		CodeTextColor:   darkGreen,
		CodeBackground:  blendToward(darkBg, darkFg, 0.08),
		QuoteBackground: blendToward(darkBg, darkBlue, 0.12),
		QuoteBarColor:   darkBlue,
		LineSpacing:     0,
		BlockSpacing:    1,
	}
	t.Body, t.Bold, t.Italic, t.Code, t.Heading = defaultFonts()
	return t
}

// Light returns the light preset. Fonts and spacing match the dark preset;
// only the color roles differ.
func Light() *Theme {
	t := &Theme{
		TextColor:       lightText,
		HeadingColor:    lightFg,
		LinkColor:       lightTeal,
		CodeTextColor:   lightFg,
		CodeBackground:  blendToward(lightBg, lightText, 0.08),
		QuoteBackground: blendToward(lightBg, lightFg, 0.12),
		QuoteBarColor:   lightFg,
		LineSpacing:     0,
		BlockSpacing:    1,
	}
	t.Body, t.Bold, t.Italic, t.Code, t.Heading = defaultFonts()
	return t
}

// New builds a theme from overrides, filling every zero-valued role from the
// dark preset's defaults, and validates the result.
func New(overrides Theme) (*Theme, error) {
	t := overrides
	def := Dark()

	if t.Body.isZero() {
		t.Body = def.Body
	}
	if t.Bold.isZero() {
		t.Bold = def.Bold
	}
	if t.Italic.isZero() {
		t.Italic = def.Italic
	}
	if t.Code.isZero() {
		t.Code = def.Code
	}
	for i := range t.Heading {
		if t.Heading[i].isZero() {
			t.Heading[i] = def.Heading[i]
		}
	}
	if !t.TextColor.Valid() {
		t.TextColor = def.TextColor
	}
	if !t.HeadingColor.Valid() {
		t.HeadingColor = def.HeadingColor
	}
	if !t.LinkColor.Valid() {
		t.LinkColor = def.LinkColor
	}
	if !t.CodeTextColor.Valid() {
		t.CodeTextColor = def.CodeTextColor
	}
	if !t.CodeBackground.Valid() {
		t.CodeBackground = def.CodeBackground
	}
	if !t.QuoteBackground.Valid() {
		t.QuoteBackground = def.QuoteBackground
	}
	if !t.QuoteBarColor.Valid() {
		t.QuoteBarColor = def.QuoteBarColor
	}
	if t.BlockSpacing == 0 {
		t.BlockSpacing = def.BlockSpacing
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Validate reports the first missing mandatory role mapping. Themes built by
// New, Dark, or Light always validate; hand-assembled themes should be checked
// once before first use, since Render assumes a complete theme.
func (t *Theme) Validate() error {
	fonts := map[string]FontDescriptor{
		"body": t.Body, "bold": t.Bold, "italic": t.Italic, "code": t.Code,
	}
	for role, f := range fonts {
		if f.Family == "" || f.Size <= 0 {
			return fmt.Errorf("theme: font role %q is incomplete", role)
		}
	}
	for i, f := range t.Heading {
		if f.Family == "" || f.Size <= 0 {
			return fmt.Errorf("theme: font role \"heading-%d\" is incomplete", i+1)
		}
		if i > 0 && f.Size > t.Heading[i-1].Size {
			return fmt.Errorf("theme: heading-%d size exceeds heading-%d", i+1, i)
		}
	}
	colors := map[string]tcell.Color{
		"text": t.TextColor, "heading": t.HeadingColor, "link": t.LinkColor,
		"code-text": t.CodeTextColor, "code-background": t.CodeBackground,
		"quote-background": t.QuoteBackground, "quote-bar": t.QuoteBarColor,
	}
	for role, c := range colors {
		if !c.Valid() {
			return fmt.Errorf("theme: color role %q is unset", role)
		}
	}
	return nil
}
