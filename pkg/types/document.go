// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// RGB is a 24-bit color. Font colors pass through conversion as RGB;
// highlight colors are always resolved to a named palette member first.
type RGB struct {
	R, G, B uint8
}

// Hex returns the color as a lowercase "rrggbb" string (no leading '#').
func (c RGB) Hex() string {
	return fmt.Sprintf("%02x%02x%02x", c.R, c.G, c.B)
}

// ParseHex parses "#rrggbb" or "rrggbb" into an RGB value.
func ParseHex(s string) (RGB, error) {
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	if len(s) != 6 {
		return RGB{}, fmt.Errorf("invalid hex color %q", s)
	}
	var c RGB
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
		return RGB{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return c, nil
}

// Highlight is a member of the fixed highlight palette. The empty string
// means no highlight. Values are symbolic names understood by all emitters.
type Highlight string

const (
	HighlightNone        Highlight = ""
	HighlightYellow      Highlight = "yellow"
	HighlightBrightGreen Highlight = "brightGreen"
	HighlightTurquoise   Highlight = "turquoise"
	HighlightPink        Highlight = "pink"
	HighlightBlue        Highlight = "blue"
	HighlightRed         Highlight = "red"
	HighlightDarkBlue    Highlight = "darkBlue"
	HighlightDarkCyan    Highlight = "darkCyan"
	HighlightDarkGreen   Highlight = "darkGreen"
	HighlightDarkMagenta Highlight = "darkMagenta"
	HighlightDarkRed     Highlight = "darkRed"
	HighlightDarkYellow  Highlight = "darkYellow"
	HighlightGray25      Highlight = "lightGray"
	HighlightGray50      Highlight = "darkGray"
	HighlightBlack       Highlight = "black"
)

// Alignment is a paragraph alignment.
type Alignment string

const (
	AlignLeft    Alignment = "left"
	AlignCenter  Alignment = "center"
	AlignRight   Alignment = "right"
	AlignJustify Alignment = "justify"
)

// BlockKind distinguishes the visual treatment of a rendered paragraph.
type BlockKind string

const (
	BlockBody        BlockKind = "body"
	BlockHeading     BlockKind = "heading"
	BlockQuote       BlockKind = "quote"
	BlockCallout     BlockKind = "callout"
	BlockCode        BlockKind = "code"
	BlockRule        BlockKind = "rule"
	BlockPlaceholder BlockKind = "placeholder"
)

// Run is one styled run of text within a paragraph. All style channels are
// independent and freely combinable.
type Run struct {
	Text      string
	Bold      bool
	Italic    bool
	Underline bool
	Strike    bool
	Mono      bool

	// Color is the font color; nil means the default.
	Color *RGB

	// Highlight is the resolved highlight palette member, if any.
	Highlight Highlight

	// SizePt is the font size in points; zero means the default.
	SizePt float64

	// Link is a hyperlink target; empty for plain runs.
	Link string

	// Shading is a "rrggbb" run background fill (callout text), or "".
	Shading string
}

// RenderUnit is one item of the document model: a Paragraph, a Table, or
// an Image. The set is closed.
type RenderUnit interface {
	renderUnit()
}

// Paragraph is an ordered sequence of styled runs plus paragraph-level
// attributes.
type Paragraph struct {
	Runs      []Run
	Kind      BlockKind
	Alignment Alignment

	// Indent is the nesting depth in fixed indentation units.
	Indent int

	// Marker is the literal list marker ("1.", "a.", "•", "☑", ...) already
	// resolved by the numbering engine; empty for non-list paragraphs.
	Marker string

	// HeadingLevel is the source heading level for BlockHeading paragraphs.
	HeadingLevel int

	// Language is the code block language tag for BlockCode paragraphs.
	Language string

	// Shading is a "rrggbb" background fill (callouts, code blocks), or "".
	Shading string
}

func (*Paragraph) renderUnit() {}

// Cell is one table grid position. A merge origin carries content and its
// full extents; covered positions carry no content and Covered=true.
type Cell struct {
	Units   []RenderUnit
	RowSpan int
	ColSpan int
	Covered bool
}

// Table is a validated rectangular grid of cells.
type Table struct {
	Rows      [][]Cell
	Colwidths []int
}

func (*Table) renderUnit() {}

// Image is a resolved image placement with target dimensions already
// scaled to the page content width.
type Image struct {
	Name   string
	Data   []byte
	Width  int
	Height int
}

func (*Image) renderUnit() {}

// Document is the target-agnostic model produced by one conversion. It is
// built once by the walker, immutable afterward, and consumed by exactly
// one emitter.
type Document struct {
	Title string
	Units []RenderUnit
}
