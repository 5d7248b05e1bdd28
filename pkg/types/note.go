// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared data types for the noteconv pipeline:
// the source note tree, the target-agnostic document model, and the
// configuration structures for each stage.
package types

// Node type tags as they appear in Box Note v2 JSON. The taxonomy is
// closed; anything else is skipped with a warning during conversion.
const (
	NodeParagraph      = "paragraph"
	NodeHeading        = "heading"
	NodeText           = "text"
	NodeBulletList     = "bullet_list"
	NodeOrderedList    = "ordered_list"
	NodeCheckList      = "check_list"
	NodeListItem       = "list_item"
	NodeCheckListItem  = "check_list_item"
	NodeImage          = "image"
	NodeTable          = "table"
	NodeTableRow       = "table_row"
	NodeTableCell      = "table_cell"
	NodeHorizontalRule = "horizontal_rule"
	NodeCallout        = "call_out_box"
	NodeCodeBlock      = "code_block"
	NodeBlockquote     = "blockquote"
)

// Mark type tags for inline style annotations.
const (
	MarkStrong        = "strong"
	MarkEm            = "em"
	MarkUnderline     = "underline"
	MarkStrikethrough = "strikethrough"
	MarkFontSize      = "font_size"
	MarkFontColor     = "font_color"
	MarkHighlight     = "highlight"
	MarkLink          = "link"
	MarkAlignment     = "alignment"
)

// Node is one element of the source note tree. Text nodes are leaves and
// carry no content; container nodes carry no direct text.
type Node struct {
	Type    string `json:"type"`
	Attrs   Attrs  `json:"attrs,omitempty"`
	Marks   []Mark `json:"marks,omitempty"`
	Content []Node `json:"content,omitempty"`
	Text    string `json:"text,omitempty"`
}

// Attrs carries the node attributes used by the converter. Unknown keys in
// the source JSON are dropped at decode time.
type Attrs struct {
	// Level is the heading level (1-based).
	Level int `json:"level,omitempty"`

	// Colspan and Rowspan are table cell extents; zero means 1.
	Colspan int `json:"colspan,omitempty"`
	Rowspan int `json:"rowspan,omitempty"`

	// Checked is the checklist item state.
	Checked bool `json:"checked,omitempty"`

	// Language is the code block language tag, kept as metadata only.
	Language string `json:"language,omitempty"`

	// FileName references an image in the note's resource store.
	FileName string `json:"fileName,omitempty"`

	// BackgroundColor and Emoji decorate callout boxes ("#rrggbb" hex).
	BackgroundColor string `json:"backgroundColor,omitempty"`
	Emoji           string `json:"emoji,omitempty"`

	// Start is the first ordinal of an ordered list; zero means 1.
	Start int `json:"start,omitempty"`

	// Colwidths holds declared table column widths, when present.
	Colwidths []int `json:"colwidths,omitempty"`
}

// Mark is a single inline style annotation on a text run. Marks combine
// freely: bold, italic, underline, strikethrough, size, color, highlight,
// and link are independent.
type Mark struct {
	Type  string    `json:"type"`
	Attrs MarkAttrs `json:"attrs,omitempty"`
}

// MarkAttrs carries the mark parameters.
type MarkAttrs struct {
	// Size is a font size in em units, e.g. "1.51em".
	Size string `json:"size,omitempty"`

	// Color is a "#rrggbb" hex color (font_color and highlight marks).
	Color string `json:"color,omitempty"`

	// Href is the link target.
	Href string `json:"href,omitempty"`

	// Alignment is one of left, center, right, justify.
	Alignment string `json:"alignment,omitempty"`
}

// Schema versions for the on-disk note format. Notes written before the
// August 2022 format change lack the "doc" wrapper and are rejected.
const (
	SchemaLegacy = 1
	SchemaV2     = 2
)

// Note is one loaded source note: its title (derived from the filename),
// the detected schema version, and the content tree root.
type Note struct {
	Title         string
	SchemaVersion int
	Doc           *Node
}
