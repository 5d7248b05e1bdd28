// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package emit

import (
	"io"
	"strings"

	"github.com/pdiddy/noteconv/pkg/types"
)

// MarkdownEmitter renders the document model as lightweight markup.
// Styling channels Markdown cannot express (underline, colors, highlights)
// are dropped; structure, markers, and tables are preserved.
type MarkdownEmitter struct{}

func (e *MarkdownEmitter) Emit(doc *types.Document, w io.Writer) error {
	var b strings.Builder
	if doc.Title != "" {
		b.WriteString("# ")
		b.WriteString(doc.Title)
		b.WriteString("\n\n")
	}
	writeMarkdownUnits(&b, doc.Units)
	_, err := io.WriteString(w, b.String())
	return err
}

func writeMarkdownUnits(b *strings.Builder, units []types.RenderUnit) {
	for i := 0; i < len(units); i++ {
		switch u := units[i].(type) {
		case *types.Paragraph:
			if u.Kind == types.BlockCode {
				// Fold consecutive code paragraphs into one fence.
				j := i
				for j < len(units) {
					if p, ok := units[j].(*types.Paragraph); ok && p.Kind == types.BlockCode {
						j++
						continue
					}
					break
				}
				writeMarkdownCode(b, units[i:j])
				i = j - 1
				continue
			}
			writeMarkdownParagraph(b, u)
		case *types.Table:
			writeMarkdownTable(b, u)
		case *types.Image:
			b.WriteString("![" + u.Name + "](" + u.Name + ")\n\n")
		}
	}
}

func writeMarkdownParagraph(b *strings.Builder, p *types.Paragraph) {
	switch p.Kind {
	case types.BlockHeading:
		level := p.HeadingLevel
		if level > 6 {
			level = 6
		}
		b.WriteString(strings.Repeat("#", level) + " ")
		b.WriteString(markdownRuns(p.Runs))
		b.WriteString("\n\n")

	case types.BlockRule:
		b.WriteString("---\n\n")

	case types.BlockQuote, types.BlockCallout:
		b.WriteString("> ")
		b.WriteString(markdownRuns(p.Runs))
		b.WriteString("\n\n")

	default:
		if p.Indent > 0 {
			b.WriteString(strings.Repeat(IndentUnit, p.Indent))
		}
		if p.Marker != "" {
			b.WriteString(p.Marker + " ")
		}
		b.WriteString(markdownRuns(p.Runs))
		b.WriteString("\n\n")
	}
}

func writeMarkdownCode(b *strings.Builder, units []types.RenderUnit) {
	lang := ""
	if p, ok := units[0].(*types.Paragraph); ok {
		lang = p.Language
	}
	b.WriteString("```" + lang + "\n")
	for _, u := range units {
		p, ok := u.(*types.Paragraph)
		if !ok {
			continue
		}
		for _, r := range p.Runs {
			b.WriteString(r.Text)
		}
		b.WriteString("\n")
	}
	b.WriteString("```\n\n")
}

// markdownRuns renders styled runs inline. Bold, italic, strikethrough,
// code, and links survive; the rest of the palette does not exist in
// Markdown and is dropped.
func markdownRuns(runs []types.Run) string {
	var b strings.Builder
	for _, r := range runs {
		text := r.Text
		if text == "" {
			continue
		}
		if r.Mono {
			text = "`" + text + "`"
		}
		if r.Bold {
			text = "**" + text + "**"
		}
		if r.Italic {
			text = "*" + text + "*"
		}
		if r.Strike {
			text = "~~" + text + "~~"
		}
		if r.Link != "" {
			text = "[" + text + "](" + r.Link + ")"
		}
		b.WriteString(text)
	}
	return b.String()
}

// writeMarkdownTable renders a pipe table. The first grid row acts as the
// header. Covered positions render as empty cells; a merge origin's
// content lands in its origin position only.
func writeMarkdownTable(b *strings.Builder, t *types.Table) {
	for ri, row := range t.Rows {
		b.WriteString("|")
		for _, cell := range row {
			b.WriteString(" " + markdownCell(&cell) + " |")
		}
		b.WriteString("\n")
		if ri == 0 {
			b.WriteString("|")
			for range row {
				b.WriteString(" --- |")
			}
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
}

func markdownCell(c *types.Cell) string {
	if c.Covered {
		return ""
	}
	var parts []string
	for _, u := range c.Units {
		switch u := u.(type) {
		case *types.Paragraph:
			s := markdownRuns(u.Runs)
			if u.Marker != "" {
				s = u.Marker + " " + s
			}
			parts = append(parts, s)
		case *types.Table:
			// Pipe tables cannot nest; flatten to the inner cells' text.
			var inner []string
			for _, row := range u.Rows {
				for _, cell := range row {
					if s := markdownCell(&cell); s != "" {
						inner = append(inner, s)
					}
				}
			}
			parts = append(parts, strings.Join(inner, " / "))
		case *types.Image:
			parts = append(parts, "!["+u.Name+"]("+u.Name+")")
		}
	}
	return strings.Join(parts, "<br>")
}
