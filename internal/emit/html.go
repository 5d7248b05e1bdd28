// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package emit

import (
	"encoding/base64"
	"fmt"
	"html"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/pdiddy/noteconv/pkg/types"
)

// HTMLEmitter renders the document model as a standalone HTML page with
// inline styles. Images embed as data URIs so the page needs no sidecar
// files.
type HTMLEmitter struct{}

func (e *HTMLEmitter) Emit(doc *types.Document, w io.Writer) error {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	b.WriteString("<title>" + html.EscapeString(doc.Title) + "</title>\n")
	b.WriteString("<style>\n")
	b.WriteString("body { font-family: Helvetica, Arial, sans-serif; max-width: 800px; margin: 2em auto; }\n")
	b.WriteString("table { border-collapse: collapse; }\n")
	b.WriteString("td { border: 1px solid #999; padding: 4px 8px; vertical-align: top; }\n")
	b.WriteString("blockquote { border-left: 3px solid #ccc; margin-left: 1em; padding-left: 1em; }\n")
	b.WriteString("pre { padding: 8px; }\n")
	b.WriteString("</style>\n</head>\n<body>\n")
	if doc.Title != "" {
		b.WriteString("<h1>" + html.EscapeString(doc.Title) + "</h1>\n")
	}
	writeHTMLUnits(&b, doc.Units)
	b.WriteString("</body>\n</html>\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func writeHTMLUnits(b *strings.Builder, units []types.RenderUnit) {
	for _, u := range units {
		switch u := u.(type) {
		case *types.Paragraph:
			writeHTMLParagraph(b, u)
		case *types.Table:
			writeHTMLTable(b, u)
		case *types.Image:
			writeHTMLImage(b, u)
		}
	}
}

func writeHTMLParagraph(b *strings.Builder, p *types.Paragraph) {
	switch p.Kind {
	case types.BlockHeading:
		level := p.HeadingLevel
		if level > 6 {
			level = 6
		}
		tag := "h" + strconv.Itoa(level)
		b.WriteString("<" + tag + ">" + htmlRuns(p.Runs) + "</" + tag + ">\n")

	case types.BlockRule:
		b.WriteString("<hr>\n")

	case types.BlockQuote:
		b.WriteString("<blockquote><p>" + htmlRuns(p.Runs) + "</p></blockquote>\n")

	case types.BlockCode:
		b.WriteString("<pre style=\"background-color: #" + p.Shading + "\"><code")
		if p.Language != "" {
			b.WriteString(" class=\"language-" + html.EscapeString(p.Language) + "\"")
		}
		b.WriteString(">")
		for _, r := range p.Runs {
			b.WriteString(html.EscapeString(r.Text))
		}
		b.WriteString("</code></pre>\n")

	case types.BlockCallout:
		b.WriteString("<div style=\"background-color: #" + p.Shading + "; padding: 8px 12px; border-radius: 4px\"><p>")
		b.WriteString(htmlRuns(p.Runs))
		b.WriteString("</p></div>\n")

	default:
		b.WriteString("<p")
		var styles []string
		if p.Alignment != "" && p.Alignment != types.AlignLeft {
			styles = append(styles, "text-align: "+string(p.Alignment))
		}
		if p.Indent > 0 {
			styles = append(styles, fmt.Sprintf("margin-left: %dem", p.Indent*2))
		}
		if len(styles) > 0 {
			b.WriteString(" style=\"" + strings.Join(styles, "; ") + "\"")
		}
		b.WriteString(">")
		if p.Marker != "" {
			b.WriteString(html.EscapeString(p.Marker) + " ")
		}
		b.WriteString(htmlRuns(p.Runs))
		b.WriteString("</p>\n")
	}
}

// htmlHighlights gives each palette member its CSS background color.
var htmlHighlights = map[types.Highlight]string{
	types.HighlightYellow:      "#ffff00",
	types.HighlightBrightGreen: "#00ff00",
	types.HighlightTurquoise:   "#00ffff",
	types.HighlightPink:        "#ff00ff",
	types.HighlightBlue:        "#0000ff",
	types.HighlightRed:         "#ff0000",
	types.HighlightDarkBlue:    "#000080",
	types.HighlightDarkCyan:    "#008080",
	types.HighlightDarkGreen:   "#008000",
	types.HighlightDarkMagenta: "#800080",
	types.HighlightDarkRed:     "#800000",
	types.HighlightDarkYellow:  "#808000",
	types.HighlightGray25:      "#c0c0c0",
	types.HighlightGray50:      "#808080",
	types.HighlightBlack:       "#000000",
}

func htmlRuns(runs []types.Run) string {
	var b strings.Builder
	for _, r := range runs {
		text := html.EscapeString(r.Text)

		var styles []string
		if r.Color != nil {
			styles = append(styles, "color: #"+r.Color.Hex())
		}
		if r.Highlight != types.HighlightNone {
			styles = append(styles, "background-color: "+htmlHighlights[r.Highlight])
		}
		if r.SizePt > 0 {
			styles = append(styles, fmt.Sprintf("font-size: %gpt", r.SizePt))
		}
		if len(styles) > 0 {
			text = "<span style=\"" + strings.Join(styles, "; ") + "\">" + text + "</span>"
		}

		if r.Mono {
			text = "<code>" + text + "</code>"
		}
		if r.Bold {
			text = "<strong>" + text + "</strong>"
		}
		if r.Italic {
			text = "<em>" + text + "</em>"
		}
		if r.Underline && r.Link == "" {
			text = "<u>" + text + "</u>"
		}
		if r.Strike {
			text = "<s>" + text + "</s>"
		}
		if r.Link != "" {
			text = "<a href=\"" + html.EscapeString(r.Link) + "\">" + text + "</a>"
		}
		b.WriteString(text)
	}
	return b.String()
}

// writeHTMLTable emits merge origins with rowspan/colspan attributes and
// skips covered positions entirely; the browser reflows around the spans.
func writeHTMLTable(b *strings.Builder, t *types.Table) {
	b.WriteString("<table>\n")
	for _, row := range t.Rows {
		b.WriteString("<tr>")
		for _, cell := range row {
			if cell.Covered {
				continue
			}
			b.WriteString("<td")
			if cell.RowSpan > 1 {
				b.WriteString(fmt.Sprintf(" rowspan=\"%d\"", cell.RowSpan))
			}
			if cell.ColSpan > 1 {
				b.WriteString(fmt.Sprintf(" colspan=\"%d\"", cell.ColSpan))
			}
			b.WriteString(">")
			writeHTMLUnits(b, cell.Units)
			b.WriteString("</td>")
		}
		b.WriteString("</tr>\n")
	}
	b.WriteString("</table>\n")
}

func writeHTMLImage(b *strings.Builder, img *types.Image) {
	mime := http.DetectContentType(img.Data)
	src := "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(img.Data)
	b.WriteString(fmt.Sprintf("<img src=\"%s\" width=\"%d\" height=\"%d\" alt=\"%s\">\n",
		src, img.Width, img.Height, html.EscapeString(img.Name)))
}
