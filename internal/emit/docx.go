// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package emit

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pdiddy/noteconv/pkg/types"
)

// DocxEmitter renders the document model as a minimal WordprocessingML
// package. The XML is written directly: the features this converter needs
// (vertical merges, run shading, hyperlink relationships) sit below what
// high-level docx writers expose.
type DocxEmitter struct{}

// emuPerPoint converts page units (points) to English Metric Units.
const emuPerPoint = 12700

// docxHighlights maps palette members to the w:highlight values Word
// accepts.
var docxHighlights = map[types.Highlight]string{
	types.HighlightYellow:      "yellow",
	types.HighlightBrightGreen: "green",
	types.HighlightTurquoise:   "cyan",
	types.HighlightPink:        "magenta",
	types.HighlightBlue:        "blue",
	types.HighlightRed:         "red",
	types.HighlightDarkBlue:    "darkBlue",
	types.HighlightDarkCyan:    "darkCyan",
	types.HighlightDarkGreen:   "darkGreen",
	types.HighlightDarkMagenta: "darkMagenta",
	types.HighlightDarkRed:     "darkRed",
	types.HighlightDarkYellow:  "darkYellow",
	types.HighlightGray25:      "lightGray",
	types.HighlightGray50:      "darkGray",
	types.HighlightBlack:       "black",
}

// docxRel is one entry in word/_rels/document.xml.rels.
type docxRel struct {
	id       string
	relType  string
	target   string
	external bool
}

// docxMedia is one embedded image part.
type docxMedia struct {
	name string
	data []byte
}

// docxBuilder accumulates the document body and its relationships.
type docxBuilder struct {
	body  strings.Builder
	rels  []docxRel
	media []docxMedia
}

const (
	relHyperlink = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink"
	relImage     = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"
)

func (d *docxBuilder) addRel(relType, target string, external bool) string {
	id := fmt.Sprintf("rId%d", len(d.rels)+1)
	d.rels = append(d.rels, docxRel{id: id, relType: relType, target: target, external: external})
	return id
}

func (e *DocxEmitter) Emit(doc *types.Document, w io.Writer) error {
	d := &docxBuilder{}

	if doc.Title != "" {
		title := &types.Paragraph{Runs: []types.Run{{Text: doc.Title, SizePt: 32}}}
		d.writeParagraph(title)
	}
	d.writeUnits(doc.Units)

	zw := zip.NewWriter(w)
	parts := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", d.contentTypes()},
		{"_rels/.rels", packageRels},
		{"word/document.xml", d.documentXML()},
		{"word/_rels/document.xml.rels", d.documentRels()},
	}
	for _, p := range parts {
		f, err := zw.Create(p.name)
		if err != nil {
			return fmt.Errorf("creating %s: %w", p.name, err)
		}
		if _, err := io.WriteString(f, p.content); err != nil {
			return fmt.Errorf("writing %s: %w", p.name, err)
		}
	}
	for _, m := range d.media {
		f, err := zw.Create("word/media/" + m.name)
		if err != nil {
			return fmt.Errorf("creating media %s: %w", m.name, err)
		}
		if _, err := f.Write(m.data); err != nil {
			return fmt.Errorf("writing media %s: %w", m.name, err)
		}
	}
	return zw.Close()
}

const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

const packageRels = xmlHeader +
	`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
	`</Relationships>`

func (d *docxBuilder) contentTypes() string {
	return xmlHeader +
		`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
		`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
		`<Default Extension="xml" ContentType="application/xml"/>` +
		`<Default Extension="png" ContentType="image/png"/>` +
		`<Default Extension="jpeg" ContentType="image/jpeg"/>` +
		`<Default Extension="gif" ContentType="image/gif"/>` +
		`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
		`</Types>`
}

func (d *docxBuilder) documentXML() string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<w:document` +
		` xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"` +
		` xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"` +
		` xmlns:wp="http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"` +
		` xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"` +
		` xmlns:pic="http://schemas.openxmlformats.org/drawingml/2006/picture">`)
	b.WriteString("<w:body>")
	b.WriteString(d.body.String())
	b.WriteString("</w:body></w:document>")
	return b.String()
}

func (d *docxBuilder) documentRels() string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	for _, r := range d.rels {
		b.WriteString(`<Relationship Id="` + r.id + `" Type="` + r.relType + `" Target="` + xmlEscape(r.target) + `"`)
		if r.external {
			b.WriteString(` TargetMode="External"`)
		}
		b.WriteString("/>")
	}
	b.WriteString("</Relationships>")
	return b.String()
}

func (d *docxBuilder) writeUnits(units []types.RenderUnit) {
	for _, u := range units {
		switch u := u.(type) {
		case *types.Paragraph:
			d.writeParagraph(u)
		case *types.Table:
			d.writeTable(u)
		case *types.Image:
			d.writeImage(u)
		}
	}
}

func (d *docxBuilder) writeParagraph(p *types.Paragraph) {
	d.body.WriteString("<w:p>")

	var pPr strings.Builder
	if p.Kind == types.BlockRule {
		pPr.WriteString(`<w:pBdr><w:bottom w:val="single" w:sz="6" w:space="1" w:color="auto"/></w:pBdr>`)
	}
	if p.Shading != "" {
		pPr.WriteString(`<w:shd w:val="clear" w:color="auto" w:fill="` + p.Shading + `"/>`)
	}
	switch p.Alignment {
	case types.AlignCenter:
		pPr.WriteString(`<w:jc w:val="center"/>`)
	case types.AlignRight:
		pPr.WriteString(`<w:jc w:val="right"/>`)
	case types.AlignJustify:
		pPr.WriteString(`<w:jc w:val="both"/>`)
	}
	if pPr.Len() > 0 {
		d.body.WriteString("<w:pPr>" + pPr.String() + "</w:pPr>")
	}

	// Indentation and markers are literal runs so alignment stays uniform
	// across marker styles.
	if p.Indent > 0 {
		d.writeRun(types.Run{Text: strings.Repeat(IndentUnit, p.Indent)})
	}
	if p.Marker != "" {
		d.writeRun(types.Run{Text: p.Marker + " "})
	}
	for _, r := range p.Runs {
		if r.Link != "" {
			id := d.addRel(relHyperlink, r.Link, true)
			d.body.WriteString(`<w:hyperlink r:id="` + id + `">`)
			d.writeRun(r)
			d.body.WriteString("</w:hyperlink>")
			continue
		}
		d.writeRun(r)
	}
	d.body.WriteString("</w:p>")
}

func (d *docxBuilder) writeRun(r types.Run) {
	d.body.WriteString("<w:r>")

	var rPr strings.Builder
	font := "Helvetica"
	if r.Mono {
		font = "Courier"
	}
	rPr.WriteString(`<w:rFonts w:ascii="` + font + `" w:hAnsi="` + font + `"/>`)
	if r.Bold {
		rPr.WriteString("<w:b/>")
	}
	if r.Italic {
		rPr.WriteString("<w:i/>")
	}
	if r.Strike {
		rPr.WriteString("<w:strike/>")
	}
	if r.Underline {
		rPr.WriteString(`<w:u w:val="single"/>`)
	}
	if r.Color != nil {
		rPr.WriteString(`<w:color w:val="` + strings.ToUpper(r.Color.Hex()) + `"/>`)
	}
	if r.Highlight != types.HighlightNone {
		rPr.WriteString(`<w:highlight w:val="` + docxHighlights[r.Highlight] + `"/>`)
	}
	if r.Shading != "" {
		rPr.WriteString(`<w:shd w:val="clear" w:color="auto" w:fill="` + r.Shading + `"/>`)
	}
	if r.SizePt > 0 {
		rPr.WriteString(fmt.Sprintf(`<w:sz w:val="%d"/>`, int(r.SizePt*2)))
	}
	d.body.WriteString("<w:rPr>" + rPr.String() + "</w:rPr>")

	d.body.WriteString(`<w:t xml:space="preserve">` + xmlEscape(r.Text) + `</w:t>`)
	d.body.WriteString("</w:r>")
}

// writeTable emits the one-merge-origin-plus-continuation model Word
// uses: a horizontal merge is a gridSpan on the origin (covered positions
// to its right are not emitted), and a vertical merge is a vMerge restart
// on the origin with vMerge continuation cells in the rows below.
func (d *docxBuilder) writeTable(t *types.Table) {
	if len(t.Rows) == 0 {
		return
	}
	cols := len(t.Rows[0])

	d.body.WriteString("<w:tbl><w:tblPr><w:tblStyle w:val=\"TableGrid\"/>" +
		"<w:tblBorders>" +
		`<w:top w:val="single" w:sz="4" w:space="0" w:color="auto"/>` +
		`<w:left w:val="single" w:sz="4" w:space="0" w:color="auto"/>` +
		`<w:bottom w:val="single" w:sz="4" w:space="0" w:color="auto"/>` +
		`<w:right w:val="single" w:sz="4" w:space="0" w:color="auto"/>` +
		`<w:insideH w:val="single" w:sz="4" w:space="0" w:color="auto"/>` +
		`<w:insideV w:val="single" w:sz="4" w:space="0" w:color="auto"/>` +
		"</w:tblBorders></w:tblPr>")
	d.body.WriteString("<w:tblGrid>")
	for c := 0; c < cols; c++ {
		d.body.WriteString("<w:gridCol/>")
	}
	d.body.WriteString("</w:tblGrid>")

	origins := originGrid(t)
	for r, row := range t.Rows {
		d.body.WriteString("<w:tr>")
		for c := 0; c < len(row); {
			cell := row[c]
			if !cell.Covered {
				d.writeCell(cell.Units, cell.ColSpan, vMergeRestart(cell.RowSpan))
				c += spanWidth(cell.ColSpan)
				continue
			}
			origin := origins[r][c]
			if origin != nil && origin.row < r && origin.col == c {
				// Continuation row of a vertical merge.
				d.writeCell(nil, origin.colSpan, `<w:vMerge/>`)
				c += spanWidth(origin.colSpan)
				continue
			}
			// Absorbed by a gridSpan to the left; nothing to emit.
			c++
		}
		d.body.WriteString("</w:tr>")
	}
	d.body.WriteString("</w:tbl>")

	// Word requires a paragraph between a table and whatever follows.
	d.body.WriteString("<w:p/>")
}

func (d *docxBuilder) writeCell(units []types.RenderUnit, colSpan int, vMerge string) {
	d.body.WriteString("<w:tc><w:tcPr>")
	if spanWidth(colSpan) > 1 {
		d.body.WriteString(fmt.Sprintf(`<w:gridSpan w:val="%d"/>`, colSpan))
	}
	d.body.WriteString(vMerge)
	d.body.WriteString("</w:tcPr>")

	before := d.body.Len()
	d.writeUnits(units)
	if d.body.Len() == before {
		// A table cell must contain at least one paragraph.
		d.body.WriteString("<w:p/>")
	}
	d.body.WriteString("</w:tc>")
}

func vMergeRestart(rowSpan int) string {
	if rowSpan > 1 {
		return `<w:vMerge w:val="restart"/>`
	}
	return ""
}

func spanWidth(colSpan int) int {
	if colSpan < 1 {
		return 1
	}
	return colSpan
}

// originRef locates the merge origin covering a grid position.
type originRef struct {
	row, col int
	colSpan  int
}

func originGrid(t *types.Table) [][]*originRef {
	grid := make([][]*originRef, len(t.Rows))
	for r := range grid {
		grid[r] = make([]*originRef, len(t.Rows[r]))
	}
	for r, row := range t.Rows {
		for c, cell := range row {
			if cell.Covered {
				continue
			}
			ref := &originRef{row: r, col: c, colSpan: spanWidth(cell.ColSpan)}
			for rr := r; rr < r+spanWidth(cell.RowSpan) && rr < len(grid); rr++ {
				for cc := c; cc < c+ref.colSpan && cc < len(grid[rr]); cc++ {
					grid[rr][cc] = ref
				}
			}
		}
	}
	return grid
}

func (d *docxBuilder) writeImage(img *types.Image) {
	name := fmt.Sprintf("image%d%s", len(d.media)+1, mediaExt(img.Data))
	d.media = append(d.media, docxMedia{name: name, data: img.Data})
	id := d.addRel(relImage, "media/"+name, false)

	cx := int64(img.Width) * emuPerPoint
	cy := int64(img.Height) * emuPerPoint
	num := len(d.media)

	d.body.WriteString("<w:p><w:r><w:drawing>")
	d.body.WriteString(fmt.Sprintf(`<wp:inline distT="0" distB="0" distL="0" distR="0">`+
		`<wp:extent cx="%d" cy="%d"/>`+
		`<wp:docPr id="%d" name="%s"/>`, cx, cy, num, xmlEscape(img.Name)))
	d.body.WriteString(`<a:graphic><a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/picture">`)
	d.body.WriteString("<pic:pic>")
	d.body.WriteString(fmt.Sprintf(`<pic:nvPicPr><pic:cNvPr id="%d" name="%s"/><pic:cNvPicPr/></pic:nvPicPr>`,
		num, xmlEscape(img.Name)))
	d.body.WriteString(`<pic:blipFill><a:blip r:embed="` + id + `"/><a:stretch><a:fillRect/></a:stretch></pic:blipFill>`)
	d.body.WriteString(fmt.Sprintf(`<pic:spPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="%d" cy="%d"/></a:xfrm>`+
		`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom></pic:spPr>`, cx, cy))
	d.body.WriteString("</pic:pic></a:graphicData></a:graphic></wp:inline></w:drawing></w:r></w:p>")
}

func mediaExt(data []byte) string {
	switch http.DetectContentType(data) {
	case "image/jpeg":
		return ".jpeg"
	case "image/gif":
		return ".gif"
	default:
		return ".png"
	}
}

func xmlEscape(s string) string {
	var b strings.Builder
	if err := xml.EscapeText(&b, []byte(s)); err != nil {
		return s
	}
	return b.String()
}
