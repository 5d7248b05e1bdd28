// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package emit

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/pdiddy/noteconv/pkg/types"
)

func emitHTML(t *testing.T, doc *types.Document) *goquery.Document {
	t.Helper()
	var b strings.Builder
	if err := (&HTMLEmitter{}).Emit(doc, &b); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	q, err := goquery.NewDocumentFromReader(strings.NewReader(b.String()))
	if err != nil {
		t.Fatalf("parsing emitted HTML: %v", err)
	}
	return q
}

func TestHTMLTitle(t *testing.T) {
	q := emitHTML(t, &types.Document{Title: "Roadmap <draft>"})
	if got := q.Find("head title").Text(); got != "Roadmap <draft>" {
		t.Errorf("title = %q", got)
	}
	if got := q.Find("body h1").Text(); got != "Roadmap <draft>" {
		t.Errorf("h1 = %q", got)
	}
}

func TestHTMLHeadings(t *testing.T) {
	q := emitHTML(t, &types.Document{Units: []types.RenderUnit{
		&types.Paragraph{Kind: types.BlockHeading, HeadingLevel: 3, Runs: []types.Run{run("sub")}},
		&types.Paragraph{Kind: types.BlockHeading, HeadingLevel: 8, Runs: []types.Run{run("deep")}},
	}})
	if got := q.Find("h3").Text(); got != "sub" {
		t.Errorf("h3 = %q", got)
	}
	if got := q.Find("h6").Text(); got != "deep" {
		t.Errorf("level past 6 should render as h6, got h6 = %q", got)
	}
}

func TestHTMLRunStyles(t *testing.T) {
	q := emitHTML(t, &types.Document{Units: []types.RenderUnit{
		bodyPara(
			types.Run{Text: "b", Bold: true},
			types.Run{Text: "i", Italic: true},
			types.Run{Text: "u", Underline: true},
			types.Run{Text: "s", Strike: true},
			types.Run{Text: "m", Mono: true},
		),
	}})
	for _, tt := range []struct{ sel, want string }{
		{"strong", "b"}, {"em", "i"}, {"u", "u"}, {"s", "s"}, {"code", "m"},
	} {
		if got := q.Find("p " + tt.sel).Text(); got != tt.want {
			t.Errorf("%s = %q, want %q", tt.sel, got, tt.want)
		}
	}
}

func TestHTMLColorsAndSize(t *testing.T) {
	q := emitHTML(t, &types.Document{Units: []types.RenderUnit{
		bodyPara(types.Run{
			Text:      "loud",
			Color:     &types.RGB{R: 0x33, G: 0x66, B: 0x99},
			Highlight: types.HighlightTurquoise,
			SizePt:    18,
		}),
	}})
	span := q.Find("p span")
	style, _ := span.Attr("style")
	for _, want := range []string{"color: #336699", "background-color: #00ffff", "font-size: 18pt"} {
		if !strings.Contains(style, want) {
			t.Errorf("span style %q missing %q", style, want)
		}
	}
}

func TestHTMLLink(t *testing.T) {
	q := emitHTML(t, &types.Document{Units: []types.RenderUnit{
		bodyPara(types.Run{Text: "docs", Link: "https://example.com/a?b=1", Underline: true}),
	}})
	a := q.Find("p a")
	if href, _ := a.Attr("href"); href != "https://example.com/a?b=1" {
		t.Errorf("href = %q", href)
	}
	if a.Text() != "docs" {
		t.Errorf("link text = %q", a.Text())
	}
	// Links rely on the browser's default underline, no explicit <u>.
	if q.Find("p u").Length() != 0 {
		t.Errorf("link run should not nest an explicit underline element")
	}
}

func TestHTMLParagraphStyling(t *testing.T) {
	q := emitHTML(t, &types.Document{Units: []types.RenderUnit{
		&types.Paragraph{Kind: types.BlockBody, Alignment: types.AlignCenter, Runs: []types.Run{run("mid")}},
		&types.Paragraph{Kind: types.BlockBody, Indent: 2, Marker: "a.", Runs: []types.Run{run("item")}},
	}})

	first := q.Find("p").First()
	if style, _ := first.Attr("style"); !strings.Contains(style, "text-align: center") {
		t.Errorf("centered paragraph style = %q", style)
	}

	second := q.Find("p").Eq(1)
	if style, _ := second.Attr("style"); !strings.Contains(style, "margin-left: 4em") {
		t.Errorf("indented paragraph style = %q", style)
	}
	if text := second.Text(); !strings.HasPrefix(text, "a. ") {
		t.Errorf("marker not prepended: %q", text)
	}
}

func TestHTMLQuoteCalloutCode(t *testing.T) {
	q := emitHTML(t, &types.Document{Units: []types.RenderUnit{
		&types.Paragraph{Kind: types.BlockQuote, Runs: []types.Run{run("quoted")}},
		&types.Paragraph{Kind: types.BlockCallout, Shading: "d4f3e6", Runs: []types.Run{run("note")}},
		&types.Paragraph{Kind: types.BlockCode, Language: "go", Shading: "ccdff7", Runs: []types.Run{run("x := 1")}},
		&types.Paragraph{Kind: types.BlockRule},
	}})

	if got := q.Find("blockquote p").Text(); got != "quoted" {
		t.Errorf("blockquote = %q", got)
	}

	callout := q.Find("div p")
	if callout.Text() != "note" {
		t.Errorf("callout = %q", callout.Text())
	}
	if style, _ := callout.Parent().Attr("style"); !strings.Contains(style, "#d4f3e6") {
		t.Errorf("callout background missing: %q", style)
	}

	code := q.Find("pre code")
	if code.Text() != "x := 1" {
		t.Errorf("code = %q", code.Text())
	}
	if class, _ := code.Attr("class"); class != "language-go" {
		t.Errorf("code class = %q", class)
	}

	if q.Find("hr").Length() != 1 {
		t.Errorf("horizontal rule missing")
	}
}

func TestHTMLTableSpans(t *testing.T) {
	tbl := &types.Table{Rows: [][]types.Cell{
		{
			{Units: []types.RenderUnit{bodyPara(run("wide"))}, RowSpan: 2, ColSpan: 2},
			{Covered: true},
			{Units: []types.RenderUnit{bodyPara(run("right"))}, RowSpan: 1, ColSpan: 1},
		},
		{
			{Covered: true},
			{Covered: true},
			{Units: []types.RenderUnit{bodyPara(run("below"))}, RowSpan: 1, ColSpan: 1},
		},
	}}
	q := emitHTML(t, &types.Document{Units: []types.RenderUnit{tbl}})

	rows := q.Find("tr")
	if rows.Length() != 2 {
		t.Fatalf("tr count = %d, want 2", rows.Length())
	}
	// Covered positions are skipped, so the first row holds two cells and
	// the second just one.
	if got := rows.First().Find("td").Length(); got != 2 {
		t.Errorf("row 0 td count = %d, want 2", got)
	}
	if got := rows.Eq(1).Find("td").Length(); got != 1 {
		t.Errorf("row 1 td count = %d, want 1", got)
	}

	origin := rows.First().Find("td").First()
	if rs, _ := origin.Attr("rowspan"); rs != "2" {
		t.Errorf("rowspan = %q, want 2", rs)
	}
	if cs, _ := origin.Attr("colspan"); cs != "2" {
		t.Errorf("colspan = %q, want 2", cs)
	}
}

func TestHTMLImageDataURI(t *testing.T) {
	// Minimal PNG magic so content sniffing identifies the type.
	data := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}
	q := emitHTML(t, &types.Document{Units: []types.RenderUnit{
		&types.Image{Name: "chart.png", Data: data, Width: 600, Height: 450},
	}})

	img := q.Find("img")
	src, _ := img.Attr("src")
	if !strings.HasPrefix(src, "data:image/png;base64,") {
		t.Errorf("src = %q, want png data URI", src)
	}
	if w, _ := img.Attr("width"); w != "600" {
		t.Errorf("width = %q", w)
	}
	if alt, _ := img.Attr("alt"); alt != "chart.png" {
		t.Errorf("alt = %q", alt)
	}
}

func TestHTMLEscaping(t *testing.T) {
	q := emitHTML(t, &types.Document{Units: []types.RenderUnit{
		bodyPara(run("a < b & c > d")),
	}})
	if got := q.Find("p").Text(); got != "a < b & c > d" {
		t.Errorf("round-tripped text = %q", got)
	}
}
