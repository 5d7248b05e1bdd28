// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"strings"

	"github.com/pdiddy/noteconv/pkg/types"
)

// headingSizes maps source heading levels to point sizes. Levels beyond
// the deepest native heading clamp to its size and pick up indentation
// instead.
var headingSizes = map[int]float64{1: 28, 2: 20, 3: 16}

const maxHeadingLevel = 3

// codeShading is the fixed background fill for code blocks.
const codeShading = "ccdff7"

// linkColor is the font color applied to hyperlink runs.
var linkColor = types.RGB{R: 26, G: 116, B: 186}

// blockContext is the style context inherited from ancestor nodes. It is
// passed by value down the traversal, so every call sees an immutable
// snapshot and nothing leaks back up.
type blockContext struct {
	kind     types.BlockKind
	indent   int
	marker   string
	shading  string
	mono     bool
	strike   bool
	language string
}

// renderParagraph converts one paragraph node into a styled paragraph.
func (w *walker) renderParagraph(n *types.Node, ctx blockContext) *types.Paragraph {
	p := &types.Paragraph{
		Kind:      ctx.kind,
		Alignment: paragraphAlignment(n),
		Indent:    ctx.indent,
		Marker:    ctx.marker,
		Language:  ctx.language,
		Shading:   ctx.shading,
	}
	if p.Kind == "" {
		p.Kind = types.BlockBody
	}
	w.collectRuns(n.Content, ctx, &p.Runs)
	return p
}

// collectRuns appends one styled run per text node. Non-text descendants
// of a paragraph are unwrapped; unknown leaves are skipped with a warning.
func (w *walker) collectRuns(nodes []types.Node, ctx blockContext, runs *[]types.Run) {
	for i := range nodes {
		n := &nodes[i]
		switch {
		case n.Type == types.NodeText:
			*runs = append(*runs, makeRun(n, ctx))
		case len(n.Content) > 0:
			w.collectRuns(n.Content, ctx, runs)
		default:
			w.warnf(WarnUnsupportedNode, n.Type, "unrecognized inline node skipped")
		}
	}
}

// makeRun builds a styled run from a text node, resolving its marks.
// Marks combine freely; each channel is independent.
func makeRun(n *types.Node, ctx blockContext) types.Run {
	r := types.Run{
		Text:    n.Text,
		Mono:    ctx.mono,
		Strike:  ctx.strike,
		Shading: ctx.shading,
	}
	for _, m := range n.Marks {
		switch m.Type {
		case types.MarkStrong:
			r.Bold = true
		case types.MarkEm:
			r.Italic = true
		case types.MarkUnderline:
			r.Underline = true
		case types.MarkStrikethrough:
			r.Strike = true
		case types.MarkFontSize:
			r.SizePt = ptFromEm(m.Attrs.Size)
		case types.MarkFontColor:
			r.Color = resolveFontColor(m.Attrs.Color)
		case types.MarkHighlight:
			r.Highlight = resolveHighlight(m.Attrs.Color)
		case types.MarkLink:
			r.Link = m.Attrs.Href
			r.Underline = true
			c := linkColor
			r.Color = &c
		}
	}
	return r
}

// paragraphAlignment reads the alignment mark off a paragraph node.
func paragraphAlignment(n *types.Node) types.Alignment {
	for _, m := range n.Marks {
		if m.Type != types.MarkAlignment {
			continue
		}
		switch m.Attrs.Alignment {
		case "center":
			return types.AlignCenter
		case "right":
			return types.AlignRight
		case "justify":
			return types.AlignJustify
		}
	}
	return types.AlignLeft
}

// renderHeading converts a heading node. Levels past the native cap keep
// the deepest heading size and are distinguished by indentation.
func (w *walker) renderHeading(n *types.Node, ctx blockContext) *types.Paragraph {
	level := n.Attrs.Level
	if level < 1 {
		level = 1
	}
	size, ok := headingSizes[level]
	if !ok {
		size = headingSizes[maxHeadingLevel]
		ctx.indent += level - maxHeadingLevel
	}

	ctx.kind = types.BlockHeading
	p := w.renderParagraph(n, ctx)
	p.HeadingLevel = level
	for i := range p.Runs {
		p.Runs[i].SizePt = size
	}
	return p
}

// renderImage resolves image bytes and scales them to the page content
// width. A missing resource yields a visible placeholder paragraph and a
// warning; the rest of the document still converts.
func (w *walker) renderImage(n *types.Node, ctx blockContext) types.RenderUnit {
	name := n.Attrs.FileName
	if name == "" {
		w.warnf(WarnMissingResource, n.Type, "image node has no file name")
		return placeholderParagraph("MISSING IMAGE", ctx)
	}

	data, width, height, err := w.res.Resolve(name)
	if err != nil {
		w.warnf(WarnMissingResource, n.Type, "image "+name+": "+err.Error())
		return placeholderParagraph("MISSING IMAGE: "+name, ctx)
	}

	width, height = scaleToWidth(width, height, w.cfg.PageWidth)
	return &types.Image{Name: name, Data: data, Width: width, Height: height}
}

// scaleToWidth shrinks w×h so the width does not exceed max, preserving
// aspect ratio. Images already narrower than the page stay unscaled.
func scaleToWidth(w, h, max int) (int, int) {
	if w <= max || w <= 0 {
		return w, h
	}
	scaled := (h*max + w/2) / w
	return max, scaled
}

func placeholderParagraph(text string, ctx blockContext) *types.Paragraph {
	return &types.Paragraph{
		Kind:   types.BlockPlaceholder,
		Indent: ctx.indent,
		Runs:   []types.Run{{Text: text}},
	}
}

// renderCodeBlock converts a code block into monospace paragraphs on the
// fixed code shading. The language tag is carried as metadata only.
func (w *walker) renderCodeBlock(n *types.Node, ctx blockContext, sink *[]types.RenderUnit) {
	ctx.kind = types.BlockCode
	ctx.mono = true
	ctx.shading = codeShading
	ctx.language = n.Attrs.Language

	appended := false
	for i := range n.Content {
		child := &n.Content[i]
		if child.Type == types.NodeParagraph {
			*sink = append(*sink, w.renderParagraph(child, ctx))
			appended = true
		}
	}
	if !appended {
		// Bare text children, no paragraph wrapper.
		p := &types.Paragraph{Kind: types.BlockCode, Indent: ctx.indent, Language: ctx.language, Shading: ctx.shading}
		w.collectRuns(n.Content, ctx, &p.Runs)
		*sink = append(*sink, p)
	}
}

// renderCallout converts a callout box: its paragraphs carry the callout
// background fill, and the declared emoji leads the first paragraph.
func (w *walker) renderCallout(n *types.Node, ctx blockContext, sink *[]types.RenderUnit) error {
	ctx.kind = types.BlockCallout
	ctx.shading = strings.TrimPrefix(n.Attrs.BackgroundColor, "#")

	before := len(*sink)
	if err := w.walk(n.Content, ctx, sink); err != nil {
		return err
	}
	if emoji := n.Attrs.Emoji; emoji != "" && len(*sink) > before {
		if p, ok := (*sink)[before].(*types.Paragraph); ok {
			lead := types.Run{Text: emoji + "  ", Shading: ctx.shading}
			p.Runs = append([]types.Run{lead}, p.Runs...)
		}
	}
	return nil
}
