// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import "github.com/pdiddy/noteconv/pkg/types"

// walker drives one conversion: it traverses the note tree depth-first in
// document order, dispatches container nodes to the list and table
// machinery, leaf blocks to the renderer, and appends every produced
// render unit to the sink in order. All state is per-conversion; nothing
// is shared between walkers.
type walker struct {
	res      ResourceResolver
	cfg      types.ConvertConfig
	lists    listStack
	warnings []Warning
}

func (w *walker) warnf(kind WarningKind, node, detail string) {
	w.warnings = append(w.warnings, Warning{Kind: kind, Node: node, Detail: detail})
}

// walk converts a sequence of sibling nodes. Fatal structural problems
// unwind through the returned error; local problems become warnings and
// traversal continues.
func (w *walker) walk(nodes []types.Node, ctx blockContext, sink *[]types.RenderUnit) error {
	for i := range nodes {
		if err := w.walkNode(&nodes[i], ctx, sink); err != nil {
			return err
		}
	}
	return nil
}

func (w *walker) walkNode(n *types.Node, ctx blockContext, sink *[]types.RenderUnit) error {
	switch n.Type {
	case types.NodeParagraph:
		*sink = append(*sink, w.renderParagraph(n, ctx))

	case types.NodeHeading:
		*sink = append(*sink, w.renderHeading(n, ctx))

	case types.NodeText:
		// Stray text outside a paragraph still renders, wrapped.
		p := &types.Paragraph{Kind: types.BlockBody, Indent: ctx.indent, Runs: []types.Run{makeRun(n, ctx)}}
		*sink = append(*sink, p)

	case types.NodeBulletList:
		return w.walkList(n, listBullet, ctx, sink)
	case types.NodeOrderedList:
		return w.walkList(n, listOrdered, ctx, sink)
	case types.NodeCheckList:
		return w.walkList(n, listCheck, ctx, sink)

	case types.NodeListItem:
		return w.walkListItem(n, ctx, sink)
	case types.NodeCheckListItem:
		return w.walkCheckListItem(n, ctx, sink)

	case types.NodeTable:
		return w.walkTable(n, sink)

	case types.NodeImage:
		*sink = append(*sink, w.renderImage(n, ctx))

	case types.NodeHorizontalRule:
		*sink = append(*sink, &types.Paragraph{Kind: types.BlockRule})

	case types.NodeCodeBlock:
		w.renderCodeBlock(n, ctx, sink)

	case types.NodeCallout:
		return w.renderCallout(n, ctx, sink)

	case types.NodeBlockquote:
		ctx.kind = types.BlockQuote
		ctx.indent++
		return w.walk(n.Content, ctx, sink)

	case types.NodeTableRow, types.NodeTableCell:
		w.warnf(WarnUnsupportedNode, n.Type, "table fragment outside a table skipped")

	default:
		w.warnf(WarnUnsupportedNode, n.Type, "unrecognized node type skipped")
	}
	return nil
}

// walkList pushes a fresh counter for the list's depth, converts the
// items, and pops on the way out so the parent depth's counter resumes
// untouched.
func (w *walker) walkList(n *types.Node, kind listKind, ctx blockContext, sink *[]types.RenderUnit) error {
	w.lists.push(kind, n.Attrs.Start)
	err := w.walk(n.Content, ctx, sink)
	w.lists.pop()
	return err
}

// walkListItem renders one bullet or ordered item: the numbering engine
// hands out the literal marker, the item's first paragraph carries it, and
// continuation paragraphs keep the indentation only. An item with no
// paragraph children (only a nested sub-list, say) still shows its marker
// through a marker-only paragraph.
func (w *walker) walkListItem(n *types.Node, ctx blockContext, sink *[]types.RenderUnit) error {
	if w.lists.depth() == 0 {
		w.warnf(WarnUnsupportedNode, n.Type, "list item outside a list skipped")
		return nil
	}
	marker := w.lists.marker()
	w.lists.advance()

	ctx.indent = w.lists.depth() - 1
	return w.walkItemContent(n, marker, ctx, sink)
}

// walkCheckListItem renders a checklist item with the glyph chosen by its
// checked state. No counter advances, and a checked item's text renders
// struck through.
func (w *walker) walkCheckListItem(n *types.Node, ctx blockContext, sink *[]types.RenderUnit) error {
	if w.lists.depth() == 0 {
		w.warnf(WarnUnsupportedNode, n.Type, "list item outside a list skipped")
		return nil
	}
	marker := glyphUnchecked
	if n.Attrs.Checked {
		marker = glyphChecked
		ctx.strike = true
	}

	ctx.indent = w.lists.depth() - 1
	return w.walkItemContent(n, marker, ctx, sink)
}

// walkItemContent converts a list item's children, attaching the marker to
// the first paragraph child, or to a marker-only paragraph when the item
// has none.
func (w *walker) walkItemContent(n *types.Node, marker string, ctx blockContext, sink *[]types.RenderUnit) error {
	hasParagraph := false
	for i := range n.Content {
		if n.Content[i].Type == types.NodeParagraph {
			hasParagraph = true
			break
		}
	}
	if !hasParagraph {
		*sink = append(*sink, &types.Paragraph{Kind: types.BlockBody, Indent: ctx.indent, Marker: marker})
	}

	markerUsed := false
	for i := range n.Content {
		child := &n.Content[i]
		childCtx := ctx
		if !markerUsed && child.Type == types.NodeParagraph {
			childCtx.marker = marker
			markerUsed = true
		}
		if err := w.walkNode(child, childCtx, sink); err != nil {
			return err
		}
	}
	return nil
}

// walkTable validates the table grid, then renders each declared cell's
// content recursively; a cell may itself contain paragraphs, lists, or
// nested tables. Covered grid positions become empty merged placeholders.
func (w *walker) walkTable(n *types.Node, sink *[]types.RenderUnit) error {
	g, err := buildGrid(n)
	if err != nil {
		return err
	}

	t := &types.Table{Colwidths: n.Attrs.Colwidths, Rows: make([][]types.Cell, g.rows)}
	for r := range t.Rows {
		t.Rows[r] = make([]types.Cell, g.cols)
		for c := range t.Rows[r] {
			t.Rows[r][c] = types.Cell{Covered: true}
		}
	}

	for _, pl := range g.cells {
		cell := types.Cell{RowSpan: pl.rowSpan, ColSpan: pl.colSpan}
		if err := w.walk(pl.node.Content, blockContext{}, &cell.Units); err != nil {
			return err
		}
		t.Rows[pl.row][pl.col] = cell
	}

	*sink = append(*sink, t)
	return nil
}
