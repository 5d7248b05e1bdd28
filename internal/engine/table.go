// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import "github.com/pdiddy/noteconv/pkg/types"

// placement locates one declared cell within the expanded grid.
type placement struct {
	node    *types.Node
	row     int
	col     int
	rowSpan int
	colSpan int
}

// grid is the validated result of span expansion: the table dimensions
// plus one placement per declared cell.
type grid struct {
	rows  int
	cols  int
	cells []placement
}

// buildGrid expands a table node's cell stream into a rectangular grid.
//
// The column count comes from the first row's colspan sum. Cells are
// placed row by row: within a row the next cell lands on the first column
// not already occupied by an earlier rowspan, then its full footprint is
// marked occupied. A row whose declared plus inherited occupancy does not
// exactly cover the column count yields a StructuralError; irregular
// tables are rejected rather than silently guessed.
func buildGrid(table *types.Node) (*grid, error) {
	var rowNodes []*types.Node
	for i := range table.Content {
		if table.Content[i].Type == types.NodeTableRow {
			rowNodes = append(rowNodes, &table.Content[i])
		}
	}
	if len(rowNodes) == 0 {
		return nil, &StructuralError{Row: 0, Detail: "table has no rows"}
	}

	cols := 0
	for i := range rowNodes[0].Content {
		c := &rowNodes[0].Content[i]
		if c.Type != types.NodeTableCell {
			continue
		}
		cols += spanOrOne(c.Attrs.Colspan)
	}
	if cols == 0 {
		return nil, &StructuralError{Row: 0, Detail: "first row declares no cells"}
	}

	rows := len(rowNodes)
	occupied := make([][]bool, rows)
	for r := range occupied {
		occupied[r] = make([]bool, cols)
	}

	g := &grid{rows: rows, cols: cols}
	for r, rowNode := range rowNodes {
		col := 0
		for i := range rowNode.Content {
			cellNode := &rowNode.Content[i]
			if cellNode.Type != types.NodeTableCell {
				continue
			}

			for col < cols && occupied[r][col] {
				col++
			}
			if col >= cols {
				return nil, &StructuralError{Row: r, Detail: "declares more cells than the table has columns"}
			}

			rowSpan := spanOrOne(cellNode.Attrs.Rowspan)
			colSpan := spanOrOne(cellNode.Attrs.Colspan)
			if r+rowSpan > rows {
				return nil, &StructuralError{Row: r, Detail: "rowspan extends past the last row"}
			}
			if col+colSpan > cols {
				return nil, &StructuralError{Row: r, Detail: "colspan extends past the last column"}
			}
			for rr := r; rr < r+rowSpan; rr++ {
				for cc := col; cc < col+colSpan; cc++ {
					if occupied[rr][cc] {
						return nil, &StructuralError{Row: rr, Detail: "cell footprints overlap"}
					}
					occupied[rr][cc] = true
				}
			}

			g.cells = append(g.cells, placement{
				node:    cellNode,
				row:     r,
				col:     col,
				rowSpan: rowSpan,
				colSpan: colSpan,
			})
			col += colSpan
		}

		for c := 0; c < cols; c++ {
			if !occupied[r][c] {
				return nil, &StructuralError{Row: r, Detail: "does not fill every column"}
			}
		}
	}

	return g, nil
}

func spanOrOne(n int) int {
	if n < 1 {
		return 1
	}
	return n
}
