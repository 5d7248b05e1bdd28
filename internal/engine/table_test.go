// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"errors"
	"testing"

	"github.com/pdiddy/noteconv/pkg/types"
)

func cell(rowspan, colspan int, children ...types.Node) types.Node {
	return types.Node{
		Type:    types.NodeTableCell,
		Attrs:   types.Attrs{Rowspan: rowspan, Colspan: colspan},
		Content: children,
	}
}

func row(cells ...types.Node) types.Node {
	return types.Node{Type: types.NodeTableRow, Content: cells}
}

func table(rows ...types.Node) *types.Node {
	return &types.Node{Type: types.NodeTable, Content: rows}
}

func TestBuildGridSimple(t *testing.T) {
	g, err := buildGrid(table(
		row(cell(1, 1), cell(1, 1)),
		row(cell(1, 1), cell(1, 1)),
	))
	if err != nil {
		t.Fatalf("buildGrid: %v", err)
	}
	if g.rows != 2 || g.cols != 2 {
		t.Errorf("grid = %dx%d, want 2x2", g.rows, g.cols)
	}
	if len(g.cells) != 4 {
		t.Errorf("placements = %d, want 4", len(g.cells))
	}
}

// A 2x2 span at the origin of a 3x3 grid occupies four slots: the origin
// placement plus three covered positions. The remaining five slots hold
// ordinary cells.
func TestBuildGridSpans(t *testing.T) {
	g, err := buildGrid(table(
		row(cell(2, 2), cell(1, 1)),
		row(cell(1, 1)),
		row(cell(1, 1), cell(1, 1), cell(1, 1)),
	))
	if err != nil {
		t.Fatalf("buildGrid: %v", err)
	}
	if g.rows != 3 || g.cols != 3 {
		t.Fatalf("grid = %dx%d, want 3x3", g.rows, g.cols)
	}
	if len(g.cells) != 6 {
		t.Fatalf("placements = %d, want 6 (1 merged + 5 plain)", len(g.cells))
	}

	origin := g.cells[0]
	if origin.row != 0 || origin.col != 0 || origin.rowSpan != 2 || origin.colSpan != 2 {
		t.Errorf("origin placement = %+v, want 2x2 at (0,0)", origin)
	}

	// Row 1's single declared cell lands past the inherited footprint.
	var row1 []placement
	for _, pl := range g.cells {
		if pl.row == 1 {
			row1 = append(row1, pl)
		}
	}
	if len(row1) != 1 || row1[0].col != 2 {
		t.Errorf("row 1 placements = %+v, want one cell at column 2", row1)
	}
}

func TestBuildGridCoveredCells(t *testing.T) {
	w := &walker{res: noResources{}, cfg: types.ConvertConfig{}.WithDefaults()}
	var units []types.RenderUnit
	err := w.walkTable(table(
		row(cell(2, 2), cell(1, 1)),
		row(cell(1, 1)),
		row(cell(1, 1), cell(1, 1), cell(1, 1)),
	), &units)
	if err != nil {
		t.Fatalf("walkTable: %v", err)
	}
	if len(units) != 1 {
		t.Fatalf("units = %d, want 1 table", len(units))
	}
	tbl := units[0].(*types.Table)

	covered := 0
	for _, r := range tbl.Rows {
		for _, c := range r {
			if c.Covered {
				covered++
			}
		}
	}
	if covered != 3 {
		t.Errorf("covered positions = %d, want 3", covered)
	}
	if tbl.Rows[0][0].Covered || tbl.Rows[0][0].RowSpan != 2 || tbl.Rows[0][0].ColSpan != 2 {
		t.Errorf("merge origin = %+v, want uncovered 2x2", tbl.Rows[0][0])
	}
	for _, pos := range [][2]int{{0, 1}, {1, 0}, {1, 1}} {
		if !tbl.Rows[pos[0]][pos[1]].Covered {
			t.Errorf("position %v should be covered", pos)
		}
	}
}

func TestBuildGridRejectsIrregularTables(t *testing.T) {
	tests := []struct {
		name string
		node *types.Node
	}{
		{
			// Header declares 3 columns; row 1 fills only 2.
			"row too short",
			table(
				row(cell(1, 1), cell(1, 1), cell(1, 1)),
				row(cell(1, 1), cell(1, 1)),
			),
		},
		{
			"row too long",
			table(
				row(cell(1, 1), cell(1, 1)),
				row(cell(1, 1), cell(1, 1), cell(1, 1)),
			),
		},
		{
			"rowspan past last row",
			table(
				row(cell(3, 1), cell(1, 1)),
				row(cell(1, 1)),
			),
		},
		{
			"colspan past last column",
			table(
				row(cell(1, 1), cell(1, 1)),
				row(cell(1, 3)),
			),
		},
		{
			"empty table",
			table(),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := buildGrid(tt.node)
			var serr *StructuralError
			if !errors.As(err, &serr) {
				t.Fatalf("buildGrid = %v, want StructuralError", err)
			}
		})
	}
}

// A malformed table is fatal for the whole conversion: no partial model.
func TestConvertAbortsOnStructuralError(t *testing.T) {
	root := &types.Node{Type: "doc", Content: []types.Node{
		{Type: types.NodeParagraph, Content: []types.Node{{Type: types.NodeText, Text: "before"}}},
		*table(
			row(cell(1, 1), cell(1, 1), cell(1, 1)),
			row(cell(1, 1), cell(1, 1)),
		),
	}}

	doc, _, err := Convert(root, types.SchemaV2, nil, types.ConvertConfig{})
	var serr *StructuralError
	if !errors.As(err, &serr) {
		t.Fatalf("Convert = %v, want StructuralError", err)
	}
	if doc != nil {
		t.Errorf("Convert returned partial output alongside a fatal error")
	}
}
