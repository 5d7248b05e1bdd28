// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"math"
	"strconv"

	"github.com/pdiddy/noteconv/pkg/types"
)

// paletteEntry pairs a symbolic highlight name with its canonical RGB
// value, used for nearest-match resolution.
type paletteEntry struct {
	name  types.Highlight
	color types.RGB
}

// highlightPalette is the fixed set of highlight colors the target formats
// support. Order matters: distance ties resolve to the earliest entry.
var highlightPalette = []paletteEntry{
	{types.HighlightYellow, types.RGB{R: 0xff, G: 0xff, B: 0x00}},
	{types.HighlightBrightGreen, types.RGB{R: 0x00, G: 0xff, B: 0x00}},
	{types.HighlightTurquoise, types.RGB{R: 0x00, G: 0xff, B: 0xff}},
	{types.HighlightPink, types.RGB{R: 0xff, G: 0x00, B: 0xff}},
	{types.HighlightBlue, types.RGB{R: 0x00, G: 0x00, B: 0xff}},
	{types.HighlightRed, types.RGB{R: 0xff, G: 0x00, B: 0x00}},
	{types.HighlightDarkBlue, types.RGB{R: 0x00, G: 0x00, B: 0x80}},
	{types.HighlightDarkCyan, types.RGB{R: 0x00, G: 0x80, B: 0x80}},
	{types.HighlightDarkGreen, types.RGB{R: 0x00, G: 0x80, B: 0x00}},
	{types.HighlightDarkMagenta, types.RGB{R: 0x80, G: 0x00, B: 0x80}},
	{types.HighlightDarkRed, types.RGB{R: 0x80, G: 0x00, B: 0x00}},
	{types.HighlightDarkYellow, types.RGB{R: 0x80, G: 0x80, B: 0x00}},
	{types.HighlightGray25, types.RGB{R: 0xc0, G: 0xc0, B: 0xc0}},
	{types.HighlightGray50, types.RGB{R: 0x80, G: 0x80, B: 0x80}},
	{types.HighlightBlack, types.RGB{R: 0x00, G: 0x00, B: 0x00}},
}

// boxHighlights maps the pastel swatches the Box editor offers directly to
// their intended palette members. The pastels sit closer to light gray than
// to their hue in raw RGB distance, so a plain nearest match would wash
// them all out.
var boxHighlights = map[string]types.Highlight{
	"#fdf0d1": types.HighlightYellow,
	"#d4f3e6": types.HighlightBrightGreen,
	"#ecd9fb": types.HighlightPink,
	"#fce6d1": types.HighlightGray50,
	"#ccdff7": types.HighlightTurquoise,
	"#fbd7dd": types.HighlightRed,
	"#e8e8e8": types.HighlightGray25,
}

// resolveHighlight maps a requested highlight color onto the fixed palette.
// Known Box swatches resolve through the lookup table; anything else falls
// back to nearest-match, so every input maps to some palette member.
func resolveHighlight(hex string) types.Highlight {
	if h, ok := boxHighlights[hex]; ok {
		return h
	}
	c, err := types.ParseHex(hex)
	if err != nil {
		return types.HighlightYellow
	}
	return nearestHighlight(c)
}

// nearestHighlight picks the palette entry with minimum Euclidean distance
// in RGB space. Exact ties resolve to the earliest entry in the palette
// ordering, keeping the mapping deterministic and total.
func nearestHighlight(c types.RGB) types.Highlight {
	best := highlightPalette[0].name
	bestDist := math.MaxFloat64
	for _, e := range highlightPalette {
		dr := float64(c.R) - float64(e.color.R)
		dg := float64(c.G) - float64(e.color.G)
		db := float64(c.B) - float64(e.color.B)
		d := dr*dr + dg*dg + db*db
		if d < bestDist {
			bestDist = d
			best = e.name
		}
	}
	return best
}

// resolveFontColor parses a "#rrggbb" font color. The target formats accept
// arbitrary RGB for text (unlike highlights), so the value passes through
// unchanged. Unparsable colors resolve to nil, meaning the default color.
func resolveFontColor(hex string) *types.RGB {
	c, err := types.ParseHex(hex)
	if err != nil {
		return nil
	}
	return &c
}

// emToPt is the em-to-point divisor the Box editor uses for font sizes.
const emToPt = 0.083646

// ptFromEm converts a Box font size like "1.51em" to whole points. Returns
// zero (default size) when the value does not parse.
func ptFromEm(em string) float64 {
	if len(em) < 3 || em[len(em)-2:] != "em" {
		return 0
	}
	v, err := strconv.ParseFloat(em[:len(em)-2], 64)
	if err != nil {
		return 0
	}
	return math.Floor(v / emToPt)
}
