// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"strconv"
	"strings"
)

// The target formats cap native multi-level lists at three levels while
// source notes nest arbitrarily deep, so lists render as literal marker
// strings plus a fixed indentation unit per depth.

// listKind distinguishes the three list flavors.
type listKind int

const (
	listOrdered listKind = iota
	listBullet
	listCheck
)

// Checklist glyphs. Checklist items never advance a counter.
const (
	glyphChecked   = "☑"
	glyphUnchecked = "☐"
)

const bulletMarker = "•"

// listLevel is the per-depth state: the list flavor and, for ordered
// lists, the next ordinal to hand out.
type listLevel struct {
	kind    listKind
	counter int
}

// listStack tracks the active path of nested lists during traversal. Only
// the counters on the active path are ever needed, so a flat stack indexed
// by depth suffices. A counter survives a nested sub-list opening and
// closing below it, which keeps sibling items numbered continuously around
// interruptions.
type listStack struct {
	levels []listLevel
}

// push enters a list node. start is the list's declared first ordinal;
// zero means 1.
func (s *listStack) push(kind listKind, start int) {
	if start <= 0 {
		start = 1
	}
	s.levels = append(s.levels, listLevel{kind: kind, counter: start})
}

// pop leaves a list node, discarding its counter. The parent level's
// counter continues from where it left off.
func (s *listStack) pop() {
	if len(s.levels) > 0 {
		s.levels = s.levels[:len(s.levels)-1]
	}
}

// depth is the current nesting depth, 1-based inside the outermost list.
func (s *listStack) depth() int {
	return len(s.levels)
}

// top returns the innermost level, or nil outside any list.
func (s *listStack) top() *listLevel {
	if len(s.levels) == 0 {
		return nil
	}
	return &s.levels[len(s.levels)-1]
}

// marker returns the literal marker for the next item at the current
// depth: the bullet glyph, or the ordered marker in the depth's rotation
// style.
func (s *listStack) marker() string {
	lvl := s.top()
	if lvl == nil {
		return ""
	}
	if lvl.kind == listBullet {
		return bulletMarker
	}
	return orderedMarker(s.depth(), lvl.counter)
}

// advance increments the current depth's counter after an ordered item
// renders. Bullet and checklist levels carry no ordinal.
func (s *listStack) advance() {
	if lvl := s.top(); lvl != nil && lvl.kind == listOrdered {
		lvl.counter++
	}
}

// orderedMarker renders ordinal n in the marker style for the given
// 1-based depth. Box rotates numeric, lower-alpha, lower-roman and wraps
// by depth mod 3 for deeper nesting.
func orderedMarker(depth, n int) string {
	switch depth % 3 {
	case 1:
		return strconv.Itoa(n) + "."
	case 2:
		return lowerAlpha(n) + "."
	default:
		return lowerRoman(n) + "."
	}
}

// lowerAlpha renders n in bijective base-26: a..z, aa, ab, ...
func lowerAlpha(n int) string {
	var b []byte
	for n > 0 {
		n--
		b = append([]byte{byte('a' + n%26)}, b...)
		n /= 26
	}
	return string(b)
}

var romanValues = []struct {
	value  int
	symbol string
}{
	{1000, "m"}, {900, "cm"}, {500, "d"}, {400, "cd"},
	{100, "c"}, {90, "xc"}, {50, "l"}, {40, "xl"},
	{10, "x"}, {9, "ix"}, {5, "v"}, {4, "iv"}, {1, "i"},
}

// lowerRoman renders n as a lowercase roman numeral.
func lowerRoman(n int) string {
	var b strings.Builder
	for _, rv := range romanValues {
		for n >= rv.value {
			b.WriteString(rv.symbol)
			n -= rv.value
		}
	}
	return b.String()
}
