// Copyright © 2025 Texelterm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: buffer/selection.go
// Summary: Handed-position selection over the grid and scrollback.
// Usage: The frontend marks on button press, delimits on drag and reads
//        the text on release.
// Notes: Rows are absolute (history first, then grid) so live output
//        does not slide the selection. Any mutation of a selected row
//        clears the selection.

package buffer

import "strings"

// Hand disambiguates which side of a cell a selection edge touches.
type Hand int

const (
	LeftHand Hand = iota
	RightHand
)

// HPos is a selection endpoint: an absolute row, a column and a hand.
type HPos struct {
	Row  int
	Col  int
	Hand Hand
}

// boundary returns the half-open column boundary the hand selects.
func (h HPos) boundary() int {
	if h.Hand == RightHand {
		return h.Col + 1
	}
	return h.Col
}

func (h HPos) before(o HPos) bool {
	if h.Row != o.Row {
		return h.Row < o.Row
	}
	return h.boundary() < o.boundary()
}

type selectionState struct {
	active bool
	rect   bool
	anchor HPos
	other  HPos
}

// WordDelimiters separate words for double-click expansion.
var WordDelimiters = " \t"

// ViewHPos converts a viewport position to an absolute handed position.
func (b *Buffer) ViewHPos(row, col int, hand Hand) HPos {
	abs := len(b.historyTags) - b.viewOffset + row
	return HPos{Row: abs, Col: clamp(col, 0, b.cols-1), Hand: hand}
}

// MarkSelection starts a new selection at pos.
func (b *Buffer) MarkSelection(pos HPos) {
	b.ClearSelection()
	b.sel = selectionState{active: true, anchor: pos, other: pos}
	b.damageSelection()
}

// ExpandSelection grows a fresh selection around pos: click count 2
// selects the word, 3 the whole line.
func (b *Buffer) ExpandSelection(pos HPos, clickCount int) {
	b.ClearSelection()
	cells, _ := b.absLine(pos.Row)
	switch clickCount {
	case 2:
		lo, hi := wordBounds(cells, pos.Col)
		b.sel = selectionState{
			active: true,
			anchor: HPos{Row: pos.Row, Col: lo, Hand: LeftHand},
			other:  HPos{Row: pos.Row, Col: hi - 1, Hand: RightHand},
		}
	case 3:
		b.sel = selectionState{
			active: true,
			anchor: HPos{Row: pos.Row, Col: 0, Hand: LeftHand},
			other:  HPos{Row: pos.Row, Col: b.cols - 1, Hand: RightHand},
		}
	default:
		b.sel = selectionState{active: true, anchor: pos, other: pos}
	}
	b.damageSelection()
}

// DelimitSelection extends the selection to pos.
func (b *Buffer) DelimitSelection(pos HPos, rect bool) {
	if !b.sel.active {
		return
	}
	b.damageSelection()
	b.sel.other = pos
	b.sel.rect = rect
	b.damageSelection()
}

// ClearSelection discards the selection, damaging its rows.
func (b *Buffer) ClearSelection() {
	if !b.sel.active {
		return
	}
	b.damageSelection()
	b.sel = selectionState{}
}

// HasSelection reports whether a selection exists.
func (b *Buffer) HasSelection() bool { return b.sel.active }

// selectionRange returns the normalized endpoints.
func (b *Buffer) selectionRange() (begin, end HPos) {
	if b.sel.anchor.before(b.sel.other) {
		return b.sel.anchor, b.sel.other
	}
	return b.sel.other, b.sel.anchor
}

// GetSelectedText concatenates the selected cells. Wrapped lines join
// without a newline; trailing blanks are stripped per line.
func (b *Buffer) GetSelectedText() string {
	if !b.sel.active {
		return ""
	}
	begin, end := b.selectionRange()
	var sb strings.Builder
	for row := begin.Row; row <= end.Row; row++ {
		cells, cont := b.absLine(row)
		lo, hi := 0, len(cells)
		if b.sel.rect {
			lo = minInt(begin.boundary(), end.boundary())
			hi = minInt(hi, maxInt(begin.boundary(), end.boundary()))
		} else {
			if row == begin.Row {
				lo = begin.boundary()
			}
			if row == end.Row {
				hi = minInt(hi, end.boundary())
			}
		}
		if lo > len(cells) {
			lo = len(cells)
		}
		if hi < lo {
			hi = lo
		}
		text := strings.TrimRight(cellsToString(cells[lo:hi]), " ")
		sb.WriteString(text)
		if row < end.Row && (b.sel.rect || !cont) {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// SelectedRange reports the columns covered on one absolute row, for
// renderers that highlight the selection.
func (b *Buffer) SelectedRange(absRow int) (lo, hi int, ok bool) {
	if !b.sel.active {
		return 0, 0, false
	}
	begin, end := b.selectionRange()
	if absRow < begin.Row || absRow > end.Row {
		return 0, 0, false
	}
	if b.sel.rect {
		lo = minInt(begin.boundary(), end.boundary())
		hi = maxInt(begin.boundary(), end.boundary())
		return lo, hi, true
	}
	lo = 0
	hi = b.cols
	if absRow == begin.Row {
		lo = begin.boundary()
	}
	if absRow == end.Row {
		hi = end.boundary()
	}
	return lo, hi, true
}

func wordBounds(cells []Cell, col int) (lo, hi int) {
	if len(cells) == 0 {
		return 0, 1
	}
	if col >= len(cells) {
		col = len(cells) - 1
	}
	isDelim := func(i int) bool {
		r := cells[i].Rune
		return r == 0 || strings.ContainsRune(WordDelimiters, r)
	}
	lo, hi = col, col+1
	if isDelim(col) {
		return lo, hi
	}
	for lo > 0 && !isDelim(lo-1) {
		lo--
	}
	for hi < len(cells) && !isDelim(hi) {
		hi++
	}
	return lo, hi
}

// --- Internal selection maintenance ---

// touchRow clears the selection when a mutation lands on a selected row.
func (b *Buffer) touchRow(gridRow int) {
	if !b.sel.active {
		return
	}
	abs := len(b.historyTags) + gridRow
	begin, end := b.selectionRange()
	if abs >= begin.Row && abs <= end.Row {
		b.ClearSelection()
	}
}

func (b *Buffer) clearSelectionInRegion() {
	if !b.sel.active {
		return
	}
	lo := len(b.historyTags) + b.marginBegin
	hi := len(b.historyTags) + b.marginEnd
	begin, end := b.selectionRange()
	if end.Row >= lo && begin.Row < hi {
		b.ClearSelection()
	}
}

// shiftSelection slides the selection when history is trimmed in front.
func (b *Buffer) shiftSelection(delta int) {
	if !b.sel.active {
		return
	}
	b.sel.anchor.Row += delta
	b.sel.other.Row += delta
	if b.sel.anchor.Row < 0 || b.sel.other.Row < 0 {
		b.sel = selectionState{}
	}
}

// damageSelection marks the on-screen part of the selection dirty.
func (b *Buffer) damageSelection() {
	if !b.sel.active {
		return
	}
	begin, end := b.selectionRange()
	base := len(b.historyTags) - b.viewOffset
	for v := 0; v < b.rows; v++ {
		abs := base + v
		if abs >= begin.Row && abs <= end.Row {
			if grid := v - b.viewOffset; grid >= 0 && grid < b.rows {
				b.lines[grid].DamageAll()
			}
			b.barDamage = true
		}
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
