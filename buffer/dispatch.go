// Copyright © 2025 Texelterm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: buffer/dispatch.go
// Summary: Damage accumulation and bg/fg/cursor/scrollbar run emission.
// Usage: The interpreter drives a repair pass: accumulate, dispatch bg,
//        fg, cursor, scrollbar, then reset damage.
// Notes: Runs are emitted row-major over the viewport, damaged columns
//        only. Rows scrolled in from history are full-width damaged.

package buffer

import (
	"github.com/framegrace/texelterm/utf8x"
)

// Region is a damaged rectangle in viewport coordinates.
type Region struct {
	RowBegin, RowEnd int
	ColBegin, ColEnd int
}

// Empty reports whether the region covers nothing.
func (r Region) Empty() bool { return r.RowBegin >= r.RowEnd || r.ColBegin >= r.ColEnd }

// BgFunc receives one background run.
type BgFunc func(pos Pos, color Color, count int)

// FgFunc receives one foreground run: UTF-8 bytes plus the column count.
type FgFunc func(pos Pos, color Color, attr Attribute, text []byte, count int)

// CursorFunc receives the cursor cell.
type CursorFunc func(pos Pos, style Style, text []byte, wrapNext bool)

// DamageViewport marks every viewport row dirty. With all set the full
// width is damaged, otherwise existing damage is kept.
func (b *Buffer) DamageViewport(all bool) {
	b.viewDamageAll = true
	if all {
		for _, l := range b.lines {
			l.DamageAll()
		}
	}
}

// AccumulateDamage returns the union of damaged cell regions in the
// viewport.
func (b *Buffer) AccumulateDamage() Region {
	reg := Region{RowBegin: -1}
	for v := 0; v < b.rows; v++ {
		begin, end, ok := b.rowDamage(v)
		if !ok {
			continue
		}
		if reg.RowBegin == -1 {
			reg = Region{RowBegin: v, RowEnd: v + 1, ColBegin: begin, ColEnd: end}
			continue
		}
		reg.RowEnd = v + 1
		if begin < reg.ColBegin {
			reg.ColBegin = begin
		}
		if end > reg.ColEnd {
			reg.ColEnd = end
		}
	}
	if reg.RowBegin == -1 {
		return Region{}
	}
	return reg
}

// rowDamage returns the damaged column range of a viewport row.
func (b *Buffer) rowDamage(v int) (begin, end int, ok bool) {
	if v < b.viewOffset {
		// History rows carry no damage state of their own.
		if b.viewDamageAll {
			return 0, b.cols, true
		}
		return 0, 0, false
	}
	line := b.lines[v-b.viewOffset]
	if !line.Damaged() {
		return 0, 0, false
	}
	begin, end = line.Damage()
	return begin, end, true
}

// DispatchBg emits contiguous runs of identical background color from
// the damaged regions.
func (b *Buffer) DispatchBg(reverse bool, fn BgFunc) {
	for v := 0; v < b.rows; v++ {
		begin, end, ok := b.rowDamage(v)
		if !ok {
			continue
		}
		cells := b.viewportLine(v)
		selBase := len(b.historyTags) - b.viewOffset
		runStart := -1
		var runColor Color
		for x := begin; x < end; x++ {
			c := cellAt(cells, x)
			_, bg := b.effective(c, reverse, b.isSelected(selBase+v, x))
			if runStart >= 0 && bg == runColor {
				continue
			}
			if runStart >= 0 {
				fn(Pos{Row: v, Col: runStart}, runColor, x-runStart)
			}
			runStart = x
			runColor = bg
		}
		if runStart >= 0 {
			fn(Pos{Row: v, Col: runStart}, runColor, end-runStart)
		}
	}
}

// DispatchFg emits contiguous runs of non-blank cells with identical
// foreground color and attributes.
func (b *Buffer) DispatchFg(reverse bool, fn FgFunc) {
	var enc [4]byte
	for v := 0; v < b.rows; v++ {
		begin, end, ok := b.rowDamage(v)
		if !ok {
			continue
		}
		cells := b.viewportLine(v)
		selBase := len(b.historyTags) - b.viewOffset
		runStart := -1
		var runColor Color
		var runAttr Attribute
		var text []byte
		flush := func(x int) {
			if runStart >= 0 {
				fn(Pos{Row: v, Col: runStart}, runColor, runAttr, text, x-runStart)
				runStart = -1
				text = nil
			}
		}
		for x := begin; x < end; x++ {
			c := cellAt(cells, x)
			if c.Rune == 0 {
				// Pad cell behind a wide glyph: covered by the run.
				continue
			}
			if c.IsBlank() && c.Style.Attr&AttrUnderline == 0 {
				flush(x)
				continue
			}
			fg, _ := b.effective(c, reverse, b.isSelected(selBase+v, x))
			attr := c.Style.Attr
			r := c.Rune
			if attr&AttrConceal != 0 {
				r = ' '
			}
			if runStart >= 0 && (fg != runColor || attr != runAttr) {
				flush(x)
			}
			if runStart < 0 {
				runStart = x
				runColor = fg
				runAttr = attr
			}
			n := utf8x.Encode(r, enc[:])
			text = append(text, enc[:n]...)
		}
		flush(end)
	}
}

// DispatchCursor emits the cursor cell when it is inside the viewport.
func (b *Buffer) DispatchCursor(reverse bool, fn CursorFunc) {
	v := b.cursor.Pos.Row + b.viewOffset
	if v < 0 || v >= b.rows {
		return
	}
	p := b.CursorPos()
	c := b.lines[p.Row].Cell(p.Col)
	fg, bg := b.effective(c, reverse, false)
	// The cursor inverts its cell.
	style := Style{FG: bg, BG: fg, Attr: c.Style.Attr}
	r := c.Rune
	if r == 0 {
		r = ' '
	}
	var enc [4]byte
	n := utf8x.Encode(r, enc[:])
	fn(Pos{Row: v, Col: p.Col}, style, enc[:n], b.cursor.WrapNext)
}

// effective resolves the drawn fg/bg of a cell under screen-reverse and
// selection inversion.
func (b *Buffer) effective(c Cell, screenReverse, selected bool) (fg, bg Color) {
	fg, bg = c.Style.FG, c.Style.BG
	swap := c.Style.Attr&AttrInverse != 0
	if screenReverse {
		swap = !swap
	}
	if selected {
		swap = !swap
	}
	if swap {
		fg, bg = bg, fg
		if fg.Mode == ColorModeDefault {
			fg = Color{Mode: ColorModeDefault}
		}
	}
	return fg, bg
}

func (b *Buffer) isSelected(absRow, col int) bool {
	lo, hi, ok := b.SelectedRange(absRow)
	return ok && col >= lo && col < hi
}

func cellAt(cells []Cell, x int) Cell {
	if x < len(cells) {
		return cells[x]
	}
	return Blank(DefaultStyle())
}

// --- Scrollbar state ---

// Total returns the scrollbar extent: history plus screen rows.
func (b *Buffer) Total() int { return len(b.historyTags) + b.rows }

// Bar returns the viewport position within Total: offset from the top
// and the bar size.
func (b *Buffer) Bar() (offset, size int) {
	return len(b.historyTags) - b.viewOffset, b.rows
}

// BarDamage reports whether the scrollbar needs redrawing.
func (b *Buffer) BarDamage() bool { return b.barDamage }

// ResetDamage clears all per-line and scrollbar damage after a draw.
func (b *Buffer) ResetDamage() {
	for _, l := range b.lines {
		l.ResetDamage()
	}
	b.viewDamageAll = false
	b.barDamage = false
}
