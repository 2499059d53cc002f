// Copyright © 2025 Texelterm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: buffer/resize.go
// Summary: Buffer resize: reflow for primary, clip for alternate.
// Usage: The interpreter calls ResizeReflow/ResizeClip on window resize
//        and DECCOLM, and MigrateFrom on screen switches.
// Notes: Reflow reassembles logical paragraphs via continuation flags,
//        including lines already evicted to history.

package buffer

type reflowLine struct {
	cells []Cell
	cont  bool
}

// ResizeReflow resizes a primary buffer, rewrapping logical paragraphs
// at the new width. History participates; the cursor tracks its logical
// position.
func (b *Buffer) ResizeReflow(rows, cols int) {
	if b.alt {
		b.ResizeClip(rows, cols)
		return
	}
	if rows == b.rows && cols == b.cols {
		return
	}
	b.ClearSelection()

	// Grid rows past both the cursor and the last non-blank line carry
	// no content worth reflowing.
	lastUsed := b.cursor.Pos.Row
	for r := b.rows - 1; r > lastUsed; r-- {
		if len(b.lines[r].trimmed()) > 0 {
			lastUsed = r
			break
		}
	}

	cursorAbs := len(b.historyTags) + b.cursor.Pos.Row
	cursorCol := b.cursor.Pos.Col

	// Reassemble logical paragraphs.
	var paras [][]Cell
	var cur []Cell
	cursorPara, cursorOffset := 0, 0
	open := false
	total := len(b.historyTags) + lastUsed + 1
	for i := 0; i < total; i++ {
		cells, cont := b.absLine(i)
		if !open {
			cur = nil
			open = true
		}
		if i == cursorAbs {
			cursorPara = len(paras)
			cursorOffset = len(cur) + cursorCol
		}
		if cont {
			cur = append(cur, cells...)
		} else {
			cur = append(cur, trimTrailingBlanks(cells)...)
			paras = append(paras, cur)
			open = false
		}
	}
	if open {
		paras = append(paras, cur)
	}
	if cursorAbs >= total {
		cursorPara = len(paras)
		cursorOffset = cursorCol
	}

	// Rewrap at the new width.
	var out []reflowLine
	cursorIdx, cursorNewCol := 0, 0
	for pi, p := range paras {
		start := len(out)
		n := (len(p) + cols - 1) / cols
		if n == 0 {
			n = 1
		}
		for i := 0; i < n; i++ {
			lo := i * cols
			hi := lo + cols
			if hi > len(p) {
				hi = len(p)
			}
			out = append(out, reflowLine{cells: p[lo:hi], cont: i < n-1})
		}
		if pi == cursorPara {
			li := cursorOffset / cols
			if li > n-1 {
				li = n - 1
				cursorNewCol = cols - 1
			} else {
				cursorNewCol = cursorOffset % cols
			}
			cursorIdx = start + li
		}
	}
	if cursorPara >= len(paras) {
		cursorIdx = len(out)
		cursorNewCol = clamp(cursorCol, 0, cols-1)
	}

	// Split between history and the new grid, keeping the cursor on
	// screen.
	histCount := len(out) - rows
	if histCount < 0 {
		histCount = 0
	}
	if cursorIdx < histCount {
		histCount = cursorIdx
	}

	for _, tag := range b.historyTags {
		b.dedup.Release(tag)
	}
	b.historyTags = nil
	for i := 0; i < histCount; i++ {
		b.historyTags = append(b.historyTags, b.dedup.Store(out[i].cells, out[i].cont))
	}
	if !b.unlimited && b.historyLimit >= 0 && len(b.historyTags) > b.historyLimit {
		drop := len(b.historyTags) - b.historyLimit
		for i := 0; i < drop; i++ {
			b.dedup.Release(b.historyTags[i])
		}
		b.historyTags = b.historyTags[drop:]
	}

	b.rows, b.cols = rows, cols
	b.lines = make([]*Line, rows)
	for r := 0; r < rows; r++ {
		i := histCount + r
		if i < len(out) {
			cells := make([]Cell, cols)
			copy(cells, out[i].cells)
			for j := len(out[i].cells); j < cols; j++ {
				cells[j] = Blank(DefaultStyle())
			}
			b.lines[r] = lineFromCells(cells, out[i].cont)
		} else {
			b.lines[r] = NewLine(cols, DefaultStyle())
		}
	}

	b.finishResize(cursorIdx-histCount, cursorNewCol)
}

// ResizeClip resizes without reflow: lines are truncated or padded and
// nothing reaches history.
func (b *Buffer) ResizeClip(rows, cols int) {
	if rows == b.rows && cols == b.cols {
		return
	}
	b.ClearSelection()

	lines := make([]*Line, rows)
	for r := 0; r < rows; r++ {
		if r < b.rows {
			b.lines[r].Resize(cols, DefaultStyle())
			lines[r] = b.lines[r]
		} else {
			lines[r] = NewLine(cols, DefaultStyle())
		}
	}
	row := clamp(b.cursor.Pos.Row, 0, rows-1)
	col := clamp(b.cursor.Pos.Col, 0, cols-1)
	b.rows, b.cols = rows, cols
	b.lines = lines
	b.finishResize(row, col)
}

func (b *Buffer) finishResize(cursorRow, cursorCol int) {
	b.cursor.Pos.Row = clamp(cursorRow, 0, b.rows-1)
	b.cursor.Pos.Col = clamp(cursorCol, 0, b.cols-1)
	b.cursor.WrapNext = false
	b.saved.Pos.Row = clamp(b.saved.Pos.Row, 0, b.rows-1)
	b.saved.Pos.Col = clamp(b.saved.Pos.Col, 0, b.cols-1)
	b.marginBegin = 0
	b.marginEnd = b.rows

	old := b.tabs
	b.tabs = make([]bool, b.cols)
	copy(b.tabs, old)
	for i := len(old); i < b.cols; i++ {
		b.tabs[i] = i%8 == 0
	}

	b.viewOffset = 0
	b.barDamage = true
	b.DamageViewport(true)
}

// MigrateFrom carries cursor and rendition over from the buffer being
// switched away from. With clear set the destination is wiped first.
func (b *Buffer) MigrateFrom(other *Buffer, clear bool) {
	if clear {
		b.Clear()
	}
	b.cursor.Pos = Pos{
		Row: clamp(other.cursor.Pos.Row, 0, b.rows-1),
		Col: clamp(other.CursorPos().Col, 0, b.cols-1),
	}
	b.cursor.WrapNext = false
	b.cursor.Style = other.cursor.Style
	b.cursor.Slot = other.cursor.Slot
	b.cursor.G0 = other.cursor.G0
	b.cursor.G1 = other.cursor.G1
	b.DamageViewport(true)
}

func trimTrailingBlanks(cells []Cell) []Cell {
	end := len(cells)
	for end > 0 {
		c := cells[end-1]
		if !c.IsBlank() || c.Style != DefaultStyle() {
			break
		}
		end--
	}
	return cells[:end]
}
