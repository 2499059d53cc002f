// Copyright © 2025 Texelterm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: buffer/history.go
// Summary: Scrollback view offset and history line access.
// Usage: Scroll operations adjust the viewport without mutating content;
//        they return true when the view actually moved.

package buffer

// HistoryLen returns the number of evicted lines.
func (b *Buffer) HistoryLen() int { return len(b.historyTags) }

// ViewOffset returns how many lines the view is scrolled into history.
func (b *Buffer) ViewOffset() int { return b.viewOffset }

// historyLine returns the content of history line i (0 is oldest).
func (b *Buffer) historyLine(i int) ([]Cell, bool) {
	cells, cont, ok := b.dedup.Lookup(b.historyTags[i])
	if !ok {
		return nil, false
	}
	return cells, cont
}

// viewportLine resolves viewport row v (0-based, top of the view) to its
// cells, reading from history when scrolled back.
func (b *Buffer) viewportLine(v int) []Cell {
	if v < b.viewOffset {
		i := len(b.historyTags) - b.viewOffset + v
		cells, _ := b.historyLine(i)
		return cells
	}
	return b.lines[v-b.viewOffset].Cells()
}

// absLine resolves an absolute line index (history then grid) to cells
// and its continuation flag.
func (b *Buffer) absLine(i int) ([]Cell, bool) {
	if i < len(b.historyTags) {
		return b.historyLine(i)
	}
	r := i - len(b.historyTags)
	if r >= b.rows {
		return nil, false
	}
	return b.lines[r].Cells(), b.lines[r].Cont()
}

func (b *Buffer) setViewOffset(off int) bool {
	off = clamp(off, 0, len(b.historyTags))
	if off == b.viewOffset {
		return false
	}
	b.viewOffset = off
	b.barDamage = true
	b.DamageViewport(true)
	return true
}

// ScrollUpHistory moves the view n lines toward older content.
func (b *Buffer) ScrollUpHistory(n int) bool {
	return b.setViewOffset(b.viewOffset + n)
}

// ScrollDownHistory moves the view n lines toward the live screen.
func (b *Buffer) ScrollDownHistory(n int) bool {
	return b.setViewOffset(b.viewOffset - n)
}

// ScrollTopHistory jumps to the oldest history line.
func (b *Buffer) ScrollTopHistory() bool {
	return b.setViewOffset(len(b.historyTags))
}

// ScrollBottomHistory returns the view to the live screen.
func (b *Buffer) ScrollBottomHistory() bool {
	return b.setViewOffset(0)
}

// AtBottom reports whether the live screen is in view.
func (b *Buffer) AtBottom() bool { return b.viewOffset == 0 }

// ClearHistory drops all evicted lines and their store references.
func (b *Buffer) ClearHistory() {
	for _, tag := range b.historyTags {
		b.dedup.Release(tag)
	}
	b.historyTags = nil
	b.ClearSelection()
	if b.viewOffset != 0 {
		b.viewOffset = 0
		b.DamageViewport(true)
	}
	b.barDamage = true
}
