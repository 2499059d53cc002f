// Copyright © 2025 Texelterm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: buffer/resize_test.go
// Summary: Reflow, clip resize and buffer migration tests.

package buffer

import "testing"

// placeWrapped writes text across the grid the way the interpreter does,
// wrapping at the right edge and flagging continuation lines.
func placeWrapped(b *Buffer, text string) {
	for _, r := range text {
		p := b.CursorPos()
		if b.WrapNext() {
			b.Line(p.Row).SetCont(true)
			b.SetWrapNext(false)
			if p.Row == b.rows-1 {
				b.AddLine()
				p = b.CursorPos()
			} else {
				b.MoveCursor(Pos{Row: p.Row + 1, Col: 0}, false)
				p = b.CursorPos()
			}
		}
		b.SetCell(p, Cell{Rune: r, Style: DefaultStyle()})
		if p.Col == b.cols-1 {
			b.SetWrapNext(true)
		} else {
			b.MoveCursor(Pos{Row: p.Row, Col: p.Col + 1}, false)
		}
	}
}

func TestReflowRewrapsParagraph(t *testing.T) {
	b := New(4, 5, NewDeduper(), 100, false)
	placeWrapped(b, "abcdefgh")
	if got := rowText(b, 0); got != "abcde" {
		t.Fatalf("precondition row 0: %q", got)
	}
	if got := rowText(b, 1); got != "fgh" {
		t.Fatalf("precondition row 1: %q", got)
	}

	b.ResizeReflow(4, 10)
	if got := rowText(b, 0); got != "abcdefgh" {
		t.Errorf("widened: row 0 should rejoin, got %q", got)
	}
	if got := rowText(b, 1); got != "" {
		t.Errorf("widened: row 1 should be blank, got %q", got)
	}
	if p := b.CursorPos(); p.Row != 0 || p.Col != 8 {
		t.Errorf("cursor should track logical position, got %+v", p)
	}

	b.ResizeReflow(4, 3)
	want := []string{"abc", "def", "gh"}
	for r, w := range want {
		if got := rowText(b, r); got != w {
			t.Errorf("narrowed row %d: expected %q, got %q", r, w, got)
		}
	}
}

func TestReflowPreservesHistory(t *testing.T) {
	d := NewDeduper()
	b := New(2, 5, d, 100, false)
	writeText(b, 0, "old")
	b.AddLine() // "old" now in history
	writeText(b, 0, "one")
	writeText(b, 1, "two")

	b.ResizeReflow(3, 5)
	// History pulled back onto the taller screen.
	if got := rowText(b, 0); got != "old" {
		t.Errorf("row 0: expected history line, got %q", got)
	}
	if got := rowText(b, 1); got != "one" {
		t.Errorf("row 1: %q", got)
	}
	if b.HistoryLen() != 0 {
		t.Errorf("history should have been absorbed, got %d", b.HistoryLen())
	}
}

func TestReflowIdempotent(t *testing.T) {
	b := New(4, 6, NewDeduper(), 100, false)
	placeWrapped(b, "the quick brown fox")
	b.ResizeReflow(4, 4)
	snapshot := make([]string, 4)
	for r := range snapshot {
		snapshot[r] = rowText(b, r)
	}
	b.ResizeReflow(4, 4)
	for r := range snapshot {
		if got := rowText(b, r); got != snapshot[r] {
			t.Errorf("second reflow changed row %d: %q vs %q", r, got, snapshot[r])
		}
	}
}

func TestClipResizeTruncatesAndPads(t *testing.T) {
	b := NewAlt(3, 6)
	writeText(b, 0, "abcdef")
	b.MoveCursor(Pos{Row: 2, Col: 5}, false)

	b.ResizeClip(2, 4)
	if got := rowText(b, 0); got != "abcd" {
		t.Errorf("truncated row: %q", got)
	}
	if p := b.CursorPos(); p.Row != 1 || p.Col != 3 {
		t.Errorf("cursor should clamp, got %+v", p)
	}

	b.ResizeClip(4, 8)
	if got := rowText(b, 0); got != "abcd" {
		t.Errorf("padded row should keep content: %q", got)
	}
	if got := rowText(b, 3); got != "" {
		t.Errorf("new rows blank: %q", got)
	}
}

func TestResizeResetsMarginsAndExtendsTabs(t *testing.T) {
	b := newTestBuffer(5, 8)
	b.SetMargins(1, 4)
	b.ResizeReflow(5, 20)
	if begin, end := b.Margins(); begin != 0 || end != 5 {
		t.Errorf("margins should reset, got [%d,%d)", begin, end)
	}
	b.MoveCursor(Pos{Row: 0, Col: 8}, false)
	b.TabCursor(1, 1)
	if p := b.CursorPos(); p.Col != 16 {
		t.Errorf("tab stops should extend past old width, got col %d", p.Col)
	}
}

func TestMigrateFrom(t *testing.T) {
	primary := newTestBuffer(3, 10)
	alt := NewAlt(3, 10)
	writeText(alt, 0, "leftover")

	style := Style{FG: IndexedColor(2), Attr: AttrUnderline}
	primary.MoveCursor(Pos{Row: 1, Col: 4}, false)
	primary.SetStyle(style)

	alt.MigrateFrom(primary, true)
	if got := rowText(alt, 0); got != "" {
		t.Errorf("clear migration should wipe destination: %q", got)
	}
	if p := alt.CursorPos(); p.Row != 1 || p.Col != 4 {
		t.Errorf("cursor should carry over, got %+v", p)
	}
	if alt.Style() != style {
		t.Errorf("style should carry over, got %+v", alt.Style())
	}
}
