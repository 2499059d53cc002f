// Copyright © 2025 Texelterm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: term/testharness.go
// Summary: Test harness: feeds sequences, captures pty-bound bytes and
//          asserts on buffer state.
// Usage: Used by the _test.go files in this package.

package term

import (
	"strings"
	"testing"

	"github.com/framegrace/texelterm/buffer"
)

// TestHarness wraps a terminal with capture hooks for tests.
type TestHarness struct {
	Term   *Terminal
	Sent   []byte
	Titles []string
	Icons  []string
	Bells  int
	Copied []string
}

// NewTestHarness creates a terminal of the given size with all
// observer callbacks recording.
func NewTestHarness(rows, cols int, opts ...func(*Options)) *TestHarness {
	o := Options{Rows: rows, Cols: cols}
	for _, f := range opts {
		f(&o)
	}
	h := &TestHarness{}
	h.Term = New(o)
	h.Term.WriteToPty = func(b []byte) { h.Sent = append(h.Sent, b...) }
	h.Term.TitleChanged = func(s string) { h.Titles = append(h.Titles, s) }
	h.Term.IconChanged = func(s string) { h.Icons = append(h.Icons, s) }
	h.Term.Bell = func() { h.Bells++ }
	h.Term.Copy = func(s string) { h.Copied = append(h.Copied, s) }
	return h
}

// SendSeq feeds a raw byte string through the tty path.
func (h *TestHarness) SendSeq(seq string) {
	h.Term.ProcessTty([]byte(seq))
}

// TakeSent returns and clears everything written toward the child.
func (h *TestHarness) TakeSent() string {
	s := string(h.Sent)
	h.Sent = nil
	return s
}

// Cell returns the grid cell at (row, col).
func (h *TestHarness) Cell(row, col int) buffer.Cell {
	return h.Term.Buffer().Line(row).Cell(col)
}

// RowText renders a grid row as a string with trailing blanks trimmed.
func (h *TestHarness) RowText(row int) string {
	b := h.Term.Buffer()
	_, cols := b.Size()
	var sb strings.Builder
	for x := 0; x < cols; x++ {
		c := b.Line(row).Cell(x)
		if c.Rune == 0 {
			continue
		}
		sb.WriteRune(c.Rune)
	}
	return strings.TrimRight(sb.String(), " ")
}

// AssertCursor verifies the cursor grid position.
func (h *TestHarness) AssertCursor(t *testing.T, row, col int) {
	t.Helper()
	p := h.Term.Buffer().CursorPos()
	if p.Row != row || p.Col != col {
		t.Errorf("cursor: expected (%d,%d), got (%d,%d)", row, col, p.Row, p.Col)
	}
}

// AssertRow verifies the trimmed text of a grid row.
func (h *TestHarness) AssertRow(t *testing.T, row int, want string) {
	t.Helper()
	got := h.RowText(row)
	if got != want {
		t.Errorf("row %d: expected %q, got %q", row, want, got)
	}
}

// AssertRune verifies a single cell's rune, treating blank and zero
// alike.
func (h *TestHarness) AssertRune(t *testing.T, row, col int, want rune) {
	t.Helper()
	got := h.Cell(row, col).Rune
	if got == 0 {
		got = ' '
	}
	if got != want {
		t.Errorf("cell (%d,%d): expected %q, got %q", row, col, want, got)
	}
}
