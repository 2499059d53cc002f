// Copyright © 2025 Texelterm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: term/interp_test.go
// Summary: Printing, wrapping, wide glyphs, charsets and C0 controls.

package term

import "testing"

func TestPlainPrinting(t *testing.T) {
	h := NewTestHarness(24, 80)
	h.SendSeq("hello")
	h.AssertRow(t, 0, "hello")
	h.AssertCursor(t, 0, 5)
}

func TestAutoWrap(t *testing.T) {
	h := NewTestHarness(24, 10)
	h.SendSeq("0123456789X")
	h.AssertRow(t, 0, "0123456789")
	h.AssertRow(t, 1, "X")
	h.AssertCursor(t, 1, 1)
	if !h.Term.Buffer().Line(0).Cont() {
		t.Error("the wrapped-from line should carry the continuation flag")
	}
}

func TestWrapNextLatch(t *testing.T) {
	h := NewTestHarness(24, 10)
	h.SendSeq("0123456789")
	// The cursor reports the last column while the wrap is pending.
	h.AssertCursor(t, 0, 9)
	if !h.Term.Buffer().WrapNext() {
		t.Fatal("expected wrapNext latched at the right edge")
	}
	// CR clears the latch without wrapping.
	h.SendSeq("\r")
	h.AssertCursor(t, 0, 0)
	if h.Term.Buffer().WrapNext() {
		t.Error("CR should clear wrapNext")
	}
}

func TestAutoWrapDisabled(t *testing.T) {
	h := NewTestHarness(24, 10)
	h.SendSeq("\x1b[?7l0123456789XY")
	h.AssertRow(t, 0, "012345678Y")
	h.AssertCursor(t, 0, 9)
}

func TestWrapAtBottomScrolls(t *testing.T) {
	h := NewTestHarness(2, 5)
	h.SendSeq("aaaaabbbbbc")
	h.AssertRow(t, 0, "bbbbb")
	h.AssertRow(t, 1, "c")
}

func TestWideGlyphOccupiesTwoCells(t *testing.T) {
	h := NewTestHarness(24, 10)
	h.SendSeq("木x")
	h.AssertRune(t, 0, 0, '木')
	if !h.Cell(0, 0).Wide {
		t.Error("expected wide flag on the lead cell")
	}
	if h.Cell(0, 1).Rune != 0 {
		t.Error("expected pad cell behind the wide glyph")
	}
	h.AssertRune(t, 0, 2, 'x')
}

func TestWideGlyphWrapsWhole(t *testing.T) {
	h := NewTestHarness(24, 5)
	h.SendSeq("abcd木")
	h.AssertRow(t, 0, "abcd")
	h.AssertRune(t, 1, 0, '木')
}

func TestBackspaceAfterWrapLatch(t *testing.T) {
	h := NewTestHarness(24, 5)
	h.SendSeq("abcde\b")
	h.AssertCursor(t, 0, 4)
	if h.Term.Buffer().WrapNext() {
		t.Error("BS should clear the pending wrap")
	}
}

func TestLineFeedVariants(t *testing.T) {
	for _, ctl := range []string{"\n", "\v", "\f"} {
		h := NewTestHarness(24, 80)
		h.SendSeq("ab" + ctl)
		h.AssertCursor(t, 1, 2)
	}
}

func TestCrOnLfMode(t *testing.T) {
	h := NewTestHarness(24, 80)
	h.SendSeq("\x1b[20hab\n")
	h.AssertCursor(t, 1, 0)
	h.SendSeq("\x1b[20lcd\n")
	h.AssertCursor(t, 2, 2)
}

func TestBell(t *testing.T) {
	h := NewTestHarness(24, 80)
	h.SendSeq("\x07\x07")
	if h.Bells != 2 {
		t.Errorf("expected 2 bells, got %d", h.Bells)
	}
}

func TestCharsetLineDrawing(t *testing.T) {
	h := NewTestHarness(24, 80)
	// Designate DEC special graphics on G0: q is a horizontal rule.
	h.SendSeq("\x1b(0qqq\x1b(Bq")
	h.AssertRune(t, 0, 0, '─')
	h.AssertRune(t, 0, 1, '─')
	h.AssertRune(t, 0, 2, '─')
	h.AssertRune(t, 0, 3, 'q')
}

func TestShiftInOut(t *testing.T) {
	h := NewTestHarness(24, 80)
	// G1 carries the special set; SO activates it, SI returns.
	h.SendSeq("\x1b)0a\x0eq\x0fa")
	h.AssertRune(t, 0, 0, 'a')
	h.AssertRune(t, 0, 1, '─')
	h.AssertRune(t, 0, 2, 'a')
}

func TestUKCharset(t *testing.T) {
	h := NewTestHarness(24, 80)
	h.SendSeq("\x1b(A#")
	h.AssertRune(t, 0, 0, '£')
}

func TestAlignmentPattern(t *testing.T) {
	h := NewTestHarness(3, 4)
	h.SendSeq("\x1b#8")
	for row := 0; row < 3; row++ {
		h.AssertRow(t, row, "EEEE")
	}
}

func TestNextLine(t *testing.T) {
	h := NewTestHarness(24, 80)
	h.SendSeq("abc\x1bE")
	h.AssertCursor(t, 1, 0)
}

func TestReverseIndexScrollsDown(t *testing.T) {
	h := NewTestHarness(3, 10)
	h.SendSeq("top\r\nmid\r\nbot\x1b[H\x1bM")
	h.AssertRow(t, 0, "")
	h.AssertRow(t, 1, "top")
	h.AssertRow(t, 2, "mid")
}

func TestFullReset(t *testing.T) {
	h := NewTestHarness(24, 80)
	h.SendSeq("abc\x1b[5;5H\x1b[1m\x1b[?25l")
	h.SendSeq("\x1bc")
	h.AssertRow(t, 0, "")
	h.AssertCursor(t, 0, 0)
	if !h.Term.Modes().Has(ModeShowCursor) {
		t.Error("RIS should restore the default modes")
	}
}

func TestInvalidUtf8Dropped(t *testing.T) {
	h := NewTestHarness(24, 80)
	h.Term.ProcessTty([]byte{'a', 0xc3, 0x28, 'b'})
	// The broken continuation byte restarts decoding at '('.
	h.AssertRune(t, 0, 0, 'a')
	h.AssertRune(t, 0, 1, '(')
	h.AssertRune(t, 0, 2, 'b')
}
