// Package esctest provides a Go-native test framework for terminal emulation compliance.
//
// This file contains tests for the C0 controls CR, LF, VT, FF and BS.
//
// Original esctest2 source:
//   - Project: https://github.com/ThomasDickey/esctest2
//   - Files: esctest/tests/cr.py, ff.py, vt.py, bs.py
//   - Authors: George Nachman, Thomas E. Dickey
//   - License: GPL v2
package esctest

import "testing"

// Test_CR_MovesToColumnOne tests that CR returns to the first column.
func Test_CR_MovesToColumnOne(t *testing.T) {
	d := NewDriver(80, 24)
	CUP(d, NewPoint(5, 3))
	CR(d)
	position := d.GetCursorPosition()
	AssertEQ(t, position.X, 1)
	AssertEQ(t, position.Y, 3)
}

// Test_LF_KeepsColumn tests that LF moves down without changing the column.
func Test_LF_KeepsColumn(t *testing.T) {
	d := NewDriver(80, 24)
	CUP(d, NewPoint(5, 3))
	LF(d)
	position := d.GetCursorPosition()
	AssertEQ(t, position.X, 5)
	AssertEQ(t, position.Y, 4)
}

// Test_VT_ActsLikeLineFeed tests that VT is treated as a linefeed.
func Test_VT_ActsLikeLineFeed(t *testing.T) {
	d := NewDriver(80, 24)
	CUP(d, NewPoint(5, 3))
	VT(d)
	position := d.GetCursorPosition()
	AssertEQ(t, position.X, 5)
	AssertEQ(t, position.Y, 4)
}

// Test_FF_ActsLikeLineFeed tests that FF is treated as a linefeed.
func Test_FF_ActsLikeLineFeed(t *testing.T) {
	d := NewDriver(80, 24)
	CUP(d, NewPoint(5, 3))
	FF(d)
	position := d.GetCursorPosition()
	AssertEQ(t, position.X, 5)
	AssertEQ(t, position.Y, 4)
}

// Test_BS_MovesLeft tests that BS moves the cursor one column left.
func Test_BS_MovesLeft(t *testing.T) {
	d := NewDriver(80, 24)
	CUP(d, NewPoint(5, 1))
	BS(d)
	AssertEQ(t, d.GetCursorPosition().X, 4)
}

// Test_BS_StopsAtColumnOne tests that BS does not move past the first
// column.
func Test_BS_StopsAtColumnOne(t *testing.T) {
	d := NewDriver(80, 24)
	CUP(d, NewPoint(1, 1))
	BS(d)
	AssertEQ(t, d.GetCursorPosition().X, 1)
}

// Test_BS_AfterWrapPendingReturnsToLastColumn tests that BS cancels a
// pending wrap and keeps the cursor on the last column.
func Test_BS_AfterWrapPendingReturnsToLastColumn(t *testing.T) {
	d := NewDriver(80, 24)
	CUP(d, NewPoint(80, 1))
	d.Write("a")
	BS(d)
	AssertEQ(t, d.GetCursorPosition().X, 80)
	d.Write("b")
	AssertScreenCharsInRectEqual(t, d, NewRect(80, 1, 80, 1),
		[]string{"b"})
}
