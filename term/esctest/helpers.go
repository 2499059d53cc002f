// Package esctest provides a Go-native test framework for terminal emulation compliance.
//
// This package is derived from esctest2 by George Nachman and Thomas E. Dickey.
// Original project: https://github.com/ThomasDickey/esctest2
// License: GPL v2
//
// The tests have been converted from Python to Go to enable offline, deterministic
// testing of the texelterm terminal emulator without requiring Python or PTY interaction.
package esctest

import (
	"fmt"
	"strings"
	"testing"
)

// ESC is the escape character.
const ESC = "\x1b"

// --- Assertion Functions ---

// AssertEQ asserts that two values are equal.
func AssertEQ(t *testing.T, actual, expected interface{}) {
	t.Helper()
	if actual != expected {
		t.Errorf("Expected %v, got %v", expected, actual)
	}
}

// AssertTrue asserts that a value is true.
func AssertTrue(t *testing.T, value bool, message string) {
	t.Helper()
	if !value {
		if message != "" {
			t.Errorf("Assertion failed: %s", message)
		} else {
			t.Error("Assertion failed")
		}
	}
}

// AssertScreenCharsInRectEqual asserts that the characters in a rectangle match expected strings.
func AssertScreenCharsInRectEqual(t *testing.T, d *Driver, rect Rect, expected []string) {
	t.Helper()
	actual := d.GetScreenCharsInRect(rect)

	if len(actual) != len(expected) {
		t.Errorf("Line count mismatch: expected %d lines, got %d lines", len(expected), len(actual))
		return
	}

	for i, expectedLine := range expected {
		if actual[i] != expectedLine {
			t.Errorf("Line %d: expected %q, got %q", i+1, expectedLine, actual[i])
		}
	}
}

// --- Escape Sequence Commands ---

// csi formats a CSI sequence with optional numeric parameters.
func csi(final string, n ...int) string {
	parts := make([]string, len(n))
	for i, v := range n {
		parts[i] = fmt.Sprint(v)
	}
	return ESC + "[" + strings.Join(parts, ";") + final
}

// CUP (Cursor Position) - Move cursor to specified position.
func CUP(d *Driver, p Point) {
	d.WriteRaw(csi("H", p.Y, p.X))
}

// CUU (Cursor Up) - Move cursor up by n lines.
func CUU(d *Driver, n ...int) {
	d.WriteRaw(csi("A", n...))
}

// CUD (Cursor Down) - Move cursor down by n lines.
func CUD(d *Driver, n ...int) {
	d.WriteRaw(csi("B", n...))
}

// CUF (Cursor Forward) - Move cursor forward by n columns.
func CUF(d *Driver, n ...int) {
	d.WriteRaw(csi("C", n...))
}

// CUB (Cursor Back) - Move cursor backward by n columns.
func CUB(d *Driver, n ...int) {
	d.WriteRaw(csi("D", n...))
}

// CNL (Cursor Next Line) - Move cursor down n lines to column 1.
func CNL(d *Driver, n ...int) {
	d.WriteRaw(csi("E", n...))
}

// CPL (Cursor Previous Line) - Move cursor up n lines to column 1.
func CPL(d *Driver, n ...int) {
	d.WriteRaw(csi("F", n...))
}

// CHA (Cursor Horizontal Absolute) - Move cursor to column n on current line.
func CHA(d *Driver, n ...int) {
	d.WriteRaw(csi("G", n...))
}

// VPA (Vertical Position Absolute) - Move cursor to row n on current column.
func VPA(d *Driver, n ...int) {
	d.WriteRaw(csi("d", n...))
}

// HVP (Horizontal and Vertical Position) - Same as CUP but uses 'f'.
func HVP(d *Driver, p Point) {
	d.WriteRaw(csi("f", p.Y, p.X))
}

// HPA (Horizontal Position Absolute) - Move cursor to absolute column.
func HPA(d *Driver, n ...int) {
	d.WriteRaw(csi("`", n...))
}

// HPR (Horizontal Position Relative) - Move cursor right by n columns.
func HPR(d *Driver, n ...int) {
	d.WriteRaw(csi("a", n...))
}

// VPR (Vertical Position Relative) - Move cursor down by n rows.
func VPR(d *Driver, n ...int) {
	d.WriteRaw(csi("e", n...))
}

// ICH (Insert Character) - Insert n blank characters at cursor position.
func ICH(d *Driver, n ...int) {
	d.WriteRaw(csi("@", n...))
}

// DCH (Delete Character) - Delete n characters at cursor position.
func DCH(d *Driver, n ...int) {
	d.WriteRaw(csi("P", n...))
}

// ECH (Erase Character) - Erase n characters at cursor position.
func ECH(d *Driver, n ...int) {
	d.WriteRaw(csi("X", n...))
}

// REP (Repeat) - Repeat the previous graphic character n times.
func REP(d *Driver, n ...int) {
	d.WriteRaw(csi("b", n...))
}

// IL (Insert Line) - Insert n blank lines at cursor position.
func IL(d *Driver, n ...int) {
	d.WriteRaw(csi("L", n...))
}

// DL (Delete Line) - Delete n lines at cursor position.
func DL(d *Driver, n ...int) {
	d.WriteRaw(csi("M", n...))
}

// ED (Erase in Display) - Erase parts of the display.
func ED(d *Driver, n ...int) {
	d.WriteRaw(csi("J", n...))
}

// EL (Erase in Line) - Erase parts of the line.
func EL(d *Driver, n ...int) {
	d.WriteRaw(csi("K", n...))
}

// SU (Scroll Up) - Scroll up by n lines (default 1).
func SU(d *Driver, n ...int) {
	d.WriteRaw(csi("S", n...))
}

// SD (Scroll Down) - Scroll down by n lines (default 1).
func SD(d *Driver, n ...int) {
	d.WriteRaw(csi("T", n...))
}

// CHT (Cursor Horizontal Tab) - Move cursor forward n tab stops.
func CHT(d *Driver, n ...int) {
	d.WriteRaw(csi("I", n...))
}

// CBT (Cursor Backward Tab) - Move cursor backward n tab stops.
func CBT(d *Driver, n ...int) {
	d.WriteRaw(csi("Z", n...))
}

// HTS (Horizontal Tab Set) - Set a tab stop at current column (ESC H).
func HTS(d *Driver) {
	d.WriteRaw(ESC + "H")
}

// TBC (Tab Clear) - Clear tab stops. 0: at cursor, 3: all.
func TBC(d *Driver, n ...int) {
	d.WriteRaw(csi("g", n...))
}

// IND (Index) - Move cursor down one line, scroll if at bottom margin.
func IND(d *Driver) {
	d.WriteRaw(ESC + "D")
}

// RI (Reverse Index) - Move cursor up one line, scroll if at top margin.
func RI(d *Driver) {
	d.WriteRaw(ESC + "M")
}

// NEL (Next Line) - Move cursor to next line and column 1.
func NEL(d *Driver) {
	d.WriteRaw(ESC + "E")
}

// CR (Carriage Return) - Move cursor to column 1.
func CR(d *Driver) {
	d.WriteRaw("\r")
}

// LF (Line Feed) - Move cursor down one line.
func LF(d *Driver) {
	d.WriteRaw("\n")
}

// BS (Backspace) - Move cursor one column left.
func BS(d *Driver) {
	d.WriteRaw("\x08")
}

// VT (Vertical Tab) - Move cursor down one line (same as LF).
func VT(d *Driver) {
	d.WriteRaw("\v")
}

// FF (Form Feed) - Move cursor down one line (same as LF).
func FF(d *Driver) {
	d.WriteRaw("\f")
}

// TAB (Horizontal Tab) - Move cursor to the next tab stop.
func TAB(d *Driver) {
	d.WriteRaw("\t")
}

// DECALN (Screen Alignment Test) - Fill the screen with E's.
func DECALN(d *Driver) {
	d.WriteRaw(ESC + "#8")
}

// DECSTBM (Set Top and Bottom Margins) - Set scrolling region.
// Zero arguments reset the margins.
func DECSTBM(d *Driver, top, bottom int) {
	if top == 0 && bottom == 0 {
		d.WriteRaw(ESC + "[r")
	} else {
		d.WriteRaw(csi("r", top, bottom))
	}
}

// DECSC (Save Cursor) - Save cursor position and attributes (ESC 7).
func DECSC(d *Driver) {
	d.WriteRaw(ESC + "7")
}

// DECRC (Restore Cursor) - Restore cursor position and attributes (ESC 8).
func DECRC(d *Driver) {
	d.WriteRaw(ESC + "8")
}

// RIS (Reset to Initial State) - Hard terminal reset (ESC c).
func RIS(d *Driver) {
	d.WriteRaw(ESC + "c")
}

// SCOSC (Save Cursor, ANSI.SYS style) - CSI s.
func SCOSC(d *Driver) {
	d.WriteRaw(ESC + "[s")
}

// SCORC (Restore Cursor, ANSI.SYS style) - CSI u.
func SCORC(d *Driver) {
	d.WriteRaw(ESC + "[u")
}

// DECSET - Set DEC Private Mode.
func DECSET(d *Driver, mode int) {
	d.WriteRaw(fmt.Sprintf("%s[?%dh", ESC, mode))
}

// DECRESET - Reset DEC Private Mode.
func DECRESET(d *Driver, mode int) {
	d.WriteRaw(fmt.Sprintf("%s[?%dl", ESC, mode))
}

// SM - Set ANSI Mode.
func SM(d *Driver, mode int) {
	d.WriteRaw(csi("h", mode))
}

// RM - Reset ANSI Mode.
func RM(d *Driver, mode int) {
	d.WriteRaw(csi("l", mode))
}

// DEC Private Mode constants.
const (
	DECCOLM = 3 // Column mode (132/80)
	DECOM   = 6 // Origin mode
	DECAWM  = 7 // Auto-wrap mode
)

// ANSI mode constants.
const (
	IRM = 4  // Insert/replace mode
	LNM = 20 // Linefeed/newline mode
)

// Blank returns a space character (used for blank cells).
func Blank() string {
	return " "
}

// Repeat returns a string repeated n times.
func Repeat(s string, n int) string {
	return strings.Repeat(s, n)
}
