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
	"github.com/framegrace/texelterm/term"
)

// Driver provides a headless interface to a terminal instance for testing.
// It allows sending escape sequences and text, and querying terminal state.
type Driver struct {
	term   *term.Terminal
	width  int
	height int
}

// NewDriver creates a new headless terminal driver with the given dimensions.
func NewDriver(width, height int) *Driver {
	return &Driver{
		term:   term.New(term.Options{Rows: height, Cols: width}),
		width:  width,
		height: height,
	}
}

// Write sends text to the terminal.
func (d *Driver) Write(text string) {
	d.term.ProcessTty([]byte(text))
}

// WriteRaw sends raw bytes to the terminal, including escape sequences.
func (d *Driver) WriteRaw(data string) {
	d.term.ProcessTty([]byte(data))
}

// GetCursorPosition returns the current cursor position (1-indexed).
// In origin mode, returns the position relative to the top margin.
func (d *Driver) GetCursorPosition() Point {
	b := d.term.Buffer()
	p := b.CursorPos()
	y := p.Row
	if d.term.Modes().Has(term.ModeOrigin) {
		top, _ := b.Margins()
		y -= top
	}
	return NewPoint(p.Col+1, y+1)
}

// GetScreenSize returns the terminal dimensions in cells. The size is
// read live, so sequences that resize the screen are reflected.
func (d *Driver) GetScreenSize() Size {
	rows, cols := d.term.Size()
	return NewSize(cols, rows)
}

// GetScreenCharsInRect returns the characters in the specified rectangle.
// The rectangle is 1-indexed to match VT conventions.
func (d *Driver) GetScreenCharsInRect(rect Rect) []string {
	b := d.term.Buffer()
	rows, cols := d.term.Size()
	lines := make([]string, 0, rect.Height())
	for y := rect.Top; y <= rect.Bottom; y++ {
		if y < 1 || y > rows {
			lines = append(lines, "")
			continue
		}
		line := ""
		for x := rect.Left; x <= rect.Right; x++ {
			if x < 1 || x > cols {
				line += " "
				continue
			}
			cell := b.Line(y - 1).Cell(x - 1)
			if cell.Rune == 0 {
				line += " "
			} else {
				line += string(cell.Rune)
			}
		}
		lines = append(lines, line)
	}
	return lines
}

// GetScreenChar returns the character at the specified position (1-indexed).
func (d *Driver) GetScreenChar(p Point) rune {
	rows, cols := d.term.Size()
	if p.X < 1 || p.X > cols || p.Y < 1 || p.Y > rows {
		return ' '
	}
	cell := d.term.Buffer().Line(p.Y - 1).Cell(p.X - 1)
	if cell.Rune == 0 {
		return ' '
	}
	return cell.Rune
}

// Reset resets the terminal to its initial state.
func (d *Driver) Reset() {
	d.term = term.New(term.Options{Rows: d.height, Cols: d.width})
}
