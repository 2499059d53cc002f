// Copyright © 2025 Texelterm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: buffer/cell.go
// Summary: Cell, color and attribute primitives for the terminal grid.
// Usage: Consumed by the interpreter when applying SGR and by renderers.
// Notes: Keeps grid state isolated from rendering.

package buffer

import "strings"

// Attribute is a bitset of SGR rendition flags.
type Attribute uint16

const (
	AttrBold Attribute = 1 << iota
	AttrFaint
	AttrItalic
	AttrUnderline
	AttrBlink
	AttrInverse
	AttrConceal
)

// String returns a human-readable representation of the attribute flags.
func (a Attribute) String() string {
	if a == 0 {
		return "none"
	}
	var parts []string
	for _, f := range []struct {
		bit  Attribute
		name string
	}{
		{AttrBold, "bold"},
		{AttrFaint, "faint"},
		{AttrItalic, "italic"},
		{AttrUnderline, "underline"},
		{AttrBlink, "blink"},
		{AttrInverse, "inverse"},
		{AttrConceal, "conceal"},
	} {
		if a&f.bit != 0 {
			parts = append(parts, f.name)
		}
	}
	if len(parts) == 0 {
		return "unknown"
	}
	return strings.Join(parts, "|")
}

// ColorMode defines the type of color stored.
type ColorMode int

const (
	ColorModeDefault ColorMode = iota // Default terminal color
	ColorModeStock                    // The 16 stock ANSI colors
	ColorMode256                      // 256-color palette
	ColorModeRGB                      // 24-bit "true" color
)

// Color represents a color in potentially different modes.
type Color struct {
	Mode    ColorMode
	Value   uint8 // Holds the color index for Stock (0-15) and 256-mode
	R, G, B uint8 // Holds the channels for RGB mode
}

// StockColor returns one of the 16 stock ANSI colors.
func StockColor(index uint8) Color {
	return Color{Mode: ColorModeStock, Value: index}
}

// IndexedColor returns a color from the 256-color palette.
func IndexedColor(index uint8) Color {
	return Color{Mode: ColorMode256, Value: index}
}

// RGBColor returns a 24-bit direct color.
func RGBColor(r, g, b uint8) Color {
	return Color{Mode: ColorModeRGB, R: r, G: g, B: b}
}

// Predefined default colors for convenience.
var (
	DefaultFG = Color{Mode: ColorModeDefault}
	DefaultBG = Color{Mode: ColorModeDefault}
)

// Style is the rendition applied to a cell.
type Style struct {
	FG   Color
	BG   Color
	Attr Attribute
}

// DefaultStyle returns the terminal's default rendition.
func DefaultStyle() Style {
	return Style{FG: DefaultFG, BG: DefaultBG}
}

// Cell represents a single character cell on the screen.
type Cell struct {
	Rune  rune
	Style Style
	Wide  bool // True if this cell holds a wide (2-column) character
}

// Blank returns an empty cell carrying the given style.
func Blank(style Style) Cell {
	return Cell{Rune: ' ', Style: style}
}

// IsBlank reports whether the cell displays as empty space.
func (c Cell) IsBlank() bool {
	return c.Rune == 0 || c.Rune == ' '
}
