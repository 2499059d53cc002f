// Copyright © 2025 Texelterm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelterm/palette.go
// Summary: The xterm 256-color palette plus default fg/bg slots, and the
//          mapping from interpreter colors to tcell colors.

package main

import (
	"strconv"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelterm/buffer"
	"github.com/framegrace/texelterm/config"
)

// Slots 256 and 257 hold the default foreground and background.
const (
	slotDefaultFG = 256
	slotDefaultBG = 257
)

// newPalette builds the standard xterm 256-color palette and applies the
// configured default foreground and background.
func newPalette(cfg config.Config) [258]tcell.Color {
	var p [258]tcell.Color

	// First 16 ANSI colors.
	p[0] = tcell.NewRGBColor(0, 0, 0)        // Black
	p[1] = tcell.NewRGBColor(128, 0, 0)      // Maroon
	p[2] = tcell.NewRGBColor(0, 128, 0)      // Green
	p[3] = tcell.NewRGBColor(128, 128, 0)    // Olive
	p[4] = tcell.NewRGBColor(0, 0, 128)      // Navy
	p[5] = tcell.NewRGBColor(128, 0, 128)    // Purple
	p[6] = tcell.NewRGBColor(0, 128, 128)    // Teal
	p[7] = tcell.NewRGBColor(192, 192, 192)  // Silver
	p[8] = tcell.NewRGBColor(128, 128, 128)  // Grey
	p[9] = tcell.NewRGBColor(255, 0, 0)      // Red
	p[10] = tcell.NewRGBColor(0, 255, 0)     // Lime
	p[11] = tcell.NewRGBColor(255, 255, 0)   // Yellow
	p[12] = tcell.NewRGBColor(0, 0, 255)     // Blue
	p[13] = tcell.NewRGBColor(255, 0, 255)   // Fuchsia
	p[14] = tcell.NewRGBColor(0, 255, 255)   // Aqua
	p[15] = tcell.NewRGBColor(255, 255, 255) // White

	// 6x6x6 color cube.
	levels := []int32{0, 95, 135, 175, 215, 255}
	i := 16
	for r := 0; r < 6; r++ {
		for g := 0; g < 6; g++ {
			for b := 0; b < 6; b++ {
				p[i] = tcell.NewRGBColor(levels[r], levels[g], levels[b])
				i++
			}
		}
	}

	// Grayscale ramp.
	for j := 0; j < 24; j++ {
		gray := int32(8 + j*10)
		p[i] = tcell.NewRGBColor(gray, gray, gray)
		i++
	}

	p[slotDefaultFG] = p[15]
	p[slotDefaultBG] = p[0]
	if c, ok := parseHexColor(cfg.GetString("colors", "foreground", "")); ok {
		p[slotDefaultFG] = c
	}
	if c, ok := parseHexColor(cfg.GetString("colors", "background", "")); ok {
		p[slotDefaultBG] = c
	}
	return p
}

// parseHexColor parses "#rrggbb".
func parseHexColor(s string) (tcell.Color, bool) {
	if len(s) != 7 || s[0] != '#' {
		return 0, false
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return 0, false
	}
	return tcell.NewRGBColor(
		int32(v>>16&0xff), int32(v>>8&0xff), int32(v&0xff)), true
}

// mapColor resolves an interpreter color against the palette. isBg picks
// the default slot for mode-default colors.
func mapColor(p *[258]tcell.Color, c buffer.Color, isBg bool) tcell.Color {
	switch c.Mode {
	case buffer.ColorModeDefault:
		if isBg {
			return p[slotDefaultBG]
		}
		return p[slotDefaultFG]
	case buffer.ColorModeStock, buffer.ColorMode256:
		return p[c.Value]
	case buffer.ColorModeRGB:
		return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
	}
	return tcell.ColorDefault
}

// mapAttrs folds interpreter attributes onto a tcell style.
func mapAttrs(st tcell.Style, attr buffer.Attribute) tcell.Style {
	if attr&buffer.AttrBold != 0 {
		st = st.Bold(true)
	}
	if attr&buffer.AttrFaint != 0 {
		st = st.Dim(true)
	}
	if attr&buffer.AttrItalic != 0 {
		st = st.Italic(true)
	}
	if attr&buffer.AttrUnderline != 0 {
		st = st.Underline(true)
	}
	if attr&buffer.AttrBlink != 0 {
		st = st.Blink(true)
	}
	return st
}
