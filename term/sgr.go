// Copyright © 2025 Texelterm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: term/sgr.go
// Summary: Select Graphic Rendition: attribute and color handling,
//          including 256-color and direct-color forms.

package term

import "github.com/framegrace/texelterm/buffer"

// selectGraphicRendition folds an SGR parameter list into the current
// rendition left to right.
func (t *Terminal) selectGraphicRendition(params []int) {
	if len(params) == 0 {
		t.active.SetStyle(buffer.DefaultStyle())
		return
	}
	s := t.active.Style()
	for i := 0; i < len(params); i++ {
		p := params[i]
		if p < 0 {
			p = 0
		}
		switch {
		case p == 0:
			s = buffer.DefaultStyle()
		case p == 1:
			s.Attr |= buffer.AttrBold
		case p == 2:
			s.Attr |= buffer.AttrFaint
		case p == 3:
			s.Attr |= buffer.AttrItalic
		case p == 4:
			s.Attr |= buffer.AttrUnderline
		case p == 5:
			s.Attr |= buffer.AttrBlink
		case p == 7:
			s.Attr |= buffer.AttrInverse
		case p == 8:
			s.Attr |= buffer.AttrConceal
		case p == 22:
			s.Attr &^= buffer.AttrBold | buffer.AttrFaint
		case p == 23:
			s.Attr &^= buffer.AttrItalic
		case p == 24:
			s.Attr &^= buffer.AttrUnderline
		case p == 25:
			s.Attr &^= buffer.AttrBlink
		case p == 27:
			s.Attr &^= buffer.AttrInverse
		case p == 28:
			s.Attr &^= buffer.AttrConceal
		case p >= 30 && p <= 37:
			s.FG = buffer.StockColor(uint8(p - 30))
		case p == 38:
			c, n, ok := extendedColor(params[i+1:])
			if !ok {
				t.active.SetStyle(s)
				return
			}
			s.FG = c
			i += n
		case p == 39:
			s.FG = buffer.Color{Mode: buffer.ColorModeDefault}
		case p >= 40 && p <= 47:
			s.BG = buffer.StockColor(uint8(p - 40))
		case p == 48:
			c, n, ok := extendedColor(params[i+1:])
			if !ok {
				t.active.SetStyle(s)
				return
			}
			s.BG = c
			i += n
		case p == 49:
			s.BG = buffer.Color{Mode: buffer.ColorModeDefault}
		case p >= 90 && p <= 97:
			s.FG = buffer.StockColor(uint8(p - 90 + 8))
		case p >= 100 && p <= 107:
			s.BG = buffer.StockColor(uint8(p - 100 + 8))
		default:
			t.logUnhandled("SGR %d", p)
		}
	}
	t.active.SetStyle(s)
}

// extendedColor parses the tail of a 38/48 clause: `5;n` indexed or
// `2;r;g;b` direct. Returns the parameters consumed.
func extendedColor(rest []int) (buffer.Color, int, bool) {
	if len(rest) >= 2 && rest[0] == 5 {
		n := rest[1]
		if n < 0 || n > 255 {
			return buffer.Color{}, 0, false
		}
		return buffer.IndexedColor(uint8(n)), 2, true
	}
	if len(rest) >= 4 && rest[0] == 2 {
		r, g, b := rest[1], rest[2], rest[3]
		if r < 0 || r > 255 || g < 0 || g > 255 || b < 0 || b > 255 {
			return buffer.Color{}, 0, false
		}
		return buffer.RGBColor(uint8(r), uint8(g), uint8(b)), 4, true
	}
	return buffer.Color{}, 0, false
}
