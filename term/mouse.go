// Copyright © 2025 Texelterm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: term/mouse.go
// Summary: Mouse entry points: reporting encoders (SGR and legacy) and
//          local selection when the child is not listening.
// Notes: Coordinates are viewport cells, zero-based. Shift overrides
//        reporting so local selection stays reachable.

package term

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelterm/buffer"
)

// Button indices. Wheel buttons never report release.
const (
	MouseLeft = iota
	MouseMiddle
	MouseRight
	MouseWheelUp
	MouseWheelDown
)

// ButtonPress handles a button going down at a viewport cell.
func (t *Terminal) ButtonPress(button, col, row int, mods tcell.ModMask, clickCount int) {
	t.beginDispatch("ButtonPress")
	defer t.endDispatch()

	if button == MouseWheelUp || button == MouseWheelDown {
		t.wheel(button, col, row, mods)
		t.repair()
		return
	}
	if t.reporting(mods) {
		t.buttonDown = true
		t.pressedButton = button
		t.reportMouse(true, button, col, row, mods, false)
		return
	}
	if button == MouseLeft {
		t.buttonDown = true
		t.pressedButton = button
		pos := t.active.ViewHPos(row, col, buffer.LeftHand)
		if clickCount > 1 {
			t.active.ExpandSelection(pos, clickCount)
		} else {
			t.active.MarkSelection(pos)
		}
	}
	t.repair()
}

// ButtonRelease handles a button going up.
func (t *Terminal) ButtonRelease(col, row int, mods tcell.ModMask) {
	t.beginDispatch("ButtonRelease")
	defer t.endDispatch()

	down := t.buttonDown
	t.buttonDown = false
	if t.reporting(mods) {
		if down {
			t.reportMouse(false, t.pressedButton, col, row, mods, false)
		}
		return
	}
	if down && t.pressedButton == MouseLeft && t.active.HasSelection() {
		if t.Copy != nil {
			if text := t.active.GetSelectedText(); text != "" {
				t.Copy(text)
			}
		}
	}
	t.repair()
}

// PointerMotion handles movement, with or without a held button.
func (t *Terminal) PointerMotion(col, row int, mods tcell.ModMask) {
	t.beginDispatch("PointerMotion")
	defer t.endDispatch()

	if t.reporting(mods) {
		switch {
		case t.modes.Has(ModeMouseMotion):
			button := 3 // no button
			if t.buttonDown {
				button = t.pressedButton
			}
			t.reportMouse(true, button, col, row, mods, true)
		case t.modes.Has(ModeMouseDrag) && t.buttonDown:
			t.reportMouse(true, t.pressedButton, col, row, mods, true)
		}
		return
	}
	if t.buttonDown && t.pressedButton == MouseLeft {
		rect := mods&tcell.ModCtrl != 0
		t.active.DelimitSelection(t.active.ViewHPos(row, col, buffer.RightHand), rect)
		t.repair()
	}
}

// wheel scrolls history locally unless the child asked for the events.
func (t *Terminal) wheel(button, col, row int, mods tcell.ModMask) {
	if t.reporting(mods) {
		t.reportMouse(true, button, col, row, mods, false)
		return
	}
	if button == MouseWheelUp {
		t.active.ScrollUpHistory(wheelLines)
	} else {
		t.active.ScrollDownHistory(wheelLines)
	}
}

const wheelLines = 3

// reporting reports whether mouse events go to the child. Shift keeps
// the event local.
func (t *Terminal) reporting(mods tcell.ModMask) bool {
	if mods&tcell.ModShift != 0 {
		return false
	}
	return t.modes.Has(ModeMousePressRelease) ||
		t.modes.Has(ModeMouseDrag) ||
		t.modes.Has(ModeMouseMotion)
}

// reportMouse encodes one event in the negotiated format.
func (t *Terminal) reportMouse(press bool, button, col, row int, mods tcell.ModMask, motion bool) {
	code := button
	if button == MouseWheelUp || button == MouseWheelDown {
		code = 64 + button - MouseWheelUp
	}
	if mods&tcell.ModShift != 0 {
		code += 4
	}
	if mods&tcell.ModAlt != 0 {
		code += 8
	}
	if mods&tcell.ModCtrl != 0 {
		code += 16
	}
	if motion {
		code += 32
	}

	if t.modes.Has(ModeMouseFormatSGR) {
		final := byte('M')
		if !press {
			final = 'm'
		}
		t.send([]byte(fmt.Sprintf("\x1b[<%d;%d;%d%c", code, col+1, row+1, final)))
		return
	}
	// Legacy X10 bytes cannot address past 222.
	if col >= 223 || row >= 223 {
		return
	}
	if !press {
		code = (code &^ 3) | 3
	}
	t.send([]byte{0x1b, '[', 'M', byte(32 + code), byte(33 + col), byte(33 + row)})
}

