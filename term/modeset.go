// Copyright © 2025 Texelterm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: term/modeset.go
// Summary: CSI h/l mode switching, including the alternate screen and
//          the mutually-exclusive mouse protocols.
// Notes: ANSI mode 12 (SRM) has inverted sense: set means echo off.

package term

import "github.com/framegrace/texelterm/buffer"

// privateMode maps a DEC private mode number to its flag.
func privateMode(param int) (Mode, bool) {
	switch param {
	case 1:
		return ModeAppCursor, true
	case 5:
		return ModeReverse, true
	case 6:
		return ModeOrigin, true
	case 7:
		return ModeAutoWrap, true
	case 8:
		return ModeAutoRepeat, true
	case 25:
		return ModeShowCursor, true
	case 1000:
		return ModeMousePressRelease, true
	case 1002:
		return ModeMouseDrag, true
	case 1003:
		return ModeMouseMotion, true
	case 1004:
		return ModeFocus, true
	case 1006:
		return ModeMouseFormatSGR, true
	case 1034:
		return ModeMeta8Bit, true
	case 1037:
		return ModeDeleteSendsDel, true
	case 1039:
		return ModeAltSendsEsc, true
	case 2004:
		return ModeBracketedPaste, true
	}
	return 0, false
}

// ansiMode maps an ANSI (non-private) mode number to its flag.
func ansiMode(param int) (Mode, bool) {
	switch param {
	case 2:
		return ModeKbdLock, true
	case 4:
		return ModeInsert, true
	case 12:
		return ModeEcho, true
	case 20:
		return ModeCrOnLf, true
	}
	return 0, false
}

// mouseProtocols are mutually exclusive; enabling one clears the rest.
const mouseProtocols = ModeMousePressRelease | ModeMouseDrag | ModeMouseMotion

func (t *Terminal) setModes(priv byte, params []int, on bool) {
	for i := range params {
		p := params[i]
		if p < 0 {
			continue
		}
		if priv == '?' {
			t.setPrivateMode(p, on)
		} else {
			t.setAnsiMode(p, on)
		}
	}
}

func (t *Terminal) setPrivateMode(param int, on bool) {
	switch param {
	case 3:
		// DECCOLM resets the screen before switching 132/80 columns.
		t.active.SetMargins(0, t.opts.Rows)
		t.active.MoveCursor(buffer.Pos{}, false)
		t.active.Clear()
		cols := 80
		if on {
			cols = 132
		}
		t.resizeBuffers(t.opts.Rows, cols)
		return
	case 47:
		t.switchScreen(on, false, false)
		return
	case 1047:
		t.switchScreen(on, false, false)
		return
	case 1048:
		if on {
			t.saveCursorFull()
		} else {
			t.restoreCursorFull()
		}
		return
	case 1049:
		t.switchScreen(on, true, true)
		return
	case 1005, 1015:
		// Recognised mouse formats that are never emitted.
		return
	}
	m, ok := privateMode(param)
	if !ok {
		t.logUnhandled("CSI ?%d h/l", param)
		return
	}
	if on && m&mouseProtocols != 0 {
		t.modes.Set(mouseProtocols, false)
	}
	switch m {
	case ModeReverse:
		if t.modes.Has(ModeReverse) != on {
			t.active.DamageViewport(true)
		}
	case ModeShowCursor:
		t.active.DamageViewport(false)
	}
	t.modes.Set(m, on)
	if m == ModeOrigin {
		// Origin changes rehome the cursor within the new frame.
		t.active.MoveCursor(buffer.Pos{}, on)
	}
}

func (t *Terminal) setAnsiMode(param int, on bool) {
	m, ok := ansiMode(param)
	if !ok {
		t.logUnhandled("CSI %d h/l", param)
		return
	}
	if param == 12 {
		on = !on
	}
	t.modes.Set(m, on)
}

// switchScreen enters or leaves the alternate buffer. With save set the
// cursor is saved on entry and restored on exit; with clear set the
// alternate screen starts blank.
func (t *Terminal) switchScreen(toAlt, save, clear bool) {
	if toAlt == t.inAlt {
		return
	}
	if toAlt {
		if save {
			t.saveCursorFull()
		}
		t.altScreen.MigrateFrom(t.primary, clear)
		t.active = t.altScreen
		t.inAlt = true
	} else {
		t.primary.MigrateFrom(t.altScreen, false)
		t.active = t.primary
		t.inAlt = false
		if save {
			t.restoreCursorFull()
		}
	}
	t.active.DamageViewport(true)
}
