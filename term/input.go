// Copyright © 2025 Texelterm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: term/input.go
// Summary: Keyboard entry point: binding lookup, key encoding, the ALT
//          transformations, local echo and paste guards.

package term

import (
	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelterm/utf8x"
)

// KeyPress encodes one key event toward the child. Bound actions are
// consumed locally and never reach the pty.
func (t *Terminal) KeyPress(key tcell.Key, r rune, mods tcell.ModMask) {
	t.beginDispatch("KeyPress")
	defer t.endDispatch()

	if act, ok := t.lookupBinding(key, r, mods); ok {
		t.perform(act)
		t.repair()
		return
	}
	if t.modes.Has(ModeKbdLock) {
		return
	}

	data := t.encodeKey(key, mods)
	if data == nil {
		data = t.encodeRune(key, r, mods)
	}
	if data == nil {
		return
	}
	if mods&tcell.ModAlt != 0 && t.modes.Has(ModeAltSendsEsc) {
		data = append([]byte{0x1b}, data...)
	}
	t.send(data)
	if t.modes.Has(ModeEcho) {
		t.localEcho(data)
	}
	if t.opts.ScrollOnKeyPress && t.active.ScrollBottomHistory() {
		t.active.DamageViewport(true)
	}
	t.repair()
}

// encodeRune encodes a printable or control key with no table entry.
func (t *Terminal) encodeRune(key tcell.Key, r rune, mods tcell.ModMask) []byte {
	if key != tcell.KeyRune {
		// Ctrl combinations arrive as the control byte itself.
		if key > 0 && key < 0x20 {
			return []byte{byte(key)}
		}
		return nil
	}
	if r == 0 {
		return nil
	}
	if mods&tcell.ModAlt != 0 && !t.modes.Has(ModeAltSendsEsc) && t.modes.Has(ModeMeta8Bit) && r < 0x80 {
		// Meta sets the high bit; the result travels as UTF-8.
		r |= 0x80
	}
	var enc [4]byte
	n := utf8x.Encode(r, enc[:])
	out := make([]byte, n)
	copy(out, enc[:n])
	return out
}

// Paste transmits pasted text, wrapped in guards when the child asked
// for bracketed paste.
func (t *Terminal) Paste(text string) {
	t.beginDispatch("Paste")
	defer t.endDispatch()
	if len(text) == 0 {
		return
	}
	if t.modes.Has(ModeBracketedPaste) {
		t.send([]byte("\x1b[200~"))
		t.send([]byte(text))
		t.send([]byte("\x1b[201~"))
	} else {
		t.send([]byte(text))
	}
	if t.opts.ScrollOnPaste && t.active.ScrollBottomHistory() {
		t.active.DamageViewport(true)
	}
	t.repair()
}
