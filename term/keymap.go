// Copyright © 2025 Texelterm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: term/keymap.go
// Summary: Table-driven key encoding: (key, modifiers, mode conditions)
//          to transmitted bytes. First matching entry wins.

package term

import "github.com/gdamore/tcell/v2"

// cond is a tri-state mode requirement on a keymap entry.
type cond int8

const (
	condAny cond = iota
	condOn
	condOff
)

func (c cond) ok(set bool) bool {
	switch c {
	case condOn:
		return set
	case condOff:
		return !set
	}
	return true
}

// anyMods matches every modifier combination.
const anyMods tcell.ModMask = 1 << 14

type keyEntry struct {
	key       tcell.Key
	mods      tcell.ModMask
	appCursor cond
	appKeypad cond
	crlf      cond
	delAsDel  cond
	out       string
}

// keymap follows the xterm sequences. Ordering matters: mode-qualified
// entries precede their fallbacks.
var keymap = []keyEntry{
	{key: tcell.KeyUp, appCursor: condOn, out: "\x1bOA"},
	{key: tcell.KeyUp, out: "\x1b[A"},
	{key: tcell.KeyDown, appCursor: condOn, out: "\x1bOB"},
	{key: tcell.KeyDown, out: "\x1b[B"},
	{key: tcell.KeyRight, appCursor: condOn, out: "\x1bOC"},
	{key: tcell.KeyRight, out: "\x1b[C"},
	{key: tcell.KeyLeft, appCursor: condOn, out: "\x1bOD"},
	{key: tcell.KeyLeft, out: "\x1b[D"},

	{key: tcell.KeyHome, appCursor: condOn, out: "\x1bOH"},
	{key: tcell.KeyHome, out: "\x1b[H"},
	{key: tcell.KeyEnd, appCursor: condOn, out: "\x1bOF"},
	{key: tcell.KeyEnd, out: "\x1b[F"},

	{key: tcell.KeyInsert, out: "\x1b[2~"},
	{key: tcell.KeyDelete, out: "\x1b[3~"},
	{key: tcell.KeyPgUp, out: "\x1b[5~"},
	{key: tcell.KeyPgDn, out: "\x1b[6~"},

	{key: tcell.KeyF1, out: "\x1bOP"},
	{key: tcell.KeyF2, out: "\x1bOQ"},
	{key: tcell.KeyF3, out: "\x1bOR"},
	{key: tcell.KeyF4, out: "\x1bOS"},
	{key: tcell.KeyF5, out: "\x1b[15~"},
	{key: tcell.KeyF6, out: "\x1b[17~"},
	{key: tcell.KeyF7, out: "\x1b[18~"},
	{key: tcell.KeyF8, out: "\x1b[19~"},
	{key: tcell.KeyF9, out: "\x1b[20~"},
	{key: tcell.KeyF10, out: "\x1b[21~"},
	{key: tcell.KeyF11, out: "\x1b[23~"},
	{key: tcell.KeyF12, out: "\x1b[24~"},
	{key: tcell.KeyF13, out: "\x1b[1;2P"},
	{key: tcell.KeyF14, out: "\x1b[1;2Q"},
	{key: tcell.KeyF15, out: "\x1b[1;2R"},
	{key: tcell.KeyF16, out: "\x1b[1;2S"},
	{key: tcell.KeyF17, out: "\x1b[15;2~"},
	{key: tcell.KeyF18, out: "\x1b[17;2~"},
	{key: tcell.KeyF19, out: "\x1b[18;2~"},
	{key: tcell.KeyF20, out: "\x1b[19;2~"},
	{key: tcell.KeyF21, out: "\x1b[20;2~"},
	{key: tcell.KeyF22, out: "\x1b[21;2~"},
	{key: tcell.KeyF23, out: "\x1b[23;2~"},
	{key: tcell.KeyF24, out: "\x1b[24;2~"},
	{key: tcell.KeyF25, out: "\x1b[1;5P"},
	{key: tcell.KeyF26, out: "\x1b[1;5Q"},
	{key: tcell.KeyF27, out: "\x1b[1;5R"},
	{key: tcell.KeyF28, out: "\x1b[1;5S"},
	{key: tcell.KeyF29, out: "\x1b[15;5~"},
	{key: tcell.KeyF30, out: "\x1b[17;5~"},
	{key: tcell.KeyF31, out: "\x1b[18;5~"},
	{key: tcell.KeyF32, out: "\x1b[19;5~"},
	{key: tcell.KeyF33, out: "\x1b[20;5~"},
	{key: tcell.KeyF34, out: "\x1b[21;5~"},
	{key: tcell.KeyF35, out: "\x1b[23;5~"},

	{key: tcell.KeyEnter, crlf: condOn, out: "\r\n"},
	{key: tcell.KeyEnter, out: "\r"},

	{key: tcell.KeyBacktab, out: "\x1b[Z"},
	{key: tcell.KeyTab, out: "\t"},

	{key: tcell.KeyBackspace2, delAsDel: condOn, out: "\x7f"},
	{key: tcell.KeyBackspace2, out: "\x08"},

	{key: tcell.KeyEsc, out: "\x1b"},
}

// encodeKey scans the keymap; it returns nil when no entry matches.
func (t *Terminal) encodeKey(key tcell.Key, mods tcell.ModMask) []byte {
	for i := range keymap {
		e := &keymap[i]
		if e.key != key {
			continue
		}
		if e.mods != anyMods && e.mods != mods {
			continue
		}
		if !e.appCursor.ok(t.modes.Has(ModeAppCursor)) {
			continue
		}
		if !e.appKeypad.ok(t.modes.Has(ModeAppKeypad)) {
			continue
		}
		if !e.crlf.ok(t.modes.Has(ModeCrOnLf)) {
			continue
		}
		if !e.delAsDel.ok(t.modes.Has(ModeDeleteSendsDel)) {
			continue
		}
		return []byte(e.out)
	}
	return nil
}
