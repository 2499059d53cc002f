// Copyright © 2025 Texelterm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: term/interp.go
// Summary: Parser event handlers: printables, C0 controls, ESC finals
//          and the CSI dispatch table.
// Usage: The vtparse.Parser calls these; they mutate the active buffer.

package term

import (
	"fmt"
	"log"

	"github.com/mattn/go-runewidth"

	"github.com/framegrace/texelterm/buffer"
)

// Print writes one translated rune at the cursor.
func (t *Terminal) Print(r rune) {
	r = t.active.ActiveCharSet().Sub(r)
	w := runewidth.RuneWidth(r)
	if w == 0 {
		// Combining marks are out of scope; drop them.
		return
	}
	t.lastPrinted = r
	t.place(r, w)
}

func (t *Terminal) place(r rune, w int) {
	b := t.active
	_, cols := b.Size()

	if b.WrapNext() {
		if t.modes.Has(ModeAutoWrap) {
			p := b.CursorPos()
			b.Line(p.Row).SetCont(true)
			b.SetWrapNext(false)
			b.MoveCursor(buffer.Pos{Row: p.Row, Col: 0}, false)
			if p.Row == t.marginBottom() {
				b.AddLine()
			} else {
				b.MoveCursor(buffer.Pos{Row: p.Row + 1, Col: 0}, false)
			}
		} else {
			b.SetWrapNext(false)
		}
	}

	p := b.CursorPos()
	if w == 2 && p.Col+2 > cols {
		// A wide glyph never straddles the edge.
		if !t.modes.Has(ModeAutoWrap) {
			return
		}
		b.Line(p.Row).SetCont(true)
		if p.Row == t.marginBottom() {
			b.AddLine()
			b.MoveCursor(buffer.Pos{Row: p.Row, Col: 0}, false)
		} else {
			b.MoveCursor(buffer.Pos{Row: p.Row + 1, Col: 0}, false)
		}
		p = b.CursorPos()
	}
	if t.modes.Has(ModeInsert) {
		b.InsertCells(p, w)
	}
	cell := buffer.Cell{Rune: r, Style: b.Style(), Wide: w == 2}
	b.SetCell(p, cell)
	if w == 2 {
		if p.Col+1 < cols {
			b.SetCell(buffer.Pos{Row: p.Row, Col: p.Col + 1}, buffer.Cell{Style: b.Style()})
		}
	}

	if p.Col+w >= cols {
		b.SetWrapNext(true)
	} else {
		b.MoveCursor(buffer.Pos{Row: p.Row, Col: p.Col + w}, false)
	}
}

// Execute handles a C0 control byte.
func (t *Terminal) Execute(b byte) {
	switch b {
	case 0x07: // BEL
		if t.Bell != nil {
			t.Bell()
		}
	case 0x08: // BS
		t.active.Backspace()
	case 0x09: // HT
		t.active.TabCursor(1, 1)
	case 0x0A, 0x0B, 0x0C: // LF VT FF
		t.active.ForwardIndex()
		if t.modes.Has(ModeCrOnLf) {
			t.carriageReturn()
		}
	case 0x0D: // CR
		t.carriageReturn()
	case 0x0E: // SO
		t.active.UseCharSet(1)
	case 0x0F: // SI
		t.active.UseCharSet(0)
	}
}

func (t *Terminal) carriageReturn() {
	p := t.active.CursorPos()
	t.active.MoveCursor(buffer.Pos{Row: p.Row, Col: 0}, false)
}

// EscDispatch handles completed ESC sequences.
func (t *Terminal) EscDispatch(inters []byte, final byte) {
	if len(inters) > 0 {
		t.escSpecial(inters[0], final)
		return
	}
	switch final {
	case 'D': // IND
		t.active.ForwardIndex()
	case 'E': // NEL
		t.carriageReturn()
		t.active.ForwardIndex()
	case 'H': // HTS
		t.active.SetTab()
	case 'M': // RI
		t.active.ReverseIndex()
	case 'Z': // DECID
		t.sendPrimaryDA()
	case 'c': // RIS
		t.Reset()
	case '7': // DECSC
		t.saveCursorFull()
	case '8': // DECRC
		t.restoreCursorFull()
	case '=':
		t.modes.Set(ModeAppKeypad, true)
	case '>':
		t.modes.Set(ModeAppKeypad, false)
	case '\\': // ST after an OSC or DCS
	default:
		t.logUnhandled("ESC %c", final)
	}
}

func (t *Terminal) escSpecial(inter, final byte) {
	switch inter {
	case '#':
		if final == '8' { // DECALN
			t.active.TestPattern()
			return
		}
	case '(', ')':
		slot := 0
		if inter == ')' {
			slot = 1
		}
		switch final {
		case '0':
			t.active.SetCharSet(slot, buffer.CharSetSpecial)
		case 'A':
			t.active.SetCharSet(slot, buffer.CharSetUK)
		case 'B':
			t.active.SetCharSet(slot, buffer.CharSetUS)
		default:
			t.logUnhandled("ESC %c %c", inter, final)
		}
		return
	}
	t.logUnhandled("ESC %c %c", inter, final)
}

func (t *Terminal) sendPrimaryDA() {
	t.send([]byte("\x1b[?6c"))
}

// saveCursorFull records cursor, style, charsets and origin mode.
func (t *Terminal) saveCursorFull() {
	b := t.active
	b.SetOrigin(t.modes.Has(ModeOrigin))
	b.SaveCursor()
}

func (t *Terminal) restoreCursorFull() {
	b := t.active
	b.RestoreCursor()
	t.modes.Set(ModeOrigin, b.Cursor().Origin)
}

// DcsHook, DcsPut and DcsUnhook consume device control strings without
// effect; the payloads are tracked by the parser and discarded here.
func (t *Terminal) DcsHook(priv byte, params []int, inters []byte, final byte) {}

func (t *Terminal) DcsPut(b byte) {}

func (t *Terminal) DcsUnhook() {}

// logUnhandled reports a recognised-but-unimplemented sequence once.
var unhandledSeen = map[string]bool{}

func (t *Terminal) logUnhandled(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if unhandledSeen[msg] {
		return
	}
	unhandledSeen[msg] = true
	log.Printf("term: unhandled sequence: %s", msg)
}

func (t *Terminal) marginBottom() int {
	_, end := t.active.Margins()
	return end - 1
}
