// Copyright © 2025 Texelterm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: term/csi.go
// Summary: CSI dispatch: cursor addressing, erasure, scrolling, mode
//          switching, device reports and DECRQM.
// Usage: vtparse.Parser calls CsiDispatch with the collected sequence.

package term

import (
	"fmt"

	"github.com/mattn/go-runewidth"

	"github.com/framegrace/texelterm/buffer"
)

// arg returns params[i] with a default for missing or empty slots.
func arg(params []int, i, def int) int {
	if i >= len(params) || params[i] < 0 {
		return def
	}
	return params[i]
}

// argMin1 returns params[i] defaulted to 1 and clamped to at least 1.
func argMin1(params []int, i int) int {
	v := arg(params, i, 1)
	if v < 1 {
		v = 1
	}
	return v
}

// CsiDispatch handles a completed control sequence.
func (t *Terminal) CsiDispatch(priv byte, params []int, inters []byte, final byte) {
	if len(inters) > 0 {
		t.csiIntermediate(priv, params, inters, final)
		return
	}
	b := t.active
	switch final {
	case '@': // ICH
		b.InsertCells(b.CursorPos(), argMin1(params, 0))
	case 'A': // CUU
		b.MoveCursorRel(-argMin1(params, 0), 0)
	case 'B': // CUD
		b.MoveCursorRel(argMin1(params, 0), 0)
	case 'C': // CUF
		b.MoveCursorRel(0, argMin1(params, 0))
	case 'D': // CUB
		b.MoveCursorRel(0, -argMin1(params, 0))
	case 'E': // CNL
		b.MoveCursorRel(argMin1(params, 0), 0)
		t.carriageReturn()
	case 'F': // CPL
		b.MoveCursorRel(-argMin1(params, 0), 0)
		t.carriageReturn()
	case 'G', '`': // CHA, HPA
		p := b.CursorPos()
		b.MoveCursor(buffer.Pos{Row: p.Row, Col: argMin1(params, 0) - 1}, false)
	case 'H', 'f': // CUP, HVP
		row := argMin1(params, 0) - 1
		col := argMin1(params, 1) - 1
		b.MoveCursor(buffer.Pos{Row: row, Col: col}, t.modes.Has(ModeOrigin))
	case 'I': // CHT
		b.TabCursor(1, argMin1(params, 0))
	case 'J': // ED
		t.eraseDisplay(arg(params, 0, 0))
	case 'K': // EL
		t.eraseLine(arg(params, 0, 0))
	case 'L': // IL
		b.InsertLines(b.CursorPos().Row, argMin1(params, 0))
	case 'M': // DL
		b.EraseLines(b.CursorPos().Row, argMin1(params, 0))
	case 'P': // DCH
		b.EraseCells(b.CursorPos(), argMin1(params, 0))
	case 'S': // SU
		b.ScrollUpMargins(argMin1(params, 0))
	case 'T': // SD
		b.ScrollDownMargins(argMin1(params, 0))
	case 'X': // ECH
		b.BlankCells(b.CursorPos(), argMin1(params, 0))
	case 'Z': // CBT
		b.TabCursor(-1, argMin1(params, 0))
	case 'a': // HPR
		b.MoveCursorRel(0, argMin1(params, 0))
	case 'b': // REP
		t.repeatLast(argMin1(params, 0))
	case 'c': // DA
		if arg(params, 0, 0) == 0 {
			t.sendPrimaryDA()
		}
	case 'd': // VPA
		p := b.CursorPos()
		b.MoveCursor(buffer.Pos{Row: argMin1(params, 0) - 1, Col: p.Col}, t.modes.Has(ModeOrigin))
	case 'e': // VPR
		b.MoveCursorRel(argMin1(params, 0), 0)
	case 'g': // TBC
		switch arg(params, 0, 0) {
		case 0:
			b.UnsetTab()
		case 3:
			b.ClearTabs()
		}
	case 'h':
		t.setModes(priv, params, true)
	case 'l':
		t.setModes(priv, params, false)
	case 'm': // SGR
		t.selectGraphicRendition(params)
	case 'n': // DSR
		t.deviceStatus(priv, arg(params, 0, 0))
	case 'r': // DECSTBM
		t.setMargins(params)
	case 's':
		t.saveCursorFull()
	case 'u':
		t.restoreCursorFull()
	default:
		t.logUnhandled("CSI %s%c", csiLabel(priv, params), final)
	}
}

func (t *Terminal) csiIntermediate(priv byte, params []int, inters []byte, final byte) {
	if inters[0] == '$' && final == 'p' { // DECRQM
		t.requestMode(priv, arg(params, 0, 0))
		return
	}
	t.logUnhandled("CSI %s%s%c", csiLabel(priv, params), inters, final)
}

func csiLabel(priv byte, params []int) string {
	s := ""
	if priv != 0 {
		s = string(priv)
	}
	for i, p := range params {
		if i > 0 {
			s += ";"
		}
		if p >= 0 {
			s += fmt.Sprint(p)
		}
	}
	return s
}

func (t *Terminal) eraseDisplay(mode int) {
	b := t.active
	switch mode {
	case 0:
		b.ClearBelow()
	case 1:
		b.ClearAbove()
	case 2:
		b.Clear()
	case 3:
		b.ClearHistory()
	}
}

func (t *Terminal) eraseLine(mode int) {
	b := t.active
	switch mode {
	case 0:
		b.ClearLineRight()
	case 1:
		b.ClearLineLeft()
	case 2:
		b.ClearLine()
	}
}

// repeatLast re-prints the last graphic character n times. The stored
// rune is already charset-translated so it goes straight to placement.
func (t *Terminal) repeatLast(n int) {
	if t.lastPrinted == 0 {
		return
	}
	w := runewidth.RuneWidth(t.lastPrinted)
	if w == 0 {
		return
	}
	for i := 0; i < n; i++ {
		t.place(t.lastPrinted, w)
	}
}

func (t *Terminal) setMargins(params []int) {
	b := t.active
	rows, _ := b.Size()
	top := argMin1(params, 0)
	bottom := arg(params, 1, rows)
	if bottom < 1 || bottom > rows {
		bottom = rows
	}
	if top >= bottom {
		return
	}
	b.SetMargins(top-1, bottom)
	b.MoveCursor(buffer.Pos{}, t.modes.Has(ModeOrigin))
}

func (t *Terminal) deviceStatus(priv byte, what int) {
	if priv == '?' {
		if what == 15 {
			// No printer.
			t.send([]byte("\x1b[?13n"))
		}
		return
	}
	switch what {
	case 5: // operating status
		t.send([]byte("\x1b[0n"))
	case 6: // CPR
		p := t.active.CursorPos()
		row := p.Row
		if t.modes.Has(ModeOrigin) {
			begin, _ := t.active.Margins()
			row -= begin
		}
		t.send([]byte(fmt.Sprintf("\x1b[%d;%dR", row+1, p.Col+1)))
	}
}

// requestMode answers DECRQM with 1 (set), 2 (reset) or 0 (unknown).
func (t *Terminal) requestMode(priv byte, param int) {
	status := 0
	if priv == '?' {
		if m, ok := privateMode(param); ok {
			status = 2
			if t.modes.Has(m) {
				status = 1
			}
		} else {
			switch param {
			case 47, 1047, 1049:
				status = 2
				if t.inAlt {
					status = 1
				}
			}
		}
		t.send([]byte(fmt.Sprintf("\x1b[?%d;%d$y", param, status)))
		return
	}
	if m, ok := ansiMode(param); ok {
		status = 2
		set := t.modes.Has(m)
		if param == 12 {
			set = !set
		}
		if set {
			status = 1
		}
	}
	t.send([]byte(fmt.Sprintf("\x1b[%d;%d$y", param, status)))
}
