// Copyright © 2025 Texelterm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelterm/app.go
// Summary: The tcell frontend: screen setup, draw callback wiring and
//          the event loop bridging tcell events into the terminal.
// Notes: All terminal entry points run under the tty dispatch lock. The
//        paste-from-clipboard action is bounced through the event queue
//        because it arrives from inside a key dispatch.

package main

import (
	"fmt"
	"log"
	"path/filepath"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/framegrace/texelterm/buffer"
	"github.com/framegrace/texelterm/config"
	"github.com/framegrace/texelterm/search"
	"github.com/framegrace/texelterm/term"
)

// pasteFromClipboard is the interrupt payload requesting a deferred
// clipboard paste.
type pasteFromClipboard struct{}

type app struct {
	screen  tcell.Screen
	term    *term.Terminal
	tty     *term.Tty
	palette [258]tcell.Color

	prevButtons  tcell.ButtonMask
	lastX, lastY int
	clicks       clickDetector

	clipboard string
	pasting   bool
	pasteBuf  []rune
}

func defaultBindings() []term.Binding {
	return []term.Binding{
		{Key: tcell.KeyPgUp, Mods: tcell.ModShift, Action: term.ActionScrollUpOnePage},
		{Key: tcell.KeyPgDn, Mods: tcell.ModShift, Action: term.ActionScrollDownOnePage},
		{Key: tcell.KeyHome, Mods: tcell.ModShift, Action: term.ActionScrollTop},
		{Key: tcell.KeyEnd, Mods: tcell.ModShift, Action: term.ActionScrollBottom},
		{Key: tcell.KeyCtrlC, Mods: tcell.ModCtrl | tcell.ModShift, Action: term.ActionCopyToClipboard},
		{Key: tcell.KeyCtrlV, Mods: tcell.ModCtrl | tcell.ModShift, Action: term.ActionPasteFromClipboard},
	}
}

func run(cfg config.Config, command string, trace bool) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.EnablePaste()
	screen.EnableFocus()

	cols, rows := screen.Size()
	t := term.New(term.Options{
		Rows:                rows,
		Cols:                cols,
		ScrollBackHistory:   cfg.GetInt("terminal", "scrollBackHistory", 10000),
		UnlimitedScrollBack: cfg.GetBool("terminal", "unlimitedScrollBack", false),
		ScrollOnTtyOutput:   cfg.GetBool("terminal", "scrollOnTtyOutput", false),
		ScrollOnKeyPress:    cfg.GetBool("terminal", "scrollOnKeyPress", true),
		ScrollOnPaste:       cfg.GetBool("terminal", "scrollOnPaste", true),
		SyncTty:             cfg.GetBool("terminal", "syncTty", true),
		TraceTty:            trace || cfg.GetBool("terminal", "traceTty", false),
		TermName:            cfg.GetString("terminal", "termName", "xterm-256color"),
		Bindings:            defaultBindings(),
	})

	a := &app{
		screen:  screen,
		term:    t,
		palette: newPalette(cfg),
		lastX:   -1,
		lastY:   -1,
	}
	a.wireCallbacks()

	if cfg.GetBool("search", "enabled", false) {
		if dir, err := config.StateDir(); err == nil {
			ix, err := search.Open(search.DefaultOptions(filepath.Join(dir, "history.db")))
			if err != nil {
				log.Printf("texelterm: search index: %v", err)
			} else {
				t.HistoryEvicted = ix.Add
				defer func() {
					ix.Flush()
					ix.Close()
				}()
			}
		}
	}

	tty, err := term.StartShell(t, command)
	if err != nil {
		return err
	}
	a.tty = tty
	defer tty.Close()

	screen.Clear()
	tty.WithLock(func() { t.Repair() })

	a.eventLoop()
	return nil
}

// wireCallbacks connects the terminal's observer hooks to the screen.
// ChildExited must be set before the shell starts.
func (a *app) wireCallbacks() {
	t, screen := a.term, a.screen

	t.DrawBegin = func() bool { return true }
	t.DrawBg = a.drawBg
	t.DrawFg = a.drawFg
	t.DrawCursor = a.drawCursor
	t.DrawEnd = func(region buffer.Region, barDirty bool) { screen.Show() }

	t.Bell = func() { screen.Beep() }
	t.TitleChanged = screen.SetTitle
	t.Copy = func(text string) { a.clipboard = text }
	t.PasteRequest = func() {
		screen.PostEvent(tcell.NewEventInterrupt(pasteFromClipboard{}))
	}
	t.ChildExited = func(code int) {
		screen.PostEvent(tcell.NewEventInterrupt(nil))
	}
}

func (a *app) drawBg(pos buffer.Pos, color buffer.Color, count int) {
	st := tcell.StyleDefault.Background(mapColor(&a.palette, color, true))
	for x := pos.Col; x < pos.Col+count; x++ {
		a.screen.SetContent(x, pos.Row, ' ', nil, st)
	}
}

// drawFg lays runes over the background pass, keeping the background
// color already on each cell.
func (a *app) drawFg(pos buffer.Pos, color buffer.Color, attr buffer.Attribute, text []byte, count int) {
	fg := mapColor(&a.palette, color, false)
	x := pos.Col
	for len(text) > 0 {
		r, n := utf8.DecodeRune(text)
		text = text[n:]
		_, _, st, _ := a.screen.GetContent(x, pos.Row)
		st = mapAttrs(st.Foreground(fg), attr)
		a.screen.SetContent(x, pos.Row, r, nil, st)
		w := runewidth.RuneWidth(r)
		if w < 1 {
			w = 1
		}
		x += w
	}
}

// drawCursor paints the inverted cursor cell. An unfocused window keeps
// the plain cell from the fg pass.
func (a *app) drawCursor(pos buffer.Pos, style buffer.Style, text []byte, wrapNext, focused bool) {
	if !focused {
		return
	}
	// The style arrives pre-inverted: FG was the cell background.
	st := tcell.StyleDefault.
		Foreground(mapColor(&a.palette, style.FG, true)).
		Background(mapColor(&a.palette, style.BG, false))
	st = mapAttrs(st, style.Attr)
	r, _ := utf8.DecodeRune(text)
	a.screen.SetContent(pos.Col, pos.Row, r, nil, st)
}

func (a *app) eventLoop() {
	for {
		ev := a.screen.PollEvent()
		if ev == nil {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventKey:
			a.handleKey(ev)
		case *tcell.EventMouse:
			a.handleMouse(ev)
		case *tcell.EventResize:
			cols, rows := ev.Size()
			a.tty.WithLock(func() { a.term.Resize(rows, cols) })
			a.screen.Sync()
		case *tcell.EventPaste:
			a.handlePaste(ev)
		case *tcell.EventFocus:
			a.tty.WithLock(func() { a.term.FocusChange(ev.Focused) })
		case *tcell.EventInterrupt:
			if _, ok := ev.Data().(pasteFromClipboard); ok {
				a.tty.WithLock(func() { a.term.Paste(a.clipboard) })
				continue
			}
			return
		}
	}
}

func (a *app) handleKey(ev *tcell.EventKey) {
	if a.pasting {
		switch ev.Key() {
		case tcell.KeyRune:
			a.pasteBuf = append(a.pasteBuf, ev.Rune())
		case tcell.KeyEnter:
			a.pasteBuf = append(a.pasteBuf, '\n')
		case tcell.KeyTab:
			a.pasteBuf = append(a.pasteBuf, '\t')
		}
		return
	}
	a.tty.WithLock(func() {
		a.term.KeyPress(ev.Key(), ev.Rune(), ev.Modifiers())
	})
}

func (a *app) handlePaste(ev *tcell.EventPaste) {
	if ev.Start() {
		a.pasting = true
		a.pasteBuf = a.pasteBuf[:0]
		return
	}
	a.pasting = false
	if len(a.pasteBuf) > 0 {
		text := string(a.pasteBuf)
		a.tty.WithLock(func() { a.term.Paste(text) })
	}
}

var mouseButtons = []struct {
	mask   tcell.ButtonMask
	button int
}{
	{tcell.Button1, term.MouseLeft},
	{tcell.Button3, term.MouseMiddle},
	{tcell.Button2, term.MouseRight},
}

// handleMouse converts tcell's stateful button mask into press, release
// and motion entry points by edge detection against the previous mask.
func (a *app) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	buttons := ev.Buttons()
	mods := ev.Modifiers()
	prev := a.prevButtons
	a.prevButtons = buttons &^ (tcell.WheelUp | tcell.WheelDown)
	moved := x != a.lastX || y != a.lastY
	a.lastX, a.lastY = x, y

	a.tty.WithLock(func() {
		if buttons&tcell.WheelUp != 0 {
			a.term.ButtonPress(term.MouseWheelUp, x, y, mods, 1)
		}
		if buttons&tcell.WheelDown != 0 {
			a.term.ButtonPress(term.MouseWheelDown, x, y, mods, 1)
		}

		edge := false
		for _, m := range mouseButtons {
			pressed := buttons&m.mask != 0 && prev&m.mask == 0
			released := buttons&m.mask == 0 && prev&m.mask != 0
			if pressed {
				count := 1
				if m.button == term.MouseLeft {
					count = a.clicks.detect(y, x)
				}
				a.term.ButtonPress(m.button, x, y, mods, count)
				edge = true
			}
			if released {
				a.term.ButtonRelease(x, y, mods)
				edge = true
			}
		}
		if !edge && moved {
			a.term.PointerMotion(x, y, mods)
		}
	})
}
