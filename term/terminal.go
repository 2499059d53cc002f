// Copyright © 2025 Texelterm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: term/terminal.go
// Summary: The terminal: ties the UTF-8 decoder, parser, interpreter
//          state and the two cell buffers together.
// Usage: Hosts feed pty bytes via ProcessTty and user events via
//        KeyPress/ButtonPress/Paste; observers receive draw and title
//        callbacks.
// Notes: Single-threaded. Externally-invoked methods carry a re-entry
//        guard; the font-resize path is the one permitted exception.

package term

import (
	"log"

	"github.com/framegrace/texelterm/buffer"
	"github.com/framegrace/texelterm/utf8x"
	"github.com/framegrace/texelterm/vtparse"
)

// Options configures a terminal at creation.
type Options struct {
	Rows, Cols          int
	ScrollBackHistory   int
	UnlimitedScrollBack bool
	ScrollOnTtyOutput   bool
	ScrollOnKeyPress    bool
	ScrollOnPaste       bool
	SyncTty             bool
	TraceTty            bool
	TermName            string
	Bindings            []Binding
}

// Terminal interprets a VT byte stream into cell-buffer mutations and
// encodes user input for the child process.
type Terminal struct {
	opts Options

	dedup     *buffer.Deduper
	primary   *buffer.Buffer
	altScreen *buffer.Buffer
	active    *buffer.Buffer
	inAlt     bool

	parser *vtparse.Parser
	utf8   utf8x.Machine
	trace  *tracer

	modes       ModeSet
	lastPrinted rune
	focused     bool

	// Mouse drag state for motion reporting.
	buttonDown    bool
	pressedButton int

	dispatching bool

	// Observer callbacks, all optional.
	Bell             func()
	TitleChanged     func(string)
	IconChanged      func(string)
	WriteToPty       func([]byte)
	ResizePty        func(rows, cols int)
	Copy             func(text string)
	PasteRequest     func()
	ChildExited      func(code int)
	ResizeLocalFont  func(delta int)
	ResizeGlobalFont func(delta int)

	DrawBegin     func() bool
	DrawBg        buffer.BgFunc
	DrawFg        buffer.FgFunc
	DrawCursor    func(pos buffer.Pos, style buffer.Style, text []byte, wrapNext, focused bool)
	DrawScrollbar func(total, offset, size int)
	DrawEnd       func(region buffer.Region, barDirty bool)

	// HistoryEvicted fires for each line leaving the primary screen,
	// with its history line number and plain text.
	HistoryEvicted func(lineNum int, text string)
}

// New creates a terminal with a private deduplicator.
func New(opts Options) *Terminal {
	return NewShared(opts, buffer.NewDeduper())
}

// NewShared creates a terminal over a deduplicator shared with other
// terminals.
func NewShared(opts Options, dedup *buffer.Deduper) *Terminal {
	if opts.Rows <= 0 {
		opts.Rows = 24
	}
	if opts.Cols <= 0 {
		opts.Cols = 80
	}
	if opts.TermName == "" {
		opts.TermName = "xterm-256color"
	}
	t := &Terminal{
		opts:      opts,
		dedup:     dedup,
		primary:   buffer.New(opts.Rows, opts.Cols, dedup, opts.ScrollBackHistory, opts.UnlimitedScrollBack),
		altScreen: buffer.NewAlt(opts.Rows, opts.Cols),
		modes:     defaultModes,
	}
	t.active = t.primary
	t.parser = vtparse.NewParser(t)
	t.primary.Evicted = func(lineNum int, text string) {
		if t.HistoryEvicted != nil {
			t.HistoryEvicted(lineNum, text)
		}
	}
	if opts.TraceTty {
		t.trace = newTracer()
	}
	return t
}

// Size returns the screen dimensions.
func (t *Terminal) Size() (rows, cols int) { return t.active.Size() }

// Modes returns the current mode set.
func (t *Terminal) Modes() ModeSet { return t.modes }

// Buffer returns the active screen buffer.
func (t *Terminal) Buffer() *buffer.Buffer { return t.active }

// TermName returns the advertised $TERM value.
func (t *Terminal) TermName() string { return t.opts.TermName }

func (t *Terminal) beginDispatch(what string) {
	if t.dispatching {
		log.Panicf("terminal: re-entered during dispatch: %s", what)
	}
	t.dispatching = true
}

func (t *Terminal) endDispatch() { t.dispatching = false }

// ProcessTty decodes and interprets a block of bytes from the child.
// The block is atomic with respect to draw.
func (t *Terminal) ProcessTty(data []byte) {
	t.beginDispatch("ProcessTty")
	defer t.endDispatch()
	t.processBytes(data)
	if t.opts.ScrollOnTtyOutput {
		t.active.ScrollBottomHistory()
	}
	if t.opts.SyncTty {
		t.repair()
	}
}

// processBytes feeds bytes through the UTF-8 machine into the parser.
func (t *Terminal) processBytes(data []byte) {
	if t.trace != nil {
		t.trace.ttyIn(data)
	}
	for _, b := range data {
		switch t.utf8.Consume(b) {
		case utf8x.Accept:
			t.parser.Advance(t.utf8.Rune())
		case utf8x.Reject:
			log.Printf("term: ill-formed utf-8 at byte 0x%02x", b)
			// The byte may open a fresh sequence of its own.
			if t.utf8.Consume(b) == utf8x.Accept {
				t.parser.Advance(t.utf8.Rune())
			}
		}
	}
}

// FocusChange reports window focus to the child when requested and
// repaints the cursor.
func (t *Terminal) FocusChange(focused bool) {
	t.beginDispatch("FocusChange")
	defer t.endDispatch()
	t.focused = focused
	if t.modes.Has(ModeFocus) {
		if focused {
			t.send([]byte("\x1b[I"))
		} else {
			t.send([]byte("\x1b[O"))
		}
	}
	t.repair()
}

// Resize adjusts both screens: the primary reflows, the alternate
// clips. The pty learns the new size through ResizePty.
func (t *Terminal) Resize(rows, cols int) {
	t.beginDispatch("Resize")
	defer t.endDispatch()
	t.resizeBuffers(rows, cols)
}

// ResizeForFont is the resize entry point used while a draw dispatch is
// in flight (font changes arrive from inside draw callbacks).
func (t *Terminal) ResizeForFont(rows, cols int) {
	t.resizeBuffers(rows, cols)
}

func (t *Terminal) resizeBuffers(rows, cols int) {
	if rows <= 0 || cols <= 0 {
		return
	}
	t.primary.ResizeReflow(rows, cols)
	t.altScreen.ResizeClip(rows, cols)
	t.opts.Rows, t.opts.Cols = rows, cols
	if t.ResizePty != nil {
		t.ResizePty(rows, cols)
	}
}

// send writes response bytes toward the child.
func (t *Terminal) send(data []byte) {
	if t.trace != nil {
		t.trace.ttyOut(data)
	}
	if t.WriteToPty != nil {
		t.WriteToPty(data)
	}
}

// Reset returns the terminal to its initial state (RIS).
func (t *Terminal) Reset() {
	t.modes = defaultModes
	t.inAlt = false
	t.primary.ClearHistory()
	rows, cols := t.opts.Rows, t.opts.Cols
	t.primary = buffer.New(rows, cols, t.dedup, t.opts.ScrollBackHistory, t.opts.UnlimitedScrollBack)
	t.primary.Evicted = func(lineNum int, text string) {
		if t.HistoryEvicted != nil {
			t.HistoryEvicted(lineNum, text)
		}
	}
	t.altScreen = buffer.NewAlt(rows, cols)
	t.active = t.primary
	t.parser.Reset()
	t.utf8.Reset()
	t.lastPrinted = 0
}
