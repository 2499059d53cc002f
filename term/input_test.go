// Copyright © 2025 Texelterm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: term/input_test.go
// Summary: Key encoding tests: the keymap, mode-dependent variants, the
//          ALT transformations, bindings, paste and local echo.

package term

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestKeymapEncoding(t *testing.T) {
	tests := []struct {
		name  string
		setup string
		key   tcell.Key
		want  string
	}{
		{"up", "", tcell.KeyUp, "\x1b[A"},
		{"down", "", tcell.KeyDown, "\x1b[B"},
		{"right", "", tcell.KeyRight, "\x1b[C"},
		{"left", "", tcell.KeyLeft, "\x1b[D"},
		{"up application", "\x1b[?1h", tcell.KeyUp, "\x1bOA"},
		{"left application", "\x1b[?1h", tcell.KeyLeft, "\x1bOD"},
		{"home", "", tcell.KeyHome, "\x1b[H"},
		{"end application", "\x1b[?1h", tcell.KeyEnd, "\x1bOF"},
		{"insert", "", tcell.KeyInsert, "\x1b[2~"},
		{"delete", "", tcell.KeyDelete, "\x1b[3~"},
		{"page up", "", tcell.KeyPgUp, "\x1b[5~"},
		{"page down", "", tcell.KeyPgDn, "\x1b[6~"},
		{"f1", "", tcell.KeyF1, "\x1bOP"},
		{"f5", "", tcell.KeyF5, "\x1b[15~"},
		{"f12", "", tcell.KeyF12, "\x1b[24~"},
		{"enter", "", tcell.KeyEnter, "\r"},
		{"enter with lnm", "\x1b[20h", tcell.KeyEnter, "\r\n"},
		{"tab", "", tcell.KeyTab, "\t"},
		{"backtab", "", tcell.KeyBacktab, "\x1b[Z"},
		{"escape", "", tcell.KeyEsc, "\x1b"},
		{"backspace sends del", "", tcell.KeyBackspace2, "\x7f"},
		{"backspace sends bs", "\x1b[?1037l", tcell.KeyBackspace2, "\x08"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewTestHarness(24, 80)
			if tt.setup != "" {
				h.SendSeq(tt.setup)
			}
			h.Term.KeyPress(tt.key, 0, 0)
			if got := h.TakeSent(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRuneAndControlEncoding(t *testing.T) {
	h := NewTestHarness(24, 80)
	h.Term.KeyPress(tcell.KeyRune, 'a', 0)
	if got := h.TakeSent(); got != "a" {
		t.Errorf("plain rune: got %q", got)
	}
	h.Term.KeyPress(tcell.KeyRune, 'é', 0)
	if got := h.TakeSent(); got != "é" {
		t.Errorf("multibyte rune: got %q", got)
	}
	h.Term.KeyPress(tcell.KeyCtrlC, 0, tcell.ModCtrl)
	if got := h.TakeSent(); got != "\x03" {
		t.Errorf("ctrl-c: got %q", got)
	}
}

func TestAltSendsEscapePrefix(t *testing.T) {
	h := NewTestHarness(24, 80)
	h.Term.KeyPress(tcell.KeyRune, 'x', tcell.ModAlt)
	if got := h.TakeSent(); got != "\x1bx" {
		t.Errorf("alt-x: got %q", got)
	}
	h.Term.KeyPress(tcell.KeyRune, 'É', tcell.ModAlt)
	if got := h.TakeSent(); got != "\x1bÉ" {
		t.Errorf("alt with multibyte rune: got %q", got)
	}
}

func TestMetaSetsHighBit(t *testing.T) {
	h := NewTestHarness(24, 80)
	h.SendSeq("\x1b[?1039l\x1b[?1034h")
	h.Term.KeyPress(tcell.KeyRune, 'x', tcell.ModAlt)
	// 'x' with bit 8 set is U+00F8, transmitted as UTF-8.
	if got := h.TakeSent(); got != "\xc3\xb8" {
		t.Errorf("meta-x: got %q", got)
	}
}

func TestAltWithoutAnyTransform(t *testing.T) {
	h := NewTestHarness(24, 80)
	h.SendSeq("\x1b[?1039l\x1b[?1034l")
	h.Term.KeyPress(tcell.KeyRune, 'x', tcell.ModAlt)
	if got := h.TakeSent(); got != "x" {
		t.Errorf("bare alt-x: got %q", got)
	}
}

func TestKeyboardLockSwallowsInput(t *testing.T) {
	h := NewTestHarness(24, 80)
	h.SendSeq("\x1b[2h")
	h.Term.KeyPress(tcell.KeyRune, 'a', 0)
	h.Term.KeyPress(tcell.KeyEnter, 0, 0)
	if got := h.TakeSent(); got != "" {
		t.Errorf("locked keyboard must send nothing, got %q", got)
	}
	h.SendSeq("\x1b[2l")
	h.Term.KeyPress(tcell.KeyRune, 'a', 0)
	if got := h.TakeSent(); got != "a" {
		t.Errorf("after unlock: got %q", got)
	}
}

func TestBindingConsumesKey(t *testing.T) {
	h := NewTestHarness(5, 20, func(o *Options) {
		o.ScrollBackHistory = 100
		o.Bindings = []Binding{
			{Key: tcell.KeyPgUp, Mods: tcell.ModShift, Action: ActionScrollUpOnePage},
		}
	})
	h.SendSeq("1\r\n2\r\n3\r\n4\r\n5\r\n6\r\n7\r\n8\r\n9\r\n10")
	h.Term.KeyPress(tcell.KeyPgUp, 0, tcell.ModShift)
	if got := h.TakeSent(); got != "" {
		t.Errorf("bound key must not reach the child, got %q", got)
	}
	if got := h.Term.Buffer().ViewOffset(); got != 5 {
		t.Errorf("page scroll: offset=%d", got)
	}
	// The same key without the modifier still encodes normally.
	h.Term.KeyPress(tcell.KeyPgUp, 0, 0)
	if got := h.TakeSent(); got != "\x1b[5~" {
		t.Errorf("unbound chord: got %q", got)
	}
}

func TestBindingCopy(t *testing.T) {
	h := NewTestHarness(24, 80, func(o *Options) {
		o.Bindings = []Binding{
			{Key: tcell.KeyRune, Rune: 'c', Mods: tcell.ModCtrl | tcell.ModShift, Action: ActionCopyToClipboard},
		}
	})
	h.SendSeq("grab me")
	h.Term.ButtonPress(MouseLeft, 0, 0, 0, 3)
	h.Term.KeyPress(tcell.KeyRune, 'c', tcell.ModCtrl|tcell.ModShift)
	if len(h.Copied) == 0 || h.Copied[len(h.Copied)-1] != "grab me" {
		t.Errorf("copied: %v", h.Copied)
	}
}

func TestPasteBracketing(t *testing.T) {
	h := NewTestHarness(24, 80)
	h.Term.Paste("hi")
	if got := h.TakeSent(); got != "hi" {
		t.Errorf("plain paste: got %q", got)
	}
	h.SendSeq("\x1b[?2004h")
	h.Term.Paste("hi")
	if got := h.TakeSent(); got != "\x1b[200~hi\x1b[201~" {
		t.Errorf("bracketed paste: got %q", got)
	}
	h.SendSeq("\x1b[?2004l")
	h.Term.Paste("bye")
	if got := h.TakeSent(); got != "bye" {
		t.Errorf("after reset: got %q", got)
	}
}

func TestLocalEcho(t *testing.T) {
	h := NewTestHarness(24, 80)
	h.SendSeq("\x1b[12l")
	h.Term.KeyPress(tcell.KeyRune, 'a', 0)
	h.AssertRow(t, 0, "a")
	if got := h.TakeSent(); got != "a" {
		t.Errorf("echo still transmits: got %q", got)
	}
	h.Term.KeyPress(tcell.KeyCtrlC, 0, tcell.ModCtrl)
	h.AssertRow(t, 0, "a^C")
}

func TestScrollOnKeyPressReturnsToBottom(t *testing.T) {
	h := NewTestHarness(5, 20, func(o *Options) {
		o.ScrollBackHistory = 100
		o.ScrollOnKeyPress = true
	})
	h.SendSeq("1\r\n2\r\n3\r\n4\r\n5\r\n6\r\n7\r\n8")
	h.Term.Buffer().ScrollUpHistory(2)
	h.Term.KeyPress(tcell.KeyRune, 'a', 0)
	if got := h.Term.Buffer().ViewOffset(); got != 0 {
		t.Errorf("keypress should snap to the bottom, offset=%d", got)
	}
}
