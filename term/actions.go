// Copyright © 2025 Texelterm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: term/actions.go
// Summary: Key-bindable local actions: scrolling, clipboard, fonts,
//          history and the debug dumps.

package term

import (
	"log"

	"github.com/gdamore/tcell/v2"
)

// Action is a local operation addressable by a key binding.
type Action int

const (
	ActionNone Action = iota
	ActionLocalFontReset
	ActionLocalFontBigger
	ActionLocalFontSmaller
	ActionGlobalFontReset
	ActionGlobalFontBigger
	ActionGlobalFontSmaller
	ActionCopyToClipboard
	ActionPasteFromClipboard
	ActionScrollUpOneLine
	ActionScrollDownOneLine
	ActionScrollUpOnePage
	ActionScrollDownOnePage
	ActionScrollTop
	ActionScrollBottom
	ActionClearHistory
	ActionDebugGlobalTags
	ActionDebugLocalTags
	ActionDebugHistory
	ActionDebugActive
	ActionDebugModes
	ActionDebugSelection
	ActionDebugStats
	ActionDebugStats2
)

// Binding attaches an action to a key chord. Rune is consulted only
// when Key is tcell.KeyRune.
type Binding struct {
	Key    tcell.Key
	Rune   rune
	Mods   tcell.ModMask
	Action Action
}

func (t *Terminal) lookupBinding(key tcell.Key, r rune, mods tcell.ModMask) (Action, bool) {
	for _, b := range t.opts.Bindings {
		if b.Key != key || b.Mods != mods {
			continue
		}
		if key == tcell.KeyRune && b.Rune != r {
			continue
		}
		return b.Action, true
	}
	return ActionNone, false
}

func (t *Terminal) perform(act Action) {
	b := t.active
	rows, _ := b.Size()
	switch act {
	case ActionLocalFontReset:
		if t.ResizeLocalFont != nil {
			t.ResizeLocalFont(0)
		}
	case ActionLocalFontBigger:
		if t.ResizeLocalFont != nil {
			t.ResizeLocalFont(1)
		}
	case ActionLocalFontSmaller:
		if t.ResizeLocalFont != nil {
			t.ResizeLocalFont(-1)
		}
	case ActionGlobalFontReset:
		if t.ResizeGlobalFont != nil {
			t.ResizeGlobalFont(0)
		}
	case ActionGlobalFontBigger:
		if t.ResizeGlobalFont != nil {
			t.ResizeGlobalFont(1)
		}
	case ActionGlobalFontSmaller:
		if t.ResizeGlobalFont != nil {
			t.ResizeGlobalFont(-1)
		}
	case ActionCopyToClipboard:
		if t.Copy != nil && b.HasSelection() {
			t.Copy(b.GetSelectedText())
		}
	case ActionPasteFromClipboard:
		if t.PasteRequest != nil {
			t.PasteRequest()
		}
	case ActionScrollUpOneLine:
		b.ScrollUpHistory(1)
	case ActionScrollDownOneLine:
		b.ScrollDownHistory(1)
	case ActionScrollUpOnePage:
		b.ScrollUpHistory(rows)
	case ActionScrollDownOnePage:
		b.ScrollDownHistory(rows)
	case ActionScrollTop:
		b.ScrollTopHistory()
	case ActionScrollBottom:
		b.ScrollBottomHistory()
	case ActionClearHistory:
		b.ClearHistory()
	case ActionDebugGlobalTags:
		log.Printf("debug: dedup lines=%d unique=%d", t.dedup.Lines(), t.dedup.Unique())
	case ActionDebugLocalTags, ActionDebugHistory:
		log.Printf("debug: history len=%d offset=%d", b.HistoryLen(), b.ViewOffset())
	case ActionDebugActive:
		r, c := b.Size()
		log.Printf("debug: active alt=%v rows=%d cols=%d cursor=%+v", b.Alt(), r, c, b.CursorPos())
	case ActionDebugModes:
		log.Printf("debug: modes=%s", t.modes)
	case ActionDebugSelection:
		log.Printf("debug: selection active=%v text=%q", b.HasSelection(), b.GetSelectedText())
	case ActionDebugStats, ActionDebugStats2:
		log.Printf("debug: total=%d barDamage=%v", b.Total(), b.BarDamage())
	}
}
