// Copyright © 2025 Texelterm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: term/draw.go
// Summary: The repair pass: damage accumulation and run dispatch toward
//          the observer callbacks.
// Usage: Hosts call Repair. Key, paste and focus events and locally
//        handled mouse events repair on their own; ProcessTty repairs
//        only when Options.SyncTty is set.
// Notes: Ordering is fixed: bg, fg, cursor, scrollbar. Damage survives
//        a declined DrawBegin and is retried on the next pass.

package term

import "github.com/framegrace/texelterm/buffer"

// Damaged reports whether the active buffer holds undrawn damage.
func (t *Terminal) Damaged() bool {
	return !t.active.AccumulateDamage().Empty() || t.active.BarDamage()
}

// Repair runs a full draw pass if the host is ready for one.
func (t *Terminal) Repair() {
	t.beginDispatch("Repair")
	defer t.endDispatch()
	t.repair()
}

func (t *Terminal) repair() {
	region := t.active.AccumulateDamage()
	barDirty := t.active.BarDamage()
	if region.Empty() && !barDirty {
		return
	}
	if t.DrawBegin != nil && !t.DrawBegin() {
		// Host not ready; keep the damage for the next pass.
		return
	}
	reverse := t.modes.Has(ModeReverse)
	if t.DrawBg != nil {
		t.active.DispatchBg(reverse, t.DrawBg)
	}
	if t.DrawFg != nil {
		t.active.DispatchFg(reverse, t.DrawFg)
	}
	if t.modes.Has(ModeShowCursor) && t.DrawCursor != nil {
		t.active.DispatchCursor(reverse, func(pos buffer.Pos, style buffer.Style, text []byte, wrapNext bool) {
			t.DrawCursor(pos, style, text, wrapNext, t.focused)
		})
	}
	if t.DrawScrollbar != nil && barDirty {
		offset, size := t.active.Bar()
		t.DrawScrollbar(t.active.Total(), offset, size)
	}
	if t.DrawEnd != nil {
		t.DrawEnd(region, barDirty)
	}
	t.active.ResetDamage()
}
