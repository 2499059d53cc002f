// Copyright © 2025 Texelterm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: term/draw_test.go
// Summary: Repair pass tests: callback ordering, the DrawBegin gate,
//          damage retention and the scrollbar.

package term

import (
	"strings"
	"testing"

	"github.com/framegrace/texelterm/buffer"
)

// drawRecorder wires every draw callback to an event log.
type drawRecorder struct {
	events []string
	ready  bool
	region buffer.Region
	total  int
	offset int
	size   int
	text   []string
}

func record(h *TestHarness) *drawRecorder {
	r := &drawRecorder{ready: true}
	h.Term.DrawBegin = func() bool {
		if r.ready {
			r.events = append(r.events, "begin")
		}
		return r.ready
	}
	h.Term.DrawBg = func(pos buffer.Pos, color buffer.Color, count int) {
		r.events = append(r.events, "bg")
	}
	h.Term.DrawFg = func(pos buffer.Pos, color buffer.Color, attr buffer.Attribute, text []byte, count int) {
		r.events = append(r.events, "fg")
		r.text = append(r.text, string(text))
	}
	h.Term.DrawCursor = func(pos buffer.Pos, style buffer.Style, text []byte, wrapNext, focused bool) {
		r.events = append(r.events, "cursor")
	}
	h.Term.DrawScrollbar = func(total, offset, size int) {
		r.events = append(r.events, "bar")
		r.total, r.offset, r.size = total, offset, size
	}
	h.Term.DrawEnd = func(region buffer.Region, barDirty bool) {
		r.events = append(r.events, "end")
		r.region = region
	}
	return r
}

func (r *drawRecorder) last(event string) int {
	last := -1
	for i, e := range r.events {
		if e == event {
			last = i
		}
	}
	return last
}

func (r *drawRecorder) first(event string) int {
	for i, e := range r.events {
		if e == event {
			return i
		}
	}
	return -1
}

// flush drains the initial full-screen damage so tests observe only
// their own mutations.
func flush(h *TestHarness) {
	h.Term.Repair()
}

func TestRepairOrdering(t *testing.T) {
	h := NewTestHarness(24, 80)
	flush(h)
	r := record(h)
	h.SendSeq("hi")
	h.Term.Repair()
	if r.first("bg") == -1 || r.first("fg") == -1 || r.first("cursor") == -1 || r.first("end") == -1 {
		t.Fatalf("missing callbacks: %v", r.events)
	}
	if !(r.last("bg") < r.first("fg") && r.last("fg") < r.first("cursor") && r.first("cursor") < r.first("end")) {
		t.Errorf("ordering: %v", r.events)
	}
	if got := strings.Join(r.text, ""); got != "hi" {
		t.Errorf("fg text: got %q", got)
	}
}

func TestRepairRegionCoversMutation(t *testing.T) {
	h := NewTestHarness(24, 80)
	flush(h)
	r := record(h)
	h.SendSeq("hi")
	h.Term.Repair()
	reg := r.region
	if reg.RowBegin != 0 || reg.RowEnd != 1 {
		t.Errorf("rows: %+v", reg)
	}
	if reg.ColBegin != 0 || reg.ColEnd < 2 {
		t.Errorf("cols: %+v", reg)
	}
}

func TestRepairResetsDamage(t *testing.T) {
	h := NewTestHarness(24, 80)
	flush(h)
	r := record(h)
	h.SendSeq("x")
	h.Term.Repair()
	if h.Term.Damaged() {
		t.Error("repair should clear damage")
	}
	n := len(r.events)
	h.Term.Repair()
	if len(r.events) != n {
		t.Errorf("clean repair must emit nothing: %v", r.events[n:])
	}
}

func TestDeclinedDrawBeginKeepsDamage(t *testing.T) {
	h := NewTestHarness(24, 80)
	flush(h)
	r := record(h)
	r.ready = false
	h.SendSeq("x")
	h.Term.Repair()
	if len(r.events) != 0 {
		t.Fatalf("declined pass must emit nothing: %v", r.events)
	}
	if !h.Term.Damaged() {
		t.Fatal("damage must survive a declined pass")
	}
	r.ready = true
	h.Term.Repair()
	if r.first("end") == -1 {
		t.Errorf("retry must draw: %v", r.events)
	}
	if got := strings.Join(r.text, ""); got != "x" {
		t.Errorf("fg text: got %q", got)
	}
}

func TestHiddenCursorNotDrawn(t *testing.T) {
	h := NewTestHarness(24, 80)
	h.SendSeq("\x1b[?25l")
	flush(h)
	r := record(h)
	h.SendSeq("x")
	h.Term.Repair()
	if r.first("cursor") != -1 {
		t.Errorf("hidden cursor must not dispatch: %v", r.events)
	}
	if r.first("fg") == -1 {
		t.Errorf("text still draws: %v", r.events)
	}
}

func TestScrollbarDispatch(t *testing.T) {
	h := NewTestHarness(3, 20, func(o *Options) { o.ScrollBackHistory = 10 })
	flush(h)
	r := record(h)
	h.SendSeq("1\r\n2\r\n3\r\n4")
	h.Term.Repair()
	if r.first("bar") == -1 {
		t.Fatalf("history growth must redraw the scrollbar: %v", r.events)
	}
	if r.total != 4 || r.offset != 1 || r.size != 3 {
		t.Errorf("bar: total=%d offset=%d size=%d", r.total, r.offset, r.size)
	}
	if !(r.first("cursor") < r.first("bar") && r.first("bar") < r.first("end")) {
		t.Errorf("bar ordering: %v", r.events)
	}
}

func TestDamagedReflectsPendingWork(t *testing.T) {
	h := NewTestHarness(24, 80)
	flush(h)
	if h.Term.Damaged() {
		t.Fatal("clean after flush")
	}
	h.SendSeq("x")
	if !h.Term.Damaged() {
		t.Fatal("printing must damage")
	}
}
