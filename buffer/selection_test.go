// Copyright © 2025 Texelterm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: buffer/selection_test.go
// Summary: Selection marking, expansion and text extraction tests.

package buffer

import "testing"

func TestSelectionLinearText(t *testing.T) {
	b := newTestBuffer(3, 10)
	writeText(b, 0, "hello you")
	writeText(b, 1, "world")

	b.MarkSelection(b.ViewHPos(0, 6, LeftHand))
	b.DelimitSelection(b.ViewHPos(1, 4, RightHand), false)
	if got := b.GetSelectedText(); got != "you\nworld" {
		t.Errorf("selected text: %q", got)
	}
}

func TestSelectionWordExpansion(t *testing.T) {
	b := newTestBuffer(2, 20)
	writeText(b, 0, "foo bar-baz qux")

	b.ExpandSelection(b.ViewHPos(0, 6, LeftHand), 2)
	if got := b.GetSelectedText(); got != "bar-baz" {
		t.Errorf("word selection: %q", got)
	}

	b.ExpandSelection(b.ViewHPos(0, 6, LeftHand), 3)
	if got := b.GetSelectedText(); got != "foo bar-baz qux" {
		t.Errorf("line selection: %q", got)
	}
}

func TestSelectionRectangular(t *testing.T) {
	b := newTestBuffer(3, 10)
	writeText(b, 0, "abcdef")
	writeText(b, 1, "ghijkl")
	writeText(b, 2, "mnopqr")

	b.MarkSelection(b.ViewHPos(0, 1, LeftHand))
	b.DelimitSelection(b.ViewHPos(2, 3, RightHand), true)
	if got := b.GetSelectedText(); got != "bcd\nhij\nnop" {
		t.Errorf("rect selection: %q", got)
	}
}

func TestSelectionJoinsWrappedLines(t *testing.T) {
	b := newTestBuffer(3, 4)
	placeWrapped(b, "abcdefgh")

	b.MarkSelection(b.ViewHPos(0, 0, LeftHand))
	b.DelimitSelection(b.ViewHPos(1, 3, RightHand), false)
	if got := b.GetSelectedText(); got != "abcdefgh" {
		t.Errorf("wrapped lines should join without newline: %q", got)
	}
}

func TestSelectionClearedByMutation(t *testing.T) {
	b := newTestBuffer(3, 10)
	writeText(b, 1, "target")
	b.MarkSelection(b.ViewHPos(1, 0, LeftHand))
	b.DelimitSelection(b.ViewHPos(1, 5, RightHand), false)
	if !b.HasSelection() {
		t.Fatal("selection should exist")
	}
	b.SetCell(Pos{Row: 1, Col: 0}, Cell{Rune: 'X'})
	if b.HasSelection() {
		t.Error("mutating a selected row should clear the selection")
	}
}

func TestSelectionSurvivesUnrelatedMutation(t *testing.T) {
	b := newTestBuffer(3, 10)
	writeText(b, 0, "keepme")
	b.MarkSelection(b.ViewHPos(0, 0, LeftHand))
	b.DelimitSelection(b.ViewHPos(0, 5, RightHand), false)
	b.SetCell(Pos{Row: 2, Col: 0}, Cell{Rune: 'X'})
	if !b.HasSelection() {
		t.Error("mutation on another row should not clear the selection")
	}
}

func TestSelectionOverHistory(t *testing.T) {
	b := newTestBuffer(2, 10)
	writeText(b, 0, "ancient")
	b.AddLine()
	writeText(b, 0, "current")

	// Scroll one line back so the history line is visible at the top.
	b.ScrollUpHistory(1)
	b.MarkSelection(b.ViewHPos(0, 0, LeftHand))
	b.DelimitSelection(b.ViewHPos(0, 6, RightHand), false)
	if got := b.GetSelectedText(); got != "ancient" {
		t.Errorf("history selection: %q", got)
	}
}
