// Copyright © 2025 Texelterm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: buffer/dedup.go
// Summary: Content-addressed store for scrollback lines.
// Usage: Lines evicted from the visible grid are stored by tag; identical
//        lines share one entry with a reference count.
// Notes: Tags are FNV-1a over the cell payload.

package buffer

import "hash/fnv"

// Tag identifies the content of a history line.
type Tag uint64

type dedupEntry struct {
	cells []Cell
	cont  bool
	refs  int
}

// Deduper stores history line content keyed by tag.
type Deduper struct {
	entries map[Tag]*dedupEntry
	lines   int // total retained references
}

// NewDeduper returns an empty store.
func NewDeduper() *Deduper {
	return &Deduper{entries: make(map[Tag]*dedupEntry)}
}

// Store retains one reference to the given content and returns its tag.
// Trailing blanks should already be trimmed by the caller.
func (d *Deduper) Store(cells []Cell, cont bool) Tag {
	tag := hashCells(cells, cont)
	if e, ok := d.entries[tag]; ok {
		e.refs++
	} else {
		stored := make([]Cell, len(cells))
		copy(stored, cells)
		d.entries[tag] = &dedupEntry{cells: stored, cont: cont, refs: 1}
	}
	d.lines++
	return tag
}

// Lookup returns the content for a tag.
func (d *Deduper) Lookup(tag Tag) (cells []Cell, cont bool, ok bool) {
	e, ok := d.entries[tag]
	if !ok {
		return nil, false, false
	}
	return e.cells, e.cont, true
}

// Release drops one reference; the entry is removed when the last
// reference goes.
func (d *Deduper) Release(tag Tag) {
	e, ok := d.entries[tag]
	if !ok {
		return
	}
	e.refs--
	d.lines--
	if e.refs <= 0 {
		delete(d.entries, tag)
	}
}

// Lines returns the total number of retained references.
func (d *Deduper) Lines() int { return d.lines }

// Unique returns the number of distinct entries.
func (d *Deduper) Unique() int { return len(d.entries) }

func hashCells(cells []Cell, cont bool) Tag {
	h := fnv.New64a()
	var buf [8]byte
	put32 := func(v uint32) {
		buf[0] = byte(v)
		buf[1] = byte(v >> 8)
		buf[2] = byte(v >> 16)
		buf[3] = byte(v >> 24)
		h.Write(buf[:4])
	}
	for _, c := range cells {
		put32(uint32(c.Rune))
		put32(uint32(c.Style.Attr) | uint32(c.Style.FG.Mode)<<16 | uint32(c.Style.BG.Mode)<<20)
		put32(uint32(c.Style.FG.Value) | uint32(c.Style.FG.R)<<8 | uint32(c.Style.FG.G)<<16 | uint32(c.Style.FG.B)<<24)
		put32(uint32(c.Style.BG.Value) | uint32(c.Style.BG.R)<<8 | uint32(c.Style.BG.G)<<16 | uint32(c.Style.BG.B)<<24)
	}
	if cont {
		h.Write([]byte{1})
	}
	return Tag(h.Sum64())
}
