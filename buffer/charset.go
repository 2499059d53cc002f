// Copyright © 2025 Texelterm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: buffer/charset.go
// Summary: Character-set substitution tables (US, UK, DEC special graphics).
// Usage: Printable runes pass through the active table before storage.
// Notes: Tables map a 7-bit input to a replacement rune; everything else
//        passes through unchanged.

package buffer

// CharSet substitutes runes in the 7-bit range before they reach the grid.
type CharSet struct {
	base    rune
	repl    []rune
	special bool
}

// Sub translates r through the table.
func (cs *CharSet) Sub(r rune) rune {
	if cs == nil || cs.repl == nil {
		return r
	}
	if r < cs.base || r >= cs.base+rune(len(cs.repl)) {
		return r
	}
	return cs.repl[r-cs.base]
}

// Special reports whether this is the DEC line-drawing set.
func (cs *CharSet) Special() bool { return cs != nil && cs.special }

// The three designatable sets: ESC ( B, ESC ( A, ESC ( 0.
var (
	CharSetUS = &CharSet{}
	CharSetUK = &CharSet{base: '#', repl: []rune{'£'}}

	// DEC special graphics replaces 0x60..0x7E with line-drawing glyphs.
	CharSetSpecial = &CharSet{base: 0x60, special: true, repl: []rune{
		'♦', '▒', '␉', '␌', '␍', '␊', '°', '±',
		'␤', '␋', '┘', '┐', '┌', '└', '┼', '⎺',
		'⎻', '─', '⎼', '⎽', '├', '┤', '┴', '┬',
		'│', '≤', '≥', 'π', '≠', '£', '⋅',
	}}
)
