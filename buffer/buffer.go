// Copyright © 2025 Texelterm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: buffer/buffer.go
// Summary: The cell grid: visible lines, margins, scrollback history.
// Usage: The interpreter mutates the grid through these operations; every
//        mutation marks per-line damage.
// Notes: Primary buffers evict into a shared Deduper; alternate buffers
//        have no history.

package buffer

// Pos addresses a cell on the visible grid (0-based).
type Pos struct {
	Row, Col int
}

// Cursor carries everything DECSC saves and DECRC restores.
type Cursor struct {
	Pos      Pos
	WrapNext bool
	Style    Style
	Slot     int // active charset slot: 0 selects G0, 1 selects G1
	G0, G1   *CharSet
	Origin   bool
}

func defaultCursor() Cursor {
	return Cursor{Style: DefaultStyle(), G0: CharSetUS, G1: CharSetUS}
}

// Buffer is one screen of cells plus, for primary buffers, scrollback.
type Buffer struct {
	rows, cols int
	lines      []*Line

	marginBegin, marginEnd int

	cursor Cursor
	saved  Cursor

	tabs []bool

	alt          bool
	dedup        *Deduper
	historyTags  []Tag
	historyLimit int // lines kept; ignored when unlimited
	unlimited    bool

	viewOffset    int // lines scrolled back into history
	barDamage     bool
	viewDamageAll bool

	sel selectionState

	// Evicted receives each history line as it leaves the grid.
	Evicted func(lineNum int, text string)
}

// New returns a primary buffer backed by the given deduplicator.
func New(rows, cols int, dedup *Deduper, historyLimit int, unlimited bool) *Buffer {
	b := &Buffer{
		rows:         rows,
		cols:         cols,
		dedup:        dedup,
		historyLimit: historyLimit,
		unlimited:    unlimited,
		cursor:       defaultCursor(),
		saved:        defaultCursor(),
	}
	b.initGrid()
	return b
}

// NewAlt returns an alternate-screen buffer: no history, clip resize.
func NewAlt(rows, cols int) *Buffer {
	b := &Buffer{
		rows:   rows,
		cols:   cols,
		alt:    true,
		cursor: defaultCursor(),
		saved:  defaultCursor(),
	}
	b.initGrid()
	return b
}

func (b *Buffer) initGrid() {
	b.lines = make([]*Line, b.rows)
	for i := range b.lines {
		b.lines[i] = NewLine(b.cols, DefaultStyle())
	}
	b.marginBegin = 0
	b.marginEnd = b.rows
	b.resetTabs()
}

// Size returns rows, cols.
func (b *Buffer) Size() (rows, cols int) { return b.rows, b.cols }

// Alt reports whether this is the alternate-screen buffer.
func (b *Buffer) Alt() bool { return b.alt }

// Line returns the visible line at row.
func (b *Buffer) Line(row int) *Line { return b.lines[row] }

// Margins returns the scrolling region [begin,end).
func (b *Buffer) Margins() (begin, end int) { return b.marginBegin, b.marginEnd }

// SetMargins sets the scrolling region. Out-of-range or degenerate values
// reset to the full screen.
func (b *Buffer) SetMargins(begin, end int) {
	if begin < 0 || end > b.rows || begin >= end {
		begin, end = 0, b.rows
	}
	b.marginBegin = begin
	b.marginEnd = end
}

// --- Cell mutation ---

// SetCell writes a cell at pos.
func (b *Buffer) SetCell(pos Pos, c Cell) {
	b.touchRow(pos.Row)
	b.lines[pos.Row].SetCell(pos.Col, c)
}

// InsertCells shifts the cursor line right at pos, blanking the gap.
func (b *Buffer) InsertCells(pos Pos, n int) {
	b.touchRow(pos.Row)
	b.lines[pos.Row].InsertCells(pos.Col, n, b.blankStyle())
}

// EraseCells shifts the line left at pos, blanking the tail.
func (b *Buffer) EraseCells(pos Pos, n int) {
	b.touchRow(pos.Row)
	b.lines[pos.Row].EraseCells(pos.Col, n, b.blankStyle())
}

// BlankCells overwrites n cells starting at pos without shifting.
func (b *Buffer) BlankCells(pos Pos, n int) {
	if pos.Col+n > b.cols {
		n = b.cols - pos.Col
	}
	b.touchRow(pos.Row)
	b.lines[pos.Row].ClearRange(pos.Col, pos.Col+n, b.blankStyle())
}

// ClearLineRight blanks from the cursor column to end of line.
func (b *Buffer) ClearLineRight() {
	p := b.cursor.Pos
	b.touchRow(p.Row)
	line := b.lines[p.Row]
	line.ClearRange(p.Col, b.cols, b.blankStyle())
	line.SetCont(false)
}

// ClearLineLeft blanks from start of line through the cursor column.
func (b *Buffer) ClearLineLeft() {
	p := b.cursor.Pos
	b.touchRow(p.Row)
	b.lines[p.Row].ClearRange(0, p.Col+1, b.blankStyle())
}

// ClearLine blanks the cursor line.
func (b *Buffer) ClearLine() {
	p := b.cursor.Pos
	b.touchRow(p.Row)
	b.lines[p.Row].Clear(b.blankStyle())
}

// ClearBelow blanks from the cursor to the end of the screen.
func (b *Buffer) ClearBelow() {
	b.ClearLineRight()
	for r := b.cursor.Pos.Row + 1; r < b.rows; r++ {
		b.touchRow(r)
		b.lines[r].Clear(b.blankStyle())
	}
}

// ClearAbove blanks from the top of the screen through the cursor.
func (b *Buffer) ClearAbove() {
	for r := 0; r < b.cursor.Pos.Row; r++ {
		b.touchRow(r)
		b.lines[r].Clear(b.blankStyle())
	}
	b.ClearLineLeft()
}

// Clear blanks the whole screen.
func (b *Buffer) Clear() {
	for r := 0; r < b.rows; r++ {
		b.touchRow(r)
		b.lines[r].Clear(b.blankStyle())
	}
}

// TestPattern fills the screen with E for alignment checks.
func (b *Buffer) TestPattern() {
	b.ClearSelection()
	for _, line := range b.lines {
		for x := 0; x < line.Width(); x++ {
			line.SetCell(x, Cell{Rune: 'E', Style: DefaultStyle()})
		}
	}
}

func (b *Buffer) blankStyle() Style {
	// Erased cells keep the current background but drop attributes.
	return Style{FG: DefaultFG, BG: b.cursor.Style.BG}
}

// --- Line structure within margins ---

// InsertLines opens n blank lines at row, pushing lines below toward the
// bottom margin. No-op outside the scrolling region.
func (b *Buffer) InsertLines(row, n int) {
	if row < b.marginBegin || row >= b.marginEnd {
		return
	}
	if n > b.marginEnd-row {
		n = b.marginEnd - row
	}
	b.clearSelectionInRegion()
	// Drop the lines pushed past the bottom margin.
	for r := b.marginEnd - 1; r >= row+n; r-- {
		b.lines[r] = b.lines[r-n]
	}
	for r := row; r < row+n; r++ {
		b.lines[r] = NewLine(b.cols, b.blankStyle())
	}
	b.damageRegion(row, b.marginEnd)
}

// EraseLines removes n lines at row, pulling lines up from the bottom
// margin and blanking the gap.
func (b *Buffer) EraseLines(row, n int) {
	if row < b.marginBegin || row >= b.marginEnd {
		return
	}
	if n > b.marginEnd-row {
		n = b.marginEnd - row
	}
	b.clearSelectionInRegion()
	for r := row; r < b.marginEnd-n; r++ {
		b.lines[r] = b.lines[r+n]
	}
	for r := b.marginEnd - n; r < b.marginEnd; r++ {
		b.lines[r] = NewLine(b.cols, b.blankStyle())
	}
	b.damageRegion(row, b.marginEnd)
}

// AddLine scrolls the region up one line. On a primary buffer with the
// top margin at the screen top, the evicted line goes to history.
func (b *Buffer) AddLine() {
	b.scrollUpMargins()
}

// ScrollUpMargins scrolls the region up n lines (SU).
func (b *Buffer) ScrollUpMargins(n int) {
	for i := 0; i < n; i++ {
		b.scrollUpMargins()
	}
}

// ScrollDownMargins scrolls the region down n lines (SD).
func (b *Buffer) ScrollDownMargins(n int) {
	if n > b.marginEnd-b.marginBegin {
		n = b.marginEnd - b.marginBegin
	}
	b.clearSelectionInRegion()
	for r := b.marginEnd - 1; r >= b.marginBegin+n; r-- {
		b.lines[r] = b.lines[r-n]
	}
	for r := b.marginBegin; r < b.marginBegin+n; r++ {
		b.lines[r] = NewLine(b.cols, b.blankStyle())
	}
	b.damageRegion(b.marginBegin, b.marginEnd)
}

func (b *Buffer) scrollUpMargins() {
	b.clearSelectionInRegion()
	evicted := b.lines[b.marginBegin]
	for r := b.marginBegin; r < b.marginEnd-1; r++ {
		b.lines[r] = b.lines[r+1]
	}
	b.lines[b.marginEnd-1] = NewLine(b.cols, b.blankStyle())

	if !b.alt && b.marginBegin == 0 && b.dedup != nil {
		b.evictToHistory(evicted)
	}
	b.damageRegion(b.marginBegin, b.marginEnd)
}

func (b *Buffer) evictToHistory(line *Line) {
	cells := line.trimmed()
	tag := b.dedup.Store(cells, line.Cont())
	b.historyTags = append(b.historyTags, tag)
	if b.Evicted != nil {
		b.Evicted(len(b.historyTags)-1, cellsToString(cells))
	}
	if !b.unlimited && b.historyLimit >= 0 {
		for len(b.historyTags) > b.historyLimit {
			b.dedup.Release(b.historyTags[0])
			b.historyTags = b.historyTags[1:]
			b.shiftSelection(-1)
		}
	}
	if b.viewOffset > 0 && b.viewOffset < len(b.historyTags) {
		// Keep the view anchored to the content the user is reading.
		b.viewOffset++
		b.barDamage = true
	}
	b.barDamage = true
}

func (b *Buffer) damageRegion(begin, end int) {
	for r := begin; r < end; r++ {
		b.lines[r].DamageAll()
	}
}

func cellsToString(cells []Cell) string {
	rs := make([]rune, 0, len(cells))
	for _, c := range cells {
		if c.Rune == 0 {
			rs = append(rs, ' ')
		} else {
			rs = append(rs, c.Rune)
		}
	}
	return string(rs)
}
