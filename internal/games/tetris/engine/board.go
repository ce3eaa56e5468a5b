package engine

import (
	"fmt"
	"sort"

	"github.com/kamstrup/intmap"
)

// Cell is a locked block on the board.
type Cell struct {
	Pos
	Shape Shape
}

// Board holds the locked cells. The cell list is the source of truth;
// index maps a packed position to its shape for constant-time lookups.
type Board struct {
	cells []Cell
	index *intmap.Map[int, Shape]
}

// NewBoard creates an empty board.
func NewBoard() *Board {
	return &Board{
		cells: make([]Cell, 0, Width*Height),
		index: intmap.New[int, Shape](Width * Height),
	}
}

func key(p Pos) int {
	return p.Row*Width + p.Col
}

// Len returns the number of locked cells.
func (b *Board) Len() int {
	return len(b.cells)
}

// Cells returns a copy of the locked cells.
func (b *Board) Cells() []Cell {
	out := make([]Cell, len(b.cells))
	copy(out, b.cells)
	return out
}

// Occupied reports whether a locked cell sits at p.
func (b *Board) Occupied(p Pos) bool {
	if p.Col < 0 || p.Col >= Width || p.Row < 0 {
		return false
	}
	_, ok := b.index.Get(key(p))
	return ok
}

// At returns the shape locked at p.
func (b *Board) At(p Pos) (Shape, bool) {
	if p.Col < 0 || p.Col >= Width || p.Row < 0 {
		return 0, false
	}
	return b.index.Get(key(p))
}

// Lock adds cells to the board. Locking on top of an existing cell, or
// outside the columns and below the floor, breaks the board invariant and
// panics.
func (b *Board) Lock(cells ...Cell) {
	for _, c := range cells {
		if c.Col < 0 || c.Col >= Width || c.Row < 0 {
			panic(fmt.Sprintf("tetris: lock outside the grid at col %d row %d", c.Col, c.Row))
		}
		if b.Occupied(c.Pos) {
			panic(fmt.Sprintf("tetris: lock onto occupied cell at col %d row %d", c.Col, c.Row))
		}
		b.cells = append(b.cells, c)
		b.index.Put(key(c.Pos), c.Shape)
	}
}

// ClearLines removes every full row and drops the cells above each one.
// A cell falls by the number of full rows strictly below it. Returns the
// cleared rows in ascending order.
func (b *Board) ClearLines() []int {
	counts := make(map[int]int)
	for _, c := range b.cells {
		counts[c.Row]++
	}

	var full []int
	for row, n := range counts {
		if n >= Width {
			full = append(full, row)
		}
	}
	if len(full) == 0 {
		return nil
	}
	sort.Ints(full)

	kept := b.cells[:0]
	for _, c := range b.cells {
		if counts[c.Row] >= Width {
			continue
		}
		c.Row -= sort.SearchInts(full, c.Row)
		kept = append(kept, c)
	}
	b.cells = kept

	b.index.Clear()
	for _, c := range b.cells {
		b.index.Put(key(c.Pos), c.Shape)
	}
	return full
}

// Reset removes all cells.
func (b *Board) Reset() {
	b.cells = b.cells[:0]
	b.index.Clear()
}
