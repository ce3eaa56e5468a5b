// Package engine implements the tetromino simulation: the 7-bag
// randomizer, the locked-cell board, collision tests and the piece state
// machine that drives gravity, sliding, rotation, hold and line clears.
//
// The package has no rendering or I/O dependencies. Callers feed it an
// Input and an elapsed duration once per frame and read back a Snapshot.
package engine

import "fmt"

// Grid dimensions in cells.
const (
	Width  = 10
	Height = 20
)

// Unit is the length of one cell in half-cell coordinates.
const Unit = 2

// Vec2 is a point in half-cell units relative to the field origin, which
// sits at the top-centre of the grid. Y grows upward, so every cell inside
// the grid has a negative Y. Cell centres always have odd coordinates.
type Vec2 struct {
	X, Y int
}

// Add returns v translated by o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// RotateCW rotates v by -90 degrees about the origin.
func (v Vec2) RotateCW() Vec2 {
	return Vec2{X: v.Y, Y: -v.X}
}

// Cells returns a whole-cell displacement in half-cell units.
func Cells(dx, dy int) Vec2 {
	return Vec2{X: dx * Unit, Y: dy * Unit}
}

// Pos is an integer grid position. Col runs left to right in [0, Width),
// Row counts upward from the bottom row. Rows at or above Height lie above
// the visible field.
type Pos struct {
	Col, Row int
}

// PosOf converts a cell-centre point to its grid position.
func PosOf(p Vec2) Pos {
	return Pos{
		Col: floorDiv(p.X+Width-1, Unit),
		Row: floorDiv(p.Y+2*Height-1, Unit),
	}
}

// Center returns the field point at the centre of the cell.
func (p Pos) Center() Vec2 {
	return Vec2{X: Unit*p.Col - (Width - 1), Y: Unit*p.Row - (2*Height - 1)}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// Shape identifies one of the seven tetrominoes.
type Shape int

// Shapes in bag order.
const (
	ShapeI Shape = iota
	ShapeO
	ShapeT
	ShapeS
	ShapeZ
	ShapeJ
	ShapeL
)

// ShapeCount is the number of distinct tetrominoes.
const ShapeCount = 7

// shapeOffsets holds the canonical orientation of every shape as four
// offsets from the piece origin.
var shapeOffsets = [ShapeCount][4]Vec2{
	ShapeI: {{-3, 1}, {-1, 1}, {1, 1}, {3, 1}},
	ShapeO: {{-1, 1}, {1, 1}, {1, -1}, {-1, -1}},
	ShapeT: {{0, 2}, {0, 0}, {-2, 0}, {2, 0}},
	ShapeS: {{2, 2}, {0, 2}, {0, 0}, {-2, 0}},
	ShapeZ: {{-2, 2}, {0, 2}, {0, 0}, {2, 0}},
	ShapeJ: {{-2, 2}, {-2, 0}, {0, 0}, {2, 0}},
	ShapeL: {{-2, 0}, {0, 0}, {2, 0}, {2, 2}},
}

var shapeNames = [ShapeCount]string{"I", "O", "T", "S", "Z", "J", "L"}

// Valid reports whether s names one of the seven shapes.
func (s Shape) Valid() bool {
	return s >= 0 && s < ShapeCount
}

// String returns the conventional letter for the shape.
func (s Shape) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Shape(%d)", int(s))
	}
	return shapeNames[s]
}

// Offsets returns the canonical cell offsets of the shape.
// Panics on an invalid shape.
func (s Shape) Offsets() [4]Vec2 {
	mustValid(s)
	return shapeOffsets[s]
}

// Rotates reports whether rotation changes the shape. The O piece is
// symmetric, so rotating it is a no-op.
func (s Shape) Rotates() bool {
	return s != ShapeO
}

// SpawnOrigin returns the origin a freshly spawned piece of this shape
// starts at. I and O spawn one row higher so they sit centred.
func (s Shape) SpawnOrigin() Vec2 {
	mustValid(s)
	if s == ShapeI || s == ShapeO {
		return Vec2{X: 0, Y: -2}
	}
	return Vec2{X: -1, Y: -3}
}

func mustValid(s Shape) {
	if !s.Valid() {
		panic(fmt.Sprintf("tetris: invalid shape index %d", int(s)))
	}
}
