package engine

// Piece is a tetromino pose: a shape, a quarter-turn count and an origin
// in half-cell field coordinates.
type Piece struct {
	Shape    Shape
	Rotation int // Clockwise quarter turns in [0, 4)
	Origin   Vec2
}

// SpawnPiece returns the spawn pose for the given shape.
func SpawnPiece(s Shape) Piece {
	return Piece{Shape: s, Origin: s.SpawnOrigin()}
}

// Offsets returns the four cell offsets of the pose relative to its origin.
func (p Piece) Offsets() [4]Vec2 {
	offsets := p.Shape.Offsets()
	for range p.Rotation % 4 {
		for i := range offsets {
			offsets[i] = offsets[i].RotateCW()
		}
	}
	return offsets
}

// Points returns the four cell centres of the pose in field coordinates.
func (p Piece) Points() [4]Vec2 {
	var points [4]Vec2
	for i, off := range p.Offsets() {
		points[i] = p.Origin.Add(off)
	}
	return points
}

// Cells returns the four grid positions covered by the pose.
func (p Piece) Cells() [4]Pos {
	var cells [4]Pos
	for i, pt := range p.Points() {
		cells[i] = PosOf(pt)
	}
	return cells
}

// Moved returns the pose translated by d.
func (p Piece) Moved(d Vec2) Piece {
	p.Origin = p.Origin.Add(d)
	return p
}

// Rotated returns the pose turned one quarter clockwise about its origin.
func (p Piece) Rotated() Piece {
	p.Rotation = (p.Rotation + 1) % 4
	return p
}
