package engine

// IsCellBlocked reports whether a cell centred at p would be illegal:
// left or right of the walls, below the floor, or on a locked cell. There
// is no ceiling; points above the field are free unless occupied.
func (b *Board) IsCellBlocked(p Vec2) bool {
	if p.X > Width || p.X < -Width || p.Y < -2*Height {
		return true
	}
	return b.Occupied(PosOf(p))
}

// IsPieceBlocked reports whether any of the four offsets, placed at origin,
// is blocked. It never mutates the board.
func (b *Board) IsPieceBlocked(origin Vec2, offsets [4]Vec2) bool {
	for _, off := range offsets {
		if b.IsCellBlocked(origin.Add(off)) {
			return true
		}
	}
	return false
}

// Fits reports whether the pose is legal on the board.
func (b *Board) Fits(p Piece) bool {
	return !b.IsPieceBlocked(p.Origin, p.Offsets())
}
