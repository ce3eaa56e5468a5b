package engine

// Snapshot is a read-only copy of everything a renderer needs.
type Snapshot struct {
	State State

	Locked []Cell

	Active      Piece
	ActiveCells [4]Pos

	GhostCells   [4]Pos
	GhostVisible bool

	Next Shape

	Hold        Shape
	HoldVisible bool
	HoldUsed    bool

	Lines  int
	Pieces int
}

// Snapshot captures the current state. The returned value shares no
// memory with the engine.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		State:        e.state,
		Locked:       e.board.Cells(),
		Active:       e.active,
		ActiveCells:  e.active.Cells(),
		GhostCells:   e.ghost.Cells(),
		GhostVisible: e.state != StateGameOver,
		Next:         e.bag.PeekNext(),
		Hold:         e.holdShape,
		HoldVisible:  e.holdOccupied,
		HoldUsed:     e.holdUsed,
		Lines:        e.lines,
		Pieces:       e.pieces,
	}
}
