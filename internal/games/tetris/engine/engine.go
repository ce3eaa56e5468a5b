package engine

import (
	"math/rand"
	"time"
)

// State is the phase of the piece state machine.
type State int

const (
	StatePlay State = iota
	StatePlace
	StateAdvance
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StatePlay:
		return "play"
	case StatePlace:
		return "place"
	case StateAdvance:
		return "advance"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Config holds the timer durations of the engine.
type Config struct {
	FallInterval        time.Duration // Gravity step
	FastFallInterval    time.Duration // Gravity step while soft dropping
	SlideStartDelay     time.Duration // Auto-repeat delay after the first lateral move
	SlideRepeatInterval time.Duration // Auto-repeat period
}

// DefaultConfig returns the stock timings.
func DefaultConfig() Config {
	return Config{
		FallInterval:        500 * time.Millisecond,
		FastFallInterval:    50 * time.Millisecond,
		SlideStartDelay:     170 * time.Millisecond,
		SlideRepeatInterval: 50 * time.Millisecond,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.FallInterval <= 0 {
		c.FallInterval = d.FallInterval
	}
	if c.FastFallInterval <= 0 {
		c.FastFallInterval = d.FastFallInterval
	}
	if c.SlideStartDelay <= 0 {
		c.SlideStartDelay = d.SlideStartDelay
	}
	if c.SlideRepeatInterval <= 0 {
		c.SlideRepeatInterval = d.SlideRepeatInterval
	}
	return c
}

// Key is an abstract input key.
type Key uint8

const (
	KeyMoveLeft Key = iota
	KeyMoveRight
	KeySoftDrop
	KeyHardDrop
	KeyRotate
	KeyHold
)

// KeySet is a set of keys.
type KeySet uint8

// Has reports whether k is in the set.
func (s KeySet) Has(k Key) bool {
	return s&(1<<k) != 0
}

// Add returns the set with k included.
func (s KeySet) Add(k Key) KeySet {
	return s | 1<<k
}

// Keys builds a set from keys.
func Keys(keys ...Key) KeySet {
	var s KeySet
	for _, k := range keys {
		s = s.Add(k)
	}
	return s
}

// Input is the key state sampled for one step. Held is level triggered
// (lateral movement, soft drop); Pressed is edge triggered (hard drop,
// rotate, hold) and must only carry keys that went down this step.
type Input struct {
	Held    KeySet
	Pressed KeySet
}

// StepResult reports what happened during one step.
type StepResult struct {
	State        State
	Locked       bool  // A piece was committed to the board
	Cleared      int   // Number of rows cleared
	ClearedRows  []int // Cleared row indices, ascending
	SoftDropRows int   // Rows descended by gravity while soft dropping
	HardDropRows int   // Rows skipped by a hard drop
	Held         bool  // A hold was performed
	GameOver     bool  // The game ended during this step
}

// kicks lists the horizontal displacements, in cells, tried in order when
// a rotated pose collides.
var kicks = [...]int{0, 1, -1, 2, -2}

// Engine is the simulation context. It is not safe for concurrent use.
type Engine struct {
	cfg   Config
	bag   *Bag
	board *Board

	state  State
	active Piece
	ghost  Piece

	holdShape    Shape
	holdOccupied bool
	holdUsed     bool

	fallTimer     Timer
	fastFallTimer Timer
	slideStart    Timer
	slideRepeat   Timer
	slideDir      int
	hitFloor      bool

	lines  int
	pieces int

	result StepResult
}

// New creates an engine dealing pieces from a bag seeded by rng.
func New(cfg Config, rng *rand.Rand) *Engine {
	return NewWithBag(cfg, NewBag(rng))
}

// NewWithBag creates an engine dealing pieces from bag.
func NewWithBag(cfg Config, bag *Bag) *Engine {
	if bag == nil {
		panic("tetris: engine requires a bag")
	}
	cfg = cfg.withDefaults()
	e := &Engine{
		cfg:           cfg,
		bag:           bag,
		board:         NewBoard(),
		fallTimer:     NewTimer(cfg.FallInterval, Repeating),
		fastFallTimer: NewTimer(min(cfg.FastFallInterval, cfg.FallInterval), Repeating),
		slideStart:    NewTimer(cfg.SlideStartDelay, Once),
		slideRepeat:   NewTimer(cfg.SlideRepeatInterval, Repeating),
	}
	e.spawn(bag.Current())
	e.pieces = 1
	if !e.board.Fits(e.active) {
		e.state = StateGameOver
	}
	e.updateGhost()
	return e
}

// SetFallInterval changes the gravity period. The soft drop period is
// capped so it is never slower than gravity.
func (e *Engine) SetFallInterval(d time.Duration) {
	if d <= 0 {
		return
	}
	e.fallTimer.SetDuration(d)
	e.fastFallTimer.SetDuration(min(e.cfg.FastFallInterval, d))
}

// FallInterval returns the current gravity period.
func (e *Engine) FallInterval() time.Duration {
	return e.fallTimer.Duration()
}

// State returns the current phase.
func (e *Engine) State() State { return e.state }

// Active returns the active piece.
func (e *Engine) Active() Piece { return e.active }

// Ghost returns the landing projection of the active piece.
func (e *Engine) Ghost() Piece { return e.ghost }

// Board returns the locked-cell board. Callers must not mutate it.
func (e *Engine) Board() *Board { return e.board }

// Next returns the shape that spawns after the active piece.
func (e *Engine) Next() Shape { return e.bag.PeekNext() }

// Hold returns the held shape and whether the slot is occupied.
func (e *Engine) Hold() (Shape, bool) { return e.holdShape, e.holdOccupied }

// Lines returns the total number of cleared rows.
func (e *Engine) Lines() int { return e.lines }

// Pieces returns the number of pieces spawned so far.
func (e *Engine) Pieces() int { return e.pieces }

// Step advances the simulation by dt. Stages run in a fixed order so a
// single step can carry a piece from a move through lock, clear and the
// next spawn.
func (e *Engine) Step(in Input, dt time.Duration) StepResult {
	if dt < 0 {
		dt = 0
	}
	e.result = StepResult{}
	if e.state == StateGameOver {
		e.result.State = e.state
		return e.result
	}

	if e.state == StatePlay {
		e.hold(in)
	}
	if e.state == StatePlay {
		e.rotate(in)
	}
	if e.state == StatePlay {
		e.slide(in, dt)
	}
	if e.state == StatePlay {
		e.fall(in, dt)
	}
	if e.state == StatePlace {
		e.place()
	}
	if e.state == StateAdvance {
		e.advance()
	}
	e.updateGhost()

	e.result.State = e.state
	return e.result
}

func (e *Engine) hold(in Input) {
	if !in.Pressed.Has(KeyHold) || e.holdUsed {
		return
	}
	e.holdUsed = true
	e.result.Held = true

	if !e.holdOccupied {
		e.holdShape = e.active.Shape
		e.holdOccupied = true
		e.state = StateAdvance
		return
	}

	shape := e.holdShape
	e.holdShape = e.active.Shape
	e.spawn(shape)
	if !e.board.Fits(e.active) {
		e.gameOver()
	}
}

func (e *Engine) rotate(in Input) {
	if !in.Pressed.Has(KeyRotate) || !e.active.Shape.Rotates() {
		return
	}
	rotated := e.active.Rotated()
	for _, dx := range kicks {
		candidate := rotated.Moved(Cells(dx, 0))
		if e.board.Fits(candidate) {
			e.active = candidate
			return
		}
	}
}

func (e *Engine) slide(in Input, dt time.Duration) {
	dir := 0
	if in.Held.Has(KeyMoveLeft) {
		dir--
	}
	if in.Held.Has(KeyMoveRight) {
		dir++
	}

	// A fresh press restarts auto-repeat even without a release in between.
	repress := (dir < 0 && in.Pressed.Has(KeyMoveLeft)) || (dir > 0 && in.Pressed.Has(KeyMoveRight))
	if dir != e.slideDir || repress {
		e.slideDir = dir
		e.slideStart.Reset()
		e.slideRepeat.Reset()
	} else {
		repeat := false
		if e.slideStart.Tick(dt) {
			repeat = e.slideRepeat.Tick(dt)
		}
		if !repeat {
			return
		}
	}
	if dir == 0 {
		return
	}

	moved := e.active.Moved(Cells(dir, 0))
	if e.board.Fits(moved) {
		e.active = moved
	}
}

func (e *Engine) fall(in Input, dt time.Duration) {
	if in.Pressed.Has(KeyHardDrop) {
		rows := e.dropDistance(e.active)
		e.active = e.active.Moved(Cells(0, -rows))
		e.result.HardDropRows = rows
		e.state = StatePlace
		return
	}

	down := e.active.Moved(Cells(0, -1))
	free := e.board.Fits(down)
	if e.hitFloor && free {
		e.hitFloor = false
	}

	soft := in.Held.Has(KeySoftDrop) && !e.hitFloor
	var due bool
	if soft {
		due = e.fastFallTimer.Tick(dt)
	} else {
		due = e.fallTimer.Tick(dt)
	}
	if !due {
		return
	}

	switch {
	case free:
		e.active = down
		if soft {
			e.result.SoftDropRows++
		}
	case !e.hitFloor:
		// Lock delay: one more gravity period on the stack.
		e.hitFloor = true
		e.fallTimer.Reset()
	default:
		e.state = StatePlace
	}
}

func (e *Engine) place() {
	var locked [4]Cell
	for i, p := range e.active.Cells() {
		locked[i] = Cell{Pos: p, Shape: e.active.Shape}
	}
	e.board.Lock(locked[:]...)
	e.holdUsed = false

	rows := e.board.ClearLines()
	e.lines += len(rows)
	e.result.Locked = true
	e.result.Cleared = len(rows)
	e.result.ClearedRows = rows
	e.state = StateAdvance
}

func (e *Engine) advance() {
	e.bag.Advance()
	e.spawn(e.bag.Current())
	e.pieces++
	if !e.board.Fits(e.active) {
		e.gameOver()
		return
	}
	e.state = StatePlay
}

// spawn puts a fresh piece of shape s at its spawn pose and resets motion.
func (e *Engine) spawn(s Shape) {
	e.active = SpawnPiece(s)
	e.fallTimer.Reset()
	e.fastFallTimer.Reset()
	e.slideStart.Reset()
	e.slideRepeat.Reset()
	e.slideDir = 0
	e.hitFloor = false
}

func (e *Engine) gameOver() {
	e.state = StateGameOver
	e.result.GameOver = true
}

// dropDistance returns how many rows p can fall before it is blocked.
func (e *Engine) dropDistance(p Piece) int {
	rows := 0
	for e.board.Fits(p.Moved(Cells(0, -(rows + 1)))) {
		rows++
	}
	return rows
}

func (e *Engine) updateGhost() {
	e.ghost = e.active.Moved(Cells(0, -e.dropDistance(e.active)))
}
