// Package tetris adapts the tetromino engine to the platform's Game
// interface: it maps actions to engine keys, scores locks and clears,
// raises the level and scales gravity through the difficulty manager.
package tetris

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/tetry/internal/config"
	"github.com/vovakirdan/tetry/internal/core"
	"github.com/vovakirdan/tetry/internal/games/tetris/engine"
	"github.com/vovakirdan/tetry/internal/registry"
)

// Mode represents the game mode.
type Mode string

const (
	ModeMarathon Mode = "marathon" // Gravity speeds up with progress
	ModeClassic  Mode = "classic"  // Constant gravity
)

// Mode identifiers used by the registry and score storage.
const (
	IDMarathon = "tetris"
	IDClassic  = "tetris_classic"
)

// clearFlashTicks is how long a clear label stays on screen at 60 ticks/s.
const clearFlashTicks = 60

// Game implements registry.Game for one tetris mode.
type Game struct {
	mode       Mode
	cfg        config.TetrisConfig
	difficulty *config.DifficultyManager

	rng *rand.Rand
	eng *engine.Engine

	tick      uint64
	score     int
	highScore int
	lines     int
	level     int // Zero-based

	lastClear  int
	clearFlash int

	paused   bool
	tooSmall bool

	screenW      int
	screenH      int
	tickRate     int
	tickInterval time.Duration
}

// New creates a marathon mode game with the default configuration.
func New() *Game {
	return newGame(ModeMarathon)
}

// NewClassic creates a classic mode game with the default configuration.
func NewClassic() *Game {
	return newGame(ModeClassic)
}

func newGame(mode Mode) *Game {
	g := &Game{mode: mode}
	g.setConfig(config.DefaultTetrisConfig())
	return g
}

func init() {
	registry.Register(IDMarathon, func() registry.Game {
		return New()
	})
	registry.Register(IDClassic, func() registry.Game {
		return NewClassic()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeClassic {
		return IDClassic
	}
	return IDMarathon
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeClassic {
		return "Tetris (Classic)"
	}
	return "Tetris (Marathon)"
}

// Configure loads the YAML config and applies a difficulty preset.
// It implements registry.Configurable.
func (g *Game) Configure(configPath, difficulty string) error {
	cfg, err := config.LoadTetris(configPath)
	if err != nil {
		return err
	}
	if difficulty != "" {
		preset, err := config.ParseDifficultyPreset(difficulty)
		if err != nil {
			return err
		}
		config.ApplyTetrisPreset(&cfg, preset)
	}
	g.setConfig(cfg)
	return nil
}

func (g *Game) setConfig(cfg config.TetrisConfig) {
	if g.mode == ModeClassic {
		cfg.Difficulty.Enabled = false
		cfg.Difficulty.InitialLevel = 0
	}
	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	timing := g.cfg.Timing
	g.eng = engine.New(engine.Config{
		FallInterval:        timing.Fall(),
		FastFallInterval:    timing.FastFall(),
		SlideStartDelay:     timing.SlideStart(),
		SlideRepeatInterval: timing.SlideRepeat(),
	}, g.rng)

	g.tick = 0
	g.score = 0
	g.highScore = cfg.HighScore
	g.lines = 0
	g.level = 0
	g.lastClear = 0
	g.clearFlash = 0
	g.paused = false
	g.tickRate = cfg.TickRate
	g.tickInterval = cfg.TickInterval()
	g.Resize(cfg.ScreenW, cfg.ScreenH)
	g.applyGravity()
}

// Resize adapts the layout to a new screen size without restarting.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.tooSmall = w < minScreenW || h < minScreenH
}

// Step advances the game by one tick.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	g.tick++

	// Handle restart
	if input.Has(core.ActionRestart) && g.gameOver() {
		g.Reset(core.RuntimeConfig{
			Seed:      g.rng.Int63(),
			ScreenW:   g.screenW,
			ScreenH:   g.screenH,
			TickRate:  g.tickRate,
			HighScore: g.Best(),
		})
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if input.Has(core.ActionPause) && !g.gameOver() {
		g.paused = !g.paused
	}

	if g.clearFlash > 0 {
		g.clearFlash--
	}

	if g.gameOver() || g.paused || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	dt := input.Elapsed
	if dt <= 0 {
		dt = g.tickInterval
	}
	res := g.eng.Step(engineInput(input), dt)
	g.apply(res)

	return core.StepResult{State: g.State(), Cleared: res.Cleared}
}

// engineInput maps platform actions to engine keys. Lateral movement and
// soft drop are level triggered, the rest edge triggered.
func engineInput(input core.InputFrame) engine.Input {
	var in engine.Input
	for _, m := range []struct {
		action core.Action
		key    engine.Key
	}{
		{core.ActionLeft, engine.KeyMoveLeft},
		{core.ActionRight, engine.KeyMoveRight},
		{core.ActionSoftDrop, engine.KeySoftDrop},
	} {
		if input.Held(m.action) {
			in.Held = in.Held.Add(m.key)
		}
		if input.Has(m.action) {
			in.Pressed = in.Pressed.Add(m.key)
		}
	}
	if input.Has(core.ActionHardDrop) {
		in.Pressed = in.Pressed.Add(engine.KeyHardDrop)
	}
	if input.Has(core.ActionRotate) {
		in.Pressed = in.Pressed.Add(engine.KeyRotate)
	}
	if input.Has(core.ActionHold) {
		in.Pressed = in.Pressed.Add(engine.KeyHold)
	}
	return in
}

// apply scores one engine step and updates level and gravity.
func (g *Game) apply(res engine.StepResult) {
	s := g.cfg.Scoring
	g.score += res.SoftDropRows*s.SoftDrop + res.HardDropRows*s.HardDrop

	if res.Cleared > 0 {
		idx := min(res.Cleared, len(s.LinePoints)-1)
		g.score += s.LinePoints[idx] * (g.level + 1)
		g.lines += res.Cleared
		g.lastClear = res.Cleared
		g.clearFlash = clearFlashTicks
		g.updateLevel()
	}
	g.applyGravity()
}

func (g *Game) updateLevel() {
	per := max(g.cfg.Levels.LinesPerLevel, 1)
	level := g.lines / per
	if g.cfg.Levels.MaxLevel > 0 {
		level = min(level, g.cfg.Levels.MaxLevel-1)
	}
	g.level = level
}

func (g *Game) applyGravity() {
	if g.eng == nil {
		return
	}
	timing := g.cfg.Timing
	interval := g.difficulty.FallInterval(timing.Fall(), timing.MinFall(), config.Progress{
		Score: g.score,
		Lines: g.lines,
		Ticks: int(g.tick),
	})
	if interval != g.eng.FallInterval() {
		g.eng.SetFallInterval(interval)
	}
}

func (g *Game) gameOver() bool {
	return g.eng != nil && g.eng.State() == engine.StateGameOver
}

// Best returns the best score including the game in progress.
func (g *Game) Best() int {
	return max(g.highScore, g.score)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		Lines:    g.lines,
		Level:    g.level + 1,
		GameOver: g.gameOver(),
		Paused:   g.paused,
	}
}

// Snapshot captures the game state for determinism testing.
type Snapshot struct {
	Tick         uint64
	Mode         string
	Score        int
	Best         int
	Lines        int
	Level        int
	Pieces       int
	FallInterval time.Duration
	State        string
	Board        engine.Snapshot
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	state := g.eng.State().String()
	switch {
	case g.tooSmall:
		state = "paused_small_window"
	case g.paused:
		state = "paused"
	}
	return Snapshot{
		Tick:         g.tick,
		Mode:         string(g.mode),
		Score:        g.score,
		Best:         g.Best(),
		Lines:        g.lines,
		Level:        g.level + 1,
		Pieces:       g.eng.Pieces(),
		FallInterval: g.eng.FallInterval(),
		State:        state,
		Board:        g.eng.Snapshot(),
	}
}

// clearLabel names a clear by its row count.
func clearLabel(rows int) string {
	switch rows {
	case 1:
		return "Single"
	case 2:
		return "Double"
	case 3:
		return "Triple"
	case 4:
		return "TETRIS!"
	default:
		return fmt.Sprintf("%d lines", rows)
	}
}
