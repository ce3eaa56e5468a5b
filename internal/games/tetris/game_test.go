package tetris

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tetry/internal/core"
	"github.com/vovakirdan/tetry/internal/games/tetris/engine"
	"github.com/vovakirdan/tetry/internal/registry"
)

func newTestGame(t *testing.T, g *Game) *Game {
	t.Helper()
	g.Reset(core.RuntimeConfig{
		Seed:     7,
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	})
	return g
}

func pressed(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func TestRegistered(t *testing.T) {
	for id, title := range map[string]string{
		IDMarathon: "Tetris (Marathon)",
		IDClassic:  "Tetris (Classic)",
	} {
		g, err := registry.Create(id)
		if err != nil {
			t.Fatalf("Create(%q): %v", id, err)
		}
		if g.ID() != id {
			t.Errorf("ID() = %q, want %q", g.ID(), id)
		}
		if g.Title() != title {
			t.Errorf("Title() = %q, want %q", g.Title(), title)
		}
	}
}

func TestResetState(t *testing.T) {
	g := New()
	g.Reset(core.RuntimeConfig{Seed: 1, ScreenW: 80, ScreenH: 24, TickRate: 60, HighScore: 1234})

	state := g.State()
	if state.Score != 0 || state.Lines != 0 || state.GameOver || state.Paused {
		t.Errorf("unexpected initial state %+v", state)
	}
	if state.Level != 1 {
		t.Errorf("Level = %d, want 1", state.Level)
	}
	if g.Best() != 1234 {
		t.Errorf("Best() = %d, want stored high score 1234", g.Best())
	}
	if got := g.eng.FallInterval(); got != 500*time.Millisecond {
		t.Errorf("FallInterval = %v, want 500ms", got)
	}
	if g.eng.State() != engine.StatePlay {
		t.Errorf("engine state = %v, want play", g.eng.State())
	}
}

func TestHardDropScore(t *testing.T) {
	g := newTestGame(t, New())
	rows := (g.eng.Active().Origin.Y - g.eng.Ghost().Origin.Y) / engine.Unit
	if rows <= 0 {
		t.Fatalf("expected a positive drop distance, got %d", rows)
	}

	res := g.Step(pressed(core.ActionHardDrop))

	want := rows * g.cfg.Scoring.HardDrop
	if res.State.Score != want {
		t.Errorf("Score = %d, want %d", res.State.Score, want)
	}
	if g.eng.Pieces() != 2 {
		t.Errorf("Pieces = %d, want 2 after a hard drop", g.eng.Pieces())
	}
}

func TestGravityUsesElapsed(t *testing.T) {
	g := newTestGame(t, New())
	y := g.eng.Active().Origin.Y

	in := core.NewInputFrame()
	in.Elapsed = 499 * time.Millisecond
	g.Step(in)
	if got := g.eng.Active().Origin.Y; got != y {
		t.Fatalf("piece fell early: y %d -> %d", y, got)
	}

	in.Elapsed = time.Millisecond
	g.Step(in)
	if got := g.eng.Active().Origin.Y; got != y-engine.Unit {
		t.Errorf("y = %d, want %d after one fall interval", got, y-engine.Unit)
	}
}

func TestLineScoringByLevel(t *testing.T) {
	g := newTestGame(t, New())

	g.lines = 9
	g.apply(engine.StepResult{Cleared: 1})
	if g.score != 100 {
		t.Errorf("single at level 1: score = %d, want 100", g.score)
	}
	if g.level != 1 {
		t.Fatalf("level = %d, want 1 after 10 lines", g.level)
	}

	g.apply(engine.StepResult{Cleared: 4})
	if g.score != 100+800*2 {
		t.Errorf("tetris at level 2: score = %d, want %d", g.score, 100+800*2)
	}
	if g.lastClear != 4 || g.clearFlash != clearFlashTicks {
		t.Errorf("clear flash not armed: last=%d flash=%d", g.lastClear, g.clearFlash)
	}

	g.apply(engine.StepResult{SoftDropRows: 3, HardDropRows: 5})
	if g.score != 1700+3+10 {
		t.Errorf("drop points: score = %d, want %d", g.score, 1700+3+10)
	}
}

func TestLevelCapped(t *testing.T) {
	g := newTestGame(t, New())
	g.lines = 10000
	g.updateLevel()
	if g.level != g.cfg.Levels.MaxLevel-1 {
		t.Errorf("level = %d, want cap %d", g.level, g.cfg.Levels.MaxLevel-1)
	}
}

func TestMarathonGravitySpeedsUp(t *testing.T) {
	g := newTestGame(t, New())
	g.lines = 150
	g.applyGravity()

	// 500ms / (1 + 1.0*7)
	if got, want := g.eng.FallInterval(), 62500*time.Microsecond; got != want {
		t.Errorf("FallInterval = %v, want %v", got, want)
	}
}

func TestClassicGravityConstant(t *testing.T) {
	g := newTestGame(t, NewClassic())
	g.lines = 150
	g.score = 100000
	g.applyGravity()

	if got := g.eng.FallInterval(); got != 500*time.Millisecond {
		t.Errorf("FallInterval = %v, want 500ms", got)
	}
}

func TestPauseFreezesPiece(t *testing.T) {
	g := newTestGame(t, New())

	g.Step(pressed(core.ActionPause))
	if !g.State().Paused {
		t.Fatal("expected paused after pause action")
	}

	before := g.eng.Active()
	in := core.NewInputFrame()
	in.Elapsed = time.Second
	for range 10 {
		g.Step(in)
	}
	if g.eng.Active() != before {
		t.Error("piece moved while paused")
	}
	if g.Snapshot().State != "paused" {
		t.Errorf("snapshot state = %q, want paused", g.Snapshot().State)
	}

	g.Step(pressed(core.ActionPause))
	if g.State().Paused {
		t.Error("expected unpaused after second pause action")
	}
}

func TestGameOverAndRestart(t *testing.T) {
	g := newTestGame(t, New())

	for i := 0; i < 500 && !g.State().GameOver; i++ {
		g.Step(pressed(core.ActionHardDrop))
	}
	if !g.State().GameOver {
		t.Fatal("expected game over from stacking hard drops")
	}
	final := g.State().Score
	if final == 0 {
		t.Fatal("expected hard drop points before game over")
	}

	// Pause is ignored once the game is over
	g.Step(pressed(core.ActionPause))
	if g.State().Paused {
		t.Error("pause toggled after game over")
	}

	g.Step(pressed(core.ActionRestart))
	state := g.State()
	if state.GameOver || state.Score != 0 {
		t.Errorf("restart did not reset: %+v", state)
	}
	if g.Best() != final {
		t.Errorf("Best() = %d after restart, want %d", g.Best(), final)
	}
}

func TestRestartIgnoredWhilePlaying(t *testing.T) {
	g := newTestGame(t, New())
	g.Step(pressed(core.ActionHardDrop))
	score := g.State().Score

	g.Step(pressed(core.ActionRestart))
	if g.State().Score != score {
		t.Errorf("restart during play reset the score: %d -> %d", score, g.State().Score)
	}
}

func TestDeterminism(t *testing.T) {
	g1 := newTestGame(t, New())
	g2 := newTestGame(t, New())

	script := map[int][]core.Action{
		5:  {core.ActionLeft},
		10: {core.ActionRotate},
		20: {core.ActionHardDrop},
		30: {core.ActionHold},
		45: {core.ActionRight},
		60: {core.ActionHardDrop},
	}
	for i := range 300 {
		in := pressed(script[i]...)
		if i%3 == 0 {
			in.Hold(core.ActionSoftDrop)
		}
		g1.Step(in)
		g2.Step(in)
	}

	s1, s2 := g1.Snapshot(), g2.Snapshot()
	if !reflect.DeepEqual(s1, s2) {
		t.Errorf("snapshots differ:\n%+v\n%+v", s1, s2)
	}
	if s1.Pieces < 3 {
		t.Errorf("Pieces = %d, expected the script to place pieces", s1.Pieces)
	}
}

func TestResizeTooSmall(t *testing.T) {
	g := newTestGame(t, New())
	g.Resize(40, 20)

	before := g.eng.Active()
	in := core.NewInputFrame()
	in.Elapsed = time.Second
	g.Step(in)
	if g.eng.Active() != before {
		t.Error("piece moved while the window is too small")
	}

	screen := core.NewScreen(40, 20)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("expected too small message")
	}

	g.Resize(80, 24)
	if g.Snapshot().State != "play" {
		t.Errorf("state = %q after resize, want play", g.Snapshot().State)
	}
}

func TestRenderPanels(t *testing.T) {
	g := New()
	g.Reset(core.RuntimeConfig{Seed: 3, ScreenW: 80, ScreenH: 24, TickRate: 60, HighScore: 4321})
	g.Step(pressed(core.ActionHold))

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()

	for _, want := range []string{"Hold", "Next", "Score", "Best", "Lines", "Level", "4321", "[]"} {
		if !strings.Contains(out, want) {
			t.Errorf("render output missing %q", want)
		}
	}
}

func TestRenderClearLabel(t *testing.T) {
	g := newTestGame(t, New())
	g.apply(engine.StepResult{Cleared: 4})

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "TETRIS!") {
		t.Error("expected clear label after a four row clear")
	}
}

func TestConfigure(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "tetris.yaml")
	if err := os.WriteFile(path, []byte("timing:\n  fall_ms: 800\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	g := New()
	if err := g.Configure(path, ""); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	newTestGame(t, g)
	if got := g.eng.FallInterval(); got != 800*time.Millisecond {
		t.Errorf("FallInterval = %v, want 800ms", got)
	}

	if err := g.Configure("", "impossible"); err == nil {
		t.Error("expected an error for an unknown difficulty")
	}
	if err := g.Configure(filepath.Join(t.TempDir(), "missing.yaml"), ""); err == nil {
		t.Error("expected an error for a missing config file")
	}
}

func TestClearLabel(t *testing.T) {
	tests := map[int]string{1: "Single", 2: "Double", 3: "Triple", 4: "TETRIS!"}
	for rows, want := range tests {
		if got := clearLabel(rows); got != want {
			t.Errorf("clearLabel(%d) = %q, want %q", rows, got, want)
		}
	}
}
