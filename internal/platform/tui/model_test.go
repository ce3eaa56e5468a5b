package tui

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tetry/internal/core"
	"github.com/vovakirdan/tetry/internal/storage"
)

// recordingGame ends after overAt steps and remembers what it was given.
type recordingGame struct {
	overAt  int
	steps   int
	resets  int
	resized int
	last    core.InputFrame
	cfg     core.RuntimeConfig
}

func (g *recordingGame) ID() string    { return "recording" }
func (g *recordingGame) Title() string { return "Recording" }

func (g *recordingGame) Reset(cfg core.RuntimeConfig) {
	g.cfg = cfg
	g.steps = 0
	g.resets++
}

func (g *recordingGame) Resize(w, h int) { g.resized++ }

func (g *recordingGame) Step(in core.InputFrame) core.StepResult {
	g.steps++
	g.last = in.Clone()
	return core.StepResult{State: g.State()}
}

func (g *recordingGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "recording") }

func (g *recordingGame) State() core.GameState {
	over := g.overAt > 0 && g.steps >= g.overAt
	return core.GameState{Score: g.steps * 10, Lines: g.steps, Level: 1, GameOver: over}
}

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return model
}

func TestModelTickElapsed(t *testing.T) {
	g := &recordingGame{}
	m := NewModel(g, nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1})
	m.Init()

	t0 := time.Unix(1000, 0)
	m = update(t, m, TickMsg(t0))
	if g.last.Elapsed != time.Second/60 {
		t.Errorf("first tick Elapsed = %v, want nominal tick", g.last.Elapsed)
	}

	m = update(t, m, TickMsg(t0.Add(20*time.Millisecond)))
	if g.last.Elapsed != 20*time.Millisecond {
		t.Errorf("Elapsed = %v, want 20ms", g.last.Elapsed)
	}

	update(t, m, TickMsg(t0.Add(5*time.Second)))
	if g.last.Elapsed != maxTickDelta {
		t.Errorf("Elapsed = %v, want cap %v", g.last.Elapsed, maxTickDelta)
	}
}

func TestModelKeyReachesGame(t *testing.T) {
	g := &recordingGame{}
	m := NewModel(g, nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1})
	m.Init()

	m = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m = update(t, m, TickMsg(time.Now()))
	if !g.last.Has(core.ActionLeft) || !g.last.Held(core.ActionLeft) {
		t.Error("expected left pressed and held on the next tick")
	}

	update(t, m, TickMsg(time.Now()))
	if g.last.Has(core.ActionLeft) {
		t.Error("pressed actions must clear after one tick")
	}
}

func TestModelResizeKeepsGame(t *testing.T) {
	g := &recordingGame{}
	m := NewModel(g, nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1})
	m.Init()

	update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if g.resized != 1 || g.resets != 1 {
		t.Errorf("resized=%d resets=%d, want resize without reset", g.resized, g.resets)
	}
}

func TestModelSavesResultOnce(t *testing.T) {
	store := openTestStore(t)
	g := &recordingGame{overAt: 3}
	m := NewModel(g, store, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1}, WithPlayer("ada"))
	m.Init()

	now := time.Unix(1000, 0)
	for i := range 6 {
		m = update(t, m, TickMsg(now.Add(time.Duration(i)*10*time.Millisecond)))
	}
	if !m.State().GameOver {
		t.Fatal("expected game over")
	}

	scores, err := store.TopScores("recording", 10)
	if err != nil {
		t.Fatalf("TopScores: %v", err)
	}
	if len(scores) != 1 {
		t.Fatalf("got %d saved scores, want 1", len(scores))
	}
	if scores[0].Player != "ada" || scores[0].Score != 30 || scores[0].Lines != 3 {
		t.Errorf("unexpected saved entry %+v", scores[0])
	}

	// The stored best is shown by the next game
	m2 := NewModel(&recordingGame{}, store, core.RuntimeConfig{}, WithPlayer("ada"))
	if m2.config.HighScore != 30 {
		t.Errorf("HighScore = %d, want 30", m2.config.HighScore)
	}
}

func TestModelBackAndQuit(t *testing.T) {
	g := &recordingGame{overAt: 1}
	m := NewModel(g, nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1})
	m.Init()

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'b'}})
	if m.BackToMenu() {
		t.Fatal("back must be ignored while playing")
	}

	m = update(t, m, TickMsg(time.Now()))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'b'}})
	if !m.BackToMenu() {
		t.Error("expected back to menu after game over")
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if !m.IsQuitting() {
		t.Error("expected quit")
	}
}

func TestModelRestart(t *testing.T) {
	g := &recordingGame{overAt: 2}
	m := NewModel(g, nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1})
	m.Init()

	m = update(t, m, TickMsg(time.Now()))
	m = update(t, m, TickMsg(time.Now()))
	if !m.State().GameOver {
		t.Fatal("expected game over")
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	m = update(t, m, TickMsg(time.Now()))
	if g.resets != 2 {
		t.Errorf("resets = %d, want 2", g.resets)
	}
	if m.State().GameOver {
		t.Error("expected a fresh game after restart")
	}
	if g.cfg.HighScore != 20 {
		t.Errorf("HighScore = %d, want last score 20", g.cfg.HighScore)
	}
}
