package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tetry/internal/config"
	"github.com/vovakirdan/tetry/internal/core"
)

func updateMenu(t *testing.T, m MenuModel, msg tea.Msg) MenuModel {
	t.Helper()
	next, _ := m.Update(msg)
	menu, ok := next.(MenuModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return menu
}

func TestMenuDifficultyCycle(t *testing.T) {
	m := NewMenuModel(core.RuntimeConfig{ScreenW: 80, ScreenH: 24})
	if m.Difficulty() != "" {
		t.Fatalf("default difficulty = %q, want configured default", m.Difficulty())
	}
	if !strings.Contains(m.View(), "Difficulty: < Default >") {
		t.Error("expected the default difficulty label")
	}

	m = updateMenu(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if m.Difficulty() != config.Presets[0] {
		t.Errorf("right = %q, want %q", m.Difficulty(), config.Presets[0])
	}

	m = updateMenu(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m = updateMenu(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	if m.Difficulty() != config.Presets[len(config.Presets)-1] {
		t.Errorf("left wraps to %q, want %q", m.Difficulty(), config.Presets[len(config.Presets)-1])
	}
}

func TestMenuPlay(t *testing.T) {
	m := NewMenuModel(core.RuntimeConfig{ScreenW: 80, ScreenH: 24})
	m = updateMenu(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	m = updateMenu(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = updateMenu(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if !m.Done() {
		t.Fatal("expected the menu to finish")
	}
	r := m.Result()
	if r.GameID != "recording" || r.Quit || r.WantsScoreboard {
		t.Errorf("result = %+v", r)
	}
	if r.Difficulty != config.Presets[0] {
		t.Errorf("Difficulty = %q", r.Difficulty)
	}
	if r.Config.ScreenW != 100 || r.Config.ScreenH != 40 {
		t.Errorf("Config size = %dx%d, want resized 100x40", r.Config.ScreenW, r.Config.ScreenH)
	}
}

func TestMenuScoresAndQuit(t *testing.T) {
	m := NewMenuModel(core.RuntimeConfig{ScreenW: 80, ScreenH: 24})
	if r := updateMenu(t, m, tea.KeyMsg{Type: tea.KeyTab}).Result(); !r.WantsScoreboard {
		t.Errorf("tab result = %+v", r)
	}

	m = updateMenu(t, m, runeKey('q'))
	if !m.IsQuitting() || m.View() != "" {
		t.Error("expected quit")
	}
}
