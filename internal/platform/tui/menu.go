package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tetry/internal/config"
	"github.com/vovakirdan/tetry/internal/core"
	"github.com/vovakirdan/tetry/internal/registry"
)

// difficultyChoices is the cycle shown in the menu. The empty choice
// keeps whatever the config file says.
var difficultyChoices = append([]config.DifficultyPreset{""}, config.Presets...)

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	menuDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// MenuKeyMap defines the key bindings of the mode picker.
type MenuKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Easier key.Binding
	Harder key.Binding
	Play   key.Binding
	Scores key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k MenuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Harder, k.Play, k.Scores, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k MenuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Harder}, {k.Play, k.Scores, k.Quit}}
}

// DefaultMenuKeyMap returns default key bindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "w", "k"), key.WithHelp("↑/↓", "mode")),
		Down:   key.NewBinding(key.WithKeys("down", "s", "j")),
		Easier: key.NewBinding(key.WithKeys("left", "a", "h")),
		Harder: key.NewBinding(key.WithKeys("right", "d", "l"), key.WithHelp("←/→", "difficulty")),
		Play:   key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "play")),
		Scores: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "scores")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	Difficulty      config.DifficultyPreset
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// MenuModel is the Bubble Tea model for the mode picker.
type MenuModel struct {
	modes      []registry.GameInfo
	cursor     int
	difficulty int // Index into difficultyChoices
	config     core.RuntimeConfig
	keys       MenuKeyMap
	help       help.Model
	result     *MenuResult // Set once the user leaves the menu
}

// NewMenuModel creates a menu listing every registered mode.
func NewMenuModel(cfg core.RuntimeConfig) MenuModel {
	m := MenuModel{
		modes:  registry.List(),
		config: cfg,
		keys:   DefaultMenuKeyMap(),
		help:   help.New(),
	}
	m.help.Width = cfg.ScreenW
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		if m.result != nil {
			return m, nil
		}
		n := len(difficultyChoices)
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m.finish(MenuResult{Quit: true})
		case key.Matches(msg, m.keys.Scores):
			return m.finish(MenuResult{WantsScoreboard: true})
		case key.Matches(msg, m.keys.Play):
			if len(m.modes) > 0 {
				return m.finish(MenuResult{GameID: m.modes[m.cursor].ID})
			}
		case key.Matches(msg, m.keys.Up):
			m.cursor = max(m.cursor-1, 0)
		case key.Matches(msg, m.keys.Down):
			m.cursor = min(m.cursor+1, max(len(m.modes)-1, 0))
		case key.Matches(msg, m.keys.Easier):
			m.difficulty = (m.difficulty + n - 1) % n
		case key.Matches(msg, m.keys.Harder):
			m.difficulty = (m.difficulty + 1) % n
		}
	}
	return m, nil
}

// finish records the outcome and ends the menu program.
func (m MenuModel) finish(r MenuResult) (tea.Model, tea.Cmd) {
	r.Difficulty = m.Difficulty()
	r.Config = m.config
	m.result = &r
	return m, tea.Quit
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.IsQuitting() {
		return ""
	}
	w := m.config.ScreenW

	lines := []string{
		"",
		menuTitleStyle.Render(centerText("T E T R Y", w)),
		"",
		centerText("Select a mode", w),
		"",
	}
	for i, g := range m.modes {
		if i == m.cursor {
			lines = append(lines, menuActiveStyle.Render(centerText("> "+g.Title+"  ", w)))
		} else {
			lines = append(lines, centerText(g.Title, w))
		}
	}
	lines = append(lines,
		"",
		centerText("Difficulty: < "+m.Difficulty().Label()+" >", w),
		"",
		menuDimStyle.Render(centerText(m.help.View(m.keys), w)),
	)
	return strings.Join(lines, "\n") + "\n"
}

// Difficulty returns the chosen difficulty preset, empty for the
// configured default.
func (m MenuModel) Difficulty() config.DifficultyPreset {
	return difficultyChoices[m.difficulty]
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.result != nil && m.result.Quit
}

// Result summarizes the menu outcome. Before the user leaves the menu
// only Config and Difficulty are set.
func (m MenuModel) Result() MenuResult {
	if m.result == nil {
		return MenuResult{Config: m.config, Difficulty: m.Difficulty()}
	}
	return *m.result
}

// Done reports whether the user has left the menu.
func (m MenuModel) Done() bool {
	return m.result != nil
}

// centerText pads text on the left to center it within width.
func centerText(text string, width int) string {
	n := lipgloss.Width(text)
	if n >= width {
		return text
	}
	return strings.Repeat(" ", (width-n)/2) + text
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(cfg core.RuntimeConfig) (MenuResult, error) {
	final, err := tea.NewProgram(NewMenuModel(cfg), tea.WithAltScreen()).Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}
	m, ok := final.(MenuModel)
	if !ok || !m.Done() {
		return MenuResult{Config: cfg, Quit: true}, nil
	}
	return m.Result(), nil
}
