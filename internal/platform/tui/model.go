package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tetry/internal/core"
	"github.com/vovakirdan/tetry/internal/registry"
	"github.com/vovakirdan/tetry/internal/storage"
)

// maxTickDelta caps the simulated time of one tick so a stalled
// terminal does not drop a piece several rows at once.
const maxTickDelta = 250 * time.Millisecond

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	player     string
	keyMapper  *KeyMapper
	holds      *HoldTracker
	inputFrame core.InputFrame
	gameState  core.GameState
	lastTick   time.Time
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether score has been saved for current game over
}

// Option configures a Model.
type Option func(*Model)

// WithPlayer records scores under the given player name.
func WithPlayer(name string) Option {
	return func(m *Model) { m.player = name }
}

// WithLogger reports game events to logger.
func WithLogger(logger *log.Logger) Option {
	return func(m *Model) { m.logger = logger }
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...Option) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		logger:     log.New(io.Discard),
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		holds:      NewHoldTracker(),
		inputFrame: core.NewInputFrame(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.config.HighScore = m.storedBest()
	return m
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, _ := m.keyMapper.MapKey(msg)
	switch {
	case action == core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case action == core.ActionBack && (m.gameState.GameOver || m.gameState.Paused):
		m.backToMenu = true
		return m, tea.Quit
	case action == core.ActionRestart && !m.gameState.GameOver:
		return m, nil
	}

	m.keyMapper.MapKeyToFrame(msg, &m.inputFrame, m.holds, time.Now())
	return m, nil
}

// handleResize processes window resize events. Games that can adapt keep
// their state; the others restart with the new dimensions.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(registry.Resizable); ok {
		r.Resize(msg.Width, msg.Height)
		return m, nil
	}
	if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	m.inputFrame.Elapsed = m.tickDelta(now)
	m.lastTick = now

	// Check for restart
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.config.HighScore = max(m.config.HighScore, m.gameState.Score)
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.scoreSaved = false
		m.holds.Release()
		m.inputFrame.Clear()
		m.inputFrame.ClearHeld()
		return m, tickCmd(m.config.TickRate)
	}

	m.holds.Apply(&m.inputFrame, now)
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if m.gameState.GameOver && !m.scoreSaved {
		m.saveResult()
		m.scoreSaved = true
	}

	// Clear input for next frame
	m.inputFrame.Clear()
	m.inputFrame.ClearHeld()

	return m, tickCmd(m.config.TickRate)
}

// tickDelta returns the wall-clock time since the previous tick.
func (m Model) tickDelta(now time.Time) time.Duration {
	if m.lastTick.IsZero() {
		return m.config.TickInterval()
	}
	return min(max(now.Sub(m.lastTick), 0), maxTickDelta)
}

// saveResult stores the finished game. Best-effort: a failed save is
// logged and play continues.
func (m *Model) saveResult() {
	state := m.gameState
	m.logger.Info("game over",
		"game", m.game.ID(),
		"player", m.player,
		"score", state.Score,
		"lines", state.Lines,
		"level", state.Level,
	)
	if m.store == nil || state.Score <= 0 {
		return
	}
	_, err := m.store.SaveScore(m.game.ID(), storage.Result{
		Player: m.player,
		Score:  state.Score,
		Lines:  state.Lines,
		Level:  state.Level,
	})
	if err != nil {
		m.logger.Warn("could not save score", "game", m.game.ID(), "error", err)
	}
}

// storedBest looks up the high score shown while playing.
func (m Model) storedBest() int {
	if m.store == nil {
		return 0
	}
	var (
		best int
		err  error
	)
	if m.player != "" {
		best, err = m.store.PlayerBest(m.game.ID(), m.player)
	} else {
		best, err = m.store.HighScore(m.game.ID())
	}
	if err != nil {
		m.logger.Warn("could not load high score", "game", m.game.ID(), "error", err)
		return 0
	}
	return best
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	// Render current state
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".tetry", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot directory", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// State returns the last game state seen by the model.
func (m Model) State() core.GameState {
	return m.gameState
}

// Run starts the Bubble Tea program with the given model.
// Returns true if the player asked to go back to the menu.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...Option) (backToMenu bool, err error) {
	model := NewModel(game, store, cfg, opts...)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(Model)
	return ok && m.BackToMenu(), nil
}
