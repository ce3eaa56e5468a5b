// Package registry provides a global registry for game mode factories.
// Modes register themselves in init() functions, allowing the platform
// to discover and instantiate them without hardcoded dependencies.
package registry

import (
	"cmp"
	"fmt"
	"slices"
	"sync"

	"github.com/vovakirdan/tetry/internal/core"
)

// Game is one playable mode. Implementations hold pure simulation state;
// the platform owns input mapping, timing and terminal output.
type Game interface {
	// ID is the stable mode key used on the command line and in the
	// scores table (e.g. "tetris").
	ID() string

	// Title is the display name (e.g. "Marathon").
	Title() string

	// Reset starts a new game with the given screen size, seed and best
	// score. It runs before the first Step and on every restart.
	Reset(cfg core.RuntimeConfig)

	// Step advances the game by in.Elapsed with the actions collected
	// since the previous tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws into dst, which the caller has cleared.
	Render(dst *core.Screen)

	// State reports score, lines, level and the pause/game-over flags.
	State() core.GameState
}

// Configurable is implemented by games that load external settings.
// The platform calls Configure before the first Reset.
type Configurable interface {
	// Configure loads settings from configPath (empty for the default
	// search order) and applies a difficulty preset (empty for the
	// configured one).
	Configure(configPath, difficulty string) error
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory returns a fresh game instance.
type Factory func() Game

type entry struct {
	factory Factory
	title   string
}

var (
	mu      sync.RWMutex
	entries = make(map[string]entry)
)

// Register adds a game factory under id. Modes call it from init.
// It panics if id is already taken.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, dup := entries[id]; dup {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	entries[id] = entry{factory: f, title: f().Title()}
}

// List returns every registered game ordered by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	infos := make([]GameInfo, 0, len(entries))
	for id, e := range entries {
		infos = append(infos, GameInfo{ID: id, Title: e.title})
	}
	slices.SortFunc(infos, func(a, b GameInfo) int { return cmp.Compare(a.ID, b.ID) })
	return infos
}

// Create returns a new instance of the game registered under id.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return e.factory(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := entries[id]
	return ok
}

// Resizable is implemented by games that can adapt to a new screen size
// without restarting. Games that do not implement it are Reset instead.
type Resizable interface {
	Resize(w, h int)
}
