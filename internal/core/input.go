package core

import "time"

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone     Action = iota
	ActionLeft            // A, H, Left arrow - move left
	ActionRight           // D, L, Right arrow - move right
	ActionSoftDrop        // S, J, Down arrow - fall faster
	ActionHardDrop        // Space - drop and lock
	ActionRotate          // W, K, X, Up arrow - rotate clockwise
	ActionHold            // C - hold the active piece
	ActionConfirm         // Enter - confirm selection in menu
	ActionBack            // B - go back to menu
	ActionRestart         // R key - restart game after game over
	ActionQuit            // Q, Ctrl+C - exit game/session
	ActionPause           // P, Escape - pause/unpause game
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionSoftDrop:
		return "SoftDrop"
	case ActionHardDrop:
		return "HardDrop"
	case ActionRotate:
		return "Rotate"
	case ActionHold:
		return "Hold"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// InputFrame is the input state for one simulation tick.
//
// Actions holds the actions triggered this tick (edge). Holding holds the
// actions considered held down (level); terminals only report presses, so
// the platform derives it from key repeat timing.
type InputFrame struct {
	Actions map[Action]bool
	Holding map[Action]bool

	// Elapsed is the wall-clock time since the previous tick. Zero means
	// the game should assume one nominal tick.
	Elapsed time.Duration
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
		Holding: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// Hold marks an action as held down for this frame.
func (f *InputFrame) Hold(a Action) {
	if f.Holding == nil {
		f.Holding = make(map[Action]bool)
	}
	f.Holding[a] = true
}

// Held returns true if the action is held down or was triggered this frame.
func (f InputFrame) Held(a Action) bool {
	return f.Holding[a] || f.Actions[a]
}

// Clear resets the triggered actions for the next frame. Held actions
// are kept; the platform refreshes them separately.
func (f *InputFrame) Clear() {
	clear(f.Actions)
	f.Elapsed = 0
}

// ClearHeld releases every held action.
func (f *InputFrame) ClearHeld() {
	clear(f.Holding)
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	for k, v := range f.Holding {
		clone.Holding[k] = v
	}
	clone.Elapsed = f.Elapsed
	return clone
}
