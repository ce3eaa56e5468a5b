package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tetry/internal/core"
)

// Terminals report key presses but never releases. A holdable key counts
// as held for a short window after each event; events arriving within the
// repeat window of the previous one are terminal auto-repeat, not presses.
const (
	holdInitialWindow = 80 * time.Millisecond
	holdRepeatWindow  = 150 * time.Millisecond
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	key := msg.String()

	// Global quit keys
	switch key {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	}

	switch key {
	case "left", "a", "h":
		return core.ActionLeft, false
	case "right", "d", "l":
		return core.ActionRight, false
	case "down", "s", "j":
		return core.ActionSoftDrop, false
	case " ":
		return core.ActionHardDrop, false
	case "up", "w", "x", "k":
		return core.ActionRotate, false
	case "c", "shift+c":
		return core.ActionHold, false
	case "enter":
		return core.ActionConfirm, false
	case "b":
		return core.ActionBack, false
	case "p", "esc":
		return core.ActionPause, false
	case "r":
		return core.ActionRestart, false
	}

	return core.ActionNone, false
}

// Holdable reports whether an action is level triggered.
func Holdable(a core.Action) bool {
	switch a {
	case core.ActionLeft, core.ActionRight, core.ActionSoftDrop:
		return true
	}
	return false
}

// HoldTracker derives held keys from the stream of key events.
type HoldTracker struct {
	last  map[core.Action]time.Time
	until map[core.Action]time.Time
}

// NewHoldTracker creates an empty tracker.
func NewHoldTracker() *HoldTracker {
	return &HoldTracker{
		last:  make(map[core.Action]time.Time),
		until: make(map[core.Action]time.Time),
	}
}

// Press records a key event for a holdable action at now.
// Returns true if the event is a fresh press rather than auto-repeat.
func (h *HoldTracker) Press(a core.Action, now time.Time) bool {
	last, seen := h.last[a]
	fresh := !seen || now.Sub(last) > holdRepeatWindow
	h.last[a] = now

	window := holdRepeatWindow
	if fresh {
		window = holdInitialWindow
	}
	h.until[a] = now.Add(window)
	return fresh
}

// Apply marks every action still held at now in the frame and forgets
// the expired ones.
func (h *HoldTracker) Apply(frame *core.InputFrame, now time.Time) {
	for a, until := range h.until {
		if now.Before(until) {
			frame.Hold(a)
			continue
		}
		delete(h.until, a)
	}
}

// Release forgets every held action.
func (h *HoldTracker) Release() {
	clear(h.last)
	clear(h.until)
}

// MapKeyToFrame updates an input frame based on a key message.
// Holdable actions go through the tracker; only fresh presses are set.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame, holds *HoldTracker, now time.Time) bool {
	action, isQuit := km.MapKey(msg)
	if action == core.ActionNone || isQuit {
		return isQuit
	}
	if Holdable(action) && holds != nil {
		if !holds.Press(action, now) {
			return false
		}
	}
	frame.Set(action)
	return false
}
