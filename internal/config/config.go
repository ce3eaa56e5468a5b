// Package config provides YAML-based game configuration loading and
// difficulty management for tetry.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// TetrisConfig contains all configuration for the tetris modes.
type TetrisConfig struct {
	Timing     TetrisTiming     `yaml:"timing"`
	Scoring    TetrisScoring    `yaml:"scoring"`
	Levels     TetrisLevels     `yaml:"levels"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// TetrisTiming defines the engine timers in milliseconds.
type TetrisTiming struct {
	FallMs        int `yaml:"fall_ms"`         // Gravity period at level 0
	FastFallMs    int `yaml:"fast_fall_ms"`    // Gravity period while soft dropping
	SlideStartMs  int `yaml:"slide_start_ms"`  // Delay before lateral auto-repeat
	SlideRepeatMs int `yaml:"slide_repeat_ms"` // Lateral auto-repeat period
	MinFallMs     int `yaml:"min_fall_ms"`     // Fastest gravity the difficulty can reach
}

// Fall returns the base gravity period.
func (t TetrisTiming) Fall() time.Duration { return ms(t.FallMs) }

// FastFall returns the soft drop period.
func (t TetrisTiming) FastFall() time.Duration { return ms(t.FastFallMs) }

// SlideStart returns the auto-repeat delay.
func (t TetrisTiming) SlideStart() time.Duration { return ms(t.SlideStartMs) }

// SlideRepeat returns the auto-repeat period.
func (t TetrisTiming) SlideRepeat() time.Duration { return ms(t.SlideRepeatMs) }

// MinFall returns the gravity floor.
func (t TetrisTiming) MinFall() time.Duration { return ms(t.MinFallMs) }

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

// TetrisScoring defines how points are awarded.
type TetrisScoring struct {
	LinePoints []int `yaml:"line_points"` // Points by rows cleared at once, index 0..4
	SoftDrop   int   `yaml:"soft_drop"`   // Points per row fallen while soft dropping
	HardDrop   int   `yaml:"hard_drop"`   // Points per row skipped by a hard drop
}

// TetrisLevels defines level progression.
type TetrisLevels struct {
	LinesPerLevel int `yaml:"lines_per_level"`
	MaxLevel      int `yaml:"max_level"`
}

// Validate reports every setting that would break the game.
func (c TetrisConfig) Validate() error {
	var errs []error
	t := c.Timing
	for _, f := range []struct {
		name string
		v    int
	}{
		{"timing.fall_ms", t.FallMs},
		{"timing.fast_fall_ms", t.FastFallMs},
		{"timing.slide_start_ms", t.SlideStartMs},
		{"timing.slide_repeat_ms", t.SlideRepeatMs},
		{"timing.min_fall_ms", t.MinFallMs},
	} {
		if f.v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %d", f.name, f.v))
		}
	}
	if t.MinFallMs > t.FallMs {
		errs = append(errs, fmt.Errorf("timing.min_fall_ms (%d) exceeds timing.fall_ms (%d)", t.MinFallMs, t.FallMs))
	}
	if len(c.Scoring.LinePoints) < 5 {
		errs = append(errs, fmt.Errorf("scoring.line_points needs 5 entries, got %d", len(c.Scoring.LinePoints)))
	}
	if c.Levels.LinesPerLevel <= 0 {
		errs = append(errs, fmt.Errorf("levels.lines_per_level must be positive, got %d", c.Levels.LinesPerLevel))
	}
	switch c.Difficulty.Progression.Type {
	case "", ProgressionScore, ProgressionLines, ProgressionTime, ProgressionNone:
	default:
		errs = append(errs, fmt.Errorf("difficulty.progression.type %q is not one of score, lines, time, none", c.Difficulty.Progression.Type))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: invalid tetris config: %w", err)
	}
	return nil
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// Progression types.
const (
	ProgressionScore = "score"
	ProgressionLines = "lines"
	ProgressionTime  = "time"
	ProgressionNone  = "none"
)

// ProgressionConfig defines how difficulty increases during a game.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "lines", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score, lines or ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Gravity speed-up added at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists the presets in menu order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}

// Label returns the display name of the preset.
func (p DifficultyPreset) Label() string {
	if p == "" {
		return "Default"
	}
	return strings.ToUpper(string(p[:1])) + string(p[1:])
}

// ParseDifficultyPreset validates a preset name.
func ParseDifficultyPreset(s string) (DifficultyPreset, error) {
	for _, p := range Presets {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
