package config

import (
	_ "embed"
)

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

// DefaultTetrisConfig returns the default tetris configuration.
// It matches defaults/tetris.yaml and is used if the embedded file fails
// to parse.
func DefaultTetrisConfig() TetrisConfig {
	return TetrisConfig{
		Timing: TetrisTiming{
			FallMs:        500,
			FastFallMs:    50,
			SlideStartMs:  170,
			SlideRepeatMs: 50,
			MinFallMs:     60,
		},
		Scoring: TetrisScoring{
			LinePoints: []int{0, 100, 300, 500, 800},
			SoftDrop:   1,
			HardDrop:   2,
		},
		Levels: TetrisLevels{
			LinesPerLevel: 10,
			MaxLevel:      20,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  ProgressionLines,
				MaxAt: 150,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 7.0,
			},
		},
	}
}
