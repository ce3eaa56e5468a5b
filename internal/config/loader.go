package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const tetrisFile = "tetris.yaml"

// LoadTetris loads the tetris configuration.
// Search order: customPath -> ~/.tetry/configs/tetris.yaml -> ./configs/tetris.yaml -> embedded default.
// Only an explicit customPath produces an error; the other locations are
// skipped if missing, unparsable or invalid.
func LoadTetris(customPath string) (TetrisConfig, error) {
	if customPath != "" {
		cfg := DefaultTetrisConfig()
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(tetrisFile); userCfgPath != "" {
		if cfg, ok := tryLoad(userCfgPath); ok {
			return cfg, nil
		}
	}

	// Try local configs directory
	if cfg, ok := tryLoad(filepath.Join("configs", tetrisFile)); ok {
		return cfg, nil
	}

	// Use embedded default YAML
	var cfg TetrisConfig
	if err := yaml.Unmarshal(defaultTetrisYAML, &cfg); err != nil || cfg.Validate() != nil {
		return DefaultTetrisConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// tryLoad reads a config layered over the defaults, so a file only needs
// to name the settings it changes.
func tryLoad(path string) (TetrisConfig, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return TetrisConfig{}, false
	}
	cfg := DefaultTetrisConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return TetrisConfig{}, false
	}
	if err := cfg.Validate(); err != nil {
		return TetrisConfig{}, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tetry", "configs", filename)
}

// ApplyTetrisPreset modifies the config based on a difficulty preset.
func ApplyTetrisPreset(cfg *TetrisConfig, preset DifficultyPreset) {
	if IsFixedPreset(preset) {
		cfg.Difficulty.Enabled = false
		return
	}
	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)

	switch preset {
	case DifficultyEasy:
		cfg.Timing.SlideStartMs = max(cfg.Timing.SlideStartMs, 200)
	case DifficultyHard:
		cfg.Levels.LinesPerLevel = max(cfg.Levels.LinesPerLevel/2, 1)
	}
}
