package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	var cfg TetrisConfig
	if err := yaml.Unmarshal(defaultTetrisYAML, &cfg); err != nil {
		t.Fatalf("embedded default does not parse: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultTetrisConfig()) {
		t.Errorf("embedded default = %+v\nhardcoded = %+v", cfg, DefaultTetrisConfig())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("embedded default is invalid: %v", err)
	}
}

func TestLoadTetrisFallsBackToDefault(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadTetris("")
	if err != nil {
		t.Fatalf("LoadTetris() error = %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultTetrisConfig()) {
		t.Errorf("LoadTetris() = %+v, expected defaults", cfg)
	}
}

func TestLoadTetrisUserConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".tetry", "configs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	data := "timing:\n  fall_ms: 800\n"
	if err := os.WriteFile(filepath.Join(dir, "tetris.yaml"), []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadTetris("")
	if err != nil {
		t.Fatalf("LoadTetris() error = %v", err)
	}
	if cfg.Timing.FallMs != 800 {
		t.Errorf("FallMs = %d, expected 800", cfg.Timing.FallMs)
	}
	if cfg.Timing.SlideStartMs != 170 {
		t.Errorf("unset fields should keep defaults, SlideStartMs = %d", cfg.Timing.SlideStartMs)
	}
}

func TestLoadTetrisSkipsInvalidUserConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".tetry", "configs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "tetris.yaml"), []byte("timing:\n  fall_ms: -1\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadTetris("")
	if err != nil {
		t.Fatalf("LoadTetris() error = %v", err)
	}
	if cfg.Timing.FallMs != 500 {
		t.Errorf("invalid user config should be skipped, FallMs = %d", cfg.Timing.FallMs)
	}
}

func TestLoadTetrisCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := "scoring:\n  line_points: [0, 40, 100, 300, 1200]\ndifficulty:\n  progression:\n    type: score\n    max_at: 10000\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadTetris(path)
	if err != nil {
		t.Fatalf("LoadTetris(%q) error = %v", path, err)
	}
	if cfg.Scoring.LinePoints[4] != 1200 {
		t.Errorf("LinePoints = %v", cfg.Scoring.LinePoints)
	}
	if cfg.Difficulty.Progression.Type != ProgressionScore {
		t.Errorf("Progression.Type = %q", cfg.Difficulty.Progression.Type)
	}
}

func TestLoadTetrisCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadTetris(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing custom config should fail")
	}

	broken := filepath.Join(dir, "broken.yaml")
	if err := os.WriteFile(broken, []byte("timing: [oops"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTetris(broken); err == nil || !strings.Contains(err.Error(), "parse") {
		t.Errorf("broken custom config error = %v", err)
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("levels:\n  lines_per_level: 0\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTetris(invalid); err == nil || !strings.Contains(err.Error(), "lines_per_level") {
		t.Errorf("invalid custom config error = %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*TetrisConfig)
		want   string
	}{
		{"zero fall", func(c *TetrisConfig) { c.Timing.FallMs = 0 }, "timing.fall_ms"},
		{"min above base", func(c *TetrisConfig) { c.Timing.MinFallMs = 900 }, "min_fall_ms"},
		{"short points", func(c *TetrisConfig) { c.Scoring.LinePoints = []int{0, 1} }, "line_points"},
		{"bad progression", func(c *TetrisConfig) { c.Difficulty.Progression.Type = "moon" }, "moon"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultTetrisConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate() = %v, expected mention of %q", err, tt.want)
			}
		})
	}
}

func TestTimingDurations(t *testing.T) {
	timing := DefaultTetrisConfig().Timing
	if timing.Fall() != 500*time.Millisecond {
		t.Errorf("Fall() = %v", timing.Fall())
	}
	if timing.FastFall() != 50*time.Millisecond || timing.SlideStart() != 170*time.Millisecond ||
		timing.SlideRepeat() != 50*time.Millisecond || timing.MinFall() != 60*time.Millisecond {
		t.Errorf("unexpected durations from %+v", timing)
	}
}

func TestParseDifficultyPreset(t *testing.T) {
	for _, p := range Presets {
		got, err := ParseDifficultyPreset(string(p))
		if err != nil || got != p {
			t.Errorf("ParseDifficultyPreset(%q) = %q, %v", p, got, err)
		}
	}
	if _, err := ParseDifficultyPreset("insane"); err == nil {
		t.Error("unknown preset should fail")
	}
}

func TestApplyTetrisPreset(t *testing.T) {
	cfg := DefaultTetrisConfig()
	ApplyTetrisPreset(&cfg, DifficultyFixed)
	if cfg.Difficulty.Enabled {
		t.Error("fixed preset should disable progression")
	}

	cfg = DefaultTetrisConfig()
	ApplyTetrisPreset(&cfg, DifficultyHard)
	if !cfg.Difficulty.Enabled || cfg.Difficulty.InitialLevel != 0.7 {
		t.Errorf("hard preset difficulty = %+v", cfg.Difficulty)
	}
	if cfg.Levels.LinesPerLevel != 5 {
		t.Errorf("hard preset LinesPerLevel = %d, expected 5", cfg.Levels.LinesPerLevel)
	}

	cfg = DefaultTetrisConfig()
	ApplyTetrisPreset(&cfg, DifficultyEasy)
	if cfg.Timing.SlideStartMs != 200 || cfg.Difficulty.InitialLevel != 0 {
		t.Errorf("easy preset = %+v %+v", cfg.Timing, cfg.Difficulty)
	}
}
