package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg != Default() {
		t.Errorf("embedded defaults = %+v, expected %+v", cfg, Default())
	}
}

func TestLoadCustomYAMLOverridesPartially(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := "minesweeper:\n  rows: 12\n  cols: 12\n  mines: 20\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Minesweeper.Rows != 12 || cfg.Minesweeper.Mines != 20 {
		t.Errorf("minesweeper = %+v, expected overrides applied", cfg.Minesweeper)
	}
	if cfg.Snake != Default().Snake {
		t.Errorf("snake section should keep defaults, got %+v", cfg.Snake)
	}
}

func TestLoadCustomTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arcade.toml")
	data := "[snake]\nmove_interval_ms = 80\n\n[settings]\ntheme = \"dark\"\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Snake.MoveIntervalMS != 80 {
		t.Errorf("move_interval_ms = %d, expected 80", cfg.Snake.MoveIntervalMS)
	}
	if cfg.Settings.Theme != "dark" {
		t.Errorf("theme = %q, expected dark", cfg.Settings.Theme)
	}
}

func TestLoadTOMLRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arcade.toml")
	if err := os.WriteFile(path, []byte("[snake]\nspeeed = 3\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() should reject unknown TOML keys")
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load() with a missing custom path should fail")
	}
}

func TestLoadSearchesLocalConfigsDir(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.MkdirAll("configs", 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join("configs", "arcade.yaml"), []byte("tictactoe:\n  ai_delay_ms: 0\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.TicTacToe.AIDelayMS != 0 {
		t.Errorf("ai_delay_ms = %d, expected 0 from ./configs", cfg.TicTacToe.AIDelayMS)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"too many mines", func(c *Config) { c.Minesweeper.Mines = 92 }},
		{"no mines", func(c *Config) { c.Minesweeper.Mines = 0 }},
		{"tiny snake grid", func(c *Config) { c.Snake.Width = 2 }},
		{"snake start outside", func(c *Config) { c.Snake.StartX = 20 }},
		{"zero move interval", func(c *Config) { c.Snake.MoveIntervalMS = 0 }},
		{"volume above one", func(c *Config) { c.Settings.Volume = 1.5 }},
		{"unknown theme", func(c *Config) { c.Settings.Theme = "sepia" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, expected ErrInvalid", err)
			}
		})
	}

	if err := Default().Validate(); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}

	edge := Default()
	edge.Minesweeper.Mines = 91 // 100 cells minus the safe 3x3
	if err := edge.Validate(); err != nil {
		t.Errorf("91 mines on 10x10 should be valid, got %v", err)
	}
}

func TestApplyPreset(t *testing.T) {
	for _, p := range []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard} {
		cfg := Default()
		ApplyPreset(&cfg, p)
		if err := cfg.Validate(); err != nil {
			t.Errorf("preset %s produced invalid config: %v", p, err)
		}
	}

	easy, hard := Default(), Default()
	ApplyPreset(&easy, DifficultyEasy)
	ApplyPreset(&hard, DifficultyHard)
	if easy.Minesweeper.Mines >= Default().Minesweeper.Mines {
		t.Error("easy should have fewer mines than normal")
	}
	if hard.Snake.MoveIntervalMS >= Default().Snake.MoveIntervalMS {
		t.Error("hard snake should move faster than normal")
	}

	if _, err := ParseDifficulty("insane"); err == nil {
		t.Error("ParseDifficulty(insane) should fail")
	}
	if p, _ := ParseDifficulty(""); p != DifficultyNormal {
		t.Errorf("ParseDifficulty(\"\") = %q, expected normal", p)
	}
}
