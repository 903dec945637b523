package config

import "fmt"

// DifficultyPreset is a named adjustment applied on top of the loaded config.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParseDifficulty accepts "", easy, normal or hard. Empty means normal.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	default:
		return "", fmt.Errorf("%w: difficulty %q (want easy, normal or hard)", ErrInvalid, s)
	}
}

// ApplyPreset adjusts minesweeper density and snake speed.
// Normal leaves the config untouched.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Minesweeper.Mines = max(1, cfg.Minesweeper.Rows*cfg.Minesweeper.Cols/10)
		cfg.Snake.MoveIntervalMS = cfg.Snake.MoveIntervalMS * 3 / 2
	case DifficultyHard:
		cfg.Minesweeper.Rows = max(cfg.Minesweeper.Rows, 16)
		cfg.Minesweeper.Cols = max(cfg.Minesweeper.Cols, 16)
		cfg.Minesweeper.Mines = cfg.Minesweeper.Rows * cfg.Minesweeper.Cols / 6
		cfg.Snake.MoveIntervalMS = max(30, cfg.Snake.MoveIntervalMS*2/3)
	}
}
