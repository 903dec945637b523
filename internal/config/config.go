// Package config provides YAML/TOML configuration loading and difficulty
// presets for the arcade games and shell defaults.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/arcade-hub/internal/core"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Config is the complete arcade configuration.
type Config struct {
	Snake       SnakeConfig       `yaml:"snake" toml:"snake"`
	Minesweeper MinesweeperConfig `yaml:"minesweeper" toml:"minesweeper"`
	TicTacToe   TicTacToeConfig   `yaml:"tictactoe" toml:"tictactoe"`
	Settings    SettingsConfig    `yaml:"settings" toml:"settings"`
}

// SnakeConfig defines the snake grid and pacing.
type SnakeConfig struct {
	Width          int `yaml:"width" toml:"width"`
	Height         int `yaml:"height" toml:"height"`
	StartX         int `yaml:"start_x" toml:"start_x"`
	StartY         int `yaml:"start_y" toml:"start_y"`
	MoveIntervalMS int `yaml:"move_interval_ms" toml:"move_interval_ms"`
	FoodPoints     int `yaml:"food_points" toml:"food_points"`
}

// MinesweeperConfig defines the board size and scoring.
type MinesweeperConfig struct {
	Rows          int `yaml:"rows" toml:"rows"`
	Cols          int `yaml:"cols" toml:"cols"`
	Mines         int `yaml:"mines" toml:"mines"`
	PointsPerMine int `yaml:"points_per_mine" toml:"points_per_mine"`
}

// TicTacToeConfig defines the opponent pacing and scoring.
type TicTacToeConfig struct {
	AIDelayMS int `yaml:"ai_delay_ms" toml:"ai_delay_ms"`
	WinPoints int `yaml:"win_points" toml:"win_points"`
}

// SettingsConfig holds the settings a fresh store starts with.
type SettingsConfig struct {
	Volume float64 `yaml:"volume" toml:"volume"`
	Theme  string  `yaml:"theme" toml:"theme"`
}

// UserSettings converts the defaults to the core settings type.
// Validate must have passed.
func (s SettingsConfig) UserSettings() core.UserSettings {
	return core.UserSettings{SoundVolume: s.Volume, Theme: core.Theme(s.Theme)}
}

// Validate checks every section and returns the first problem found.
func (c Config) Validate() error {
	s := c.Snake
	switch {
	case s.Width < 4 || s.Height < 4:
		return fmt.Errorf("%w: snake grid %dx%d is smaller than 4x4", ErrInvalid, s.Width, s.Height)
	case !(core.Point{X: s.StartX, Y: s.StartY}).In(s.Width, s.Height):
		return fmt.Errorf("%w: snake start (%d,%d) is outside the grid", ErrInvalid, s.StartX, s.StartY)
	case s.MoveIntervalMS <= 0:
		return fmt.Errorf("%w: snake move_interval_ms must be positive", ErrInvalid)
	case s.FoodPoints <= 0:
		return fmt.Errorf("%w: snake food_points must be positive", ErrInvalid)
	}

	m := c.Minesweeper
	switch {
	case m.Rows < 3 || m.Cols < 3:
		return fmt.Errorf("%w: minesweeper board %dx%d is smaller than 3x3", ErrInvalid, m.Rows, m.Cols)
	case m.Mines < 1:
		return fmt.Errorf("%w: minesweeper needs at least one mine", ErrInvalid)
	case m.Mines > m.Rows*m.Cols-9:
		// The first click and its neighbors are always safe.
		return fmt.Errorf("%w: %d mines do not fit a %dx%d board", ErrInvalid, m.Mines, m.Rows, m.Cols)
	case m.PointsPerMine < 0:
		return fmt.Errorf("%w: minesweeper points_per_mine must not be negative", ErrInvalid)
	}

	t := c.TicTacToe
	if t.AIDelayMS < 0 || t.WinPoints < 0 {
		return fmt.Errorf("%w: tictactoe values must not be negative", ErrInvalid)
	}

	if c.Settings.Volume < 0 || c.Settings.Volume > 1 {
		return fmt.Errorf("%w: settings volume %v outside [0,1]", ErrInvalid, c.Settings.Volume)
	}
	if !core.Theme(c.Settings.Theme).Valid() {
		return fmt.Errorf("%w: settings theme %q", ErrInvalid, c.Settings.Theme)
	}
	return nil
}
