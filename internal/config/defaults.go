package config

import (
	_ "embed"
)

//go:embed defaults/arcade.yaml
var defaultYAML []byte

// Default returns the built-in configuration, used when even the embedded
// YAML cannot be parsed.
func Default() Config {
	return Config{
		Snake: SnakeConfig{
			Width:          20,
			Height:         20,
			StartX:         10,
			StartY:         10,
			MoveIntervalMS: 100,
			FoodPoints:     10,
		},
		Minesweeper: MinesweeperConfig{
			Rows:          10,
			Cols:          10,
			Mines:         15,
			PointsPerMine: 10,
		},
		TicTacToe: TicTacToeConfig{
			AIDelayMS: 500,
			WinPoints: 1,
		},
		Settings: SettingsConfig{
			Volume: 0.5,
			Theme:  "light",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
