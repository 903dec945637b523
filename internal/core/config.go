package core

import "fmt"

// Theme is the shell color scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Valid reports whether t is a known theme.
func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// ParseTheme converts a string to a Theme.
func ParseTheme(s string) (Theme, error) {
	t := Theme(s)
	if !t.Valid() {
		return "", fmt.Errorf("core: unknown theme %q", s)
	}
	return t, nil
}

// UserSettings is the read-only settings snapshot handed to a game.
// Games do not observe later changes.
type UserSettings struct {
	SoundVolume float64 // 0..1
	Theme       Theme
}

// DefaultUserSettings returns volume 0.5 and the light theme.
func DefaultUserSettings() UserSettings {
	return UserSettings{SoundVolume: 0.5, Theme: ThemeLight}
}

// RuntimeConfig is passed to a game on every Reset.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in cells
	ScreenH  int   // Screen height in cells
	TickRate int   // Platform ticks per second
	Seed     int64 // RNG seed; 0 means the platform picks one from the clock
	Settings UserSettings
}

// DefaultConfig returns an 80x24 screen at 60 ticks per second.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Settings: DefaultUserSettings(),
	}
}

// TicksFor converts a duration in milliseconds to a tick count at the given rate.
// The result is at least 1.
func TicksFor(ms, tickRate int) int {
	if tickRate <= 0 {
		tickRate = 60
	}
	return max(1, (ms*tickRate+500)/1000)
}

// GameState is the status a game exposes to the platform.
type GameState struct {
	Score    int
	GameOver bool
	Paused   bool
}

// StepResult is returned by Game.Step.
type StepResult struct {
	State GameState
}
