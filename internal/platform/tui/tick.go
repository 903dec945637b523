// Package tui provides the Bubble Tea integration for the arcade platform.
// It handles the terminal UI loop, input mapping, and game orchestration.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick. Gen identifies the
// play session that armed it.
type TickMsg struct {
	Gen int64
	At  time.Time
}

var generations atomic.Int64

// nextGeneration returns a process-wide unique play session generation.
// A tick whose generation is not the live one is dropped and not re-armed,
// so a finished or abandoned session stops ticking on its own.
func nextGeneration() int64 {
	return generations.Add(1)
}

// tickCmd returns a Bubble Tea command that sends one tick for gen at the specified rate.
func tickCmd(tickRate int, gen int64) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Gen: gen, At: t}
	})
}
