// Package store holds the arcade's persistent state: the session history,
// per-game high scores and user settings. All transitions go through a
// Store, which serializes writers, persists each transition before it is
// visible and hands readers deep copies.
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vovakirdan/arcade-hub/internal/core"
)

// ErrInvalidTransfer is wrapped by Import errors. State is untouched when
// it is returned.
var ErrInvalidTransfer = errors.New("store: invalid transfer document")

// Session is one finished play session. Sessions are never modified.
type Session struct {
	ID        string       `json:"id"`
	GameID    string       `json:"gameId"`
	Timestamp int64        `json:"timestamp"` // Unix milliseconds
	Metrics   core.Outcome `json:"metrics"`
}

// Settings are the user preferences shared by every game.
type Settings struct {
	Volume float64    `json:"volume"`
	Theme  core.Theme `json:"theme"`
}

// DefaultSettings returns volume 0.5 and the light theme.
func DefaultSettings() Settings {
	d := core.DefaultUserSettings()
	return Settings{Volume: d.SoundVolume, Theme: d.Theme}
}

// UserSettings converts s to the snapshot handed to games.
func (s Settings) UserSettings() core.UserSettings {
	return core.UserSettings{SoundVolume: s.Volume, Theme: s.Theme}
}

func (s Settings) validate() error {
	if !s.Theme.Valid() {
		return fmt.Errorf("unknown theme %q", s.Theme)
	}
	if s.Volume < 0 || s.Volume > 1 || s.Volume != s.Volume {
		return fmt.Errorf("volume %v outside [0,1]", s.Volume)
	}
	return nil
}

// State is the whole persisted document. It doubles as the transfer format.
type State struct {
	Sessions   []Session      `json:"sessions"`   // newest first
	HighScores map[string]int `json:"highScores"` // game id -> best score
	Settings   Settings       `json:"settings"`
}

// NewState returns an empty history with default settings.
func NewState() State {
	return State{
		Sessions:   []Session{},
		HighScores: map[string]int{},
		Settings:   DefaultSettings(),
	}
}

// Clone returns a deep copy of st.
func (st State) Clone() State {
	out := State{
		Sessions:   make([]Session, len(st.Sessions)),
		HighScores: make(map[string]int, len(st.HighScores)),
		Settings:   st.Settings,
	}
	for i, s := range st.Sessions {
		s.Metrics = s.Metrics.Clone()
		out.Sessions[i] = s
	}
	for k, v := range st.HighScores {
		out.HighScores[k] = v
	}
	return out
}

// withSession returns st with s prepended and the high score of its game
// raised if needed. st itself is not modified.
func (st State) withSession(s Session) State {
	next := State{
		Sessions:   make([]Session, 0, len(st.Sessions)+1),
		HighScores: make(map[string]int, len(st.HighScores)+1),
		Settings:   st.Settings,
	}
	next.Sessions = append(next.Sessions, s)
	next.Sessions = append(next.Sessions, st.Sessions...)
	for k, v := range st.HighScores {
		next.HighScores[k] = v
	}
	if best, ok := next.HighScores[s.GameID]; !ok || s.Metrics.Score > best {
		next.HighScores[s.GameID] = s.Metrics.Score
	}
	return next
}

// Encode renders st as an indented transfer document.
func (st State) Encode() ([]byte, error) {
	norm := st.Clone()
	data, err := json.MarshalIndent(norm, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("store: encode: %w", err)
	}
	return data, nil
}

// DecodeTransfer parses and validates a transfer document. All three
// top-level keys must be present and non-null.
func DecodeTransfer(data []byte) (State, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return State{}, fmt.Errorf("%w: %v", ErrInvalidTransfer, err)
	}
	for _, key := range []string{"sessions", "highScores", "settings"} {
		v, ok := raw[key]
		if !ok || bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			return State{}, fmt.Errorf("%w: missing %q", ErrInvalidTransfer, key)
		}
	}

	st := NewState()
	if err := json.Unmarshal(raw["sessions"], &st.Sessions); err != nil {
		return State{}, fmt.Errorf("%w: sessions: %v", ErrInvalidTransfer, err)
	}
	if err := json.Unmarshal(raw["highScores"], &st.HighScores); err != nil {
		return State{}, fmt.Errorf("%w: highScores: %v", ErrInvalidTransfer, err)
	}
	var settings struct {
		Volume *float64    `json:"volume"`
		Theme  *core.Theme `json:"theme"`
	}
	if err := json.Unmarshal(raw["settings"], &settings); err != nil {
		return State{}, fmt.Errorf("%w: settings: %v", ErrInvalidTransfer, err)
	}
	if settings.Volume == nil || settings.Theme == nil {
		return State{}, fmt.Errorf("%w: settings need volume and theme", ErrInvalidTransfer)
	}
	st.Settings = Settings{Volume: *settings.Volume, Theme: *settings.Theme}
	if err := st.Settings.validate(); err != nil {
		return State{}, fmt.Errorf("%w: settings: %v", ErrInvalidTransfer, err)
	}

	// A JSON array of nulls decodes to zero sessions; reject those.
	seen := make(map[string]struct{}, len(st.Sessions))
	for i, s := range st.Sessions {
		if s.ID == "" || s.GameID == "" {
			return State{}, fmt.Errorf("%w: session %d lacks id or gameId", ErrInvalidTransfer, i)
		}
		if _, dup := seen[s.ID]; dup {
			return State{}, fmt.Errorf("%w: duplicate session id %q", ErrInvalidTransfer, s.ID)
		}
		seen[s.ID] = struct{}{}
	}
	if st.Sessions == nil {
		st.Sessions = []Session{}
	}
	if st.HighScores == nil {
		st.HighScores = map[string]int{}
	}
	return st, nil
}
