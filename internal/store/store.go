package store

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/arcade-hub/internal/core"
)

// ErrInvalidVolume is returned by SetVolume for NaN input.
var ErrInvalidVolume = errors.New("store: volume is not a number")

// Persister writes transitions to durable storage.
// storage.Store is the SQLite implementation.
type Persister interface {
	// Load returns the saved state. Settings are zero when none were saved.
	Load() (State, error)
	// SaveSession stores s and the resulting high score of its game atomically.
	SaveSession(s Session, highScore int) error
	SaveSettings(Settings) error
	// Replace swaps the whole saved state atomically.
	Replace(State) error
}

// Store is the single writer of arcade state. It is safe for concurrent use.
type Store struct {
	mu        sync.Mutex
	state     State
	initial   Settings
	persister Persister
	now       func() time.Time
	newID     func() string
	logger    *log.Logger

	subsMu sync.Mutex
	subs   map[*Subscription]struct{}
}

// Option configures a Store.
type Option func(*Store)

// WithPersister makes every transition durable through p. New loads the
// initial state from it.
func WithPersister(p Persister) Option {
	return func(s *Store) { s.persister = p }
}

// WithInitialSettings sets the settings of a store that has none saved yet.
// Invalid values fall back to DefaultSettings.
func WithInitialSettings(st Settings) Option {
	return func(s *Store) {
		if st.validate() == nil {
			s.initial = st
		}
	}
}

// WithClock replaces time.Now for session timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator replaces the UUID session id generator.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// New creates a store. Without a persister it starts empty and lives in memory.
func New(opts ...Option) (*Store, error) {
	s := &Store{
		state:   NewState(),
		initial: DefaultSettings(),
		now:     time.Now,
		newID:   uuid.NewString,
		logger:  log.Default(),
		subs:    make(map[*Subscription]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.state.Settings = s.initial
	if s.persister != nil {
		st, err := s.persister.Load()
		if err != nil {
			return nil, fmt.Errorf("store: load: %w", err)
		}
		s.state = st.Clone()
		if s.state.Settings.validate() != nil {
			s.state.Settings = s.initial
		}
	}
	return s, nil
}

// commit publishes next as the current state. Callers hold s.mu.
func (s *Store) commit(next State) {
	s.state = next
	s.broadcast(next)
}

// AddSession records a finished session: it prepends the history entry and
// raises the game's high score in one transition.
func (s *Store) AddSession(gameID string, outcome core.Outcome) (Session, error) {
	if gameID == "" {
		return Session{}, errors.New("store: empty game id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := Session{
		ID:        s.newID(),
		GameID:    gameID,
		Timestamp: s.now().UnixMilli(),
		Metrics:   outcome.Clone(),
	}
	next := s.state.withSession(sess)
	if s.persister != nil {
		if err := s.persister.SaveSession(sess, next.HighScores[gameID]); err != nil {
			return Session{}, fmt.Errorf("store: save session: %w", err)
		}
	}
	s.commit(next)
	s.logger.Debug("session added", "game", gameID, "score", outcome.Score, "best", next.HighScores[gameID])
	return sess, nil
}

// SetVolume stores v clamped to [0,1].
func (s *Store) SetVolume(v float64) error {
	if math.IsNaN(v) {
		return ErrInvalidVolume
	}
	return s.updateSettings(func(st *Settings) {
		st.Volume = core.ClampF(v, 0, 1)
	})
}

// ToggleTheme flips between light and dark and returns the new theme.
func (s *Store) ToggleTheme() (core.Theme, error) {
	var theme core.Theme
	err := s.updateSettings(func(st *Settings) {
		st.Theme = st.Theme.Toggle()
		theme = st.Theme
	})
	return theme, err
}

func (s *Store) updateSettings(apply func(*Settings)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.Clone()
	apply(&next.Settings)
	if s.persister != nil {
		if err := s.persister.SaveSettings(next.Settings); err != nil {
			return fmt.Errorf("store: save settings: %w", err)
		}
	}
	s.commit(next)
	return nil
}

// Export returns the current state as a transfer document.
func (s *Store) Export() ([]byte, error) {
	return s.Snapshot().Encode()
}

// Import replaces the whole state with the document in data. On any error
// the current state is kept.
func (s *Store) Import(data []byte) error {
	st, err := DecodeTransfer(data)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.persister != nil {
		if err := s.persister.Replace(st); err != nil {
			return fmt.Errorf("store: replace: %w", err)
		}
	}
	s.commit(st)
	s.logger.Info("state imported", "sessions", len(st.Sessions), "games", len(st.HighScores))
	return nil
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// HighScore returns the best score for gameID and whether one exists.
func (s *Store) HighScore(gameID string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.state.HighScores[gameID]
	return v, ok
}

// Sessions returns up to limit sessions, newest first. An empty gameID
// matches every game; limit <= 0 means no limit.
func (s *Store) Sessions(gameID string, limit int) []Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Session
	for _, sess := range s.state.Sessions {
		if gameID != "" && sess.GameID != gameID {
			continue
		}
		sess.Metrics = sess.Metrics.Clone()
		out = append(out, sess)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// Settings returns the current settings.
func (s *Store) Settings() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Settings
}

// Subscribe registers for snapshots of every later transition. buffer is
// the number of undelivered snapshots kept; older ones are dropped.
func (s *Store) Subscribe(buffer int) *Subscription {
	sub := newSubscription(s, buffer)
	s.subsMu.Lock()
	s.subs[sub] = struct{}{}
	s.subsMu.Unlock()
	return sub
}

// Subscribers returns the number of open subscriptions.
func (s *Store) Subscribers() int {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	return len(s.subs)
}

func (s *Store) unsubscribe(sub *Subscription) {
	s.subsMu.Lock()
	delete(s.subs, sub)
	s.subsMu.Unlock()
}

func (s *Store) broadcast(st State) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	for sub := range s.subs {
		sub.send(st.Clone())
	}
}

// Close ends every subscription.
func (s *Store) Close() {
	s.subsMu.Lock()
	subs := make([]*Subscription, 0, len(s.subs))
	for sub := range s.subs {
		subs = append(subs, sub)
	}
	s.subsMu.Unlock()

	for _, sub := range subs {
		sub.Close()
	}
}
