// Package session turns a game's reports into persisted play sessions.
// A Recorder measures how long the player spent in a session and forwards
// the finished outcome to a Sink exactly once.
package session

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcade-hub/internal/core"
	"github.com/vovakirdan/arcade-hub/internal/store"
)

// Sink receives finished sessions. *store.Store satisfies it.
type Sink interface {
	AddSession(gameID string, outcome core.Outcome) (store.Session, error)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(gameID string, outcome core.Outcome) (store.Session, error)

func (f SinkFunc) AddSession(gameID string, outcome core.Outcome) (store.Session, error) {
	return f(gameID, outcome)
}

// Recorder implements core.Reporter for one game id.
type Recorder struct {
	gameID string
	sink   Sink
	logger *log.Logger
	now    func() time.Time

	mu       sync.Mutex
	started  time.Time
	active   bool
	reported bool
	score    int
	last     *core.Outcome
	saved    store.Session
	err      error
}

// Option configures a Recorder.
type Option func(*Recorder)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(r *Recorder) { r.now = now }
}

// WithLogger sets the logger used for contract violations and sink errors.
func WithLogger(l *log.Logger) Option {
	return func(r *Recorder) { r.logger = l }
}

// NewRecorder creates a recorder that forwards gameID sessions to sink.
// sink may be nil, in which case outcomes are only kept locally.
func NewRecorder(gameID string, sink Sink, opts ...Option) *Recorder {
	r := &Recorder{
		gameID: gameID,
		sink:   sink,
		logger: log.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Begin starts a new play session: it records the start time and arms the
// once-guard. Call it right before the game's Reset.
func (r *Recorder) Begin() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.started = r.now()
	r.active = true
	r.reported = false
	r.score = 0
	r.last = nil
	r.saved = store.Session{}
	r.err = nil
}

// ScoreUpdate stores the live score. It is never persisted.
func (r *Recorder) ScoreUpdate(score int) {
	r.mu.Lock()
	r.score = score
	r.mu.Unlock()
}

// GameOver stamps the measured duration on the outcome and forwards it.
// Calls before Begin and repeated calls within a session are dropped.
func (r *Recorder) GameOver(outcome core.Outcome) {
	r.mu.Lock()
	if !r.active {
		r.mu.Unlock()
		r.logger.Warn("game over outside a session", "game", r.gameID)
		return
	}
	if r.reported {
		r.mu.Unlock()
		r.logger.Warn("duplicate game over ignored", "game", r.gameID, "score", outcome.Score)
		return
	}
	r.reported = true

	out := outcome.Clone()
	out.TimeSpentSec = max(0, r.now().Sub(r.started).Seconds())
	r.score = out.Score
	r.last = &out
	sink := r.sink
	r.mu.Unlock()

	if sink == nil {
		return
	}
	saved, err := sink.AddSession(r.gameID, out)
	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		r.logger.Error("could not save session", "game", r.gameID, "error", err)
		r.err = err
		return
	}
	r.saved = saved
	r.logger.Debug("session saved", "game", r.gameID, "id", saved.ID, "score", out.Score, "won", out.Won)
}

// GameID returns the id sessions are recorded under.
func (r *Recorder) GameID() string { return r.gameID }

// Score returns the latest live score.
func (r *Recorder) Score() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.score
}

// Reported reports whether the current session has already produced its outcome.
func (r *Recorder) Reported() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.reported
}

// Last returns the outcome recorded for the current session, if any.
func (r *Recorder) Last() (core.Outcome, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.last == nil {
		return core.Outcome{}, false
	}
	return r.last.Clone(), true
}

// Saved returns the session the sink stored for the current session.
// The id is empty until the sink accepted an outcome.
func (r *Recorder) Saved() store.Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saved
}

// Err returns the sink error of the current session, if any.
func (r *Recorder) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

var (
	_ core.Reporter = (*Recorder)(nil)
	_ Sink          = (*store.Store)(nil)
)
