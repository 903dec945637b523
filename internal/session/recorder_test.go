package session

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcade-hub/internal/core"
	"github.com/vovakirdan/arcade-hub/internal/store"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type recordingSink struct {
	calls []core.Outcome
	err   error
}

func (s *recordingSink) AddSession(gameID string, o core.Outcome) (store.Session, error) {
	s.calls = append(s.calls, o)
	if s.err != nil {
		return store.Session{}, s.err
	}
	return store.Session{ID: "id-1", GameID: gameID, Metrics: o}, nil
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func newRecorder(sink Sink) (*Recorder, *fakeClock) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	return NewRecorder("snake", sink, WithClock(clock.Now), WithLogger(quietLogger())), clock
}

func TestGameOverOverwritesTimeSpent(t *testing.T) {
	sink := &recordingSink{}
	r, clock := newRecorder(sink)

	r.Begin()
	clock.Advance(12500 * time.Millisecond)
	r.GameOver(core.Outcome{Score: 40, TimeSpentSec: 999})

	if len(sink.calls) != 1 {
		t.Fatalf("sink called %d times", len(sink.calls))
	}
	if got := sink.calls[0].TimeSpentSec; got != 12.5 {
		t.Errorf("TimeSpentSec = %v, expected 12.5", got)
	}
	if r.Saved().ID != "id-1" || r.Score() != 40 || !r.Reported() {
		t.Errorf("recorder state: saved=%+v score=%d", r.Saved(), r.Score())
	}
}

func TestSecondGameOverIgnored(t *testing.T) {
	sink := &recordingSink{}
	r, _ := newRecorder(sink)

	r.Begin()
	r.GameOver(core.Outcome{Score: 1})
	r.GameOver(core.Outcome{Score: 2})

	if len(sink.calls) != 1 || sink.calls[0].Score != 1 {
		t.Errorf("sink calls = %+v", sink.calls)
	}
	if last, _ := r.Last(); last.Score != 1 {
		t.Errorf("Last() = %+v", last)
	}
}

func TestGameOverBeforeBeginIgnored(t *testing.T) {
	sink := &recordingSink{}
	r, _ := newRecorder(sink)
	r.GameOver(core.Outcome{Score: 5})
	if len(sink.calls) != 0 {
		t.Error("outcome forwarded without a session")
	}
	if _, ok := r.Last(); ok {
		t.Error("Last() should be empty")
	}
}

func TestBeginStartsNewSession(t *testing.T) {
	sink := &recordingSink{}
	r, clock := newRecorder(sink)

	r.Begin()
	clock.Advance(time.Second)
	r.GameOver(core.Outcome{Score: 1})

	r.Begin()
	if r.Reported() || r.Score() != 0 {
		t.Error("Begin should clear the previous session")
	}
	clock.Advance(3 * time.Second)
	r.GameOver(core.Outcome{Score: 2})

	if len(sink.calls) != 2 || sink.calls[1].TimeSpentSec != 3 {
		t.Errorf("sink calls = %+v", sink.calls)
	}
}

func TestScoreUpdateIsNotForwarded(t *testing.T) {
	sink := &recordingSink{}
	r, _ := newRecorder(sink)
	r.Begin()
	r.ScoreUpdate(10)
	r.ScoreUpdate(20)
	if r.Score() != 20 || len(sink.calls) != 0 {
		t.Errorf("score=%d calls=%d", r.Score(), len(sink.calls))
	}
}

func TestSinkErrorIsKept(t *testing.T) {
	sink := &recordingSink{err: errors.New("db locked")}
	r, _ := newRecorder(sink)
	r.Begin()
	r.GameOver(core.Outcome{})
	if r.Err() == nil {
		t.Error("Err() should report the sink failure")
	}
	r.Begin()
	if r.Err() != nil {
		t.Error("Begin should clear the error")
	}
}

func TestOutcomeIsCopied(t *testing.T) {
	sink := &recordingSink{}
	r, _ := newRecorder(sink)
	r.Begin()
	data := map[string]any{"length": 3}
	r.GameOver(core.Outcome{CustomData: data})
	data["length"] = 100
	if sink.calls[0].CustomData["length"] != 3 {
		t.Error("recorder should forward a copy of customData")
	}
}

func TestRecorderWithStore(t *testing.T) {
	st, err := store.New()
	if err != nil {
		t.Fatal(err)
	}
	r := NewRecorder("minesweeper", st, WithLogger(quietLogger()))
	r.Begin()
	r.GameOver(core.Outcome{Score: 150, Won: true})
	r.GameOver(core.Outcome{Score: 999, Won: true})

	if v, ok := st.HighScore("minesweeper"); !ok || v != 150 {
		t.Errorf("high score = %d/%v", v, ok)
	}
	if n := len(st.Sessions("", 0)); n != 1 {
		t.Errorf("%d sessions stored, expected 1", n)
	}
	if r.Saved().ID == "" {
		t.Error("stored session id not kept")
	}
}

func TestNilSinkKeepsOutcome(t *testing.T) {
	r := NewRecorder("snake", nil, WithLogger(quietLogger()))
	r.Begin()
	r.GameOver(core.Outcome{Score: 7})
	if last, ok := r.Last(); !ok || last.Score != 7 {
		t.Errorf("Last() = %+v, %v", last, ok)
	}
}
