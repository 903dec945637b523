// Package coretest provides test doubles for the core reporting contract.
package coretest

import (
	"testing"

	"github.com/vovakirdan/arcade-hub/internal/core"
)

// Reporter records every call and fails the test on a second GameOver.
type Reporter struct {
	t        testing.TB
	Scores   []int
	Outcomes []core.Outcome
}

// NewReporter creates a recording reporter bound to t.
func NewReporter(t testing.TB) *Reporter {
	return &Reporter{t: t}
}

func (r *Reporter) ScoreUpdate(score int) {
	r.Scores = append(r.Scores, score)
}

func (r *Reporter) GameOver(o core.Outcome) {
	r.Outcomes = append(r.Outcomes, o)
	if len(r.Outcomes) > 1 {
		r.t.Helper()
		r.t.Errorf("GameOver called %d times, want at most 1", len(r.Outcomes))
	}
}

// LastScore returns the most recent ScoreUpdate value, or -1 if none.
func (r *Reporter) LastScore() int {
	if len(r.Scores) == 0 {
		return -1
	}
	return r.Scores[len(r.Scores)-1]
}

// Finished reports whether GameOver was called.
func (r *Reporter) Finished() bool {
	return len(r.Outcomes) > 0
}

// AssertFinished fails the test unless GameOver was called exactly once,
// and returns the outcome.
func (r *Reporter) AssertFinished() core.Outcome {
	r.t.Helper()
	if len(r.Outcomes) != 1 {
		r.t.Fatalf("GameOver called %d times, want 1", len(r.Outcomes))
	}
	return r.Outcomes[0]
}

// Reset forgets recorded calls, for tests that restart a game.
func (r *Reporter) Reset() {
	r.Scores = nil
	r.Outcomes = nil
}
