package store

import (
	"cmp"
	"slices"
)

// GameStats aggregates the history of one game.
type GameStats struct {
	GameID       string  `json:"gameId"`
	Plays        int     `json:"plays"`
	Wins         int     `json:"wins"`
	Best         int     `json:"best"`
	TotalTimeSec float64 `json:"totalTimeSec"`
	LastPlayed   int64   `json:"lastPlayed,omitempty"` // Unix milliseconds
}

// TotalMinutes returns the play time rounded to whole minutes.
func (g GameStats) TotalMinutes() int {
	return int(g.TotalTimeSec/60 + 0.5)
}

// Stats aggregates the history per game, most played first. Every id in
// ids gets an entry even if it was never played; when ids is empty every
// game present in the state is reported.
func (s *Store) Stats(ids []string) []GameStats {
	return s.Snapshot().Stats(ids)
}

// Stats is the aggregation behind Store.Stats.
func (st State) Stats(ids []string) []GameStats {
	byID := make(map[string]*GameStats)
	var order []string
	add := func(id string) *GameStats {
		if g, ok := byID[id]; ok {
			return g
		}
		g := &GameStats{GameID: id, Best: st.HighScores[id]}
		byID[id] = g
		order = append(order, id)
		return g
	}

	for _, id := range ids {
		add(id)
	}
	for _, sess := range st.Sessions {
		g, ok := byID[sess.GameID]
		if !ok {
			if len(ids) > 0 {
				continue
			}
			g = add(sess.GameID)
		}
		g.Plays++
		if sess.Metrics.Won {
			g.Wins++
		}
		g.TotalTimeSec += sess.Metrics.TimeSpentSec
		g.LastPlayed = max(g.LastPlayed, sess.Timestamp)
	}
	if len(ids) == 0 {
		for id := range st.HighScores {
			add(id)
		}
		slices.Sort(order)
	}

	out := make([]GameStats, 0, len(order))
	for _, id := range order {
		out = append(out, *byID[id])
	}
	slices.SortStableFunc(out, func(a, b GameStats) int {
		return cmp.Compare(b.Plays, a.Plays)
	})
	return out
}
