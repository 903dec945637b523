// Package storage provides SQLite-based persistence for the arcade store.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/arcade-hub/internal/core"
	"github.com/vovakirdan/arcade-hub/internal/store"
)

// Store manages the SQLite database connection. It implements store.Persister.
type Store struct {
	db *sql.DB
}

// ScoreEntry is one row of a per-game leaderboard.
type ScoreEntry struct {
	SessionID string
	GameID    string
	Score     int
	Won       bool
	Timestamp int64 // Unix milliseconds
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(p string) (string, error) {
	if p == "" || p[0] != '~' {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(p[1:], "/")), nil
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	dbPath, err := ExpandPath(dbPath)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// One connection keeps transactions serialized on the file.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return s, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sessions (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			game_id TEXT NOT NULL,
			timestamp INTEGER NOT NULL,
			score INTEGER NOT NULL,
			won INTEGER NOT NULL DEFAULT 0,
			time_spent_sec REAL NOT NULL DEFAULT 0,
			custom_data TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_game_id ON sessions(game_id);
		CREATE INDEX IF NOT EXISTS idx_sessions_top ON sessions(game_id, score DESC);

		CREATE TABLE IF NOT EXISTS high_scores (
			game_id TEXT PRIMARY KEY,
			score INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS settings (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			volume REAL NOT NULL,
			theme TEXT NOT NULL
		);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Load reads the whole state. Settings are zero until SaveSettings or
// Replace wrote them.
func (s *Store) Load() (store.State, error) {
	st := store.NewState()

	rows, err := s.db.Query(
		`SELECT id, game_id, timestamp, score, won, time_spent_sec, custom_data
		 FROM sessions
		 ORDER BY seq DESC`,
	)
	if err != nil {
		return st, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			sess   store.Session
			custom sql.NullString
		)
		if err := rows.Scan(
			&sess.ID,
			&sess.GameID,
			&sess.Timestamp,
			&sess.Metrics.Score,
			&sess.Metrics.Won,
			&sess.Metrics.TimeSpentSec,
			&custom,
		); err != nil {
			return st, fmt.Errorf("storage: cannot scan session: %w", err)
		}
		if custom.Valid && custom.String != "" {
			if err := json.Unmarshal([]byte(custom.String), &sess.Metrics.CustomData); err != nil {
				return st, fmt.Errorf("storage: session %s custom data: %w", sess.ID, err)
			}
		}
		st.Sessions = append(st.Sessions, sess)
	}
	if err := rows.Err(); err != nil {
		return st, fmt.Errorf("storage: row iteration error: %w", err)
	}

	hs, err := s.db.Query("SELECT game_id, score FROM high_scores")
	if err != nil {
		return st, fmt.Errorf("storage: cannot query high scores: %w", err)
	}
	defer hs.Close()
	for hs.Next() {
		var (
			id    string
			score int
		)
		if err := hs.Scan(&id, &score); err != nil {
			return st, fmt.Errorf("storage: cannot scan high score: %w", err)
		}
		st.HighScores[id] = score
	}
	if err := hs.Err(); err != nil {
		return st, fmt.Errorf("storage: row iteration error: %w", err)
	}

	var theme string
	err = s.db.QueryRow("SELECT volume, theme FROM settings WHERE id = 1").
		Scan(&st.Settings.Volume, &theme)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		st.Settings = store.Settings{}
	case err != nil:
		return st, fmt.Errorf("storage: cannot query settings: %w", err)
	default:
		st.Settings.Theme = core.Theme(theme)
	}
	return st, nil
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func insertSession(db execer, sess store.Session) error {
	var custom sql.NullString
	if len(sess.Metrics.CustomData) > 0 {
		data, err := json.Marshal(sess.Metrics.CustomData)
		if err != nil {
			return fmt.Errorf("storage: encode custom data: %w", err)
		}
		custom = sql.NullString{String: string(data), Valid: true}
	}
	_, err := db.Exec(
		`INSERT INTO sessions (id, game_id, timestamp, score, won, time_spent_sec, custom_data)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		sess.ID,
		sess.GameID,
		sess.Timestamp,
		sess.Metrics.Score,
		sess.Metrics.Won,
		sess.Metrics.TimeSpentSec,
		custom,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save session: %w", err)
	}
	return nil
}

func upsertHighScore(db execer, gameID string, score int) error {
	_, err := db.Exec(
		`INSERT INTO high_scores (game_id, score) VALUES (?, ?)
		 ON CONFLICT(game_id) DO UPDATE SET score = excluded.score`,
		gameID, score,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save high score: %w", err)
	}
	return nil
}

func upsertSettings(db execer, st store.Settings) error {
	_, err := db.Exec(
		`INSERT INTO settings (id, volume, theme) VALUES (1, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET volume = excluded.volume, theme = excluded.theme`,
		st.Volume, string(st.Theme),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save settings: %w", err)
	}
	return nil
}

// inTx runs fn in a transaction, rolling back on error.
func (s *Store) inTx(fn func(tx *sql.Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback() //nolint:errcheck // the original error matters more
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit: %w", err)
	}
	return nil
}

// SaveSession stores a session and its game's high score in one transaction.
func (s *Store) SaveSession(sess store.Session, highScore int) error {
	return s.inTx(func(tx *sql.Tx) error {
		if err := insertSession(tx, sess); err != nil {
			return err
		}
		return upsertHighScore(tx, sess.GameID, highScore)
	})
}

// SaveSettings stores the settings row.
func (s *Store) SaveSettings(st store.Settings) error {
	return upsertSettings(s.db, st)
}

// Replace swaps every table's content for st in one transaction.
func (s *Store) Replace(st store.State) error {
	return s.inTx(func(tx *sql.Tx) error {
		for _, table := range []string{"sessions", "high_scores", "settings"} {
			if _, err := tx.Exec("DELETE FROM " + table); err != nil {
				return fmt.Errorf("storage: cannot clear %s: %w", table, err)
			}
		}
		// Oldest first so seq order matches history order.
		for i := len(st.Sessions) - 1; i >= 0; i-- {
			if err := insertSession(tx, st.Sessions[i]); err != nil {
				return err
			}
		}
		for id, score := range st.HighScores {
			if err := upsertHighScore(tx, id, score); err != nil {
				return err
			}
		}
		return upsertSettings(tx, st.Settings)
	})
}

// TopScores retrieves the top N sessions for the given game.
// Results are ordered by score descending, newest first on ties.
func (s *Store) TopScores(gameID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, score, won, timestamp
		 FROM sessions
		 WHERE game_id = ?
		 ORDER BY score DESC, seq DESC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		if err := rows.Scan(&e.SessionID, &e.GameID, &e.Score, &e.Won, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// HighScore returns the stored best score for the given game.
// Returns 0 if the game was never played.
func (s *Store) HighScore(gameID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT score FROM high_scores WHERE game_id = ?",
		gameID,
	).Scan(&score)

	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	return int(score.Int64), nil
}

var _ store.Persister = (*Store)(nil)
