// Package storage provides the SQLite session journal: one row per played
// session and one row per swap gesture, enough to replay a session exactly.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// DefaultPath is where the CLI keeps the journal.
const DefaultPath = "~/.candy/journal.db"

var (
	// ErrSessionNotFound is returned when no session matches an ID.
	ErrSessionNotFound = errors.New("storage: session not found")
	// ErrAmbiguousID is returned when an ID prefix matches several sessions.
	ErrAmbiguousID = errors.New("storage: ambiguous session id")
)

// Store manages the SQLite database connection for the journal.
type Store struct {
	db *sql.DB
}

// SessionRecord is one journaled game session.
type SessionRecord struct {
	ID         string
	GameID     string
	Seed       int64
	StartLevel int
	Config     string // Effective configuration as YAML
	Ticks      uint64 // Board ticks run when the session ended
	Score      int
	Finished   bool
	CreatedAt  time.Time
	EndedAt    time.Time
}

// SwapRecord is one swap gesture within a session.
type SwapRecord struct {
	SessionID string
	Seq       int    // Order within the session, from 0
	Tick      uint64 // Board tick the gesture was applied at
	From      int
	To        int
	Committed bool
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			game_id TEXT NOT NULL,
			seed INTEGER NOT NULL,
			start_level INTEGER NOT NULL DEFAULT 0,
			config TEXT NOT NULL,
			ticks INTEGER NOT NULL DEFAULT 0,
			score INTEGER NOT NULL DEFAULT 0,
			finished INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			ended_at DATETIME
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_created ON sessions(created_at DESC);

		CREATE TABLE IF NOT EXISTS swaps (
			session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			tick INTEGER NOT NULL,
			pos_from INTEGER NOT NULL,
			pos_to INTEGER NOT NULL,
			committed INTEGER NOT NULL,
			PRIMARY KEY (session_id, seq)
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

// BeginSession journals the start of a session and returns its new ID.
func (s *Store) BeginSession(gameID string, seed int64, startLevel int, configYAML string) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(
		"INSERT INTO sessions (id, game_id, seed, start_level, config) VALUES (?, ?, ?, ?, ?)",
		id, gameID, seed, startLevel, configYAML,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot begin session: %w", err)
	}
	return id, nil
}

// RecordSwap appends a swap gesture to a session. Seq is assigned here.
func (s *Store) RecordSwap(sessionID string, tick uint64, from, to int, committed bool) error {
	_, err := s.db.Exec(
		`INSERT INTO swaps (session_id, seq, tick, pos_from, pos_to, committed)
		 SELECT ?, COALESCE(MAX(seq) + 1, 0), ?, ?, ?, ? FROM swaps WHERE session_id = ?`,
		sessionID, int64(tick), from, to, committed, sessionID,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot record swap: %w", err)
	}
	return nil
}

// FinishSession stores the final tick count and score.
func (s *Store) FinishSession(sessionID string, ticks uint64, score int) error {
	res, err := s.db.Exec(
		`UPDATE sessions SET ticks = ?, score = ?, finished = 1, ended_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		int64(ticks), score, sessionID,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot finish session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot finish session: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	return nil
}

const sessionColumns = `id, game_id, seed, start_level, config, ticks, score, finished, created_at, ended_at`

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (SessionRecord, error) {
	var rec SessionRecord
	var ticks int64
	var createdAt, endedAt any
	err := row.Scan(&rec.ID, &rec.GameID, &rec.Seed, &rec.StartLevel, &rec.Config,
		&ticks, &rec.Score, &rec.Finished, &createdAt, &endedAt)
	if err != nil {
		return rec, err
	}
	rec.Ticks = uint64(ticks)
	rec.CreatedAt = parseTime(createdAt)
	rec.EndedAt = parseTime(endedAt)
	return rec, nil
}

// Session returns the session with the given ID. A unique prefix of the ID
// is accepted, so short IDs from the history listing work.
func (s *Store) Session(id string) (*SessionRecord, error) {
	if id == "" {
		return nil, ErrSessionNotFound
	}
	rows, err := s.db.Query(
		`SELECT `+sessionColumns+` FROM sessions WHERE substr(id, 1, ?) = ? LIMIT 2`,
		len(id), id,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query session: %w", err)
	}
	defer rows.Close()

	var found []SessionRecord
	for rows.Next() {
		rec, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		found = append(found, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	switch len(found) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	case 1:
		return &found[0], nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrAmbiguousID, id)
	}
}

// Swaps returns a session's swap gestures in the order they were played.
func (s *Store) Swaps(sessionID string) ([]SwapRecord, error) {
	rows, err := s.db.Query(
		`SELECT session_id, seq, tick, pos_from, pos_to, committed
		 FROM swaps
		 WHERE session_id = ?
		 ORDER BY seq`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query swaps: %w", err)
	}
	defer rows.Close()

	var swaps []SwapRecord
	for rows.Next() {
		var sw SwapRecord
		var tick int64
		if err := rows.Scan(&sw.SessionID, &sw.Seq, &tick, &sw.From, &sw.To, &sw.Committed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		sw.Tick = uint64(tick)
		swaps = append(swaps, sw)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return swaps, nil
}

// RecentSessions retrieves the most recent sessions, newest first.
// An empty gameID matches every game.
func (s *Store) RecentSessions(gameID string, limit int) ([]SessionRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+sessionColumns+`
		 FROM sessions
		 WHERE ? = '' OR game_id = ?
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		gameID, gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []SessionRecord
	for rows.Next() {
		rec, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		sessions = append(sessions, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return sessions, nil
}

// DeleteSession removes a session and its swaps.
func (s *Store) DeleteSession(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.Exec("DELETE FROM swaps WHERE session_id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete swaps: %w", err)
	}
	res, err := tx.Exec("DELETE FROM sessions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete session: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit: %w", err)
	}
	return nil
}

// parseTime converts a DATETIME column to time.Time. The driver returns
// either a time.Time or the raw string; NULL becomes the zero time.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
