// Package storage keeps the round history of a play session in SQLite.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
// The database lives in memory and disappears when the session closes.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Session manages the in-memory database for one run of the program.
type Session struct {
	db  *sql.DB
	now func() time.Time
}

// Round is one finished round.
type Round struct {
	ID        string
	Seed      int64
	Score     int
	Level     int
	LevelName string
	Orbs      int
	Passed    int
	Outcome   string
	Duration  time.Duration
	CreatedAt time.Time
}

// Stats contains aggregated statistics for the session.
type Stats struct {
	Rounds     int
	BestScore  int
	AvgScore   float64
	TotalOrbs  int
	Victories  int
	LongestRun time.Duration
}

// OpenSession creates an empty in-memory session database.
func OpenSession() (*Session, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	s := &Session{db: db, now: time.Now}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return s, nil
}

// migrate creates the database schema.
func (s *Session) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS rounds (
			id TEXT PRIMARY KEY,
			seed INTEGER NOT NULL,
			score INTEGER NOT NULL,
			level INTEGER NOT NULL,
			level_name TEXT NOT NULL,
			orbs INTEGER NOT NULL DEFAULT 0,
			passed INTEGER NOT NULL DEFAULT 0,
			outcome TEXT NOT NULL,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at_ms INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_rounds_top ON rounds(score DESC);
		CREATE INDEX IF NOT EXISTS idx_rounds_recent ON rounds(created_at_ms DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database. The history is lost.
func (s *Session) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRound records a finished round and returns its ID.
// An empty ID is filled with a new UUID and a zero CreatedAt with the current time.
func (s *Session) SaveRound(r Round) (string, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = s.now()
	}

	_, err := s.db.Exec(
		`INSERT INTO rounds
		 (id, seed, score, level, level_name, orbs, passed, outcome, duration_ms, created_at_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Seed, r.Score, r.Level, r.LevelName, r.Orbs, r.Passed, r.Outcome,
		r.Duration.Milliseconds(), r.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save round: %w", err)
	}
	return r.ID, nil
}

const roundColumns = `id, seed, score, level, level_name, orbs, passed, outcome, duration_ms, created_at_ms`

// TopRounds retrieves the best N rounds, highest score first.
// Ties go to the earlier round.
func (s *Session) TopRounds(limit int) ([]Round, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.query(
		`SELECT `+roundColumns+` FROM rounds
		 ORDER BY score DESC, created_at_ms ASC, rowid ASC
		 LIMIT ?`,
		limit,
	)
}

// Recent retrieves the last N rounds, newest first.
func (s *Session) Recent(limit int) ([]Round, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.query(
		`SELECT `+roundColumns+` FROM rounds
		 ORDER BY created_at_ms DESC, rowid DESC
		 LIMIT ?`,
		limit,
	)
}

// Best returns the highest scoring round. ok is false for an empty session.
func (s *Session) Best() (r Round, ok bool, err error) {
	rounds, err := s.TopRounds(1)
	if err != nil {
		return Round{}, false, err
	}
	if len(rounds) == 0 {
		return Round{}, false, nil
	}
	return rounds[0], true, nil
}

// Count returns the number of recorded rounds.
func (s *Session) Count() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM rounds").Scan(&n); err != nil {
		return 0, fmt.Errorf("storage: cannot count rounds: %w", err)
	}
	return n, nil
}

// VictoryOutcome is the outcome recorded for a completed campaign.
const VictoryOutcome = "victory"

// Stats aggregates the session history.
func (s *Session) Stats() (Stats, error) {
	var st Stats
	var best, orbs, wins, longest sql.NullInt64
	var avg sql.NullFloat64
	err := s.db.QueryRow(
		`SELECT COUNT(*), MAX(score), AVG(score), SUM(orbs),
		        SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END), MAX(duration_ms)
		 FROM rounds`,
		VictoryOutcome,
	).Scan(&st.Rounds, &best, &avg, &orbs, &wins, &longest)
	if err != nil {
		return Stats{}, fmt.Errorf("storage: cannot query stats: %w", err)
	}

	st.BestScore = int(best.Int64)
	st.AvgScore = avg.Float64
	st.TotalOrbs = int(orbs.Int64)
	st.Victories = int(wins.Int64)
	st.LongestRun = time.Duration(longest.Int64) * time.Millisecond
	return st, nil
}

// Clear deletes the whole history.
func (s *Session) Clear() error {
	if _, err := s.db.Exec("DELETE FROM rounds"); err != nil {
		return fmt.Errorf("storage: cannot clear rounds: %w", err)
	}
	return nil
}

func (s *Session) query(q string, args ...any) ([]Round, error) {
	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query rounds: %w", err)
	}
	defer rows.Close()

	var rounds []Round
	for rows.Next() {
		var r Round
		var durationMS, createdMS int64
		if err := rows.Scan(&r.ID, &r.Seed, &r.Score, &r.Level, &r.LevelName,
			&r.Orbs, &r.Passed, &r.Outcome, &durationMS, &createdMS); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Duration = time.Duration(durationMS) * time.Millisecond
		r.CreatedAt = time.UnixMilli(createdMS)
		rounds = append(rounds, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return rounds, nil
}
