// Package store handles SQLite persistence of reading history.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/tuider/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for reading sessions.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS reading_sessions (
			id INTEGER PRIMARY KEY,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			source TEXT NOT NULL,
			total_words INTEGER NOT NULL,
			words_read INTEGER NOT NULL,
			final_wpm INTEGER NOT NULL,
			finished INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_reading_sessions_ended_at ON reading_sessions(ended_at);`,
		`CREATE INDEX IF NOT EXISTS idx_reading_sessions_source ON reading_sessions(source);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertSession stores a completed reading session.
func (s *Store) InsertSession(ctx context.Context, rs model.ReadingSession) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO reading_sessions (started_at, ended_at, source, total_words, words_read, final_wpm, finished)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rs.StartedAt.UTC().Format(time.RFC3339Nano),
		rs.EndedAt.UTC().Format(time.RFC3339Nano),
		rs.Source,
		rs.TotalWords,
		rs.WordsRead,
		rs.FinalWPM,
		boolToInt(rs.Finished),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListSessions returns sessions in chronological order, filtered by cfg.
// When cfg.Last is positive only the most recent sessions are returned.
func (s *Store) ListSessions(ctx context.Context, cfg model.HistoryConfig) ([]model.ReadingSession, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Source != "" {
		clauses = append(clauses, "source = ?")
		args = append(args, cfg.Source)
	}
	limit := ""
	if cfg.Last > 0 {
		limit = "LIMIT ?"
		args = append(args, cfg.Last)
	}
	query := fmt.Sprintf(`SELECT id, started_at, ended_at, source, total_words, words_read, final_wpm, finished
		FROM (
			SELECT * FROM reading_sessions
			WHERE %s
			ORDER BY ended_at DESC, id DESC
			%s
		)
		ORDER BY ended_at ASC, id ASC`, strings.Join(clauses, " AND "), limit)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var sessions []model.ReadingSession
	for rows.Next() {
		var rs model.ReadingSession
		var startedAt, endedAt string
		var finished int
		if err := rows.Scan(&rs.ID, &startedAt, &endedAt, &rs.Source, &rs.TotalWords, &rs.WordsRead, &rs.FinalWPM, &finished); err != nil {
			return nil, err
		}
		if rs.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
			return nil, err
		}
		if rs.EndedAt, err = time.Parse(time.RFC3339Nano, endedAt); err != nil {
			return nil, err
		}
		rs.Finished = finished != 0
		sessions = append(sessions, rs)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}

// Summary aggregates all sessions, optionally restricted to a source.
func (s *Store) Summary(ctx context.Context, source string) (model.HistorySummary, error) {
	var sum model.HistorySummary
	row := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(finished), 0), COALESCE(SUM(words_read), 0)
		 FROM reading_sessions
		 WHERE (? = '' OR source = ?)`, source, source)
	if err := row.Scan(&sum.Sessions, &sum.Finished, &sum.WordsRead); err != nil {
		return model.HistorySummary{}, err
	}
	sessions, err := s.ListSessions(ctx, model.HistoryConfig{Source: source})
	if err != nil {
		return model.HistorySummary{}, err
	}
	for _, rs := range sessions {
		sum.DurationMs += rs.Duration().Milliseconds()
	}
	return sum, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
