// Package sqlite archives completed session results in a local SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/PabloGalante/questionnaire-agent/internal/domain"
)

// ResultStore is a result sink that can also list what it stored.
type ResultStore struct {
	db *sql.DB
}

var (
	_ domain.ResultSink    = (*ResultStore)(nil)
	_ domain.ResultArchive = (*ResultStore)(nil)
)

// NewResultStore opens (and creates if needed) the database at dbPath.
func NewResultStore(dbPath string) (*ResultStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	dsn := dbPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &ResultStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return s, nil
}

func (s *ResultStore) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS session_results (
		session_id TEXT PRIMARY KEY,
		completed_at INTEGER NOT NULL,
		questions_json TEXT NOT NULL,
		answers_json TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_session_results_completed ON session_results(completed_at);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

func (s *ResultStore) Close() error {
	return s.db.Close()
}

func (s *ResultStore) Name() string { return "sqlite" }

// SaveResult upserts by session id.
func (s *ResultStore) SaveResult(ctx context.Context, result *domain.SessionResult) error {
	questions, err := json.Marshal(result.Questions)
	if err != nil {
		return fmt.Errorf("encode questions: %w", err)
	}
	answers, err := json.Marshal(result.Answers)
	if err != nil {
		return fmt.Errorf("encode answers: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO session_results (session_id, completed_at, questions_json, answers_json)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(session_id) DO UPDATE SET
			completed_at = excluded.completed_at,
			questions_json = excluded.questions_json,
			answers_json = excluded.answers_json`,
		string(result.SessionID), result.CompletedAt.UnixNano(), string(questions), string(answers),
	)
	if err != nil {
		return fmt.Errorf("save result %s: %w", result.SessionID, err)
	}
	return nil
}

// ListResults returns the newest results first; limit <= 0 returns all.
func (s *ResultStore) ListResults(ctx context.Context, limit int) ([]*domain.SessionResult, error) {
	query := `SELECT session_id, completed_at, questions_json, answers_json
		FROM session_results ORDER BY completed_at DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	defer rows.Close()

	var out []*domain.SessionResult
	for rows.Next() {
		var (
			id                 string
			completedAt        int64
			questions, answers string
		)
		if err := rows.Scan(&id, &completedAt, &questions, &answers); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		r := &domain.SessionResult{
			SessionID:   domain.SessionID(id),
			CompletedAt: time.Unix(0, completedAt).UTC(),
		}
		if err := json.Unmarshal([]byte(questions), &r.Questions); err != nil {
			return nil, fmt.Errorf("decode questions for %s: %w", id, err)
		}
		if err := json.Unmarshal([]byte(answers), &r.Answers); err != nil {
			return nil, fmt.Errorf("decode answers for %s: %w", id, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
