package store

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

//go:embed schema.sql
var schema string

type sqliteStore struct {
	db     *sql.DB
	closed atomic.Bool
}

// NewSQLiteStore opens (and creates if missing) a SQLite database at path
// and applies the schema.
func NewSQLiteStore(ctx context.Context, path string) (Store, error) {
	db, err := openDB(path)
	if err != nil {
		return nil, err
	}
	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &sqliteStore{db: db}, nil
}

func openDB(path string) (*sql.DB, error) {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	// One writer; the game saves at most once per game over.
	db.SetMaxOpenConns(1)
	return db, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, schema); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("apply schema: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	log.Debug().Str("store", "sqlite").Msg("schema applied")
	return nil
}

func (s *sqliteStore) Save(ctx context.Context, rec GameRecord) error {
	if s.closed.Load() {
		return ErrClosed
	}
	_, err := s.db.ExecContext(ctx, `
        INSERT OR REPLACE INTO games
            (id, speed, interval_ms, score, length, ticks, cause, started_at, ended_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Speed, rec.IntervalMS, rec.Score, rec.Length, rec.Ticks, rec.Cause,
		rec.StartTime.UTC(), rec.EndTime.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert game %s: %w", rec.ID, err)
	}
	return nil
}

func (s *sqliteStore) Best(ctx context.Context) (int, error) {
	var best sql.NullInt64
	if err := s.db.QueryRowContext(ctx, `SELECT MAX(score) FROM games`).Scan(&best); err != nil {
		return 0, fmt.Errorf("query best: %w", err)
	}
	return int(best.Int64), nil
}

func (s *sqliteStore) Recent(ctx context.Context, n int) ([]GameRecord, error) {
	if n < 0 {
		n = -1
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, speed, interval_ms, score, length, ticks, cause, started_at, ended_at
        FROM games
        ORDER BY ended_at DESC
        LIMIT ?`, n,
	)
	if err != nil {
		return nil, fmt.Errorf("query recent: %w", err)
	}
	defer rows.Close()

	var out []GameRecord
	for rows.Next() {
		var r GameRecord
		if err := rows.Scan(&r.ID, &r.Speed, &r.IntervalMS, &r.Score, &r.Length, &r.Ticks, &r.Cause, &r.StartTime, &r.EndTime); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *sqliteStore) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	return s.db.Close()
}
