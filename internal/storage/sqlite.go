// Package storage keeps the best score in a SQLite file through the
// pure-Go modernc.org/sqlite driver.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/zenvertao/2048-game/internal/game"
)

// bestKey is the single row holding the best score.
const bestKey = "best"

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// BestScore is the stored best score with the time it was last raised.
type BestScore struct {
	Score     int
	UpdatedAt time.Time
}

// Ensure Store implements the engine's persistence collaborator.
var _ game.BestScoreStore = (*Store)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS best_score (
	key        TEXT PRIMARY KEY,
	score      INTEGER NOT NULL,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);`

// Open opens the database at path, creating its directory and schema on
// first use. A leading ~ must already be expanded.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory for %s: %w", path, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage: open %s: %w", path, err)
	}
	if err := initDB(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func initDB(db *sql.DB) error {
	if err := db.Ping(); err != nil {
		return fmt.Errorf("storage: ping: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("storage: create schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// LoadBestScore returns the stored best score, or 0 if none was saved.
func (s *Store) LoadBestScore() (int, error) {
	best, err := s.Best()
	if err != nil {
		return 0, err
	}
	return best.Score, nil
}

// Best returns the stored best score record. A missing record is the zero
// value, not an error.
func (s *Store) Best() (BestScore, error) {
	var best BestScore
	var updatedAt any

	err := s.db.QueryRow(
		"SELECT score, updated_at FROM best_score WHERE key = ?",
		bestKey,
	).Scan(&best.Score, &updatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return BestScore{}, nil
	}
	if err != nil {
		return BestScore{}, fmt.Errorf("storage: cannot query best score: %w", err)
	}

	// The driver returns DATETIME columns as time.Time or text.
	switch v := updatedAt.(type) {
	case time.Time:
		best.UpdatedAt = v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			best.UpdatedAt = parsed
		}
	}

	return best, nil
}

// SaveBestScore stores score if it beats the stored value. Lower scores
// are ignored so concurrent sessions never lower the record.
func (s *Store) SaveBestScore(score int) error {
	if score < 0 {
		return fmt.Errorf("storage: negative best score %d", score)
	}

	_, err := s.db.Exec(
		`INSERT INTO best_score (key, score, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET
		     score = excluded.score,
		     updated_at = excluded.updated_at
		 WHERE excluded.score > best_score.score`,
		bestKey, score,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save best score: %w", err)
	}
	return nil
}

// ResetBestScore deletes the stored best score.
func (s *Store) ResetBestScore() error {
	_, err := s.db.Exec("DELETE FROM best_score WHERE key = ?", bestKey)
	if err != nil {
		return fmt.Errorf("storage: cannot reset best score: %w", err)
	}
	return nil
}
