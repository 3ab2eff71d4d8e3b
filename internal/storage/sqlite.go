// Package storage provides SQLite-based persistence for level progress.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/knightmare/internal/game"
)

// Store manages the SQLite database connection for save data.
type Store struct {
	db *sql.DB
}

// Run is a single recorded level completion.
type Run struct {
	ID        int64
	Profile   string
	LevelName string
	Steps     int
	CreatedAt time.Time
}

// LevelStats aggregates the runs of one level for a profile.
type LevelStats struct {
	LevelName  string
	Clears     int
	BestSteps  int
	LastPlayed time.Time
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

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS completions (
			profile TEXT NOT NULL,
			level_name TEXT NOT NULL,
			best_steps INTEGER NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (profile, level_name)
		);

		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			profile TEXT NOT NULL,
			level_name TEXT NOT NULL,
			steps INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_profile ON runs(profile, created_at DESC);
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

// RecordCompletion logs a run and keeps steps as the level's best when it
// beats the stored one. Reports whether the best improved.
func (s *Store) RecordCompletion(profile, levelName string, steps int) (bool, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return false, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	//nolint:errcheck // Rollback after Commit is a no-op
	defer tx.Rollback()

	if _, err := tx.Exec(
		"INSERT INTO runs (profile, level_name, steps) VALUES (?, ?, ?)",
		profile, levelName, steps,
	); err != nil {
		return false, fmt.Errorf("storage: cannot save run: %w", err)
	}

	var best int
	err = tx.QueryRow(
		"SELECT best_steps FROM completions WHERE profile = ? AND level_name = ?",
		profile, levelName,
	).Scan(&best)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return false, fmt.Errorf("storage: cannot query completion: %w", err)
	case best <= steps:
		return false, tx.Commit()
	}

	if _, err := tx.Exec(
		`INSERT INTO completions (profile, level_name, best_steps, updated_at)
		 VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(profile, level_name)
		 DO UPDATE SET best_steps = excluded.best_steps, updated_at = excluded.updated_at`,
		profile, levelName, steps,
	); err != nil {
		return false, fmt.Errorf("storage: cannot save completion: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("storage: cannot commit completion: %w", err)
	}
	return true, nil
}

// BestSteps returns the best step count of a level, if completed.
func (s *Store) BestSteps(profile, levelName string) (int, bool, error) {
	var best int
	err := s.db.QueryRow(
		"SELECT best_steps FROM completions WHERE profile = ? AND level_name = ?",
		profile, levelName,
	).Scan(&best)

	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("storage: cannot query completion: %w", err)
	}
	return best, true, nil
}

// Completions returns the best step count of every completed level.
func (s *Store) Completions(profile string) (map[string]int, error) {
	rows, err := s.db.Query(
		"SELECT level_name, best_steps FROM completions WHERE profile = ?",
		profile,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query completions: %w", err)
	}
	defer rows.Close()

	done := make(map[string]int)
	for rows.Next() {
		var name string
		var steps int
		if err := rows.Scan(&name, &steps); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		done[name] = steps
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return done, nil
}

// TotalSteps sums the best step counts of a profile.
func (s *Store) TotalSteps(profile string) (int, error) {
	var total int
	err := s.db.QueryRow(
		"SELECT COALESCE(SUM(best_steps), 0) FROM completions WHERE profile = ?",
		profile,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot sum steps: %w", err)
	}
	return total, nil
}

// RecentRuns retrieves the most recent runs of a profile, newest first.
func (s *Store) RecentRuns(profile string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, profile, level_name, steps, created_at
		 FROM runs
		 WHERE profile = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		profile, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Profile, &r.LevelName, &r.Steps, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// Stats aggregates the runs of a profile per level.
func (s *Store) Stats(profile string) (map[string]*LevelStats, error) {
	rows, err := s.db.Query(
		`SELECT level_name, COUNT(*), MIN(steps), MAX(created_at)
		 FROM runs
		 WHERE profile = ?
		 GROUP BY level_name`,
		profile,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*LevelStats)
	for rows.Next() {
		var st LevelStats
		var lastPlayed any
		if err := rows.Scan(&st.LevelName, &st.Clears, &st.BestSteps, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseTime(lastPlayed)
		stats[st.LevelName] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}

// Reset deletes all progress of a profile.
func (s *Store) Reset(profile string) error {
	if _, err := s.db.Exec("DELETE FROM completions WHERE profile = ?", profile); err != nil {
		return fmt.Errorf("storage: cannot clear completions: %w", err)
	}
	if _, err := s.db.Exec("DELETE FROM runs WHERE profile = ?", profile); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string datetimes.
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

// Ensure Store implements ProgressStore
var _ game.ProgressStore = (*Store)(nil)
