// Package storage provides SQLite-based persistence for lab progress.
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
)

// Store manages the SQLite database connection for progress persistence.
type Store struct {
	db *sql.DB
}

// Completion records one finished level.
type Completion struct {
	ID           int64
	Level        int
	Ticks        int     // Ticks from entering the level to its terminal condition
	PeakVelocity float64 // Largest |velocity| seen during the attempt
	CreatedAt    time.Time
}

// Run records one play session.
type Run struct {
	ID            int64
	StartedAt     time.Time
	FinishedAt    time.Time // Zero while the run is still open
	LevelsCleared int
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
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			level INTEGER NOT NULL,
			ticks INTEGER NOT NULL,
			peak_velocity REAL NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_completions_fastest ON completions(level, ticks ASC);

		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			started_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			finished_at DATETIME,
			levels_cleared INTEGER NOT NULL DEFAULT 0
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

// SaveCompletion records a finished level.
// Returns the ID of the inserted record.
func (s *Store) SaveCompletion(level, ticks int, peakVelocity float64) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO completions (level, ticks, peak_velocity) VALUES (?, ?, ?)",
		level, ticks, peakVelocity,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save completion: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// FastestCompletions retrieves the N fastest completions of a level.
// Ties are broken by the earliest record.
func (s *Store) FastestCompletions(level, limit int) ([]Completion, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, level, ticks, peak_velocity, created_at
		 FROM completions
		 WHERE level = ?
		 ORDER BY ticks ASC, id ASC
		 LIMIT ?`,
		level, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query completions: %w", err)
	}
	defer rows.Close()

	var entries []Completion
	for rows.Next() {
		var c Completion
		var createdAt any
		if err := rows.Scan(&c.ID, &c.Level, &c.Ticks, &c.PeakVelocity, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		c.CreatedAt = parseTime(createdAt)
		entries = append(entries, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// BestTicks returns the fewest ticks any completion of the level took.
// Returns 0 if the level was never completed.
func (s *Store) BestTicks(level int) (int, error) {
	var ticks sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MIN(ticks) FROM completions WHERE level = ?",
		level,
	).Scan(&ticks)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best ticks: %w", err)
	}

	if !ticks.Valid {
		return 0, nil
	}
	return int(ticks.Int64), nil
}

// ClearCompletions deletes all completions for the given level.
func (s *Store) ClearCompletions(level int) error {
	_, err := s.db.Exec("DELETE FROM completions WHERE level = ?", level)
	if err != nil {
		return fmt.Errorf("storage: cannot clear completions: %w", err)
	}
	return nil
}

// StartRun opens a new run and returns its ID.
func (s *Store) StartRun() (int64, error) {
	result, err := s.db.Exec("INSERT INTO runs (levels_cleared) VALUES (0)")
	if err != nil {
		return 0, fmt.Errorf("storage: cannot start run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// FinishRun closes a run with the number of levels cleared in it.
func (s *Store) FinishRun(id int64, levelsCleared int) error {
	result, err := s.db.Exec(
		"UPDATE runs SET finished_at = CURRENT_TIMESTAMP, levels_cleared = ? WHERE id = ?",
		levelsCleared, id,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot finish run: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot finish run: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("storage: run %d: %w", id, sql.ErrNoRows)
	}
	return nil
}

// RecentRuns returns the most recently started runs.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, started_at, finished_at, levels_cleared
		 FROM runs
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var startedAt, finishedAt any
		if err := rows.Scan(&r.ID, &startedAt, &finishedAt, &r.LevelsCleared); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.StartedAt = parseTime(startedAt)
		r.FinishedAt = parseTime(finishedAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// IsNotFound reports whether err means the requested record does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// parseTime handles the driver returning either time.Time or a string.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
