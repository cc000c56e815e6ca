// Package storage provides SQLite-based history of completed quest runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
// Runs are recorded only after Victory; nothing here is ever read back
// as session progress.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Levels is the number of timed levels in a run.
const Levels = 4

// AutoplayPlayer names runs recorded by the headless player. They are kept
// in history but never ranked against real players.
const AutoplayPlayer = "autoplay"

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sql.DB
}

// Run is one completed session.
type Run struct {
	ID        string // UUID, assigned by SaveRun when empty
	Player    string
	Duration  time.Duration
	Splits    [Levels]time.Duration // time spent in each level
	CreatedAt time.Time
}

// RunStats contains aggregated statistics over all runs.
type RunStats struct {
	Count      int
	Best       time.Duration
	Average    time.Duration
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
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			player TEXT NOT NULL DEFAULT '',
			total_ms INTEGER NOT NULL,
			level1_ms INTEGER NOT NULL DEFAULT 0,
			level2_ms INTEGER NOT NULL DEFAULT 0,
			level3_ms INTEGER NOT NULL DEFAULT 0,
			level4_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_fastest ON runs(total_ms ASC);
		CREATE INDEX IF NOT EXISTS idx_runs_player ON runs(player);
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

// SaveRun records a completed run and returns it with its ID set.
func (s *Store) SaveRun(run Run) (Run, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}

	_, err := s.db.Exec(
		`INSERT INTO runs (run_id, player, total_ms, level1_ms, level2_ms, level3_ms, level4_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Player, run.Duration.Milliseconds(),
		run.Splits[0].Milliseconds(), run.Splits[1].Milliseconds(),
		run.Splits[2].Milliseconds(), run.Splits[3].Milliseconds(),
	)
	if err != nil {
		return run, fmt.Errorf("storage: cannot save run: %w", err)
	}
	return run, nil
}

const runColumns = `run_id, player, total_ms, level1_ms, level2_ms, level3_ms, level4_ms, created_at`

// FastestRuns retrieves the N fastest runs, leaving out autoplay runs.
func (s *Store) FastestRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT `+runColumns+` FROM runs WHERE player != ? ORDER BY total_ms ASC, id ASC LIMIT ?`,
		AutoplayPlayer, limit,
	)
}

// RecentRuns retrieves the N most recent runs.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRuns(
		`SELECT `+runColumns+` FROM runs ORDER BY id DESC LIMIT ?`,
		limit,
	)
}

// PlayerRuns retrieves the fastest runs of one player.
func (s *Store) PlayerRuns(player string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT `+runColumns+` FROM runs WHERE player = ? ORDER BY total_ms ASC, id ASC LIMIT ?`,
		player, limit,
	)
}

// RunByID retrieves one run. It returns nil if there is none.
func (s *Store) RunByID(id string) (*Run, error) {
	runs, err := s.queryRuns(`SELECT `+runColumns+` FROM runs WHERE run_id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return &runs[0], nil
}

func (s *Store) queryRuns(query string, args ...any) ([]Run, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var total int64
		var splits [Levels]int64
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Player, &total,
			&splits[0], &splits[1], &splits[2], &splits[3], &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}

		r.Duration = time.Duration(total) * time.Millisecond
		for i, ms := range splits {
			r.Splits[i] = time.Duration(ms) * time.Millisecond
		}
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// BestDuration returns the fastest recorded run time, autoplay runs
// excluded. ok is false when no such run exists.
func (s *Store) BestDuration() (best time.Duration, ok bool, err error) {
	var ms sql.NullInt64
	if err := s.db.QueryRow("SELECT MIN(total_ms) FROM runs WHERE player != ?", AutoplayPlayer).Scan(&ms); err != nil {
		return 0, false, fmt.Errorf("storage: cannot query best run: %w", err)
	}
	if !ms.Valid {
		return 0, false, nil
	}
	return time.Duration(ms.Int64) * time.Millisecond, true, nil
}

// Stats retrieves aggregated statistics over all runs. Best ignores
// autoplay runs.
func (s *Store) Stats() (*RunStats, error) {
	stats := &RunStats{}

	var best int64
	var avg float64
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MIN(CASE WHEN player != ? THEN total_ms END), 0), COALESCE(AVG(total_ms), 0) FROM runs`,
		AutoplayPlayer,
	).Scan(&stats.Count, &best, &avg)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get run stats: %w", err)
	}
	stats.Best = time.Duration(best) * time.Millisecond
	stats.Average = time.Duration(avg * float64(time.Millisecond))

	var lastPlayed any
	err = s.db.QueryRow(`SELECT created_at FROM runs ORDER BY id DESC LIMIT 1`).Scan(&lastPlayed)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// ClearRuns deletes every recorded run.
func (s *Store) ClearRuns() error {
	if _, err := s.db.Exec("DELETE FROM runs"); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
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
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
