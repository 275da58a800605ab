// Package storage provides SQLite-based persistence for patrol run history.
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

	"github.com/vovakirdan/guard-patrol/internal/config"
)

// NoObstructions marks a run where the obstruction search was not performed.
const NoObstructions = -1

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sql.DB
}

// Run is a single recorded solve.
type Run struct {
	ID           string // UUIDv7, time ordered
	PuzzleID     string
	Width        int
	Height       int
	Outcome      string // "exited" or "cycled"
	Visited      int
	Obstructions int // NoObstructions when part two was skipped
	Workers      int
	Duration     time.Duration
	Error        string
	CreatedAt    time.Time
}

// HasObstructions reports whether the run includes a part two answer.
func (r Run) HasObstructions() bool {
	return r.Obstructions != NoObstructions
}

// PuzzleStats contains aggregated statistics for a puzzle.
type PuzzleStats struct {
	PuzzleID string
	Runs     int
	Fastest  time.Duration
	Average  time.Duration
	LastRun  time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	dbPath, err := config.ExpandHome(dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
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
			id TEXT PRIMARY KEY,
			puzzle_id TEXT NOT NULL,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			outcome TEXT NOT NULL,
			visited INTEGER NOT NULL,
			obstructions INTEGER,
			workers INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			error TEXT,
			created_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_puzzle_id ON runs(puzzle_id);
		CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);
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

// SaveRun records a run. A missing ID or timestamp is filled in.
// Returns the ID of the stored record.
func (s *Store) SaveRun(run Run) (string, error) {
	if run.PuzzleID == "" {
		return "", errors.New("storage: run has no puzzle id")
	}
	if run.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return "", fmt.Errorf("storage: cannot generate run id: %w", err)
		}
		run.ID = id.String()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}

	var obstructions sql.NullInt64
	if run.HasObstructions() {
		obstructions = sql.NullInt64{Int64: int64(run.Obstructions), Valid: true}
	}
	var runErr sql.NullString
	if run.Error != "" {
		runErr = sql.NullString{String: run.Error, Valid: true}
	}

	_, err := s.db.Exec(
		`INSERT INTO runs
		 (id, puzzle_id, width, height, outcome, visited, obstructions, workers, duration_ms, error, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.PuzzleID,
		run.Width,
		run.Height,
		run.Outcome,
		run.Visited,
		obstructions,
		run.Workers,
		run.Duration.Milliseconds(),
		runErr,
		run.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}

	return run.ID, nil
}

const runColumns = `id, puzzle_id, width, height, outcome, visited, obstructions,
		        workers, duration_ms, error, created_at`

// RecentRuns retrieves the most recent runs across all puzzles.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return collectRuns(rows)
}

// RunsForPuzzle retrieves the most recent runs of one puzzle.
func (s *Store) RunsForPuzzle(puzzleID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE puzzle_id = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		puzzleID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return collectRuns(rows)
}

// LatestRun returns the newest run of a puzzle, or nil if it was never solved.
func (s *Store) LatestRun(puzzleID string) (*Run, error) {
	row := s.db.QueryRow(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE puzzle_id = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT 1`,
		puzzleID,
	)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query latest run: %w", err)
	}
	return &run, nil
}

// ClearRuns deletes the history of a puzzle, or of every puzzle when puzzleID is empty.
// Returns the number of deleted runs.
func (s *Store) ClearRuns(puzzleID string) (int64, error) {
	var (
		res sql.Result
		err error
	)
	if puzzleID == "" {
		res, err = s.db.Exec("DELETE FROM runs")
	} else {
		res, err = s.db.Exec("DELETE FROM runs WHERE puzzle_id = ?", puzzleID)
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot clear runs: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot count deleted runs: %w", err)
	}
	return n, nil
}

// PuzzleStats retrieves aggregated statistics for a puzzle.
// A puzzle without runs yields zero stats.
func (s *Store) PuzzleStats(puzzleID string) (*PuzzleStats, error) {
	stats := &PuzzleStats{PuzzleID: puzzleID}

	var (
		fastest, last sql.NullInt64
		avg           sql.NullFloat64
	)
	err := s.db.QueryRow(
		`SELECT COUNT(*), MIN(duration_ms), AVG(duration_ms), MAX(created_at)
		 FROM runs WHERE puzzle_id = ?`,
		puzzleID,
	).Scan(&stats.Runs, &fastest, &avg, &last)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get puzzle stats: %w", err)
	}

	fillStats(stats, fastest, avg, last)
	return stats, nil
}

// AllPuzzleStats retrieves statistics for every puzzle that has been solved.
func (s *Store) AllPuzzleStats() (map[string]*PuzzleStats, error) {
	rows, err := s.db.Query(
		`SELECT puzzle_id, COUNT(*), MIN(duration_ms), AVG(duration_ms), MAX(created_at)
		 FROM runs
		 GROUP BY puzzle_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all puzzle stats: %w", err)
	}
	defer rows.Close()

	all := make(map[string]*PuzzleStats)
	for rows.Next() {
		var (
			st            PuzzleStats
			fastest, last sql.NullInt64
			avg           sql.NullFloat64
		)
		if err := rows.Scan(&st.PuzzleID, &st.Runs, &fastest, &avg, &last); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		fillStats(&st, fastest, avg, last)
		all[st.PuzzleID] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return all, nil
}

func fillStats(st *PuzzleStats, fastest sql.NullInt64, avg sql.NullFloat64, last sql.NullInt64) {
	if fastest.Valid {
		st.Fastest = time.Duration(fastest.Int64) * time.Millisecond
	}
	if avg.Valid {
		st.Average = time.Duration(avg.Float64 * float64(time.Millisecond))
	}
	if last.Valid {
		st.LastRun = time.UnixMilli(last.Int64)
	}
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var (
		run          Run
		obstructions sql.NullInt64
		runErr       sql.NullString
		durationMs   int64
		createdAt    int64
	)
	if err := row.Scan(
		&run.ID,
		&run.PuzzleID,
		&run.Width,
		&run.Height,
		&run.Outcome,
		&run.Visited,
		&obstructions,
		&run.Workers,
		&durationMs,
		&runErr,
		&createdAt,
	); err != nil {
		return Run{}, err
	}

	run.Obstructions = NoObstructions
	if obstructions.Valid {
		run.Obstructions = int(obstructions.Int64)
	}
	if runErr.Valid {
		run.Error = runErr.String
	}
	run.Duration = time.Duration(durationMs) * time.Millisecond
	run.CreatedAt = time.UnixMilli(createdAt)
	return run, nil
}

func collectRuns(rows *sql.Rows) ([]Run, error) {
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}
