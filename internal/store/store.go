// Package store persists computed spectrum runs in SQLite at
// <workspace>/.uvcat/uvcat.db. A run is a set of series (one per law)
// computed at one temperature over one grid, plus a user note.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"uvcat/internal/logging"
	"uvcat/internal/spectrum"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// ErrRunNotFound is returned when a run ID does not exist.
var ErrRunNotFound = errors.New("run not found")

// Run is a persisted spectrum computation.
type Run struct {
	ID          string
	CreatedAt   time.Time
	Temperature float64 // kelvin
	MinNm       float64
	MaxNm       float64
	Samples     int
	Note        string
	Series      []*spectrum.Series
}

// Summary is the listing view of a run (no sample data).
type Summary struct {
	ID          string
	CreatedAt   time.Time
	Temperature float64
	Laws        []string
	Samples     int
	Note        string
}

// RunStore wraps the SQLite database holding saved runs.
type RunStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	dbPath string
}

// DefaultPath returns the database location for a workspace.
func DefaultPath(workspace string) string {
	return filepath.Join(workspace, ".uvcat", "uvcat.db")
}

// Open initializes the SQLite database at the given path.
func Open(path string) (*RunStore, error) {
	timer := logging.StartTimer(logging.CategoryStore, "Open")
	defer timer.Stop()

	logging.Store("Opening run store at %s", path)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		logging.StoreDebug("Failed to set sqlite busy_timeout: %v", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		logging.StoreDebug("Failed to set sqlite journal_mode=WAL: %v", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		logging.StoreDebug("Failed to enable sqlite foreign_keys: %v", err)
	}

	s := &RunStore{db: db, dbPath: path}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	logging.StoreDebug("Run store ready")
	return s, nil
}

// Close closes the underlying database.
func (s *RunStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// SaveRun persists a run and its series. A missing ID or CreatedAt is
// filled in; the assigned ID is returned.
func (s *RunStore) SaveRun(run *Run) (string, error) {
	if len(run.Series) == 0 {
		return "", fmt.Errorf("run has no series")
	}
	if run.ID == "" {
		run.ID = uuid.New().String()[:8]
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO runs (id, created_at, temperature, min_nm, max_nm, samples, note)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.CreatedAt, run.Temperature, run.MinNm, run.MaxNm, run.Samples, run.Note)
	if err != nil {
		return "", fmt.Errorf("failed to insert run: %w", err)
	}

	pointStmt, err := tx.Prepare(`INSERT INTO run_points (run_id, law, idx, wavelength_nm, value)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("failed to prepare point insert: %w", err)
	}
	defer pointStmt.Close()

	for _, series := range run.Series {
		_, err = tx.Exec(`INSERT INTO run_series (run_id, law, scale) VALUES (?, ?, ?)`,
			run.ID, string(series.Law), series.Scale)
		if err != nil {
			return "", fmt.Errorf("failed to insert series %s: %w", series.Law, err)
		}
		for i, wl := range series.WavelengthsNm {
			if _, err := pointStmt.Exec(run.ID, string(series.Law), i, wl, series.Values[i]); err != nil {
				return "", fmt.Errorf("failed to insert point %d of %s: %w", i, series.Law, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit run: %w", err)
	}

	logging.Store("Saved run %s (T=%gK, %d series)", run.ID, run.Temperature, len(run.Series))
	return run.ID, nil
}

// GetRun loads a run with all its series.
func (s *RunStore) GetRun(id string) (*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run := &Run{ID: id}
	err := s.db.QueryRow(`SELECT created_at, temperature, min_nm, max_nm, samples, note
		FROM runs WHERE id = ?`, id).
		Scan(&run.CreatedAt, &run.Temperature, &run.MinNm, &run.MaxNm, &run.Samples, &run.Note)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load run: %w", err)
	}

	seriesRows, err := s.db.Query(`SELECT law, scale FROM run_series WHERE run_id = ? ORDER BY law`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load series: %w", err)
	}
	defer seriesRows.Close()

	for seriesRows.Next() {
		var law string
		var scale float64
		if err := seriesRows.Scan(&law, &scale); err != nil {
			return nil, fmt.Errorf("failed to scan series: %w", err)
		}
		run.Series = append(run.Series, &spectrum.Series{
			Law:         spectrum.Law(law),
			Temperature: run.Temperature,
			Scale:       scale,
		})
	}
	if err := seriesRows.Err(); err != nil {
		return nil, fmt.Errorf("series iteration failed: %w", err)
	}

	for _, series := range run.Series {
		rows, err := s.db.Query(`SELECT wavelength_nm, value FROM run_points
			WHERE run_id = ? AND law = ? ORDER BY idx`, id, string(series.Law))
		if err != nil {
			return nil, fmt.Errorf("failed to load points for %s: %w", series.Law, err)
		}
		for rows.Next() {
			var wl, v float64
			if err := rows.Scan(&wl, &v); err != nil {
				rows.Close()
				return nil, fmt.Errorf("failed to scan point: %w", err)
			}
			series.WavelengthsNm = append(series.WavelengthsNm, wl)
			series.Values = append(series.Values, v)
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, fmt.Errorf("point iteration failed: %w", err)
		}
		rows.Close()
	}

	return run, nil
}

// ListRuns returns run summaries, newest first.
func (s *RunStore) ListRuns() ([]Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT r.id, r.created_at, r.temperature, r.samples, r.note,
		GROUP_CONCAT(rs.law) AS laws
		FROM runs r LEFT JOIN run_series rs ON rs.run_id = r.id
		GROUP BY r.id ORDER BY r.created_at DESC, r.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var sum Summary
		var laws sql.NullString
		if err := rows.Scan(&sum.ID, &sum.CreatedAt, &sum.Temperature, &sum.Samples, &sum.Note, &laws); err != nil {
			return nil, fmt.Errorf("failed to scan summary: %w", err)
		}
		if laws.Valid && laws.String != "" {
			sum.Laws = splitLaws(laws.String)
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}

// DeleteRun removes a run and its data.
func (s *RunStore) DeleteRun(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	logging.Store("Deleted run %s", id)
	return nil
}

// Prune deletes runs created before the cutoff and returns how many were
// removed.
func (s *RunStore) Prune(olderThan time.Duration) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().UTC().Add(-olderThan)
	res, err := s.db.Exec(`DELETE FROM runs WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune runs: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	logging.Store("Pruned %d runs older than %v", n, olderThan)
	return int(n), nil
}

func splitLaws(s string) []string {
	var out []string
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == ',' {
			if i > start {
				out = append(out, s[start:i])
			}
			start = i + 1
		}
	}
	return out
}
