// Package storage provides SQLite-based persistence for finished runs and
// high scores. Uses the pure-Go modernc.org/sqlite driver to avoid CGO.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/realmquest/internal/core"
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// RunRecord is a persisted run summary.
type RunRecord struct {
	ID             int64
	RunID          string
	GameID         string
	PlayerName     string
	Race           string
	ClassID        string
	Score          int
	Treasures      int
	TotalTreasures int
	Outcome        core.RunOutcome
	Duration       time.Duration
	CreatedAt      time.Time
}

// Summary converts the record back into a core.RunSummary.
func (r RunRecord) Summary() core.RunSummary {
	return core.RunSummary{
		RunID:          r.RunID,
		PlayerName:     r.PlayerName,
		Race:           r.Race,
		ClassID:        r.ClassID,
		Score:          r.Score,
		Treasures:      r.Treasures,
		TotalTreasures: r.TotalTreasures,
		Outcome:        r.Outcome,
		Duration:       r.Duration,
	}
}

// ClassStats aggregates the runs of one class.
type ClassStats struct {
	ClassID string
	Runs    int
	Wins    int
	Deaths  int
	Best    int
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
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			game_id TEXT NOT NULL,
			player_name TEXT NOT NULL DEFAULT '',
			race TEXT NOT NULL DEFAULT '',
			class_id TEXT NOT NULL,
			score INTEGER NOT NULL,
			treasures INTEGER NOT NULL DEFAULT 0,
			total_treasures INTEGER NOT NULL DEFAULT 0,
			outcome TEXT NOT NULL,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_game_id ON runs(game_id);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(game_id, score DESC);
		CREATE INDEX IF NOT EXISTS idx_runs_class ON runs(game_id, class_id, score DESC);
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

// SaveRun records a finished run. A summary without a run id gets a fresh one.
// Returns the ID of the inserted record.
func (s *Store) SaveRun(gameID string, run core.RunSummary) (int64, error) {
	if run.RunID == "" {
		run.RunID = uuid.NewString()
	}

	result, err := s.db.Exec(
		`INSERT INTO runs
		 (run_id, game_id, player_name, race, class_id, score, treasures, total_treasures, outcome, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.RunID,
		gameID,
		run.PlayerName,
		run.Race,
		run.ClassID,
		run.Score,
		run.Treasures,
		run.TotalTreasures,
		string(run.Outcome),
		run.Duration.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run %s: %w", run.RunID, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const runColumns = `id, run_id, game_id, player_name, race, class_id, score,
	treasures, total_treasures, outcome, duration_ms, created_at`

// TopRuns retrieves the best runs for the given game, optionally limited to
// one class. Results are ordered by score descending, oldest first on ties.
func (s *Store) TopRuns(gameID, classID string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE game_id = ? AND (? = '' OR class_id = ?)
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		gameID, classID, classID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return scanRuns(rows)
}

// RecentRuns retrieves the most recent runs for the given game.
func (s *Store) RecentRuns(gameID string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE game_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return scanRuns(rows)
}

// RunByID retrieves a run by its run ID. Returns nil if not found.
func (s *Store) RunByID(runID string) (*RunRecord, error) {
	rows, err := s.db.Query(`SELECT `+runColumns+` FROM runs WHERE run_id = ?`, runID)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	runs, err := scanRuns(rows)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return &runs[0], nil
}

// HighScore returns the highest score for the given game and class.
// An empty class means any class. Returns 0 if no runs exist.
func (s *Store) HighScore(gameID, classID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM runs WHERE game_id = ? AND (? = '' OR class_id = ?)",
		gameID, classID, classID,
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// Stats aggregates runs per class for the given game, ordered by class id.
func (s *Store) Stats(gameID string) ([]ClassStats, error) {
	rows, err := s.db.Query(
		`SELECT class_id,
		        COUNT(*),
		        SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END),
		        SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END),
		        MAX(score)
		 FROM runs
		 WHERE game_id = ?
		 GROUP BY class_id
		 ORDER BY class_id`,
		string(core.OutcomeWon), string(core.OutcomeDead), gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query stats: %w", err)
	}
	defer rows.Close()

	var stats []ClassStats
	for rows.Next() {
		var st ClassStats
		if err := rows.Scan(&st.ClassID, &st.Runs, &st.Wins, &st.Deaths, &st.Best); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		stats = append(stats, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}

// ClearRuns deletes all runs for the given game.
func (s *Store) ClearRuns(gameID string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE game_id = ?", gameID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

func scanRuns(rows *sql.Rows) ([]RunRecord, error) {
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var (
			r          RunRecord
			outcome    string
			durationMS int64
			createdAt  any
		)
		if err := rows.Scan(
			&r.ID,
			&r.RunID,
			&r.GameID,
			&r.PlayerName,
			&r.Race,
			&r.ClassID,
			&r.Score,
			&r.Treasures,
			&r.TotalTreasures,
			&outcome,
			&durationMS,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Outcome = core.RunOutcome(outcome)
		r.Duration = time.Duration(durationMS) * time.Millisecond
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// parseTime handles both time.Time and string datetime columns.
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
