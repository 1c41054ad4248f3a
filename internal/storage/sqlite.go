// Package storage provides SQLite-based persistence for scores and run
// statistics. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/shapefall/internal/core"
)

const sqliteTimeLayout = "2006-01-02 15:04:05"

// Store manages the SQLite database connection for score persistence.
type Store struct {
	db *sql.DB
}

// RunRecord is one finished puzzle with its statistics.
type RunRecord struct {
	ID        int64
	GameID    string
	Score     int
	Seed      int64
	Stats     core.RunStats
	CreatedAt time.Time
}

// Open opens the scores database at dbPath, creating it and its parent
// directories on first use. A leading ~ is expanded to the home directory.
func Open(dbPath string) (*Store, error) {
	path, err := expandHome(dbPath)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("storage: create %s: %w", filepath.Dir(path), err)
	}

	db, err := sql.Open("sqlite", path)
	if err == nil {
		err = db.Ping()
	}
	if err != nil {
		return nil, fmt.Errorf("storage: open %s: %w", path, err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migrate: %w", err)
	}
	return s, nil
}

func expandHome(path string) (string, error) {
	rest, ok := strings.CutPrefix(path, "~")
	if !ok {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: expand %s: %w", path, err)
	}
	return filepath.Join(home, rest), nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			score INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_game_id ON scores(game_id);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(game_id, score DESC);

		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			score_id INTEGER NOT NULL REFERENCES scores(id) ON DELETE CASCADE,
			game_id TEXT NOT NULL,
			seed INTEGER NOT NULL DEFAULT 0,
			moves INTEGER NOT NULL DEFAULT 0,
			tiles_cleared INTEGER NOT NULL DEFAULT 0,
			largest_clear INTEGER NOT NULL DEFAULT 0,
			board_cleared INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_game_id ON runs(game_id, created_at DESC);
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

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func insertScore(db execer, gameID string, score int) (int64, error) {
	res, err := db.Exec("INSERT INTO scores (game_id, score) VALUES (?, ?)", gameID, score)
	if err != nil {
		return 0, fmt.Errorf("storage: save score: %w", err)
	}
	return res.LastInsertId()
}

// SaveScore records a bare score for games that report no run statistics.
func (s *Store) SaveScore(gameID string, score int) (int64, error) {
	return insertScore(s.db, gameID, score)
}

// SaveRun writes a finished run and its score atomically and returns the
// run ID. The seed rebuilds the starting board.
func (s *Store) SaveRun(gameID string, score int, seed int64, stats core.RunStats) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	scoreID, err := insertScore(tx, gameID, score)
	if err != nil {
		return 0, err
	}
	res, err := tx.Exec(
		`INSERT INTO runs (score_id, game_id, seed, moves, tiles_cleared, largest_clear, board_cleared)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		scoreID, gameID, seed, stats.Moves, stats.TilesCleared, stats.LargestClear, stats.BoardCleared,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: save run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return runID, tx.Commit()
}

// TopRuns retrieves the top N scores for the given game with the statistics
// of their runs. Scores saved without a run carry zero statistics.
func (s *Store) TopRuns(gameID string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	return s.queryRuns(
		`SELECT COALESCE(r.id, 0), s.game_id, s.score, COALESCE(r.seed, 0), COALESCE(r.moves, 0),
		        COALESCE(r.tiles_cleared, 0), COALESCE(r.largest_clear, 0),
		        COALESCE(r.board_cleared, 0), s.created_at
		 FROM scores s LEFT JOIN runs r ON r.score_id = s.id
		 WHERE s.game_id = ?
		 ORDER BY s.score DESC
		 LIMIT ?`,
		gameID, limit,
	)
}

// RecentRuns retrieves the most recent runs of the given game.
func (s *Store) RecentRuns(gameID string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	return s.queryRuns(
		`SELECT r.id, r.game_id, s.score, r.seed, r.moves, r.tiles_cleared,
		        r.largest_clear, r.board_cleared, r.created_at
		 FROM runs r JOIN scores s ON s.id = r.score_id
		 WHERE r.game_id = ?
		 ORDER BY r.id DESC
		 LIMIT ?`,
		gameID, limit,
	)
}

func (s *Store) queryRuns(query string, args ...any) ([]RunRecord, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var r RunRecord
		var createdAt any
		if err := rows.Scan(
			&r.ID,
			&r.GameID,
			&r.Score,
			&r.Seed,
			&r.Stats.Moves,
			&r.Stats.TilesCleared,
			&r.Stats.LargestClear,
			&r.Stats.BoardCleared,
			&createdAt,
		); err != nil {
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

// HighScore returns the best score of gameID, or 0 before the first run.
func (s *Store) HighScore(gameID string) (int, error) {
	var high int
	err := s.db.QueryRow("SELECT COALESCE(MAX(score), 0) FROM scores WHERE game_id = ?", gameID).Scan(&high)
	if err != nil {
		return 0, fmt.Errorf("storage: high score: %w", err)
	}
	return high, nil
}

// ClearScores deletes every score and run of gameID and reports how many
// scores were removed.
func (s *Store) ClearScores(gameID string) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.Exec("DELETE FROM runs WHERE game_id = ?", gameID); err != nil {
		return 0, fmt.Errorf("storage: clear runs: %w", err)
	}
	res, err := tx.Exec("DELETE FROM scores WHERE game_id = ?", gameID)
	if err != nil {
		return 0, fmt.Errorf("storage: clear scores: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return n, tx.Commit()
}

// GameStats contains aggregated statistics for a game.
type GameStats struct {
	GameID        string
	GamesCount    int
	HighScore     int
	AvgScore      float64
	TotalScore    int64
	TilesCleared  int64
	LargestClear  int
	BoardsCleared int
	LastPlayed    time.Time
}

// GetGameStats retrieves aggregated statistics for a specific game.
func (s *Store) GetGameStats(gameID string) (*GameStats, error) {
	stats := &GameStats{GameID: gameID}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), COALESCE(SUM(score), 0)
		 FROM scores WHERE game_id = ?`,
		gameID,
	).Scan(&stats.GamesCount, &stats.HighScore, &stats.AvgScore, &stats.TotalScore)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}

	err = s.db.QueryRow(
		`SELECT COALESCE(SUM(tiles_cleared), 0), COALESCE(MAX(largest_clear), 0), COALESCE(SUM(board_cleared), 0)
		 FROM runs WHERE game_id = ?`,
		gameID,
	).Scan(&stats.TilesCleared, &stats.LargestClear, &stats.BoardsCleared)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get run stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM scores WHERE game_id = ? ORDER BY created_at DESC LIMIT 1`,
		gameID,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// GetAllGamesStats retrieves score statistics for all games that have been played.
func (s *Store) GetAllGamesStats() (map[string]*GameStats, error) {
	rows, err := s.db.Query(
		`SELECT game_id, COUNT(*), MAX(score), AVG(score), SUM(score), MAX(created_at)
		 FROM scores
		 GROUP BY game_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all games stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*GameStats)
	for rows.Next() {
		var gs GameStats
		var lastPlayed any
		if err := rows.Scan(&gs.GameID, &gs.GamesCount, &gs.HighScore, &gs.AvgScore, &gs.TotalScore, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		gs.LastPlayed = parseTime(lastPlayed)
		stats[gs.GameID] = &gs
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// parseTime handles both time.Time and string datetime values.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(sqliteTimeLayout, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
