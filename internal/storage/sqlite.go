// Package storage provides SQLite-based persistence for game scores.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for score persistence.
type Store struct {
	db *sql.DB
}

// Result is the outcome of one finished game.
type Result struct {
	Player string // SSH user name, empty for local play
	Score  int
	Lines  int
	Level  int
}

// ScoreEntry represents a single stored score record.
type ScoreEntry struct {
	ID     int64
	GameID string
	Result
	CreatedAt time.Time
}

//go:embed schema.sql
var schema string

// schemaVersion is stored in PRAGMA user_version once schema.sql has
// been applied.
const schemaVersion = 1

// Open creates or opens a SQLite database at the given path.
// A leading ~ is expanded to the home directory. Parent directories are
// created as needed and the schema is brought up to date.
func Open(dbPath string) (*Store, error) {
	dbPath, err := expandHome(dbPath)
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	db.SetMaxOpenConns(1) // SSH sessions share the store

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
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
		return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, rest), nil
}

// migrate applies the schema to databases older than schemaVersion.
func (s *Store) migrate() error {
	var version int
	if err := s.db.QueryRow(`PRAGMA user_version`).Scan(&version); err != nil {
		return fmt.Errorf("storage: cannot connect to database: %w", err)
	}
	if version >= schemaVersion {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: migration failed: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(schema); err != nil {
		return fmt.Errorf("storage: migration failed: %w", err)
	}
	if _, err := tx.Exec(fmt.Sprintf(`PRAGMA user_version = %d`, schemaVersion)); err != nil {
		return fmt.Errorf("storage: migration failed: %w", err)
	}
	return tx.Commit()
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveScore records a finished game.
// Returns the ID of the inserted record.
func (s *Store) SaveScore(gameID string, r Result) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO scores (game_id, player, score, lines, level) VALUES (?, ?, ?, ?, ?)",
		gameID, r.Player, r.Score, r.Lines, r.Level,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// selectEntries is the column list queryEntries scans.
const selectEntries = `SELECT id, game_id, player, score, lines, level, created_at FROM scores`

// TopScores retrieves the top N scores for the given game.
// Results are ordered by score descending, earlier games first on ties.
func (s *Store) TopScores(gameID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryEntries(selectEntries+` WHERE game_id = ? ORDER BY score DESC, id ASC LIMIT ?`, gameID, limit)
}

// AllScores retrieves all scores for the given game (no limit).
func (s *Store) AllScores(gameID string) ([]ScoreEntry, error) {
	return s.queryEntries(selectEntries+` WHERE game_id = ? ORDER BY score DESC, id ASC`, gameID)
}

func (s *Store) queryEntries(query string, args ...any) ([]ScoreEntry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.GameID, &e.Player, &e.Score, &e.Lines, &e.Level, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		for _, layout := range []string{"2006-01-02 15:04:05", time.RFC3339} {
			if parsed, err := time.Parse(layout, v); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}

// HighScore returns the highest score for the given game.
// Returns 0 if no scores exist.
func (s *Store) HighScore(gameID string) (int, error) {
	return s.maxScore(`SELECT MAX(score) FROM scores WHERE game_id = ?`, gameID)
}

// PlayerBest returns the best score of one player for the given game.
// Returns 0 if the player has no scores.
func (s *Store) PlayerBest(gameID, player string) (int, error) {
	return s.maxScore(`SELECT MAX(score) FROM scores WHERE game_id = ? AND player = ?`, gameID, player)
}

func (s *Store) maxScore(query string, args ...any) (int, error) {
	var score sql.NullInt64
	if err := s.db.QueryRow(query, args...).Scan(&score); err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	return int(score.Int64), nil // Zero when there are no rows
}

// ClearScores deletes all scores for the given game.
func (s *Store) ClearScores(gameID string) error {
	_, err := s.db.Exec("DELETE FROM scores WHERE game_id = ?", gameID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// GameStats contains aggregated statistics for a game.
type GameStats struct {
	GameID     string
	GamesCount int
	HighScore  int
	AvgScore   float64
	TotalScore int64
	TotalLines int64
	BestLines  int
	LastPlayed time.Time
}

// statsColumns aggregates the scores table into GameStats fields.
// Empty aggregates read as zero.
const statsColumns = `COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
	COALESCE(SUM(score), 0), COALESCE(SUM(lines), 0), COALESCE(MAX(lines), 0), MAX(created_at)`

func scanStats(row interface{ Scan(...any) error }, dest ...any) (GameStats, error) {
	var (
		gs         GameStats
		lastPlayed any
	)
	dest = append(dest, &gs.GamesCount, &gs.HighScore, &gs.AvgScore, &gs.TotalScore,
		&gs.TotalLines, &gs.BestLines, &lastPlayed)
	if err := row.Scan(dest...); err != nil {
		return gs, err
	}
	gs.LastPlayed = parseTime(lastPlayed)
	return gs, nil
}

// GetGameStats retrieves aggregated statistics for a specific game.
// A game nobody has played yields zero stats.
func (s *Store) GetGameStats(gameID string) (*GameStats, error) {
	row := s.db.QueryRow(`SELECT `+statsColumns+` FROM scores WHERE game_id = ?`, gameID)
	stats, err := scanStats(row)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}
	stats.GameID = gameID
	return &stats, nil
}

// GetAllGamesStats retrieves statistics for every game that has been
// played, keyed by game ID.
func (s *Store) GetAllGamesStats() (map[string]*GameStats, error) {
	rows, err := s.db.Query(`SELECT game_id, ` + statsColumns + ` FROM scores GROUP BY game_id`)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all games stats: %w", err)
	}
	defer rows.Close()

	all := make(map[string]*GameStats)
	for rows.Next() {
		var id string
		stats, err := scanStats(rows, &id)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		stats.GameID = id
		all[id] = &stats
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return all, nil
}
