// Package storage provides SQLite-based persistence for round history.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vstrozzi/monkey-3d-game/internal/layout"
	"github.com/vstrozzi/monkey-3d-game/internal/protocol"
)

// Store manages the SQLite database connection for round history.
type Store struct {
	db *sql.DB
}

// RoundRecord is one finished round: the configuration that was published
// and the Runner telemetry read when the round ended.
type RoundRecord struct {
	ID             int64
	Seed           uint64
	TargetDoor     uint32
	Attempts       uint32
	Frames         uint64
	ElapsedSecs    float64
	WinTime        float64
	FinalAlignment float64
	Won            bool
	Config         string // YAML of the published round
	CreatedAt      time.Time
}

// Round decodes the stored configuration.
func (r RoundRecord) Round() (protocol.RoundConfig, error) {
	rc := protocol.DefaultRoundConfig()
	if err := yaml.Unmarshal([]byte(r.Config), &rc); err != nil {
		return rc, fmt.Errorf("storage: cannot decode round %d: %w", r.ID, err)
	}
	return rc, nil
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

	// Test connection
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
		CREATE TABLE IF NOT EXISTS rounds (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			seed INTEGER NOT NULL,
			target_door INTEGER NOT NULL,
			attempts INTEGER NOT NULL DEFAULT 0,
			frames INTEGER NOT NULL DEFAULT 0,
			elapsed_secs REAL NOT NULL DEFAULT 0,
			win_time REAL NOT NULL DEFAULT 0,
			final_alignment REAL NOT NULL DEFAULT 0,
			won INTEGER NOT NULL DEFAULT 0,
			config TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_rounds_seed ON rounds(seed);
		CREATE INDEX IF NOT EXISTS idx_rounds_created ON rounds(created_at DESC);
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

// SaveRound records a finished round. Returns the ID of the inserted record.
func (s *Store) SaveRound(rc protocol.RoundConfig, tel layout.Snapshot) (int64, error) {
	cfg, err := yaml.Marshal(rc)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot encode round: %w", err)
	}

	won := tel.WinTime > 0
	result, err := s.db.Exec(
		`INSERT INTO rounds
		 (seed, target_door, attempts, frames, elapsed_secs, win_time, final_alignment, won, config)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		int64(rc.Seed), // stored bit for bit; sqlite integers are signed
		rc.TargetDoor,
		tel.Attempts,
		int64(tel.FrameNumber),
		float64(tel.ElapsedSecs),
		float64(tel.WinTime),
		float64(tel.CurrentAlignment),
		won,
		string(cfg),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save round: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const roundColumns = `id, seed, target_door, attempts, frames, elapsed_secs, win_time, final_alignment, won, config, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanRound(row scanner) (RoundRecord, error) {
	var (
		r         RoundRecord
		seed      int64
		frames    int64
		createdAt any
	)
	if err := row.Scan(
		&r.ID,
		&seed,
		&r.TargetDoor,
		&r.Attempts,
		&frames,
		&r.ElapsedSecs,
		&r.WinTime,
		&r.FinalAlignment,
		&r.Won,
		&r.Config,
		&createdAt,
	); err != nil {
		return r, err
	}
	r.Seed = uint64(seed)
	r.Frames = uint64(frames)
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

// parseTime handles both time.Time and string datetimes.
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

// RecentRounds retrieves the most recent rounds, newest first.
func (s *Store) RecentRounds(limit int) ([]RoundRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+roundColumns+`
		 FROM rounds
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query rounds: %w", err)
	}
	defer rows.Close()

	var records []RoundRecord
	for rows.Next() {
		r, err := scanRound(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// RoundByID retrieves a round, or nil if it does not exist.
func (s *Store) RoundByID(id int64) (*RoundRecord, error) {
	r, err := scanRound(s.db.QueryRow(`SELECT `+roundColumns+` FROM rounds WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query round: %w", err)
	}
	return &r, nil
}

// RoundStats contains aggregated statistics over every stored round.
type RoundStats struct {
	Rounds      int
	Wins        int
	AvgAttempts float64
	AvgWinTime  float64 // over won rounds only
	LastPlayed  time.Time
}

// Stats aggregates the round history.
func (s *Store) Stats() (*RoundStats, error) {
	stats := &RoundStats{}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(won), 0), COALESCE(AVG(attempts), 0),
		        COALESCE((SELECT AVG(win_time) FROM rounds WHERE won = 1), 0)
		 FROM rounds`,
	).Scan(&stats.Rounds, &stats.Wins, &stats.AvgAttempts, &stats.AvgWinTime)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get round stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(`SELECT created_at FROM rounds ORDER BY id DESC LIMIT 1`).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// ClearRounds deletes the whole history.
func (s *Store) ClearRounds() error {
	if _, err := s.db.Exec("DELETE FROM rounds"); err != nil {
		return fmt.Errorf("storage: cannot clear rounds: %w", err)
	}
	return nil
}
