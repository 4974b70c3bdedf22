package main

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "modernc.org/sqlite"
)

// DB wraps the SQLite database connection
type DB struct {
	conn *sql.DB
}

// RunRecord is one finished campaign
type RunRecord struct {
	ID         string
	Difficulty Difficulty
	Level      int // last level played
	Players    [2]PlayerStats
	StartedAt  time.Time
	EndedAt    time.Time
}

// OpenDB opens (or creates) the SQLite database
func OpenDB(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// A single writer keeps the journal and score saves from racing on SQLITE_BUSY
	conn.SetMaxOpenConns(1)

	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, err
	}
	return db, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates tables if they don't exist
func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS high_scores (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		value INTEGER NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		difficulty INTEGER NOT NULL DEFAULT 0,
		level INTEGER NOT NULL DEFAULT 1,
		score1 INTEGER NOT NULL DEFAULT 0,
		score2 INTEGER NOT NULL DEFAULT 0,
		lives1 INTEGER NOT NULL DEFAULT 0,
		lives2 INTEGER NOT NULL DEFAULT 0,
		shots1 INTEGER NOT NULL DEFAULT 0,
		shots2 INTEGER NOT NULL DEFAULT 0,
		kills1 INTEGER NOT NULL DEFAULT 0,
		kills2 INTEGER NOT NULL DEFAULT 0,
		started_at INTEGER NOT NULL,
		ended_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL DEFAULT '',
		event_type TEXT NOT NULL,
		level INTEGER NOT NULL DEFAULT 0,
		player INTEGER NOT NULL DEFAULT -1,
		value INTEGER NOT NULL DEFAULT 0,
		tick INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_high_scores_value ON high_scores(value DESC);
	CREATE INDEX IF NOT EXISTS idx_events_run ON events(run_id);
	`
	_, err := db.conn.Exec(schema)
	if err != nil {
		log.Printf("DB migration error: %v", err)
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// LoadHighScores returns the leaderboard, best first
func (db *DB) LoadHighScores() ([]Score, error) {
	rows, err := db.conn.Query(
		"SELECT name, value FROM high_scores ORDER BY value DESC, id ASC LIMIT ?",
		MaxHighScores,
	)
	if err != nil {
		return nil, fmt.Errorf("load high scores: %w", err)
	}
	defer rows.Close()

	var result []Score
	for rows.Next() {
		var s Score
		if err := rows.Scan(&s.Name, &s.Value); err != nil {
			return nil, fmt.Errorf("load high scores: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// SaveHighScores replaces the leaderboard with the given list, trimmed to the cap
func (db *DB) SaveHighScores(scores []Score) error {
	scores = TrimScores(scores)
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("save high scores: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM high_scores"); err != nil {
		return fmt.Errorf("save high scores: %w", err)
	}
	for _, s := range scores {
		if _, err := tx.Exec("INSERT INTO high_scores (name, value) VALUES (?, ?)", s.Name, s.Value); err != nil {
			return fmt.Errorf("save high scores: %w", err)
		}
	}
	return tx.Commit()
}

// ResetScores empties the leaderboard
func (db *DB) ResetScores() error {
	if _, err := db.conn.Exec("DELETE FROM high_scores"); err != nil {
		return fmt.Errorf("reset scores: %w", err)
	}
	return nil
}

// RecordRun stores a finished campaign
func (db *DB) RecordRun(r RunRecord) error {
	p1, p2 := r.Players[0], r.Players[1]
	_, err := db.conn.Exec(
		`INSERT INTO runs (id, difficulty, level, score1, score2, lives1, lives2, shots1, shots2, kills1, kills2, started_at, ended_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, int(r.Difficulty), r.Level,
		p1.Score, p2.Score, p1.Lives, p2.Lives,
		p1.BulletsShot, p2.BulletsShot, p1.ShipsDestroyed, p2.ShipsDestroyed,
		r.StartedAt.Unix(), r.EndedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("record run %s: %w", r.ID, err)
	}
	return nil
}

// RecentRuns returns the latest finished campaigns, newest first
func (db *DB) RecentRuns(limit int) ([]RunRecord, error) {
	rows, err := db.conn.Query(`
		SELECT id, difficulty, level, score1, score2, lives1, lives2, shots1, shots2, kills1, kills2, started_at, ended_at
		FROM runs
		ORDER BY ended_at DESC, rowid DESC
		LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("recent runs: %w", err)
	}
	defer rows.Close()

	var result []RunRecord
	for rows.Next() {
		var (
			r          RunRecord
			diff       int
			start, end int64
		)
		p1, p2 := &r.Players[0], &r.Players[1]
		if err := rows.Scan(&r.ID, &diff, &r.Level,
			&p1.Score, &p2.Score, &p1.Lives, &p2.Lives,
			&p1.BulletsShot, &p2.BulletsShot, &p1.ShipsDestroyed, &p2.ShipsDestroyed,
			&start, &end); err != nil {
			return nil, fmt.Errorf("recent runs: %w", err)
		}
		r.Difficulty = Difficulty(diff)
		r.StartedAt = time.Unix(start, 0)
		r.EndedAt = time.Unix(end, 0)
		result = append(result, r)
	}
	return result, rows.Err()
}

// InsertEvents writes a batch of journal events in one transaction
func (db *DB) InsertEvents(events []Event) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("insert events: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO events (run_id, event_type, level, player, value, tick, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("insert events: %w", err)
	}
	defer stmt.Close()

	for _, ev := range events {
		if _, err := stmt.Exec(ev.RunID, string(ev.Type), ev.Level, ev.Player, ev.Value, int64(ev.Tick), ev.Timestamp.Format(time.RFC3339)); err != nil {
			return fmt.Errorf("insert events: %w", err)
		}
	}
	return tx.Commit()
}

// EventCounts tallies a run's journal by event type
func (db *DB) EventCounts(runID string) (map[EventType]int, error) {
	rows, err := db.conn.Query(
		"SELECT event_type, COUNT(*) FROM events WHERE run_id = ? GROUP BY event_type",
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("event counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[EventType]int)
	for rows.Next() {
		var (
			typ string
			n   int
		)
		if err := rows.Scan(&typ, &n); err != nil {
			return nil, fmt.Errorf("event counts: %w", err)
		}
		counts[EventType(typ)] = n
	}
	return counts, rows.Err()
}

// GetSetting returns a stored setting, or "" if unset
func (db *DB) GetSetting(key string) string {
	var value string
	err := db.conn.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err != nil {
		if err != sql.ErrNoRows {
			log.Printf("get setting %s: %v", key, err)
		}
		return ""
	}
	return value
}

// SetSetting stores a setting, replacing any previous value
func (db *DB) SetSetting(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value,
	)
	if err != nil {
		return fmt.Errorf("set setting %s: %w", key, err)
	}
	return nil
}
