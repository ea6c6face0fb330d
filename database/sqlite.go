package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// OpenSQLite opens (or creates) the embedded store and applies the schema.
// Use ":memory:" for a throwaway database.
func OpenSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	// A single connection serialises writers, which is what the booking
	// append relies on. It also keeps ":memory:" databases alive.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite migration failed: %w", err)
	}
	return db, nil
}

func migrate(db *sql.DB) error {
	pragmas := []string{
		`PRAGMA journal_mode=WAL`,
		`PRAGMA foreign_keys=ON`,
		`PRAGMA busy_timeout=5000`,
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("failed to apply %q: %w", p, err)
		}
	}

	queries := []string{
		`CREATE TABLE IF NOT EXISTS members (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			phone TEXT NOT NULL DEFAULT '',
			password_hash TEXT NOT NULL,
			role TEXT NOT NULL DEFAULT 'member',
			balance REAL NOT NULL DEFAULT 0,
			joined_at DATETIME NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS bookings (
			id TEXT PRIMARY KEY,
			member_id TEXT NOT NULL,
			date TEXT NOT NULL,
			start_minute INTEGER NOT NULL,
			duration_hours INTEGER NOT NULL CHECK (duration_hours > 0),
			partner_name TEXT NOT NULL DEFAULT '',
			game_type TEXT NOT NULL DEFAULT '',
			amount_due REAL NOT NULL,
			status TEXT NOT NULL,
			created_at DATETIME NOT NULL,
			FOREIGN KEY(member_id) REFERENCES members(id)
		)`,
		`CREATE TABLE IF NOT EXISTS statements (
			id TEXT PRIMARY KEY,
			member_id TEXT NOT NULL,
			year INTEGER NOT NULL,
			month INTEGER NOT NULL,
			hours INTEGER NOT NULL,
			amount REAL NOT NULL,
			status TEXT NOT NULL,
			created_at DATETIME NOT NULL,
			paid_at DATETIME,
			FOREIGN KEY(member_id) REFERENCES members(id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_date ON bookings(date, start_minute)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_member ON bookings(member_id)`,
		`CREATE INDEX IF NOT EXISTS idx_statements_period ON statements(year, month)`,
	}
	for _, q := range queries {
		if _, err := db.Exec(q); err != nil {
			return fmt.Errorf("failed to execute migration query: %w", err)
		}
	}
	return nil
}

// SQLiteTimeout bounds individual statements the same way Mongo calls are bounded.
const SQLiteTimeout = 5 * time.Second
