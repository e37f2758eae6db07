package main

import (
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

var db *sql.DB

func initDB(path string) error {
	// Close previous connection if any (prevents goroutine leaks in tests)
	if db != nil {
		db.Close()
	}
	var err error
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	db, err = sql.Open("sqlite", path+sep+"_journal_mode=WAL&_busy_timeout=10000&_foreign_keys=1")
	if err != nil {
		return err
	}

	// SQLite handles 1 writer + multiple readers with WAL mode
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(0)

	// Explicitly set WAL mode (some drivers don't parse connection string params correctly)
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("enable WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout=30000"); err != nil {
		return fmt.Errorf("set busy_timeout: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return fmt.Errorf("enable foreign keys: %w", err)
	}

	return runMigrations()
}

func runMigrations() error {
	tables := []string{
		`CREATE TABLE IF NOT EXISTS quotation_lists (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			status TEXT DEFAULT 'open' CHECK(status IN ('open','finalized')),
			version INTEGER NOT NULL DEFAULT 1,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS list_products (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			list_id TEXT NOT NULL,
			position INTEGER NOT NULL,
			internal_code TEXT NOT NULL,
			description TEXT NOT NULL,
			barcode TEXT NOT NULL,
			UNIQUE(list_id, internal_code),
			FOREIGN KEY (list_id) REFERENCES quotation_lists(id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS supplier_responses (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			list_id TEXT NOT NULL,
			supplier_name TEXT NOT NULL,
			internal_code TEXT NOT NULL,
			price_text TEXT DEFAULT '',
			UNIQUE(list_id, supplier_name, internal_code),
			FOREIGN KEY (list_id) REFERENCES quotation_lists(id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS response_links (
			id TEXT PRIMARY KEY,
			list_id TEXT NOT NULL,
			supplier_name TEXT NOT NULL,
			token TEXT NOT NULL UNIQUE,
			status TEXT DEFAULT 'pending' CHECK(status IN ('pending','responded')),
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (list_id) REFERENCES quotation_lists(id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS audit_log (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			actor TEXT DEFAULT '',
			action TEXT NOT NULL,
			module TEXT NOT NULL,
			record_id TEXT NOT NULL,
			summary TEXT DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_list_products_list ON list_products(list_id, position)`,
		`CREATE INDEX IF NOT EXISTS idx_responses_list ON supplier_responses(list_id)`,
		`CREATE INDEX IF NOT EXISTS idx_links_list ON response_links(list_id)`,
	}
	for _, t := range tables {
		if _, err := db.Exec(t); err != nil {
			return fmt.Errorf("migration: %w", err)
		}
	}
	return nil
}
