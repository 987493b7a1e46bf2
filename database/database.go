package database

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/lib/pq"

	"qmatch/logger"
)

var DB *sql.DB

// InitDatabase opens the postgres connection from DATABASE_URL.
func InitDatabase() error {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	var err error
	DB, err = sql.Open("postgres", dbURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %v", err)
	}

	if err := DB.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %v", err)
	}

	logger.Info("Successfully connected to database")
	return nil
}

// CreateTables creates the schema if it does not exist. Snapshots and
// price changes are append-only facts; neither table is ever updated
// in place.
func CreateTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS tracked_catalogs (
			id SERIAL PRIMARY KEY,
			catalog_no BIGINT NOT NULL UNIQUE,
			name TEXT NOT NULL DEFAULT '',
			is_active BOOLEAN DEFAULT TRUE,
			last_scraped_at TIMESTAMP,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS seller_offers (
			id SERIAL PRIMARY KEY,
			catalog_no BIGINT NOT NULL,
			seller_name TEXT NOT NULL,
			price INTEGER NOT NULL,
			item_code TEXT NOT NULL DEFAULT '',
			rank INTEGER NOT NULL,
			scraped_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS price_changes (
			id SERIAL PRIMARY KEY,
			catalog_no BIGINT NOT NULL,
			old_price INTEGER,
			new_price INTEGER NOT NULL,
			reason TEXT NOT NULL DEFAULT '',
			applied BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE INDEX IF NOT EXISTS idx_seller_offers_snap ON seller_offers (catalog_no, scraped_at)`,
		`CREATE INDEX IF NOT EXISTS idx_price_changes_chg ON price_changes (catalog_no, created_at)`,
	}

	for _, query := range queries {
		if _, err := DB.Exec(query); err != nil {
			return fmt.Errorf("failed to create table: %v", err)
		}
	}

	return nil
}

// CloseDatabase closes the database connection.
func CloseDatabase() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}
