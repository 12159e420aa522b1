package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application expects.
const ExpectedSchemaVersion = 2

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Reviews table",
		Up: func(tx *sql.Tx) error {
			_, err := tx.Exec(`
				CREATE TABLE IF NOT EXISTS reviews (
					id INTEGER PRIMARY KEY,
					title TEXT NOT NULL DEFAULT '',
					text TEXT NOT NULL DEFAULT '',
					review_text TEXT NOT NULL DEFAULT '',
					hometown TEXT NOT NULL DEFAULT '',
					city TEXT NOT NULL DEFAULT '',
					region TEXT NOT NULL DEFAULT '',
					country TEXT NOT NULL DEFAULT '',
					tourist_type TEXT NOT NULL,
					rating INTEGER NOT NULL,
					year INTEGER NOT NULL,
					month INTEGER NOT NULL,
					day INTEGER NOT NULL,
					date TEXT,
					emotion TEXT,
					sentiment TEXT NOT NULL,
					textblob_score REAL NOT NULL,
					vader_score REAL NOT NULL,
					composite_score REAL NOT NULL
				)
			`)
			return err
		},
	},
	{
		Version:     2,
		Description: "Facet indexes",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE INDEX IF NOT EXISTS idx_reviews_year ON reviews(year)`,
				`CREATE INDEX IF NOT EXISTS idx_reviews_sentiment ON reviews(sentiment)`,
				`CREATE INDEX IF NOT EXISTS idx_reviews_tourist_type ON reviews(tourist_type)`,
			}
			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query '%s': %w", query, err)
				}
			}
			return nil
		},
	},
}

// Migrate applies every pending migration.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	var currentVersion int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&currentVersion); err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		slog.Debug("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	var finalVersion int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&finalVersion); err != nil {
		return fmt.Errorf("failed to verify final schema version: %w", err)
	}
	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}
	return nil
}
