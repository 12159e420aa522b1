// Package storage exposes labeled reviews as a SQLite table for ad-hoc SQL.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Veraticus/museum-pulse/internal/model"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// SQLiteStorage holds the reviews table.
type SQLiteStorage struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStorage opens (or creates) the database at dbPath.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}

	dsn := MemoryPath
	if dbPath != MemoryPath {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		dsn = dbPath + "?_journal_mode=WAL&_busy_timeout=5000"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection keeps an in-memory database alive and shared.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteStorage{db: db, dbPath: dbPath}, nil
}

// OpenMemory creates a migrated in-memory database holding reviews.
func OpenMemory(ctx context.Context, reviews []model.LabeledReview) (*SQLiteStorage, error) {
	s, err := NewSQLiteStorage(MemoryPath)
	if err != nil {
		return nil, err
	}
	if err := s.Migrate(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	if len(reviews) > 0 {
		if err := s.SaveReviews(ctx, reviews); err != nil {
			_ = s.Close()
			return nil, err
		}
	}
	return s, nil
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
