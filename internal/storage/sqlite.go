package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/qszone/naviguard/internal/infrastructure/database"
)

// SQLiteMedium is a durable Medium backed by the cache_entries table.
// Records survive restarts — the local-storage analog.
type SQLiteMedium struct {
	db *database.DB
}

// NewSQLiteMedium creates a medium over an opened, migrated database.
func NewSQLiteMedium(db *database.DB) *SQLiteMedium {
	return &SQLiteMedium{db: db}
}

// GetItem returns the raw record for key.
func (m *SQLiteMedium) GetItem(key string) (string, bool, error) {
	var value string
	err := m.db.QueryRowContext(context.Background(),
		"SELECT value FROM cache_entries WHERE key = ?", key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading cache entry: %w", err)
	}
	return value, true, nil
}

// SetItem stores the raw record for key, overwriting any existing record.
func (m *SQLiteMedium) SetItem(key, value string) error {
	_, err := m.db.ExecContext(context.Background(),
		`INSERT INTO cache_entries (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("writing cache entry: %w", err)
	}
	return nil
}

// RemoveItem deletes the record for key.
func (m *SQLiteMedium) RemoveItem(key string) error {
	_, err := m.db.ExecContext(context.Background(),
		"DELETE FROM cache_entries WHERE key = ?", key,
	)
	if err != nil {
		return fmt.Errorf("removing cache entry: %w", err)
	}
	return nil
}

// Clear deletes every record.
func (m *SQLiteMedium) Clear() error {
	_, err := m.db.ExecContext(context.Background(), "DELETE FROM cache_entries")
	if err != nil {
		return fmt.Errorf("clearing cache entries: %w", err)
	}
	return nil
}
