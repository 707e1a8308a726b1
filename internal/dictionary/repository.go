package dictionary

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// SourceTypeWordsAPI marks rows fetched from WordsAPI.
const SourceTypeWordsAPI = "words_api"

// response is read back byte for byte. word compares in binary, keeping
// keys that differ only in case or accents apart.
const createDictionaryEntriesTable = `CREATE TABLE IF NOT EXISTS dictionary_entries (
	word VARCHAR(255) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin NOT NULL PRIMARY KEY,
	source_type VARCHAR(64) NOT NULL,
	response LONGTEXT CHARACTER SET utf8mb4 NOT NULL,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
)`

// DBCache implements Store using MySQL.
type DBCache struct {
	db *sqlx.DB
}

var _ Store = (*DBCache)(nil)

// NewDBCache creates a new DBCache.
func NewDBCache(db *sqlx.DB) *DBCache {
	return &DBCache{db: db}
}

// Prepare creates the dictionary_entries table if needed.
func (r *DBCache) Prepare(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createDictionaryEntriesTable); err != nil {
		return fmt.Errorf("db.ExecContext(create dictionary_entries) > %w", err)
	}
	return nil
}

// Read returns the cached response for a key.
func (r *DBCache) Read(ctx context.Context, key LookupKey) (string, error) {
	var response string
	err := r.db.GetContext(ctx, &response, "SELECT response FROM dictionary_entries WHERE word = ?", key.String())
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: %s", ErrCacheMiss, key)
	}
	if err != nil {
		return "", fmt.Errorf("%w: db.GetContext(dictionary_entry) > %w", ErrCacheMiss, err)
	}
	return response, nil
}

// Write inserts or replaces the cached response for a key.
func (r *DBCache) Write(ctx context.Context, key LookupKey, payload string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO dictionary_entries (word, source_type, response)
		VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE source_type = VALUES(source_type), response = VALUES(response)`,
		key.String(), SourceTypeWordsAPI, payload)
	if err != nil {
		return fmt.Errorf("db.ExecContext(upsert dictionary_entry) > %w", err)
	}
	return nil
}

// ReadAll returns all cached entries, most recently updated first.
func (r *DBCache) ReadAll(ctx context.Context) ([]CacheEntry, error) {
	var entries []CacheEntry
	if err := r.db.SelectContext(ctx, &entries,
		"SELECT word, response, updated_at FROM dictionary_entries ORDER BY updated_at DESC, word"); err != nil {
		return nil, fmt.Errorf("db.SelectContext(dictionary_entries) > %w", err)
	}
	return entries, nil
}

// Delete removes the cached response for a key.
func (r *DBCache) Delete(ctx context.Context, key LookupKey) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM dictionary_entries WHERE word = ?", key.String())
	if err != nil {
		return fmt.Errorf("db.ExecContext(delete dictionary_entry) > %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("result.RowsAffected > %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrCacheMiss, key)
	}
	return nil
}
