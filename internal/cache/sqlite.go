// file: internal/cache/sqlite.go
// version: 1.0.0
// guid: e4f6a8b0-c2d4-4e6f-a8b0-c2d4e6f8a0b2

package cache

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// IdentifierStore is a small persistent cache mapping ISBNs to site item ids
// and item ids to cover URLs. It lets a cover request reuse the identify
// work of an earlier lookup across process restarts.
type IdentifierStore struct {
	db *sql.DB
}

// NewIdentifierStore opens (creating if needed) the cache database.
func NewIdentifierStore(path string) (*IdentifierStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open identifier cache: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping identifier cache: %w", err)
	}
	s := &IdentifierStore{db: db}
	if err := s.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create cache tables: %w", err)
	}
	return s, nil
}

func (s *IdentifierStore) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS isbn_items (
		isbn TEXT PRIMARY KEY,
		item_id TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS item_covers (
		item_id TEXT PRIMARY KEY,
		cover_url TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// RememberISBN records the item id a lookup resolved for an ISBN.
func (s *IdentifierStore) RememberISBN(isbn, itemID string) error {
	_, err := s.db.Exec(
		`INSERT INTO isbn_items (isbn, item_id) VALUES (?, ?)
		 ON CONFLICT(isbn) DO UPDATE SET item_id = excluded.item_id`,
		isbn, itemID)
	return err
}

// ItemIDForISBN returns the cached item id, or "" when unknown.
func (s *IdentifierStore) ItemIDForISBN(isbn string) (string, error) {
	var itemID string
	err := s.db.QueryRow(`SELECT item_id FROM isbn_items WHERE isbn = ?`, isbn).Scan(&itemID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return itemID, nil
}

// RememberCoverURL records the cover URL a lookup found for an item.
func (s *IdentifierStore) RememberCoverURL(itemID, coverURL string) error {
	_, err := s.db.Exec(
		`INSERT INTO item_covers (item_id, cover_url) VALUES (?, ?)
		 ON CONFLICT(item_id) DO UPDATE SET cover_url = excluded.cover_url`,
		itemID, coverURL)
	return err
}

// CoverURLForItemID returns the cached cover URL, or "" when unknown.
func (s *IdentifierStore) CoverURLForItemID(itemID string) (string, error) {
	var coverURL string
	err := s.db.QueryRow(`SELECT cover_url FROM item_covers WHERE item_id = ?`, itemID).Scan(&coverURL)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return coverURL, nil
}

// Close closes the underlying database.
func (s *IdentifierStore) Close() error {
	return s.db.Close()
}
