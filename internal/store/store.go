package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// ErrNotFound is returned by Load when no document exists under the key.
var ErrNotFound = errors.New("document not found")

// Store persists named JSON documents in a single SQLite table. Each
// key is an independent document; there is no transaction spanning two
// Save calls.
type Store struct {
	db *sqlx.DB
}

// New constructs a Store over an open database.
func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// Load reads the document stored under key into dest. It returns
// ErrNotFound for an absent key and a decode error for malformed
// stored text; the caller decides what fallback to use in either case.
func (s *Store) Load(key string, dest any) error {
	var raw string
	err := s.db.Get(&raw, `SELECT value FROM documents WHERE key = $1`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

// Save encodes value and writes it under key, replacing any previous
// document.
func (s *Store) Save(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	_, err = s.db.Exec(`INSERT INTO documents (key, value, updated_at) VALUES ($1, $2, CURRENT_TIMESTAMP)
                ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`, key, string(raw))
	return err
}
