// Package session keeps the signed-up user between runs, in a small
// key/value table modelled on a browser's localStorage.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/unowned-ai/aoa/pkg/journal"
)

// UserKey is where the serialized user record lives.
const UserKey = "user"

var (
	ErrItemNotFound = errors.New("item not found")
	ErrCorruptUser  = errors.New("stored user is not valid JSON")
)

const (
	getItemStatement = `
	SELECT value
	FROM local_storage
	WHERE key = ?
	`

	setItemStatement = `
	INSERT INTO local_storage (key, value)
	VALUES (?, ?)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = unixepoch()
	`

	removeItemStatement = `
	DELETE FROM local_storage
	WHERE key = ?
	`

	listKeysStatement = `
	SELECT key
	FROM local_storage
	ORDER BY key
	`
)

// Store is the local storage of one installation.
type Store struct {
	db *sql.DB
}

// NewStore wraps an already migrated database.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// GetItem returns the value stored under key, or ErrItemNotFound.
func (s *Store) GetItem(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, getItemStatement, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrItemNotFound
		}
		return "", err
	}
	return value, nil
}

// SetItem stores value under key, replacing any previous value.
func (s *Store) SetItem(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, setItemStatement, key, value)
	return err
}

// RemoveItem deletes key. Removing a missing key is not an error.
func (s *Store) RemoveItem(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, removeItemStatement, key)
	return err
}

// Keys lists every stored key in order.
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, listKeysStatement)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	keys := []string{}
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return keys, nil
}

// LoadUser returns the stored user, or nil when nobody signed up on this machine.
func (s *Store) LoadUser(ctx context.Context) (*journal.User, error) {
	raw, err := s.GetItem(ctx, UserKey)
	if errors.Is(err, ErrItemNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read stored user: %w", err)
	}

	var user journal.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptUser, err)
	}
	return &user, nil
}

// SaveUser replaces the stored user wholesale.
func (s *Store) SaveUser(ctx context.Context, user journal.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}
	if err := s.SetItem(ctx, UserKey, string(raw)); err != nil {
		return fmt.Errorf("failed to store user: %w", err)
	}
	return nil
}

// ClearUser forgets the stored user.
func (s *Store) ClearUser(ctx context.Context) error {
	return s.RemoveItem(ctx, UserKey)
}
