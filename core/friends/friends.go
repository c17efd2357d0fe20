// Package friends persists the per-user friends list.
package friends

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

// Store manages friend links.
type Store struct {
	db *sqlx.DB
}

// NewStore returns a friends store over the friends table.
func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// Add links a friend by username. Re-adding the same username is a no-op.
func (s *Store) Add(ctx context.Context, userID, username string) error {
	username = strings.TrimSpace(strings.TrimPrefix(username, "@"))
	if username == "" {
		return fmt.Errorf("friends: empty username")
	}
	query := `
		INSERT INTO friends (user_id, friend_username)
		VALUES ($1, $2)
		ON CONFLICT (user_id, friend_username) DO NOTHING`
	if _, err := s.db.ExecContext(ctx, query, userID, username); err != nil {
		return fmt.Errorf("friends add: %w", err)
	}
	return nil
}

// List returns the user's friends in insertion order.
func (s *Store) List(ctx context.Context, userID string) ([]string, error) {
	var names []string
	query := `SELECT friend_username FROM friends WHERE user_id = $1 ORDER BY created_at`
	if err := s.db.SelectContext(ctx, &names, query, userID); err != nil {
		return nil, fmt.Errorf("friends list: %w", err)
	}
	return names, nil
}
