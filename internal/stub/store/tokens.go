package store

import (
	"context"
	"time"
)

// RevokeToken records a logged-out token id so the auth middleware rejects
// it for the rest of its lifetime.
func (s *Store) RevokeToken(ctx context.Context, tokenID string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO revoked_tokens (token_id, revoked_at) VALUES (?, ?)`,
		tokenID, time.Now().UTC(),
	)
	return err
}

// IsTokenRevoked reports whether a token id was logged out.
func (s *Store) IsTokenRevoked(ctx context.Context, tokenID string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM revoked_tokens WHERE token_id = ?`, tokenID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
