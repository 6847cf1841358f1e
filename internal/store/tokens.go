package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

func (s *Store) SaveRefreshToken(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO refresh_tokens (user_id, token, expires_at)
		VALUES ($1, $2, $3)
	`, userID, token, expiresAt.UTC())
	if err != nil {
		return fmt.Errorf("save refresh token: %w", err)
	}
	return nil
}

// RotateRefreshToken swaps old for next in one transaction. It returns
// ErrNotFound when old is unknown, expired, or owned by another user.
func (s *Store) RotateRefreshToken(ctx context.Context, userID int64, old, next string, expiresAt time.Time) error {
	return s.tx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, `
			DELETE FROM refresh_tokens
			WHERE token = $1 AND user_id = $2 AND expires_at > $3
		`, old, userID, s.now())
		if err != nil {
			return fmt.Errorf("delete refresh token: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("delete refresh token: %w", err)
		}
		if n == 0 {
			return notFound("refresh token")
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO refresh_tokens (user_id, token, expires_at)
			VALUES ($1, $2, $3)
		`, userID, next, expiresAt.UTC())
		if err != nil {
			return fmt.Errorf("insert refresh token: %w", err)
		}
		return nil
	})
}

func (s *Store) RevokeRefreshToken(ctx context.Context, userID int64, token string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM refresh_tokens WHERE token = $1 AND user_id = $2`, token, userID)
	if err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}
	return nil
}
