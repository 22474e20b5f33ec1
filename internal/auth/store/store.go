package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/artha/internal/auth"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) UpsertUser(ctx context.Context, email string) (*auth.User, error) {
	query := `
		INSERT INTO users (email, created_at)
		VALUES ($1, NOW())
		ON CONFLICT (email) DO UPDATE SET email = EXCLUDED.email
		RETURNING id, email, first_name, created_at
	`

	return scanUser(s.db.QueryRowContext(ctx, query, email))
}

func (s *Store) GetUser(ctx context.Context, id uuid.UUID) (*auth.User, error) {
	query := `SELECT id, email, first_name, created_at FROM users WHERE id = $1`

	user, err := scanUser(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, auth.ErrNotFound
	}

	return user, err
}

func (s *Store) CreateVerificationToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error {
	query := `
		INSERT INTO verification_tokens (token_hash, user_id, expires_at)
		VALUES ($1, $2, $3)
	`

	if _, err := s.db.ExecContext(ctx, query, tokenHash, userID, expiresAt); err != nil {
		return fmt.Errorf("creating verification token: %w", err)
	}

	return nil
}

// ConsumeVerificationToken deletes the token row, making each link
// single use. Expired rows are never returned.
func (s *Store) ConsumeVerificationToken(ctx context.Context, tokenHash string) (uuid.UUID, error) {
	query := `
		DELETE FROM verification_tokens
		WHERE token_hash = $1 AND expires_at > NOW()
		RETURNING user_id
	`

	var userID uuid.UUID
	if err := s.db.QueryRowContext(ctx, query, tokenHash).Scan(&userID); err != nil {
		if err == sql.ErrNoRows {
			return uuid.Nil, auth.ErrInvalidToken
		}

		return uuid.Nil, fmt.Errorf("consuming verification token: %w", err)
	}

	return userID, nil
}

func scanUser(row *sql.Row) (*auth.User, error) {
	var user auth.User

	var firstName sql.NullString

	if err := row.Scan(&user.ID, &user.Email, &firstName, &user.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}

		return nil, fmt.Errorf("scanning user: %w", err)
	}

	user.FirstName = firstName.String

	return &user, nil
}
