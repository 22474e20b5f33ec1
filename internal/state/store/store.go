package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/artha/internal/state"
)

// Store persists one state blob per user in Postgres.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Get loads the user's state blob. A user with no saved state yet
// gets a default state, mirroring the first-run file behaviour.
func (s *Store) Get(ctx context.Context, userID uuid.UUID) (*state.App, error) {
	query := `SELECT blob FROM user_states WHERE user_id = $1`

	var blob []byte
	if err := s.db.QueryRowContext(ctx, query, userID).Scan(&blob); err != nil {
		if err == sql.ErrNoRows {
			return state.Default(), nil
		}

		return nil, fmt.Errorf("getting state: %w", err)
	}

	var app state.App
	if err := json.Unmarshal(blob, &app); err != nil {
		return nil, fmt.Errorf("decoding state blob: %w", err)
	}

	return &app, nil
}

// Save upserts the user's state blob.
func (s *Store) Save(ctx context.Context, userID uuid.UUID, app *state.App) error {
	blob, err := json.Marshal(app)
	if err != nil {
		return fmt.Errorf("encoding state blob: %w", err)
	}

	query := `
		INSERT INTO user_states (user_id, blob, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id) DO UPDATE SET blob = EXCLUDED.blob, updated_at = NOW()
	`

	if _, err := s.db.ExecContext(ctx, query, userID, blob); err != nil {
		return fmt.Errorf("saving state: %w", err)
	}

	return nil
}
