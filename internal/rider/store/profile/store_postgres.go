package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"pharmafinder/internal/rider/models"
	"pharmafinder/pkg/platform/sentinel"
)

// PostgresStore persists profiles in the riders table. created_at is taken
// from the database clock.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Put upserts the profile and reads back the server-assigned timestamp.
func (s *PostgresStore) Put(ctx context.Context, profile *models.RiderProfile) error {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO riders (uid, name, email, created_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (uid) DO UPDATE SET
			name = EXCLUDED.name,
			email = EXCLUDED.email,
			created_at = EXCLUDED.created_at
		RETURNING created_at
	`, profile.UID, profile.Name, profile.Email).Scan(&profile.CreatedAt)
	if err != nil {
		return fmt.Errorf("write rider profile: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByUID(ctx context.Context, uid string) (*models.RiderProfile, error) {
	var p models.RiderProfile
	err := s.db.QueryRowContext(ctx, `
		SELECT uid, name, email, created_at FROM riders WHERE uid = $1
	`, uid).Scan(&p.UID, &p.Name, &p.Email, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find rider profile: %w", err)
	}
	return &p, nil
}

func (s *PostgresStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM riders`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count rider profiles: %w", err)
	}
	return n, nil
}
