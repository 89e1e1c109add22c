package admin

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
)

// PostgresStore reads membership from the admins table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) IsAdmin(ctx context.Context, uid string) (bool, error) {
	if uid == "" {
		return false, nil
	}
	var exists bool
	err := s.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM admins WHERE uid = $1)`, uid).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check admin: %w", err)
	}
	return exists, nil
}

func (s *PostgresStore) Add(ctx context.Context, uid string) error {
	if uid == "" {
		return nil
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO admins (uid) VALUES ($1) ON CONFLICT (uid) DO NOTHING`, uid)
	if err != nil {
		return fmt.Errorf("add admin: %w", err)
	}
	return nil
}

// Seed inserts uids in one round trip; existing rows are left alone.
func (s *PostgresStore) Seed(ctx context.Context, uids []string) error {
	valid := make([]string, 0, len(uids))
	for _, uid := range uids {
		if uid != "" {
			valid = append(valid, uid)
		}
	}
	if len(valid) == 0 {
		return nil
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO admins (uid)
		SELECT unnest($1::text[])
		ON CONFLICT (uid) DO NOTHING
	`, pq.Array(valid))
	if err != nil {
		return fmt.Errorf("seed admins: %w", err)
	}
	return nil
}
