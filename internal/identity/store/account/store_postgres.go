package account

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"pharmafinder/internal/identity/models"
	"pharmafinder/pkg/platform/sentinel"
)

const uniqueViolation = "23505"

// PostgresStore persists accounts in identity_accounts. Email uniqueness is
// enforced by the unique index on lower(email).
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, account *models.Account) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO identity_accounts (uid, email, display_name, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, account.UID, account.Email, account.DisplayName, account.PasswordHash, account.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("%w: %s", sentinel.ErrAlreadyUsed, pgErr.ConstraintName)
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByUID(ctx context.Context, uid string) (*models.Account, error) {
	return s.findOne(ctx, `
		SELECT uid, email, display_name, password_hash, created_at
		FROM identity_accounts WHERE uid = $1
	`, uid)
}

func (s *PostgresStore) FindByEmail(ctx context.Context, address string) (*models.Account, error) {
	return s.findOne(ctx, `
		SELECT uid, email, display_name, password_hash, created_at
		FROM identity_accounts WHERE lower(email) = lower($1)
	`, address)
}

func (s *PostgresStore) findOne(ctx context.Context, query string, arg string) (*models.Account, error) {
	var a models.Account
	err := s.db.QueryRowContext(ctx, query, arg).Scan(&a.UID, &a.Email, &a.DisplayName, &a.PasswordHash, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find account: %w", err)
	}
	return &a, nil
}

func (s *PostgresStore) Delete(ctx context.Context, uid string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM identity_accounts WHERE uid = $1`, uid)
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM identity_accounts`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count accounts: %w", err)
	}
	return n, nil
}
