// Package service is the identity provider used to create rider accounts.
// It owns credentials: email uniqueness, password policy and hashing.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"pharmafinder/internal/identity/models"
	"pharmafinder/pkg/email"
	"pharmafinder/pkg/platform/sentinel"
	"pharmafinder/pkg/requestcontext"
)

const minPasswordLength = 6

type AccountStore interface {
	Create(ctx context.Context, account *models.Account) error
	FindByUID(ctx context.Context, uid string) (*models.Account, error)
	FindByEmail(ctx context.Context, address string) (*models.Account, error)
	Delete(ctx context.Context, uid string) error
	Count(ctx context.Context) (int, error)
}

type Service struct {
	accounts   AccountStore
	logger     *slog.Logger
	bcryptCost int
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithBcryptCost overrides the hashing cost. Tests use bcrypt.MinCost.
func WithBcryptCost(cost int) Option {
	return func(s *Service) {
		s.bcryptCost = cost
	}
}

func New(accounts AccountStore, opts ...Option) *Service {
	s := &Service{accounts: accounts, bcryptCost: bcrypt.DefaultCost}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateAccount registers a new credential. Provider errors (ErrInvalidEmail,
// ErrWeakPassword, ErrEmailExists, ErrInvalidName) are returned unwrapped.
func (s *Service) CreateAccount(ctx context.Context, address, password, displayName string) (*models.Account, error) {
	if !email.IsValid(address) {
		return nil, ErrInvalidEmail
	}
	if utf8.RuneCountInString(password) < minPasswordLength {
		return nil, ErrWeakPassword
	}
	if displayName == "" {
		return nil, ErrInvalidName
	}

	// Cheap lookup before hashing; the store's uniqueness check still
	// settles concurrent creates.
	if _, err := s.accounts.FindByEmail(ctx, address); err == nil {
		return nil, ErrEmailExists
	} else if !errors.Is(err, sentinel.ErrNotFound) {
		return nil, fmt.Errorf("find account by email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account := &models.Account{
		UID:          uuid.NewString(),
		Email:        address,
		DisplayName:  displayName,
		PasswordHash: string(hash),
		CreatedAt:    requestcontext.Now(ctx),
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("create account: %w", err)
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, "identity account created",
			"uid", account.UID,
			"request_id", requestcontext.RequestID(ctx),
		)
	}
	return account, nil
}

func (s *Service) GetAccount(ctx context.Context, uid string) (*models.Account, error) {
	account, err := s.accounts.FindByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return account, nil
}

// DeleteAccount removes the credential for uid.
func (s *Service) DeleteAccount(ctx context.Context, uid string) error {
	if err := s.accounts.Delete(ctx, uid); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return ErrAccountNotFound
		}
		return fmt.Errorf("delete account: %w", err)
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "identity account deleted", "uid", uid)
	}
	return nil
}

// Count returns the number of identity accounts.
func (s *Service) Count(ctx context.Context) (int, error) {
	n, err := s.accounts.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count accounts: %w", err)
	}
	return n, nil
}
