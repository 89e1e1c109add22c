package account

import (
	"context"
	"sync"

	"pharmafinder/internal/identity/models"
	"pharmafinder/pkg/email"
	"pharmafinder/pkg/platform/sentinel"
)

// InMemory keeps accounts in process. Email uniqueness is case-insensitive.
type InMemory struct {
	mu      sync.RWMutex
	byUID   map[string]*models.Account
	byEmail map[string]string
}

func NewInMemory() *InMemory {
	return &InMemory{
		byUID:   make(map[string]*models.Account),
		byEmail: make(map[string]string),
	}
}

func (s *InMemory) Create(_ context.Context, account *models.Account) error {
	key := email.Normalize(account.Email)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.byEmail[key]; taken {
		return sentinel.ErrAlreadyUsed
	}
	if _, taken := s.byUID[account.UID]; taken {
		return sentinel.ErrAlreadyUsed
	}
	stored := *account
	s.byUID[account.UID] = &stored
	s.byEmail[key] = account.UID
	return nil
}

func (s *InMemory) FindByUID(_ context.Context, uid string) (*models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	account, ok := s.byUID[uid]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	found := *account
	return &found, nil
}

func (s *InMemory) FindByEmail(ctx context.Context, address string) (*models.Account, error) {
	s.mu.RLock()
	uid, ok := s.byEmail[email.Normalize(address)]
	s.mu.RUnlock()
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return s.FindByUID(ctx, uid)
}

func (s *InMemory) Delete(_ context.Context, uid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	account, ok := s.byUID[uid]
	if !ok {
		return sentinel.ErrNotFound
	}
	delete(s.byEmail, email.Normalize(account.Email))
	delete(s.byUID, uid)
	return nil
}

func (s *InMemory) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byUID), nil
}
