// Package profile stores rider profile documents keyed by account uid.
package profile

import (
	"context"
	"sync"
	"time"

	"pharmafinder/internal/rider/models"
	"pharmafinder/pkg/platform/sentinel"
)

// Clock supplies the server timestamp for writes.
type Clock func() time.Time

// InMemory keeps profiles in process.
type InMemory struct {
	mu       sync.RWMutex
	profiles map[string]*models.RiderProfile
	clock    Clock
}

type Option func(*InMemory)

func WithClock(clock Clock) Option {
	return func(s *InMemory) {
		if clock != nil {
			s.clock = clock
		}
	}
}

func NewInMemory(opts ...Option) *InMemory {
	s := &InMemory{
		profiles: make(map[string]*models.RiderProfile),
		clock:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Put writes profile at profile.UID, replacing any existing document, and
// sets CreatedAt from the store clock.
func (s *InMemory) Put(_ context.Context, profile *models.RiderProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	profile.CreatedAt = s.clock()
	stored := *profile
	s.profiles[profile.UID] = &stored
	return nil
}

func (s *InMemory) FindByUID(_ context.Context, uid string) (*models.RiderProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[uid]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	found := *p
	return &found, nil
}

func (s *InMemory) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.profiles), nil
}
