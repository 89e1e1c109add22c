// Package admin holds the admin registry: the set of uids allowed to
// provision riders.
package admin

import (
	"context"
	"sync"
)

// InMemory is a process-local registry seeded at start-up.
type InMemory struct {
	mu   sync.RWMutex
	uids map[string]struct{}
}

func NewInMemory(uids ...string) *InMemory {
	s := &InMemory{uids: make(map[string]struct{}, len(uids))}
	for _, uid := range uids {
		if uid != "" {
			s.uids[uid] = struct{}{}
		}
	}
	return s
}

func (s *InMemory) IsAdmin(_ context.Context, uid string) (bool, error) {
	if uid == "" {
		return false, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.uids[uid]
	return ok, nil
}

func (s *InMemory) Add(_ context.Context, uid string) error {
	if uid == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uids[uid] = struct{}{}
	return nil
}

// Seed adds every uid; it exists so all backends share the seeding shape.
func (s *InMemory) Seed(ctx context.Context, uids []string) error {
	for _, uid := range uids {
		if err := s.Add(ctx, uid); err != nil {
			return err
		}
	}
	return nil
}
