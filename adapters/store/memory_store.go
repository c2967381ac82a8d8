package store

import (
	"context"
	"sync"
	"time"

	"github.com/hannesgao/docgate/core"
	"github.com/hannesgao/docgate/ports"
)

// MemoryStore is an in-memory challenge store for single-instance
// deployments and tests.
type MemoryStore struct {
	mu         sync.Mutex
	challenges map[string]core.Challenge
	now        func() time.Time
}

// NewMemoryStore creates an empty in-memory challenge store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		challenges: make(map[string]core.Challenge),
		now:        time.Now,
	}
}

var _ ports.ChallengeStore = (*MemoryStore)(nil)

// Save records a pending challenge.
func (s *MemoryStore) Save(ctx context.Context, ch *core.Challenge) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.challenges[ch.ID] = *ch
	return nil
}

// Consume removes and returns a challenge. A consumed or unknown ID is
// always an error, never a silent success.
func (s *MemoryStore) Consume(ctx context.Context, id string) (*core.Challenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch, ok := s.challenges[id]
	if !ok {
		return nil, core.ErrChallengeNotFound
	}
	delete(s.challenges, id)

	if s.now().After(ch.ExpiresAt) {
		return nil, core.ErrChallengeExpired
	}
	return &ch, nil
}
