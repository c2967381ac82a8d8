package docstore

import (
	"context"
	"sync"

	"github.com/hannesgao/docgate/core"
	"github.com/hannesgao/docgate/ports"
)

// MemoryStore is an in-memory document store, primarily for tests.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]core.EncryptedDocument
}

// NewMemoryStore creates an empty in-memory document store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]core.EncryptedDocument)}
}

var _ ports.DocumentStore = (*MemoryStore)(nil)

// Get returns the encrypted document for id.
func (s *MemoryStore) Get(ctx context.Context, id string) (*core.EncryptedDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[id]
	if !ok {
		return nil, core.ErrContentNotFound
	}
	return &doc, nil
}

// Put stores an encrypted document under id.
func (s *MemoryStore) Put(ctx context.Context, id string, doc *core.EncryptedDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.docs[id] = *doc
	return nil
}
