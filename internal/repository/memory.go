package repository

import (
	"context"
	"sync"

	"github.com/dalilcare/provider-directory/internal/models"
)

// MemoryProviderStore is an in-memory ProviderStore, used by tests and as
// the second backend behind the store interface.
type MemoryProviderStore struct {
	mu        sync.RWMutex
	providers []models.Provider
}

// NewMemoryProviderStore creates a store seeded with the given providers
func NewMemoryProviderStore(providers ...models.Provider) *MemoryProviderStore {
	s := &MemoryProviderStore{}
	s.providers = append(s.providers, providers...)
	return s
}

// Add appends a provider
func (s *MemoryProviderStore) Add(p models.Provider) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.providers = append(s.providers, p)
}

// ListActive returns a copy of all providers in insertion order
func (s *MemoryProviderStore) ListActive(ctx context.Context) ([]models.Provider, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Provider, len(s.providers))
	copy(out, s.providers)
	return out, nil
}
