package cache

import (
	"context"
	"sync"

	"github.com/amirasaad/crowdfund/pkg/cache"
)

// MemoryTokenStore implements TokenStore in process memory. Tokens are lost
// on restart.
type MemoryTokenStore struct {
	mu     sync.RWMutex
	tokens *cache.Tokens
}

// NewMemoryTokenStore creates an empty in-memory token store.
func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

// Load returns a copy of the stored tokens.
func (s *MemoryTokenStore) Load(_ context.Context) (*cache.Tokens, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.tokens == nil {
		return nil, nil
	}
	cp := *s.tokens
	return &cp, nil
}

// Save replaces the stored tokens.
func (s *MemoryTokenStore) Save(_ context.Context, t *cache.Tokens) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *t
	s.tokens = &cp
	return nil
}

// Clear forgets the stored tokens.
func (s *MemoryTokenStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = nil
	return nil
}

var _ cache.TokenStore = (*MemoryTokenStore)(nil)
