package cart

import (
	"context"
	"encoding/json"
	"sync"
)

type memoryStore struct {
	mu    sync.RWMutex
	carts map[string]map[string]json.RawMessage
}

// NewMemoryStore creates an in-process cart store. Used in tests and
// when no Redis address is configured.
func NewMemoryStore() Store {
	return &memoryStore{carts: make(map[string]map[string]json.RawMessage)}
}

func (s *memoryStore) Get(ctx context.Context, session string) (map[string]json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make(map[string]json.RawMessage, len(s.carts[session]))
	for k, v := range s.carts[session] {
		entries[k] = v
	}
	return entries, nil
}

func (s *memoryStore) Save(ctx context.Context, session string, entries map[string]Entry) error {
	raw := make(map[string]json.RawMessage, len(entries))
	for k, v := range entries {
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		raw[k] = b
	}

	s.mu.Lock()
	s.carts[session] = raw
	s.mu.Unlock()
	return nil
}

func (s *memoryStore) Clear(ctx context.Context, session string) error {
	s.mu.Lock()
	delete(s.carts, session)
	s.mu.Unlock()
	return nil
}

// Seed writes raw JSON values directly, bypassing the canonical Entry
// form. Tests use it to simulate legacy session state.
func (s *memoryStore) Seed(session string, raw map[string]json.RawMessage) {
	s.mu.Lock()
	s.carts[session] = raw
	s.mu.Unlock()
}
