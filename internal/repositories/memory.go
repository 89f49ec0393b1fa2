package repositories

import "sync"

// MemoryKVStore is an in-process KVStore used by tests and as a fallback
// when no database path is configured.
type MemoryKVStore struct {
	mu    sync.RWMutex
	slots map[string]string
}

func NewMemoryKVStore() *MemoryKVStore {
	return &MemoryKVStore{slots: make(map[string]string)}
}

// Get implements KVStore.
func (s *MemoryKVStore) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.slots[key]
	return value, ok, nil
}

// Set implements KVStore.
func (s *MemoryKVStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.slots[key] = value
	return nil
}

// Remove implements KVStore.
func (s *MemoryKVStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.slots, key)
	return nil
}
