package store

import (
	"context"
	"sync"
)

// MemoryStore keeps collections in process memory. Nothing survives a restart.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string][]byte)}
}

func (s *MemoryStore) Init(ctx context.Context) error { return nil }

func (s *MemoryStore) Load(ctx context.Context, collection string) ([]byte, error) {
	if err := validateName("load", collection); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.docs[collection]
	if !ok {
		data = append([]byte(nil), emptyCollection...)
		s.docs[collection] = data
	}
	return append([]byte(nil), data...), nil
}

func (s *MemoryStore) Save(ctx context.Context, collection string, data []byte) error {
	if err := validateName("save", collection); err != nil {
		return err
	}

	s.mu.Lock()
	s.docs[collection] = append([]byte(nil), data...)
	s.mu.Unlock()
	return nil
}
