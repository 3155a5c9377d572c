package store

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore is an in-process [UserStore] for tests and examples. Records
// are kept in serialized form so Get/Put copy semantics match RedisStore.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string][]byte
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string][]byte),
	}
}

// Get implements [UserStore].
func (s *MemoryStore) Get(_ context.Context, username string) (*UserRecord, error) {
	s.mu.RLock()
	data, ok := s.records[username]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrUserNotFound
	}

	record, err := decodeUserRecord(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRecordCorrupt, err)
	}

	return record, nil
}

// Put implements [UserStore].
func (s *MemoryStore) Put(_ context.Context, record *UserRecord) error {
	encoded, err := encodeUserRecord(record)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.records[record.Username] = encoded
	s.mu.Unlock()

	return nil
}

// Create implements [UserStore].
func (s *MemoryStore) Create(_ context.Context, record *UserRecord) error {
	encoded, err := encodeUserRecord(record)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[record.Username]; ok {
		return ErrUserExists
	}
	s.records[record.Username] = encoded

	return nil
}

// Delete implements [UserStore].
func (s *MemoryStore) Delete(_ context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[username]; !ok {
		return ErrUserNotFound
	}
	delete(s.records, username)

	return nil
}

// Exists implements [UserStore].
func (s *MemoryStore) Exists(_ context.Context, username string) (bool, error) {
	s.mu.RLock()
	_, ok := s.records[username]
	s.mu.RUnlock()

	return ok, nil
}
