package otp

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is a process-local OTP store used in development when no
// Redis address is configured, and by tests. Records are lost on
// restart, which is acceptable only because codes are short-lived.
type MemoryStore struct {
	mu      sync.Mutex
	records map[string]memoryRecord
}

type memoryRecord struct {
	rec       Record
	expiresAt time.Time
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory OTP store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]memoryRecord)}
}

// Save stores the record, overwriting any previous one for the destination.
func (s *MemoryStore) Save(ctx context.Context, destination string, rec Record, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[destination] = memoryRecord{rec: rec, expiresAt: time.Now().Add(ttl)}
	return nil
}

// Get returns the record for destination or ErrNotFound. Records past
// their TTL are evicted lazily.
func (s *MemoryStore) Get(ctx context.Context, destination string) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.records[destination]
	if !ok {
		return Record{}, ErrNotFound
	}
	if time.Now().After(entry.expiresAt) {
		delete(s.records, destination)
		return Record{}, ErrNotFound
	}
	return entry.rec, nil
}

// Delete removes the record for destination.
func (s *MemoryStore) Delete(ctx context.Context, destination string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, destination)
	return nil
}
