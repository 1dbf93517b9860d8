package repositories

import (
	"context"
	"sync"
	"time"

	"hotelbook/internal/domain"
)

type memoryRecord struct {
	owner     string
	payload   []byte
	expiresAt time.Time
}

// MemorySessionStore is the single-instance SessionStore.
type MemorySessionStore struct {
	mu   sync.Mutex
	data map[string]memoryRecord
	Now  func() time.Time
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{data: map[string]memoryRecord{}, Now: time.Now}
}

func memoryKey(kind SessionKind, id string) string {
	return string(kind) + "/" + id
}

func (s *MemorySessionStore) Save(_ context.Context, kind SessionKind, id, owner string, payload []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]byte, len(payload))
	copy(cp, payload)
	s.data[memoryKey(kind, id)] = memoryRecord{owner: owner, payload: cp, expiresAt: s.Now().Add(ttl)}
	return nil
}

func (s *MemorySessionStore) Load(_ context.Context, kind SessionKind, id, owner string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.data[memoryKey(kind, id)]
	if !ok || rec.owner != owner || !s.Now().Before(rec.expiresAt) {
		return nil, domain.NotFoundError{Resource: string(kind)}
	}
	cp := make([]byte, len(rec.payload))
	copy(cp, rec.payload)
	return cp, nil
}

func (s *MemorySessionStore) Delete(_ context.Context, kind SessionKind, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, memoryKey(kind, id))
	return nil
}

func (s *MemorySessionStore) PurgeExpired(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.Now()
	var n int64
	for k, rec := range s.data {
		if !now.Before(rec.expiresAt) {
			delete(s.data, k)
			n++
		}
	}
	return n, nil
}
