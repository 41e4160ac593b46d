package storage

import (
	"context"
	"sync"
)

// MemoryStore is an in-process RecordStore, used by tests and by `status`
// runs that must not touch the persisted record.
type MemoryStore struct {
	mu     sync.Mutex
	record NotificationRecord

	LoadErr error
	SaveErr error
	Saves   int
}

func NewMemoryStore(initial NotificationRecord) *MemoryStore {
	return &MemoryStore{record: initial.Clone()}
}

func (s *MemoryStore) Load(ctx context.Context) (NotificationRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.LoadErr != nil {
		return nil, s.LoadErr
	}
	return s.record.Clone(), nil
}

func (s *MemoryStore) Save(ctx context.Context, record NotificationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.record = record.Clone()
	s.Saves++
	return nil
}

// Snapshot returns a copy of the current record.
func (s *MemoryStore) Snapshot() NotificationRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.record.Clone()
}

var _ RecordStore = (*MemoryStore)(nil)
