package memstore

import (
	"fmt"
	"sort"
	"sync"

	"circuitdoc/internal/adapter/store"
	"circuitdoc/internal/domain"
)

// MemoryStore is a process-local history store used when persistent
// history is disabled.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]domain.Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]domain.Record),
	}
}

func (s *MemoryStore) PutRecord(rec domain.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.Path] = rec
	return nil
}

func (s *MemoryStore) PutRecords(recs []domain.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range recs {
		s.records[rec.Path] = rec
	}
	return nil
}

func (s *MemoryStore) GetRecord(path string) (domain.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[path]
	if !ok {
		return domain.Record{}, fmt.Errorf("%w: %s", store.ErrNotFound, path)
	}
	return rec, nil
}

func (s *MemoryStore) DeleteRecord(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, path)
	return nil
}

func (s *MemoryStore) ListRecords() ([]domain.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	recs := make([]domain.Record, 0, len(s.records))
	for _, rec := range s.records {
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].Path < recs[j].Path })
	return recs, nil
}

func (s *MemoryStore) Close() error {
	return nil
}
