package memstore

import (
	"fmt"
	"sync"

	"ngramlp/internal/domain"
	"ngramlp/internal/port"
)

// MemoryStore keeps a converted table in process memory.
type MemoryStore struct {
	mu     sync.RWMutex
	table  domain.Table
	counts map[string]int64
	stats  *domain.TableStats
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		counts: make(map[string]int64),
	}
}

func (s *MemoryStore) SaveTable(table domain.Table, stats domain.TableStats, progress func(done, total int)) error {
	counts := make(map[string]int64, len(table.Entries))
	for i, e := range table.Entries {
		if _, ok := counts[e.NGram]; ok {
			return fmt.Errorf("duplicate n-gram %q at entry %d", e.NGram, i+1)
		}
		counts[e.NGram] = e.Count
	}

	entries := make([]domain.Entry, len(table.Entries))
	copy(entries, table.Entries)

	s.mu.Lock()
	s.table = domain.Table{Entries: entries, Total: table.Total}
	s.counts = counts
	s.stats = &stats
	s.mu.Unlock()

	if progress != nil {
		progress(len(entries), len(entries))
	}
	return nil
}

func (s *MemoryStore) LoadTable() (domain.Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.stats == nil {
		return domain.Table{}, fmt.Errorf("memory store: no table saved")
	}
	entries := make([]domain.Entry, len(s.table.Entries))
	copy(entries, s.table.Entries)
	return domain.Table{Entries: entries, Total: s.table.Total}, nil
}

func (s *MemoryStore) GetStats() (domain.TableStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.stats == nil {
		return domain.TableStats{}, fmt.Errorf("memory store: no table saved")
	}
	return *s.stats, nil
}

func (s *MemoryStore) GetCount(ngram string) (int64, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count, ok := s.counts[ngram]
	return count, ok, nil
}

func (s *MemoryStore) Close() error {
	return nil
}

var _ port.TableStore = (*MemoryStore)(nil)
