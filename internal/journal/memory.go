package journal

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	mdwerrors "github.com/msto63/numerik/foundation/core/errors"
)

// MemoryStore is an in-memory Store used when no journal path is configured
type MemoryStore struct {
	entries map[string]*Entry
	mu      sync.RWMutex
	now     func() time.Time
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]*Entry), now: time.Now}
}

func clone(e *Entry) *Entry {
	c := *e
	c.Log = slices.Clone(e.Log)
	return &c
}

func (s *MemoryStore) Save(_ context.Context, entry *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = s.now().UTC()
	}
	if _, exists := s.entries[entry.ID]; exists {
		return mdwerrors.JournalStorage("save", fmt.Errorf("duplicate id %s", entry.ID))
	}
	s.entries[entry.ID] = clone(entry)
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[id]
	if !ok {
		return nil, mdwerrors.JournalNotFound(id)
	}
	return clone(entry), nil
}

func (s *MemoryStore) List(_ context.Context, opts ListOptions) ([]*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := []*Entry{}
	for _, entry := range s.entries {
		if opts.Source != "" && entry.Source != opts.Source {
			continue
		}
		if !opts.Since.IsZero() && entry.CreatedAt.Before(opts.Since) {
			continue
		}
		entries = append(entries, clone(entry))
	}
	slices.SortFunc(entries, func(a, b *Entry) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})

	if opts.Limit > 0 {
		start := min(opts.Offset, len(entries))
		end := min(start+opts.Limit, len(entries))
		entries = entries[start:end]
	}
	return entries, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[id]; !ok {
		return mdwerrors.JournalNotFound(id)
	}
	delete(s.entries, id)
	return nil
}

func (s *MemoryStore) Prune(_ context.Context, olderThan time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().UTC().Add(-olderThan)
	var deleted int64
	for id, entry := range s.entries {
		if entry.CreatedAt.Before(cutoff) {
			delete(s.entries, id)
			deleted++
		}
	}
	return deleted, nil
}

func (s *MemoryStore) Ping(context.Context) error { return nil }

func (s *MemoryStore) Close() error { return nil }

var (
	_ Store = (*SQLiteStore)(nil)
	_ Store = (*MemoryStore)(nil)
)
