package store

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/matzehuels/ringgauge/pkg/observability"
)

const backendMemory = "memory"

// MemoryStore keeps snapshots in a map.
type MemoryStore struct {
	mu        sync.RWMutex
	snapshots map[string]*Snapshot
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{snapshots: make(map[string]*Snapshot)}
}

// Save implements Store.
func (m *MemoryStore) Save(ctx context.Context, s *Snapshot) error {
	start := time.Now()
	if err := ValidateID(s.ID); err != nil {
		return err
	}
	cp := *s
	m.mu.Lock()
	m.snapshots[s.ID] = &cp
	m.mu.Unlock()
	observability.Store().OnSave(ctx, backendMemory, s.ID, time.Since(start), nil)
	return nil
}

// Get implements Store.
func (m *MemoryStore) Get(ctx context.Context, id string) (*Snapshot, error) {
	start := time.Now()
	m.mu.RLock()
	s, ok := m.snapshots[id]
	m.mu.RUnlock()
	observability.Store().OnLoad(ctx, backendMemory, id, ok, time.Since(start))
	if !ok {
		return nil, notFound(id)
	}
	cp := *s
	return &cp, nil
}

// List implements Store.
func (m *MemoryStore) List(ctx context.Context, limit int) ([]*Snapshot, error) {
	m.mu.RLock()
	out := make([]*Snapshot, 0, len(m.snapshots))
	for _, s := range m.snapshots {
		cp := *s
		out = append(out, &cp)
	}
	m.mu.RUnlock()

	slices.SortFunc(out, func(a, b *Snapshot) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	if n := listLimit(limit); len(out) > n {
		out = out[:n]
	}
	return out, nil
}

// Delete implements Store. Deleting an unknown ID is not an error.
func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	delete(m.snapshots, id)
	m.mu.Unlock()
	return nil
}

// Close implements Store.
func (m *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
