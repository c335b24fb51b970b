package journal

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory failure journal for testing and for runs
// that only need failures inspected before the process exits.
type MemoryStore struct {
	mu       sync.RWMutex
	failures []*Failure
	closed   bool
}

// NewMemoryStore creates a new in-memory failure journal.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Record implements Store.
func (m *MemoryStore) Record(_ context.Context, f *Failure) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	// Copy so later mutation by the caller cannot change the record.
	stored := *f
	m.failures = append(m.failures, &stored)
	return nil
}

// List implements Store.
func (m *MemoryStore) List(_ context.Context, listener string) ([]*Failure, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	out := make([]*Failure, 0, len(m.failures))
	for _, f := range m.failures {
		if listener != "" && f.Listener != listener {
			continue
		}
		cp := *f
		out = append(out, &cp)
	}
	return out, nil
}

// Count implements Store.
func (m *MemoryStore) Count(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return 0, ErrStoreClosed
	}
	return len(m.failures), nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.failures = nil
	return nil
}
