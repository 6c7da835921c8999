package repository

import (
	"context"
	"sync"
	"time"
)

type memoryCart struct {
	payload   []byte
	expiresAt time.Time
}

// MemoryCartsRepository keeps cart records in process memory. It backs
// local runs and tests when no MongoDB URI is configured.
type MemoryCartsRepository struct {
	mu    sync.RWMutex
	carts map[string]memoryCart
	now   func() time.Time
}

// NewMemoryCartsRepository creates an empty in-memory cart store.
func NewMemoryCartsRepository() *MemoryCartsRepository {
	return &MemoryCartsRepository{
		carts: make(map[string]memoryCart),
		now:   time.Now,
	}
}

// NewMemoryCartsRepositoryWithClock creates an empty store that evaluates
// expiry against now.
func NewMemoryCartsRepositoryWithClock(now func() time.Time) *MemoryCartsRepository {
	r := NewMemoryCartsRepository()
	if now != nil {
		r.now = now
	}
	return r
}

// Get returns a copy of the payload stored under key.
func (r *MemoryCartsRepository) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	entry, ok := r.carts[key]
	r.mu.RUnlock()

	if !ok {
		return nil, ErrCartNotFound
	}
	if !r.now().Before(entry.expiresAt) {
		r.mu.Lock()
		if current, still := r.carts[key]; still && current.expiresAt.Equal(entry.expiresAt) {
			delete(r.carts, key)
		}
		r.mu.Unlock()
		return nil, ErrCartNotFound
	}

	out := make([]byte, len(entry.payload))
	copy(out, entry.payload)
	return out, nil
}

// Put stores a copy of payload under key.
func (r *MemoryCartsRepository) Put(ctx context.Context, key string, payload []byte, expiresAt time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	stored := make([]byte, len(payload))
	copy(stored, payload)

	r.mu.Lock()
	r.carts[key] = memoryCart{payload: stored, expiresAt: expiresAt}
	r.mu.Unlock()
	return nil
}

// Delete removes the record under key.
func (r *MemoryCartsRepository) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	delete(r.carts, key)
	r.mu.Unlock()
	return nil
}

// Len returns the number of stored records, including expired ones not yet read.
func (r *MemoryCartsRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.carts)
}
