// Package store keeps decks, players and games as records keyed by
// identifier and persists them as a JSON snapshot file.
package store

import (
	"slices"
	"strings"
	"sync"
	"time"
)

// Entity is anything stored by identifier.
type Entity interface {
	ID() string
}

// Record wraps a stored entity with its bookkeeping timestamps.
type Record[T Entity] struct {
	Value     T
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ID returns the identifier of the wrapped entity
func (r Record[T]) ID() string {
	return r.Value.ID()
}

// Repository holds records of one entity kind. It is safe for concurrent use;
// the entities themselves are not.
type Repository[T Entity] struct {
	mu      sync.RWMutex
	records map[string]Record[T]
}

func newRepository[T Entity]() *Repository[T] {
	return &Repository[T]{records: make(map[string]Record[T])}
}

// Get returns the record stored under id
func (r *Repository[T]) Get(id string) (Record[T], bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.records[id]
	return rec, ok
}

// Put inserts or replaces a record
func (r *Repository[T]) Put(rec Record[T]) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[rec.ID()] = rec
}

// Delete removes the record stored under id and reports whether it existed
func (r *Repository[T]) Delete(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[id]; !ok {
		return false
	}
	delete(r.records, id)
	return true
}

// Exists reports whether a record is stored under id
func (r *Repository[T]) Exists(id string) bool {
	_, ok := r.Get(id)
	return ok
}

// Len returns the number of stored records
func (r *Repository[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}

// List returns every record, oldest first. Records created at the same
// instant are ordered by ID.
func (r *Repository[T]) List() []Record[T] {
	r.mu.RLock()
	out := make([]Record[T], 0, len(r.records))
	for _, rec := range r.records {
		out = append(out, rec)
	}
	r.mu.RUnlock()

	slices.SortFunc(out, func(a, b Record[T]) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID(), b.ID())
	})
	return out
}
