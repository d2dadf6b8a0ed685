package lifecycle

import (
	"context"
	"sync"
	"time"
)

// MemoryRepository keeps records in a process-local map. Reads return copies, and
// List returns records in insertion order.
type MemoryRepository[T any, S ~string] struct {
	schema Schema[T, S]

	mu      sync.RWMutex
	records map[string]T
	order   []string
}

func NewMemoryRepository[T any, S ~string](schema Schema[T, S]) *MemoryRepository[T, S] {
	return &MemoryRepository[T, S]{
		schema:  schema,
		records: make(map[string]T),
	}
}

func (r *MemoryRepository[T, S]) Insert(ctx context.Context, rec T) error {
	id := r.schema.ID(rec)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.records[id]; exists {
		return ErrDuplicateID
	}
	r.records[id] = rec
	r.order = append(r.order, id)
	return nil
}

func (r *MemoryRepository[T, S]) GetByID(ctx context.Context, id string) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[id]
	if !ok {
		var zero T
		return zero, r.schema.NotFound
	}
	return rec, nil
}

func (r *MemoryRepository[T, S]) List(ctx context.Context) ([]T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]T, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.records[id])
	}
	return out, nil
}

func (r *MemoryRepository[T, S]) UpdateStatus(ctx context.Context, id string, status S, at time.Time, guard Guard[S]) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[id]
	if !ok {
		var zero T
		return zero, r.schema.NotFound
	}

	if guard != nil {
		if err := guard(r.schema.Status(rec)); err != nil {
			var zero T
			return zero, err
		}
	}

	r.schema.SetStatus(&rec, status, at)
	r.records[id] = rec
	return rec, nil
}

// Len returns the number of stored records.
func (r *MemoryRepository[T, S]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}
