package handlers

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/mamadbah2/flockbook/internal/domain/apperrors"
)

// memoryStore is an in-memory RecordStore keyed by id. setID assigns the generated id.
type memoryStore[T any] struct {
	mu     sync.Mutex
	rows   map[int64]T
	nextID int64
	setID  func(rec *T, id int64)
	err    error
	writes int
}

func newMemoryStore[T any](setID func(rec *T, id int64)) *memoryStore[T] {
	return &memoryStore[T]{rows: make(map[int64]T), setID: setID}
}

func (m *memoryStore[T]) List(context.Context) ([]*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	ids := make([]int64, 0, len(m.rows))
	for id := range m.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] > ids[j] })
	out := make([]*T, 0, len(ids))
	for _, id := range ids {
		rec := m.rows[id]
		out = append(out, &rec)
	}
	return out, nil
}

func (m *memoryStore[T]) Create(_ context.Context, rec *T) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes++
	if m.err != nil {
		return nil, m.err
	}
	m.nextID++
	m.setID(rec, m.nextID)
	m.rows[m.nextID] = *rec
	return rec, nil
}

func (m *memoryStore[T]) Update(_ context.Context, id int64, rec *T) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes++
	if m.err != nil {
		return nil, m.err
	}
	if _, ok := m.rows[id]; !ok {
		return nil, errors.Join(errors.New("update"), apperrors.ErrNotFound)
	}
	m.setID(rec, id)
	m.rows[id] = *rec
	return rec, nil
}

func (m *memoryStore[T]) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes++
	if m.err != nil {
		return m.err
	}
	if _, ok := m.rows[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}
