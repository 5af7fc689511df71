package simulation

import (
	"sync"
)

// recordStore keeps records of one kind keyed by id. The map lock only guards
// membership; each entry has its own lock so that read-recompute-write on one
// record never blocks work on another.
type recordStore[T any] struct {
	mu    sync.RWMutex
	items map[string]*recordEntry[T]
}

type recordEntry[T any] struct {
	mu  sync.Mutex
	rec *T
}

func newRecordStore[T any]() *recordStore[T] {
	return &recordStore[T]{items: make(map[string]*recordEntry[T])}
}

func (s *recordStore[T]) put(id string, rec *T) {
	s.mu.Lock()
	s.items[id] = &recordEntry[T]{rec: rec}
	s.mu.Unlock()
}

// with runs fn while holding the lock of the record with the given id. It
// reports false when no such record exists.
func (s *recordStore[T]) with(id string, fn func(rec *T) error) (bool, error) {
	s.mu.RLock()
	entry, ok := s.items[id]
	s.mu.RUnlock()
	if !ok {
		return false, nil
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	return true, fn(entry.rec)
}

func (s *recordStore[T]) len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
