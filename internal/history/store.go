// Package history holds the per-session record of completed analyses.
// The store is passed to the copilot explicitly; there is no hidden
// process-global accumulation.
package history

import (
	"sync"
	"time"
)

type Entry[T any] struct {
	ConversationID string
	CreatedAt      time.Time
	Result         T
}

type Store[T any] interface {
	Append(entry Entry[T])
	Recent(n int) []Entry[T]
	Len() int
}

// MemoryStore is an append-only in-process store. Appends are
// serialized with a mutex because the classification stages run
// concurrently upstream.
type MemoryStore[T any] struct {
	mu      sync.RWMutex
	entries []Entry[T]
	limit   int
}

// NewMemoryStore caps retained entries at limit; zero or negative
// means unbounded.
func NewMemoryStore[T any](limit int) *MemoryStore[T] {
	return &MemoryStore[T]{limit: limit}
}

func (s *MemoryStore[T]) Append(entry Entry[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append(s.entries, entry)
	if s.limit > 0 && len(s.entries) > s.limit {
		s.entries = s.entries[len(s.entries)-s.limit:]
	}
}

func (s *MemoryStore[T]) Recent(n int) []Entry[T] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if n <= 0 || n > len(s.entries) {
		n = len(s.entries)
	}

	out := make([]Entry[T], n)
	copy(out, s.entries[len(s.entries)-n:])
	return out
}

func (s *MemoryStore[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
