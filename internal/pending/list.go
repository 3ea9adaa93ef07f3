// Package pending tracks optimistic entries that wait for a server answer.
package pending

import (
	"errors"
	"sync"
)

var (
	ErrDuplicateID = errors.New("pending id already queued")
	ErrUnknownID   = errors.New("pending id not found")
)

type entry[T any] struct {
	tempID  string
	item    T
	pending bool
}

// List is an ordered list where some items are placeholders keyed by a
// temporary id until they are resolved or rejected.
type List[T any] struct {
	mu      sync.Mutex
	entries []entry[T]
}

// Reset replaces the whole list with confirmed items.
func (l *List[T]) Reset(items []T) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = make([]entry[T], 0, len(items))
	for _, it := range items {
		l.entries = append(l.entries, entry[T]{item: it})
	}
}

// Refresh replaces the confirmed items and keeps pending placeholders,
// in their order, after them.
func (l *List[T]) Refresh(items []T) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries := make([]entry[T], 0, len(items)+len(l.entries))
	for _, it := range items {
		entries = append(entries, entry[T]{item: it})
	}
	for _, e := range l.entries {
		if e.pending {
			entries = append(entries, e)
		}
	}
	l.entries = entries
}

// Enqueue appends placeholder under tempID.
func (l *List[T]) Enqueue(tempID string, placeholder T) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.indexOf(tempID) >= 0 {
		return ErrDuplicateID
	}
	l.entries = append(l.entries, entry[T]{tempID: tempID, item: placeholder, pending: true})
	return nil
}

// Has reports whether tempID is still pending.
func (l *List[T]) Has(tempID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.indexOf(tempID) >= 0
}

// Resolve swaps the placeholder for the confirmed item at the same position.
func (l *List[T]) Resolve(tempID string, confirmed T) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.indexOf(tempID)
	if i < 0 {
		return ErrUnknownID
	}
	l.entries[i] = entry[T]{item: confirmed}
	return nil
}

// Reject drops the placeholder, leaving every other item in place.
func (l *List[T]) Reject(tempID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.indexOf(tempID)
	if i < 0 {
		return ErrUnknownID
	}
	l.entries = append(l.entries[:i], l.entries[i+1:]...)
	return nil
}

// Items returns a snapshot in list order.
func (l *List[T]) Items() []T {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]T, 0, len(l.entries))
	for _, e := range l.entries {
		out = append(out, e.item)
	}
	return out
}

func (l *List[T]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

func (l *List[T]) indexOf(tempID string) int {
	for i, e := range l.entries {
		if e.pending && e.tempID == tempID {
			return i
		}
	}
	return -1
}
