// Package history keeps the in-process record of deleted entities. The log
// lives for the lifetime of the server and is intentionally not durable.
package history

import (
	"sync"
	"time"
)

// Entry is the terminal snapshot of a deleted entity: its kind ("bus" or
// "station"), id and the human-identifying fields shown in the history view.
type Entry struct {
	Kind      string    `json:"kind"`
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Detail    string    `json:"detail"`
	DeletedAt time.Time `json:"deleted_at"`
}

// Log is an append-only deletion record shared by all request handlers.
// Entries are never updated or removed, so a mutex around the append is all
// the coordination concurrent requests need.
type Log struct {
	mu      sync.Mutex
	entries []Entry
}

func NewLog() *Log {
	return &Log{}
}

// Append records a deletion. A zero DeletedAt is stamped with the current time.
func (l *Log) Append(e Entry) {
	if e.DeletedAt.IsZero() {
		e.DeletedAt = time.Now()
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, e)
}

// All returns the entries in insertion order, oldest first. The returned
// slice is a copy; callers may re-sort it freely.
func (l *Log) All() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len reports the number of recorded deletions.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
