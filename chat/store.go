package chat

import (
	"sync"
	"time"
)

// Message is one chat message as delivered by the upstream API. Immutable
// once created.
type Message struct {
	Text      string    `json:"text"`
	Author    string    `json:"author,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Store is the append-only message sequence for one analysis session.
// Appends happen at page granularity so a concurrent reader never observes
// a partially-applied page. Messages keep the order they were received in;
// the store never sorts, edits, or drops entries.
type Store struct {
	mu   sync.RWMutex
	msgs []Message
}

// NewStore returns an empty store.
func NewStore() *Store { return &Store{} }

// Append adds one fetched page to the store atomically.
func (s *Store) Append(page []Message) {
	if len(page) == 0 {
		return
	}
	s.mu.Lock()
	s.msgs = append(s.msgs, page...)
	s.mu.Unlock()
}

// Len returns the current message count.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.msgs)
}

// Snapshot returns a copy of the full sequence in insertion order. The
// copy is safe to read while the poller keeps appending.
func (s *Store) Snapshot() []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Message, len(s.msgs))
	copy(out, s.msgs)
	return out
}
