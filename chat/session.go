package chat

import (
	"sync"
	"time"
)

// Session is one live analysis: a broadcast's chat id, its message store,
// and the continuation token from the last fetch. Only one session is
// expected to be live per process; starting a new analysis means building
// a fresh Session, which replaces the old one along with its store and
// token. Sessions are never shared across broadcasts.
type Session struct {
	VideoID    string
	LiveChatID string
	StartedAt  time.Time

	store *Store

	// defaultInterval is the floor applied when a fetched page carries no
	// advised wait. Set before the first fetch, read-only afterwards.
	defaultInterval time.Duration

	mu           sync.Mutex
	pageToken    string
	lastInterval time.Duration
	lastFetch    time.Time
}

// NewSession creates a session with an empty store and no continuation
// token, ready for a first fetch.
func NewSession(videoID, liveChatID string) *Session {
	return &Session{
		VideoID:         videoID,
		LiveChatID:      liveChatID,
		StartedAt:       time.Now().UTC(),
		store:           NewStore(),
		defaultInterval: DefaultPollInterval,
	}
}

// SetDefaultInterval overrides the wait floor used when the upstream omits
// an advised interval. Non-positive values keep the package default. Call
// before the first fetch; the session does not guard concurrent writes to
// the floor.
func (s *Session) SetDefaultInterval(d time.Duration) {
	if d > 0 {
		s.defaultInterval = d
	}
}

// normalizeInterval floors a server-advised wait: an omitted or zero
// interval falls back to the session's configured default.
func (s *Session) normalizeInterval(d time.Duration) time.Duration {
	if d <= 0 {
		return s.defaultInterval
	}
	return d
}

// Store returns the session's message store.
func (s *Session) Store() *Store { return s.store }

// PageToken returns the continuation token to use on the next fetch.
// Empty means "first page" semantics.
func (s *Session) PageToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pageToken
}

// LastInterval returns the most recent server-advised wait, or zero if no
// fetch has completed yet.
func (s *Session) LastInterval() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastInterval
}

// LastFetch returns when the last successful fetch completed.
func (s *Session) LastFetch() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastFetch
}

// apply records one successfully fetched page: messages are appended as a
// unit and the continuation token is replaced with whatever the upstream
// returned, including empty.
func (s *Session) apply(p Page) {
	s.store.Append(p.Messages)
	s.mu.Lock()
	s.pageToken = p.NextPageToken
	s.lastInterval = p.PollingInterval
	s.lastFetch = time.Now().UTC()
	s.mu.Unlock()
}
