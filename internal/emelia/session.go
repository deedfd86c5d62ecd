package emelia

import "sync"

// Session holds the Emelia API key for the lifetime of the server process.
// The key is set by the authenticate tool, cleared by logout, and never
// written to disk. The zero value is an unauthenticated session.
type Session struct {
	mu  sync.Mutex
	key string
}

// NewSession returns an empty, unauthenticated session.
func NewSession() *Session {
	return &Session{}
}

// SetKey replaces any existing key unconditionally. The key format is not
// validated locally; a bad key surfaces as a 401 from the API.
func (s *Session) SetKey(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.key = key
}

// ClearKey removes the key. Safe to call when no key is set.
func (s *Session) ClearKey() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.key = ""
}

// Key returns the current key and whether one is set.
func (s *Session) Key() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.key, s.key != ""
}

// Authenticated reports whether a key is currently set.
func (s *Session) Authenticated() bool {
	_, ok := s.Key()
	return ok
}
