package assistant

import "sync"

const defaultSessionKey = "owner"

// SessionStore keeps one chat session per viewer.
type SessionStore struct {
	asker Asker

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewSessionStore builds a store whose sessions ask through asker.
func NewSessionStore(asker Asker) *SessionStore {
	return &SessionStore{
		asker:    asker,
		sessions: make(map[string]*Session),
	}
}

// Session returns the viewer's session, creating it on first use.
func (s *SessionStore) Session(viewer string) *Session {
	if viewer == "" {
		viewer = defaultSessionKey
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[viewer]
	if !ok {
		session = NewSession(s.asker)
		s.sessions[viewer] = session
	}
	return session
}

// Reset drops the viewer's session so the next access starts from the greeting.
func (s *SessionStore) Reset(viewer string) {
	if viewer == "" {
		viewer = defaultSessionKey
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, viewer)
}
