package dolls

import (
	"sync"
)

// SessionManager keeps the live sessions of one server.
// Every server owns its own manager; sessions are added right before their
// read loop starts and removed as soon as it ends, so Range only ever sees
// connections that are actually alive.
type SessionManager struct {
	// Sessions keeps all sessions.
	// Key is session's ID, value is *Session
	Sessions sync.Map
}

// NewSessionManager creates an empty SessionManager.
func NewSessionManager() *SessionManager {
	return &SessionManager{}
}

// Add adds a session to Sessions.
// If the ID of s already existed in Sessions, it replaces the value with the s.
func (m *SessionManager) Add(s *Session) {
	if s == nil {
		return
	}
	m.Sessions.Store(s.ID(), s)
}

// Remove removes a session from Sessions.
// Parameter id should be the session's id.
func (m *SessionManager) Remove(id string) {
	m.Sessions.Delete(id)
}

// Get returns a Session when found by the id,
// returns nil otherwise.
func (m *SessionManager) Get(id string) *Session {
	sess, ok := m.Sessions.Load(id)
	if !ok {
		return nil
	}
	return sess.(*Session)
}

// Range calls fn sequentially for each id and sess present in the Sessions.
// If fn returns false, range stops the iteration.
func (m *SessionManager) Range(fn func(id string, sess *Session) (next bool)) {
	m.Sessions.Range(func(key, value interface{}) bool {
		return fn(key.(string), value.(*Session))
	})
}

// Len counts the live sessions.
func (m *SessionManager) Len() int {
	n := 0
	m.Sessions.Range(func(_, _ interface{}) bool {
		n++
		return true
	})
	return n
}
