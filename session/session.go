// session/session.go
package session

import (
	"sync"
	"time"

	"github.com/wfunc/checkers/game"
	"github.com/wfunc/checkers/network"
)

// Session binds one connection to at most one (room, color) pair for its
// lifetime. Rooms store the session ID, never the connection itself.
type Session struct {
	ID         string
	Conn       network.Connection
	RoomID     string
	Color      game.Color // "" until seated
	CreatedAt  time.Time
	LastActive time.Time
}

func NewSession(id string, conn network.Connection) *Session {
	now := time.Now()
	return &Session{
		ID:         id,
		Conn:       conn,
		CreatedAt:  now,
		LastActive: now,
	}
}

// Send pushes one payload to the connection. Safe from any goroutine; the
// connection serializes concurrent writes.
func (s *Session) Send(data []byte) error {
	return s.Conn.Send(data)
}

// Touch records inbound activity. Called only from the connection's reader
// goroutine.
func (s *Session) Touch() {
	s.LastActive = time.Now()
}

func (s *Session) GetID() string {
	return s.ID
}

// Seated reports whether the session holds a seat in a room.
func (s *Session) Seated() bool {
	return s.RoomID != ""
}

func (s *Session) Close() error {
	return s.Conn.Close()
}

// Manager maps session IDs to live sessions.
type Manager struct {
	sessions map[string]*Session
	mutex    sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
	}
}

func (m *Manager) Add(session *Session) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.sessions[session.ID] = session
}

func (m *Manager) Remove(sessionID string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	delete(m.sessions, sessionID)
}

func (m *Manager) Get(sessionID string) (*Session, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	session, exists := m.sessions[sessionID]
	return session, exists
}

func (m *Manager) Count() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.sessions)
}
