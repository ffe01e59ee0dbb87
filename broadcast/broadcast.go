// broadcast/broadcast.go
package broadcast

import (
	"errors"

	"github.com/wfunc/checkers/room"

	"github.com/wfunc/checkers/session"
)

var (
	ErrRoomNotFound    = errors.New("room not found")
	ErrSessionNotFound = errors.New("session not found")
)

// Broadcaster fans server notifications out to connections. Delivery is
// fire-and-forget: a failed send to one seat never blocks or fails the
// mutation that produced the message.
type Broadcaster interface {
	BroadcastToRoom(roomID string, data []byte) error
	SendToSession(sessionID string, data []byte) error
}

// RoomBroadcaster resolves a room's seats to sessions and pushes to each.
type RoomBroadcaster struct {
	registry       *room.Registry
	sessionManager *session.Manager
}

func NewRoomBroadcaster(registry *room.Registry, sessionManager *session.Manager) *RoomBroadcaster {
	return &RoomBroadcaster{
		registry:       registry,
		sessionManager: sessionManager,
	}
}

func (b *RoomBroadcaster) BroadcastToRoom(roomID string, data []byte) error {
	r, exists := b.registry.Get(roomID)
	if !exists {
		return ErrRoomNotFound
	}

	for _, sessionID := range r.SeatSessions() {
		s, exists := b.sessionManager.Get(sessionID)
		if !exists {
			continue
		}
		if err := s.Send(data); err != nil {
			// Fire and forget: the other seat still gets the message.
			continue
		}
	}
	return nil
}

func (b *RoomBroadcaster) SendToSession(sessionID string, data []byte) error {
	s, exists := b.sessionManager.Get(sessionID)
	if !exists {
		return ErrSessionNotFound
	}
	return s.Send(data)
}
