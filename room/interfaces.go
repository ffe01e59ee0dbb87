package room

// Broadcaster defines the interface for fanning a message out to a room's
// occupied seats. Defined here to break the import cycle between room and
// broadcast.
type Broadcaster interface {
	BroadcastToRoom(roomID string, data []byte) error
}
