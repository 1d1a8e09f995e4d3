// broadcast/broadcast.go
package broadcast

import (
	"errors"

	"github.com/wfunc/fruitclash/room"
	"github.com/wfunc/fruitclash/session"
)

var ErrRoomNotFound = errors.New("room not found")

// 广播接口
type Broadcaster interface {
	// Unicast delivers to a single session; closed transports drop silently.
	Unicast(sessionID string, v interface{})
	// BroadcastToRoom delivers to every member connection of a room except
	// the optionally excluded session ("" excludes nobody).
	BroadcastToRoom(roomCode string, v interface{}, excludeSessionID string) error
	// BroadcastToAll delivers to every open connection process-wide.
	BroadcastToAll(v interface{})
}

// RoomBroadcaster 基于房间注册表与会话管理器的广播器
type RoomBroadcaster struct {
	registry *room.Registry
	sessions *session.Manager
}

func NewRoomBroadcaster(registry *room.Registry, sessions *session.Manager) *RoomBroadcaster {
	return &RoomBroadcaster{
		registry: registry,
		sessions: sessions,
	}
}

func (b *RoomBroadcaster) Unicast(sessionID string, v interface{}) {
	if s, exists := b.sessions.Get(sessionID); exists {
		// Send failures mean the transport closed underneath us; stale
		// drops are acceptable for a real-time casual game.
		_ = s.Send(v)
	}
}

func (b *RoomBroadcaster) BroadcastToRoom(roomCode string, v interface{}, excludeSessionID string) error {
	r, exists := b.registry.Room(roomCode)
	if !exists {
		return ErrRoomNotFound
	}

	for _, member := range r.Roster() {
		if member.SessionID == excludeSessionID {
			continue
		}
		b.Unicast(member.SessionID, v)
	}
	return nil
}

func (b *RoomBroadcaster) BroadcastToAll(v interface{}) {
	for _, s := range b.sessions.All() {
		_ = s.Send(v)
	}
}
