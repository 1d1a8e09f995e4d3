// room/registry.go
package room

import (
	"errors"
	"math/rand"
	"sync"

	"github.com/google/uuid"
)

// codeAlphabet 房间号字符集
const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var (
	ErrRoomNotFound   = errors.New("room not found")
	ErrRoomFull       = errors.New("room is full")
	ErrGameInProgress = errors.New("game already in progress")
)

// Options configures a Registry.
type Options struct {
	MaxPlayers int
	MinPlayers int
	HandSize   int
	CodeLength int
}

// Registry 管理所有存活的房间，并按身份全局索引玩家
type Registry struct {
	rooms   map[string]*Room
	players map[string]*Player // playerID -> player, O(1) command lookup
	opts    Options
	mutex   sync.RWMutex
}

func NewRegistry(opts Options) *Registry {
	return &Registry{
		rooms:   make(map[string]*Room),
		players: make(map[string]*Player),
		opts:    opts,
	}
}

// CreateRoom constructs a room with the caller as sole member and host. Code
// generation loops until a code free among currently-live rooms is found, so
// creation always succeeds.
func (g *Registry) CreateRoom(name, avatar, sessionID string) (*Room, PlayerSnapshot) {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	code := g.generateCodeLocked()
	r := NewRoom(code, g.opts.MaxPlayers, g.opts.MinPlayers, g.opts.HandSize)

	p := newPlayer(name, avatar, sessionID, "Host")
	if err := r.addPlayer(p); err != nil {
		// A freshly built room admits its first member unconditionally.
		panic(err)
	}

	g.rooms[code] = r
	g.players[p.ID] = p
	return r, snapshotOf(p)
}

// JoinRoom appends a player to an existing waiting room. The new member is
// last in turn order.
func (g *Registry) JoinRoom(code, name, avatar, sessionID string) (*Room, PlayerSnapshot, error) {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	r, exists := g.rooms[code]
	if !exists {
		return nil, PlayerSnapshot{}, ErrRoomNotFound
	}

	p := newPlayer(name, avatar, sessionID, "Player")
	if err := r.addPlayer(p); err != nil {
		return nil, PlayerSnapshot{}, err
	}

	g.players[p.ID] = p
	return r, snapshotOf(p), nil
}

// LeaveResult describes the registry mutation performed by LeaveRoom.
type LeaveResult struct {
	Left        bool
	RoomCode    string
	RoomRemoved bool
	NewHostID   string
	Roster      []PlayerSnapshot
}

// LeaveRoom removes the player from its room and from the global index. A
// room whose member list becomes empty is removed immediately. Idempotent:
// unknown players produce a zero result.
func (g *Registry) LeaveRoom(playerID string) LeaveResult {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	p, exists := g.players[playerID]
	if !exists {
		return LeaveResult{}
	}

	result := LeaveResult{Left: true, RoomCode: p.RoomCode}
	if r, ok := g.rooms[p.RoomCode]; ok {
		_, newHostID, empty := r.removePlayer(playerID)
		result.NewHostID = newHostID
		if empty {
			delete(g.rooms, r.Code)
			result.RoomRemoved = true
		} else {
			result.Roster = r.Roster()
		}
	}

	delete(g.players, playerID)
	return result
}

// SetReady toggles the player's ready flag and returns the updated roster.
func (g *Registry) SetReady(playerID string, ready bool) ([]PlayerSnapshot, string, bool) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	p, exists := g.players[playerID]
	if !exists {
		return nil, "", false
	}
	r, ok := g.rooms[p.RoomCode]
	if !ok || !r.setReady(playerID, ready) {
		return nil, "", false
	}
	return r.Roster(), r.Code, true
}

// Room 按房间号查找房间
func (g *Registry) Room(code string) (*Room, bool) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	r, exists := g.rooms[code]
	return r, exists
}

// RoomOfPlayer resolves the room a known player currently occupies.
func (g *Registry) RoomOfPlayer(playerID string) (*Room, bool) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	p, exists := g.players[playerID]
	if !exists {
		return nil, false
	}
	r, ok := g.rooms[p.RoomCode]
	return r, ok
}

// RoomCount returns the number of live rooms.
func (g *Registry) RoomCount() int {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	return len(g.rooms)
}

// PlayerCount returns the number of players admitted to rooms.
func (g *Registry) PlayerCount() int {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	return len(g.players)
}

// ReapEmpty 清除空房间，返回清除数量。有成员的房间永远不会被清除。
func (g *Registry) ReapEmpty() int {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	reaped := 0
	for code, r := range g.rooms {
		if r.Len() == 0 {
			delete(g.rooms, code)
			reaped++
		}
	}
	return reaped
}

func (g *Registry) generateCodeLocked() string {
	for {
		code := make([]byte, g.opts.CodeLength)
		for i := range code {
			code[i] = codeAlphabet[rand.Intn(len(codeAlphabet))]
		}
		if _, taken := g.rooms[string(code)]; !taken {
			return string(code)
		}
	}
}

// newPlayer applies the default display name and dicebear avatar when the
// command omits them.
func newPlayer(name, avatar, sessionID, fallbackName string) *Player {
	id := uuid.New().String()
	if name == "" {
		name = fallbackName
	}
	if avatar == "" {
		avatar = "https://api.dicebear.com/7.x/avataaars/svg?seed=" + id
	}
	return &Player{
		ID:        id,
		Name:      name,
		Avatar:    avatar,
		Ready:     true,
		SessionID: sessionID,
	}
}

func snapshotOf(p *Player) PlayerSnapshot {
	return PlayerSnapshot{
		ID:        p.ID,
		Name:      p.Name,
		Avatar:    p.Avatar,
		IsHost:    p.IsHost,
		Ready:     p.Ready,
		SessionID: p.SessionID,
	}
}
