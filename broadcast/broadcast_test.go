package broadcast

import (
	"net"
	"sync"
	"testing"

	"github.com/wfunc/fruitclash/network"
	"github.com/wfunc/fruitclash/room"
	"github.com/wfunc/fruitclash/session"
)

// MockConnection records every message sent through it.
type MockConnection struct {
	mu   sync.Mutex
	sent []interface{}
}

func (m *MockConnection) Send(v interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, v)
	return nil
}

func (m *MockConnection) ReadCommand() (*network.Command, error) { return nil, nil }
func (m *MockConnection) Close() error                           { return nil }
func (m *MockConnection) RemoteAddr() net.Addr                   { return &net.TCPAddr{} }

func (m *MockConnection) sentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

func newTestWorld(t *testing.T) (*room.Registry, *session.Manager, *RoomBroadcaster) {
	t.Helper()
	registry := room.NewRegistry(room.Options{
		MaxPlayers: 4,
		MinPlayers: 2,
		HandSize:   4,
		CodeLength: 4,
	})
	sessions := session.NewManager()
	return registry, sessions, NewRoomBroadcaster(registry, sessions)
}

func addMember(t *testing.T, registry *room.Registry, sessions *session.Manager, code, name, sessionID string) *MockConnection {
	t.Helper()
	conn := &MockConnection{}
	sess := session.NewSession(sessionID, conn)
	sessions.Add(sess)

	if code == "" {
		r, p := registry.CreateRoom(name, "", sessionID)
		sess.Bind(p.ID, r.Code)
	} else {
		r, p, err := registry.JoinRoom(code, name, "", sessionID)
		if err != nil {
			t.Fatalf("Join failed: %v", err)
		}
		sess.Bind(p.ID, r.Code)
	}
	return conn
}

func TestBroadcastToRoom(t *testing.T) {
	registry, sessions, b := newTestWorld(t)

	hostConn := addMember(t, registry, sessions, "", "Alice", "sess-1")
	code := firstRoomCode(t, registry, sessions, "sess-1")
	memberConn := addMember(t, registry, sessions, code, "Bob", "sess-2")

	// An unrelated connection must receive nothing.
	otherConn := &MockConnection{}
	sessions.Add(session.NewSession("sess-3", otherConn))

	if err := b.BroadcastToRoom(code, "hello", ""); err != nil {
		t.Fatalf("BroadcastToRoom failed: %v", err)
	}

	if hostConn.sentCount() != 1 {
		t.Errorf("Host received %d messages, want 1", hostConn.sentCount())
	}
	if memberConn.sentCount() != 1 {
		t.Errorf("Member received %d messages, want 1", memberConn.sentCount())
	}
	if otherConn.sentCount() != 0 {
		t.Errorf("Outsider received %d messages, want 0", otherConn.sentCount())
	}
}

func TestBroadcastToRoom_Exclude(t *testing.T) {
	registry, sessions, b := newTestWorld(t)

	hostConn := addMember(t, registry, sessions, "", "Alice", "sess-1")
	code := firstRoomCode(t, registry, sessions, "sess-1")
	memberConn := addMember(t, registry, sessions, code, "Bob", "sess-2")

	if err := b.BroadcastToRoom(code, "hello", "sess-1"); err != nil {
		t.Fatalf("BroadcastToRoom failed: %v", err)
	}

	if hostConn.sentCount() != 0 {
		t.Errorf("Excluded session received %d messages, want 0", hostConn.sentCount())
	}
	if memberConn.sentCount() != 1 {
		t.Errorf("Member received %d messages, want 1", memberConn.sentCount())
	}
}

func TestBroadcastToRoom_UnknownRoom(t *testing.T) {
	_, _, b := newTestWorld(t)

	if err := b.BroadcastToRoom("ZZZZ", "hello", ""); err != ErrRoomNotFound {
		t.Fatalf("Expected ErrRoomNotFound, got %v", err)
	}
}

func TestUnicast_MissingSession(t *testing.T) {
	_, _, b := newTestWorld(t)

	// Must not panic or error; closed/unknown targets drop silently.
	b.Unicast("ghost", "hello")
}

func TestBroadcastToAll(t *testing.T) {
	_, sessions, b := newTestWorld(t)

	conns := []*MockConnection{{}, {}, {}}
	for i, conn := range conns {
		sessions.Add(session.NewSession(string(rune('a'+i)), conn))
	}

	b.BroadcastToAll("tick")

	for i, conn := range conns {
		if conn.sentCount() != 1 {
			t.Errorf("Connection %d received %d messages, want 1", i, conn.sentCount())
		}
	}
}

func firstRoomCode(t *testing.T, registry *room.Registry, sessions *session.Manager, sessionID string) string {
	t.Helper()
	sess, exists := sessions.Get(sessionID)
	if !exists {
		t.Fatalf("Session %s not found", sessionID)
	}
	return sess.RoomCode()
}
