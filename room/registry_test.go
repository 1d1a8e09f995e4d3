package room

import (
	"strings"
	"testing"
)

func testOptions() Options {
	return Options{
		MaxPlayers: 4,
		MinPlayers: 2,
		HandSize:   4,
		CodeLength: 4,
	}
}

func TestRegistry_CreateRoom(t *testing.T) {
	registry := NewRegistry(testOptions())

	r, host := registry.CreateRoom("Alice", "", "sess-1")
	if r == nil {
		t.Fatal("CreateRoom should not return nil")
	}

	if len(r.Code) != 4 {
		t.Errorf("Expected a 4-character room code, got %q", r.Code)
	}
	for _, ch := range r.Code {
		if !strings.ContainsRune(codeAlphabet, ch) {
			t.Errorf("Room code %q contains character outside the alphabet", r.Code)
		}
	}

	if !host.IsHost {
		t.Error("Room creator should be host")
	}
	if host.Name != "Alice" {
		t.Errorf("Expected host name Alice, got %q", host.Name)
	}
	if !host.Ready {
		t.Error("New players default to ready")
	}
	if host.Avatar == "" {
		t.Error("An avatar default should be applied when none is given")
	}

	retrieved, exists := registry.Room(r.Code)
	if !exists || retrieved != r {
		t.Fatal("Room should be registered under its code")
	}
	if registry.PlayerCount() != 1 {
		t.Errorf("Expected 1 indexed player, got %d", registry.PlayerCount())
	}
}

func TestRegistry_CodesUniqueAmongLiveRooms(t *testing.T) {
	registry := NewRegistry(testOptions())

	codes := make(map[string]bool)
	for i := 0; i < 200; i++ {
		r, _ := registry.CreateRoom("", "", "sess")
		if codes[r.Code] {
			t.Fatalf("Code %s issued twice among live rooms", r.Code)
		}
		codes[r.Code] = true
	}
}

func TestRegistry_JoinRoom(t *testing.T) {
	registry := NewRegistry(testOptions())
	r, host := registry.CreateRoom("Alice", "", "sess-1")

	_, joiner, err := registry.JoinRoom(r.Code, "Bob", "", "sess-2")
	if err != nil {
		t.Fatalf("JoinRoom failed: %v", err)
	}
	if joiner.IsHost {
		t.Error("A joiner must not become host")
	}

	roster := r.Roster()
	if len(roster) != 2 {
		t.Fatalf("Expected 2 members, got %d", len(roster))
	}
	// Insertion order is seat order.
	if roster[0].ID != host.ID || roster[1].ID != joiner.ID {
		t.Error("Roster order should follow join order")
	}
}

func TestRegistry_JoinRoom_NotFound(t *testing.T) {
	registry := NewRegistry(testOptions())

	if _, _, err := registry.JoinRoom("ZZZZ", "Bob", "", "sess-2"); err != ErrRoomNotFound {
		t.Fatalf("Expected ErrRoomNotFound, got %v", err)
	}
}

func TestRegistry_JoinRoom_Full(t *testing.T) {
	registry := NewRegistry(testOptions())
	r, _ := registry.CreateRoom("Alice", "", "sess-1")

	for i := 0; i < 3; i++ {
		if _, _, err := registry.JoinRoom(r.Code, "", "", "sess"); err != nil {
			t.Fatalf("Join %d failed: %v", i, err)
		}
	}

	if _, _, err := registry.JoinRoom(r.Code, "Late", "", "sess-5"); err != ErrRoomFull {
		t.Fatalf("Expected ErrRoomFull, got %v", err)
	}
	if r.Len() != 4 {
		t.Errorf("Membership must be unchanged by a rejected join, got %d", r.Len())
	}
}

func TestRegistry_JoinRoom_GameInProgress(t *testing.T) {
	registry := NewRegistry(testOptions())
	r, host := registry.CreateRoom("Alice", "", "sess-1")
	registry.JoinRoom(r.Code, "Bob", "", "sess-2")

	if _, ok := r.StartGame(host.ID, testDeck(16)); !ok {
		t.Fatal("StartGame setup failed")
	}

	if _, _, err := registry.JoinRoom(r.Code, "Late", "", "sess-3"); err != ErrGameInProgress {
		t.Fatalf("Expected ErrGameInProgress, got %v", err)
	}
	if r.Len() != 2 {
		t.Errorf("Membership must be unchanged by a rejected join, got %d", r.Len())
	}
}

func TestRegistry_LeaveRoom_PromotesNewHost(t *testing.T) {
	registry := NewRegistry(testOptions())
	r, host := registry.CreateRoom("Alice", "", "sess-1")
	_, second, _ := registry.JoinRoom(r.Code, "Bob", "", "sess-2")
	registry.JoinRoom(r.Code, "Cara", "", "sess-3")

	result := registry.LeaveRoom(host.ID)
	if !result.Left {
		t.Fatal("LeaveRoom should report the departure")
	}
	if result.RoomRemoved {
		t.Fatal("Room with remaining members must not be removed")
	}
	if result.NewHostID != second.ID {
		t.Errorf("Expected first remaining member %s promoted, got %s", second.ID, result.NewHostID)
	}

	hosts := 0
	for _, p := range r.Roster() {
		if p.IsHost {
			hosts++
			if p.ID != second.ID {
				t.Errorf("Wrong member promoted: %s", p.ID)
			}
		}
	}
	if hosts != 1 {
		t.Errorf("Expected exactly one host, got %d", hosts)
	}
}

func TestRegistry_LeaveRoom_LastMemberRemovesRoom(t *testing.T) {
	registry := NewRegistry(testOptions())
	r, host := registry.CreateRoom("Alice", "", "sess-1")

	result := registry.LeaveRoom(host.ID)
	if !result.RoomRemoved {
		t.Fatal("Room should be removed when its last member leaves")
	}

	if _, exists := registry.Room(r.Code); exists {
		t.Error("Removed room must not be returned by lookups")
	}
	if _, _, err := registry.JoinRoom(r.Code, "Bob", "", "sess-2"); err != ErrRoomNotFound {
		t.Errorf("Join on a removed room should fail with ErrRoomNotFound, got %v", err)
	}
	if registry.PlayerCount() != 0 {
		t.Errorf("Expected empty player index, got %d", registry.PlayerCount())
	}
}

func TestRegistry_LeaveRoom_UnknownPlayer(t *testing.T) {
	registry := NewRegistry(testOptions())

	result := registry.LeaveRoom("nobody")
	if result.Left {
		t.Error("Leaving with an unknown identity must be a no-op")
	}
}

func TestRegistry_SetReady(t *testing.T) {
	registry := NewRegistry(testOptions())
	r, host := registry.CreateRoom("Alice", "", "sess-1")

	roster, code, ok := registry.SetReady(host.ID, false)
	if !ok {
		t.Fatal("SetReady failed for a known player")
	}
	if code != r.Code {
		t.Errorf("Expected room code %s, got %s", r.Code, code)
	}
	if roster[0].Ready {
		t.Error("Ready flag should have been cleared")
	}

	if _, _, ok := registry.SetReady("nobody", true); ok {
		t.Error("SetReady for an unknown player should report failure")
	}
}

func TestRegistry_ReapEmpty(t *testing.T) {
	registry := NewRegistry(testOptions())
	occupied, _ := registry.CreateRoom("Alice", "", "sess-1")

	// A room drained outside LeaveRoom is only cleaned by the sweep.
	empty, hermit := registry.CreateRoom("Bob", "", "sess-2")
	empty.removePlayer(hermit.ID)

	if reaped := registry.ReapEmpty(); reaped != 1 {
		t.Fatalf("Expected 1 reaped room, got %d", reaped)
	}

	if _, exists := registry.Room(empty.Code); exists {
		t.Error("Empty room should be gone after the sweep")
	}
	if _, exists := registry.Room(occupied.Code); !exists {
		t.Error("A room with members must never be reaped")
	}
}
