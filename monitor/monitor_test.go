package monitor

import (
	"testing"
	"time"
)

func TestSnapshot(t *testing.T) {
	m := NewMonitor("test")
	m.IncGamesStarted()
	m.IncGamesStarted()

	stats := m.Snapshot(3, 2)

	if stats.TotalGames != 2 {
		t.Errorf("TotalGames = %d, want 2", stats.TotalGames)
	}
	if stats.ActivePlayers != 3 {
		t.Errorf("ActivePlayers = %d, want 3", stats.ActivePlayers)
	}
	if stats.TotalRooms != 2 {
		t.Errorf("TotalRooms = %d, want 2", stats.TotalRooms)
	}
	if stats.StartTime <= 0 || stats.StartTime > time.Now().UnixMilli() {
		t.Errorf("StartTime = %d is not a plausible Unix millisecond timestamp", stats.StartTime)
	}
}

func TestTotalGames(t *testing.T) {
	m := NewMonitor("test")
	if m.TotalGames() != 0 {
		t.Errorf("TotalGames = %d, want 0 initially", m.TotalGames())
	}
	m.IncGamesStarted()
	if m.TotalGames() != 1 {
		t.Errorf("TotalGames = %d, want 1", m.TotalGames())
	}
}

// Each Monitor owns its collector registry, so several can coexist.
func TestMultipleMonitors(t *testing.T) {
	a := NewMonitor("same_namespace")
	b := NewMonitor("same_namespace")
	a.IncOnlinePlayers()
	b.IncMessagesReceived()
	a.ObserveMessageLatency(5 * time.Millisecond)
}
