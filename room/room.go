// room/room.go
package room

import (
	"sync"
	"time"

	"github.com/wfunc/fruitclash/deck"
	"github.com/wfunc/fruitclash/state"
)

// Player 是服务器跟踪的房间成员
type Player struct {
	ID        string
	Name      string
	Avatar    string
	IsHost    bool
	Ready     bool
	RoomCode  string
	SessionID string
}

// PlayerSnapshot is an immutable copy of a member for rosters and messaging.
type PlayerSnapshot struct {
	ID        string
	Name      string
	Avatar    string
	IsHost    bool
	Ready     bool
	SessionID string
	CardCount int
}

// Round 是一局比赛的状态，归属于单个房间
type Round struct {
	Number    int
	StartedAt time.Time
	WinnerID  string
	Active    bool
	Hands     map[string][]deck.Card
}

// RoundSnapshot carries everything the caller needs to deliver a freshly
// dealt round: per-player private hands plus the public roster.
type RoundSnapshot struct {
	Number    int
	StartedAt time.Time
	Hands     map[string][]deck.Card
	Members   []PlayerSnapshot
}

// Room 是游戏房间的核心结构。members 的插入顺序即发牌顺序。
type Room struct {
	Code       string
	MaxPlayers int
	MinPlayers int
	HandSize   int
	CreatedAt  time.Time

	machine *state.Machine
	members []*Player
	hostID  string
	round   *Round
	mutex   sync.Mutex
}

func NewRoom(code string, maxPlayers, minPlayers, handSize int) *Room {
	return &Room{
		Code:       code,
		MaxPlayers: maxPlayers,
		MinPlayers: minPlayers,
		HandSize:   handSize,
		CreatedAt:  time.Now(),
		machine:    state.NewMachine(state.StatusWaiting),
	}
}

// Status 获取房间的业务状态
func (r *Room) Status() state.Status {
	return r.machine.Current()
}

// Len returns the current member count.
func (r *Room) Len() int {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return len(r.members)
}

// HostID returns the identity of the current host.
func (r *Room) HostID() string {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.hostID
}

// addPlayer 添加一个玩家到房间，满员或游戏中则拒绝
func (r *Room) addPlayer(p *Player) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if len(r.members) >= r.MaxPlayers {
		return ErrRoomFull
	}
	if r.machine.Current() != state.StatusWaiting {
		return ErrGameInProgress
	}

	p.RoomCode = r.Code
	if len(r.members) == 0 {
		p.IsHost = true
		r.hostID = p.ID
	}
	r.members = append(r.members, p)
	return nil
}

// removePlayer drops a member. If the departing member was host and members
// remain, the first remaining member is promoted. Returns the promoted
// member's ID ("" when nobody was promoted) and whether the room is empty.
func (r *Room) removePlayer(playerID string) (removed bool, newHostID string, empty bool) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	idx := -1
	for i, p := range r.members {
		if p.ID == playerID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false, "", len(r.members) == 0
	}

	wasHost := r.members[idx].IsHost
	r.members[idx].RoomCode = ""
	r.members = append(r.members[:idx], r.members[idx+1:]...)

	if len(r.members) == 0 {
		r.hostID = ""
		return true, "", true
	}

	if wasHost {
		r.members[0].IsHost = true
		r.hostID = r.members[0].ID
		newHostID = r.hostID
	}
	return true, newHostID, false
}

// setReady toggles the cosmetic ready flag. Start eligibility never depends
// on it.
func (r *Room) setReady(playerID string, ready bool) bool {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for _, p := range r.members {
		if p.ID == playerID {
			p.Ready = ready
			return true
		}
	}
	return false
}

// Roster returns an ordered snapshot of the current members.
func (r *Room) Roster() []PlayerSnapshot {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.rosterLocked()
}

func (r *Room) rosterLocked() []PlayerSnapshot {
	roster := make([]PlayerSnapshot, 0, len(r.members))
	for _, p := range r.members {
		cardCount := 0
		if r.round != nil {
			cardCount = len(r.round.Hands[p.ID])
		}
		roster = append(roster, PlayerSnapshot{
			ID:        p.ID,
			Name:      p.Name,
			Avatar:    p.Avatar,
			IsHost:    p.IsHost,
			Ready:     p.Ready,
			SessionID: p.SessionID,
			CardCount: cardCount,
		})
	}
	return roster
}

// --- 回合仲裁 ---

// StartGame transitions the room to playing and deals round 1. The caller
// must be host of a waiting room with enough members; otherwise this is a
// silent no-op.
func (r *Room) StartGame(callerID string, cards []deck.Card) (*RoundSnapshot, bool) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if callerID != r.hostID || len(r.members) < r.MinPlayers {
		return nil, false
	}
	if err := r.machine.Transition(state.StatusPlaying); err != nil {
		return nil, false
	}

	hands, err := deck.Deal(cards, r.memberIDsLocked(), r.HandSize)
	if err != nil {
		// Deck smaller than capacity*handSize is a programmer error.
		panic(err)
	}

	r.round = &Round{
		Number:    1,
		StartedAt: time.Now(),
		Active:    true,
		Hands:     hands,
	}
	return r.roundSnapshotLocked(), true
}

// ClaimWin resolves the first valid win claim for the active round. The
// check-and-set of the winner executes under the room mutex, so exactly one
// of any number of concurrent claims passes the guard; the rest observe it
// closed and are ignored.
func (r *Room) ClaimWin(callerID string) (winnerName string, winSeconds int, ok bool) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.machine.Current() != state.StatusPlaying {
		return "", 0, false
	}
	if r.round == nil || !r.round.Active || r.round.WinnerID != "" {
		return "", 0, false
	}

	var claimer *Player
	for _, p := range r.members {
		if p.ID == callerID {
			claimer = p
			break
		}
	}
	if claimer == nil {
		return "", 0, false
	}

	r.round.WinnerID = callerID
	r.round.Active = false
	winSeconds = int(time.Since(r.round.StartedAt) / time.Second)
	return claimer.Name, winSeconds, true
}

// NextRound redeals and reactivates the round. Host-only, playing rooms
// only; a silent no-op otherwise. Room status is unchanged.
func (r *Room) NextRound(callerID string, cards []deck.Card) (*RoundSnapshot, bool) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if callerID != r.hostID || r.machine.Current() != state.StatusPlaying || r.round == nil {
		return nil, false
	}

	hands, err := deck.Deal(cards, r.memberIDsLocked(), r.HandSize)
	if err != nil {
		panic(err)
	}

	r.round.Number++
	r.round.WinnerID = ""
	r.round.Active = true
	r.round.StartedAt = time.Now()
	r.round.Hands = hands
	return r.roundSnapshotLocked(), true
}

// RoundNumber returns the current round counter, 0 before the first deal.
func (r *Room) RoundNumber() int {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if r.round == nil {
		return 0
	}
	return r.round.Number
}

func (r *Room) memberIDsLocked() []string {
	ids := make([]string, 0, len(r.members))
	for _, p := range r.members {
		ids = append(ids, p.ID)
	}
	return ids
}

func (r *Room) roundSnapshotLocked() *RoundSnapshot {
	hands := make(map[string][]deck.Card, len(r.round.Hands))
	for id, hand := range r.round.Hands {
		copied := make([]deck.Card, len(hand))
		copy(copied, hand)
		hands[id] = copied
	}
	return &RoundSnapshot{
		Number:    r.round.Number,
		StartedAt: r.round.StartedAt,
		Hands:     hands,
		Members:   r.rosterLocked(),
	}
}
