// network/protocol.go
package network

import (
	"github.com/wfunc/fruitclash/deck"
)

// Inbound command tags (client -> server).
const (
	MsgTypeCreateRoom  = "CREATE_ROOM"
	MsgTypeJoinRoom    = "JOIN_ROOM"
	MsgTypePlayerReady = "PLAYER_READY"
	MsgTypeStartGame   = "START_GAME"
	MsgTypeWinRound    = "WIN_ROUND"
	MsgTypeNextRound   = "NEXT_ROUND"
	MsgTypeLeaveRoom   = "LEAVE_ROOM"
	MsgTypeGetStats    = "GET_STATS"
)

// Outbound event tags (server -> client).
const (
	MsgTypeRoomCreated   = "ROOM_CREATED"
	MsgTypeJoinedRoom    = "JOINED_ROOM"
	MsgTypePlayersUpdate = "PLAYERS_UPDATE"
	MsgTypeGameStarted   = "GAME_STARTED"
	MsgTypeRoundWon      = "ROUND_WON"
	MsgTypeNewRound      = "NEW_ROUND"
	MsgTypeLeftRoom      = "LEFT_ROOM"
	MsgTypeStats         = "STATS"
	MsgTypeGlobalStats   = "GLOBAL_STATS"
	MsgTypeError         = "ERROR"
)

// --- 入站命令 ---

type CreateRoomCommand struct {
	Type       string `json:"type"`
	PlayerName string `json:"playerName"`
	Avatar     string `json:"avatar"`
}

type JoinRoomCommand struct {
	Type       string `json:"type"`
	RoomCode   string `json:"roomCode"`
	PlayerName string `json:"playerName"`
	Avatar     string `json:"avatar"`
}

type PlayerReadyCommand struct {
	Type  string `json:"type"`
	Ready bool   `json:"ready"`
}

// TaggedCommand covers the inbound tags that carry no payload beyond the
// discriminator: START_GAME, WIN_ROUND, NEXT_ROUND, LEAVE_ROOM, GET_STATS.
type TaggedCommand struct {
	Type string `json:"type"`
}

// --- 出站事件 ---

type RoomCreatedMessage struct {
	Type     string `json:"type"`
	RoomCode string `json:"roomCode"`
	PlayerID string `json:"playerId"`
	IsHost   bool   `json:"isHost"`
}

type JoinedRoomMessage struct {
	Type     string `json:"type"`
	RoomCode string `json:"roomCode"`
	PlayerID string `json:"playerId"`
	IsHost   bool   `json:"isHost"`
}

type PlayerInfo struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
	IsHost bool   `json:"isHost"`
	Ready  bool   `json:"ready"`
}

type PlayersUpdateMessage struct {
	Type    string       `json:"type"`
	Players []PlayerInfo `json:"players"`
}

// GameState carries the per-recipient view of a round: PlayersCards holds
// only the recipient's own hand.
type GameState struct {
	CurrentRound int                    `json:"currentRound"`
	StartTime    int64                  `json:"startTime"`
	PlayersCards map[string][]deck.Card `json:"playersCards"`
	RoundWinner  *string                `json:"roundWinner"`
	GameActive   bool                   `json:"gameActive"`
}

// GamePlayer is the public roster entry sent with GAME_STARTED: card counts
// only, never card contents.
type GamePlayer struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Avatar    string `json:"avatar"`
	CardCount int    `json:"cardCount"`
}

type GameStartedMessage struct {
	Type      string       `json:"type"`
	GameState GameState    `json:"gameState"`
	Players   []GamePlayer `json:"players"`
}

type RoundWonMessage struct {
	Type       string `json:"type"`
	WinnerID   string `json:"winnerId"`
	WinnerName string `json:"winnerName"`
	WinTime    int    `json:"winTime"`
}

type NewRoundMessage struct {
	Type      string      `json:"type"`
	Round     int         `json:"round"`
	Cards     []deck.Card `json:"cards"`
	StartTime int64       `json:"startTime"`
}

type LeftRoomMessage struct {
	Type string `json:"type"`
}

type Stats struct {
	TotalGames    int64 `json:"totalGames"`
	ActivePlayers int   `json:"activePlayers"`
	TotalRooms    int   `json:"totalRooms"`
	StartTime     int64 `json:"startTime"`
}

type StatsMessage struct {
	Type  string `json:"type"`
	Stats Stats  `json:"stats"`
}

type GlobalStatsMessage struct {
	Type   string `json:"type"`
	Online int    `json:"online"`
	Games  int64  `json:"games"`
	Rooms  int    `json:"rooms"`
}

type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func NewError(message string) ErrorMessage {
	return ErrorMessage{Type: MsgTypeError, Message: message}
}
