package server

import (
	"strings"

	"github.com/wfunc/fruitclash/deck"
	"github.com/wfunc/fruitclash/logger"
	"github.com/wfunc/fruitclash/network"
	"github.com/wfunc/fruitclash/room"
	"github.com/wfunc/fruitclash/session"
)

func (s *GameServer) handleCreateRoom(sess *session.Session, cmd *network.Command) {
	if sess.PlayerID() != "" {
		_ = sess.Send(network.NewError("already in a room"))
		return
	}

	var req network.CreateRoomCommand
	if err := cmd.Decode(&req); err != nil {
		_ = sess.Send(network.NewError("malformed command"))
		return
	}

	r, player := s.registry.CreateRoom(req.PlayerName, req.Avatar, sess.GetID())
	sess.Bind(player.ID, r.Code)

	logger.Log.Infof("Session %s created room %s", sess.GetID(), r.Code)

	_ = sess.Send(network.RoomCreatedMessage{
		Type:     network.MsgTypeRoomCreated,
		RoomCode: r.Code,
		PlayerID: player.ID,
		IsHost:   true,
	})
}

func (s *GameServer) handleJoinRoom(sess *session.Session, cmd *network.Command) {
	if sess.PlayerID() != "" {
		_ = sess.Send(network.NewError("already in a room"))
		return
	}

	var req network.JoinRoomCommand
	if err := cmd.Decode(&req); err != nil {
		_ = sess.Send(network.NewError("malformed command"))
		return
	}

	code := strings.ToUpper(strings.TrimSpace(req.RoomCode))
	r, player, err := s.registry.JoinRoom(code, req.PlayerName, req.Avatar, sess.GetID())
	if err != nil {
		_ = sess.Send(network.NewError(err.Error()))
		return
	}
	sess.Bind(player.ID, r.Code)

	logger.Log.Infof("Session %s joined room %s", sess.GetID(), r.Code)

	_ = sess.Send(network.JoinedRoomMessage{
		Type:     network.MsgTypeJoinedRoom,
		RoomCode: r.Code,
		PlayerID: player.ID,
		IsHost:   false,
	})
	_ = s.broadcaster.BroadcastToRoom(r.Code, s.playersUpdateMessage(r.Roster()), "")
}

func (s *GameServer) handlePlayerReady(sess *session.Session, cmd *network.Command) {
	playerID := sess.PlayerID()
	if playerID == "" {
		return
	}

	var req network.PlayerReadyCommand
	if err := cmd.Decode(&req); err != nil {
		_ = sess.Send(network.NewError("malformed command"))
		return
	}

	roster, roomCode, ok := s.registry.SetReady(playerID, req.Ready)
	if !ok {
		return
	}
	_ = s.broadcaster.BroadcastToRoom(roomCode, s.playersUpdateMessage(roster), "")
}

func (s *GameServer) handleStartGame(sess *session.Session) {
	playerID := sess.PlayerID()
	if playerID == "" {
		return
	}
	r, ok := s.registry.RoomOfPlayer(playerID)
	if !ok {
		return
	}

	cards := deck.NewShuffledDeck(s.cfg.Game.DeckSize)
	snapshot, started := r.StartGame(playerID, cards)
	if !started {
		return
	}

	s.monitor.IncGamesStarted()
	logger.Log.Infof("Game started in room %s with %d players", r.Code, len(snapshot.Members))

	s.deliverHands(snapshot, func(member room.PlayerSnapshot) interface{} {
		return network.GameStartedMessage{
			Type: network.MsgTypeGameStarted,
			GameState: network.GameState{
				CurrentRound: snapshot.Number,
				StartTime:    snapshot.StartedAt.UnixMilli(),
				PlayersCards: map[string][]deck.Card{
					member.ID: snapshot.Hands[member.ID],
				},
				RoundWinner: nil,
				GameActive:  true,
			},
			Players: gameRoster(snapshot),
		}
	})
}

func (s *GameServer) handleWinRound(sess *session.Session) {
	playerID := sess.PlayerID()
	if playerID == "" {
		return
	}
	r, ok := s.registry.RoomOfPlayer(playerID)
	if !ok {
		return
	}

	winnerName, winSeconds, won := r.ClaimWin(playerID)
	if !won {
		// Guard already closed: a silent no-op, not an error.
		return
	}

	logger.Log.Infof("Player %s won round %d in room %s after %ds", playerID, r.RoundNumber(), r.Code, winSeconds)

	_ = s.broadcaster.BroadcastToRoom(r.Code, network.RoundWonMessage{
		Type:       network.MsgTypeRoundWon,
		WinnerID:   playerID,
		WinnerName: winnerName,
		WinTime:    winSeconds,
	}, "")

	memberIDs := make([]string, 0)
	for _, member := range r.Roster() {
		memberIDs = append(memberIDs, member.ID)
	}
	go s.records.SaveRoundResult(r.Code, r.RoundNumber(), playerID, winnerName, winSeconds, memberIDs)
}

func (s *GameServer) handleNextRound(sess *session.Session) {
	playerID := sess.PlayerID()
	if playerID == "" {
		return
	}
	r, ok := s.registry.RoomOfPlayer(playerID)
	if !ok {
		return
	}

	cards := deck.NewShuffledDeck(s.cfg.Game.DeckSize)
	snapshot, started := r.NextRound(playerID, cards)
	if !started {
		return
	}

	s.deliverHands(snapshot, func(member room.PlayerSnapshot) interface{} {
		return network.NewRoundMessage{
			Type:      network.MsgTypeNewRound,
			Round:     snapshot.Number,
			Cards:     snapshot.Hands[member.ID],
			StartTime: snapshot.StartedAt.UnixMilli(),
		}
	})
}

func (s *GameServer) handleLeaveRoom(sess *session.Session) {
	playerID := sess.PlayerID()
	if playerID == "" {
		return
	}

	result := s.registry.LeaveRoom(playerID)
	sess.Unbind()

	_ = sess.Send(network.LeftRoomMessage{Type: network.MsgTypeLeftRoom})

	if result.Left && !result.RoomRemoved {
		_ = s.broadcaster.BroadcastToRoom(result.RoomCode, s.playersUpdateMessage(result.Roster), "")
	}
}

func (s *GameServer) handleGetStats(sess *session.Session) {
	_ = sess.Send(network.StatsMessage{
		Type:  network.MsgTypeStats,
		Stats: s.statsSnapshot(),
	})
}

// deliverHands sends each member its private view of a freshly dealt round.
func (s *GameServer) deliverHands(snapshot *room.RoundSnapshot, build func(member room.PlayerSnapshot) interface{}) {
	for _, member := range snapshot.Members {
		s.broadcaster.Unicast(member.SessionID, build(member))
	}
}

func gameRoster(snapshot *room.RoundSnapshot) []network.GamePlayer {
	players := make([]network.GamePlayer, 0, len(snapshot.Members))
	for _, member := range snapshot.Members {
		players = append(players, network.GamePlayer{
			ID:        member.ID,
			Name:      member.Name,
			Avatar:    member.Avatar,
			CardCount: len(snapshot.Hands[member.ID]),
		})
	}
	return players
}
