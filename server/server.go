package server

import (
	"net/http"
	"net/rpc"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/wfunc/fruitclash/broadcast"
	"github.com/wfunc/fruitclash/config"
	"github.com/wfunc/fruitclash/logger"
	"github.com/wfunc/fruitclash/monitor"
	"github.com/wfunc/fruitclash/network"
	"github.com/wfunc/fruitclash/persistence"
	"github.com/wfunc/fruitclash/room"
	fruitclash_rpc "github.com/wfunc/fruitclash/rpc"
	"github.com/wfunc/fruitclash/services"
	"github.com/wfunc/fruitclash/session"
	"github.com/wfunc/fruitclash/timer"
)

type GameServer struct {
	cfg            *config.Config
	upgrader       websocket.Upgrader
	registry       *room.Registry
	sessionManager *session.Manager
	broadcaster    broadcast.Broadcaster
	monitor        *monitor.Monitor
	records        *services.RecordService
	timerManager   *timer.Manager
	rpcServer      *fruitclash_rpc.Server
	shutdownChan   chan struct{}
}

func NewGameServer(cfg *config.Config, store persistence.Store) *GameServer {
	s := &GameServer{
		cfg: cfg,
		registry: room.NewRegistry(room.Options{
			MaxPlayers: cfg.Game.MaxPlayers,
			MinPlayers: cfg.Game.MinPlayers,
			HandSize:   cfg.Game.HandSize,
			CodeLength: cfg.Game.CodeLength,
		}),
		sessionManager: session.NewManager(),
		monitor:        monitor.NewMonitor("fruitclash"),
		records:        services.NewRecordService(store),
		timerManager:   timer.NewManager(),
		shutdownChan:   make(chan struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // 允许所有跨域请求
			},
		},
	}

	// 初始化广播器
	s.broadcaster = broadcast.NewRoomBroadcaster(s.registry, s.sessionManager)

	// 初始化RPC服务器
	rpcServer, err := fruitclash_rpc.NewServer(cfg.Server.RPCAddress)
	if err != nil {
		logger.Log.Fatalf("Failed to create RPC server: %v", err)
	}
	s.rpcServer = rpcServer

	// 注册RPC服务
	adminService := fruitclash_rpc.NewAdminService(s.records, s.statsSnapshot)
	rpc.Register(adminService)

	return s
}

func (s *GameServer) Start() error {
	go s.rpcServer.Start()
	s.monitor.StartServer(s.cfg.Server.MetricsAddress)

	// 定时清理空房间、定时推送全局统计
	sweepInterval := time.Duration(s.cfg.Game.TickSeconds) * time.Second
	statsInterval := time.Duration(s.cfg.Game.StatsSeconds) * time.Second
	s.timerManager.AddTimer(sweepInterval, sweepInterval, s.sweepRooms)
	s.timerManager.AddTimer(statsInterval, statsInterval, s.pushGlobalStats)

	http.HandleFunc("/ws", s.handleWebSocket)
	logger.Log.Infof("Game server listening on %s", s.cfg.Server.HTTPAddress)
	return http.ListenAndServe(s.cfg.Server.HTTPAddress, nil)
}

func (s *GameServer) Shutdown() {
	close(s.shutdownChan)
	s.timerManager.Stop()
	s.rpcServer.Stop()
}

func (s *GameServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Infof("Failed to upgrade connection: %v", err)
		return
	}
	s.handleConnection(network.NewWSConnection(conn))
}

func (s *GameServer) handleConnection(conn network.Connection) {
	sess := session.NewSession(uuid.New().String(), conn)
	s.sessionManager.Add(sess)
	s.monitor.IncOnlinePlayers()

	logger.Log.Infof("New connection from %s, session ID: %s", conn.RemoteAddr(), sess.GetID())

	// 连接建立即推送全局统计
	_ = sess.Send(s.globalStatsMessage())

	defer func() {
		logger.Log.Infof("Connection closed from %s, session ID: %s", conn.RemoteAddr(), sess.GetID())
		s.cleanupSession(sess)
	}()

	for {
		select {
		case <-s.shutdownChan:
			return
		default:
			cmd, err := conn.ReadCommand()
			if err == network.ErrMalformed {
				_ = sess.Send(network.NewError("malformed command"))
				continue
			}
			if err != nil {
				return
			}
			s.dispatch(sess, cmd)
		}
	}
}

// cleanupSession handles both graceful and abrupt disconnects. Safe to call
// for sessions that never completed room admission.
func (s *GameServer) cleanupSession(sess *session.Session) {
	if playerID := sess.PlayerID(); playerID != "" {
		result := s.registry.LeaveRoom(playerID)
		if result.Left && !result.RoomRemoved {
			_ = s.broadcaster.BroadcastToRoom(result.RoomCode, s.playersUpdateMessage(result.Roster), "")
		}
	}
	sess.Unbind()
	s.sessionManager.Remove(sess.GetID())
	s.monitor.DecOnlinePlayers()
	_ = sess.Close()
}

// dispatch routes one inbound command. Panics in a handler are contained at
// this boundary: logged and answered with a generic ERROR, and neither the
// connection nor any room is torn down.
func (s *GameServer) dispatch(sess *session.Session, cmd *network.Command) {
	start := time.Now()
	s.monitor.IncMessagesReceived()

	defer func() {
		if r := recover(); r != nil {
			logger.Log.Errorf("Panic handling %s from session %s: %v", cmd.Type, sess.GetID(), r)
			_ = sess.Send(network.NewError("internal server error"))
		}
		s.monitor.ObserveMessageLatency(time.Since(start))
	}()

	switch cmd.Type {
	case network.MsgTypeCreateRoom:
		s.handleCreateRoom(sess, cmd)
	case network.MsgTypeJoinRoom:
		s.handleJoinRoom(sess, cmd)
	case network.MsgTypePlayerReady:
		s.handlePlayerReady(sess, cmd)
	case network.MsgTypeStartGame:
		s.handleStartGame(sess)
	case network.MsgTypeWinRound:
		s.handleWinRound(sess)
	case network.MsgTypeNextRound:
		s.handleNextRound(sess)
	case network.MsgTypeLeaveRoom:
		s.handleLeaveRoom(sess)
	case network.MsgTypeGetStats:
		s.handleGetStats(sess)
	default:
		logger.Log.Infof("Unknown message type: %s", cmd.Type)
		_ = sess.Send(network.NewError("unknown command"))
	}
}

// --- 定时任务 ---

func (s *GameServer) sweepRooms() {
	if reaped := s.registry.ReapEmpty(); reaped > 0 {
		logger.Log.Infof("Reaped %d empty rooms", reaped)
	}
}

func (s *GameServer) pushGlobalStats() {
	s.broadcaster.BroadcastToAll(s.globalStatsMessage())
}

func (s *GameServer) statsSnapshot() network.Stats {
	return s.monitor.Snapshot(s.sessionManager.Count(), s.registry.RoomCount())
}

func (s *GameServer) globalStatsMessage() network.GlobalStatsMessage {
	stats := s.statsSnapshot()
	return network.GlobalStatsMessage{
		Type:   network.MsgTypeGlobalStats,
		Online: stats.ActivePlayers,
		Games:  stats.TotalGames,
		Rooms:  stats.TotalRooms,
	}
}

func (s *GameServer) playersUpdateMessage(roster []room.PlayerSnapshot) network.PlayersUpdateMessage {
	players := make([]network.PlayerInfo, 0, len(roster))
	for _, p := range roster {
		players = append(players, network.PlayerInfo{
			ID:     p.ID,
			Name:   p.Name,
			Avatar: p.Avatar,
			IsHost: p.IsHost,
			Ready:  p.Ready,
		})
	}
	return network.PlayersUpdateMessage{
		Type:    network.MsgTypePlayersUpdate,
		Players: players,
	}
}
