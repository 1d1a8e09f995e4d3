package rpc

import (
	"net"
	"net/rpc"

	"github.com/wfunc/fruitclash/logger"
	"github.com/wfunc/fruitclash/models"
	"github.com/wfunc/fruitclash/network"
	"github.com/wfunc/fruitclash/services"
)

// Server manages the RPC listener.
type Server struct {
	listener net.Listener
	address  string
}

// NewServer creates a new RPC server.
func NewServer(addr string) (*Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &Server{
		listener: listener,
		address:  addr,
	}, nil
}

// Start begins listening for RPC requests.
func (s *Server) Start() {
	logger.Log.Infof("RPC server listening on %s", s.address)
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			// Check if the error is due to the listener being closed.
			if _, ok := err.(*net.OpError); ok {
				logger.Log.Info("RPC server listener closed.")
				return
			}
			logger.Log.Errorf("RPC server accept error: %v", err)
			continue
		}
		go rpc.ServeConn(conn)
	}
}

// Stop closes the RPC listener.
func (s *Server) Stop() {
	if s.listener != nil {
		logger.Log.Info("Stopping RPC server.")
		s.listener.Close()
	}
}

// AdminService exposes operational queries over net/rpc.
type AdminService struct {
	records  *services.RecordService
	snapshot func() network.Stats
}

// NewAdminService creates a new AdminService. snapshot must return the
// current aggregate stats.
func NewAdminService(records *services.RecordService, snapshot func() network.Stats) *AdminService {
	return &AdminService{records: records, snapshot: snapshot}
}

type GetStatsArgs struct{}

type GetStatsReply struct {
	Stats network.Stats
}

func (a *AdminService) GetStats(args *GetStatsArgs, reply *GetStatsReply) error {
	reply.Stats = a.snapshot()
	return nil
}

type RecentRoundsArgs struct {
	Limit int
}

type RecentRoundsReply struct {
	Records []models.RoundRecord
}

func (a *AdminService) RecentRounds(args *RecentRoundsArgs, reply *RecentRoundsReply) error {
	limit := args.Limit
	if limit <= 0 {
		limit = 20
	}
	records, err := a.records.RecentResults(limit)
	if err != nil {
		return err
	}
	reply.Records = records
	return nil
}
