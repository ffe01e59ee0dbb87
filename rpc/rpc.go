package rpc

import (
	"net"
	"net/rpc"

	"github.com/wfunc/checkers/logger"
	"github.com/wfunc/checkers/models"
	"github.com/wfunc/checkers/room"
	"github.com/wfunc/checkers/services"
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

// AdminService exposes operational read-only views over net/rpc: the live
// room table and aggregate stats over archived matches.
type AdminService struct {
	registry *room.Registry
	records  *services.MatchRecordService
}

func NewAdminService(registry *room.Registry, records *services.MatchRecordService) *AdminService {
	return &AdminService{registry: registry, records: records}
}

type ListRoomsArgs struct{}

type ListRoomsReply struct {
	Rooms []room.Info
}

func (a *AdminService) ListRooms(args *ListRoomsArgs, reply *ListRoomsReply) error {
	reply.Rooms = a.registry.List()
	return nil
}

type MatchStatsArgs struct{}

type MatchStatsReply struct {
	Stats models.MatchStats
}

func (a *AdminService) GetMatchStats(args *MatchStatsArgs, reply *MatchStatsReply) error {
	stats, err := a.records.Stats()
	if err != nil {
		return err
	}
	reply.Stats = *stats
	return nil
}
