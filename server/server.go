package server

import (
	"encoding/json"
	"net/http"
	stdrpc "net/rpc"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/wfunc/checkers/broadcast"
	"github.com/wfunc/checkers/config"
	"github.com/wfunc/checkers/game"
	"github.com/wfunc/checkers/logger"
	"github.com/wfunc/checkers/monitor"
	"github.com/wfunc/checkers/network"
	"github.com/wfunc/checkers/persistence"
	"github.com/wfunc/checkers/room"
	checkers_rpc "github.com/wfunc/checkers/rpc"
	"github.com/wfunc/checkers/services"
	"github.com/wfunc/checkers/session"
	"github.com/wfunc/checkers/timer"
)

// command is one unit of work for the dispatch loop: either a parsed client
// action or a connection close.
type command struct {
	sess       *session.Session
	action     *network.Action
	disconnect bool
}

// GameServer accepts WebSocket connections, binds each to a session, and
// funnels every state-affecting action through a single dispatch goroutine.
// That one goroutine is the only writer of room state, so actions apply in
// arrival order and no two mutations of the same room ever interleave.
type GameServer struct {
	addr         string
	assetsDir    string
	upgrader     websocket.Upgrader
	registry     *room.Registry
	sessions     *session.Manager
	broadcaster  broadcast.Broadcaster
	records      *services.MatchRecordService
	mon          *monitor.Monitor
	rpcServer    *checkers_rpc.Server
	timers       *timer.Manager
	commands     chan command
	shutdownChan chan struct{}
}

func NewGameServer(cfg config.ServerConfig, store persistence.Store, mon *monitor.Monitor) *GameServer {
	s := &GameServer{
		addr:         cfg.HTTPAddress,
		assetsDir:    cfg.AssetsDir,
		registry:     room.NewRegistry(),
		sessions:     session.NewManager(),
		records:      services.NewMatchRecordService(store),
		mon:          mon,
		commands:     make(chan command, 256),
		shutdownChan: make(chan struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // 允许所有跨域请求
			},
		},
	}

	s.broadcaster = broadcast.NewRoomBroadcaster(s.registry, s.sessions)

	if cfg.RPCAddress != "" {
		rpcServer, err := checkers_rpc.NewServer(cfg.RPCAddress)
		if err != nil {
			logger.Log.Fatalf("Failed to create RPC server: %v", err)
		}
		s.rpcServer = rpcServer

		adminService := checkers_rpc.NewAdminService(s.registry, s.records)
		stdrpc.Register(adminService)
	}

	return s
}

func (s *GameServer) Start() error {
	if s.rpcServer != nil {
		go s.rpcServer.Start()
	}
	go s.dispatchLoop()

	if s.mon != nil {
		s.timers = timer.NewManager()
		s.timers.Add(5*time.Second, 5*time.Second, func() {
			s.mon.SetActiveRooms(s.registry.Count())
			s.mon.SetOnlinePlayers(s.sessions.Count())
		})
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.Handle("/", http.FileServer(http.Dir(s.assetsDir)))

	logger.Log.Infof("Game server listening on %s", s.addr)
	return http.ListenAndServe(s.addr, mux)
}

func (s *GameServer) Shutdown() {
	close(s.shutdownChan)
	if s.rpcServer != nil {
		s.rpcServer.Stop()
	}
}

func (s *GameServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Infof("Failed to upgrade connection: %v", err)
		return
	}
	s.handleConnection(conn)
}

func (s *GameServer) handleConnection(conn *websocket.Conn) {
	wsConn := network.NewWSConnection(conn)
	sess := session.NewSession(uuid.New().String(), wsConn)
	s.sessions.Add(sess)
	if s.mon != nil {
		s.mon.IncOnlinePlayers()
	}

	logger.Log.Infof("New connection from %s, session ID: %s", wsConn.RemoteAddr(), sess.GetID())

	defer func() {
		logger.Log.Infof("Connection closed from %s, session ID: %s", wsConn.RemoteAddr(), sess.GetID())
		s.commands <- command{sess: sess, disconnect: true}
		wsConn.Close()
	}()

	for {
		select {
		case <-s.shutdownChan:
			return
		default:
			data, err := wsConn.ReadMessage()
			if err != nil {
				return
			}
			sess.Touch()
			if s.mon != nil {
				s.mon.IncMessagesReceived()
			}

			act, err := network.ParseAction(data)
			if err != nil {
				// Malformed input goes back to the sender only; nothing
				// reaches the dispatch loop.
				sess.Send(network.MarshalError("invalid message"))
				continue
			}
			s.commands <- command{sess: sess, action: act}
		}
	}
}

// dispatchLoop is the single writer of all room state.
func (s *GameServer) dispatchLoop() {
	for {
		select {
		case <-s.shutdownChan:
			return
		case cmd := <-s.commands:
			s.dispatch(cmd)
		}
	}
}

func (s *GameServer) dispatch(cmd command) {
	if cmd.disconnect {
		s.handleDisconnect(cmd.sess)
		return
	}

	switch cmd.action.Type {
	case network.ActionJoinGame:
		s.handleJoinGame(cmd.sess, cmd.action)
	case network.ActionMakeMove:
		s.handleMakeMove(cmd.sess, cmd.action)
	case network.ActionRestartGame:
		s.handleRestartGame(cmd.sess)
	default:
		logger.Log.Warnf("Unknown action type: %s", cmd.action.Type)
	}
}

func (s *GameServer) handleJoinGame(sess *session.Session, act *network.Action) {
	if act.RoomID == "" {
		sess.Send(network.MarshalError("invalid room id"))
		return
	}
	if sess.Seated() {
		logger.Log.Warnf("Session %s tried to join %s but is already in room %s", sess.GetID(), act.RoomID, sess.RoomID)
		return
	}

	r, color, err := s.registry.Join(act.RoomID, sess.GetID(), s.broadcaster)
	if err != nil {
		// Rejection reaches the third connection only; the room and its
		// two seats are untouched.
		sess.Send(network.MarshalError("room is full"))
		return
	}
	sess.RoomID = act.RoomID
	sess.Color = color

	logger.Log.Infof("Session %s joined room %s as %s", sess.GetID(), act.RoomID, color)
	s.broadcastState(r)
}

func (s *GameServer) handleMakeMove(sess *session.Session, act *network.Action) {
	if !sess.Seated() {
		return
	}
	r, exists := s.registry.Get(sess.RoomID)
	if !exists {
		return
	}
	if r.GameOver() {
		return
	}

	from := game.Square{Row: act.FromRow, Col: act.FromCol}
	to := game.Square{Row: act.ToRow, Col: act.ToCol}

	start := time.Now()
	res, ended := r.ApplyMove(sess.GetID(), from, to)
	if s.mon != nil {
		s.mon.ObserveMoveLatency(time.Since(start))
	}
	if !res.Applied {
		// Illegal moves are rejected silently: no mutation happened and
		// nothing is sent, to either seat.
		return
	}
	if s.mon != nil {
		s.mon.IncMovesApplied()
	}

	if ended {
		winner := r.Winner()
		logger.Log.Infof("Game over in room %s, winner: %s", r.ID, winner)
		r.Broadcast(network.MarshalGameOver(winner))
		s.records.Record(r.ID, winner, r.Moves(), time.Since(r.StartedAt()))
	}
	s.broadcastState(r)
}

func (s *GameServer) handleRestartGame(sess *session.Session) {
	if !sess.Seated() {
		return
	}
	r, exists := s.registry.Get(sess.RoomID)
	if !exists {
		return
	}

	r.Restart()
	logger.Log.Infof("Room %s restarted by session %s", r.ID, sess.GetID())
	s.broadcastState(r)
}

func (s *GameServer) handleDisconnect(sess *session.Session) {
	if s.mon != nil {
		s.mon.DecOnlinePlayers()
	}
	s.sessions.Remove(sess.GetID())

	if !sess.Seated() {
		return
	}
	r, exists := s.registry.Get(sess.RoomID)
	if !exists {
		return
	}

	if r.Leave(sess.GetID()) {
		// Lightweight notice to whoever is left; no board payload.
		r.Broadcast(network.MarshalDisconnected())
	}
	if r.Empty() {
		s.registry.Remove(r.ID)
		logger.Log.Infof("Room %s removed, both seats empty", r.ID)
	}
}

func (s *GameServer) broadcastState(r *room.Room) {
	data, err := json.Marshal(r.Snapshot())
	if err != nil {
		logger.Log.Errorf("Failed to marshal state for room %s: %v", r.ID, err)
		return
	}
	r.Broadcast(data)
}
