// room/room.go
package room

import (
	"errors"
	"sync"
	"time"

	"github.com/wfunc/checkers/game"
	"github.com/wfunc/checkers/network"
	"github.com/wfunc/checkers/state"
)

var (
	// ErrRoomFull is returned on a third join attempt.
	ErrRoomFull = errors.New("room is full")
)

// Room is one game session: a board, the turn, the result, and two seats.
// Seats hold opaque session IDs; the empty string marks a vacant seat.
// All mutation happens inside the server's single dispatch goroutine; the
// mutex only guards read access from the admin RPC and metrics goroutines.
type Room struct {
	ID          string
	board       *game.Board
	current     game.Color
	gameOver    bool
	winner      string
	whiteSeat   string
	blackSeat   string
	moves       int
	phase       *state.Machine
	broadcaster Broadcaster
	CreatedAt   time.Time
	startedAt   time.Time
	mutex       sync.RWMutex
}

// NewRoom creates a room with a fresh board, white to move.
func NewRoom(id string, broadcaster Broadcaster) *Room {
	now := time.Now()
	return &Room{
		ID:          id,
		board:       game.NewBoard(),
		current:     game.White,
		phase:       state.NewMachine(),
		broadcaster: broadcaster,
		CreatedAt:   now,
		startedAt:   now,
	}
}

// Join seats the session: white first, then black. A third join is rejected
// and leaves the room untouched.
func (r *Room) Join(sessionID string) (game.Color, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	var color game.Color
	switch {
	case r.whiteSeat == "":
		r.whiteSeat = sessionID
		color = game.White
	case r.blackSeat == "":
		r.blackSeat = sessionID
		color = game.Black
	default:
		return "", ErrRoomFull
	}

	r.phase.SeatsFilled(r.seatCountLocked())
	return color, nil
}

// Leave vacates whichever seat the session holds and reports whether it
// held one. The room identity, board and result are untouched.
func (r *Room) Leave(sessionID string) bool {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	seated := false
	if r.whiteSeat == sessionID {
		r.whiteSeat = ""
		seated = true
	}
	if r.blackSeat == sessionID {
		r.blackSeat = ""
		seated = true
	}
	if seated {
		r.phase.SeatsFilled(r.seatCountLocked())
	}
	return seated
}

func (r *Room) seatCountLocked() int {
	n := 0
	if r.whiteSeat != "" {
		n++
	}
	if r.blackSeat != "" {
		n++
	}
	return n
}

// Empty reports whether both seats are vacant. The registry deletes the
// room the instant this becomes true.
func (r *Room) Empty() bool {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return r.whiteSeat == "" && r.blackSeat == ""
}

// SeatColor returns the color whose seat the session occupies.
func (r *Room) SeatColor(sessionID string) (game.Color, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return r.seatColorLocked(sessionID)
}

// SeatSessions returns the session IDs of the occupied seats.
func (r *Room) SeatSessions() []string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	ids := make([]string, 0, 2)
	if r.whiteSeat != "" {
		ids = append(ids, r.whiteSeat)
	}
	if r.blackSeat != "" {
		ids = append(ids, r.blackSeat)
	}
	return ids
}

// ApplyMove validates and applies a move by the given session. It is a
// no-op unless the session holds the seat whose turn it is; the rules
// engine checks everything else. On success the turn toggles and the game
// ends if the opponent has no pieces left. The second return value is true
// exactly when this move ended the game.
func (r *Room) ApplyMove(sessionID string, from, to game.Square) (game.MoveResult, bool) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.gameOver {
		return game.MoveResult{}, false
	}
	mover, seated := r.seatColorLocked(sessionID)
	if !seated || mover != r.current {
		return game.MoveResult{}, false
	}

	res := game.AttemptMove(r.board, mover, from, to)
	if !res.Applied {
		return res, false
	}

	r.moves++
	r.current = r.current.Opponent()

	whiteCount := r.board.Count(game.White)
	blackCount := r.board.Count(game.Black)
	if whiteCount == 0 || blackCount == 0 {
		r.gameOver = true
		if whiteCount > 0 {
			r.winner = string(game.White)
		} else {
			r.winner = string(game.Black)
		}
		r.phase.GameEnded()
		return res, true
	}
	return res, false
}

func (r *Room) seatColorLocked(sessionID string) (game.Color, bool) {
	switch sessionID {
	case "":
		return "", false
	case r.whiteSeat:
		return game.White, true
	case r.blackSeat:
		return game.Black, true
	}
	return "", false
}

// LoadPosition replaces the board and turn without touching seats or the
// result flags. Supports position setup in tests and admin tooling.
func (r *Room) LoadPosition(board *game.Board, current game.Color) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.board = board
	r.current = current
}

// Restart replaces the board with a fresh layout and clears the result.
// Seats are untouched.
func (r *Room) Restart() {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.board = game.NewBoard()
	r.current = game.White
	r.gameOver = false
	r.winner = ""
	r.moves = 0
	r.startedAt = time.Now()

	r.phase.Restarted(r.seatCountLocked())
}

// Snapshot builds the full state notification for broadcast.
func (r *Room) Snapshot() *network.GameState {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	var winner *string
	if r.winner != "" {
		w := r.winner
		winner = &w
	}

	players := network.SeatStatus{White: network.SeatWaiting, Black: network.SeatWaiting}
	if r.whiteSeat != "" {
		players.White = network.SeatConnected
	}
	if r.blackSeat != "" {
		players.Black = network.SeatConnected
	}

	return &network.GameState{
		Type:          network.NoticeGameState,
		Board:         r.board,
		CurrentPlayer: r.current,
		GameOver:      r.gameOver,
		Winner:        winner,
		Players:       players,
	}
}

// Broadcast sends a payload to every occupied seat.
func (r *Room) Broadcast(data []byte) error {
	return r.broadcaster.BroadcastToRoom(r.ID, data)
}

func (r *Room) GameOver() bool {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return r.gameOver
}

func (r *Room) Winner() string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return r.winner
}

func (r *Room) CurrentPlayer() game.Color {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return r.current
}

func (r *Room) Moves() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return r.moves
}

func (r *Room) Phase() state.Phase {
	return r.phase.Current()
}

// StartedAt is the start of the current game (reset by Restart).
func (r *Room) StartedAt() time.Time {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return r.startedAt
}

// Info is the admin RPC view of a room.
type Info struct {
	ID       string
	Phase    string
	Seats    int
	Moves    int
	GameOver bool
}

func (r *Room) Info() Info {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return Info{
		ID:       r.ID,
		Phase:    r.phase.Current().String(),
		Seats:    r.seatCountLocked(),
		Moves:    r.moves,
		GameOver: r.gameOver,
	}
}

// Registry owns every live room, keyed by the client-supplied identifier.
// Rooms are created lazily on first join and removed the instant both seats
// are vacant.
type Registry struct {
	rooms map[string]*Room
	mutex sync.RWMutex
}

func NewRegistry() *Registry {
	return &Registry{
		rooms: make(map[string]*Room),
	}
}

// Join seats the session in the named room, creating the room if absent.
func (reg *Registry) Join(roomID, sessionID string, broadcaster Broadcaster) (*Room, game.Color, error) {
	reg.mutex.Lock()
	r, exists := reg.rooms[roomID]
	if !exists {
		r = NewRoom(roomID, broadcaster)
		reg.rooms[roomID] = r
	}
	reg.mutex.Unlock()

	color, err := r.Join(sessionID)
	if err != nil {
		return nil, "", err
	}
	return r, color, nil
}

func (reg *Registry) Get(roomID string) (*Room, bool) {
	reg.mutex.RLock()
	defer reg.mutex.RUnlock()
	r, exists := reg.rooms[roomID]
	return r, exists
}

func (reg *Registry) Remove(roomID string) {
	reg.mutex.Lock()
	defer reg.mutex.Unlock()
	delete(reg.rooms, roomID)
}

func (reg *Registry) Count() int {
	reg.mutex.RLock()
	defer reg.mutex.RUnlock()
	return len(reg.rooms)
}

func (reg *Registry) List() []Info {
	reg.mutex.RLock()
	defer reg.mutex.RUnlock()

	infos := make([]Info, 0, len(reg.rooms))
	for _, r := range reg.rooms {
		infos = append(infos, r.Info())
	}
	return infos
}
