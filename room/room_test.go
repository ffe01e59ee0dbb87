package room

import (
	"testing"

	"github.com/wfunc/checkers/game"
	"github.com/wfunc/checkers/state"
)

// MockBroadcaster is a test double for the Broadcaster interface.
type MockBroadcaster struct {
	payloads [][]byte
}

func (m *MockBroadcaster) BroadcastToRoom(roomID string, data []byte) error {
	m.payloads = append(m.payloads, data)
	return nil
}

func TestRegistry_JoinCreatesRoomLazily(t *testing.T) {
	reg := NewRegistry()
	b := &MockBroadcaster{}

	if reg.Count() != 0 {
		t.Fatal("Fresh registry should hold no rooms")
	}

	r, color, err := reg.Join("r1", "s1", b)
	if err != nil {
		t.Fatalf("First join should succeed: %v", err)
	}
	if color != game.White {
		t.Errorf("First join should be seated as white, got %s", color)
	}
	if reg.Count() != 1 {
		t.Errorf("Expected 1 room after first join, got %d", reg.Count())
	}

	r2, color, err := reg.Join("r1", "s2", b)
	if err != nil {
		t.Fatalf("Second join should succeed: %v", err)
	}
	if color != game.Black {
		t.Errorf("Second join should be seated as black, got %s", color)
	}
	if r2 != r {
		t.Error("Second join should land in the same room instance")
	}
}

func TestRegistry_ThirdJoinRejected(t *testing.T) {
	reg := NewRegistry()
	b := &MockBroadcaster{}

	reg.Join("r1", "s1", b)
	reg.Join("r1", "s2", b)

	_, _, err := reg.Join("r1", "s3", b)
	if err != ErrRoomFull {
		t.Fatalf("Third join should return ErrRoomFull, got %v", err)
	}

	r, _ := reg.Get("r1")
	if got, _ := r.SeatColor("s1"); got != game.White {
		t.Error("Rejected join must not disturb the white seat")
	}
	if got, _ := r.SeatColor("s2"); got != game.Black {
		t.Error("Rejected join must not disturb the black seat")
	}
	if _, seated := r.SeatColor("s3"); seated {
		t.Error("Rejected session must not hold a seat")
	}
}

func TestRegistry_RemoveOnEmpty(t *testing.T) {
	reg := NewRegistry()
	b := &MockBroadcaster{}

	r, _, _ := reg.Join("r1", "s1", b)
	reg.Join("r1", "s2", b)

	r.Leave("s1")
	if r.Empty() {
		t.Fatal("Room with one occupied seat is not empty")
	}

	r.Leave("s2")
	if !r.Empty() {
		t.Fatal("Room should be empty after both seats vacate")
	}
	reg.Remove("r1")

	if _, exists := reg.Get("r1"); exists {
		t.Fatal("Removed room should not be found")
	}

	// Rejoining the identifier recreates a fresh room.
	fresh, color, err := reg.Join("r1", "s3", b)
	if err != nil || color != game.White {
		t.Fatalf("Rejoining a deleted identifier should reseat as white, got %s, %v", color, err)
	}
	if fresh == r {
		t.Error("Rejoined room should be a fresh instance")
	}
	if fresh.Moves() != 0 || fresh.GameOver() {
		t.Error("Rejoined room should start from a fresh board")
	}
}

func TestRoom_PhaseFollowsSeats(t *testing.T) {
	r := NewRoom("r1", &MockBroadcaster{})
	if r.Phase() != state.Waiting {
		t.Fatalf("New room should be waiting, got %v", r.Phase())
	}

	r.Join("s1")
	if r.Phase() != state.Waiting {
		t.Error("One seat is still waiting")
	}

	r.Join("s2")
	if r.Phase() != state.Active {
		t.Error("Two seats should make the room active")
	}

	r.Leave("s2")
	if r.Phase() != state.Waiting {
		t.Error("Seat vacancy should return the room to waiting")
	}
}

func TestRoom_ApplyMove_TurnAlternation(t *testing.T) {
	r := NewRoom("r1", &MockBroadcaster{})
	r.Join("white-sess")
	r.Join("black-sess")

	if r.CurrentPlayer() != game.White {
		t.Fatal("White moves first")
	}

	// Black may not move out of turn.
	if res, _ := r.ApplyMove("black-sess", game.Square{Row: 2, Col: 1}, game.Square{Row: 3, Col: 0}); res.Applied {
		t.Fatal("Out-of-turn move must be rejected")
	}
	if r.CurrentPlayer() != game.White {
		t.Error("Rejected move must not toggle the turn")
	}

	// White may not move black's pieces either.
	if res, _ := r.ApplyMove("white-sess", game.Square{Row: 2, Col: 1}, game.Square{Row: 3, Col: 0}); res.Applied {
		t.Fatal("Moving the opponent's piece must be rejected")
	}

	res, ended := r.ApplyMove("white-sess", game.Square{Row: 5, Col: 0}, game.Square{Row: 4, Col: 1})
	if !res.Applied {
		t.Fatal("Legal opening move should be applied")
	}
	if ended {
		t.Error("Opening move cannot end the game")
	}
	if r.CurrentPlayer() != game.Black {
		t.Error("Applied move should toggle the turn to black")
	}
	if r.Moves() != 1 {
		t.Errorf("Expected 1 applied move, got %d", r.Moves())
	}

	// Repeated illegal attempts never change the turn.
	for i := 0; i < 3; i++ {
		r.ApplyMove("black-sess", game.Square{Row: 2, Col: 1}, game.Square{Row: 2, Col: 3})
	}
	if r.CurrentPlayer() != game.Black {
		t.Error("Illegal attempts must leave the turn with black")
	}
}

func TestRoom_ApplyMove_UnseatedSessionIsNoop(t *testing.T) {
	r := NewRoom("r1", &MockBroadcaster{})
	r.Join("s1")

	if res, _ := r.ApplyMove("stranger", game.Square{Row: 5, Col: 0}, game.Square{Row: 4, Col: 1}); res.Applied {
		t.Fatal("A session without a seat must not move")
	}
	if res, _ := r.ApplyMove("", game.Square{Row: 5, Col: 0}, game.Square{Row: 4, Col: 1}); res.Applied {
		t.Fatal("An empty session ID must never match a vacant seat")
	}
}

// endgameRoom returns an active room where white can capture black's last
// piece by jumping (3,2) over (2,1).
func endgameRoom(t *testing.T) *Room {
	t.Helper()
	r := NewRoom("r1", &MockBroadcaster{})
	r.Join("white-sess")
	r.Join("black-sess")

	board := &game.Board{}
	board[3][2] = &game.Piece{Color: game.White}
	board[2][1] = &game.Piece{Color: game.Black}
	r.LoadPosition(board, game.White)
	return r
}

func TestRoom_GameOverDetection(t *testing.T) {
	r := endgameRoom(t)

	res, ended := r.ApplyMove("white-sess", game.Square{Row: 3, Col: 2}, game.Square{Row: 1, Col: 0})
	if !res.Applied {
		t.Fatal("Winning capture should be applied")
	}
	if !ended {
		t.Fatal("Capturing the last black piece should end the game")
	}
	if !r.GameOver() {
		t.Error("GameOver should be set")
	}
	if r.Winner() != string(game.White) {
		t.Errorf("Winner should be white, got %q", r.Winner())
	}
	if r.Phase() != state.Finished {
		t.Errorf("Phase should be finished, got %v", r.Phase())
	}

	// The result is stable: further moves are no-ops.
	if res, _ := r.ApplyMove("black-sess", game.Square{Row: 1, Col: 0}, game.Square{Row: 2, Col: 1}); res.Applied {
		t.Error("Moves after game over must be rejected")
	}
	if r.Winner() != string(game.White) {
		t.Error("Winner must not change after the game ends")
	}
}

func TestRoom_Restart(t *testing.T) {
	r := endgameRoom(t)
	r.ApplyMove("white-sess", game.Square{Row: 3, Col: 2}, game.Square{Row: 1, Col: 0})

	r.Restart()

	if r.GameOver() {
		t.Error("Restart should clear the game-over flag")
	}
	if r.Winner() != "" {
		t.Error("Restart should clear the winner")
	}
	if r.CurrentPlayer() != game.White {
		t.Error("Restart should give white the move")
	}
	if r.Moves() != 0 {
		t.Error("Restart should reset the move count")
	}
	if r.Phase() != state.Active {
		t.Error("Restart with both seats occupied should be active")
	}
	if got, _ := r.SeatColor("white-sess"); got != game.White {
		t.Error("Restart must keep the seats")
	}

	snap := r.Snapshot()
	count := 0
	for row := 0; row < game.Size; row++ {
		for col := 0; col < game.Size; col++ {
			if snap.Board[row][col] != nil {
				count++
			}
		}
	}
	if count != 24 {
		t.Errorf("Restarted board should hold 24 pieces, got %d", count)
	}
}

func TestRoom_Snapshot(t *testing.T) {
	r := NewRoom("r1", &MockBroadcaster{})
	r.Join("s1")

	snap := r.Snapshot()
	if snap.Type != "game_state" {
		t.Errorf("Snapshot type should be game_state, got %q", snap.Type)
	}
	if snap.Players.White != "connected" || snap.Players.Black != "waiting" {
		t.Errorf("Expected white connected / black waiting, got %+v", snap.Players)
	}
	if snap.Winner != nil {
		t.Error("A running game has no winner")
	}
	if snap.CurrentPlayer != game.White {
		t.Error("Snapshot should report white to move")
	}

	r.Join("s2")
	snap = r.Snapshot()
	if snap.Players.White != "connected" || snap.Players.Black != "connected" {
		t.Errorf("Expected both seats connected, got %+v", snap.Players)
	}
}
