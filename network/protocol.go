// network/protocol.go
package network

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/wfunc/checkers/game"
)

// Client -> server action types.
const (
	ActionJoinGame    = "join_game"
	ActionMakeMove    = "make_move"
	ActionRestartGame = "restart_game"
)

// Server -> client notification types.
const (
	NoticeGameState    = "game_state"
	NoticeGameOver     = "game_over"
	NoticeDisconnected = "player_disconnected"
	NoticeError        = "error"
)

// Seat status values reported in a state snapshot.
const (
	SeatConnected = "connected"
	SeatWaiting   = "waiting"
)

// ErrUnknownAction is returned for a well-formed message with an
// unrecognized type field.
var ErrUnknownAction = errors.New("unknown action type")

// Action is the flat inbound message. Only the fields matching Type are
// meaningful.
type Action struct {
	Type    string `json:"type"`
	RoomID  string `json:"roomId"`
	FromRow int    `json:"fromRow"`
	FromCol int    `json:"fromCol"`
	ToRow   int    `json:"toRow"`
	ToCol   int    `json:"toCol"`
}

// ParseAction decodes an inbound payload and checks the action type.
func ParseAction(data []byte) (*Action, error) {
	var act Action
	if err := json.Unmarshal(data, &act); err != nil {
		return nil, fmt.Errorf("malformed action payload: %w", err)
	}
	switch act.Type {
	case ActionJoinGame, ActionMakeMove, ActionRestartGame:
		return &act, nil
	}
	return nil, ErrUnknownAction
}

// SeatStatus reports each color's seat as connected or waiting.
type SeatStatus struct {
	White string `json:"white"`
	Black string `json:"black"`
}

// GameState is the full snapshot broadcast after join, move and restart.
type GameState struct {
	Type          string      `json:"type"`
	Board         *game.Board `json:"board"`
	CurrentPlayer game.Color  `json:"currentPlayer"`
	GameOver      bool        `json:"gameOver"`
	Winner        *string     `json:"winner"`
	Players       SeatStatus  `json:"players"`
}

// GameOver is the terminal notice, sent in addition to the final snapshot.
type GameOver struct {
	Type   string `json:"type"`
	Winner string `json:"winner"`
}

// Disconnected is the lightweight notice sent to the remaining seat. It
// deliberately carries no board payload.
type Disconnected struct {
	Type string `json:"type"`
}

// ErrorNotice is sent to the offending connection only.
type ErrorNotice struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// MarshalError builds an error notice payload.
func MarshalError(message string) []byte {
	data, _ := json.Marshal(ErrorNotice{Type: NoticeError, Message: message})
	return data
}

// MarshalGameOver builds a game-over notice payload.
func MarshalGameOver(winner string) []byte {
	data, _ := json.Marshal(GameOver{Type: NoticeGameOver, Winner: winner})
	return data
}

// MarshalDisconnected builds a disconnect notice payload.
func MarshalDisconnected() []byte {
	data, _ := json.Marshal(Disconnected{Type: NoticeDisconnected})
	return data
}
