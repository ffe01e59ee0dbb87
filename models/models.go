// models/models.go
package models

import (
	"time"
)

// MatchRecord archives one finished game. Live room state is never
// persisted; only the outcome of a completed match is written.
type MatchRecord struct {
	RecordID  string        `json:"record_id"`
	RoomID    string        `json:"room_id"`
	Winner    string        `json:"winner"`
	Moves     int           `json:"moves"`
	Duration  time.Duration `json:"duration"`
	CreatedAt time.Time     `json:"created_at"`
}

// MatchStats aggregates recorded matches.
type MatchStats struct {
	TotalGames int64 `json:"total_games"`
	WhiteWins  int64 `json:"white_wins"`
	BlackWins  int64 `json:"black_wins"`
	Draws      int64 `json:"draws"`
}
