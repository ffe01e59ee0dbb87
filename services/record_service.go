// services/record_service.go
package services

import (
	"time"

	"github.com/wfunc/checkers/logger"
	"github.com/wfunc/checkers/models"
	"github.com/wfunc/checkers/persistence"
)

// MatchRecordService archives finished games. With a nil store (archiving
// disabled in config) every call is a no-op, so callers never need to
// branch on whether a database is configured.
type MatchRecordService struct {
	store persistence.Store
}

func NewMatchRecordService(store persistence.Store) *MatchRecordService {
	return &MatchRecordService{store: store}
}

// Enabled reports whether records are actually written anywhere.
func (s *MatchRecordService) Enabled() bool {
	return s != nil && s.store != nil
}

// Record archives one finished game.
func (s *MatchRecordService) Record(roomID, winner string, moves int, duration time.Duration) {
	if !s.Enabled() {
		return
	}

	record := &models.MatchRecord{
		RoomID:    roomID,
		Winner:    winner,
		Moves:     moves,
		Duration:  duration,
		CreatedAt: time.Now(),
	}
	if err := s.store.SaveMatchRecord(record); err != nil {
		// Archiving is best effort; the game result already went out.
		logger.Log.Errorf("Failed to save match record for room %s: %v", roomID, err)
	}
}

// Stats returns aggregates over the archived matches.
func (s *MatchRecordService) Stats() (*models.MatchStats, error) {
	if !s.Enabled() {
		return &models.MatchStats{}, nil
	}
	return s.store.MatchStats()
}
