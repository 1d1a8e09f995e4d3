// services/record_service.go
package services

import (
	"time"

	"github.com/wfunc/fruitclash/logger"
	"github.com/wfunc/fruitclash/models"
	"github.com/wfunc/fruitclash/persistence"
)

// RecordService writes finished-round results to the audit store. The store
// is write-behind: failures are logged, never surfaced to players.
type RecordService struct {
	store persistence.Store
}

func NewRecordService(store persistence.Store) *RecordService {
	return &RecordService{store: store}
}

// SaveRoundResult 记录一局比赛的结果
func (s *RecordService) SaveRoundResult(roomCode string, round int, winnerID, winnerName string, winSeconds int, players []string) {
	record := &models.RoundRecord{
		RoomCode:   roomCode,
		Round:      round,
		WinnerID:   winnerID,
		WinnerName: winnerName,
		WinSeconds: winSeconds,
		Players:    players,
		CreatedAt:  time.Now(),
	}
	if err := s.store.SaveRoundRecord(record); err != nil {
		logger.Log.Errorf("Failed to save round record for room %s: %v", roomCode, err)
	}
}

// RecentResults 获取最近的比赛记录
func (s *RecordService) RecentResults(limit int) ([]models.RoundRecord, error) {
	return s.store.RecentRounds(limit)
}
