package persistence

import (
	"github.com/wfunc/fruitclash/models"
)

// NoopStore is the default when no database is configured. Writes vanish and
// reads come back empty.
type NoopStore struct{}

func NewNoopStore() *NoopStore {
	return &NoopStore{}
}

func (s *NoopStore) SaveRoundRecord(record *models.RoundRecord) error {
	return nil
}

func (s *NoopStore) RecentRounds(limit int) ([]models.RoundRecord, error) {
	return nil, nil
}

func (s *NoopStore) Close() error {
	return nil
}
