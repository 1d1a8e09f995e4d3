// persistence/interface.go
package persistence

import (
	"fmt"

	"github.com/wfunc/fruitclash/models"
)

// Store is the write-behind audit sink for finished rounds. Room and round
// state itself is never persisted; the server always restarts empty.
type Store interface {
	SaveRoundRecord(record *models.RoundRecord) error
	RecentRounds(limit int) ([]models.RoundRecord, error)
	Close() error
}

// 错误定义
var (
	ErrRecordNotFound = fmt.Errorf("record not found")
)
