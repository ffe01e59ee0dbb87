// persistence/interface.go
package persistence

import (
	"fmt"

	"github.com/wfunc/checkers/models"
)

// Store 归档存储接口
type Store interface {
	SaveMatchRecord(record *models.MatchRecord) error
	MatchStats() (*models.MatchStats, error)
	Close() error
}

// 错误定义
var (
	ErrRecordNotFound = fmt.Errorf("record not found")
)
