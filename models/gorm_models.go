// models/gorm_models.go
package models

import (
	"gorm.io/gorm"
)

// GormMatchRecord 完成对局的归档记录
type GormMatchRecord struct {
	gorm.Model
	RecordID        string `gorm:"uniqueIndex;not null"`
	RoomID          string `gorm:"index;not null"`
	Winner          string `gorm:"not null"`
	Moves           int    `gorm:"default:0"`
	DurationSeconds int    `gorm:"default:0"`
}
