package models

import (
	"gorm.io/gorm"
)

// GormRoundRecord 回合结果持久化模型
type GormRoundRecord struct {
	gorm.Model
	RoomCode   string `gorm:"index;not null"`
	Round      int    `gorm:"not null"`
	WinnerID   string `gorm:"index;not null"`
	WinnerName string `gorm:"not null"`
	WinSeconds int    `gorm:"default:0"`
	Players    string `gorm:"type:jsonb"`
}
