package models

import (
	"time"
)

// RoundRecord 一局比赛的结果记录，赢得回合时写入
type RoundRecord struct {
	RoomCode   string    `json:"room_code"`
	Round      int       `json:"round"`
	WinnerID   string    `json:"winner_id"`
	WinnerName string    `json:"winner_name"`
	WinSeconds int       `json:"win_seconds"`
	Players    []string  `json:"players"`
	CreatedAt  time.Time `json:"created_at"`
}
