package model

import "time"

// Webhookの冪等台帳。イベントIDで重複配送を弾く。
// CartClearedAtがnilなら、カート削除がまだ終わっていない。
type ProcessedEvent struct {
	EventID       string     `gorm:"type:varchar(255);primaryKey" json:"event_id"`
	Type          string     `gorm:"type:varchar(100);not null" json:"type"`
	SessionID     string     `gorm:"type:varchar(255);index" json:"session_id"`
	UserID        string     `gorm:"type:varchar(255)" json:"user_id"`
	CartClearedAt *time.Time `json:"cart_cleared_at"`
	CreatedAt     time.Time  `gorm:"not null;autoCreateTime" json:"created_at"`
}
