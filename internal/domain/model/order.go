package model

import "time"

// 決済完了通知ごとに1件だけ作る。
// Amountは決済事業者が返した合計（最小通貨単位）。
// UserIDに外部キー制約は付けない。
type Order struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Amount    int64     `gorm:"not null" json:"amount"`
	Status    string    `gorm:"type:varchar(50);not null" json:"status"`
	UserID    string    `gorm:"type:varchar(255);index" json:"user_id"`
	SessionID string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"session_id"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime;index" json:"created_at"`

	User *User `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`
}
