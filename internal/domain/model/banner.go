package model

import "time"

type Banner struct {
	ID          string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	ImageString string    `gorm:"type:text;not null" json:"image_string"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime;index" json:"created_at"`
}
