package model

import "time"

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// IDは外部の認証プロバイダのsubject
type User struct {
	ID           string    `gorm:"type:varchar(255);primaryKey" json:"id"`
	Email        string    `gorm:"type:varchar(255);not null;index" json:"email"`
	FirstName    string    `gorm:"type:varchar(255);not null" json:"first_name"`
	LastName     string    `gorm:"type:varchar(255);not null" json:"last_name"`
	ProfileImage string    `gorm:"type:text;not null" json:"profile_image"`
	Role         Role      `gorm:"type:varchar(20);not null;default:'USER'" json:"role"`
	CreatedAt    time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
