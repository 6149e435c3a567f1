package models

import "time"

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name         string  `gorm:"size:100;not null" json:"name"`
	Email        *string `gorm:"size:100;uniqueIndex" json:"email"`
	PasswordHash string  `gorm:"size:255" json:"-"`
	Phone        string  `gorm:"size:20" json:"phone"`
	Role         string  `gorm:"size:20;default:'client'" json:"role"`

	TelegramID       *int64 `gorm:"uniqueIndex" json:"telegram_id,omitempty"`
	TelegramUsername string `gorm:"size:64" json:"telegram_username,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	RoleClient = "client"
	RoleAdmin  = "admin"
)
