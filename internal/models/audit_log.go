package models

import "time"

// AuditLog is one admin or booking action. Metadata holds a JSON object.
type AuditLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	SpecialistID *uint  `gorm:"index" json:"specialist_id"`
	UserID       *uint  `json:"user_id"`
	Action       string `gorm:"size:50;not null;index" json:"action"`

	Entity   string `gorm:"size:50" json:"entity"`
	EntityID *uint  `json:"entity_id"`
	Metadata string `gorm:"type:text" json:"metadata"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
