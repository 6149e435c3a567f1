package models

import "time"

type Service struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	SpecialistID uint `gorm:"index" json:"specialist_id"`

	Name        string  `gorm:"size:100;not null" json:"name"`
	Description string  `gorm:"size:255" json:"description"`
	DurationMin int     `gorm:"default:60" json:"duration_min"`
	Price       float64 `json:"price"`
	Active      bool    `gorm:"not null" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
