package models

import "time"

type Specialist struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"size:100;not null" json:"name"`
	Slug     string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Title    string `gorm:"size:150" json:"title"`
	Bio      string `gorm:"type:text" json:"bio"`
	PhotoURL string `gorm:"size:255" json:"photo_url"`

	Timezone          string `gorm:"size:64" json:"timezone"`
	MinAdvanceMinutes int    `gorm:"default:120" json:"min_advance_minutes"`
	Active            bool   `gorm:"not null" json:"active"`

	Services []Service `json:"services,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
