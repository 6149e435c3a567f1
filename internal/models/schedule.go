package models

import "time"

type WeeklySchedule struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	SpecialistID uint `gorm:"uniqueIndex" json:"specialist_id"`

	// No column defaults: false and 0 (no horizon) are real values that a
	// gorm default would overwrite on insert.
	Enabled             bool `gorm:"not null" json:"enabled"`
	BookingPeriodMonths int  `gorm:"not null" json:"booking_period_months"`

	WorkDays  []WorkDay       `gorm:"foreignKey:ScheduleID;constraint:OnDelete:CASCADE;" json:"work_days"`
	Vacations []VacationRange `gorm:"foreignKey:ScheduleID;constraint:OnDelete:CASCADE;" json:"vacations"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WorkDay is unique per (schedule, weekday); weekday uses 0=Sunday..6=Saturday.
type WorkDay struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	ScheduleID uint `gorm:"uniqueIndex:idx_work_day_schedule_weekday" json:"schedule_id"`
	Weekday    int  `gorm:"uniqueIndex:idx_work_day_schedule_weekday" json:"weekday"`

	Active    bool   `json:"active"`
	StartTime string `gorm:"size:5" json:"start_time"`
	EndTime   string `gorm:"size:5" json:"end_time"`

	LunchBreaks []LunchBreak `gorm:"foreignKey:WorkDayID;constraint:OnDelete:CASCADE;" json:"lunch_breaks"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type LunchBreak struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	WorkDayID uint `gorm:"index" json:"work_day_id"`

	Enabled   bool   `json:"enabled"`
	StartTime string `gorm:"size:5" json:"start_time"`
	EndTime   string `gorm:"size:5" json:"end_time"`
}

type VacationRange struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	ScheduleID uint `gorm:"index" json:"schedule_id"`

	Enabled   bool      `gorm:"not null" json:"enabled"`
	StartDate time.Time `gorm:"type:date;not null" json:"start_date"`
	EndDate   time.Time `gorm:"type:date;not null" json:"end_date"`
	Note      string    `gorm:"size:255" json:"note"`

	CreatedAt time.Time `json:"created_at"`
}
