package availability

import (
	"context"
	"time"
)

// ScheduleRepository supplies a specialist's recurring schedule. Methods
// return nil (and no error) when nothing is configured.
type ScheduleRepository interface {
	GetWeeklySchedule(ctx context.Context, specialistID uint) (*WeeklySchedule, error)
	GetVacations(ctx context.Context, scheduleID uint) ([]VacationRange, error)
	GetWorkDayAndBreaks(ctx context.Context, scheduleID uint, weekday time.Weekday) (*WorkDay, []LunchBreak, error)
}

// BookingRepository supplies occupying appointments already normalized to
// ExistingBooking, filtered to statuses other than cancelled and archived.
type BookingRepository interface {
	GetExistingBookings(ctx context.Context, specialistID uint, date string) ([]ExistingBooking, error)
}

// ServiceCatalog resolves the duration in minutes of one of the specialist's
// active services; services without one report DefaultServiceDurationMinutes.
type ServiceCatalog interface {
	GetServiceDuration(ctx context.Context, specialistID, serviceID uint) (int, error)
}

// CacheKey identifies one computed day. Results are cached per specialist
// version so any schedule or booking change drops every entry at once.
type CacheKey struct {
	SpecialistID    uint
	Date            string
	DurationMinutes int
	StepMinutes     int
	OnlyAvailable   bool
}

// Cache stores computed days. Implementations swallow their own failures:
// a miss is always a safe answer.
type Cache interface {
	Get(ctx context.Context, key CacheKey) (*Result, bool)
	Set(ctx context.Context, key CacheKey, res Result)
	Invalidate(ctx context.Context, specialistID uint)
}
