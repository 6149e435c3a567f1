package schedule

import (
	"context"

	"github.com/BruksfildServices01/wellness-booking/internal/models"
)

type Repository interface {
	// GetSchedule returns the schedule with work days, breaks and vacations
	// preloaded, or nil when the specialist has none.
	GetSchedule(
		ctx context.Context,
		specialistID uint,
	) (*models.WeeklySchedule, error)

	// ReplaceSchedule upserts the schedule row and swaps its work days
	// (with their breaks) for the given ones in one transaction.
	ReplaceSchedule(
		ctx context.Context,
		s *models.WeeklySchedule,
	) error

	AddVacation(
		ctx context.Context,
		v *models.VacationRange,
	) error

	DeleteVacation(
		ctx context.Context,
		scheduleID uint,
		vacationID uint,
	) error
}
