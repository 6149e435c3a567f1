package repository

import (
	"time"

	"github.com/BruksfildServices01/wellness-booking/internal/domain/availability"
	"github.com/BruksfildServices01/wellness-booking/internal/models"
)

// toExistingBooking projects a stored appointment onto the engine's canonical
// booking for the given local day [dayStart, dayEnd). Appointments spilling
// over midnight are clipped to the day.
func toExistingBooking(ap models.Appointment, dayStart, dayEnd time.Time) availability.ExistingBooking {
	loc := dayStart.Location()
	start := ap.StartTime.In(loc)
	end := ap.EndTime.In(loc)

	startClock := availability.ClockOf(start)
	if start.Before(dayStart) {
		startClock = 0
	}
	endClock := availability.ClockOf(end)
	if !end.Before(dayEnd) {
		endClock = availability.Clock(24 * 60)
	}

	return availability.ExistingBooking{
		SpecialistID: ap.SpecialistID,
		Date:         dayStart.Format(availability.DateLayout),
		StartTime:    startClock.String(),
		EndTime:      endClock.String(),
		Status:       ap.Status,
	}
}

func toWorkDay(wd models.WorkDay) availability.WorkDay {
	return availability.WorkDay{
		Weekday:     time.Weekday(wd.Weekday),
		Active:      wd.Active,
		StartTime:   wd.StartTime,
		EndTime:     wd.EndTime,
		LunchBreaks: toLunchBreaks(wd.LunchBreaks),
	}
}

func toLunchBreaks(in []models.LunchBreak) []availability.LunchBreak {
	out := make([]availability.LunchBreak, 0, len(in))
	for _, lb := range in {
		out = append(out, availability.LunchBreak{
			Enabled:   lb.Enabled,
			StartTime: lb.StartTime,
			EndTime:   lb.EndTime,
		})
	}
	return out
}

func toVacations(in []models.VacationRange) []availability.VacationRange {
	out := make([]availability.VacationRange, 0, len(in))
	for _, v := range in {
		out = append(out, availability.VacationRange{
			Enabled:   v.Enabled,
			StartDate: v.StartDate.Format(availability.DateLayout),
			EndDate:   v.EndDate.Format(availability.DateLayout),
		})
	}
	return out
}

// ToWeeklySchedule converts a fully preloaded schedule row.
func ToWeeklySchedule(s models.WeeklySchedule) *availability.WeeklySchedule {
	days := make([]availability.WorkDay, 0, len(s.WorkDays))
	for _, wd := range s.WorkDays {
		days = append(days, toWorkDay(wd))
	}
	return &availability.WeeklySchedule{
		ID:                  s.ID,
		SpecialistID:        s.SpecialistID,
		Enabled:             s.Enabled,
		WorkDays:            days,
		Vacations:           toVacations(s.Vacations),
		BookingPeriodMonths: s.BookingPeriodMonths,
	}
}
