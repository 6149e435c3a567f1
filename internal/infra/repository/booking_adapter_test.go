package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/wellness-booking/internal/domain/availability"
	"github.com/BruksfildServices01/wellness-booking/internal/models"
)

func TestToExistingBooking(t *testing.T) {
	msk := time.FixedZone("MSK", 3*3600)
	dayStart := time.Date(2026, 3, 2, 0, 0, 0, 0, msk)
	dayEnd := dayStart.AddDate(0, 0, 1)

	t.Run("stored in UTC, read in specialist zone", func(t *testing.T) {
		ap := models.Appointment{
			SpecialistID: 4,
			StartTime:    time.Date(2026, 3, 2, 7, 0, 0, 0, time.UTC),
			EndTime:      time.Date(2026, 3, 2, 8, 30, 0, 0, time.UTC),
			Status:       "CONFIRMED",
		}
		assert.Equal(t, availability.ExistingBooking{
			SpecialistID: 4,
			Date:         "2026-03-02",
			StartTime:    "10:00",
			EndTime:      "11:30",
			Status:       "CONFIRMED",
		}, toExistingBooking(ap, dayStart, dayEnd))
	})

	t.Run("clipped at midnight", func(t *testing.T) {
		ap := models.Appointment{
			StartTime: time.Date(2026, 3, 2, 23, 0, 0, 0, msk),
			EndTime:   time.Date(2026, 3, 3, 0, 30, 0, 0, msk),
			Status:    "pending",
		}
		b := toExistingBooking(ap, dayStart, dayEnd)
		assert.Equal(t, "23:00", b.StartTime)
		assert.Equal(t, "24:00", b.EndTime)
	})

	t.Run("started the previous day", func(t *testing.T) {
		ap := models.Appointment{
			StartTime: time.Date(2026, 3, 1, 23, 30, 0, 0, msk),
			EndTime:   time.Date(2026, 3, 2, 0, 45, 0, 0, msk),
			Status:    "pending",
		}
		b := toExistingBooking(ap, dayStart, dayEnd)
		assert.Equal(t, "00:00", b.StartTime)
		assert.Equal(t, "00:45", b.EndTime)
	})
}

func TestToWeeklySchedule(t *testing.T) {
	row := models.WeeklySchedule{
		ID:                  3,
		SpecialistID:        9,
		Enabled:             true,
		BookingPeriodMonths: 1,
		WorkDays: []models.WorkDay{
			{
				Weekday: 1, Active: true, StartTime: "09:00", EndTime: "17:00",
				LunchBreaks: []models.LunchBreak{{Enabled: true, StartTime: "12:00", EndTime: "12:45"}},
			},
		},
		Vacations: []models.VacationRange{
			{
				Enabled:   true,
				StartDate: time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
				EndDate:   time.Date(2026, 7, 14, 0, 0, 0, 0, time.UTC),
			},
		},
	}

	s := ToWeeklySchedule(row)

	assert.Equal(t, uint(3), s.ID)
	assert.True(t, s.Enabled)
	assert.Equal(t, time.Monday, s.WorkDays[0].Weekday)
	assert.Equal(t, "12:45", s.WorkDays[0].LunchBreaks[0].EndTime)
	assert.Equal(t, availability.VacationRange{Enabled: true, StartDate: "2026-07-01", EndDate: "2026-07-14"}, s.Vacations[0])
}
