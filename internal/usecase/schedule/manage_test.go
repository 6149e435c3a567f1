package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/wellness-booking/internal/audit"
	"github.com/BruksfildServices01/wellness-booking/internal/domain/availability"
	"github.com/BruksfildServices01/wellness-booking/internal/httperr"
	"github.com/BruksfildServices01/wellness-booking/internal/models"
)

type fakeSpecialists struct{}

func (fakeSpecialists) GetSpecialistByID(_ context.Context, id uint) (*models.Specialist, error) {
	if id != 1 {
		return nil, httperr.ErrBusiness("specialist_not_found")
	}
	return &models.Specialist{ID: 1, Active: true}, nil
}

type fakeRepo struct {
	schedule *models.WeeklySchedule
	nextID   uint
}

func (r *fakeRepo) GetSchedule(_ context.Context, _ uint) (*models.WeeklySchedule, error) {
	return r.schedule, nil
}

func (r *fakeRepo) ReplaceSchedule(_ context.Context, s *models.WeeklySchedule) error {
	if r.schedule != nil {
		s.ID = r.schedule.ID
		s.Vacations = r.schedule.Vacations
	} else {
		s.ID = 5
	}
	r.schedule = s
	return nil
}

func (r *fakeRepo) AddVacation(_ context.Context, v *models.VacationRange) error {
	r.nextID++
	v.ID = r.nextID
	r.schedule.Vacations = append(r.schedule.Vacations, *v)
	return nil
}

func (r *fakeRepo) DeleteVacation(_ context.Context, scheduleID, vacationID uint) error {
	for i, v := range r.schedule.Vacations {
		if v.ID == vacationID && v.ScheduleID == scheduleID {
			r.schedule.Vacations = append(r.schedule.Vacations[:i], r.schedule.Vacations[i+1:]...)
			return nil
		}
	}
	return httperr.ErrBusiness("vacation_not_found")
}

type countingCache struct {
	invalidated int
}

func (c *countingCache) Get(context.Context, availability.CacheKey) (*availability.Result, bool) {
	return nil, false
}

func (c *countingCache) Set(context.Context, availability.CacheKey, availability.Result) {}

func (c *countingCache) Invalidate(context.Context, uint) { c.invalidated++ }

type recorder struct {
	events []audit.Event
}

func (r *recorder) Dispatch(ev audit.Event) { r.events = append(r.events, ev) }

func newManage() (*Manage, *fakeRepo, *countingCache, *recorder) {
	repo := &fakeRepo{}
	cache := &countingCache{}
	rec := &recorder{}
	return NewManage(fakeSpecialists{}, repo, cache, rec, zap.NewNop()), repo, cache, rec
}

func weekdays() []availability.WorkDay {
	days := []availability.WorkDay{}
	for d := time.Monday; d <= time.Friday; d++ {
		days = append(days, availability.WorkDay{
			Weekday:   d,
			Active:    true,
			StartTime: "09:00",
			EndTime:   "18:00",
			LunchBreaks: []availability.LunchBreak{
				{Enabled: true, StartTime: "13:00", EndTime: "14:00"},
			},
		})
	}
	return days
}

func TestManage_GetWithoutSchedule(t *testing.T) {
	uc, _, _, _ := newManage()

	_, err := uc.Get(context.Background(), 1)
	assert.True(t, httperr.IsBusiness(err, availability.CodeScheduleNotFound))

	_, err = uc.Get(context.Background(), 2)
	assert.True(t, httperr.IsBusiness(err, "specialist_not_found"))
}

func TestManage_Replace(t *testing.T) {
	uc, repo, cache, rec := newManage()

	s, err := uc.Replace(context.Background(), ReplaceScheduleInput{
		SpecialistID:        1,
		ActorID:             3,
		Enabled:             true,
		BookingPeriodMonths: 2,
		WorkDays:            weekdays(),
	})
	require.NoError(t, err)

	assert.Equal(t, uint(5), s.ID)
	require.Len(t, repo.schedule.WorkDays, 5)
	assert.Equal(t, 1, repo.schedule.WorkDays[0].Weekday)
	assert.Equal(t, "13:00", repo.schedule.WorkDays[0].LunchBreaks[0].StartTime)

	assert.Equal(t, 1, cache.invalidated)
	require.Len(t, rec.events, 1)
	assert.Equal(t, "schedule_replaced", rec.events[0].Action)
}

func TestManage_ReplaceRejectsInvalid(t *testing.T) {
	cases := map[string]struct {
		days []availability.WorkDay
		code string
	}{
		"duplicate weekday": {
			days: append(weekdays(), availability.WorkDay{Weekday: time.Monday, Active: true, StartTime: "10:00", EndTime: "12:00"}),
			code: availability.CodeDuplicateWorkDay,
		},
		"inverted day": {
			days: []availability.WorkDay{{Weekday: time.Monday, Active: true, StartTime: "18:00", EndTime: "09:00"}},
			code: availability.CodeInvalidWorkDay,
		},
		"break outside day": {
			days: []availability.WorkDay{{
				Weekday: time.Monday, Active: true, StartTime: "09:00", EndTime: "12:00",
				LunchBreaks: []availability.LunchBreak{{Enabled: true, StartTime: "13:00", EndTime: "14:00"}},
			}},
			code: availability.CodeInvalidBreak,
		},
	}

	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			uc, repo, cache, _ := newManage()
			_, err := uc.Replace(context.Background(), ReplaceScheduleInput{SpecialistID: 1, Enabled: true, WorkDays: c.days})
			assert.True(t, httperr.IsBusiness(err, c.code), "got %v", err)
			assert.Nil(t, repo.schedule)
			assert.Zero(t, cache.invalidated)
		})
	}
}

func TestManage_Vacations(t *testing.T) {
	uc, repo, cache, rec := newManage()
	_, err := uc.Replace(context.Background(), ReplaceScheduleInput{SpecialistID: 1, Enabled: true, WorkDays: weekdays()})
	require.NoError(t, err)

	v, err := uc.AddVacation(context.Background(), AddVacationInput{
		SpecialistID: 1,
		StartDate:    "2026-07-01",
		EndDate:      "2026-07-14",
		Note:         " summer ",
	})
	require.NoError(t, err)
	assert.Equal(t, uint(5), v.ScheduleID)
	assert.Equal(t, "summer", v.Note)
	assert.Equal(t, "2026-07-14", v.EndDate.Format("2006-01-02"))

	_, err = uc.AddVacation(context.Background(), AddVacationInput{SpecialistID: 1, StartDate: "2026-07-14", EndDate: "2026-07-01"})
	assert.True(t, httperr.IsBusiness(err, availability.CodeInvalidVacation))

	require.NoError(t, uc.DeleteVacation(context.Background(), 1, 0, v.ID))
	assert.Empty(t, repo.schedule.Vacations)

	err = uc.DeleteVacation(context.Background(), 1, 0, v.ID)
	assert.True(t, httperr.IsBusiness(err, "vacation_not_found"))

	assert.Equal(t, 3, cache.invalidated)
	assert.Len(t, rec.events, 3)
	assert.Nil(t, rec.events[2].UserID)
}

func TestManage_VacationNeedsSchedule(t *testing.T) {
	uc, _, _, _ := newManage()
	_, err := uc.AddVacation(context.Background(), AddVacationInput{SpecialistID: 1, StartDate: "2026-07-01", EndDate: "2026-07-02"})
	assert.True(t, httperr.IsBusiness(err, availability.CodeScheduleNotFound))
}
