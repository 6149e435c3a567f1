package appointment

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/BruksfildServices01/wellness-booking/internal/audit"
	domain "github.com/BruksfildServices01/wellness-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/wellness-booking/internal/domain/availability"
	"github.com/BruksfildServices01/wellness-booking/internal/httperr"
	"github.com/BruksfildServices01/wellness-booking/internal/models"
	"github.com/BruksfildServices01/wellness-booking/internal/timezone"
)

// ------------------------------------------------------
// Repository
// ------------------------------------------------------

type fakeRepo struct {
	specialists  map[uint]*models.Specialist
	services     map[uint]*models.Service
	appointments map[uint]*models.Appointment
	nextID       uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		specialists: map[uint]*models.Specialist{
			1: {ID: 1, Name: "Dr. Ivanova", Timezone: "UTC", MinAdvanceMinutes: 120, Active: true},
		},
		services: map[uint]*models.Service{
			10: {ID: 10, SpecialistID: 1, Name: "Consultation", DurationMin: 60, Active: true},
			11: {ID: 11, SpecialistID: 1, Name: "Long session", DurationMin: 90, Active: true},
		},
		appointments: map[uint]*models.Appointment{},
		nextID:       100,
	}
}

func (r *fakeRepo) add(ap models.Appointment) *models.Appointment {
	if ap.ID == 0 {
		r.nextID++
		ap.ID = r.nextID
	}
	r.appointments[ap.ID] = &ap
	return &ap
}

func (r *fakeRepo) GetSpecialistByID(_ context.Context, id uint) (*models.Specialist, error) {
	sp, ok := r.specialists[id]
	if !ok {
		return nil, httperr.ErrBusiness("specialist_not_found")
	}
	cp := *sp
	return &cp, nil
}

func (r *fakeRepo) GetService(_ context.Context, specialistID, serviceID uint) (*models.Service, error) {
	svc, ok := r.services[serviceID]
	if !ok || svc.SpecialistID != specialistID || !svc.Active {
		return nil, httperr.ErrBusiness("service_not_found")
	}
	cp := *svc
	return &cp, nil
}

func (r *fakeRepo) GetServiceDuration(_ context.Context, specialistID, serviceID uint) (int, error) {
	svc, ok := r.services[serviceID]
	if !ok || svc.SpecialistID != specialistID || !svc.Active {
		return 0, httperr.ErrBusiness("service_not_found")
	}
	return svc.DurationMin, nil
}

func (r *fakeRepo) CreateIfNoConflict(_ context.Context, ap *models.Appointment) error {
	for _, other := range r.appointments {
		if other.SpecialistID != ap.SpecialistID || !domain.Status(other.Status).OccupiesTime() {
			continue
		}
		if other.StartTime.Before(ap.EndTime) && other.EndTime.After(ap.StartTime) {
			return httperr.ErrBusiness("time_conflict")
		}
	}
	stored := r.add(*ap)
	ap.ID = stored.ID
	return nil
}

func (r *fakeRepo) GetAppointment(_ context.Context, id uint) (*models.Appointment, error) {
	ap, ok := r.appointments[id]
	if !ok {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}
	cp := *ap
	return &cp, nil
}

func (r *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	cp := *ap
	r.appointments[ap.ID] = &cp
	return nil
}

func (r *fakeRepo) sorted(keep func(*models.Appointment) bool) []models.Appointment {
	out := []models.Appointment{}
	for _, ap := range r.appointments {
		if keep(ap) {
			out = append(out, *ap)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out
}

func (r *fakeRepo) ListAppointmentsForPeriod(_ context.Context, specialistID uint, start, end time.Time) ([]models.Appointment, error) {
	return r.sorted(func(ap *models.Appointment) bool {
		return ap.SpecialistID == specialistID && !ap.StartTime.Before(start) && ap.StartTime.Before(end)
	}), nil
}

func (r *fakeRepo) ListAppointmentsForUser(_ context.Context, userID uint) ([]models.Appointment, error) {
	return r.sorted(func(ap *models.Appointment) bool {
		return ap.UserID != nil && *ap.UserID == userID
	}), nil
}

func (r *fakeRepo) GetExistingBookings(_ context.Context, specialistID uint, date string) ([]availability.ExistingBooking, error) {
	sp := r.specialists[specialistID]
	start, end, err := timezone.DayBounds(date, timezone.Location(sp.Timezone))
	if err != nil {
		return nil, err
	}

	out := []availability.ExistingBooking{}
	for _, ap := range r.sorted(func(ap *models.Appointment) bool {
		return ap.SpecialistID == specialistID && ap.StartTime.Before(end) && ap.EndTime.After(start)
	}) {
		out = append(out, availability.ExistingBooking{
			SpecialistID: ap.SpecialistID,
			Date:         date,
			StartTime:    availability.ClockOf(ap.StartTime.In(start.Location())).String(),
			EndTime:      availability.ClockOf(ap.EndTime.In(start.Location())).String(),
			Status:       ap.Status,
		})
	}
	return out, nil
}

// ------------------------------------------------------
// Schedules
// ------------------------------------------------------

type fakeSchedules struct {
	schedule *availability.WeeklySchedule
	reads    int
}

func mondaySchedule() *availability.WeeklySchedule {
	return &availability.WeeklySchedule{
		ID:                  5,
		SpecialistID:        1,
		Enabled:             true,
		BookingPeriodMonths: 2,
		WorkDays: []availability.WorkDay{
			{
				Weekday:   time.Monday,
				Active:    true,
				StartTime: "09:00",
				EndTime:   "18:00",
				LunchBreaks: []availability.LunchBreak{
					{Enabled: true, StartTime: "13:00", EndTime: "14:00"},
				},
			},
		},
	}
}

func (f *fakeSchedules) GetWeeklySchedule(_ context.Context, _ uint) (*availability.WeeklySchedule, error) {
	f.reads++
	if f.schedule == nil {
		return nil, nil
	}
	return &availability.WeeklySchedule{
		ID:                  f.schedule.ID,
		SpecialistID:        f.schedule.SpecialistID,
		Enabled:             f.schedule.Enabled,
		BookingPeriodMonths: f.schedule.BookingPeriodMonths,
	}, nil
}

func (f *fakeSchedules) GetVacations(_ context.Context, _ uint) ([]availability.VacationRange, error) {
	return f.schedule.Vacations, nil
}

func (f *fakeSchedules) GetWorkDayAndBreaks(_ context.Context, _ uint, weekday time.Weekday) (*availability.WorkDay, []availability.LunchBreak, error) {
	for _, wd := range f.schedule.WorkDays {
		if wd.Weekday == weekday {
			day := wd
			day.LunchBreaks = nil
			return &day, wd.LunchBreaks, nil
		}
	}
	return nil, nil, nil
}

// ------------------------------------------------------
// Cache / audit
// ------------------------------------------------------

type fakeCache struct {
	entries     map[availability.CacheKey]availability.Result
	invalidated []uint
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[availability.CacheKey]availability.Result{}}
}

func (c *fakeCache) Get(_ context.Context, key availability.CacheKey) (*availability.Result, bool) {
	res, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	return &res, true
}

func (c *fakeCache) Set(_ context.Context, key availability.CacheKey, res availability.Result) {
	c.entries[key] = res
}

func (c *fakeCache) Invalidate(_ context.Context, specialistID uint) {
	c.invalidated = append(c.invalidated, specialistID)
	c.entries = map[availability.CacheKey]availability.Result{}
}

type fakeRecorder struct {
	mu     sync.Mutex
	events []audit.Event
}

func (r *fakeRecorder) Dispatch(ev audit.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}
