package appointment

import (
	"context"
	"time"

	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/wellness-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/wellness-booking/internal/domain/availability"
	"github.com/BruksfildServices01/wellness-booking/internal/httperr"
	"github.com/BruksfildServices01/wellness-booking/internal/models"
	"github.com/BruksfildServices01/wellness-booking/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type AvailabilityInput struct {
	SpecialistID uint
	Date         string

	// DurationMinutes wins over ServiceID; with neither the default applies.
	ServiceID       uint
	DurationMinutes int

	StepMinutes   int
	OnlyAvailable bool
}

type AvailabilitySettings struct {
	StepMinutes            int
	DefaultDurationMinutes int
}

// ======================================================
// USE CASE
// ======================================================

type GetAvailability struct {
	repo      domain.Repository
	schedules availability.ScheduleRepository
	bookings  availability.BookingRepository
	services  availability.ServiceCatalog
	cache     availability.Cache
	settings  AvailabilitySettings
	log       *zap.Logger
	now       func() time.Time
}

func NewGetAvailability(
	repo domain.Repository,
	schedules availability.ScheduleRepository,
	bookings availability.BookingRepository,
	services availability.ServiceCatalog,
	cache availability.Cache,
	settings AvailabilitySettings,
	log *zap.Logger,
) *GetAvailability {
	if cache == nil {
		cache = nopCache{}
	}
	if settings.StepMinutes <= 0 {
		settings.StepMinutes = availability.DefaultSlotStepMinutes
	}
	if settings.DefaultDurationMinutes <= 0 {
		settings.DefaultDurationMinutes = availability.DefaultServiceDurationMinutes
	}

	return &GetAvailability{
		repo:      repo,
		schedules: schedules,
		bookings:  bookings,
		services:  services,
		cache:     cache,
		settings:  settings,
		log:       log,
		now:       time.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in AvailabilityInput,
) (availability.Result, error) {

	sp, err := uc.activeSpecialist(ctx, in.SpecialistID)
	if httperr.IsBusiness(err, CodeSpecialistNotFound) {
		return unavailableSpecialist(in.Date)
	}
	if err != nil {
		return availability.Result{}, err
	}
	return uc.compute(ctx, sp, in, true)
}

// unavailableSpecialist answers a query for a missing or inactive specialist
// with an empty day instead of an error.
func unavailableSpecialist(date string) (availability.Result, error) {
	weekday, err := availability.WeekdayOf(date)
	if err != nil {
		return availability.Result{}, err
	}
	return availability.Result{
		Date:    date,
		Weekday: weekday,
		Reason:  availability.ReasonSpecialistUnavailable,
		Slots:   []availability.TimeSlot{},
	}, nil
}

func (uc *GetAvailability) activeSpecialist(ctx context.Context, id uint) (*models.Specialist, error) {
	sp, err := uc.repo.GetSpecialistByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !sp.Active {
		return nil, httperr.ErrBusiness(CodeSpecialistNotFound)
	}
	return sp, nil
}

func (uc *GetAvailability) duration(ctx context.Context, in AvailabilityInput) (int, error) {
	switch {
	case in.DurationMinutes < 0:
		return 0, httperr.ErrBusinessf(availability.CodeInvalidDuration, "%d", in.DurationMinutes)
	case in.DurationMinutes > 0:
		return in.DurationMinutes, nil
	case in.ServiceID != 0:
		return uc.services.GetServiceDuration(ctx, in.SpecialistID, in.ServiceID)
	}
	return uc.settings.DefaultDurationMinutes, nil
}

// compute reads one consistent snapshot and runs the engine. Today's grid
// depends on the current time and is never cached.
func (uc *GetAvailability) compute(
	ctx context.Context,
	sp *models.Specialist,
	in AvailabilityInput,
	useCache bool,
) (availability.Result, error) {

	// --------------------------------------------------
	// Input
	// --------------------------------------------------
	date, err := availability.ParseDate(in.Date)
	if err != nil {
		return availability.Result{}, err
	}

	duration, err := uc.duration(ctx, in)
	if err != nil {
		return availability.Result{}, err
	}

	step := in.StepMinutes
	if step == 0 {
		step = uc.settings.StepMinutes
	}

	now := uc.now().In(timezone.Location(sp.Timezone))
	today := now.Format(availability.DateLayout)
	useCache = useCache && in.Date != today

	key := availability.CacheKey{
		SpecialistID:    sp.ID,
		Date:            in.Date,
		DurationMinutes: duration,
		StepMinutes:     step,
		OnlyAvailable:   in.OnlyAvailable,
	}
	if useCache {
		if res, ok := uc.cache.Get(ctx, key); ok {
			return *res, nil
		}
	}

	// --------------------------------------------------
	// Schedule snapshot
	// --------------------------------------------------
	schedule, err := uc.schedules.GetWeeklySchedule(ctx, sp.ID)
	if err != nil {
		return availability.Result{}, err
	}
	if schedule == nil {
		return availability.Result{
			Date:    in.Date,
			Weekday: date.Weekday(),
			Reason:  availability.ReasonNoSchedule,
			Slots:   []availability.TimeSlot{},
		}, nil
	}

	vacations, err := uc.schedules.GetVacations(ctx, schedule.ID)
	if err != nil {
		return availability.Result{}, err
	}

	day, breaks, err := uc.schedules.GetWorkDayAndBreaks(ctx, schedule.ID, date.Weekday())
	if err != nil {
		return availability.Result{}, err
	}
	if day != nil {
		schedule.WorkDays = []availability.WorkDay{*day}
	}

	bookings, err := uc.bookings.GetExistingBookings(ctx, sp.ID, in.Date)
	if err != nil {
		return availability.Result{}, err
	}

	// --------------------------------------------------
	// Engine
	// --------------------------------------------------
	res, err := availability.Compute(availability.Input{
		Schedule:               schedule,
		Vacations:              vacations,
		LunchBreaks:            breaks,
		Bookings:               bookings,
		Date:                   in.Date,
		ServiceDurationMinutes: duration,
		SlotStepMinutes:        step,
		OnlyAvailable:          in.OnlyAvailable,
		Today:                  today,
		Now:                    availability.ClockOf(now),
		HasNow:                 true,
	})
	if err != nil {
		uc.log.Warn("availability compute failed",
			zap.Uint("specialist_id", sp.ID),
			zap.String("date", in.Date),
			zap.Error(err),
		)
		return availability.Result{}, err
	}

	uc.log.Debug("availability computed",
		zap.Uint("specialist_id", sp.ID),
		zap.String("date", in.Date),
		zap.String("reason", string(res.Reason)),
		zap.Int("slots", len(res.Slots)),
		zap.Int("bookings", len(bookings)),
	)

	if useCache {
		uc.cache.Set(ctx, key, res)
	}
	return res, nil
}

type nopCache struct{}

func (nopCache) Get(context.Context, availability.CacheKey) (*availability.Result, bool) {
	return nil, false
}

func (nopCache) Set(context.Context, availability.CacheKey, availability.Result) {}

func (nopCache) Invalidate(context.Context, uint) {}
