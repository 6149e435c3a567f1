package schedule

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/wellness-booking/internal/audit"
	"github.com/BruksfildServices01/wellness-booking/internal/domain/availability"
	domain "github.com/BruksfildServices01/wellness-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/wellness-booking/internal/httperr"
	"github.com/BruksfildServices01/wellness-booking/internal/models"
)

type SpecialistReader interface {
	GetSpecialistByID(ctx context.Context, id uint) (*models.Specialist, error)
}

// ======================================================
// INPUTS
// ======================================================

type ReplaceScheduleInput struct {
	SpecialistID        uint
	ActorID             uint
	Enabled             bool
	BookingPeriodMonths int
	WorkDays            []availability.WorkDay
}

type AddVacationInput struct {
	SpecialistID uint
	ActorID      uint
	StartDate    string
	EndDate      string
	Note         string
}

// ======================================================
// USE CASE
// ======================================================

// Manage is the admin side of a specialist's weekly schedule. Every change
// drops the specialist's cached availability.
type Manage struct {
	specialists SpecialistReader
	repo        domain.Repository
	cache       availability.Cache
	audit       audit.Recorder
	log         *zap.Logger
}

func NewManage(
	specialists SpecialistReader,
	repo domain.Repository,
	cache availability.Cache,
	audit audit.Recorder,
	log *zap.Logger,
) *Manage {
	return &Manage{
		specialists: specialists,
		repo:        repo,
		cache:       cache,
		audit:       audit,
		log:         log,
	}
}

func (uc *Manage) Get(ctx context.Context, specialistID uint) (*models.WeeklySchedule, error) {
	if _, err := uc.specialists.GetSpecialistByID(ctx, specialistID); err != nil {
		return nil, err
	}

	s, err := uc.repo.GetSchedule(ctx, specialistID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, httperr.ErrBusiness(availability.CodeScheduleNotFound)
	}
	return s, nil
}

func (uc *Manage) Replace(ctx context.Context, in ReplaceScheduleInput) (*models.WeeklySchedule, error) {
	if _, err := uc.specialists.GetSpecialistByID(ctx, in.SpecialistID); err != nil {
		return nil, err
	}

	if err := availability.ValidateSchedule(availability.WeeklySchedule{
		Enabled:             in.Enabled,
		BookingPeriodMonths: in.BookingPeriodMonths,
		WorkDays:            in.WorkDays,
	}); err != nil {
		return nil, err
	}

	row := &models.WeeklySchedule{
		SpecialistID:        in.SpecialistID,
		Enabled:             in.Enabled,
		BookingPeriodMonths: in.BookingPeriodMonths,
		WorkDays:            toModelWorkDays(in.WorkDays),
	}
	if err := uc.repo.ReplaceSchedule(ctx, row); err != nil {
		return nil, err
	}

	uc.changed(ctx, in.SpecialistID, in.ActorID, "schedule_replaced", "schedule", row.ID, map[string]any{
		"enabled":   in.Enabled,
		"work_days": len(in.WorkDays),
	})

	return uc.Get(ctx, in.SpecialistID)
}

func (uc *Manage) AddVacation(ctx context.Context, in AddVacationInput) (*models.VacationRange, error) {
	s, err := uc.Get(ctx, in.SpecialistID)
	if err != nil {
		return nil, err
	}

	from, err := availability.ParseDate(in.StartDate)
	if err != nil {
		return nil, err
	}
	to, err := availability.ParseDate(in.EndDate)
	if err != nil {
		return nil, err
	}
	if to.Before(from) {
		return nil, httperr.ErrBusinessf(availability.CodeInvalidVacation, "%s..%s", in.StartDate, in.EndDate)
	}

	v := &models.VacationRange{
		ScheduleID: s.ID,
		Enabled:    true,
		StartDate:  from,
		EndDate:    to,
		Note:       strings.TrimSpace(in.Note),
	}
	if err := uc.repo.AddVacation(ctx, v); err != nil {
		return nil, err
	}

	uc.changed(ctx, in.SpecialistID, in.ActorID, "vacation_added", "vacation", v.ID, map[string]any{
		"start": in.StartDate,
		"end":   in.EndDate,
	})
	return v, nil
}

func (uc *Manage) DeleteVacation(ctx context.Context, specialistID, actorID, vacationID uint) error {
	s, err := uc.Get(ctx, specialistID)
	if err != nil {
		return err
	}

	if err := uc.repo.DeleteVacation(ctx, s.ID, vacationID); err != nil {
		return err
	}

	uc.changed(ctx, specialistID, actorID, "vacation_deleted", "vacation", vacationID, nil)
	return nil
}

func (uc *Manage) changed(
	ctx context.Context,
	specialistID, actorID uint,
	action, entity string,
	entityID uint,
	meta map[string]any,
) {
	if uc.cache != nil {
		uc.cache.Invalidate(ctx, specialistID)
	}

	ev := audit.Event{
		SpecialistID: &specialistID,
		Action:       action,
		Entity:       entity,
		EntityID:     &entityID,
	}
	if actorID != 0 {
		ev.UserID = &actorID
	}
	if meta != nil {
		ev.Metadata = meta
	}
	uc.audit.Dispatch(ev)

	uc.log.Info("schedule changed",
		zap.Uint("specialist_id", specialistID),
		zap.String("action", action),
	)
}

func toModelWorkDays(days []availability.WorkDay) []models.WorkDay {
	out := make([]models.WorkDay, 0, len(days))
	for _, wd := range days {
		breaks := make([]models.LunchBreak, 0, len(wd.LunchBreaks))
		for _, lb := range wd.LunchBreaks {
			breaks = append(breaks, models.LunchBreak{
				Enabled:   lb.Enabled,
				StartTime: lb.StartTime,
				EndTime:   lb.EndTime,
			})
		}
		out = append(out, models.WorkDay{
			Weekday:     int(wd.Weekday),
			Active:      wd.Active,
			StartTime:   wd.StartTime,
			EndTime:     wd.EndTime,
			LunchBreaks: breaks,
		})
	}
	return out
}
