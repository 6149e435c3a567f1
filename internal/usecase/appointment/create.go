package appointment

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/wellness-booking/internal/audit"
	domain "github.com/BruksfildServices01/wellness-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/wellness-booking/internal/domain/availability"
	"github.com/BruksfildServices01/wellness-booking/internal/httperr"
	"github.com/BruksfildServices01/wellness-booking/internal/models"
	"github.com/BruksfildServices01/wellness-booking/internal/timezone"
)

const (
	defaultMinAdvanceMinutes = 120

	CodeSpecialistNotFound = "specialist_not_found"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	SpecialistID uint
	ServiceID    uint

	// UserID is set for authenticated clients.
	UserID *uint

	ClientName  string
	ClientPhone string
	ClientEmail string

	Date  string
	Time  string
	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo         domain.Repository
	availability *GetAvailability
	cache        availability.Cache
	audit        audit.Recorder
	log          *zap.Logger
	now          func() time.Time
}

func NewCreateAppointment(
	repo domain.Repository,
	slots *GetAvailability,
	audit audit.Recorder,
	log *zap.Logger,
) *CreateAppointment {
	return &CreateAppointment{
		repo:         repo,
		availability: slots,
		cache:        slots.cache,
		audit:        audit,
		log:          log,
		now:          time.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	in.ClientName = strings.TrimSpace(in.ClientName)
	if in.ClientName == "" {
		return nil, httperr.ErrBusiness("client_name_required")
	}

	// --------------------------------------------------
	// Specialist / date and time in its timezone
	// --------------------------------------------------
	sp, err := uc.availability.activeSpecialist(ctx, in.SpecialistID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(sp.Timezone)
	start, err := timezone.ParseDateTime(in.Date, in.Time, loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	// --------------------------------------------------
	// Minimum advance
	// --------------------------------------------------
	minAdvance := sp.MinAdvanceMinutes
	if minAdvance <= 0 {
		minAdvance = defaultMinAdvanceMinutes
	}
	now := uc.now().In(loc)
	if start.Before(now.Add(time.Duration(minAdvance) * time.Minute)) {
		return nil, httperr.ErrBusiness("too_soon")
	}

	// --------------------------------------------------
	// Service
	// --------------------------------------------------
	svc, err := uc.repo.GetService(ctx, sp.ID, in.ServiceID)
	if err != nil {
		return nil, err
	}
	duration := svc.DurationMin
	if duration <= 0 {
		duration = availability.DefaultServiceDurationMinutes
	}
	end := start.Add(time.Duration(duration) * time.Minute)

	// --------------------------------------------------
	// The requested start must be an available slot
	// --------------------------------------------------
	day, err := uc.availability.compute(ctx, sp, AvailabilityInput{
		SpecialistID:    sp.ID,
		Date:            in.Date,
		DurationMinutes: duration,
	}, false)
	if err != nil {
		return nil, err
	}
	if day.Reason != availability.ReasonNone {
		return nil, httperr.ErrBusinessf("slot_unavailable", "%s", day.Reason)
	}
	if !slotAvailable(day.Slots, availability.ClockOf(start).String()) {
		return nil, httperr.ErrBusiness("slot_unavailable")
	}

	// --------------------------------------------------
	// Persist
	// --------------------------------------------------
	ap := &models.Appointment{
		Reference:    uuid.NewString(),
		SpecialistID: sp.ID,
		ServiceID:    svc.ID,
		UserID:       in.UserID,
		ClientName:   in.ClientName,
		ClientPhone:  strings.TrimSpace(in.ClientPhone),
		ClientEmail:  strings.TrimSpace(in.ClientEmail),
		StartTime:    start,
		EndTime:      end,
		Status:       string(domain.InitialStatus()),
		Notes:        in.Notes,
	}

	if err := uc.repo.CreateIfNoConflict(ctx, ap); err != nil {
		return nil, err
	}
	ap.Service = *svc

	uc.cache.Invalidate(ctx, sp.ID)

	uc.audit.Dispatch(audit.Event{
		SpecialistID: &sp.ID,
		UserID:       in.UserID,
		Action:       "appointment_created",
		Entity:       "appointment",
		EntityID:     &ap.ID,
		Metadata: map[string]any{
			"reference": ap.Reference,
			"start":     start.Format(time.RFC3339),
		},
	})

	uc.log.Info("appointment created",
		zap.Uint("appointment_id", ap.ID),
		zap.Uint("specialist_id", sp.ID),
		zap.Time("start", start),
	)

	return ap, nil
}

func slotAvailable(slots []availability.TimeSlot, start string) bool {
	for _, s := range slots {
		if s.Start == start {
			return s.IsAvailable
		}
	}
	return false
}
