package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/wellness-booking/internal/audit"
	domain "github.com/BruksfildServices01/wellness-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/wellness-booking/internal/domain/availability"
	"github.com/BruksfildServices01/wellness-booking/internal/httperr"
	"github.com/BruksfildServices01/wellness-booking/internal/models"
	"github.com/BruksfildServices01/wellness-booking/internal/timezone"
)

const (
	ActionConfirm  = "confirm"
	ActionCancel   = "cancel"
	ActionComplete = "complete"
	ActionArchive  = "archive"
)

var auditActions = map[string]string{
	ActionConfirm:  "appointment_confirmed",
	ActionCancel:   "appointment_cancelled",
	ActionComplete: "appointment_completed",
	ActionArchive:  "appointment_archived",
}

type ChangeStatusInput struct {
	AppointmentID uint
	Action        string

	ActorID   uint
	ActorRole string
}

// ChangeAppointmentStatus applies one status transition. Admins may apply
// any of them; clients may only cancel their own appointments.
type ChangeAppointmentStatus struct {
	repo  domain.Repository
	cache availability.Cache
	audit audit.Recorder
	now   func() time.Time
}

func NewChangeAppointmentStatus(
	repo domain.Repository,
	cache availability.Cache,
	audit audit.Recorder,
) *ChangeAppointmentStatus {
	if cache == nil {
		cache = nopCache{}
	}
	return &ChangeAppointmentStatus{
		repo:  repo,
		cache: cache,
		audit: audit,
		now:   time.Now,
	}
}

func (uc *ChangeAppointmentStatus) Execute(
	ctx context.Context,
	in ChangeStatusInput,
) (*models.Appointment, error) {

	auditAction, ok := auditActions[in.Action]
	if !ok {
		return nil, httperr.ErrBusinessf("invalid_action", "%q", in.Action)
	}

	ap, err := uc.repo.GetAppointment(ctx, in.AppointmentID)
	if err != nil {
		return nil, err
	}

	if in.ActorRole != models.RoleAdmin {
		if ap.UserID == nil || *ap.UserID != in.ActorID {
			return nil, httperr.ErrBusiness("appointment_not_found")
		}
		if in.Action != ActionCancel {
			return nil, httperr.ErrBusiness("forbidden_action")
		}
	}

	sp, err := uc.repo.GetSpecialistByID(ctx, ap.SpecialistID)
	if err != nil {
		return nil, err
	}

	now := uc.now().In(timezone.Location(sp.Timezone))
	if err := domain.Transition(ap, in.Action, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.cache.Invalidate(ctx, ap.SpecialistID)

	uc.audit.Dispatch(audit.Event{
		SpecialistID: &ap.SpecialistID,
		UserID:       &in.ActorID,
		Action:       auditAction,
		Entity:       "appointment",
		EntityID:     &ap.ID,
	})

	return ap, nil
}
