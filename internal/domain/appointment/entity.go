package appointment

import (
	"time"

	"github.com/BruksfildServices01/wellness-booking/internal/httperr"
	"github.com/BruksfildServices01/wellness-booking/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Confirm(ap *models.Appointment, now time.Time) error {
	if err := CanConfirm(Normalize(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusConfirmed)
	ap.ConfirmedAt = &now
	return nil
}

func Cancel(ap *models.Appointment, now time.Time) error {
	if err := CanCancel(Normalize(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	return nil
}

func Complete(ap *models.Appointment, now time.Time) error {
	if err := CanComplete(Normalize(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	return nil
}

func Archive(ap *models.Appointment, now time.Time) error {
	if err := CanArchive(Normalize(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusArchived)
	ap.ArchivedAt = &now
	return nil
}

// Transition applies the named action; used by the admin status endpoints.
func Transition(ap *models.Appointment, action string, now time.Time) error {
	switch action {
	case "confirm":
		return Confirm(ap, now)
	case "cancel":
		return Cancel(ap, now)
	case "complete":
		return Complete(ap, now)
	case "archive":
		return Archive(ap, now)
	}
	return httperr.ErrBusinessf("invalid_action", "%q", action)
}
