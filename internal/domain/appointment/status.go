package appointment

import (
	"strings"

	"github.com/BruksfildServices01/wellness-booking/internal/httperr"
)

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusArchived  Status = "archived"
)

// Normalize folds legacy spellings ("CONFIRMED", " Pending ") into the canonical form.
func Normalize(raw string) Status {
	return Status(strings.ToLower(strings.TrimSpace(raw)))
}

// OccupiesTime reports whether an appointment in this status blocks its time range.
// Everything except cancelled and archived does.
func (s Status) OccupiesTime() bool {
	switch Normalize(string(s)) {
	case StatusCancelled, StatusArchived:
		return false
	}
	return true
}

// ReleasedStatuses are the statuses excluded when reading occupying bookings.
func ReleasedStatuses() []string {
	return []string{string(StatusCancelled), string(StatusArchived)}
}

// ===============================
// Validations
// ===============================

func CanConfirm(current Status) error {
	if current != StatusPending {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanCancel(current Status) error {
	if current != StatusPending && current != StatusConfirmed {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanComplete(current Status) error {
	if current != StatusConfirmed {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanArchive(current Status) error {
	if current != StatusCompleted && current != StatusCancelled {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func InitialStatus() Status {
	return StatusPending
}
