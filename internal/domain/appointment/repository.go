package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/wellness-booking/internal/models"
)

type Repository interface {
	// -------- Specialist --------
	GetSpecialistByID(
		ctx context.Context,
		id uint,
	) (*models.Specialist, error)

	// -------- Service --------
	GetService(
		ctx context.Context,
		specialistID uint,
		serviceID uint,
	) (*models.Service, error)

	// -------- Appointment (create / conflict) --------

	// CreateIfNoConflict inserts ap unless an occupying appointment of the same
	// specialist overlaps [ap.StartTime, ap.EndTime); the check and insert share
	// one transaction.
	CreateIfNoConflict(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Appointment (state change) --------
	GetAppointment(
		ctx context.Context,
		appointmentID uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Listings --------
	ListAppointmentsForPeriod(
		ctx context.Context,
		specialistID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	ListAppointmentsForUser(
		ctx context.Context,
		userID uint,
	) ([]models.Appointment, error)
}
