package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/wellness-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/wellness-booking/internal/domain/availability"
	"github.com/BruksfildServices01/wellness-booking/internal/httperr"
	"github.com/BruksfildServices01/wellness-booking/internal/models"
	"github.com/BruksfildServices01/wellness-booking/internal/timezone"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Specialist
// --------------------------------------------------

func (r *AppointmentGormRepository) GetSpecialistByID(
	ctx context.Context,
	id uint,
) (*models.Specialist, error) {

	var sp models.Specialist
	if err := r.db.WithContext(ctx).First(&sp, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("specialist_not_found")
		}
		return nil, err
	}
	return &sp, nil
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	specialistID uint,
	serviceID uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND specialist_id = ? AND active = ?", serviceID, specialistID, true).
		First(&svc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("service_not_found")
		}
		return nil, err
	}
	return &svc, nil
}

func (r *AppointmentGormRepository) GetServiceDuration(
	ctx context.Context,
	specialistID uint,
	serviceID uint,
) (int, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).
		Select("id", "duration_min").
		Where("id = ? AND specialist_id = ? AND active = ?", serviceID, specialistID, true).
		First(&svc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, httperr.ErrBusiness("service_not_found")
		}
		return 0, err
	}

	if svc.DurationMin <= 0 {
		return availability.DefaultServiceDurationMinutes, nil
	}
	return svc.DurationMin, nil
}

// --------------------------------------------------
// Appointment (create / conflict)
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateIfNoConflict(
	ctx context.Context,
	ap *models.Appointment,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var conflicts []models.Appointment
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			Where(
				"specialist_id = ? AND status NOT IN ? AND start_time < ? AND end_time > ?",
				ap.SpecialistID, domain.ReleasedStatuses(), ap.EndTime, ap.StartTime,
			).
			Find(&conflicts).Error; err != nil {
			return err
		}

		if len(conflicts) > 0 {
			return httperr.ErrBusiness("time_conflict")
		}

		return tx.Create(ap).Error
	})

	if httperr.IsExclusionConflict(err) {
		return httperr.ErrBusiness("time_conflict")
	}
	return err
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	appointmentID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Service").
		First(&ap, appointmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("appointment_not_found")
		}
		return nil, err
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(ap).Error
}

// --------------------------------------------------
// Listings
// --------------------------------------------------

func (r *AppointmentGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	specialistID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Service").
		Where(
			"specialist_id = ? AND start_time >= ? AND start_time < ?",
			specialistID, start, end,
		).
		Order("start_time ASC").
		Find(&apps).Error

	return apps, err
}

func (r *AppointmentGormRepository) ListAppointmentsForUser(
	ctx context.Context,
	userID uint,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Service").
		Where("user_id = ?", userID).
		Order("start_time DESC").
		Find(&apps).Error

	return apps, err
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

// GetExistingBookings reads the occupying appointments touching the local
// calendar day of the specialist and normalizes them.
func (r *AppointmentGormRepository) GetExistingBookings(
	ctx context.Context,
	specialistID uint,
	date string,
) ([]availability.ExistingBooking, error) {

	var sp models.Specialist
	if err := r.db.WithContext(ctx).
		Select("id", "timezone").
		First(&sp, specialistID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("specialist_not_found")
		}
		return nil, err
	}

	dayStart, dayEnd, err := timezone.DayBounds(date, timezone.Location(sp.Timezone))
	if err != nil {
		return nil, httperr.ErrBusinessf(availability.CodeInvalidDate, "%q", date)
	}

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("id", "specialist_id", "start_time", "end_time", "status").
		Where(
			"specialist_id = ? AND status NOT IN ? AND start_time < ? AND end_time > ?",
			specialistID, domain.ReleasedStatuses(), dayEnd, dayStart,
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	out := make([]availability.ExistingBooking, 0, len(apps))
	for _, ap := range apps {
		out = append(out, toExistingBooking(ap, dayStart, dayEnd))
	}
	return out, nil
}

// Compile-time check
var (
	_ domain.Repository              = (*AppointmentGormRepository)(nil)
	_ availability.BookingRepository = (*AppointmentGormRepository)(nil)
	_ availability.ServiceCatalog    = (*AppointmentGormRepository)(nil)
)
