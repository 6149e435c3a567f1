package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/wellness-booking/internal/domain/availability"
	"github.com/BruksfildServices01/wellness-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/wellness-booking/internal/httperr"
	"github.com/BruksfildServices01/wellness-booking/internal/models"
)

type ScheduleGormRepository struct {
	db *gorm.DB
}

func NewScheduleGormRepository(db *gorm.DB) *ScheduleGormRepository {
	return &ScheduleGormRepository{db: db}
}

// --------------------------------------------------
// Availability reads
// --------------------------------------------------

func (r *ScheduleGormRepository) GetWeeklySchedule(
	ctx context.Context,
	specialistID uint,
) (*availability.WeeklySchedule, error) {

	var s models.WeeklySchedule
	err := r.db.WithContext(ctx).
		Where("specialist_id = ?", specialistID).
		First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	// Work days and vacations are fetched separately by the caller.
	return ToWeeklySchedule(s), nil
}

func (r *ScheduleGormRepository) GetVacations(
	ctx context.Context,
	scheduleID uint,
) ([]availability.VacationRange, error) {

	var rows []models.VacationRange
	if err := r.db.WithContext(ctx).
		Where("schedule_id = ?", scheduleID).
		Order("start_date ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toVacations(rows), nil
}

func (r *ScheduleGormRepository) GetWorkDayAndBreaks(
	ctx context.Context,
	scheduleID uint,
	weekday time.Weekday,
) (*availability.WorkDay, []availability.LunchBreak, error) {

	var wd models.WorkDay
	err := r.db.WithContext(ctx).
		Preload("LunchBreaks").
		Where("schedule_id = ? AND weekday = ?", scheduleID, int(weekday)).
		First(&wd).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}

	day := toWorkDay(wd)
	breaks := day.LunchBreaks
	day.LunchBreaks = nil
	return &day, breaks, nil
}

// --------------------------------------------------
// Administration
// --------------------------------------------------

func (r *ScheduleGormRepository) GetSchedule(
	ctx context.Context,
	specialistID uint,
) (*models.WeeklySchedule, error) {

	var s models.WeeklySchedule
	err := r.db.WithContext(ctx).
		Preload("WorkDays", func(db *gorm.DB) *gorm.DB { return db.Order("weekday ASC") }).
		Preload("WorkDays.LunchBreaks", func(db *gorm.DB) *gorm.DB { return db.Order("start_time ASC") }).
		Preload("Vacations", func(db *gorm.DB) *gorm.DB { return db.Order("start_date ASC") }).
		Where("specialist_id = ?", specialistID).
		First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ScheduleGormRepository) ReplaceSchedule(
	ctx context.Context,
	s *models.WeeklySchedule,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.WeeklySchedule
		err := tx.Where("specialist_id = ?", s.SpecialistID).First(&existing).Error

		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			row := models.WeeklySchedule{
				SpecialistID:        s.SpecialistID,
				Enabled:             s.Enabled,
				BookingPeriodMonths: s.BookingPeriodMonths,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
			s.ID = row.ID
		case err != nil:
			return err
		default:
			s.ID = existing.ID
			if err := tx.Model(&existing).Updates(map[string]any{
				"enabled":               s.Enabled,
				"booking_period_months": s.BookingPeriodMonths,
			}).Error; err != nil {
				return err
			}
		}

		if err := tx.
			Where("work_day_id IN (?)", tx.Model(&models.WorkDay{}).Select("id").Where("schedule_id = ?", s.ID)).
			Delete(&models.LunchBreak{}).Error; err != nil {
			return err
		}
		if err := tx.Where("schedule_id = ?", s.ID).Delete(&models.WorkDay{}).Error; err != nil {
			return err
		}

		for i := range s.WorkDays {
			s.WorkDays[i].ID = 0
			s.WorkDays[i].ScheduleID = s.ID
			for j := range s.WorkDays[i].LunchBreaks {
				s.WorkDays[i].LunchBreaks[j].ID = 0
			}
		}
		if len(s.WorkDays) > 0 {
			if err := tx.Create(&s.WorkDays).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *ScheduleGormRepository) AddVacation(
	ctx context.Context,
	v *models.VacationRange,
) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *ScheduleGormRepository) DeleteVacation(
	ctx context.Context,
	scheduleID uint,
	vacationID uint,
) error {

	res := r.db.WithContext(ctx).
		Where("id = ? AND schedule_id = ?", vacationID, scheduleID).
		Delete(&models.VacationRange{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness("vacation_not_found")
	}
	return nil
}

// Compile-time check
var (
	_ availability.ScheduleRepository = (*ScheduleGormRepository)(nil)
	_ schedule.Repository             = (*ScheduleGormRepository)(nil)
)
