package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/wellness-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/wellness-booking/internal/domain/availability"
	"github.com/BruksfildServices01/wellness-booking/internal/dto"
	"github.com/BruksfildServices01/wellness-booking/internal/httperr"
	"github.com/BruksfildServices01/wellness-booking/internal/models"
	"github.com/BruksfildServices01/wellness-booking/internal/timezone"
)

// ListAppointments serves the admin day/month views and a client's own list.
type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

func (uc *ListAppointments) ByDate(
	ctx context.Context,
	specialistID uint,
	date string,
) ([]dto.AppointmentListDTO, error) {

	sp, err := uc.repo.GetSpecialistByID(ctx, specialistID)
	if err != nil {
		return nil, err
	}

	start, end, err := timezone.DayBounds(date, timezone.Location(sp.Timezone))
	if err != nil {
		return nil, httperr.ErrBusinessf(availability.CodeInvalidDate, "%q", date)
	}

	return uc.period(ctx, sp, start, end)
}

func (uc *ListAppointments) ByMonth(
	ctx context.Context,
	specialistID uint,
	year int,
	month int,
) ([]dto.AppointmentListDTO, error) {

	if month < 1 || month > 12 || year < 1 {
		return nil, httperr.ErrBusinessf("invalid_month", "%d-%d", year, month)
	}

	sp, err := uc.repo.GetSpecialistByID(ctx, specialistID)
	if err != nil {
		return nil, err
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, timezone.Location(sp.Timezone))
	return uc.period(ctx, sp, start, start.AddDate(0, 1, 0))
}

func (uc *ListAppointments) ForUser(
	ctx context.Context,
	userID uint,
) ([]dto.AppointmentListDTO, error) {

	apps, err := uc.repo.ListAppointmentsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toListDTOs(apps), nil
}

func (uc *ListAppointments) period(
	ctx context.Context,
	sp *models.Specialist,
	start time.Time,
	end time.Time,
) ([]dto.AppointmentListDTO, error) {

	apps, err := uc.repo.ListAppointmentsForPeriod(ctx, sp.ID, start, end)
	if err != nil {
		return nil, err
	}

	loc := start.Location()
	out := toListDTOs(apps)
	for i := range out {
		out[i].StartTime = out[i].StartTime.In(loc)
		out[i].EndTime = out[i].EndTime.In(loc)
	}
	return out, nil
}

func toListDTOs(apps []models.Appointment) []dto.AppointmentListDTO {
	out := make([]dto.AppointmentListDTO, 0, len(apps))
	for _, ap := range apps {
		out = append(out, dto.AppointmentListDTO{
			ID:           ap.ID,
			Reference:    ap.Reference,
			SpecialistID: ap.SpecialistID,
			StartTime:    ap.StartTime,
			EndTime:      ap.EndTime,
			Status:       string(domain.Normalize(ap.Status)),
			ClientName:   ap.ClientName,
			ClientPhone:  ap.ClientPhone,
			ServiceName:  ap.Service.Name,
		})
	}
	return out
}
