package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/wellness-booking/internal/domain/availability"
	"github.com/BruksfildServices01/wellness-booking/internal/httperr"
	"github.com/BruksfildServices01/wellness-booking/internal/httpresp"
	"github.com/BruksfildServices01/wellness-booking/internal/middleware"
	"github.com/BruksfildServices01/wellness-booking/internal/models"
	"github.com/BruksfildServices01/wellness-booking/internal/usecase/schedule"
)

type ScheduleManager interface {
	Get(ctx context.Context, specialistID uint) (*models.WeeklySchedule, error)
	Replace(ctx context.Context, in schedule.ReplaceScheduleInput) (*models.WeeklySchedule, error)
	AddVacation(ctx context.Context, in schedule.AddVacationInput) (*models.VacationRange, error)
	DeleteVacation(ctx context.Context, specialistID, actorID, vacationID uint) error
}

type ScheduleHandler struct {
	manage ScheduleManager
}

func NewScheduleHandler(manage ScheduleManager) *ScheduleHandler {
	return &ScheduleHandler{manage: manage}
}

// --------- Requests ---------

type LunchBreakConfig struct {
	Enabled   *bool  `json:"enabled"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

type WorkDayConfig struct {
	Weekday     *int               `json:"weekday" binding:"required,min=0,max=6"`
	Active      bool               `json:"active"`
	StartTime   string             `json:"start_time"`
	EndTime     string             `json:"end_time"`
	LunchBreaks []LunchBreakConfig `json:"lunch_breaks" binding:"dive"`
}

type ScheduleUpdateRequest struct {
	Enabled             *bool           `json:"enabled"`
	BookingPeriodMonths *int            `json:"booking_period_months" binding:"omitempty,min=0,max=24"`
	WorkDays            []WorkDayConfig `json:"work_days" binding:"dive"`
}

type VacationRequest struct {
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Note      string `json:"note" binding:"max=255"`
}

func (r ScheduleUpdateRequest) toInput(specialistID, actorID uint) schedule.ReplaceScheduleInput {
	in := schedule.ReplaceScheduleInput{
		SpecialistID:        specialistID,
		ActorID:             actorID,
		Enabled:             true,
		BookingPeriodMonths: 2,
		WorkDays:            make([]availability.WorkDay, 0, len(r.WorkDays)),
	}
	if r.Enabled != nil {
		in.Enabled = *r.Enabled
	}
	if r.BookingPeriodMonths != nil {
		in.BookingPeriodMonths = *r.BookingPeriodMonths
	}

	for _, d := range r.WorkDays {
		wd := availability.WorkDay{
			Weekday:   time.Weekday(*d.Weekday),
			Active:    d.Active,
			StartTime: d.StartTime,
			EndTime:   d.EndTime,
		}
		for _, lb := range d.LunchBreaks {
			enabled := true
			if lb.Enabled != nil {
				enabled = *lb.Enabled
			}
			wd.LunchBreaks = append(wd.LunchBreaks, availability.LunchBreak{
				Enabled:   enabled,
				StartTime: lb.StartTime,
				EndTime:   lb.EndTime,
			})
		}
		in.WorkDays = append(in.WorkDays, wd)
	}
	return in
}

// --------- Handlers ---------

func (h *ScheduleHandler) Get(c *gin.Context) {
	specialistID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	s, err := h.manage.Get(c.Request.Context(), specialistID)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, s)
}

func (h *ScheduleHandler) Update(c *gin.Context) {
	specialistID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req ScheduleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	actorID, _ := middleware.UserID(c)

	s, err := h.manage.Replace(c.Request.Context(), req.toInput(specialistID, actorID))
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, s)
}

func (h *ScheduleHandler) AddVacation(c *gin.Context) {
	specialistID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req VacationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	actorID, _ := middleware.UserID(c)

	v, err := h.manage.AddVacation(c.Request.Context(), schedule.AddVacationInput{
		SpecialistID: specialistID,
		ActorID:      actorID,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Note:         req.Note,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.Created(c, v)
}

func (h *ScheduleHandler) DeleteVacation(c *gin.Context) {
	specialistID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	vacationID, ok := uintParam(c, "vacationID")
	if !ok {
		return
	}

	actorID, _ := middleware.UserID(c)

	if err := h.manage.DeleteVacation(c.Request.Context(), specialistID, actorID, vacationID); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
