package handlers

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/wellness-booking/internal/dto"
	"github.com/BruksfildServices01/wellness-booking/internal/httperr"
	"github.com/BruksfildServices01/wellness-booking/internal/httpresp"
	"github.com/BruksfildServices01/wellness-booking/internal/middleware"
	"github.com/BruksfildServices01/wellness-booking/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentLister interface {
	ByDate(ctx context.Context, specialistID uint, date string) ([]dto.AppointmentListDTO, error)
	ByMonth(ctx context.Context, specialistID uint, year, month int) ([]dto.AppointmentListDTO, error)
}

// AppointmentHandler is the admin view of a specialist's appointments.
type AppointmentHandler struct {
	list   AppointmentLister
	status StatusChanger
}

func NewAppointmentHandler(list AppointmentLister, status StatusChanger) *AppointmentHandler {
	return &AppointmentHandler{list: list, status: status}
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	specialistID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "date_required", "Query parameter date is required.")
		return
	}

	out, err := h.list.ByDate(c.Request.Context(), specialistID, date)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.List(c, out)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	specialistID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	year, errY := strconv.Atoi(c.Query("year"))
	month, errM := strconv.Atoi(c.Query("month"))
	if errY != nil || errM != nil {
		httperr.BadRequest(c, "invalid_month", "Query parameters year and month are required.")
		return
	}

	out, err := h.list.ByMonth(c.Request.Context(), specialistID, year, month)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.List(c, out)
}

// ======================================================
// STATUS
// ======================================================

// ChangeStatus handles PATCH /appointments/:id/:action.
func (h *AppointmentHandler) ChangeStatus(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	actorID, _ := middleware.UserID(c)

	ap, err := h.status.Execute(c.Request.Context(), appointment.ChangeStatusInput{
		AppointmentID: id,
		Action:        c.Param("action"),
		ActorID:       actorID,
		ActorRole:     c.GetString(middleware.ContextUserRole),
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, dto.NewAppointmentDTO(ap))
}
