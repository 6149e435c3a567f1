package handlers

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/wellness-booking/internal/domain/availability"
	"github.com/BruksfildServices01/wellness-booking/internal/dto"
	"github.com/BruksfildServices01/wellness-booking/internal/httperr"
	"github.com/BruksfildServices01/wellness-booking/internal/httpresp"
	"github.com/BruksfildServices01/wellness-booking/internal/middleware"
	"github.com/BruksfildServices01/wellness-booking/internal/models"
	"github.com/BruksfildServices01/wellness-booking/internal/usecase/appointment"
)

////////////////////////////////////////////////////////
// DEPENDENCIES
////////////////////////////////////////////////////////

type AvailabilityQuery interface {
	Execute(ctx context.Context, in appointment.AvailabilityInput) (availability.Result, error)
}

type AppointmentCreator interface {
	Execute(ctx context.Context, in appointment.CreateAppointmentInput) (*models.Appointment, error)
}

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	db           *gorm.DB
	availability AvailabilityQuery
	create       AppointmentCreator
}

func NewPublicHandler(
	db *gorm.DB,
	availability AvailabilityQuery,
	create AppointmentCreator,
) *PublicHandler {
	return &PublicHandler{
		db:           db,
		availability: availability,
		create:       create,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type CreateAppointmentRequest struct {
	ServiceID   uint   `json:"service_id" binding:"required"`
	ClientName  string `json:"client_name"`
	ClientPhone string `json:"client_phone"`
	ClientEmail string `json:"client_email"`
	Date        string `json:"date" binding:"required"` // YYYY-MM-DD
	Time        string `json:"time" binding:"required"` // HH:MM
	Notes       string `json:"notes" binding:"max=255"`
}

////////////////////////////////////////////////////////
// SPECIALISTS / SERVICES
////////////////////////////////////////////////////////

func (h *PublicHandler) ListSpecialists(c *gin.Context) {
	var specialists []models.Specialist
	if err := h.db.WithContext(c.Request.Context()).
		Preload("Services", "active = ?", true).
		Where("active = ?", true).
		Order("name ASC").
		Find(&specialists).Error; err != nil {
		writeError(c, err)
		return
	}

	httpresp.List(c, specialists)
}

func (h *PublicHandler) ListServices(c *gin.Context) {
	specialistID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var services []models.Service
	if err := h.db.WithContext(c.Request.Context()).
		Where("specialist_id = ? AND active = ?", specialistID, true).
		Order("name ASC").
		Find(&services).Error; err != nil {
		writeError(c, err)
		return
	}

	httpresp.List(c, services)
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	specialistID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "date_required", "Query parameter date is required.")
		return
	}

	in := appointment.AvailabilityInput{
		SpecialistID: specialistID,
		Date:         date,
	}

	var err error
	if in.ServiceID, err = queryUint(c, "service_id"); err != nil {
		httperr.BadRequest(c, "invalid_service_id", "Invalid service_id.")
		return
	}
	if in.DurationMinutes, err = queryInt(c, "duration"); err != nil {
		httperr.BadRequest(c, "invalid_duration", "Invalid duration.")
		return
	}
	if in.StepMinutes, err = queryInt(c, "step"); err != nil {
		httperr.BadRequest(c, "invalid_step", "Invalid step.")
		return
	}
	if v := c.Query("only_available"); v != "" {
		if in.OnlyAvailable, err = strconv.ParseBool(v); err != nil {
			httperr.BadRequest(c, "invalid_only_available", "Invalid only_available.")
			return
		}
	}

	res, err := h.availability.Execute(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, dto.NewAvailabilityResponse(res))
}

////////////////////////////////////////////////////////
// BOOKING
////////////////////////////////////////////////////////

// CreateAppointment books for anonymous visitors and, when a token is sent,
// links the appointment to the user.
func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	specialistID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	in := appointment.CreateAppointmentInput{
		SpecialistID: specialistID,
		ServiceID:    req.ServiceID,
		ClientName:   req.ClientName,
		ClientPhone:  req.ClientPhone,
		ClientEmail:  req.ClientEmail,
		Date:         req.Date,
		Time:         req.Time,
		Notes:        req.Notes,
	}
	if userID, ok := middleware.UserID(c); ok {
		in.UserID = &userID
	}

	ap, err := h.create.Execute(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.Created(c, dto.NewAppointmentDTO(ap))
}

////////////////////////////////////////////////////////
// QUERY HELPERS
////////////////////////////////////////////////////////

func queryInt(c *gin.Context, name string) (int, error) {
	v := c.Query(name)
	if v == "" {
		return 0, nil
	}
	return strconv.Atoi(v)
}

func queryUint(c *gin.Context, name string) (uint, error) {
	v := c.Query(name)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.ParseUint(v, 10, 64)
	return uint(n), err
}
