package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/wellness-booking/internal/dto"
	"github.com/BruksfildServices01/wellness-booking/internal/httperr"
	"github.com/BruksfildServices01/wellness-booking/internal/httpresp"
	"github.com/BruksfildServices01/wellness-booking/internal/middleware"
	"github.com/BruksfildServices01/wellness-booking/internal/models"
	"github.com/BruksfildServices01/wellness-booking/internal/usecase/appointment"
)

type UserAppointmentLister interface {
	ForUser(ctx context.Context, userID uint) ([]dto.AppointmentListDTO, error)
}

type StatusChanger interface {
	Execute(ctx context.Context, in appointment.ChangeStatusInput) (*models.Appointment, error)
}

type MeHandler struct {
	db     *gorm.DB
	list   UserAppointmentLister
	status StatusChanger
	create AppointmentCreator
}

func NewMeHandler(
	db *gorm.DB,
	list UserAppointmentLister,
	status StatusChanger,
	create AppointmentCreator,
) *MeHandler {
	return &MeHandler{db: db, list: list, status: status, create: create}
}

type MeCreateAppointmentRequest struct {
	SpecialistID uint `json:"specialist_id" binding:"required"`
	CreateAppointmentRequest
}

func (h *MeHandler) GetMe(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		httperr.Unauthorized(c, "user_not_in_context", "Authentication required.")
		return
	}

	var user models.User
	if err := h.db.WithContext(c.Request.Context()).First(&user, userID).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "User not found.")
		return
	}

	httpresp.OK(c, gin.H{"user": userView(&user)})
}

func (h *MeHandler) Appointments(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	out, err := h.list.ForUser(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.List(c, out)
}

func (h *MeHandler) CreateAppointment(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	var req MeCreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	name := req.ClientName
	phone := req.ClientPhone
	if name == "" || phone == "" {
		var user models.User
		if err := h.db.WithContext(c.Request.Context()).First(&user, userID).Error; err == nil {
			if name == "" {
				name = user.Name
			}
			if phone == "" {
				phone = user.Phone
			}
		}
	}

	ap, err := h.create.Execute(c.Request.Context(), appointment.CreateAppointmentInput{
		SpecialistID: req.SpecialistID,
		ServiceID:    req.ServiceID,
		UserID:       &userID,
		ClientName:   name,
		ClientPhone:  phone,
		ClientEmail:  req.ClientEmail,
		Date:         req.Date,
		Time:         req.Time,
		Notes:        req.Notes,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.Created(c, dto.NewAppointmentDTO(ap))
}

func (h *MeHandler) CancelAppointment(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	ap, err := h.status.Execute(c.Request.Context(), appointment.ChangeStatusInput{
		AppointmentID: id,
		Action:        appointment.ActionCancel,
		ActorID:       userID,
		ActorRole:     c.GetString(middleware.ContextUserRole),
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, dto.NewAppointmentDTO(ap))
}
