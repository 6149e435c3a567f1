package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/wellness-booking/internal/audit"
	"github.com/BruksfildServices01/wellness-booking/internal/httperr"
	"github.com/BruksfildServices01/wellness-booking/internal/httpresp"
	"github.com/BruksfildServices01/wellness-booking/internal/middleware"
	"github.com/BruksfildServices01/wellness-booking/internal/models"
)

type ServiceHandler struct {
	db    *gorm.DB
	audit audit.Recorder
}

func NewServiceHandler(db *gorm.DB, audit audit.Recorder) *ServiceHandler {
	return &ServiceHandler{db: db, audit: audit}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	DurationMin int     `json:"duration_min" binding:"omitempty,min=1,max=1440"`
	Price       float64 `json:"price" binding:"min=0"`
}

type UpdateServiceRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	DurationMin *int     `json:"duration_min,omitempty" binding:"omitempty,min=1,max=1440"`
	Price       *float64 `json:"price,omitempty" binding:"omitempty,min=0"`
	Active      *bool    `json:"active,omitempty"`
}

// --------- Handlers ---------

func (h *ServiceHandler) List(c *gin.Context) {
	specialistID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	q := h.db.WithContext(c.Request.Context()).Where("specialist_id = ?", specialistID)
	switch strings.TrimSpace(c.Query("active")) {
	case "true":
		q = q.Where("active = ?", true)
	case "false":
		q = q.Where("active = ?", false)
	}

	var services []models.Service
	if err := q.Order("id ASC").Find(&services).Error; err != nil {
		writeError(c, err)
		return
	}

	httpresp.List(c, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	specialistID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	ctx := c.Request.Context()

	var sp models.Specialist
	if err := h.db.WithContext(ctx).Select("id").First(&sp, specialistID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "specialist_not_found", "Specialist not found.")
			return
		}
		writeError(c, err)
		return
	}

	duration := req.DurationMin
	if duration == 0 {
		duration = 60
	}

	svc := models.Service{
		SpecialistID: specialistID,
		Name:         strings.TrimSpace(req.Name),
		Description:  req.Description,
		DurationMin:  duration,
		Price:        req.Price,
		Active:       true,
	}
	if err := h.db.WithContext(ctx).Create(&svc).Error; err != nil {
		writeError(c, err)
		return
	}

	h.record(c, &svc, "service_created")
	httpresp.Created(c, svc)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	specialistID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	serviceID, ok := uintParam(c, "serviceID")
	if !ok {
		return
	}

	ctx := c.Request.Context()

	var svc models.Service
	if err := h.db.WithContext(ctx).
		Where("id = ? AND specialist_id = ?", serviceID, specialistID).
		First(&svc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "service_not_found", "Service not found.")
			return
		}
		writeError(c, err)
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.Name != nil {
		svc.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	if req.DurationMin != nil {
		svc.DurationMin = *req.DurationMin
	}
	if req.Price != nil {
		svc.Price = *req.Price
	}
	if req.Active != nil {
		svc.Active = *req.Active
	}

	if err := h.db.WithContext(ctx).Save(&svc).Error; err != nil {
		writeError(c, err)
		return
	}

	h.record(c, &svc, "service_updated")
	httpresp.OK(c, svc)
}

func (h *ServiceHandler) record(c *gin.Context, svc *models.Service, action string) {
	ev := audit.Event{
		SpecialistID: &svc.SpecialistID,
		Action:       action,
		Entity:       "service",
		EntityID:     &svc.ID,
	}
	if userID, ok := middleware.UserID(c); ok {
		ev.UserID = &userID
	}
	h.audit.Dispatch(ev)
}
