package handlers

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/wellness-booking/internal/audit"
	"github.com/BruksfildServices01/wellness-booking/internal/domain/availability"
	"github.com/BruksfildServices01/wellness-booking/internal/httperr"
	"github.com/BruksfildServices01/wellness-booking/internal/httpresp"
	"github.com/BruksfildServices01/wellness-booking/internal/media"
	"github.com/BruksfildServices01/wellness-booking/internal/middleware"
	"github.com/BruksfildServices01/wellness-booking/internal/models"
	"github.com/BruksfildServices01/wellness-booking/internal/timezone"
)

type PhotoStore interface {
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
}

type SpecialistHandler struct {
	db     *gorm.DB
	cache  availability.Cache
	photos PhotoStore
	audit  audit.Recorder
}

func NewSpecialistHandler(
	db *gorm.DB,
	cache availability.Cache,
	photos PhotoStore,
	audit audit.Recorder,
) *SpecialistHandler {
	return &SpecialistHandler{db: db, cache: cache, photos: photos, audit: audit}
}

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// --------- Requests ---------

type CreateSpecialistRequest struct {
	Name              string `json:"name" binding:"required"`
	Slug              string `json:"slug" binding:"required"`
	Title             string `json:"title"`
	Bio               string `json:"bio"`
	Timezone          string `json:"timezone"`
	MinAdvanceMinutes *int   `json:"min_advance_minutes"`
}

type UpdateSpecialistRequest struct {
	Name              *string `json:"name,omitempty"`
	Title             *string `json:"title,omitempty"`
	Bio               *string `json:"bio,omitempty"`
	Timezone          *string `json:"timezone,omitempty"`
	MinAdvanceMinutes *int    `json:"min_advance_minutes,omitempty"`
	Active            *bool   `json:"active,omitempty"`
}

// --------- Handlers ---------

func (h *SpecialistHandler) List(c *gin.Context) {
	var specialists []models.Specialist
	if err := h.db.WithContext(c.Request.Context()).
		Preload("Services").
		Order("id ASC").
		Find(&specialists).Error; err != nil {
		writeError(c, err)
		return
	}

	httpresp.List(c, specialists)
}

func (h *SpecialistHandler) Create(c *gin.Context) {
	var req CreateSpecialistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	slug := strings.ToLower(strings.TrimSpace(req.Slug))
	if !slugPattern.MatchString(slug) {
		httperr.BadRequest(c, "invalid_slug", "Slug may contain lowercase letters, digits and dashes.")
		return
	}

	tz := strings.TrimSpace(req.Timezone)
	if tz == "" {
		tz = timezone.DefaultTimezone
	}
	if !timezone.IsValid(tz) {
		httperr.BadRequest(c, "invalid_timezone", "Unknown timezone.")
		return
	}

	sp := models.Specialist{
		Name:              strings.TrimSpace(req.Name),
		Slug:              slug,
		Title:             req.Title,
		Bio:               req.Bio,
		Timezone:          tz,
		MinAdvanceMinutes: 120,
		Active:            true,
	}
	if req.MinAdvanceMinutes != nil {
		if *req.MinAdvanceMinutes < 0 {
			httperr.BadRequest(c, "invalid_min_advance", "Minimum advance must be zero or positive.")
			return
		}
		sp.MinAdvanceMinutes = *req.MinAdvanceMinutes
	}

	ctx := c.Request.Context()

	var count int64
	if err := h.db.WithContext(ctx).Model(&models.Specialist{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		writeError(c, err)
		return
	}
	if count > 0 {
		httperr.Conflict(c, "slug_already_exists", "Slug is already taken.")
		return
	}

	if err := h.db.WithContext(ctx).Create(&sp).Error; err != nil {
		writeError(c, err)
		return
	}

	h.record(c, sp.ID, "specialist_created", nil)
	httpresp.Created(c, sp)
}

func (h *SpecialistHandler) Update(c *gin.Context) {
	sp, ok := h.load(c)
	if !ok {
		return
	}

	var req UpdateSpecialistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.Name != nil {
		sp.Name = strings.TrimSpace(*req.Name)
	}
	if req.Title != nil {
		sp.Title = *req.Title
	}
	if req.Bio != nil {
		sp.Bio = *req.Bio
	}
	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, "invalid_timezone", "Unknown timezone.")
			return
		}
		sp.Timezone = *req.Timezone
	}
	if req.MinAdvanceMinutes != nil {
		if *req.MinAdvanceMinutes < 0 {
			httperr.BadRequest(c, "invalid_min_advance", "Minimum advance must be zero or positive.")
			return
		}
		sp.MinAdvanceMinutes = *req.MinAdvanceMinutes
	}
	if req.Active != nil {
		sp.Active = *req.Active
	}

	if err := h.db.WithContext(c.Request.Context()).Omit("Services").Save(sp).Error; err != nil {
		writeError(c, err)
		return
	}

	h.record(c, sp.ID, "specialist_updated", nil)
	httpresp.OK(c, sp)
}

// UploadPhoto accepts a multipart "photo" field, stores it as WebP and
// saves the public URL on the specialist.
func (h *SpecialistHandler) UploadPhoto(c *gin.Context) {
	if h.photos == nil {
		httperr.ServiceUnavailable(c, "storage_disabled", "Photo storage is not configured.")
		return
	}

	sp, ok := h.load(c)
	if !ok {
		return
	}

	fh, err := c.FormFile("photo")
	if err != nil {
		httperr.BadRequest(c, "photo_required", "Multipart field photo is required.")
		return
	}
	if fh.Size > media.MaxPhotoBytes {
		httperr.BadRequest(c, "photo_too_large", "Photo must be smaller than 8 MB.")
		return
	}

	f, err := fh.Open()
	if err != nil {
		writeError(c, err)
		return
	}
	defer f.Close()

	data, err := media.ToWebP(f)
	if err != nil {
		writeError(c, err)
		return
	}

	ctx := c.Request.Context()
	key := fmt.Sprintf("specialists/%d/%s.webp", sp.ID, uuid.NewString())

	url, err := h.photos.Put(ctx, key, "image/webp", data)
	if err != nil {
		writeError(c, err)
		return
	}

	if err := h.db.WithContext(ctx).Model(sp).Update("photo_url", url).Error; err != nil {
		writeError(c, err)
		return
	}
	sp.PhotoURL = url

	h.record(c, sp.ID, "specialist_photo_updated", map[string]any{"key": key})
	httpresp.OK(c, sp)
}

// --------- Helpers ---------

func (h *SpecialistHandler) load(c *gin.Context) (*models.Specialist, bool) {
	id, ok := uintParam(c, "id")
	if !ok {
		return nil, false
	}

	var sp models.Specialist
	if err := h.db.WithContext(c.Request.Context()).First(&sp, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "specialist_not_found", "Specialist not found.")
			return nil, false
		}
		writeError(c, err)
		return nil, false
	}
	return &sp, true
}

func (h *SpecialistHandler) record(c *gin.Context, specialistID uint, action string, meta any) {
	if h.cache != nil {
		h.cache.Invalidate(c.Request.Context(), specialistID)
	}

	ev := audit.Event{
		SpecialistID: &specialistID,
		Action:       action,
		Entity:       "specialist",
		EntityID:     &specialistID,
		Metadata:     meta,
	}
	if userID, ok := middleware.UserID(c); ok {
		ev.UserID = &userID
	}
	h.audit.Dispatch(ev)
}
