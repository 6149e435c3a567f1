package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/wellness-booking/internal/domain/availability"
	"github.com/BruksfildServices01/wellness-booking/internal/httperr"
	"github.com/BruksfildServices01/wellness-booking/internal/httpresp"
	"github.com/BruksfildServices01/wellness-booking/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

type auditFilter struct {
	specialistID uint
	action       string
	entity       string
	from         string
	to           string
	page         int
	limit        int
}

func parseAuditFilter(c *gin.Context) (auditFilter, bool) {
	f := auditFilter{
		action: c.Query("action"),
		entity: c.Query("entity"),
		from:   c.Query("from"),
		to:     c.Query("to"),
	}

	if v := c.Query("specialist_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_specialist_id", "Invalid specialist_id.")
			return f, false
		}
		f.specialistID = uint(id)
	}

	for _, d := range []string{f.from, f.to} {
		if d == "" {
			continue
		}
		if _, err := availability.ParseDate(d); err != nil {
			httperr.BadRequest(c, "invalid_date", "Dates must be YYYY-MM-DD.")
			return f, false
		}
	}

	f.page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if f.page <= 0 {
		f.page = 1
	}
	f.limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	if f.limit <= 0 || f.limit > 200 {
		f.limit = 50
	}
	return f, true
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	f, ok := parseAuditFilter(c)
	if !ok {
		return
	}

	// --------------------------------------------------
	// Filters
	// --------------------------------------------------

	q := h.db.WithContext(c.Request.Context()).Model(&models.AuditLog{})

	if f.specialistID != 0 {
		q = q.Where("specialist_id = ?", f.specialistID)
	}
	if f.action != "" {
		q = q.Where("action = ?", f.action)
	}
	if f.entity != "" {
		q = q.Where("entity = ?", f.entity)
	}
	if f.from != "" {
		from, _ := availability.ParseDate(f.from)
		q = q.Where("created_at >= ?", from)
	}
	if f.to != "" {
		to, _ := availability.ParseDate(f.to)
		q = q.Where("created_at < ?", to.AddDate(0, 0, 1))
	}

	// --------------------------------------------------
	// Total + page
	// --------------------------------------------------

	var total int64
	if err := q.Count(&total).Error; err != nil {
		writeError(c, err)
		return
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC").
		Limit(f.limit).
		Offset((f.page - 1) * f.limit).
		Find(&logs).Error; err != nil {
		writeError(c, err)
		return
	}

	httpresp.Page(c, logs, f.page, f.limit, total)
}
