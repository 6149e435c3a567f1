package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/wellness-booking/internal/httperr"
)

// businessStatus maps business codes to HTTP statuses; anything unlisted is a 400.
var businessStatus = map[string]int{
	"specialist_not_found":  http.StatusNotFound,
	"service_not_found":     http.StatusNotFound,
	"appointment_not_found": http.StatusNotFound,
	"schedule_not_found":    http.StatusNotFound,
	"vacation_not_found":    http.StatusNotFound,
	"user_not_found":        http.StatusNotFound,

	"time_conflict":    http.StatusConflict,
	"slot_unavailable": http.StatusConflict,
	"invalid_state":    http.StatusConflict,

	"forbidden_action": http.StatusForbidden,

	"invalid_init_data":  http.StatusUnauthorized,
	"expired_init_data":  http.StatusUnauthorized,
	"replayed_init_data": http.StatusUnauthorized,
}

var businessMessages = map[string]string{
	"specialist_not_found":  "Specialist not found.",
	"service_not_found":     "Service not found.",
	"appointment_not_found": "Appointment not found.",
	"schedule_not_found":    "Schedule is not configured.",
	"vacation_not_found":    "Vacation not found.",
	"time_conflict":         "This time is already taken.",
	"slot_unavailable":      "This time is not available.",
	"invalid_state":         "Action not allowed in the current status.",
	"forbidden_action":      "Action not allowed.",
	"too_soon":              "This time is too soon to book.",
	"invalid_date_or_time":  "Invalid date or time.",
	"invalid_date":          "Invalid date, expected YYYY-MM-DD.",
	"invalid_time":          "Invalid time, expected HH:MM.",
}

// writeError renders business errors with their code and hides everything
// else behind a logged 500.
func writeError(c *gin.Context, err error) {
	var be httperr.BusinessError
	if !errors.As(err, &be) {
		zap.L().Error("request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		_ = c.Error(err)
		httperr.Internal(c, "internal_error", "Unexpected error.")
		return
	}

	status, found := businessStatus[be.Code]
	if !found {
		status = http.StatusBadRequest
	}

	msg := businessMessages[be.Code]
	if msg == "" {
		msg = be.Error()
	} else if be.Detail != "" {
		msg += " (" + be.Detail + ")"
	}

	httperr.Write(c, status, be.Code, msg)
}

func uintParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		httperr.BadRequest(c, "invalid_"+name, "Invalid "+name+".")
		return 0, false
	}
	return uint(v), true
}
