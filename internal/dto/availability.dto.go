package dto

import "github.com/BruksfildServices01/wellness-booking/internal/domain/availability"

type AvailabilityResponse struct {
	Date      string                  `json:"date"`
	Weekday   int                     `json:"weekday"`
	Available bool                    `json:"available"`
	Reason    string                  `json:"reason,omitempty"`
	Slots     []availability.TimeSlot `json:"slots"`
}

func NewAvailabilityResponse(res availability.Result) AvailabilityResponse {
	slots := res.Slots
	if slots == nil {
		slots = []availability.TimeSlot{}
	}
	return AvailabilityResponse{
		Date:      res.Date,
		Weekday:   int(res.Weekday),
		Available: res.Available(),
		Reason:    string(res.Reason),
		Slots:     slots,
	}
}
