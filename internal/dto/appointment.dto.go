package dto

import (
	"time"

	"github.com/BruksfildServices01/wellness-booking/internal/models"
)

// AppointmentDTO is what clients see after booking or cancelling.
type AppointmentDTO struct {
	ID           uint      `json:"id"`
	Reference    string    `json:"reference"`
	SpecialistID uint      `json:"specialist_id"`
	ServiceID    uint      `json:"service_id"`
	ServiceName  string    `json:"service_name,omitempty"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	Status       string    `json:"status"`
	ClientName   string    `json:"client_name"`
	Notes        string    `json:"notes,omitempty"`
}

func NewAppointmentDTO(ap *models.Appointment) AppointmentDTO {
	return AppointmentDTO{
		ID:           ap.ID,
		Reference:    ap.Reference,
		SpecialistID: ap.SpecialistID,
		ServiceID:    ap.ServiceID,
		ServiceName:  ap.Service.Name,
		StartTime:    ap.StartTime,
		EndTime:      ap.EndTime,
		Status:       ap.Status,
		ClientName:   ap.ClientName,
		Notes:        ap.Notes,
	}
}
