package availability

import "time"

// WeeklySchedule is the recurring availability template of one specialist.
type WeeklySchedule struct {
	ID                  uint
	SpecialistID        uint
	Enabled             bool
	WorkDays            []WorkDay
	Vacations           []VacationRange
	BookingPeriodMonths int
}

// WorkDay describes one weekday. Weekday follows time.Weekday: 0=Sunday..6=Saturday.
type WorkDay struct {
	Weekday     time.Weekday
	Active      bool
	StartTime   string
	EndTime     string
	LunchBreaks []LunchBreak
}

type LunchBreak struct {
	Enabled   bool
	StartTime string
	EndTime   string
}

// VacationRange blocks every day from StartDate to EndDate, both inclusive ("YYYY-MM-DD").
type VacationRange struct {
	Enabled   bool
	StartDate string
	EndDate   string
}

// ExistingBooking is the canonical shape of an appointment as seen by the engine.
type ExistingBooking struct {
	SpecialistID uint
	Date         string
	StartTime    string
	EndTime      string
	Status       string
}

type TimeSlot struct {
	Start       string `json:"start"`
	End         string `json:"end"`
	IsAvailable bool   `json:"isAvailable"`
}

// Reason explains an empty day. It is empty when the day is workable,
// even if every slot ends up taken.
type Reason string

const (
	ReasonNone                  Reason = ""
	ReasonNoSchedule            Reason = "no_schedule"
	ReasonSpecialistUnavailable Reason = "specialist_unavailable"
	ReasonScheduleDisabled      Reason = "schedule_disabled"
	ReasonNotWorkingDay         Reason = "not_working_day"
	ReasonVacation              Reason = "vacation"
	ReasonOutsideBookingPeriod  Reason = "outside_booking_period"
)

const (
	DefaultSlotStepMinutes        = 30
	DefaultServiceDurationMinutes = 60
)

// Input carries one consistent snapshot of everything the engine needs.
type Input struct {
	Schedule *WeeklySchedule

	// Vacations and LunchBreaks are merged with those already attached to
	// Schedule and to the matching WorkDay.
	Vacations   []VacationRange
	LunchBreaks []LunchBreak
	Bookings    []ExistingBooking

	Date                   string
	ServiceDurationMinutes int
	SlotStepMinutes        int

	// OnlyAvailable drops unavailable slots from the result.
	OnlyAvailable bool

	// Today enables the booking horizon check ("YYYY-MM-DD").
	Today string
	// Now, when HasNow is set and Date equals Today, marks slots starting
	// before it as unavailable.
	Now    Clock
	HasNow bool
}

type Result struct {
	Date    string       `json:"date"`
	Weekday time.Weekday `json:"weekday"`
	Reason  Reason       `json:"reason,omitempty"`
	Slots   []TimeSlot   `json:"slots"`
}

// Available reports whether at least one slot can be booked.
func (r Result) Available() bool {
	for _, s := range r.Slots {
		if s.IsAvailable {
			return true
		}
	}
	return false
}
