package availability

import (
	"fmt"
	"time"

	"github.com/BruksfildServices01/wellness-booking/internal/httperr"
)

const (
	CodeInvalidTime      = "invalid_time"
	CodeInvalidDate      = "invalid_date"
	CodeInvalidDuration  = "invalid_duration"
	CodeInvalidStep      = "invalid_step"
	CodeInvalidWorkDay   = "invalid_work_day"
	CodeInvalidBreak     = "invalid_lunch_break"
	CodeInvalidVacation  = "invalid_vacation"
	CodeDuplicateWorkDay = "duplicate_work_day"
	CodeScheduleNotFound = "schedule_not_found"
)

const (
	DateLayout = "2006-01-02"
	endOfDay   = Clock(24 * 60)
)

// Clock is a wall-clock time of day in minutes since midnight.
type Clock int

// ParseClock accepts strictly "HH:MM" (two digits each). "24:00" is allowed
// and means end of day.
func ParseClock(s string) (Clock, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, httperr.ErrBusinessf(CodeInvalidTime, "%q", s)
	}
	h, okH := twoDigits(s[0], s[1])
	m, okM := twoDigits(s[3], s[4])
	if !okH || !okM || m > 59 || h > 24 || (h == 24 && m != 0) {
		return 0, httperr.ErrBusinessf(CodeInvalidTime, "%q", s)
	}
	return Clock(h*60 + m), nil
}

func twoDigits(a, b byte) (int, bool) {
	if a < '0' || a > '9' || b < '0' || b > '9' {
		return 0, false
	}
	return int(a-'0')*10 + int(b-'0'), true
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// ClockOf returns the wall-clock part of t in its own location.
func ClockOf(t time.Time) Clock {
	return Clock(t.Hour()*60 + t.Minute())
}

// ParseDate parses a calendar date. The result is midnight UTC and only
// carries the date; no timezone is implied.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, httperr.ErrBusinessf(CodeInvalidDate, "%q", s)
	}
	return d, nil
}

// WeekdayOf maps a date to 0=Sunday..6=Saturday.
func WeekdayOf(date string) (time.Weekday, error) {
	d, err := ParseDate(date)
	if err != nil {
		return 0, err
	}
	return d.Weekday(), nil
}

// Overlaps is the single overlap rule: half-open [a,b) and [c,d) share time.
// Touching ranges do not overlap.
func Overlaps(a, b, c, d Clock) bool {
	return a < d && b > c
}

// CandidateCount is the number of slot starts generated for a window.
func CandidateCount(workStart, workEnd Clock, duration, step int) int {
	span := int(workEnd - workStart)
	if duration <= 0 || step <= 0 || span < duration {
		return 0
	}
	return (span-duration)/step + 1
}
