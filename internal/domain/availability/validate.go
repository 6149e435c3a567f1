package availability

import (
	"time"

	"github.com/BruksfildServices01/wellness-booking/internal/httperr"
)

// ValidateSchedule checks every work day, break and vacation of s. The engine
// only validates what a given date touches; this is the stricter check used
// before a schedule is saved.
func ValidateSchedule(s WeeklySchedule) error {
	if _, err := indexWorkDays(s.WorkDays); err != nil {
		return err
	}
	for _, wd := range s.WorkDays {
		if err := ValidateWorkDay(wd); err != nil {
			return err
		}
	}
	for _, v := range s.Vacations {
		if _, _, err := parseVacation(v); err != nil {
			return err
		}
	}
	if s.BookingPeriodMonths < 0 {
		return httperr.ErrBusinessf(CodeInvalidWorkDay, "booking period %d", s.BookingPeriodMonths)
	}
	return nil
}

// ValidateWorkDay checks the day span and its breaks. Inactive days may leave
// their times empty.
func ValidateWorkDay(wd WorkDay) error {
	if wd.Weekday < time.Sunday || wd.Weekday > time.Saturday {
		return httperr.ErrBusinessf(CodeInvalidWorkDay, "weekday %d", wd.Weekday)
	}
	if !wd.Active && wd.StartTime == "" && wd.EndTime == "" {
		return nil
	}
	start, end, err := parseSpan(wd.StartTime, wd.EndTime, CodeInvalidWorkDay)
	if err != nil {
		return err
	}
	for _, lb := range wd.LunchBreaks {
		bs, be, err := parseSpan(lb.StartTime, lb.EndTime, CodeInvalidBreak)
		if err != nil {
			return err
		}
		if bs < start || be > end {
			return httperr.ErrBusinessf(CodeInvalidBreak, "%s-%s outside %s-%s", bs, be, start, end)
		}
	}
	return nil
}

func indexWorkDays(days []WorkDay) (map[time.Weekday]WorkDay, error) {
	idx := make(map[time.Weekday]WorkDay, len(days))
	for _, wd := range days {
		if _, dup := idx[wd.Weekday]; dup {
			return nil, httperr.ErrBusinessf(CodeDuplicateWorkDay, "weekday %d", wd.Weekday)
		}
		idx[wd.Weekday] = wd
	}
	return idx, nil
}

func parseSpan(startStr, endStr, code string) (Clock, Clock, error) {
	start, err := ParseClock(startStr)
	if err != nil {
		return 0, 0, err
	}
	end, err := ParseClock(endStr)
	if err != nil {
		return 0, 0, err
	}
	if start >= end {
		return 0, 0, httperr.ErrBusinessf(code, "%s-%s", startStr, endStr)
	}
	return start, end, nil
}

func parseVacation(v VacationRange) (time.Time, time.Time, error) {
	from, err := ParseDate(v.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := ParseDate(v.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, httperr.ErrBusinessf(CodeInvalidVacation, "%s..%s", v.StartDate, v.EndDate)
	}
	return from, to, nil
}
