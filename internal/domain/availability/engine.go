package availability

import (
	"github.com/BruksfildServices01/wellness-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/wellness-booking/internal/httperr"
)

type interval struct {
	start Clock
	end   Clock
}

// Compute turns a schedule snapshot into the slot grid of one date.
//
// Slots start at the work day start and advance by the step while the whole
// service duration still fits before the day end. A slot is unavailable when
// it overlaps any enabled lunch break or occupying booking. Days that cannot
// be booked at all return no slots and a Reason.
//
// Compute has no side effects and is safe for concurrent use.
func Compute(in Input) (Result, error) {
	date, err := ParseDate(in.Date)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		Date:    in.Date,
		Weekday: date.Weekday(),
		Slots:   []TimeSlot{},
	}

	if in.ServiceDurationMinutes <= 0 {
		return Result{}, httperr.ErrBusinessf(CodeInvalidDuration, "%d", in.ServiceDurationMinutes)
	}
	step := in.SlotStepMinutes
	if step == 0 {
		step = DefaultSlotStepMinutes
	}
	if step < 0 {
		return Result{}, httperr.ErrBusinessf(CodeInvalidStep, "%d", step)
	}

	if in.Schedule == nil {
		return Result{}, httperr.ErrBusiness(CodeScheduleNotFound)
	}
	schedule := in.Schedule

	if !schedule.Enabled {
		res.Reason = ReasonScheduleDisabled
		return res, nil
	}

	if in.Today != "" {
		inPeriod, err := withinBookingPeriod(in.Today, in.Date, schedule.BookingPeriodMonths)
		if err != nil {
			return Result{}, err
		}
		if !inPeriod {
			res.Reason = ReasonOutsideBookingPeriod
			return res, nil
		}
	}

	days, err := indexWorkDays(schedule.WorkDays)
	if err != nil {
		return Result{}, err
	}
	day, ok := days[res.Weekday]
	if !ok || !day.Active {
		res.Reason = ReasonNotWorkingDay
		return res, nil
	}

	onVacation, err := coveredByVacation(in.Date, schedule.Vacations, in.Vacations)
	if err != nil {
		return Result{}, err
	}
	if onVacation {
		res.Reason = ReasonVacation
		return res, nil
	}

	workStart, workEnd, err := parseSpan(day.StartTime, day.EndTime, CodeInvalidWorkDay)
	if err != nil {
		return Result{}, err
	}

	busy, err := busyIntervals(in, day.LunchBreaks)
	if err != nil {
		return Result{}, err
	}

	duration := Clock(in.ServiceDurationMinutes)
	pastCutoff := Clock(-1)
	if in.HasNow && in.Today == in.Date {
		pastCutoff = in.Now
	}

	for cur := workStart; cur+duration <= workEnd; cur += Clock(step) {
		end := cur + duration

		available := cur >= pastCutoff
		for _, b := range busy {
			if !available {
				break
			}
			if Overlaps(cur, end, b.start, b.end) {
				available = false
			}
		}

		if in.OnlyAvailable && !available {
			continue
		}

		res.Slots = append(res.Slots, TimeSlot{
			Start:       cur.String(),
			End:         end.String(),
			IsAvailable: available,
		})
	}

	return res, nil
}

// busyIntervals collects enabled lunch breaks (from the work day and the
// input) and occupying bookings of the requested date.
func busyIntervals(in Input, dayBreaks []LunchBreak) ([]interval, error) {
	busy := make([]interval, 0, len(dayBreaks)+len(in.LunchBreaks)+len(in.Bookings))

	for _, breaks := range [][]LunchBreak{dayBreaks, in.LunchBreaks} {
		for _, lb := range breaks {
			if !lb.Enabled {
				continue
			}
			s, e, err := parseSpan(lb.StartTime, lb.EndTime, CodeInvalidBreak)
			if err != nil {
				return nil, err
			}
			busy = append(busy, interval{start: s, end: e})
		}
	}

	for _, b := range in.Bookings {
		if b.Date != "" && b.Date != in.Date {
			continue
		}
		if !appointment.Status(b.Status).OccupiesTime() {
			continue
		}
		s, e, err := parseSpan(b.StartTime, b.EndTime, CodeInvalidTime)
		if err != nil {
			return nil, err
		}
		busy = append(busy, interval{start: s, end: e})
	}

	return busy, nil
}

func coveredByVacation(date string, lists ...[]VacationRange) (bool, error) {
	d, err := ParseDate(date)
	if err != nil {
		return false, err
	}
	for _, list := range lists {
		for _, v := range list {
			if !v.Enabled {
				continue
			}
			from, to, err := parseVacation(v)
			if err != nil {
				return false, err
			}
			if !d.Before(from) && !d.After(to) {
				return true, nil
			}
		}
	}
	return false, nil
}

// withinBookingPeriod accepts dates from today up to today plus the booking
// period. A non-positive period has no upper bound.
func withinBookingPeriod(today, date string, months int) (bool, error) {
	t, err := ParseDate(today)
	if err != nil {
		return false, err
	}
	d, err := ParseDate(date)
	if err != nil {
		return false, err
	}
	if d.Before(t) {
		return false, nil
	}
	if months > 0 && d.After(t.AddDate(0, months, 0)) {
		return false, nil
	}
	return true, nil
}
