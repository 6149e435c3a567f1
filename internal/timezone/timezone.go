package timezone

import (
	"sync/atomic"
	"time"
)

const DefaultTimezone = "Europe/Moscow"

var fallback atomic.Value

func init() {
	fallback.Store(DefaultTimezone)
}

// SetDefault changes the zone used for specialists without a valid timezone.
// Invalid names are ignored.
func SetDefault(tz string) {
	if IsValid(tz) {
		fallback.Store(tz)
	}
}

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, err := time.LoadLocation(fallback.Load().(string))
	if err != nil {
		return time.UTC
	}
	return loc
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

// ParseDate reads "YYYY-MM-DD" as midnight in loc.
func ParseDate(date string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", date, loc)
}

// ParseDateTime reads a date and an "HH:MM" time as a wall-clock instant in loc.
func ParseDateTime(date, hm string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", date+" "+hm, loc)
}

// DayBounds returns [midnight, next midnight) of date in loc. The end is
// computed by calendar so DST transitions keep the day intact.
func DayBounds(date string, loc *time.Location) (time.Time, time.Time, error) {
	start, err := ParseDate(date, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, start.AddDate(0, 0, 1), nil
}
