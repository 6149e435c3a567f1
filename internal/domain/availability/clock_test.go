package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	valid := map[string]Clock{
		"00:00": 0,
		"09:05": 545,
		"23:59": 1439,
		"24:00": 1440,
	}
	for in, want := range valid {
		got, err := ParseClock(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"", "9:00", "09:0", "09-00", "24:01", "25:00", "12:60", "ab:cd", " 9:00", "09:00:00"} {
		_, err := ParseClock(in)
		assert.Error(t, err, in)
	}
}

func TestClockString(t *testing.T) {
	assert.Equal(t, "00:00", Clock(0).String())
	assert.Equal(t, "09:05", Clock(545).String())
	assert.Equal(t, "24:00", Clock(1440).String())
}

func TestClockOf(t *testing.T) {
	loc := time.FixedZone("MSK", 3*3600)
	assert.Equal(t, Clock(14*60+30), ClockOf(time.Date(2026, 3, 2, 14, 30, 59, 0, loc)))
}

func TestWeekdayOf(t *testing.T) {
	cases := map[string]time.Weekday{
		"2026-03-01": time.Sunday,
		"2026-03-02": time.Monday,
		"2026-03-07": time.Saturday,
	}
	for date, want := range cases {
		got, err := WeekdayOf(date)
		require.NoError(t, err)
		assert.Equal(t, want, got, date)
	}

	_, err := WeekdayOf("2026-02-30")
	assert.Error(t, err)
}

func TestOverlaps(t *testing.T) {
	assert.True(t, Overlaps(600, 660, 630, 690))
	assert.True(t, Overlaps(600, 720, 630, 660))
	assert.False(t, Overlaps(600, 660, 660, 720), "touching at the end")
	assert.False(t, Overlaps(660, 720, 600, 660), "touching at the start")
}

func TestValidateSchedule(t *testing.T) {
	require.NoError(t, ValidateSchedule(*weekdaySchedule()))

	s := weekdaySchedule()
	s.WorkDays[0].LunchBreaks = []LunchBreak{{Enabled: true, StartTime: "08:00", EndTime: "09:30"}}
	assert.Error(t, ValidateSchedule(*s), "break outside work day")

	s = weekdaySchedule()
	s.WorkDays = append(s.WorkDays, WorkDay{Weekday: 7})
	assert.Error(t, ValidateSchedule(*s), "weekday out of range")

	s = weekdaySchedule()
	s.WorkDays = append(s.WorkDays, WorkDay{Weekday: time.Sunday, Active: false})
	assert.NoError(t, ValidateSchedule(*s), "inactive day without times")
}
