package schedule

import (
	"fmt"
	"time"

	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/domain"
)

// NextSend returns the first delivery instant strictly after after, evaluated
// in the schedule's timezone. Monthly schedules on a day the month lacks fall
// on its last day.
func NextSend(s domain.Schedule, after time.Time) (time.Time, error) {
	loc, err := loadLocation(s.Timezone)
	if err != nil {
		return time.Time{}, err
	}
	hour, minute, err := parseSendTime(s.SendTime)
	if err != nil {
		return time.Time{}, err
	}

	local := after.In(loc)
	y, m, d := local.Date()

	switch s.Frequency {
	case domain.FrequencyDaily:
		for i := 0; i <= 1; i++ {
			c := time.Date(y, m, d+i, hour, minute, 0, 0, loc)
			if c.After(after) {
				return c, nil
			}
		}
	case domain.FrequencyWeekly:
		if s.Weekday < 0 || s.Weekday > 6 {
			return time.Time{}, fmt.Errorf("%w: weekday must be 0-6", ErrValidation)
		}
		for i := 0; i <= 7; i++ {
			c := time.Date(y, m, d+i, hour, minute, 0, 0, loc)
			if int(c.Weekday()) == s.Weekday && c.After(after) {
				return c, nil
			}
		}
	case domain.FrequencyMonthly:
		if s.DayOfMonth < 1 || s.DayOfMonth > 31 {
			return time.Time{}, fmt.Errorf("%w: day_of_month must be 1-31", ErrValidation)
		}
		for i := 0; i <= 1; i++ {
			first := time.Date(y, m+time.Month(i), 1, 0, 0, 0, 0, loc)
			day := s.DayOfMonth
			if last := daysIn(first); day > last {
				day = last
			}
			c := time.Date(first.Year(), first.Month(), day, hour, minute, 0, 0, loc)
			if c.After(after) {
				return c, nil
			}
		}
	default:
		return time.Time{}, fmt.Errorf("%w: unknown frequency %q", ErrValidation, s.Frequency)
	}
	return time.Time{}, fmt.Errorf("no next send for schedule %d", s.ID)
}

func daysIn(first time.Time) int {
	return first.AddDate(0, 1, -1).Day()
}

func parseSendTime(v string) (int, int, error) {
	t, err := time.Parse("15:04", v)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: send_time must be HH:MM", ErrValidation)
	}
	return t.Hour(), t.Minute(), nil
}

func loadLocation(name string) (*time.Location, error) {
	if name == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown timezone %q", ErrValidation, name)
	}
	return loc, nil
}
