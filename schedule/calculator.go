package schedule

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"reminderapi/model"
)

var ErrInvalidScheduleConfig = errors.New("invalid schedule config")

// searchHorizonDays bounds the forward scan. Any valid days set hits a
// candidate within one week; 14 leaves headroom.
const searchHorizonDays = 14

// Sentinel is the "no next run" value stored for inactive slots and
// unschedulable configs.
var Sentinel = time.Unix(0, 0).UTC()

// NextRuns computes one timestamp per slot, index-aligned. Inactive slots and
// slots with no candidate inside the horizon get the epoch-zero sentinel.
// The result is always rebuilt in full: a single day or time edit can change
// which slot fires soonest.
func NextRuns(slots []model.TimeSlot, days []string, now time.Time) []time.Time {
	daySet := make(map[string]bool, len(days))
	for _, d := range days {
		daySet[d] = true
	}

	runs := make([]time.Time, len(slots))
	for i, slot := range slots {
		runs[i] = Sentinel
		if !slot.IsActive {
			continue
		}

		hour, minute, err := ParseClock(slot.Time)
		if err != nil {
			continue
		}

		for offset := 0; offset < searchHorizonDays; offset++ {
			day := now.AddDate(0, 0, offset)
			if !daySet[strconv.Itoa(int(day.Weekday()))] {
				continue
			}
			candidate := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, now.Location())
			if candidate.After(now) {
				runs[i] = candidate
				break
			}
		}
	}
	return runs
}

// ParseClock parses a strict 24h "HH:MM" string.
func ParseClock(value string) (hour, minute int, err error) {
	if len(value) != 5 || value[2] != ':' {
		return 0, 0, fmt.Errorf("%w: malformed time %q", ErrInvalidScheduleConfig, value)
	}
	hour, err = strconv.Atoi(value[:2])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("%w: malformed time %q", ErrInvalidScheduleConfig, value)
	}
	minute, err = strconv.Atoi(value[3:])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("%w: malformed time %q", ErrInvalidScheduleConfig, value)
	}
	return hour, minute, nil
}

// ValidateConfig rejects schedules that could never fire. Called before
// persistence so a bad schedule is surfaced to the user, not stored.
func ValidateConfig(slots []model.TimeSlot, days []string) error {
	if len(slots) < 1 || len(slots) > 3 {
		return fmt.Errorf("%w: reminder must hold between 1 and 3 time slots", ErrInvalidScheduleConfig)
	}

	active := 0
	for _, slot := range slots {
		if _, _, err := ParseClock(slot.Time); err != nil {
			return err
		}
		if slot.IsActive {
			active++
		}
	}
	if active == 0 {
		return fmt.Errorf("%w: no active time slot", ErrInvalidScheduleConfig)
	}

	if len(days) == 0 {
		return fmt.Errorf("%w: empty days set", ErrInvalidScheduleConfig)
	}
	for _, d := range days {
		if len(d) != 1 || d[0] < '0' || d[0] > '6' {
			return fmt.Errorf("%w: bad weekday code %q", ErrInvalidScheduleConfig, d)
		}
	}
	return nil
}
