// Package schedule holds the pure scheduling engine: overlap detection, slot
// enumeration and next-slot suggestion over a snapshot of existing bookings.
package schedule

import (
	"errors"
	"fmt"
	"time"
)

const timeOfDayLayout = "15:04"

var ErrInvalidWorkingHours = errors.New("working hours must start before they end with a positive granularity")

// WorkingHours describes the bookable window of a day as offsets from midnight.
type WorkingHours struct {
	Start       time.Duration
	End         time.Duration
	Granularity time.Duration
}

var DefaultWorkingHours = WorkingHours{
	Start:       9 * time.Hour,
	End:         18 * time.Hour,
	Granularity: 15 * time.Minute,
}

// ParseWorkingHours builds WorkingHours from "15:04" clock strings.
func ParseWorkingHours(start, end string, granularityMinutes int) (WorkingHours, error) {
	startOffset, err := parseTimeOfDay(start)
	if err != nil {
		return WorkingHours{}, err
	}

	endOffset, err := parseTimeOfDay(end)
	if err != nil {
		return WorkingHours{}, err
	}

	hours := WorkingHours{
		Start:       startOffset,
		End:         endOffset,
		Granularity: time.Duration(granularityMinutes) * time.Minute,
	}

	if err := hours.Validate(); err != nil {
		return WorkingHours{}, err
	}

	return hours, nil
}

func (h WorkingHours) Validate() error {
	if h.Granularity <= 0 || h.Start < 0 || h.End > 24*time.Hour || h.Start >= h.End {
		return ErrInvalidWorkingHours
	}

	return nil
}

// Window returns the absolute working window of the calendar day that contains day.
func (h WorkingHours) Window(day time.Time) (time.Time, time.Time) {
	midnight := StartOfDay(day)

	return midnight.Add(h.Start), midnight.Add(h.End)
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	year, month, date := t.Date()

	return time.Date(year, month, date, 0, 0, 0, 0, t.Location())
}

func parseTimeOfDay(value string) (time.Duration, error) {
	parsed, err := time.Parse(timeOfDayLayout, value)
	if err != nil {
		return 0, fmt.Errorf("failed to parse time of day %q: %w", value, err)
	}

	return time.Duration(parsed.Hour())*time.Hour + time.Duration(parsed.Minute())*time.Minute, nil
}
