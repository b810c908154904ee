package schedule

import (
	"agenda/internal/domains/booking/model"
	"time"
)

// SlotResult is the outcome of a next-slot search. Found is false when nothing fits before workEnd.
type SlotResult struct {
	Start time.Time
	Found bool
}

var NoSlotToday = SlotResult{}

func Suggested(start time.Time) SlotResult {
	return SlotResult{Start: start, Found: true}
}

// SuggestNext searches forward from the desired start for the first gap that can hold duration.
// The search never goes back in time, never starts before now and never crosses workEnd.
func SuggestNext(existing []model.Booking, professionalID string, desiredStart time.Time, duration time.Duration, workEnd, now time.Time) SlotResult {
	if duration <= 0 {
		return NoSlotToday
	}

	candidate := desiredStart
	if conflicts := Conflicting(existing, professionalID, desiredStart, desiredStart.Add(duration), ""); len(conflicts) > 0 {
		candidate = latestEnd(conflicts)
	}

	if candidate.Before(now) {
		candidate = now
	}

	for {
		end := candidate.Add(duration)
		if end.After(workEnd) {
			return NoSlotToday
		}

		blocking := Conflicting(existing, professionalID, candidate, end, "")
		if len(blocking) == 0 {
			return Suggested(candidate)
		}

		// every blocking booking ends after candidate, so this always moves forward
		candidate = latestEnd(blocking)
	}
}
