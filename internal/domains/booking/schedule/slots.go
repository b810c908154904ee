package schedule

import (
	"agenda/internal/domains/booking/model"
	"time"
)

// AvailableSlots lists every grid start on day where the offering fits inside working hours
// without colliding with a scheduled booking of its professional. Starts before now are skipped.
func AvailableSlots(existing []model.Booking, offering model.Offering, day time.Time, hours WorkingHours, now time.Time) []time.Time {
	if offering.Duration <= 0 || hours.Validate() != nil {
		return []time.Time{}
	}

	workStart, workEnd := hours.Window(day)
	slots := make([]time.Time, 0)

	for candidate := workStart; !candidate.Add(offering.Duration).After(workEnd); candidate = candidate.Add(hours.Granularity) {
		if candidate.Before(now) {
			continue
		}

		end := candidate.Add(offering.Duration)
		if ConflictsWithExisting(existing, offering.ProfessionalID, candidate, end, "") {
			continue
		}

		slots = append(slots, candidate)
	}

	return slots
}
