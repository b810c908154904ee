package schedule

import (
	"agenda/internal/domains/booking/model"
	"time"
)

// Overlaps reports whether the half-open ranges [aStart, aEnd) and [bStart, bEnd) intersect.
// Back-to-back ranges do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// Conflicting returns the scheduled bookings of professionalID that overlap [start, end).
// The booking identified by excludeID is ignored.
func Conflicting(existing []model.Booking, professionalID string, start, end time.Time, excludeID string) []model.Booking {
	var conflicts []model.Booking

	for _, booking := range existing {
		if !booking.IsScheduled() || booking.ProfessionalID != professionalID {
			continue
		}

		if excludeID != "" && booking.ID == excludeID {
			continue
		}

		if Overlaps(start, end, booking.StartTime, booking.EndTime) {
			conflicts = append(conflicts, booking)
		}
	}

	return conflicts
}

// ConflictsWithExisting reports whether [start, end) collides with any scheduled booking of professionalID.
func ConflictsWithExisting(existing []model.Booking, professionalID string, start, end time.Time, excludeID string) bool {
	return len(Conflicting(existing, professionalID, start, end, excludeID)) > 0
}

func latestEnd(bookings []model.Booking) time.Time {
	var latest time.Time

	for _, booking := range bookings {
		if booking.EndTime.After(latest) {
			latest = booking.EndTime
		}
	}

	return latest
}
