package model

import (
	"agenda/shared/failure"
	"errors"
	"time"
)

const (
	ReasonPastStart        = "PAST_START"
	ReasonZeroDuration     = "ZERO_DURATION"
	ReasonInvalidDate      = "INVALID_DATE"
	ReasonSlotTaken        = "SLOT_TAKEN"
	ReasonNoAvailability   = "NO_AVAILABILITY"
	ReasonAlreadyCancelled = "ALREADY_CANCELLED"
	ReasonAlreadyOccurred  = "ALREADY_OCCURRED"

	DetailSuggestedStart = "suggested_start"
)

var (
	ErrPastStart        = failure.Validation(ReasonPastStart, "booking start must not be in the past")
	ErrZeroDuration     = failure.Validation(ReasonZeroDuration, "service duration must be positive")
	ErrInvalidDate      = failure.Validation(ReasonInvalidDate, "date must use the YYYY-MM-DD format")
	ErrInvalidStart     = failure.Validation(ReasonInvalidDate, "start must be RFC3339 or YYYY-MM-DDTHH:MM")
	ErrSlotTaken        = failure.ConflictWithReason(ReasonSlotTaken, "requested slot is already taken", nil)
	ErrNoAvailability   = failure.ConflictWithReason(ReasonNoAvailability, "no slot is available for the rest of the day", nil)
	ErrAlreadyCancelled = failure.Unprocessable(ReasonAlreadyCancelled, "booking is already cancelled")
	ErrAlreadyOccurred  = failure.Unprocessable(ReasonAlreadyOccurred, "booking has already started")
	ErrNotFound         = failure.NotFound("booking not found")
	ErrServiceNotFound  = failure.NotFound("service not found")
	ErrForbidden        = failure.Forbidden("you are not allowed to manage this booking")
)

// NewSlotTakenError carries the next free start the caller can retry with.
func NewSlotTakenError(suggested time.Time) error {
	return failure.ConflictWithReason(
		ReasonSlotTaken,
		"requested slot is already taken, next available start is "+suggested.Format(time.RFC3339),
		map[string]any{DetailSuggestedStart: suggested},
	)
}

// SuggestedStart extracts the suggestion attached by NewSlotTakenError.
func SuggestedStart(err error) (time.Time, bool) {
	var fail *failure.Failure
	if !errors.As(err, &fail) || fail.Reason != ReasonSlotTaken {
		return time.Time{}, false
	}

	suggested, ok := fail.Details[DetailSuggestedStart].(time.Time)

	return suggested, ok
}
