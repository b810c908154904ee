package model

import "time"

const (
	EventCreated     = "booking.created"
	EventCancelled   = "booking.cancelled"
	EventRescheduled = "booking.rescheduled"
)

// Event is published whenever a booking changes so notification collaborators can react.
type Event struct {
	Type           string    `json:"type"`
	BookingID      string    `json:"booking_id"`
	ClientID       string    `json:"client_id"`
	ProfessionalID string    `json:"professional_id"`
	ServiceID      string    `json:"service_id"`
	Start          time.Time `json:"start"`
	End            time.Time `json:"end"`
	Status         string    `json:"status"`
	Reason         *string   `json:"reason,omitempty"`
	Actor          string    `json:"actor"`
	OccurredAt     time.Time `json:"occurred_at"`
}

func NewEvent(eventType string, booking Booking, actor string, at time.Time) Event {
	return Event{
		Type:           eventType,
		BookingID:      booking.ID,
		ClientID:       booking.ClientID,
		ProfessionalID: booking.ProfessionalID,
		ServiceID:      booking.ServiceID,
		Start:          booking.StartTime,
		End:            booking.EndTime,
		Status:         booking.Status,
		Reason:         booking.CancellationReason,
		Actor:          actor,
		OccurredAt:     at,
	}
}
