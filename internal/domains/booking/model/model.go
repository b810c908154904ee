package model

import (
	"agenda/shared/model"
	"time"

	"github.com/google/uuid"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID                 = "id"
	FieldClientID           = "client_id"
	FieldServiceID          = "service_id"
	FieldProfessionalID     = "professional_id"
	FieldStartTime          = "start_time"
	FieldEndTime            = "end_time"
	FieldStatus             = "status"
	FieldCancellationReason = "cancellation_reason"
	FieldCancelledBy        = "cancelled_by"

	ServiceTableName = "services"
)

const (
	StatusScheduled = "SCHEDULED"
	StatusCompleted = "COMPLETED"
	StatusCancelled = "CANCELLED"
)

// Booking is a client's claim on a professional's time for one catalog service.
// ProfessionalID and ServiceName are projected from the service row and never written.
type Booking struct {
	ID                 string    `db:"id"`
	ClientID           string    `db:"client_id"`
	ServiceID          string    `db:"service_id"`
	StartTime          time.Time `db:"start_time"`
	EndTime            time.Time `db:"end_time"`
	Status             string    `db:"status"`
	CancellationReason *string   `db:"cancellation_reason"`
	CancelledBy        *string   `db:"cancelled_by"`
	ProfessionalID     string    `db:"professional_id"     table:"services"`
	ServiceName        string    `db:"service_name"        table:"services" column:"name"`
	model.Metadata
}

func (Booking) GetJoinQuery() string {
	return "JOIN services ON services.id = bookings.service_id"
}

// Offering is the read-only view of a catalog service needed to place a booking.
type Offering struct {
	ServiceID      string
	ServiceName    string
	ProfessionalID string
	Duration       time.Duration
}

// New creates a scheduled booking for clientID. It is the only constructor that sets a status.
func New(clientID string, offering Offering, start time.Time, now time.Time) Booking {
	booking := Booking{
		ID:       uuid.NewString(),
		ClientID: clientID,
		Status:   StatusScheduled,
		Metadata: model.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  clientID,
			ModifiedBy: clientID,
		},
	}

	booking.Schedule(offering, start)

	return booking
}

// Schedule places the booking at start. End and professional always follow from the offering.
func (b *Booking) Schedule(offering Offering, start time.Time) {
	b.ServiceID = offering.ServiceID
	b.ServiceName = offering.ServiceName
	b.ProfessionalID = offering.ProfessionalID
	b.StartTime = start
	b.EndTime = start.Add(offering.Duration)
}

func (b Booking) Duration() time.Duration {
	return b.EndTime.Sub(b.StartTime)
}

func (b Booking) IsScheduled() bool {
	return b.Status == StatusScheduled
}

// EffectiveStatus reports a scheduled booking whose end has passed as completed.
func (b Booking) EffectiveStatus(now time.Time) string {
	if b.IsScheduled() && !b.EndTime.After(now) {
		return StatusCompleted
	}

	return b.Status
}
