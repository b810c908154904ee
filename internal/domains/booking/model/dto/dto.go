package dto

import (
	"time"

	"agenda/internal/domains/booking/model"
	"agenda/shared"
	"agenda/shared/constant"
	gDto "agenda/shared/dto"
	"agenda/shared/timezone"
)

type CreateBookingRequest struct {
	ServiceID string `json:"service_id" validate:"required,uuid"`
	Start     string `json:"start"      validate:"required" example:"2030-01-01T10:00"`
}

// StartTime accepts RFC3339 or a local "YYYY-MM-DDTHH:MM" read in the application timezone.
func (c *CreateBookingRequest) StartTime() (time.Time, error) {
	return parseStart(c.Start)
}

type CancelBookingRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

// CancelFields is the update applied on cancellation.
type CancelFields struct {
	Status             string  `db:"status"`
	CancellationReason *string `db:"cancellation_reason"`
	CancelledBy        *string `db:"cancelled_by"`
}

type RescheduleBookingRequest struct {
	Start string `json:"start" validate:"required" example:"2030-01-01T11:00"`
}

func (r *RescheduleBookingRequest) StartTime() (time.Time, error) {
	return parseStart(r.Start)
}

type RescheduleFields struct {
	StartTime time.Time `db:"start_time"`
	EndTime   time.Time `db:"end_time"`
}

// ListBookingsRequest narrows the bookings visible to the caller.
type ListBookingsRequest struct {
	Scope  string `json:"scope"  validate:"omitempty,oneof=upcoming past"`
	Status string `json:"status" validate:"omitempty,oneof=SCHEDULED COMPLETED CANCELLED"`
}

type BookingResponse struct {
	ID                 string  `json:"id"`
	ClientID           string  `json:"client_id"`
	ServiceID          string  `json:"service_id"`
	ServiceName        string  `json:"service_name"`
	ProfessionalID     string  `json:"professional_id"`
	Start              string  `json:"start"`
	End                string  `json:"end"`
	Status             string  `json:"status"`
	CancellationReason *string `json:"cancellation_reason,omitempty"`
	CancelledBy        *string `json:"cancelled_by,omitempty"`
	gDto.Metadata
}

// FromModel renders the booking as seen at now, so finished bookings read as completed.
func (b *BookingResponse) FromModel(model model.Booking, now time.Time) {
	b.ID = model.ID
	b.ClientID = model.ClientID
	b.ServiceID = model.ServiceID
	b.ServiceName = model.ServiceName
	b.ProfessionalID = model.ProfessionalID
	b.Start = timezone.Format(model.StartTime, constant.DateFormat)
	b.End = timezone.Format(model.EndTime, constant.DateFormat)
	b.Status = model.EffectiveStatus(now)
	b.CancellationReason = model.CancellationReason
	b.CancelledBy = model.CancelledBy
	b.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int, now time.Time) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod, now)
	}
}

type AvailableSlotsResponse struct {
	ServiceID       string   `json:"service_id"`
	Date            string   `json:"date"`
	DurationMinutes int      `json:"duration_minutes"`
	Slots           []string `json:"slots"`
}

func (r *AvailableSlotsResponse) FromSlots(serviceID, date string, duration time.Duration, slots []time.Time) {
	r.ServiceID = serviceID
	r.Date = date
	r.DurationMinutes = int(duration / time.Minute)

	r.Slots = make([]string, len(slots))
	for i, slot := range slots {
		r.Slots[i] = timezone.Format(slot, constant.TimeOfDay)
	}
}

func parseStart(value string) (time.Time, error) {
	if start, err := time.Parse(constant.DateFormat, value); err == nil {
		return timezone.ToAppTime(start), nil
	}

	start, err := timezone.Parse(constant.LocalDateTime, value)
	if err != nil {
		return time.Time{}, model.ErrInvalidStart
	}

	return start, nil
}
