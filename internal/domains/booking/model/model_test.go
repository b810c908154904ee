package model_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"agenda/internal/domains/booking/model"
	"agenda/shared/constant"
	"agenda/shared/failure"
	gModel "agenda/shared/model"
)

func TestNew(t *testing.T) {
	now := time.Date(2030, 1, 1, 8, 0, 0, 0, time.UTC)
	start := now.Add(2 * time.Hour)
	offering := model.Offering{ServiceID: "svc-1", ServiceName: "Haircut", ProfessionalID: "pro-1", Duration: 45 * time.Minute}

	booking := model.New("client-1", offering, start, now)

	assert.NotEmpty(t, booking.ID)
	assert.Equal(t, model.StatusScheduled, booking.Status)
	assert.Equal(t, start.Add(45*time.Minute), booking.EndTime)
	assert.Equal(t, "pro-1", booking.ProfessionalID)
	assert.Equal(t, "client-1", booking.CreatedBy)
	assert.Equal(t, 45*time.Minute, booking.Duration())

	booking.Schedule(model.Offering{ServiceID: "svc-2", ProfessionalID: "pro-2", Duration: time.Hour}, start.Add(time.Hour))
	assert.Equal(t, start.Add(2*time.Hour), booking.EndTime)
	assert.Equal(t, "svc-2", booking.ServiceID)
}

func TestEffectiveStatus(t *testing.T) {
	start := time.Date(2030, 1, 1, 10, 0, 0, 0, time.UTC)
	booking := model.Booking{StartTime: start, EndTime: start.Add(time.Hour), Status: model.StatusScheduled}

	assert.Equal(t, model.StatusScheduled, booking.EffectiveStatus(start.Add(30*time.Minute)))
	assert.Equal(t, model.StatusCompleted, booking.EffectiveStatus(start.Add(time.Hour)))

	booking.Status = model.StatusCancelled
	assert.Equal(t, model.StatusCancelled, booking.EffectiveStatus(start.Add(2*time.Hour)))
}

func TestCanManage(t *testing.T) {
	booking := model.Booking{ClientID: "client-1", ProfessionalID: "pro-1"}

	tests := []struct {
		name  string
		actor gModel.Principal
		want  bool
	}{
		{name: "client of booking", actor: gModel.Principal{ID: "client-1", Role: constant.RoleClient}, want: true},
		{name: "professional of service", actor: gModel.Principal{ID: "pro-1", Role: constant.RoleProfessional}, want: true},
		{name: "admin", actor: gModel.Principal{ID: "admin-1", Role: constant.RoleAdmin}, want: true},
		{name: "superadmin", actor: gModel.Principal{ID: "root", Role: constant.RoleSuperAdmin}, want: true},
		{name: "other client", actor: gModel.Principal{ID: "client-2", Role: constant.RoleClient}, want: false},
		{name: "other professional", actor: gModel.Principal{ID: "pro-2", Role: constant.RoleProfessional}, want: false},
		{name: "anonymous", actor: gModel.Principal{}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, model.CanManage(tt.actor, booking))
		})
	}
}

func TestSlotTakenError(t *testing.T) {
	suggested := time.Date(2030, 1, 1, 11, 0, 0, 0, time.UTC)
	err := fmt.Errorf("create: %w", model.NewSlotTakenError(suggested))

	got, ok := model.SuggestedStart(err)
	assert.True(t, ok)
	assert.Equal(t, suggested, got)
	assert.Equal(t, model.ReasonSlotTaken, failure.GetReason(err))

	_, ok = model.SuggestedStart(model.ErrSlotTaken)
	assert.False(t, ok)

	_, ok = model.SuggestedStart(errors.New("plain"))
	assert.False(t, ok)
}

func TestNewEvent(t *testing.T) {
	now := time.Date(2030, 1, 1, 8, 0, 0, 0, time.UTC)
	reason := "sick"
	booking := model.Booking{ID: "b-1", ClientID: "c", ProfessionalID: "p", ServiceID: "s", Status: model.StatusCancelled, CancellationReason: &reason}

	event := model.NewEvent(model.EventCancelled, booking, "c", now)

	assert.Equal(t, model.EventCancelled, event.Type)
	assert.Equal(t, "b-1", event.BookingID)
	assert.Equal(t, &reason, event.Reason)
	assert.Equal(t, now, event.OccurredAt)
}
