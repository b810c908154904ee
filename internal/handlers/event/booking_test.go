package event_test

import (
	"agenda/internal/domains/booking/model"
	"agenda/internal/handlers/event"
	"agenda/shared/timezone"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildNotification(t *testing.T) {
	original := timezone.GetLocation()
	t.Cleanup(func() { require.NoError(t, timezone.SetLocation(original.String())) })

	require.NoError(t, timezone.SetLocation("Asia/Jakarta"))

	start := time.Date(2030, 1, 7, 3, 30, 0, 0, time.UTC)

	tests := []struct {
		name        string
		eventType   string
		wantOK      bool
		wantSubject string
	}{
		{
			name:        "created",
			eventType:   model.EventCreated,
			wantOK:      true,
			wantSubject: "Booking confirmed for 2030-01-07 10:30",
		},
		{
			name:        "cancelled",
			eventType:   model.EventCancelled,
			wantOK:      true,
			wantSubject: "Booking on 2030-01-07 10:30 was cancelled",
		},
		{
			name:        "rescheduled",
			eventType:   model.EventRescheduled,
			wantOK:      true,
			wantSubject: "Booking moved to 2030-01-07 10:30",
		},
		{
			name:      "unknown",
			eventType: "booking.archived",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notification, ok := event.BuildNotification(model.Event{
				Type:           tt.eventType,
				BookingID:      "booking-1",
				ClientID:       "client-1",
				ProfessionalID: "pro-1",
				Start:          start,
			})

			assert.Equal(t, tt.wantOK, ok)

			if !tt.wantOK {
				return
			}

			assert.Equal(t, tt.wantSubject, notification.Subject)
			assert.Equal(t, []string{"client-1", "pro-1"}, notification.Recipients)
			assert.Equal(t, "booking-1", notification.BookingID)
		})
	}
}
