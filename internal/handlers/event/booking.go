package event

import (
	"agenda/infras/kafka"
	"agenda/infras/otel"
	"agenda/internal/domains/booking/model"
	"agenda/shared/constant"
	"agenda/shared/timezone"
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

// Notification is what a delivery channel (e-mail, push) would send for one event.
type Notification struct {
	Recipients []string
	Subject    string
	BookingID  string
}

type BookingHandler struct {
	otel   otel.Otel
	notify func(ctx context.Context, notification Notification)
}

func NewBookingHandler(otel otel.Otel) BookingHandler {
	return BookingHandler{
		otel:   otel,
		notify: logNotification,
	}
}

// Handle decodes a booking event and dispatches its notification. Unknown types are skipped.
func (h BookingHandler) Handle(msg kafkaGo.Message) {
	ctx, scope := h.otel.NewScope(context.Background(), constant.OtelEventScopeName, constant.OtelEventScopeName+".booking")
	defer scope.End()

	event, err := kafka.DecodeKafkaMessage[model.Event](msg)
	if err != nil {
		scope.TraceError(err)

		return
	}

	notification, ok := BuildNotification(event)
	if !ok {
		log.Warn().Str("type", event.Type).Str("booking_id", event.BookingID).Msg("unknown booking event type")

		return
	}

	scope.SetAttributes(map[string]any{
		"event.type":       event.Type,
		"event.booking_id": event.BookingID,
	})

	h.notify(ctx, notification)
}

func BuildNotification(event model.Event) (Notification, bool) {
	when := timezone.Format(event.Start, "2006-01-02 15:04")

	var subject string

	switch event.Type {
	case model.EventCreated:
		subject = fmt.Sprintf("Booking confirmed for %s", when)
	case model.EventCancelled:
		subject = fmt.Sprintf("Booking on %s was cancelled", when)
	case model.EventRescheduled:
		subject = fmt.Sprintf("Booking moved to %s", when)
	default:
		return Notification{}, false
	}

	return Notification{
		Recipients: []string{event.ClientID, event.ProfessionalID},
		Subject:    subject,
		BookingID:  event.BookingID,
	}, true
}

func logNotification(_ context.Context, notification Notification) {
	log.Info().
		Strs("recipients", notification.Recipients).
		Str("booking_id", notification.BookingID).
		Msg(notification.Subject)
}
