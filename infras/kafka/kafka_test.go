package kafka_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agenda/config"
	"agenda/infras/kafka"
	"agenda/infras/otel/mocks"
)

type payload struct {
	BookingID string `json:"booking_id"`
	Type      string `json:"type"`
}

func TestMessageRoundTrip(t *testing.T) {
	message := kafka.Message{Key: "pro-1", Value: payload{BookingID: "b-1", Type: "booking.created"}}

	msg, err := message.ToKafkaMessage("agenda.booking")
	require.NoError(t, err)
	assert.Equal(t, "agenda.booking", msg.Topic)
	assert.Equal(t, []byte("pro-1"), msg.Key)

	decoded, err := kafka.DecodeKafkaMessage[payload](msg)
	require.NoError(t, err)
	assert.Equal(t, payload{BookingID: "b-1", Type: "booking.created"}, decoded)

	msg.Value = []byte("not json")
	_, err = kafka.DecodeKafkaMessage[payload](msg)
	assert.Error(t, err)
}

func TestToKafkaMessage_UnsupportedValue(t *testing.T) {
	message := kafka.Message{Key: "k", Value: make(chan int)}

	_, err := message.ToKafkaMessage("topic")
	assert.Error(t, err)
}

func TestDisabledClient(t *testing.T) {
	client := kafka.New(&config.Config{}, mocks.NewOtel())

	assert.NoError(t, client.SendMessages(context.Background(), "agenda.booking", kafka.Message{Key: "k", Value: "v"}))
	assert.Nil(t, client.Reader("group", "agenda.booking"))
	assert.NoError(t, client.Close())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	client.Consume(ctx, "group", "agenda.booking", nil)
	assert.Error(t, ctx.Err())
}
