package config_test

import (
	"agenda/config"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Setenv("APP_TIMEZONE", "Asia/Jakarta")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")
	t.Setenv("SCHEDULE_WORK_START", "08:00")

	cfg, err := config.Load("testdata/missing.env")
	require.NoError(t, err)

	assert.Equal(t, "Asia/Jakarta", cfg.App.Timezone)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "08:00", cfg.Schedule.WorkStart)
	assert.Equal(t, "18:00", cfg.Schedule.WorkEnd)
	assert.Equal(t, 15, cfg.Schedule.GranularityMinutes)
	assert.Equal(t, "agenda.booking", cfg.Kafka.Topic.Booking)
}

func TestValidate(t *testing.T) {
	valid := func() *config.Config {
		cfg := &config.Config{}
		cfg.Schedule.WorkStart = "09:00"
		cfg.Schedule.WorkEnd = "18:00"
		cfg.Schedule.GranularityMinutes = 15

		return cfg
	}

	assert.NoError(t, valid().Validate())

	inverted := valid()
	inverted.Schedule.WorkEnd = "08:00"
	assert.Error(t, inverted.Validate())

	malformed := valid()
	malformed.Schedule.WorkStart = "9am"
	assert.Error(t, malformed.Validate())

	zero := valid()
	zero.Schedule.GranularityMinutes = 0
	assert.Error(t, zero.Validate())
}
