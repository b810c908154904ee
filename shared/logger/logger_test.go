package logger_test

import (
	"agenda/config"
	"agenda/shared/constant"
	"agenda/shared/logger"
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restore(t *testing.T) {
	t.Helper()

	original := log.Logger
	level := zerolog.GlobalLevel()

	t.Cleanup(func() {
		log.Logger = original
		zerolog.SetGlobalLevel(level)
	})
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{input: "debug", want: zerolog.DebugLevel},
		{input: "warn", want: zerolog.WarnLevel},
		{input: "disabled", want: zerolog.Disabled},
		{input: "", want: zerolog.InfoLevel},
		{input: "loud", want: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, logger.ParseLevel(tt.input))
		})
	}
}

func TestApplyProductionWritesJSON(t *testing.T) {
	restore(t)

	cfg := &config.Config{}
	cfg.Server.Env = constant.ServerEnvProduction
	cfg.Server.LogLevel = "info"
	cfg.App.Name = "agenda"

	var buf bytes.Buffer
	logger.Apply(cfg, &buf)

	log.Debug().Msg("hidden")
	log.Info().Str("booking_id", "b-1").Msg("booking created")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))

	assert.Equal(t, "booking created", line["message"])
	assert.Equal(t, "agenda", line["app"])
	assert.Equal(t, "b-1", line["booking_id"])
	assert.NotContains(t, buf.String(), "hidden")
}

func TestApplyDevelopmentWritesConsole(t *testing.T) {
	restore(t)

	cfg := &config.Config{}
	cfg.Server.Env = constant.ServerEnvDevelopment
	cfg.Server.LogLevel = "debug"

	var buf bytes.Buffer
	logger.Apply(cfg, &buf)

	log.Debug().Msg("slot grid computed")

	assert.Contains(t, buf.String(), "slot grid computed")
	assert.False(t, json.Valid(buf.Bytes()))
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestErrorWithStack(t *testing.T) {
	restore(t)

	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf)
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	logger.ErrorWithStack(errors.New("insert booking"))
	assert.Contains(t, buf.String(), "insert booking")

	buf.Reset()
	logger.ErrorWithStack(nil)
	assert.Empty(t, buf.String())
}
