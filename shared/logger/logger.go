package logger

import (
	"agenda/config"
	"agenda/shared/constant"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const defaultLevel = zerolog.InfoLevel

// InitLogger installs a human readable console logger at trace level until Configure runs.
func InitLogger() {
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()
}

// Configure applies the server log level and switches to JSON lines in production.
func Configure(cfg *config.Config) {
	Apply(cfg, os.Stdout)
}

// Apply is Configure with an explicit sink.
func Apply(cfg *config.Config, out io.Writer) {
	var writer io.Writer = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	if cfg.Server.Env == constant.ServerEnvProduction {
		writer = out
	}

	ctx := zerolog.New(writer).With().Timestamp()
	if cfg.App.Name != "" {
		ctx = ctx.Str("app", cfg.App.Name)
	}

	log.Logger = ctx.Logger()

	zerolog.SetGlobalLevel(ParseLevel(cfg.Server.LogLevel))
}

// ParseLevel maps a configured level name onto zerolog, defaulting to info.
func ParseLevel(name string) zerolog.Level {
	if name == "" {
		return defaultLevel
	}

	level, err := zerolog.ParseLevel(name)
	if err != nil {
		log.Warn().Str("loglevel", name).Msg("unknown log level, using info")

		return defaultLevel
	}

	return level
}

// ErrorWithStack logs err together with the stack of the caller.
func ErrorWithStack(err error) {
	if err == nil {
		return
	}

	log.Error().Msgf("%+v", errors.WithStack(err))
}
