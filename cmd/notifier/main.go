package main

import (
	"agenda/config"
	"agenda/infras/kafka"
	"agenda/infras/otel"
	"agenda/internal/handlers/event"
	"agenda/shared/logger"
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
)

func main() {
	logger.InitLogger()

	cfg := config.Get()

	logger.Configure(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ot := otel.New(cfg)
	client := kafka.New(cfg, ot)

	defer func() {
		if err := client.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close Kafka client")
		}

		if err := ot.Shutdown(context.Background()); err != nil {
			log.Error().Err(err).Msg("Failed to flush traces")
		}
	}()

	handler := event.NewBookingHandler(ot)

	log.Info().Str("topic", cfg.Kafka.Topic.Booking).Msg("Starting booking notifier.")

	client.Consume(ctx, cfg.Kafka.ConsumerGroup, cfg.Kafka.Topic.Booking, handler.Handle)
}
