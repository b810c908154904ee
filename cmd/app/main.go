package main

import (
	"agenda/config"
	"agenda/di"
	"agenda/helper"
	"agenda/shared/logger"

	"github.com/rs/zerolog/log"
)

// @title Agenda API
// @version 1.0
// @description Appointment booking service: catalog, availability and bookings.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.InitLogger()

	cfg := config.Get()

	logger.Configure(cfg)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to run database migrations")
		}
	}

	http := di.InitializeService()
	http.Serve()
}
