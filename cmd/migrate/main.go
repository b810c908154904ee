package main

import (
	"agenda/config"
	"agenda/helper"
	"agenda/shared/logger"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
)

func main() {
	logger.InitLogger()

	if len(os.Args) < 2 { //nolint:mnd
		log.Fatal().Msgf("usage: migrate <%s>", strings.Join(helper.Actions(), "|"))
	}

	cfg := config.Get()

	logger.Configure(cfg)

	if err := helper.Runner(cfg, os.Args[1]); err != nil {
		log.Fatal().Err(err).Str("action", os.Args[1]).Msg("Migration failed")
	}
}
