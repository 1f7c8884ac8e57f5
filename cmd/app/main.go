package main

import (
	"context"

	"lodge/config"
	"lodge/di"
	"lodge/shared/logger"
	"lodge/shared/timezone"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger(cfg)

	logger.SetLogLevel(cfg)

	timezone.Init(cfg)

	app := di.InitializeService()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := app.Poller.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to start poller")
	}

	app.HTTP.Serve(cancel)
}
