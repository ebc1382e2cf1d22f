package main

import (
	"context"
	"os"
	"os/signal"
	"roombook/config"
	"roombook/di"
	"roombook/shared/logger"
	"syscall"

	"github.com/rs/zerolog/log"
)

// Runs a single cleanup cycle and exits, for cron-style deployments.
func main() {
	cfg := config.Get()

	logger.InitLogger()
	logger.SetOutput(cfg, os.Stdout)
	logger.SetLogLevel(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	released, err := di.InitializeCleanup().RunOnce(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("booking cleanup failed")
	}

	log.Info().Int("released", released).Msg("booking cleanup finished")
}
