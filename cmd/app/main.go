package main

import (
	"os"
	"roombook/config"
	"roombook/di"
	"roombook/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()
	logger.SetOutput(cfg, os.Stdout)
	logger.SetLogLevel(cfg)

	http := di.InitializeService()
	http.Serve()
}
