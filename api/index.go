package handler

import (
	"net/http"
	"os"
	"roombook/config"
	"roombook/di"
	"roombook/shared/logger"
	"sync"
)

var (
	serverlessOnce    sync.Once
	serverlessHandler http.Handler
)

// Handler serves the API as a serverless function. Expired bookings are released by the
// cleanup command on a schedule since no background loop survives between invocations.
func Handler(w http.ResponseWriter, r *http.Request) {
	serverlessOnce.Do(func() {
		cfg := config.Get()

		logger.InitLogger()
		logger.SetOutput(cfg, os.Stdout)
		logger.SetLogLevel(cfg)

		serverlessHandler = di.InitializeService().Handler()
	})

	r.RequestURI = r.URL.String()

	serverlessHandler.ServeHTTP(w, r)
}
