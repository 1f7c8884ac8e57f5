// Package handler is the serverless entrypoint. The poller is not started here. A warm
// instance refetches the registry and the ledger on the first read after POLLER_INTERVAL_SECONDS.
package handler

import (
	"net/http"
	"sync"

	"lodge/config"
	"lodge/di"
	"lodge/shared/logger"
	"lodge/shared/timezone"
)

var (
	once    sync.Once
	handler http.Handler
)

func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger(cfg)

		logger.SetLogLevel(cfg)

		timezone.Init(cfg)

		handler = di.InitializeService().HTTP.Handler()
	})

	handler.ServeHTTP(w, r)
}
