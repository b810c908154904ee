package handler

import (
	"agenda/config"
	"agenda/di"
	"agenda/shared/logger"
	agendaHTTP "agenda/transport/http"
	"net/http"
	"sync"
)

var (
	service *agendaHTTP.HTTP
	once    sync.Once
)

// Handler is the serverless entrypoint. The service graph is built on the first request.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		logger.InitLogger()

		logger.Configure(config.Get())

		service = di.InitializeService()
	})

	service.ServeHTTP(w, r)
}
