package handler

import (
	"net/http"
	"sync"

	"bookly/config"
	"bookly/di"
	"bookly/shared/logger"
	transport "bookly/transport/http"
)

var (
	service     *transport.HTTP
	serviceOnce sync.Once
)

// Handler is the serverless entrypoint. The dependency graph is built on the first invocation and
// reused by warm instances.
func Handler(w http.ResponseWriter, r *http.Request) {
	serviceOnce.Do(func() {
		cfg := config.Get()

		logger.InitLogger()
		logger.SetLogLevel(cfg)

		service = di.InitializeService()
	})

	r.RequestURI = r.URL.String()

	service.ServeHTTP(w, r)
}
