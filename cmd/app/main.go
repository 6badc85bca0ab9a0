package main

import (
	"bookly/config"
	"bookly/di"
	_ "bookly/docs"
	"bookly/helper"
	"bookly/shared/logger"

	"github.com/rs/zerolog/log"
)

// @title Bookly API
// @version 1.0
// @description Multi-tenant appointment scheduling for service businesses.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}
	}

	http := di.InitializeService()
	http.Serve()
}
