package main

import (
	"bookly/config"
	"bookly/di"
	"bookly/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	worker := di.InitializeWorker()
	worker.Serve()
}
