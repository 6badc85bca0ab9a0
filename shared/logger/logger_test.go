package logger_test

import (
	"bytes"
	"errors"
	"testing"

	"bookly/config"
	"bookly/shared/constant"
	"bookly/shared/logger"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func preserveLogger(t *testing.T) {
	t.Helper()

	original := log.Logger
	level := zerolog.GlobalLevel()
	timeFormat := zerolog.TimeFieldFormat

	t.Cleanup(func() {
		log.Logger = original
		zerolog.SetGlobalLevel(level)
		zerolog.TimeFieldFormat = timeFormat
	})
}

func TestInitLogger(t *testing.T) {
	preserveLogger(t)

	logger.InitLogger()

	assert.Equal(t, zerolog.TimeFormatUnix, zerolog.TimeFieldFormat)
	assert.Equal(t, zerolog.TraceLevel, zerolog.GlobalLevel())
}

func TestErrorWithStack(t *testing.T) {
	preserveLogger(t)

	var buf bytes.Buffer
	log.Logger = log.Output(&buf)

	logger.ErrorWithStack(errors.New("relay stalled"))

	assert.Contains(t, buf.String(), "relay stalled")
}

func TestSetLogLevel(t *testing.T) {
	tests := []struct {
		logLevel  string
		wantLevel zerolog.Level
	}{
		{logLevel: "debug", wantLevel: zerolog.DebugLevel},
		{logLevel: "info", wantLevel: zerolog.InfoLevel},
		{logLevel: "warn", wantLevel: zerolog.WarnLevel},
		{logLevel: "error", wantLevel: zerolog.ErrorLevel},
		{logLevel: "disabled", wantLevel: zerolog.Disabled},
		{logLevel: "loud", wantLevel: zerolog.TraceLevel},
		// ParseLevel("") yields NoLevel without an error
		{logLevel: "", wantLevel: zerolog.NoLevel},
	}

	for _, tt := range tests {
		t.Run("level "+tt.logLevel, func(t *testing.T) {
			preserveLogger(t)

			log.Logger = log.Output(&bytes.Buffer{})

			cfg := &config.Config{}
			cfg.Server.LogLevel = tt.logLevel

			logger.SetLogLevel(cfg)

			assert.Equal(t, tt.wantLevel, zerolog.GlobalLevel())
		})
	}
}

func TestSetLogLevel_ProductionUsesJSON(t *testing.T) {
	preserveLogger(t)

	cfg := &config.Config{}
	cfg.Server.Env = constant.ServerEnvProduction
	cfg.Server.LogLevel = "info"
	cfg.App.Name = "bookly"

	logger.SetLogLevel(cfg)

	var buf bytes.Buffer
	log.Logger = log.Logger.Output(&buf)

	log.Info().Msg("booked")
	log.Debug().Msg("hidden")

	assert.Contains(t, buf.String(), `"app":"bookly"`)
	assert.Contains(t, buf.String(), `"message":"booked"`)
	assert.NotContains(t, buf.String(), "hidden")
}
