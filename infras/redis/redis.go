package redis

import (
	"context"
	"net"
	"time"

	"bookly/config"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const pingTimeout = 5 * time.Second

// New connects to the primary and exits the process when it does not answer a ping.
func New(config *config.Config) *goRedis.Client {
	client, err := Connect(config)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}

	return client
}

// Connect returns a client once the server answers a ping.
func Connect(config *config.Config) (*goRedis.Client, error) {
	primary := config.Cache.Redis.Primary

	client := goRedis.NewClient(&goRedis.Options{
		Addr:     net.JoinHostPort(primary.Host, primary.Port),
		Password: primary.Password,
		DB:       primary.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()

		return nil, err //nolint:wrapcheck
	}

	log.Info().
		Int("db", primary.DB).
		Str("host", primary.Host).
		Str("port", primary.Port).
		Msg("Connected to Redis")

	return client, nil
}
