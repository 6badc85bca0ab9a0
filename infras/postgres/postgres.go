package postgres

//nolint:revive
import (
	"net"
	"net/url"
	"time"

	"bookly/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	postgresMaxIdleConnection = 10
	postgresMaxOpenConnection = 20
	postgresConnMaxLifetime   = 30 * time.Minute
	postgresDefaultRetry      = 1
)

type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

type endpoint struct {
	name     string
	host     string
	port     string
	username string
	password string
	dbName   string
	sslMode  string
	timezone string
}

// New opens the write pool and the read pool. When no read replica is configured both
// pools point at the primary.
func New(config *config.Config) *Connection {
	write := CreatePostgresConnection(writeEndpoint(config), config.DB.Postgres.MaxRetry, config.DB.Postgres.RetryWaitTime)

	if config.DB.Postgres.Read.Host == "" {
		return &Connection{Read: write, Write: write}
	}

	return &Connection{
		Read:  CreatePostgresConnection(readEndpoint(config), config.DB.Postgres.MaxRetry, config.DB.Postgres.RetryWaitTime),
		Write: write,
	}
}

func getDBName(config *config.Config, baseName string) string {
	if config.DB.Postgres.Prefix != "" {
		return config.DB.Postgres.Prefix + baseName
	}

	return baseName
}

func writeEndpoint(config *config.Config) endpoint {
	w := config.DB.Postgres.Write

	return endpoint{
		name:     "write",
		host:     w.Host,
		port:     w.Port,
		username: w.Username,
		password: w.Password,
		dbName:   getDBName(config, w.Name),
		sslMode:  w.SSLMode,
		timezone: w.Timezone,
	}
}

func readEndpoint(config *config.Config) endpoint {
	r := config.DB.Postgres.Read

	return endpoint{
		name:     "read",
		host:     r.Host,
		port:     r.Port,
		username: r.Username,
		password: r.Password,
		dbName:   getDBName(config, r.Name),
		sslMode:  r.SSLMode,
		timezone: r.Timezone,
	}
}

// dsn escapes credentials, so passwords with reserved characters survive.
func (e endpoint) dsn() string {
	query := url.Values{}
	if e.sslMode != "" {
		query.Set("sslmode", e.sslMode)
	}

	if e.timezone != "" {
		query.Set("timezone", e.timezone)
	}

	descriptor := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(e.username, e.password),
		Host:     net.JoinHostPort(e.host, e.port),
		Path:     e.dbName,
		RawQuery: query.Encode(),
	}

	return descriptor.String()
}

// CreatePostgresConnection connects with retries and exits the process when every
// attempt fails.
func CreatePostgresConnection(e endpoint, maxRetry, waitTime int) *sqlx.DB {
	if maxRetry < postgresDefaultRetry {
		maxRetry = postgresDefaultRetry
	}

	var lastErr error

	for retry := range maxRetry {
		sqlDB, err := sqlx.Connect("postgres", e.dsn())
		if err == nil {
			log.
				Info().
				Str("name", e.name).
				Str("host", e.host).
				Str("port", e.port).
				Str("dbName", e.dbName).
				Msg("Connected to database")
			sqlDB.SetMaxIdleConns(postgresMaxIdleConnection)
			sqlDB.SetMaxOpenConns(postgresMaxOpenConnection)
			sqlDB.SetConnMaxLifetime(postgresConnMaxLifetime)

			return sqlDB
		}

		lastErr = err

		log.
			Error().
			Err(err).
			Str("name", e.name).
			Str("host", e.host).
			Str("port", e.port).
			Str("dbName", e.dbName).
			Int("attempt", retry+1).
			Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(waitTime) * time.Second)
	}

	log.Fatal().Err(lastErr).Str("name", e.name).Msg("Giving up connecting to database")

	return nil
}
