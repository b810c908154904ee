package postgres

//nolint:revive
import (
	"agenda/config"
	"context"
	"net"
	"net/url"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	maxOpenConnections = 20
	maxIdleConnections = 10
	connMaxLifetime    = 30 * time.Minute
	connMaxIdleTime    = 5 * time.Minute
	pingTimeout        = 5 * time.Second
)

// Connection splits read traffic from writes. Both may point at the same server.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

// Target is one postgres endpoint from config.
type Target struct {
	Name     string
	Host     string
	Port     string
	Username string
	Password string
	Database string
	SSLMode  string
}

func ReadTarget(cfg *config.Config) Target {
	read := cfg.DB.Postgres.Read

	return Target{
		Name:     "read",
		Host:     read.Host,
		Port:     read.Port,
		Username: read.Username,
		Password: read.Password,
		Database: cfg.DB.Postgres.Prefix + read.Name,
		SSLMode:  read.SSLMode,
	}
}

func WriteTarget(cfg *config.Config) Target {
	write := cfg.DB.Postgres.Write

	return Target{
		Name:     "write",
		Host:     write.Host,
		Port:     write.Port,
		Username: write.Username,
		Password: write.Password,
		Database: cfg.DB.Postgres.Prefix + write.Name,
		SSLMode:  write.SSLMode,
	}
}

// DSN renders a postgres:// URL with credentials escaped. extra is merged into the query string.
func (t Target) DSN(extra url.Values) string {
	query := url.Values{}
	if t.SSLMode != "" {
		query.Set("sslmode", t.SSLMode)
	}

	for key, values := range extra {
		for _, value := range values {
			query.Add(key, value)
		}
	}

	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(t.Username, t.Password),
		Host:     net.JoinHostPort(t.Host, t.Port),
		Path:     "/" + t.Database,
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

func New(cfg *config.Config) *Connection {
	retry := cfg.DB.Postgres.MaxRetry
	wait := time.Duration(cfg.DB.Postgres.RetryWaitTime) * time.Second

	return &Connection{
		Read:  Connect(ReadTarget(cfg), retry, wait),
		Write: Connect(WriteTarget(cfg), retry, wait),
	}
}

// Connect dials target, retrying up to maxRetry times. It exits the process when every attempt fails.
func Connect(target Target, maxRetry int, wait time.Duration) *sqlx.DB {
	maxRetry = max(maxRetry, 1)

	logger := log.With().
		Str("name", target.Name).
		Str("host", target.Host).
		Str("port", target.Port).
		Str("dbName", target.Database).
		Logger()

	for attempt := 1; attempt <= maxRetry; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
		db, err := sqlx.ConnectContext(ctx, "postgres", target.DSN(nil))
		cancel()

		if err == nil {
			db.SetMaxOpenConns(maxOpenConnections)
			db.SetMaxIdleConns(maxIdleConnections)
			db.SetConnMaxLifetime(connMaxLifetime)
			db.SetConnMaxIdleTime(connMaxIdleTime)

			logger.Info().Msg("Connected to database")

			return db
		}

		logger.Error().Err(err).Int("attempt", attempt).Msg("Failed connecting to database, retrying")

		time.Sleep(wait)
	}

	logger.Fatal().Int("attempts", maxRetry).Msg("Giving up connecting to database")

	return nil
}
