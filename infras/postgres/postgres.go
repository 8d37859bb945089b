package postgres

//nolint:revive
import (
	"net"
	"net/url"
	"salon/config"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

// Connection splits reads from writes; both may point at the same server.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

func New(cfg *config.Config) *Connection {
	return &Connection{
		Read:  connect(cfg, "read", cfg.DB.Postgres.Read),
		Write: connect(cfg, "write", cfg.DB.Postgres.Write),
	}
}

// DSN renders a lib/pq connection URL. Credentials are escaped; extra becomes query parameters.
func DSN(ep config.PostgresEndpoint, prefix string, extra url.Values) string {
	query := url.Values{}
	if ep.SSLMode != "" {
		query.Set("sslmode", ep.SSLMode)
	}

	if ep.Timezone != "" {
		query.Set("timezone", ep.Timezone)
	}

	for key, values := range extra {
		query[key] = values
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(ep.Username, ep.Password),
		Host:     net.JoinHostPort(ep.Host, ep.Port),
		Path:     "/" + prefix + ep.Name,
		RawQuery: query.Encode(),
	}

	return u.String()
}

func connect(cfg *config.Config, role string, ep config.PostgresEndpoint) *sqlx.DB {
	pg := cfg.DB.Postgres
	dsn := DSN(ep, pg.Prefix, nil)

	logger := log.With().Str("role", role).Str("host", ep.Host).Str("db", pg.Prefix+ep.Name).Logger()

	attempts := max(pg.MaxRetry, 1)

	for attempt := 1; attempt <= attempts; attempt++ {
		db, err := sqlx.Connect("postgres", dsn)
		if err == nil {
			db.SetMaxOpenConns(pg.MaxOpenConns)
			db.SetMaxIdleConns(pg.MaxIdleConns)
			db.SetConnMaxLifetime(time.Duration(pg.ConnMaxLifetimeMin) * time.Minute)

			logger.Info().Msg("Connected to database")

			return db
		}

		logger.Error().Err(err).Int("attempt", attempt).Msg("Failed connecting to database")

		if attempt < attempts {
			time.Sleep(time.Duration(pg.RetryWaitTime) * time.Second)
		}
	}

	logger.Fatal().Int("attempts", attempts).Msg("Giving up on database connection")

	return nil
}
