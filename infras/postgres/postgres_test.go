package postgres_test

import (
	"net/url"
	"salon/config"
	"salon/infras/postgres"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDSN(t *testing.T) {
	ep := config.PostgresEndpoint{
		Host:     "db.internal",
		Port:     "5432",
		Username: "salon",
		Password: "p@ss/word",
		Name:     "bookings",
		SSLMode:  "disable",
		Timezone: "Asia/Jakarta",
	}

	dsn := postgres.DSN(ep, "stg_", url.Values{"x-migrations-table": {"schema_migrations"}})

	u, err := url.Parse(dsn)
	assert.NoError(t, err)
	assert.Equal(t, "postgres", u.Scheme)
	assert.Equal(t, "db.internal:5432", u.Host)
	assert.Equal(t, "/stg_bookings", u.Path)

	pass, _ := u.User.Password()
	assert.Equal(t, "p@ss/word", pass)
	assert.Equal(t, "disable", u.Query().Get("sslmode"))
	assert.Equal(t, "Asia/Jakarta", u.Query().Get("timezone"))
	assert.Equal(t, "schema_migrations", u.Query().Get("x-migrations-table"))
}
