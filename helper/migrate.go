// Package helper runs the SQL migrations under migrations/postgres against the write database.
package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"net/url"
	"salon/config"
	"salon/infras/postgres"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

const migrationsSource = "file://migrations/postgres"

type step func(*migrate.Migrate) error

var steps = map[string]step{
	"up":      (*migrate.Migrate).Up,
	"drop":    (*migrate.Migrate).Down,
	"down":    func(m *migrate.Migrate) error { return m.Steps(-1) },
	"step-up": func(m *migrate.Migrate) error { return m.Steps(1) },
}

// Run applies one of up, down, step-up or drop. An already current schema is not an error.
func Run(cfg *config.Config, direction string) error {
	apply, ok := steps[direction]
	if !ok {
		return fmt.Errorf("unknown migration direction %q", direction)
	}

	extra := url.Values{}
	if table := cfg.DB.Postgres.MigrationTable; table != "" {
		extra.Set("x-migrations-table", table)
	}

	mig, err := migrate.New(migrationsSource, postgres.DSN(cfg.DB.Postgres.Write, cfg.DB.Postgres.Prefix, extra))
	if err != nil {
		return fmt.Errorf("error creating migrate instance: %w", err)
	}
	defer mig.Close()

	if err = apply(mig); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration %s failed: %w", direction, err)
	}

	version, dirty, _ := mig.Version()
	log.Info().Str("direction", direction).Uint("version", version).Bool("dirty", dirty).Msg("Database migration finished")

	return nil
}

func Up(cfg *config.Config) error {
	return Run(cfg, "up")
}
