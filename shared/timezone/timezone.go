// Package timezone pins every wall-clock operation to the salon's configured location (APP_TIMEZONE,
// an IANA name). Booking dates are compared as calendar days in that location.
package timezone

import (
	"salon/config"
	"sync"
	"time"
	_ "time/tzdata"

	"github.com/rs/zerolog/log"
)

var (
	once     sync.Once
	location = time.UTC
)

func load() {
	once.Do(func() {
		name := config.Get().App.Timezone
		if name == "" {
			return
		}

		loc, err := time.LoadLocation(name)
		if err != nil {
			log.Error().Err(err).Str("timezone", name).Msg("Unknown timezone, falling back to UTC")

			return
		}

		location = loc
	})
}

// GetLocation returns the configured location, UTC when unset or invalid.
func GetLocation() *time.Location {
	load()

	return location
}

func Now() time.Time {
	return time.Now().In(GetLocation())
}

func ToAppTime(t time.Time) time.Time {
	return t.In(GetLocation())
}

// Parse interprets value as a wall-clock time in the configured location.
func Parse(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, GetLocation()) //nolint:wrapcheck
}

func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}

