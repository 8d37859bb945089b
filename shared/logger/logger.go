package logger

import (
	"io"
	"os"
	"salon/config"
	"salon/shared/constant"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init configures the global zerolog logger: human readable console output outside production,
// JSON lines in production, and the level from LOG_LEVEL (info when unset or unknown).
func Init(cfg *config.Config) {
	InitWith(cfg, os.Stdout)
}

func InitWith(cfg *config.Config, out io.Writer) {
	zerolog.TimeFieldFormat = time.RFC3339

	if cfg.Server.Env != constant.ServerEnvProduction {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	ctx := zerolog.New(out).With().Timestamp()
	if cfg.App.Name != constant.Empty {
		ctx = ctx.Str("service", cfg.App.Name)
	}

	log.Logger = ctx.Logger()

	zerolog.SetGlobalLevel(Level(cfg.Server.LogLevel))
}

// Level parses name, falling back to info.
func Level(name string) zerolog.Level {
	level, err := zerolog.ParseLevel(name)
	if err != nil || name == constant.Empty {
		return zerolog.InfoLevel
	}

	return level
}

// ErrorWithStack logs err together with the stack of the caller.
func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}
