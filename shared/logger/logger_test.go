package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"salon/config"
	"salon/shared/constant"
	"salon/shared/logger"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restore(t *testing.T) {
	t.Helper()

	original, level := log.Logger, zerolog.GlobalLevel()

	t.Cleanup(func() {
		log.Logger = original
		zerolog.SetGlobalLevel(level)
	})
}

func TestInitWith_Production(t *testing.T) {
	restore(t)

	cfg := &config.Config{}
	cfg.Server.Env = constant.ServerEnvProduction
	cfg.Server.LogLevel = "warn"
	cfg.App.Name = "salon"

	var buf bytes.Buffer
	logger.InitWith(cfg, &buf)

	log.Info().Msg("dropped")
	log.Warn().Str("booking_no", "BK-1001").Msg("kept")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "kept", line["message"])
	assert.Equal(t, "salon", line["service"])
	assert.Equal(t, "BK-1001", line["booking_no"])
}

func TestLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, logger.Level("debug"))
	assert.Equal(t, zerolog.Disabled, logger.Level("disabled"))
	assert.Equal(t, zerolog.InfoLevel, logger.Level(""))
	assert.Equal(t, zerolog.InfoLevel, logger.Level("loud"))
}

func TestErrorWithStack(t *testing.T) {
	restore(t)

	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf)
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	logger.ErrorWithStack(errors.New("otp store unavailable"))

	assert.Contains(t, buf.String(), "otp store unavailable")
	assert.Contains(t, buf.String(), "logger_test")
}
