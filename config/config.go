package config

import (
	"fmt"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// Config is read once from the environment, after loading an optional .env file. Nested structs
// join their envconfig prefixes, so Server.Shutdown.GracePeriodSeconds comes from
// SERVER_SHUTDOWN_GRACE_PERIOD_SECONDS.
type Config struct {
	Server struct {
		Env      string `envconfig:"ENV"       default:"development"`
		LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
		Port     string `envconfig:"PORT"      default:"8080"`
		Host     string `envconfig:"HOST"`
		Shutdown struct {
			GracePeriodSeconds   int64 `envconfig:"GRACE_PERIOD_SECONDS"   default:"10"`
			CleanupPeriodSeconds int64 `envconfig:"CLEANUP_PERIOD_SECONDS" default:"10"`
		} `envconfig:"SHUTDOWN"`
	} `envconfig:"SERVER"`

	App struct {
		Name     string `envconfig:"APP_NAME" default:"salon"`
		Timezone string `envconfig:"TIMEZONE" default:"Asia/Jakarta"`

		// APIKey lets internal callers skip bearer auth. Empty disables it.
		APIKey string `envconfig:"API_KEY"`
		CORS   struct {
			Enable           bool     `envconfig:"ENABLE"`
			AllowedOrigins   []string `envconfig:"ALLOWED_ORIGINS"`
			AllowedMethods   []string `envconfig:"ALLOWED_METHODS" default:"GET,POST,PATCH,DELETE,OPTIONS"`
			AllowedHeaders   []string `envconfig:"ALLOWED_HEADERS" default:"Authorization,Content-Type,X-API-Key"`
			AllowCredentials bool     `envconfig:"ALLOW_CREDENTIALS"`
			MaxAgeSeconds    int      `envconfig:"MAX_AGE_SECONDS" default:"300"`
		} `envconfig:"CORS"`
		RateLimiter struct {
			Enable        bool `envconfig:"ENABLE"`
			MaxRequests   int  `envconfig:"MAX_REQUESTS"   default:"120"`
			WindowSeconds int  `envconfig:"WINDOW_SECONDS" default:"60"`
		} `envconfig:"RATE_LIMITER"`
	} `envconfig:"APP"`

	Cache struct {
		TTL   int `envconfig:"TTL" default:"300"`
		Redis struct {
			Primary struct {
				Host     string `envconfig:"HOST" default:"localhost"`
				Port     string `envconfig:"PORT" default:"6379"`
				Password string `envconfig:"PASSWORD"`
				DB       int    `envconfig:"DB"`
			} `envconfig:"PRIMARY"`
		} `envconfig:"REDIS"`
	} `envconfig:"CACHE"`

	JWT struct {
		AccessSecret     string `envconfig:"ACCESS_SECRET"`
		RefreshSecret    string `envconfig:"REFRESH_SECRET"`
		AccessExpireMin  int    `envconfig:"ACCESS_EXPIRE_MIN"  default:"60"`
		RefreshExpireMin int    `envconfig:"REFRESH_EXPIRE_MIN" default:"10080"`
	} `envconfig:"JWT"`

	DB struct {
		Postgres struct {
			Read  PostgresEndpoint `envconfig:"READ"`
			Write PostgresEndpoint `envconfig:"WRITE"`

			// Prefix is prepended to both database names, e.g. "test_".
			Prefix             string `envconfig:"PREFIX"`
			MaxRetry           int    `envconfig:"MAX_RETRY"             default:"3"`
			RetryWaitTime      int    `envconfig:"RETRY_WAIT_TIME"       default:"2"`
			MaxOpenConns       int    `envconfig:"MAX_OPEN_CONNS"        default:"10"`
			MaxIdleConns       int    `envconfig:"MAX_IDLE_CONNS"        default:"10"`
			ConnMaxLifetimeMin int    `envconfig:"CONN_MAX_LIFETIME_MIN" default:"30"`
			MigrationTable     string `envconfig:"MIGRATION_TABLE"       default:"schema_migrations"`
			AutoMigrate        bool   `envconfig:"AUTO_MIGRATE"`
		} `envconfig:"POSTGRES"`
	} `envconfig:"DB"`

	Kafka struct {
		Enable        bool     `envconfig:"ENABLE"`
		Brokers       []string `envconfig:"BROKERS"`
		ConsumerGroup string   `envconfig:"CONSUMER_GROUP"`
		Topic         struct {
			BookingStatus string `envconfig:"BOOKING_STATUS" default:"booking.status_changed"`
		} `envconfig:"TOPIC"`
		SASL struct {
			Username string `envconfig:"USERNAME"`
			Password string `envconfig:"PASSWORD"`
		} `envconfig:"SASL"`
	} `envconfig:"KAFKA"`

	// OTP guards artist actions on a booking.
	OTP struct {
		Length      int `envconfig:"LENGTH"       default:"6"`
		TTLSeconds  int `envconfig:"TTL_SECONDS"  default:"300"`
		MaxAttempts int `envconfig:"MAX_ATTEMPTS" default:"5"`
	} `envconfig:"OTP"`

	Metrics struct {
		Enable    bool   `envconfig:"ENABLE"`
		Namespace string `envconfig:"NAMESPACE" default:"salon"`
	} `envconfig:"METRICS"`

	External struct {
		Otel struct {
			Endpoint    string  `envconfig:"ENDPOINT"`
			SampleRatio float64 `envconfig:"SAMPLE_RATIO" default:"1"`
			Insecure    bool    `envconfig:"INSECURE"     default:"true"`
		} `envconfig:"OTEL"`
		S3 struct {
			APIEndpoint      string `envconfig:"API_ENDPOINT"`
			AccessKeyID      string `envconfig:"ACCESS_KEY_ID"`
			SecretAccessKey  string `envconfig:"SECRET_ACCESS_KEY"`
			BucketName       string `envconfig:"BUCKET_NAME"`
			PublicDomain     string `envconfig:"PUBLIC_DOMAIN"`
			ReportDirectory  string `envconfig:"REPORT_DIRECTORY"   default:"reports"`
			AvatarDirectory  string `envconfig:"AVATAR_DIRECTORY"   default:"avatars"`
			PresignExpireMin int    `envconfig:"PRESIGN_EXPIRE_MIN" default:"15"`
		} `envconfig:"S3"`
	} `envconfig:"EXTERNAL"`
}

var (
	conf    Config
	once    sync.Once
	loadErr error
)

// Init loads the configuration. A missing .env file is not an error.
func Init() error {
	once.Do(func() {
		if err := godotenv.Load(".env"); err != nil {
			log.Debug().Err(err).Msg("no .env file, using process environment")
		}

		if err := envconfig.Process("", &conf); err != nil {
			loadErr = fmt.Errorf("process environment: %w", err)

			return
		}

		log.Info().Str("env", conf.Server.Env).Msg("configuration loaded")
	})

	return loadErr
}

// Get returns the loaded configuration and exits when it cannot be loaded.
func Get() *Config {
	if err := Init(); err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	return &conf
}

// PostgresEndpoint is one side of the read/write split.
type PostgresEndpoint struct {
	Host     string `envconfig:"HOST"`
	Port     string `envconfig:"PORT"`
	Username string `envconfig:"USER"`
	Password string `envconfig:"PASSWORD"`
	Name     string `envconfig:"NAME"`
	Timezone string `envconfig:"TIMEZONE"`
	SSLMode  string `envconfig:"SSL_MODE"`
}
