//go:build wireinject
// +build wireinject

package di

import (
	"salon/config"
	"salon/infras/jwt"
	"salon/infras/kafka"
	"salon/infras/otel"
	"salon/infras/postgres"
	"salon/infras/redis"
	"salon/infras/s3"
	"salon/internal/events"
	"salon/permissions"
	"salon/shared/cache"
	"salon/shared/metrics"
	"salon/transport/http"
	"salon/transport/http/middleware"
	"salon/transport/http/router"

	"github.com/google/wire"

	artistRepository "salon/internal/domains/artist/repository"
	artistService "salon/internal/domains/artist/service"
	authService "salon/internal/domains/auth/service"
	bookingRepository "salon/internal/domains/booking/repository"
	bookingService "salon/internal/domains/booking/service"
	otpService "salon/internal/domains/otp/service"
	reportService "salon/internal/domains/report/service"
	statusRepository "salon/internal/domains/status/repository"
	statusService "salon/internal/domains/status/service"
	userRepository "salon/internal/domains/user/repository"
	userService "salon/internal/domains/user/service"

	artistHandler "salon/internal/handlers/artist"
	authHandler "salon/internal/handlers/auth"
	bookingHandler "salon/internal/handlers/booking"
	reportHandler "salon/internal/handlers/report"
	statusHandler "salon/internal/handlers/status"
	userHandler "salon/internal/handlers/user"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	metrics.New,
	events.New,
	events.NewListener,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
)

var authDomain = wire.NewSet(
	authService.New,
)

var artistDomain = wire.NewSet(
	artistRepository.New,
	artistService.New,
)

var statusDomain = wire.NewSet(
	statusRepository.New,
	statusService.New,
)

var otpDomain = wire.NewSet(
	otpService.NewLogNotifier,
	otpService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
	wire.Bind(new(bookingService.Artists), new(artistService.Artist)),
	wire.Bind(new(bookingService.Statuses), new(statusService.Status)),
)

var reportDomain = wire.NewSet(
	reportService.New,
	wire.Bind(new(reportService.Artists), new(artistService.Artist)),
	wire.Bind(new(reportService.Statuses), new(statusService.Status)),
	wire.Bind(new(events.Evicter), new(reportService.Report)),
)

var domains = wire.NewSet(
	userDomain,
	authDomain,
	artistDomain,
	statusDomain,
	otpDomain,
	bookingDomain,
	reportDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	artistHandler.New,
	statusHandler.New,
	bookingHandler.New,
	reportHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
