//go:build wireinject
// +build wireinject

package di

import (
	"agenda/config"
	"agenda/infras/jwt"
	"agenda/infras/kafka"
	"agenda/infras/otel"
	"agenda/infras/postgres"
	"agenda/infras/redis"
	"agenda/infras/s3"
	"agenda/permissions"
	"agenda/shared/cache"
	"agenda/transport/http"
	"agenda/transport/http/middleware"
	"agenda/transport/http/router"

	"github.com/google/wire"

	authService "agenda/internal/domains/auth/service"
	bookingRepository "agenda/internal/domains/booking/repository"
	bookingService "agenda/internal/domains/booking/service"
	catalogRepository "agenda/internal/domains/catalog/repository"
	catalogService "agenda/internal/domains/catalog/service"
	categoryRepository "agenda/internal/domains/category/repository"
	categoryService "agenda/internal/domains/category/service"
	userRepository "agenda/internal/domains/user/repository"
	userService "agenda/internal/domains/user/service"
	authHandler "agenda/internal/handlers/auth"
	bookingHandler "agenda/internal/handlers/booking"
	catalogHandler "agenda/internal/handlers/catalog"
	categoryHandler "agenda/internal/handlers/category"
	userHandler "agenda/internal/handlers/user"
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
	s3.New,
	kafka.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
)

var authDomain = wire.NewSet(
	authService.New,
)

var categoryDomain = wire.NewSet(
	categoryRepository.New,
	categoryService.New,
)

var catalogDomain = wire.NewSet(
	catalogRepository.New,
	catalogService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var domains = wire.NewSet(
	userDomain,
	authDomain,
	categoryDomain,
	catalogDomain,
	bookingDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	categoryHandler.New,
	catalogHandler.New,
	bookingHandler.New,
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
