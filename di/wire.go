//go:build wireinject
// +build wireinject

package di

import (
	"roombook/config"
	"roombook/infras/database"
	"roombook/infras/jwt"
	"roombook/infras/kafka"
	"roombook/infras/otel"
	"roombook/infras/redis"
	"roombook/internal/scheduler"
	"roombook/permissions"
	"roombook/shared/cache"
	gRepo "roombook/shared/repository"
	"roombook/shared/timezone"
	"roombook/transport/http"
	"roombook/transport/http/middleware"
	"roombook/transport/http/router"

	"github.com/google/wire"

	authService "roombook/internal/domains/auth/service"
	bookingRepository "roombook/internal/domains/booking/repository"
	bookingService "roombook/internal/domains/booking/service"
	roomRepository "roombook/internal/domains/room/repository"
	roomService "roombook/internal/domains/room/service"
	userRepository "roombook/internal/domains/user/repository"
	userService "roombook/internal/domains/user/service"
	authHandler "roombook/internal/handlers/auth"
	bookingHandler "roombook/internal/handlers/booking"
	roomHandler "roombook/internal/handlers/room"
	userHandler "roombook/internal/handlers/user"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
	timezone.NewNowFunc,
)

var infrastructures = wire.NewSet(
	database.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
	wire.Struct(new(router.Middlewares), "*"),
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	gRepo.NewTransactor,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomRepository.NewTimeSlot,
	roomService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingRepository.NewDetail,
	bookingService.New,
)

var authDomain = wire.NewSet(
	userRepository.New,
	authService.New,
)

var userDomain = wire.NewSet(
	userService.New,
)

var domains = wire.NewSet(
	roomDomain,
	bookingDomain,
	authDomain,
	userDomain,
)

var jobs = wire.NewSet(
	scheduler.NewCleanup,
	wire.Bind(new(scheduler.Releaser), new(bookingService.Booking)),
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	roomHandler.New,
	bookingHandler.New,
	userHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		jobs,
		routing,
		http.New,
	)

	return &http.HTTP{}
}

func InitializeCleanup() *scheduler.Cleanup {
	wire.Build(
		config.Get,
		timezone.NewNowFunc,
		database.New,
		otel.New,
		redis.New,
		kafka.New,
		sharedHelpers,
		roomRepository.New,
		roomRepository.NewTimeSlot,
		bookingDomain,
		jobs,
	)

	return &scheduler.Cleanup{}
}
