//go:build wireinject
// +build wireinject

package di

import (
	"lodge/config"
	"lodge/infras/jwt"
	"lodge/infras/kafka"
	"lodge/infras/otel"
	"lodge/infras/redis"
	"lodge/infras/s3"
	"lodge/infras/upstream"
	"lodge/internal/poller"
	"lodge/permissions"
	"lodge/shared/cache"
	"lodge/shared/timezone"
	"lodge/transport/http"
	"lodge/transport/http/middleware"
	"lodge/transport/http/router"

	"github.com/google/wire"

	authService "lodge/internal/domains/auth/service"
	bookingRepository "lodge/internal/domains/booking/repository"
	bookingService "lodge/internal/domains/booking/service"
	dashboardService "lodge/internal/domains/dashboard/service"
	employeeRepository "lodge/internal/domains/employee/repository"
	employeeService "lodge/internal/domains/employee/service"
	lifecycleService "lodge/internal/domains/lifecycle/service"
	reportService "lodge/internal/domains/report/service"
	roomRepository "lodge/internal/domains/room/repository"
	roomService "lodge/internal/domains/room/service"

	authHandler "lodge/internal/handlers/auth"
	bookingHandler "lodge/internal/handlers/booking"
	dashboardHandler "lodge/internal/handlers/dashboard"
	employeeHandler "lodge/internal/handlers/employee"
	healthHandler "lodge/internal/handlers/health"
	lifecycleHandler "lodge/internal/handlers/lifecycle"
	reportHandler "lodge/internal/handlers/report"
	roomHandler "lodge/internal/handlers/room"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
	upstream.New,
	timezone.NewSystemClock,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var lifecycleDomain = wire.NewSet(
	lifecycleService.NewTracker,
	lifecycleService.New,
)

var employeeDomain = wire.NewSet(
	employeeRepository.New,
	employeeService.New,
)

var domains = wire.NewSet(
	roomDomain,
	bookingDomain,
	lifecycleDomain,
	employeeDomain,
	authService.New,
	dashboardService.New,
	reportService.New,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	healthHandler.New,
	authHandler.New,
	roomHandler.New,
	bookingHandler.New,
	lifecycleHandler.New,
	dashboardHandler.New,
	employeeHandler.New,
	reportHandler.New,
	router.New,
)

func InitializeService() *App {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
		poller.New,
		wire.Struct(new(App), "*"),
	)

	return &App{}
}
