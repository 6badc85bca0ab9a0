//go:build wireinject
// +build wireinject

package di

import (
	"bookly/config"
	"bookly/infras/email"
	"bookly/infras/jwt"
	"bookly/infras/kafka"
	"bookly/infras/metrics"
	"bookly/infras/otel"
	"bookly/infras/postgres"
	"bookly/infras/redis"
	"bookly/infras/s3"
	"bookly/infras/stripe"
	"bookly/internal/domains/plan"
	"bookly/permissions"
	"bookly/shared/cache"
	"bookly/transport/event"
	"bookly/transport/http"
	"bookly/transport/http/middleware"
	"bookly/transport/http/router"
	"bookly/transport/worker"

	appointmentRepository "bookly/internal/domains/appointment/repository"
	appointmentService "bookly/internal/domains/appointment/service"
	authService "bookly/internal/domains/auth/service"
	billingService "bookly/internal/domains/billing/service"
	businessRepository "bookly/internal/domains/business/repository"
	businessService "bookly/internal/domains/business/service"
	catalogRepository "bookly/internal/domains/catalog/repository"
	catalogService "bookly/internal/domains/catalog/service"
	customerRepository "bookly/internal/domains/customer/repository"
	customerService "bookly/internal/domains/customer/service"
	notificationRepository "bookly/internal/domains/notification/repository"
	notificationService "bookly/internal/domains/notification/service"
	outboxRepository "bookly/internal/domains/outbox/repository"
	outboxService "bookly/internal/domains/outbox/service"
	professionalRepository "bookly/internal/domains/professional/repository"
	professionalService "bookly/internal/domains/professional/service"
	userRepository "bookly/internal/domains/user/repository"
	userService "bookly/internal/domains/user/service"

	appointmentHandler "bookly/internal/handlers/appointment"
	authHandler "bookly/internal/handlers/auth"
	billingHandler "bookly/internal/handlers/billing"
	businessHandler "bookly/internal/handlers/business"
	catalogHandler "bookly/internal/handlers/catalog"
	customerHandler "bookly/internal/handlers/customer"
	notificationHandler "bookly/internal/handlers/notification"
	professionalHandler "bookly/internal/handlers/professional"
	publicHandler "bookly/internal/handlers/public"
	systemHandler "bookly/internal/handlers/system"
	userHandler "bookly/internal/handlers/user"

	"github.com/google/wire"
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
	metrics.New,
	s3.New,
	email.New,
	kafka.New,
	stripe.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	plan.NewGateFromConfig,
)

var repositories = wire.NewSet(
	businessRepository.New,
	userRepository.New,
	catalogRepository.New,
	professionalRepository.New,
	customerRepository.New,
	appointmentRepository.New,
	outboxRepository.New,
	notificationRepository.New,
)

var services = wire.NewSet(
	authService.New,
	userService.New,
	businessService.New,
	catalogService.New,
	professionalService.New,
	customerService.New,
	appointmentService.New,
	notificationService.New,
	billingService.New,
)

var outbox = wire.NewSet(
	outboxService.NewPublisher,
	outboxService.New,
	event.NewConsumer,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	businessHandler.New,
	catalogHandler.New,
	professionalHandler.New,
	customerHandler.New,
	appointmentHandler.New,
	notificationHandler.New,
	billingHandler.New,
	publicHandler.New,
	systemHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		repositories,
		services,
		routing,
		http.New,
	)

	return &http.HTTP{}
}

func InitializeWorker() *worker.Worker {
	wire.Build(
		configurations,
		infrastructures,
		repositories,
		notificationService.New,
		outbox,
		worker.New,
	)

	return &worker.Worker{}
}
