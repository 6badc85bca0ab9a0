package router

import (
	"bookly/internal/handlers/appointment"
	"bookly/internal/handlers/auth"
	"bookly/internal/handlers/billing"
	"bookly/internal/handlers/business"
	"bookly/internal/handlers/catalog"
	"bookly/internal/handlers/customer"
	"bookly/internal/handlers/notification"
	"bookly/internal/handlers/professional"
	"bookly/internal/handlers/public"
	"bookly/internal/handlers/system"
	"bookly/internal/handlers/user"
	"bookly/transport/http/middleware"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth         auth.Handler
	User         user.Handler
	Business     business.Handler
	Catalog      catalog.Handler
	Professional professional.Handler
	Customer     customer.Handler
	Appointment  appointment.Handler
	Notification notification.Handler
	Billing      billing.Handler
	Public       public.Handler
	System       system.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	AuthRole       middleware.AuthRole
	App            middleware.AppMiddleware
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		routerGroup.Group(func(public chi.Router) {
			public.Use(r.App.RateLimit())

			r.DomainHandlers.Auth.Router(public)
			r.DomainHandlers.Public.Router(public)
		})

		routerGroup.Group(func(internal chi.Router) {
			internal.Use(r.AuthRole.APIKey)

			r.DomainHandlers.System.Router(internal)
		})

		routerGroup.Group(func(dashboard chi.Router) {
			dashboard.Use(r.AuthRole.Auth, r.AuthRole.RBAC)

			r.DomainHandlers.Auth.ProtectedRouter(dashboard)
			r.DomainHandlers.User.Router(dashboard)
			r.DomainHandlers.Business.Router(dashboard)
			r.DomainHandlers.Catalog.Router(dashboard)
			r.DomainHandlers.Professional.Router(dashboard)
			r.DomainHandlers.Customer.Router(dashboard)
			r.DomainHandlers.Appointment.Router(dashboard)
			r.DomainHandlers.Notification.Router(dashboard)
			r.DomainHandlers.Billing.Router(dashboard)
		})
	})
}

func New(domainHandlers DomainHandlers, authRole middleware.AuthRole, app middleware.AppMiddleware) Router {
	return Router{
		DomainHandlers: domainHandlers,
		AuthRole:       authRole,
		App:            app,
	}
}
