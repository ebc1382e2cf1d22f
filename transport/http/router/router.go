package router

import (
	"roombook/internal/handlers/auth"
	"roombook/internal/handlers/booking"
	"roombook/internal/handlers/room"
	"roombook/internal/handlers/user"
	"roombook/transport/http/middleware"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth    auth.Handler
	Room    room.Handler
	Booking booking.Handler
	User    user.Handler
}

type Middlewares struct {
	App      middleware.AppMiddleware
	AuthRole middleware.AuthRole
}

type Router struct {
	DomainHandlers DomainHandlers
	Middlewares    Middlewares
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		routerGroup.Use(r.Middlewares.App.Tracing)
		routerGroup.Use(r.Middlewares.App.RateLimit())
		routerGroup.Use(r.Middlewares.AuthRole.APIKey)
		routerGroup.Use(r.Middlewares.AuthRole.Auth)
		routerGroup.Use(r.Middlewares.AuthRole.RBAC)

		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Room.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers, middlewares Middlewares) Router {
	return Router{
		DomainHandlers: domainHandlers,
		Middlewares:    middlewares,
	}
}
