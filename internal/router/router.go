// Package router wires HTTP routes to their handlers and middleware.
// All components are passed in explicitly; there is no global state.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ticketr/internal/handler"
)

// RegisterRoutes registers the operational endpoints: liveness probe
// and prometheus metrics.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// RegisterAuth registers the auth surface under /v1/auth. Signup,
// validate and login are open; /me requires a bearer token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtAuth echo.MiddlewareFunc) {
	g := e.Group("/v1/auth")
	g.POST("/signup", a.Signup)
	g.GET("/validate/:token", a.Validate)
	g.POST("/login", a.Login)
	g.GET("/me", a.Me, jwtAuth)
}

// RegisterEvents registers the event catalog under /v1/events.
// Reads are public and served through the response cache; catalog
// mutations require a bearer token. The purchase endpoint is public by
// design but rate limited together with the mutating routes.
func RegisterEvents(e *echo.Echo, ev *handler.EventHandler, t *handler.TicketHandler,
	jwtAuth, cache, ratelimit echo.MiddlewareFunc) {
	g := e.Group("/v1/events")

	g.GET("", ev.List, cache)
	g.GET("/:id", ev.Get, cache)
	g.GET("/:id/tickets", ev.GetTickets, cache)

	g.POST("", ev.Create, ratelimit, jwtAuth)
	g.PUT("/:id", ev.Update, ratelimit, jwtAuth)
	g.DELETE("/:id", ev.Delete, ratelimit, jwtAuth)

	g.POST("/:id/tickets", t.Purchase, ratelimit)
}
