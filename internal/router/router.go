// Package router wires HTTP routes to their handlers and middleware.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/briochebrew/restaurant-reservation/internal/handler"
	"github.com/briochebrew/restaurant-reservation/internal/middleware"
	"github.com/briochebrew/restaurant-reservation/internal/model"
)

// RegisterRoutes registers routes that do not require authentication and
// carry no rate limiting.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterPublic registers the guest-facing routes.  The token-bucket limiter
// guards the booking funnel (availability, reservations, orders); the
// response cache fronts only the menu and offer listings, never availability.
func RegisterPublic(e *echo.Echo,
	avail *handler.AvailabilityHandler,
	res *handler.ReservationHandler,
	menu *handler.MenuHandler,
	offers *handler.OfferHandler,
	orders *handler.OrderHandler,
	limiter, cache echo.MiddlewareFunc) {

	e.GET("/v1/availability", avail.Query, limiter)
	e.POST("/v1/reservations", res.Create, limiter)
	e.POST("/v1/orders", orders.Create, limiter)

	e.GET("/v1/menu", menu.List, cache)
	e.GET("/v1/menu/:id", menu.Get, cache)
	e.GET("/v1/offers", offers.ListActive, cache)
}

// RegisterAuth registers the staff login endpoint.
func RegisterAuth(e *echo.Echo, auth *handler.AuthHandler) {
	e.POST("/v1/auth/login", auth.Login)
}

// RegisterAdmin registers the protected staff surface under /v1/admin.  Every
// route requires a valid access token with an ADMIN or STAFF role; the
// destructive endpoints additionally require ADMIN.
func RegisterAdmin(e *echo.Echo, jwtSecret string,
	auth *handler.AuthHandler,
	res *handler.ReservationHandler,
	blocks *handler.BlockHandler,
	menu *handler.MenuHandler,
	offers *handler.OfferHandler,
	orders *handler.OrderHandler) {

	g := e.Group("/v1/admin")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(model.RoleAdmin, model.RoleStaff))

	adminOnly := middleware.RequireRole(model.RoleAdmin)

	g.GET("/me", auth.Me)

	g.GET("/reservations", res.List)
	g.GET("/reservations/:id", res.Get)
	g.PATCH("/reservations/:id/status", res.UpdateStatus)
	g.PATCH("/reservations/:id/payment", res.UpdatePayment)
	g.POST("/reservations/:id/cancel", res.Cancel)
	g.DELETE("/reservations/:id", res.Delete, adminOnly)

	g.POST("/blocks", blocks.Create)
	g.GET("/blocks", blocks.List)
	g.DELETE("/blocks/:id", blocks.Delete)

	g.GET("/orders", orders.List)
	g.GET("/orders/:id", orders.Get)
	g.PATCH("/orders/:id/status", orders.UpdateStatus)
	g.DELETE("/orders/:id", orders.Delete, adminOnly)

	g.POST("/menu", menu.Create, adminOnly)
	g.PUT("/menu/:id", menu.Update, adminOnly)
	g.DELETE("/menu/:id", menu.Delete, adminOnly)

	g.GET("/offers", offers.List)
	g.POST("/offers", offers.Create, adminOnly)
	g.PUT("/offers/:id", offers.Update, adminOnly)
	g.PATCH("/offers/:id/active", offers.SetActive, adminOnly)
	g.DELETE("/offers/:id", offers.Delete, adminOnly)
}
