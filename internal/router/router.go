package router // package router registers the HTTP routes of the seat API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-seat-booking/internal/handler"
	"github.com/iliyamo/event-seat-booking/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication.
// Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// SeatMiddleware bundles the optional Redis-backed middleware.  Both may be
// passthroughs when Redis is unavailable.
type SeatMiddleware struct {
	LayoutCache echo.MiddlewareFunc // on the public layout route
	BookLimit   echo.MiddlewareFunc // on booking submission
}

// RegisterSeats wires the seat picker.  The layout route is public and
// cacheable; everything that touches a viewer's selection or occupancy runs
// behind JWTAuth.  Volunteers check bookings in at the door and never pick
// seats, so they are not admitted here.
func RegisterSeats(e *echo.Echo, h *handler.SeatHandler, jwtSecret string, mw SeatMiddleware) {
	layoutMW := []echo.MiddlewareFunc{}
	if mw.LayoutCache != nil {
		layoutMW = append(layoutMW, mw.LayoutCache)
	}
	e.GET("/v1/events/:id/layout", h.Layout, layoutMW...)

	g := e.Group("/v1/events/:id")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(middleware.RoleUser, middleware.RoleAdmin))
	g.GET("/seats", h.Seats)
	g.POST("/seats/select", h.Select)
	g.DELETE("/seats/select", h.ClearSelection)

	bookMW := []echo.MiddlewareFunc{}
	if mw.BookLimit != nil {
		bookMW = append(bookMW, mw.BookLimit)
	}
	g.POST("/bookings", h.Book, bookMW...)

	admin := e.Group("/v1/admin")
	admin.Use(middleware.JWTAuth(jwtSecret))
	admin.Use(middleware.RequireRole(middleware.RoleAdmin))
	admin.POST("/layouts/preview", h.LayoutPreview)
}
