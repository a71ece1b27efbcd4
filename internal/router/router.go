// Package router registers the HTTP routes of the API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/car-rental-reservation/internal/handler"
)

// RegisterRoutes registers routes that need no session.  Currently it
// exposes only the health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterCatalog registers the catalog page under /v1/cars.  session
// binds each request to a renter; cache wraps only the endpoints whose
// output is the same for every session.
func RegisterCatalog(e *echo.Echo, h *handler.CatalogHandler, session, cache echo.MiddlewareFunc) {
	g := e.Group("/v1/cars", session)
	g.GET("", h.ListCars)
	g.GET("/filters", h.FilterOptions, cache)
	g.GET("/suggestions", h.Suggestions, cache)
	g.POST("/:vin/select", h.SelectCar)
}

// RegisterReservation registers the reservation page under
// /v1/reservation.  limit guards the write endpoints.
func RegisterReservation(e *echo.Echo, h *handler.ReservationHandler, session, limit echo.MiddlewareFunc) {
	g := e.Group("/v1/reservation", session)
	g.GET("", h.Page)
	g.PUT("/draft", h.UpdateDraft)
	g.DELETE("/draft", h.Cancel)
	// submissions are the only writes that reach the catalog source
	g.POST("", h.Submit, limit)
}
