package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // the Echo web framework handles routing

	"github.com/rmaciel/event-hotel-booking/internal/handler"
	"github.com/rmaciel/event-hotel-booking/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication
// on the provided Echo instance. Currently it exposes only a health
// check, used by load balancers and monitoring systems.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterBooking registers the booking endpoints. Every route
// requires a valid access token; the JWT middleware supplies the
// caller's numeric user id to the handlers. Body-shape validation for
// POST and PUT happens inside the handlers before any service call.
func RegisterBooking(e *echo.Echo, h *handler.BookingHandler, jwtSecret string) {
	g := e.Group("/booking", middleware.JWTAuth(jwtSecret))
	g.GET("", h.GetBooking)
	g.POST("", h.CreateBooking)
	g.PUT("/:bookingId", h.ChangeBooking)
}

// RegisterHotels registers the hotel browsing endpoints, protected by
// the same JWT middleware as the booking routes.
func RegisterHotels(e *echo.Echo, h *handler.HotelHandler, jwtSecret string) {
	g := e.Group("/hotels", middleware.JWTAuth(jwtSecret))
	g.GET("", h.GetHotels)
	g.GET("/:hotelId", h.GetHotel)
}
