package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/rmaciel/event-hotel-booking/internal/repository"
)

// HotelOperations is the slice of the hotel service consumed by the
// handler.
type HotelOperations interface {
	List(ctx context.Context, userID uint64) ([]repository.HotelView, error)
	GetWithRooms(ctx context.Context, userID, hotelID uint64) (*repository.HotelWithRooms, error)
}

// HotelHandler exposes the hotel browsing endpoints. Access is gated
// by the same ticket eligibility as booking, so the error mapping is
// shared with the booking handler.
type HotelHandler struct {
	Service HotelOperations
}

// NewHotelHandler constructs a HotelHandler and panics if the service
// is nil.
func NewHotelHandler(svc HotelOperations) *HotelHandler {
	if svc == nil {
		panic("nil service passed to NewHotelHandler")
	}
	return &HotelHandler{Service: svc}
}

// GetHotels handles GET /hotels. It returns 200 with the hotel list,
// 404 when the user is not enrolled or no hotels exist, 402 when the
// ticket does not grant hotel access, and 500 otherwise.
func (h *HotelHandler) GetHotels(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	hotels, err := h.Service.List(c.Request().Context(), userID)
	if err != nil {
		return bookingErrorResponse(c, err)
	}
	return c.JSON(http.StatusOK, hotels)
}

// GetHotel handles GET /hotels/:hotelId. It returns 200 with the
// hotel and its rooms (occupant counts included), 400 for a bad
// parameter, and otherwise the shared error mapping.
func (h *HotelHandler) GetHotel(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	hotelID, err := strconv.ParseUint(c.Param("hotelId"), 10, 64)
	if err != nil || hotelID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hotel id"})
	}
	hotel, err := h.Service.GetWithRooms(c.Request().Context(), userID, hotelID)
	if err != nil {
		return bookingErrorResponse(c, err)
	}
	return c.JSON(http.StatusOK, hotel)
}
