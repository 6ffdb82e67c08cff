package handler

import (
	"context" // service calls carry the request context
	"errors"  // errors.Is comparisons against service sentinels
	"net/http"
	"strconv" // parsing the bookingId path parameter
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rmaciel/event-hotel-booking/internal/model"
	"github.com/rmaciel/event-hotel-booking/internal/service"
)

// BookingOperations is the slice of the booking service consumed by
// the handler. Tests substitute a stub implementation.
type BookingOperations interface {
	Create(ctx context.Context, userID, roomID uint64) (*model.Booking, error)
	Get(ctx context.Context, userID uint64) (*service.CurrentBooking, error)
	ChangeRoom(ctx context.Context, userID, bookingID, roomID uint64) (*model.Booking, error)
}

// BookingHandler exposes the booking endpoints. It assumes JWT
// authentication has already run, is the sole translator of service
// errors into HTTP status codes, and performs the body-shape
// validation (roomId integer >= 1) before calling the service.
type BookingHandler struct {
	Service BookingOperations
}

// NewBookingHandler constructs a BookingHandler and panics if the
// service is nil.
func NewBookingHandler(svc BookingOperations) *BookingHandler {
	if svc == nil {
		panic("nil service passed to NewBookingHandler")
	}
	return &BookingHandler{Service: svc}
}

// bookingReq is the body of POST /booking and PUT /booking/:bookingId.
type bookingReq struct {
	RoomID int64 `json:"roomId"`
}

// bookingResp is the JSON shape of a persisted booking row.
type bookingResp struct {
	ID        uint64    `json:"id"`
	UserID    uint64    `json:"userId"`
	RoomID    uint64    `json:"roomId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toBookingResp(b *model.Booking) bookingResp {
	return bookingResp{
		ID:        b.ID,
		UserID:    b.UserID,
		RoomID:    b.RoomID,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// bindRoomID binds and validates the request body. It returns the
// room id or 0 when the body is malformed or roomId is below 1.
func bindRoomID(c echo.Context) uint64 {
	var body bookingReq
	if err := c.Bind(&body); err != nil {
		return 0
	}
	if body.RoomID < 1 {
		return 0
	}
	return uint64(body.RoomID)
}

// CreateBooking handles POST /booking. It returns 201 with the
// created booking, 400 for a malformed body, 404 when the user has no
// enrollment or the room does not exist, 402 when the ticket does not
// grant hotel access, 403 when the room is full, and 500 for any
// other failure.
func (h *BookingHandler) CreateBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	roomID := bindRoomID(c)
	if roomID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "roomId must be a positive integer"})
	}
	booking, err := h.Service.Create(c.Request().Context(), userID, roomID)
	if err != nil {
		return bookingErrorResponse(c, err)
	}
	return c.JSON(http.StatusCreated, toBookingResp(booking))
}

// GetBooking handles GET /booking. It returns 200 with {id, Room} for
// the user's current booking, 404 when the user has none, and 500 for
// any other failure.
func (h *BookingHandler) GetBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	current, err := h.Service.Get(c.Request().Context(), userID)
	if err != nil {
		return bookingErrorResponse(c, err)
	}
	return c.JSON(http.StatusOK, current)
}

// ChangeBooking handles PUT /booking/:bookingId. The path parameter
// names the booking being moved; it must belong to the caller. It
// returns 200 with the updated booking, 400 for a bad parameter or
// body, 404 when the booking or destination room is missing, 403 when
// the destination room is full, and 500 for any other failure.
func (h *BookingHandler) ChangeBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	bookingID, err := strconv.ParseUint(c.Param("bookingId"), 10, 64)
	if err != nil || bookingID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	roomID := bindRoomID(c)
	if roomID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "roomId must be a positive integer"})
	}
	booking, err := h.Service.ChangeRoom(c.Request().Context(), userID, bookingID, roomID)
	if err != nil {
		return bookingErrorResponse(c, err)
	}
	return c.JSON(http.StatusOK, toBookingResp(booking))
}

// bookingErrorResponse maps service errors to HTTP status codes.
// Unrecognized failures surface as 500 rather than leaking through as
// an authentication problem.
func bookingErrorResponse(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	case errors.Is(err, service.ErrTicketIneligible):
		return c.JSON(http.StatusPaymentRequired, echo.Map{"error": "ticket does not grant hotel access"})
	case errors.Is(err, service.ErrRoomOverCapacity):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "room over capacity"})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}
