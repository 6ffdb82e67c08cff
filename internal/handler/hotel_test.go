package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/rmaciel/event-hotel-booking/internal/handler"
	"github.com/rmaciel/event-hotel-booking/internal/repository"
	"github.com/rmaciel/event-hotel-booking/internal/service"
)

type stubHotelSvc struct {
	hotels  []repository.HotelView
	listErr error
	hotel   *repository.HotelWithRooms
	getErr  error
}

func (s *stubHotelSvc) List(ctx context.Context, userID uint64) ([]repository.HotelView, error) {
	return s.hotels, s.listErr
}

func (s *stubHotelSvc) GetWithRooms(ctx context.Context, userID, hotelID uint64) (*repository.HotelWithRooms, error) {
	return s.hotel, s.getErr
}

func performHotel(t *testing.T, fn echo.HandlerFunc, hotelID string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/hotels", strings.NewReader(""))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", float64(1))
	if hotelID != "" {
		c.SetParamNames("hotelId")
		c.SetParamValues(hotelID)
	}
	assert.NoError(t, fn(c))
	return rec
}

func TestGetHotels_OK(t *testing.T) {
	h := handler.NewHotelHandler(&stubHotelSvc{hotels: []repository.HotelView{
		{ID: 2, Name: "Grand Palace"},
	}})

	rec := performHotel(t, h.GetHotels, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp []repository.HotelView
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	if assert.Len(t, resp, 1) {
		assert.Equal(t, "Grand Palace", resp[0].Name)
	}
}

func TestGetHotels_IneligibleTicket(t *testing.T) {
	h := handler.NewHotelHandler(&stubHotelSvc{listErr: service.ErrTicketIneligible})

	rec := performHotel(t, h.GetHotels, "")

	assert.Equal(t, http.StatusPaymentRequired, rec.Code)
}

func TestGetHotel_OK(t *testing.T) {
	h := handler.NewHotelHandler(&stubHotelSvc{hotel: &repository.HotelWithRooms{
		HotelView: repository.HotelView{ID: 2, Name: "Grand Palace"},
		Rooms: []repository.RoomOccupancy{
			{RoomView: repository.RoomView{ID: 5, Name: "101", Capacity: 3, HotelID: 2}, OccupantCount: 2},
		},
	}})

	rec := performHotel(t, h.GetHotel, "2")

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		ID    uint64 `json:"id"`
		Rooms []struct {
			Name          string `json:"name"`
			OccupantCount uint32 `json:"occupantCount"`
		} `json:"Rooms"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, uint64(2), resp.ID)
	if assert.Len(t, resp.Rooms, 1) {
		assert.Equal(t, "101", resp.Rooms[0].Name)
		assert.Equal(t, uint32(2), resp.Rooms[0].OccupantCount)
	}
}

func TestGetHotel_BadParam(t *testing.T) {
	h := handler.NewHotelHandler(&stubHotelSvc{})

	rec := performHotel(t, h.GetHotel, "palace")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetHotel_Missing(t *testing.T) {
	h := handler.NewHotelHandler(&stubHotelSvc{getErr: service.ErrNotFound})

	rec := performHotel(t, h.GetHotel, "99")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
