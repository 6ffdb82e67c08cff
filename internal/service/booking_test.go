package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rmaciel/event-hotel-booking/internal/model"
	"github.com/rmaciel/event-hotel-booking/internal/queue"
	"github.com/rmaciel/event-hotel-booking/internal/repository"
	"github.com/rmaciel/event-hotel-booking/internal/service"
)

// ----- stub stores -----

type stubBookings struct {
	created   *model.Booking
	createErr error
	list      []repository.BookingWithRoom
	listErr   error
	owned     *model.Booking
	ownedErr  error
	changed   *model.Booking
	changeErr error

	createRoomID, createUserID uint64
	changeBookingID            uint64
	changeRoomID               uint64
}

func (s *stubBookings) Create(ctx context.Context, roomID, userID uint64) (*model.Booking, error) {
	s.createRoomID, s.createUserID = roomID, userID
	return s.created, s.createErr
}

func (s *stubBookings) ListByUser(ctx context.Context, userID uint64) ([]repository.BookingWithRoom, error) {
	return s.list, s.listErr
}

func (s *stubBookings) GetByIDForUser(ctx context.Context, bookingID, userID uint64) (*model.Booking, error) {
	return s.owned, s.ownedErr
}

func (s *stubBookings) ChangeRoom(ctx context.Context, bookingID, userID, newRoomID uint64) (*model.Booking, error) {
	s.changeBookingID, s.changeRoomID = bookingID, newRoomID
	return s.changed, s.changeErr
}

type stubRooms struct {
	room    *repository.RoomOccupancy
	roomErr error
	byHotel []repository.RoomOccupancy
}

func (s *stubRooms) GetWithOccupancy(ctx context.Context, roomID uint64) (*repository.RoomOccupancy, error) {
	return s.room, s.roomErr
}

func (s *stubRooms) ListByHotel(ctx context.Context, hotelID uint64) ([]repository.RoomOccupancy, error) {
	return s.byHotel, nil
}

type stubEnrollments struct {
	enrollment *model.Enrollment
	err        error
}

func (s *stubEnrollments) FindByUserID(ctx context.Context, userID uint64) (*model.Enrollment, error) {
	return s.enrollment, s.err
}

type stubTickets struct {
	ticket *repository.TicketWithType
	err    error
}

func (s *stubTickets) FindByEnrollmentID(ctx context.Context, enrollmentID uint64) (*repository.TicketWithType, error) {
	return s.ticket, s.err
}

// ----- fixtures -----

func validEnrollments() *stubEnrollments {
	return &stubEnrollments{enrollment: &model.Enrollment{ID: 11, UserID: 1, Name: "Ana"}}
}

func ticketWith(status string, remote, hotel bool) *stubTickets {
	return &stubTickets{ticket: &repository.TicketWithType{
		Ticket: model.Ticket{ID: 21, EnrollmentID: 11, Status: status},
		Type:   model.TicketType{ID: 31, IsRemote: remote, IncludesHotel: hotel},
	}}
}

func roomWith(capacity, occupants uint32) *stubRooms {
	return &stubRooms{room: &repository.RoomOccupancy{
		RoomView:      repository.RoomView{ID: 5, Name: "101", Capacity: capacity, HotelID: 2},
		OccupantCount: occupants,
	}}
}

func TestCreateBooking_Success(t *testing.T) {
	booked := &model.Booking{ID: 42, UserID: 1, RoomID: 5, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	bookings := &stubBookings{created: booked}

	var published []queue.BookingEvent
	svc := service.NewBookingService(bookings, roomWith(3, 1), validEnrollments(), ticketWith(model.TicketStatusPaid, false, true),
		func(ctx context.Context, ev queue.BookingEvent) error {
			published = append(published, ev)
			return nil
		})

	got, err := svc.Create(context.Background(), 1, 5)

	assert.NoError(t, err)
	assert.Equal(t, booked, got)
	assert.Equal(t, uint64(5), bookings.createRoomID)
	assert.Equal(t, uint64(1), bookings.createUserID)
	if assert.Len(t, published, 1) {
		assert.Equal(t, queue.BookingActionCreated, published[0].Action)
		assert.Equal(t, uint64(42), published[0].BookingID)
	}
}

func TestCreateBooking_NoEnrollment(t *testing.T) {
	svc := service.NewBookingService(&stubBookings{}, roomWith(3, 0),
		&stubEnrollments{err: repository.ErrEnrollmentNotFound},
		ticketWith(model.TicketStatusPaid, false, true), nil)

	_, err := svc.Create(context.Background(), 1, 5)

	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestCreateBooking_TicketIneligible(t *testing.T) {
	cases := map[string]*stubTickets{
		"missing":       {err: repository.ErrTicketNotFound},
		"reserved":      ticketWith(model.TicketStatusReserved, false, true),
		"remote":        ticketWith(model.TicketStatusPaid, true, true),
		"without hotel": ticketWith(model.TicketStatusPaid, false, false),
	}
	for name, tickets := range cases {
		t.Run(name, func(t *testing.T) {
			svc := service.NewBookingService(&stubBookings{}, roomWith(3, 0), validEnrollments(), tickets, nil)

			_, err := svc.Create(context.Background(), 1, 5)

			assert.ErrorIs(t, err, service.ErrTicketIneligible)
		})
	}
}

func TestCreateBooking_RoomNotFound(t *testing.T) {
	svc := service.NewBookingService(&stubBookings{}, &stubRooms{roomErr: repository.ErrRoomNotFound},
		validEnrollments(), ticketWith(model.TicketStatusPaid, false, true), nil)

	_, err := svc.Create(context.Background(), 1, 5)

	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestCreateBooking_RoomFull(t *testing.T) {
	svc := service.NewBookingService(&stubBookings{}, roomWith(2, 2),
		validEnrollments(), ticketWith(model.TicketStatusPaid, false, true), nil)

	_, err := svc.Create(context.Background(), 1, 5)

	assert.ErrorIs(t, err, service.ErrRoomOverCapacity)
}

func TestCreateBooking_LosesRaceForLastSpot(t *testing.T) {
	// The projection sees a free spot but the guarded insert reports
	// the room full: the service must still answer over-capacity.
	bookings := &stubBookings{createErr: repository.ErrRoomFull}
	svc := service.NewBookingService(bookings, roomWith(2, 1),
		validEnrollments(), ticketWith(model.TicketStatusPaid, false, true), nil)

	_, err := svc.Create(context.Background(), 1, 5)

	assert.ErrorIs(t, err, service.ErrRoomOverCapacity)
}

func TestCreateBooking_StoreFailurePassesThrough(t *testing.T) {
	boom := errors.New("connection reset")
	svc := service.NewBookingService(&stubBookings{createErr: boom}, roomWith(2, 0),
		validEnrollments(), ticketWith(model.TicketStatusPaid, false, true), nil)

	_, err := svc.Create(context.Background(), 1, 5)

	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, service.ErrNotFound)
}

func TestGetBooking_Empty(t *testing.T) {
	svc := service.NewBookingService(&stubBookings{}, roomWith(1, 0),
		validEnrollments(), ticketWith(model.TicketStatusPaid, false, true), nil)

	_, err := svc.Get(context.Background(), 1)

	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestGetBooking_ReturnsFirstShapedAsIDAndRoom(t *testing.T) {
	room := repository.RoomView{ID: 5, Name: "101", Capacity: 3, HotelID: 2}
	bookings := &stubBookings{list: []repository.BookingWithRoom{
		{ID: 42, UserID: 1, RoomID: 5, Room: room},
		{ID: 17, UserID: 1, RoomID: 6},
	}}
	svc := service.NewBookingService(bookings, roomWith(3, 0),
		validEnrollments(), ticketWith(model.TicketStatusPaid, false, true), nil)

	got, err := svc.Get(context.Background(), 1)

	assert.NoError(t, err)
	assert.Equal(t, uint64(42), got.ID)
	assert.Equal(t, room, got.Room)
}

func TestChangeRoom_BookingNotOwned(t *testing.T) {
	bookings := &stubBookings{ownedErr: repository.ErrBookingNotFound}
	svc := service.NewBookingService(bookings, roomWith(3, 0),
		validEnrollments(), ticketWith(model.TicketStatusPaid, false, true), nil)

	_, err := svc.ChangeRoom(context.Background(), 1, 42, 5)

	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestChangeRoom_DestinationFull(t *testing.T) {
	bookings := &stubBookings{owned: &model.Booking{ID: 42, UserID: 1, RoomID: 4}}
	// Strict rule: occupants equal to capacity rejects the move.
	svc := service.NewBookingService(bookings, roomWith(2, 2),
		validEnrollments(), ticketWith(model.TicketStatusPaid, false, true), nil)

	_, err := svc.ChangeRoom(context.Background(), 1, 42, 5)

	assert.ErrorIs(t, err, service.ErrRoomOverCapacity)
}

func TestChangeRoom_Success(t *testing.T) {
	moved := &model.Booking{ID: 42, UserID: 1, RoomID: 5}
	bookings := &stubBookings{
		owned:   &model.Booking{ID: 42, UserID: 1, RoomID: 4},
		changed: moved,
	}
	var published []queue.BookingEvent
	svc := service.NewBookingService(bookings, roomWith(3, 1),
		validEnrollments(), ticketWith(model.TicketStatusPaid, false, true),
		func(ctx context.Context, ev queue.BookingEvent) error {
			published = append(published, ev)
			return nil
		})

	got, err := svc.ChangeRoom(context.Background(), 1, 42, 5)

	assert.NoError(t, err)
	assert.Equal(t, moved, got)
	assert.Equal(t, uint64(42), bookings.changeBookingID)
	assert.Equal(t, uint64(5), bookings.changeRoomID)
	if assert.Len(t, published, 1) {
		assert.Equal(t, queue.BookingActionRoomChanged, published[0].Action)
	}
}

func TestChangeRoom_PublishFailureDoesNotFailRequest(t *testing.T) {
	bookings := &stubBookings{
		owned:   &model.Booking{ID: 42, UserID: 1, RoomID: 4},
		changed: &model.Booking{ID: 42, UserID: 1, RoomID: 5},
	}
	svc := service.NewBookingService(bookings, roomWith(3, 0),
		validEnrollments(), ticketWith(model.TicketStatusPaid, false, true),
		func(ctx context.Context, ev queue.BookingEvent) error {
			return errors.New("broker down")
		})

	_, err := svc.ChangeRoom(context.Background(), 1, 42, 5)

	assert.NoError(t, err)
}
