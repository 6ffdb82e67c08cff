package service

import (
	"context"
	"errors"
	"time"

	"github.com/rmaciel/event-hotel-booking/internal/model"
	"github.com/rmaciel/event-hotel-booking/internal/queue"
	"github.com/rmaciel/event-hotel-booking/internal/repository"
)

// BookingStore is the slice of the booking repository the service
// depends on. Declaring it here lets tests substitute in-memory
// doubles for the MySQL-backed implementation.
type BookingStore interface {
	Create(ctx context.Context, roomID, userID uint64) (*model.Booking, error)
	ListByUser(ctx context.Context, userID uint64) ([]repository.BookingWithRoom, error)
	GetByIDForUser(ctx context.Context, bookingID, userID uint64) (*model.Booking, error)
	ChangeRoom(ctx context.Context, bookingID, userID, newRoomID uint64) (*model.Booking, error)
}

// RoomStore reads rooms with their occupant counts.
type RoomStore interface {
	GetWithOccupancy(ctx context.Context, roomID uint64) (*repository.RoomOccupancy, error)
	ListByHotel(ctx context.Context, hotelID uint64) ([]repository.RoomOccupancy, error)
}

// EnrollmentStore reads event enrollments.
type EnrollmentStore interface {
	FindByUserID(ctx context.Context, userID uint64) (*model.Enrollment, error)
}

// TicketStore reads tickets joined with their types.
type TicketStore interface {
	FindByEnrollmentID(ctx context.Context, enrollmentID uint64) (*repository.TicketWithType, error)
}

// PublishFunc sends a booking event to the message broker. A nil
// function disables publishing; failures never affect the request.
type PublishFunc func(ctx context.Context, ev queue.BookingEvent) error

// CurrentBooking is the response shape for the current-booking query:
// the booking id plus the occupied room. The capitalized "Room" key
// is part of the public contract.
type CurrentBooking struct {
	ID   uint64              `json:"id"`
	Room repository.RoomView `json:"Room"`
}

// BookingService orchestrates booking eligibility checks and writes.
// The invariant it upholds: a booking exists only for a user holding
// a paid, non-remote, hotel-inclusive ticket, and a room never holds
// more occupants than its capacity.
type BookingService struct {
	bookings    BookingStore
	rooms       RoomStore
	enrollments EnrollmentStore
	tickets     TicketStore
	publish     PublishFunc
}

// NewBookingService constructs a BookingService. The publish function
// may be nil.
func NewBookingService(bookings BookingStore, rooms RoomStore, enrollments EnrollmentStore, tickets TicketStore, publish PublishFunc) *BookingService {
	if bookings == nil || rooms == nil || enrollments == nil || tickets == nil {
		panic("nil store passed to NewBookingService")
	}
	return &BookingService{
		bookings:    bookings,
		rooms:       rooms,
		enrollments: enrollments,
		tickets:     tickets,
		publish:     publish,
	}
}

// verifyHotelAccess runs the eligibility gate shared by booking and
// hotel browsing: the user must be enrolled and must hold a paid,
// non-remote ticket whose type includes accommodation.
func verifyHotelAccess(ctx context.Context, enrollments EnrollmentStore, tickets TicketStore, userID uint64) error {
	enrollment, err := enrollments.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrEnrollmentNotFound) {
			return ErrNotFound
		}
		return err
	}
	ticket, err := tickets.FindByEnrollmentID(ctx, enrollment.ID)
	if err != nil {
		if errors.Is(err, repository.ErrTicketNotFound) {
			return ErrTicketIneligible
		}
		return err
	}
	if ticket.Status == model.TicketStatusReserved || ticket.Type.IsRemote || !ticket.Type.IncludesHotel {
		return ErrTicketIneligible
	}
	return nil
}

// Create books a room for the user. The eligibility checks run in
// order: enrollment, ticket, room existence, capacity. The final
// insert re-verifies capacity under a row lock, so two concurrent
// requests for the last spot cannot both succeed.
func (s *BookingService) Create(ctx context.Context, userID, roomID uint64) (*model.Booking, error) {
	if err := verifyHotelAccess(ctx, s.enrollments, s.tickets, userID); err != nil {
		return nil, err
	}
	room, err := s.rooms.GetWithOccupancy(ctx, roomID)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if room.OccupantCount >= room.Capacity {
		return nil, ErrRoomOverCapacity
	}
	booking, err := s.bookings.Create(ctx, roomID, userID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRoomNotFound):
			return nil, ErrNotFound
		case errors.Is(err, repository.ErrRoomFull):
			// Lost the race for the last spot after the projection above.
			return nil, ErrRoomOverCapacity
		}
		return nil, err
	}
	s.publishEvent(ctx, queue.BookingActionCreated, booking, room)
	return booking, nil
}

// Get returns the user's current booking shaped as {id, Room}. When
// the user holds several bookings the newest one is returned.
func (s *BookingService) Get(ctx context.Context, userID uint64) (*CurrentBooking, error) {
	bookings, err := s.bookings.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(bookings) == 0 {
		return nil, ErrNotFound
	}
	first := bookings[0]
	return &CurrentBooking{ID: first.ID, Room: first.Room}, nil
}

// ChangeRoom moves the user's booking to another room. The booking is
// resolved by its own identifier and must belong to the user; the
// destination room must exist and have free capacity under the same
// strict rule as Create. The reassignment updates that single row
// only, re-verified under a lock.
func (s *BookingService) ChangeRoom(ctx context.Context, userID, bookingID, roomID uint64) (*model.Booking, error) {
	if _, err := s.bookings.GetByIDForUser(ctx, bookingID, userID); err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	room, err := s.rooms.GetWithOccupancy(ctx, roomID)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if room.OccupantCount >= room.Capacity {
		return nil, ErrRoomOverCapacity
	}
	booking, err := s.bookings.ChangeRoom(ctx, bookingID, userID, roomID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrBookingNotFound), errors.Is(err, repository.ErrRoomNotFound):
			return nil, ErrNotFound
		case errors.Is(err, repository.ErrRoomFull):
			return nil, ErrRoomOverCapacity
		}
		return nil, err
	}
	s.publishEvent(ctx, queue.BookingActionRoomChanged, booking, room)
	return booking, nil
}

// publishEvent emits a broker event for a committed booking write.
// The publisher logs its own failures; the booking is already
// persisted, so errors are ignored here.
func (s *BookingService) publishEvent(ctx context.Context, action string, b *model.Booking, room *repository.RoomOccupancy) {
	if s.publish == nil {
		return
	}
	_ = s.publish(ctx, queue.BookingEvent{
		Action:     action,
		BookingID:  b.ID,
		UserID:     b.UserID,
		RoomID:     b.RoomID,
		RoomName:   room.Name,
		HotelID:    room.HotelID,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})
}
