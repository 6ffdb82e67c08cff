package model

import "time"

// Booking records a user's reservation of a hotel room. A user is
// expected to hold at most one booking at a time; the service layer
// enforces this policy, not the schema.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – user who holds the booking.
//  RoomID    – room being occupied.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp (changes when the room changes).
type Booking struct {
	ID        uint64    // bookings.id
	UserID    uint64    // bookings.user_id
	RoomID    uint64    // bookings.room_id
	CreatedAt time.Time // bookings.created_at
	UpdatedAt time.Time // bookings.updated_at
}
