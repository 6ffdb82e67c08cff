package model

import "time"

// Hotel represents a row in the `hotels` table. Hotels are the
// top-level grouping for rooms offered to event attendees whose
// ticket includes accommodation.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – display name of the hotel.
//  Image     – URL of the hotel's cover image.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Hotel struct {
	ID        uint64    // hotels.id
	Name      string    // hotels.name
	Image     string    // hotels.image
	CreatedAt time.Time // hotels.created_at
	UpdatedAt time.Time // hotels.updated_at
}

// Room represents a row in the `rooms` table. Each room belongs to a
// hotel and holds at most Capacity concurrent occupants. The number
// of occupants is never stored; it is derived by counting bookings
// that reference the room.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – room label (e.g. "101").
//  Capacity  – maximum number of concurrent occupants.
//  HotelID   – foreign key into hotels.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Room struct {
	ID        uint64    // rooms.id
	Name      string    // rooms.name
	Capacity  uint32    // rooms.capacity
	HotelID   uint64    // rooms.hotel_id
	CreatedAt time.Time // rooms.created_at
	UpdatedAt time.Time // rooms.updated_at
}
