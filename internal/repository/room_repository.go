package repository

import (
	"context"      // context is used to manage deadlines and cancellation
	"database/sql" // sql provides DB primitives
	"errors"       // errors package allows sentinel error definitions
	"time"
)

// ErrRoomNotFound is returned when a room lookup fails.
var ErrRoomNotFound = errors.New("room not found")

// RoomView is the JSON shape of a room as exposed by the API. The
// casing of the tags follows the public contract of the booking
// endpoints (camelCase fields).
type RoomView struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Capacity  uint32    `json:"capacity"`
	HotelID   uint64    `json:"hotelId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RoomOccupancy is a room together with its occupant count at query
// time. The count is derived from the bookings table on every read;
// it is never stored or cached.
type RoomOccupancy struct {
	RoomView
	OccupantCount uint32 `json:"occupantCount"`
}

// RoomRepo provides read access to rooms and their occupancy. It
// embeds a database handle to perform queries.
type RoomRepo struct {
	db *sql.DB // db is the underlying database connection
}

// NewRoomRepo constructs a RoomRepo with the given DB handle.
func NewRoomRepo(db *sql.DB) *RoomRepo {
	return &RoomRepo{db: db}
}

// GetWithOccupancy returns the room identified by roomID together
// with the number of bookings currently referencing it. It returns
// ErrRoomNotFound when no such room exists.
func (r *RoomRepo) GetWithOccupancy(ctx context.Context, roomID uint64) (*RoomOccupancy, error) {
	const q = `SELECT r.id, r.name, r.capacity, r.hotel_id, r.created_at, r.updated_at,
	                  (SELECT COUNT(*) FROM bookings b WHERE b.room_id = r.id)
	           FROM rooms r WHERE r.id = ?`
	var ro RoomOccupancy
	err := r.db.QueryRowContext(ctx, q, roomID).Scan(
		&ro.ID, &ro.Name, &ro.Capacity, &ro.HotelID, &ro.CreatedAt, &ro.UpdatedAt,
		&ro.OccupantCount,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return &ro, nil
}

// ListByHotel returns all rooms of a hotel with their occupant
// counts, ordered by name for deterministic output. An empty slice
// is returned when the hotel has no rooms.
func (r *RoomRepo) ListByHotel(ctx context.Context, hotelID uint64) ([]RoomOccupancy, error) {
	const q = `SELECT r.id, r.name, r.capacity, r.hotel_id, r.created_at, r.updated_at,
	                  (SELECT COUNT(*) FROM bookings b WHERE b.room_id = r.id)
	           FROM rooms r WHERE r.hotel_id = ?
	           ORDER BY r.name`
	rows, err := r.db.QueryContext(ctx, q, hotelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]RoomOccupancy, 0)
	for rows.Next() {
		var ro RoomOccupancy
		if err := rows.Scan(
			&ro.ID, &ro.Name, &ro.Capacity, &ro.HotelID, &ro.CreatedAt, &ro.UpdatedAt,
			&ro.OccupantCount,
		); err != nil {
			return nil, err
		}
		out = append(out, ro)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
