package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// ErrHotelNotFound is returned when a hotel lookup fails.
var ErrHotelNotFound = errors.New("hotel not found")

// HotelView is the JSON shape of a hotel as exposed by the API.
type HotelView struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// HotelWithRooms is a hotel together with its rooms and their
// occupant counts. The capitalized "Rooms" key matches the public
// contract of the hotels endpoints.
type HotelWithRooms struct {
	HotelView
	Rooms []RoomOccupancy `json:"Rooms"`
}

// HotelRepo provides read access to hotels.
type HotelRepo struct {
	db *sql.DB
}

// NewHotelRepo constructs a HotelRepo with the given DB handle.
func NewHotelRepo(db *sql.DB) *HotelRepo {
	return &HotelRepo{db: db}
}

// List returns all hotels ordered by name. Hotel rows are static
// data, so callers may cache the result; occupancy is never part of
// this projection.
func (r *HotelRepo) List(ctx context.Context) ([]HotelView, error) {
	const q = `SELECT id, name, image, created_at, updated_at FROM hotels ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]HotelView, 0)
	for rows.Next() {
		var h HotelView
		if err := rows.Scan(&h.ID, &h.Name, &h.Image, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID returns a single hotel or ErrHotelNotFound.
func (r *HotelRepo) GetByID(ctx context.Context, hotelID uint64) (*HotelView, error) {
	const q = `SELECT id, name, image, created_at, updated_at FROM hotels WHERE id = ?`
	var h HotelView
	err := r.db.QueryRowContext(ctx, q, hotelID).Scan(&h.ID, &h.Name, &h.Image, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrHotelNotFound
		}
		return nil, err
	}
	return &h, nil
}
