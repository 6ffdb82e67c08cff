package repository

import (
	"context"      // context propagates request deadlines into queries
	"database/sql" // sql provides DB primitives and transactions
	"errors"       // errors.Is comparisons against sql.ErrNoRows
	"time"

	"github.com/rmaciel/event-hotel-booking/internal/model"
)

// ErrBookingNotFound is returned when a booking lookup fails or the
// booking does not belong to the requesting user.
var ErrBookingNotFound = errors.New("booking not found")

// BookingWithRoom joins a booking with the room it occupies. It is
// the shape returned to customers when listing their bookings. The
// capitalized "Room" key is part of the public contract.
type BookingWithRoom struct {
	ID        uint64    `json:"id"`
	UserID    uint64    `json:"userId"`
	RoomID    uint64    `json:"roomId"`
	Room      RoomView  `json:"Room"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingRepo provides CRUD operations for bookings. Writes that
// depend on room capacity run inside a transaction with the room row
// locked, so the occupant count they observe cannot be raced past by
// a concurrent request.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// lockRoomCapacityTx reads a room's capacity with FOR UPDATE and
// counts its occupants inside tx. It returns ErrRoomNotFound when the
// room does not exist.
func lockRoomCapacityTx(ctx context.Context, tx *sql.Tx, roomID uint64) (capacity, occupants uint32, err error) {
	const roomQ = `SELECT capacity FROM rooms WHERE id = ? FOR UPDATE`
	if err = tx.QueryRowContext(ctx, roomQ, roomID).Scan(&capacity); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, 0, ErrRoomNotFound
		}
		return 0, 0, err
	}
	const countQ = `SELECT COUNT(*) FROM bookings WHERE room_id = ?`
	if err = tx.QueryRowContext(ctx, countQ, roomID).Scan(&occupants); err != nil {
		return 0, 0, err
	}
	return capacity, occupants, nil
}

// readBookingTx queries back a booking row inside tx to populate the
// database-generated timestamps.
func readBookingTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Booking, error) {
	const q = `SELECT id, user_id, room_id, created_at, updated_at FROM bookings WHERE id = ?`
	var b model.Booking
	if err := tx.QueryRowContext(ctx, q, id).Scan(&b.ID, &b.UserID, &b.RoomID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

// Create inserts a booking for userID in roomID. The insert is
// guarded: the room row is locked, the occupant count is re-read
// under the lock, and the row is written only while occupants are
// strictly below capacity. It returns ErrRoomNotFound when the room
// does not exist and ErrRoomFull when it has no free capacity.
func (r *BookingRepo) Create(ctx context.Context, roomID, userID uint64) (*model.Booking, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	capacity, occupants, err := lockRoomCapacityTx(ctx, tx, roomID)
	if err != nil {
		return nil, err
	}
	if occupants >= capacity {
		return nil, ErrRoomFull
	}
	const insQ = `INSERT INTO bookings (user_id, room_id) VALUES (?, ?)`
	res, err := tx.ExecContext(ctx, insQ, userID, roomID)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	b, err := readBookingTx(ctx, tx, uint64(id))
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return b, nil
}

// ListByUser returns the user's bookings joined with their rooms,
// newest first. An empty slice is returned when the user has no
// booking.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]BookingWithRoom, error) {
	const q = `SELECT b.id, b.user_id, b.room_id, b.created_at, b.updated_at,
	                  r.id, r.name, r.capacity, r.hotel_id, r.created_at, r.updated_at
	           FROM bookings b
	           JOIN rooms r ON r.id = b.room_id
	           WHERE b.user_id = ?
	           ORDER BY b.created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]BookingWithRoom, 0)
	for rows.Next() {
		var bw BookingWithRoom
		if err := rows.Scan(
			&bw.ID, &bw.UserID, &bw.RoomID, &bw.CreatedAt, &bw.UpdatedAt,
			&bw.Room.ID, &bw.Room.Name, &bw.Room.Capacity, &bw.Room.HotelID,
			&bw.Room.CreatedAt, &bw.Room.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, bw)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByIDForUser returns a single booking, restricted to the given
// user to enforce ownership. ErrBookingNotFound is returned both when
// the booking does not exist and when it belongs to someone else, so
// callers cannot probe other users' bookings.
func (r *BookingRepo) GetByIDForUser(ctx context.Context, bookingID, userID uint64) (*model.Booking, error) {
	const q = `SELECT id, user_id, room_id, created_at, updated_at
	           FROM bookings WHERE id = ? AND user_id = ?`
	var b model.Booking
	err := r.db.QueryRowContext(ctx, q, bookingID, userID).Scan(
		&b.ID, &b.UserID, &b.RoomID, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &b, nil
}

// ChangeRoom moves a single booking to newRoomID. Inside one
// transaction it re-verifies that the booking still belongs to
// userID, locks the destination room, re-counts its occupants and
// updates the one row only while occupants are strictly below
// capacity. It returns ErrBookingNotFound, ErrRoomNotFound or
// ErrRoomFull accordingly, and the updated row on success.
func (r *BookingRepo) ChangeRoom(ctx context.Context, bookingID, userID, newRoomID uint64) (*model.Booking, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	// Lock the booking row as well so a concurrent change to the same
	// booking serializes here.
	const ownQ = `SELECT id FROM bookings WHERE id = ? AND user_id = ? FOR UPDATE`
	var id uint64
	if err := tx.QueryRowContext(ctx, ownQ, bookingID, userID).Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	capacity, occupants, err := lockRoomCapacityTx(ctx, tx, newRoomID)
	if err != nil {
		return nil, err
	}
	if occupants >= capacity {
		return nil, ErrRoomFull
	}
	const updQ = `UPDATE bookings SET room_id = ? WHERE id = ?`
	if _, err := tx.ExecContext(ctx, updQ, newRoomID, bookingID); err != nil {
		return nil, err
	}
	b, err := readBookingTx(ctx, tx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return b, nil
}
