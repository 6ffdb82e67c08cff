package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rmaciel/event-hotel-booking/internal/model"
)

// ErrTicketNotFound is returned when an enrollment has no ticket.
var ErrTicketNotFound = errors.New("ticket not found")

// TicketWithType joins a ticket with the flags of its type. The
// service layer only needs the status and the two access flags to
// decide booking eligibility, but the full type is carried so the
// hotels endpoints can reuse the same lookup.
type TicketWithType struct {
	model.Ticket
	Type model.TicketType
}

// TicketRepo reads tickets and their types. The ticketing subsystem
// owns both tables; this module never writes to them.
type TicketRepo struct {
	db *sql.DB
}

// NewTicketRepo constructs a TicketRepo with the given DB handle.
func NewTicketRepo(db *sql.DB) *TicketRepo {
	return &TicketRepo{db: db}
}

// FindByEnrollmentID returns the ticket purchased under the given
// enrollment, joined with its type, or ErrTicketNotFound when the
// enrollment has not bought one.
func (r *TicketRepo) FindByEnrollmentID(ctx context.Context, enrollmentID uint64) (*TicketWithType, error) {
	const q = `SELECT t.id, t.ticket_type_id, t.enrollment_id, t.status, t.created_at, t.updated_at,
	                  tt.id, tt.name, tt.price_cents, tt.is_remote, tt.includes_hotel, tt.created_at, tt.updated_at
	           FROM tickets t
	           JOIN ticket_types tt ON tt.id = t.ticket_type_id
	           WHERE t.enrollment_id = ?`
	var tw TicketWithType
	err := r.db.QueryRowContext(ctx, q, enrollmentID).Scan(
		&tw.ID, &tw.TicketTypeID, &tw.EnrollmentID, &tw.Status, &tw.CreatedAt, &tw.UpdatedAt,
		&tw.Type.ID, &tw.Type.Name, &tw.Type.PriceCents, &tw.Type.IsRemote, &tw.Type.IncludesHotel,
		&tw.Type.CreatedAt, &tw.Type.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}
	return &tw, nil
}
