package model

import "time"

// Ticket status values as stored in the `tickets.status` column.
const (
	TicketStatusReserved = "RESERVED" // chosen but not yet paid
	TicketStatusPaid     = "PAID"     // payment confirmed
)

// Ticket belongs to an enrollment and carries the payment status.
// Whether the ticket grants hotel access is determined by its type.
//
// Fields:
//  ID           – primary key identifier.
//  TicketTypeID – foreign key into ticket_types.
//  EnrollmentID – enrollment that purchased the ticket.
//  Status       – RESERVED or PAID.
//  CreatedAt    – creation timestamp.
//  UpdatedAt    – last update timestamp.
type Ticket struct {
	ID           uint64    // tickets.id
	TicketTypeID uint64    // tickets.ticket_type_id
	EnrollmentID uint64    // tickets.enrollment_id
	Status       string    // tickets.status
	CreatedAt    time.Time // tickets.created_at
	UpdatedAt    time.Time // tickets.updated_at
}

// TicketType classifies a ticket. IsRemote marks online-only
// attendance and IncludesHotel marks accommodation access; a booking
// requires a paid, non-remote, hotel-inclusive ticket.
//
// Fields:
//  ID            – primary key identifier.
//  Name          – display name of the type.
//  PriceCents    – price in cents.
//  IsRemote      – true for online-only tickets.
//  IncludesHotel – true when accommodation is included.
//  CreatedAt     – creation timestamp.
//  UpdatedAt     – last update timestamp.
type TicketType struct {
	ID            uint64    // ticket_types.id
	Name          string    // ticket_types.name
	PriceCents    uint32    // ticket_types.price_cents
	IsRemote      bool      // ticket_types.is_remote
	IncludesHotel bool      // ticket_types.includes_hotel
	CreatedAt     time.Time // ticket_types.created_at
	UpdatedAt     time.Time // ticket_types.updated_at
}
