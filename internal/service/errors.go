// Package service encodes the business rules for hotel booking:
// which users may book, which rooms have capacity left, and which
// booking a user may change. Handlers translate the error values
// defined here into HTTP status codes; nothing below the handler
// layer knows about HTTP.
package service

import "errors"

// ErrNotFound reports that a referenced enrollment, room, hotel or
// booking does not exist (or, for bookings, does not belong to the
// requesting user).
var ErrNotFound = errors.New("not found")

// ErrTicketIneligible reports that the user's ticket does not grant
// hotel access: it is absent, still RESERVED, remote-only, or its
// type excludes accommodation. Handlers map this to 402.
var ErrTicketIneligible = errors.New("ticket does not grant hotel access")

// ErrRoomOverCapacity reports that the target room has no free
// capacity. Handlers map this to 403.
var ErrRoomOverCapacity = errors.New("room over capacity")
