package model

import "time"

// Enrollment is a user's registration record for the event. It is
// owned by the enrollment subsystem; this module only reads it to
// confirm the user is registered before allowing a booking.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owning user (one enrollment per user).
//  Name      – attendee's full name.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Enrollment struct {
	ID        uint64    // enrollments.id
	UserID    uint64    // enrollments.user_id
	Name      string    // enrollments.name
	CreatedAt time.Time // enrollments.created_at
	UpdatedAt time.Time // enrollments.updated_at
}
