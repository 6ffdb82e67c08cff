package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rmaciel/event-hotel-booking/internal/model"
)

// ErrEnrollmentNotFound is returned when the user has no enrollment.
var ErrEnrollmentNotFound = errors.New("enrollment not found")

// EnrollmentRepo reads enrollment records. The enrollment subsystem
// owns the table; this module never writes to it.
type EnrollmentRepo struct {
	db *sql.DB
}

// NewEnrollmentRepo constructs an EnrollmentRepo with the given DB handle.
func NewEnrollmentRepo(db *sql.DB) *EnrollmentRepo {
	return &EnrollmentRepo{db: db}
}

// FindByUserID returns the enrollment belonging to userID, or
// ErrEnrollmentNotFound when the user is not registered for the event.
func (r *EnrollmentRepo) FindByUserID(ctx context.Context, userID uint64) (*model.Enrollment, error) {
	const q = `SELECT id, user_id, name, created_at, updated_at FROM enrollments WHERE user_id = ?`
	var e model.Enrollment
	err := r.db.QueryRowContext(ctx, q, userID).Scan(
		&e.ID, &e.UserID, &e.Name, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEnrollmentNotFound
		}
		return nil, err
	}
	return &e, nil
}
