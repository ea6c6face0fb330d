package bookingRepo

import (
	"context"

	"clubhouse/models"
)

// AdmitFunc decides, given the bookings currently held for a date, whether a
// new booking may be appended. A non-nil error aborts the append and is
// returned to the caller unchanged.
type AdmitFunc func(existing []models.Booking) (*models.Booking, error)

// BookingRepository defines booking data access.
type BookingRepository interface {
	// ListBookingsForDate returns the bookings of a date ordered by start.
	ListBookingsForDate(ctx context.Context, date string) ([]models.Booking, error)
	// Find returns bookings matching the filter ordered by date then start.
	Find(ctx context.Context, filter models.BookingFilter) ([]models.Booking, error)
	// AppendBooking runs admit against a fresh snapshot of the date and
	// persists its result only if no other writer changed the date meanwhile.
	AppendBooking(ctx context.Context, date string, admit AdmitFunc) (*models.Booking, error)
	// Ping verifies the store is reachable.
	Ping(ctx context.Context) error
}
