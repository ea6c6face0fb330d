package booking

import (
	"context"
	"time"

	"clubhouse/models"
)

// BookingService is the court booking API used by the handlers.
type BookingService interface {
	Board(ctx context.Context, date string) (*models.SlotBoard, error)
	Book(ctx context.Context, memberID string, in models.BookingInput) (*models.Booking, error)
	SuggestStart(now time.Time) models.SuggestedStart
	MemberBookings(ctx context.Context, memberID string) ([]models.Booking, error)
	Upcoming(ctx context.Context, memberID string, now time.Time, limit int) (*models.UpcomingBookings, error)
	ListBookings(ctx context.Context, filter models.BookingFilter) ([]models.Booking, error)
}

// Members is the slice of the member service bookings depend on.
type Members interface {
	Get(ctx context.Context, id string) (*models.Member, error)
	CreditBalance(ctx context.Context, id string, amount float64) error
}

// BoardCache stores rendered slot boards per date.
type BoardCache interface {
	Get(ctx context.Context, date string) (*models.SlotBoard, bool)
	Set(ctx context.Context, board *models.SlotBoard)
	Invalidate(ctx context.Context, date string)
}
