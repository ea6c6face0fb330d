package bookingRepo

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"clubhouse/database"
	"clubhouse/models"
)

const bookingColumns = `id, member_id, date, start_minute, duration_hours, partner_name, game_type, amount_due, status, created_at`

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// SQLiteBookingRepo implements BookingRepository on the embedded store.
type SQLiteBookingRepo struct {
	db *sql.DB
}

// NewSQLiteBookingRepo wraps a database opened with database.OpenSQLite.
func NewSQLiteBookingRepo(db *sql.DB) *SQLiteBookingRepo {
	return &SQLiteBookingRepo{db: db}
}

func (r *SQLiteBookingRepo) ListBookingsForDate(ctx context.Context, date string) ([]models.Booking, error) {
	return r.Find(ctx, models.BookingFilter{Date: date})
}

func (r *SQLiteBookingRepo) Find(ctx context.Context, filter models.BookingFilter) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, database.SQLiteTimeout)
	defer cancel()

	var (
		clauses []string
		args    []any
	)
	if filter.Date != "" {
		clauses = append(clauses, "date = ?")
		args = append(args, filter.Date)
	} else {
		if filter.FromDate != "" {
			clauses = append(clauses, "date >= ?")
			args = append(args, filter.FromDate)
		}
		if filter.ToDate != "" {
			clauses = append(clauses, "date <= ?")
			args = append(args, filter.ToDate)
		}
	}
	if filter.MemberID != "" {
		clauses = append(clauses, "member_id = ?")
		args = append(args, filter.MemberID)
	}

	query := `SELECT ` + bookingColumns + ` FROM bookings`
	if len(clauses) > 0 {
		query += ` WHERE ` + strings.Join(clauses, " AND ")
	}
	query += ` ORDER BY date, start_minute`
	return queryBookings(ctx, r.db, query, args...)
}

func queryBookings(ctx context.Context, q querier, query string, args ...any) ([]models.Booking, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()

	bookings := []models.Booking{}
	for rows.Next() {
		var b models.Booking
		if err := rows.Scan(&b.ID, &b.MemberID, &b.Date, &b.StartMinute, &b.DurationHours,
			&b.PartnerName, &b.GameType, &b.AmountDue, &b.Status, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bookings: %w", err)
	}
	return bookings, nil
}

// AppendBooking reads the date and inserts the admitted booking in one
// transaction. The store runs on a single connection, so appends are
// serialised and the snapshot cannot go stale before commit.
func (r *SQLiteBookingRepo) AppendBooking(ctx context.Context, date string, admit AdmitFunc) (*models.Booking, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	existing, err := queryBookings(ctx, tx,
		`SELECT `+bookingColumns+` FROM bookings WHERE date = ? ORDER BY start_minute`, date)
	if err != nil {
		return nil, err
	}

	booking, err := admit(existing)
	if err != nil {
		return nil, err
	}
	if booking.Date != date {
		return nil, fmt.Errorf("admitted booking dated %s appended to %s", booking.Date, date)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO bookings (`+bookingColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		booking.ID, booking.MemberID, booking.Date, booking.StartMinute, booking.DurationHours,
		booking.PartnerName, booking.GameType, booking.AmountDue, booking.Status, booking.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert booking: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit booking: %w", err)
	}
	return booking, nil
}

func (r *SQLiteBookingRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
