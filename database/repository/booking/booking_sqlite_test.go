package bookingRepo

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"clubhouse/database"
	"clubhouse/models"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	for _, id := range []string{"m-1", "m-2"} {
		_, err := db.Exec(`INSERT INTO members (id, name, email, password_hash, joined_at) VALUES (?, ?, ?, 'x', ?)`,
			id, id, id+"@example.com", time.Now())
		if err != nil {
			t.Fatalf("seed member: %v", err)
		}
	}
	return db
}

func newBooking(id, member, date string, start, hours int) *models.Booking {
	return &models.Booking{
		ID: id, MemberID: member, Date: date, StartMinute: start, DurationHours: hours,
		AmountDue: float64(hours) * 7.5, Status: models.BookingStatusConfirmed, CreatedAt: time.Now(),
	}
}

func appendFixed(b *models.Booking) AdmitFunc {
	return func([]models.Booking) (*models.Booking, error) { return b, nil }
}

func TestAppendBookingPassesSnapshot(t *testing.T) {
	repo := NewSQLiteBookingRepo(setupDB(t))
	ctx := context.Background()

	if _, err := repo.AppendBooking(ctx, "2024-06-01", appendFixed(newBooking("b1", "m-1", "2024-06-01", 960, 2))); err != nil {
		t.Fatalf("AppendBooking: %v", err)
	}
	if _, err := repo.AppendBooking(ctx, "2024-06-02", appendFixed(newBooking("b2", "m-2", "2024-06-02", 480, 1))); err != nil {
		t.Fatalf("AppendBooking: %v", err)
	}

	var seen []models.Booking
	_, err := repo.AppendBooking(ctx, "2024-06-01", func(existing []models.Booking) (*models.Booking, error) {
		seen = existing
		return newBooking("b3", "m-2", "2024-06-01", 1080, 1), nil
	})
	if err != nil {
		t.Fatalf("AppendBooking: %v", err)
	}
	if len(seen) != 1 || seen[0].ID != "b1" || seen[0].EndMinute() != 1080 {
		t.Errorf("admit saw %+v, want only b1", seen)
	}

	day, err := repo.ListBookingsForDate(ctx, "2024-06-01")
	if err != nil {
		t.Fatalf("ListBookingsForDate: %v", err)
	}
	if len(day) != 2 || day[0].ID != "b1" || day[1].ID != "b3" {
		t.Errorf("bookings for date = %+v", day)
	}
	if day[0].AmountDue != 15 || day[0].Status != models.BookingStatusConfirmed {
		t.Errorf("fields not persisted: %+v", day[0])
	}
}

func TestAppendBookingRejectionStoresNothing(t *testing.T) {
	repo := NewSQLiteBookingRepo(setupDB(t))
	ctx := context.Background()
	rejected := errors.New("no room")

	_, err := repo.AppendBooking(ctx, "2024-06-01", func([]models.Booking) (*models.Booking, error) {
		return nil, rejected
	})
	if !errors.Is(err, rejected) {
		t.Fatalf("err = %v, want admission error unchanged", err)
	}

	_, err = repo.AppendBooking(ctx, "2024-06-01", appendFixed(newBooking("b1", "m-1", "2024-06-02", 960, 1)))
	if err == nil {
		t.Fatal("booking dated for another day must not be appended")
	}

	all, err := repo.Find(ctx, models.BookingFilter{})
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("found %d bookings after rejected appends", len(all))
	}
}

func TestFindFilters(t *testing.T) {
	repo := NewSQLiteBookingRepo(setupDB(t))
	ctx := context.Background()

	seed := []*models.Booking{
		newBooking("b1", "m-1", "2024-05-31", 480, 1),
		newBooking("b2", "m-1", "2024-06-01", 960, 1),
		newBooking("b3", "m-2", "2024-06-01", 480, 1),
		newBooking("b4", "m-1", "2024-06-30", 600, 1),
		newBooking("b5", "m-2", "2024-07-01", 480, 1),
	}
	for _, b := range seed {
		if _, err := repo.AppendBooking(ctx, b.Date, appendFixed(b)); err != nil {
			t.Fatalf("AppendBooking %s: %v", b.ID, err)
		}
	}

	cases := []struct {
		name   string
		filter models.BookingFilter
		want   []string
	}{
		{"all", models.BookingFilter{}, []string{"b1", "b3", "b2", "b4", "b5"}},
		{"member", models.BookingFilter{MemberID: "m-1"}, []string{"b1", "b2", "b4"}},
		{"june", models.BookingFilter{FromDate: "2024-06-01", ToDate: "2024-06-30"}, []string{"b3", "b2", "b4"}},
		{"member from", models.BookingFilter{MemberID: "m-2", FromDate: "2024-06-02"}, []string{"b5"}},
		{"date wins over range", models.BookingFilter{Date: "2024-05-31", FromDate: "2024-06-01"}, []string{"b1"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := repo.Find(ctx, tc.filter)
			if err != nil {
				t.Fatalf("Find: %v", err)
			}
			if len(got) != len(tc.want) {
				t.Fatalf("got %d bookings, want %d", len(got), len(tc.want))
			}
			for i := range got {
				if got[i].ID != tc.want[i] {
					t.Errorf("position %d = %s, want %s", i, got[i].ID, tc.want[i])
				}
			}
		})
	}
}
