package billing

import (
	"context"
	"errors"
	"testing"
	"time"

	"clubhouse/database"
	bookingRepo "clubhouse/database/repository/booking"
	memberRepo "clubhouse/database/repository/member"
	statementRepo "clubhouse/database/repository/statement"
	"clubhouse/models"
	"clubhouse/services/member"
	"clubhouse/utils"

	"go.uber.org/zap"
)

type fixture struct {
	svc      *DefaultBillingService
	members  *member.DefaultMemberService
	bookings *bookingRepo.SQLiteBookingRepo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := database.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	members := &member.DefaultMemberService{
		Repo:   memberRepo.NewSQLiteMemberRepo(db),
		Tokens: utils.NewTokenIssuer("test", time.Hour),
		Logger: zap.NewNop(),
	}
	bookings := bookingRepo.NewSQLiteBookingRepo(db)
	return &fixture{
		members:  members,
		bookings: bookings,
		svc: &DefaultBillingService{
			Bookings:   bookings,
			Statements: statementRepo.NewSQLiteStatementRepo(db),
			Balances:   members,
			Logger:     zap.NewNop(),
			Now:        func() time.Time { return time.Date(2024, 7, 1, 2, 0, 0, 0, time.UTC) },
		},
	}
}

func (f *fixture) register(t *testing.T, email string) *models.Member {
	t.Helper()
	m, err := f.members.Register(context.Background(), models.RegistrationInput{
		Name: email, Email: email, Password: "secret1", ConfirmPassword: "secret1",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	return m
}

func (f *fixture) book(t *testing.T, id, memberID, date string, hours int) {
	t.Helper()
	b := &models.Booking{
		ID: id, MemberID: memberID, Date: date, StartMinute: 480, DurationHours: hours,
		AmountDue: float64(hours) * 7.5, Status: models.BookingStatusConfirmed, CreatedAt: time.Now(),
	}
	_, err := f.bookings.AppendBooking(context.Background(), date, func([]models.Booking) (*models.Booking, error) { return b, nil })
	if err != nil {
		t.Fatalf("AppendBooking: %v", err)
	}
	if err := f.members.CreditBalance(context.Background(), memberID, b.AmountDue); err != nil {
		t.Fatalf("CreditBalance: %v", err)
	}
}

func TestGenerateMonthly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ann := f.register(t, "ann@example.com")
	bob := f.register(t, "bob@example.com")

	f.book(t, "b1", ann.ID, "2024-06-01", 2)
	f.book(t, "b2", ann.ID, "2024-06-30", 1)
	f.book(t, "b3", bob.ID, "2024-06-15", 1)
	f.book(t, "b4", bob.ID, "2024-07-01", 3) // next month

	created, err := f.svc.GenerateMonthly(ctx, 2024, 6)
	if err != nil {
		t.Fatalf("GenerateMonthly: %v", err)
	}
	if len(created) != 2 {
		t.Fatalf("created %d statements, want 2", len(created))
	}
	byMember := map[string]models.Statement{}
	for _, st := range created {
		byMember[st.MemberID] = st
	}
	if st := byMember[ann.ID]; st.Hours != 3 || st.Amount != 22.5 || st.Status != models.StatementPending {
		t.Errorf("ann statement = %+v", st)
	}
	if st := byMember[bob.ID]; st.Hours != 1 || st.Amount != 7.5 {
		t.Errorf("bob statement = %+v", st)
	}

	again, err := f.svc.GenerateMonthly(ctx, 2024, 6)
	if err != nil {
		t.Fatalf("GenerateMonthly again: %v", err)
	}
	if len(again) != 0 {
		t.Errorf("second run created %d statements", len(again))
	}
	listed, err := f.svc.List(ctx, models.StatementFilter{Year: 2024, Month: 6})
	if err != nil || len(listed) != 2 {
		t.Fatalf("List = %d, %v", len(listed), err)
	}

	if _, err := f.svc.GenerateMonthly(ctx, 2024, 13); !errors.Is(err, ErrInvalidPeriod) {
		t.Errorf("month 13: err = %v", err)
	}
}

func TestGenerateMonthlyRejectsOpenMonth(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ann := f.register(t, "ann@example.com")

	f.book(t, "b1", ann.ID, "2024-07-01", 1)
	for _, period := range []struct{ year, month int }{{2024, 7}, {2024, 8}, {2025, 1}} {
		created, err := f.svc.GenerateMonthly(ctx, period.year, period.month)
		if !errors.Is(err, ErrInvalidPeriod) {
			t.Errorf("%d-%02d: err = %v, want ErrInvalidPeriod", period.year, period.month, err)
		}
		if len(created) != 0 {
			t.Errorf("%d-%02d: created %d statements", period.year, period.month, len(created))
		}
	}

	// Once July is over the later booking is billed too.
	f.book(t, "b2", ann.ID, "2024-07-20", 3)
	f.svc.Now = func() time.Time { return time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC) }
	created, err := f.svc.GenerateMonthly(ctx, 2024, 7)
	if err != nil {
		t.Fatalf("GenerateMonthly: %v", err)
	}
	if len(created) != 1 || created[0].Hours != 4 || created[0].Amount != 30 {
		t.Errorf("July statements = %+v, want one with 4h / 30.0", created)
	}
}

func TestMarkPaidSettlesBalance(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ann := f.register(t, "ann@example.com")

	f.book(t, "b1", ann.ID, "2024-06-10", 2)
	f.book(t, "b2", ann.ID, "2024-07-02", 1)

	if _, err := f.svc.GenerateMonthly(ctx, 2024, 6); err != nil {
		t.Fatalf("GenerateMonthly: %v", err)
	}
	id := models.StatementID(ann.ID, 2024, 6)

	st, err := f.svc.MarkPaid(ctx, id)
	if err != nil {
		t.Fatalf("MarkPaid: %v", err)
	}
	if st.Status != models.StatementPaid || st.PaidAt == nil {
		t.Errorf("statement after payment = %+v", st)
	}

	m, _ := f.members.Get(ctx, ann.ID)
	if m.Balance != 7.5 {
		t.Errorf("balance = %v, want 7.5 (July booking only)", m.Balance)
	}

	if _, err := f.svc.MarkPaid(ctx, id); !errors.Is(err, ErrAlreadyPaid) {
		t.Errorf("second payment: err = %v", err)
	}
	if _, err := f.svc.MarkPaid(ctx, "nope"); !errors.Is(err, ErrStatementNotFound) {
		t.Errorf("unknown statement: err = %v", err)
	}

	paid, err := f.svc.List(ctx, models.StatementFilter{Status: models.StatementPaid})
	if err != nil || len(paid) != 1 {
		t.Errorf("paid statements = %d, %v", len(paid), err)
	}
}

func TestPreviousMonth(t *testing.T) {
	cases := []struct {
		now         time.Time
		year, month int
	}{
		{time.Date(2024, 7, 1, 2, 0, 0, 0, time.UTC), 2024, 6},
		{time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), 2023, 12},
		{time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC), 2024, 2},
	}
	for _, tc := range cases {
		y, m := PreviousMonth(tc.now)
		if y != tc.year || m != tc.month {
			t.Errorf("PreviousMonth(%s) = %d-%02d, want %d-%02d", tc.now.Format("2006-01-02"), y, m, tc.year, tc.month)
		}
	}
}
