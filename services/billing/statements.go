package billing

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"clubhouse/database/repository"
	"clubhouse/metrics"
	"clubhouse/models"

	"go.uber.org/zap"
)

func (s *DefaultBillingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultBillingService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.L()
}

// monthRange returns the first and last ISO dates of a month.
func monthRange(year, month int) (string, string, error) {
	if year < 1 || month < 1 || month > 12 {
		return "", "", ErrInvalidPeriod
	}
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return first.Format("2006-01-02"), last.Format("2006-01-02"), nil
}

// PreviousMonth is the month before the one containing t.
func PreviousMonth(t time.Time) (int, int) {
	prev := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).AddDate(0, -1, 0)
	return prev.Year(), int(prev.Month())
}

// GenerateMonthly creates a pending statement for every member who played in
// the month. Statements that already exist are left untouched, so running it
// twice is harmless. The month must be over. The created statements are returned.
func (s *DefaultBillingService) GenerateMonthly(ctx context.Context, year, month int) ([]models.Statement, error) {
	from, to, err := monthRange(year, month)
	if err != nil {
		return nil, err
	}
	// Statements are frozen once created, so only closed months are billed.
	nextMonth := time.Date(year, time.Month(month)+1, 1, 0, 0, 0, 0, time.UTC)
	if s.now().UTC().Before(nextMonth) {
		return nil, fmt.Errorf("%w: %04d-%02d has not ended yet", ErrInvalidPeriod, year, month)
	}
	bookings, err := s.Bookings.Find(ctx, models.BookingFilter{FromDate: from, ToDate: to})
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings for %04d-%02d: %w", year, month, err)
	}

	totals := map[string]*models.Statement{}
	for _, b := range bookings {
		st, ok := totals[b.MemberID]
		if !ok {
			st = &models.Statement{
				ID:       models.StatementID(b.MemberID, year, month),
				MemberID: b.MemberID,
				Year:     year,
				Month:    month,
				Status:   models.StatementPending,
			}
			totals[b.MemberID] = st
		}
		st.Hours += b.DurationHours
		st.Amount += b.AmountDue
	}

	memberIDs := make([]string, 0, len(totals))
	for id := range totals {
		memberIDs = append(memberIDs, id)
	}
	sort.Strings(memberIDs)

	created := []models.Statement{}
	now := s.now().UTC()
	for _, id := range memberIDs {
		st := totals[id]
		st.CreatedAt = now
		ok, err := s.Statements.CreateIfAbsent(ctx, st)
		if err != nil {
			return created, fmt.Errorf("failed to save statement %s: %w", st.ID, err)
		}
		if ok {
			created = append(created, *st)
			metrics.StatementsGenerated.Inc()
		}
	}

	s.logger().Info("monthly statements generated",
		zap.Int("year", year), zap.Int("month", month),
		zap.Int("members", len(totals)), zap.Int("created", len(created)))
	return created, nil
}

// MarkPaid settles a pending statement and takes its amount off the
// member's balance.
func (s *DefaultBillingService) MarkPaid(ctx context.Context, id string) (*models.Statement, error) {
	st, err := s.Statements.MarkPaid(ctx, id, s.now().UTC())
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrStatementNotFound
		case errors.Is(err, repository.ErrConflict):
			return nil, ErrAlreadyPaid
		}
		return nil, fmt.Errorf("failed to mark statement %s paid: %w", id, err)
	}

	if err := s.Balances.CreditBalance(ctx, st.MemberID, -st.Amount); err != nil {
		s.logger().Error("statement paid but balance not reduced",
			zap.String("statementID", st.ID), zap.Float64("amount", st.Amount), zap.Error(err))
		return st, fmt.Errorf("failed to settle balance for statement %s: %w", st.ID, err)
	}
	metrics.StatementsPaid.Inc()
	s.logger().Info("statement paid", zap.String("statementID", st.ID), zap.Float64("amount", st.Amount))
	return st, nil
}

func (s *DefaultBillingService) List(ctx context.Context, filter models.StatementFilter) ([]models.Statement, error) {
	if filter.Month != 0 && (filter.Month < 1 || filter.Month > 12) {
		return nil, ErrInvalidPeriod
	}
	statements, err := s.Statements.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list statements: %w", err)
	}
	return statements, nil
}
